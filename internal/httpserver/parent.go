package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listParents(c *gin.Context) {
	parents, err := h.deps.Parents.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, parents)
}

// createParentRequest optionally carries the address as street fields; the
// service deduplicates against stored addresses.
type createParentRequest struct {
	domain.CreateParentInput
	Address *domain.CreateAddressInput `json:"address"`
}

func (h *handlers) createParent(c *gin.Context) {
	var req createParentRequest
	if !bindJSON(c, &req) {
		return
	}
	var created *domain.Parent
	var err error
	if req.Address != nil {
		created, err = h.deps.Parents.CreateWithAddress(c.Request.Context(), req.CreateParentInput, *req.Address)
	} else {
		created, err = h.deps.Parents.Create(c.Request.Context(), req.CreateParentInput)
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getParent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.deps.Parents.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) updateParent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateParentInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Parents.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteParent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Parents.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
