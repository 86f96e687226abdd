package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

// listActiveSponsors feeds the public sponsor wall.
func (h *handlers) listActiveSponsors(c *gin.Context) {
	sponsors, err := h.deps.Sponsors.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if sponsors == nil {
		sponsors = []domain.Sponsor{}
	}
	c.JSON(http.StatusOK, sponsors)
}

func (h *handlers) listSponsors(c *gin.Context) {
	sponsors, err := h.deps.Sponsors.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sponsors)
}

func (h *handlers) createSponsor(c *gin.Context) {
	var in domain.CreateSponsorInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Sponsors.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getSponsor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.deps.Sponsors.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) updateSponsor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateSponsorInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Sponsors.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteSponsor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Sponsors.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
