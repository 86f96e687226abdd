package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listAddresses(c *gin.Context) {
	addresses, err := h.deps.Addresses.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *handlers) createAddress(c *gin.Context) {
	var in domain.CreateAddressInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Addresses.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.deps.Addresses.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) updateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateAddressInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Addresses.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Addresses.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
