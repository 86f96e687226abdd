package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listWorkYears(c *gin.Context) {
	years, err := h.deps.WorkYears.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, years)
}

func (h *handlers) createWorkYear(c *gin.Context) {
	var in domain.CreateWorkYearInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.WorkYears.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getCurrentWorkYear resolves the work-year whose period covers today.
func (h *handlers) getCurrentWorkYear(c *gin.Context) {
	wy, err := h.deps.WorkYears.Current(c.Request.Context(), time.Now().UTC())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wy)
}

func (h *handlers) getWorkYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	wy, err := h.deps.WorkYears.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wy)
}

func (h *handlers) updateWorkYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateWorkYearInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.WorkYears.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteWorkYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.WorkYears.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
