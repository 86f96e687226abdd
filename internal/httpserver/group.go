package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listGroups(c *gin.Context) {
	groups, err := h.deps.Groups.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// listEligibleGroups is the public lookup parents use while registering:
// which active groups fit a child born on this date with this gender.
func (h *handlers) listEligibleGroups(c *gin.Context) {
	birthDate, err := time.Parse("2006-01-02", c.Query("birthDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
		return
	}
	gender := domain.Gender(c.Query("gender"))
	switch gender {
	case domain.GenderM, domain.GenderF, domain.GenderX:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be M, F or X"})
		return
	}
	at := time.Now().UTC()
	if ref := c.Query("at"); ref != "" {
		at, err = time.Parse("2006-01-02", ref)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be YYYY-MM-DD"})
			return
		}
	}

	groups, err := h.deps.Groups.ActiveForBirthDateAndGender(c.Request.Context(), birthDate, gender, at)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	c.JSON(http.StatusOK, groups)
}

func (h *handlers) createGroup(c *gin.Context) {
	var in domain.CreateGroupInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Groups.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	g, err := h.deps.Groups.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *handlers) updateGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateGroupInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Groups.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Groups.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
