package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listMembers(c *gin.Context) {
	members, err := h.deps.Members.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *handlers) createMember(c *gin.Context) {
	var in domain.CreateMemberInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Members.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.MembersRegistered.Inc()
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.deps.Members.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) updateMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateMemberInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Members.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Members.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listMemberParents(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	links, err := h.deps.Members.ListParentLinks(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if links == nil {
		links = []domain.MemberParentLink{}
	}
	c.JSON(http.StatusOK, links)
}

type linkParentRequest struct {
	IsPrimary bool `json:"isPrimary"`
}

func (h *handlers) linkParent(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}
	parentID, ok := pathID(c, "parentId")
	if !ok {
		return
	}
	var req linkParentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.deps.Members.LinkParent(c.Request.Context(), memberID, parentID, req.IsPrimary); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) unlinkParent(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}
	parentID, ok := pathID(c, "parentId")
	if !ok {
		return
	}
	if err := h.deps.Members.UnlinkParent(c.Request.Context(), memberID, parentID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
