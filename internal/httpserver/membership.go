package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) enrollMembership(c *gin.Context) {
	var in domain.CreateMembershipInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Memberships.Enroll(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.MembershipsEnrolled.Inc()
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getMembership(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	m, err := h.deps.Memberships.Get(c.Request.Context(), memberID, workYearID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) listMembershipsByWorkYear(c *gin.Context) {
	workYearID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberships, err := h.deps.Memberships.ListByWorkYear(c.Request.Context(), workYearID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if memberships == nil {
		memberships = []domain.YearlyMembership{}
	}
	c.JSON(http.StatusOK, memberships)
}

func (h *handlers) listMembershipsByMember(c *gin.Context) {
	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberships, err := h.deps.Memberships.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if memberships == nil {
		memberships = []domain.YearlyMembership{}
	}
	c.JSON(http.StatusOK, memberships)
}

func (h *handlers) moveMembershipGroup(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	var in domain.UpdateMembershipInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Memberships.MoveGroup(c.Request.Context(), memberID, workYearID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) payMembership(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	var in domain.MarkPaidInput
	if !bindJSON(c, &in) {
		return
	}
	paid, err := h.deps.Memberships.MarkPaid(c.Request.Context(), memberID, workYearID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.PaymentsReceived.WithLabelValues("yearly_membership").Inc()
	}
	c.JSON(http.StatusOK, paid)
}

func (h *handlers) deleteMembership(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	if err := h.deps.Memberships.Delete(c.Request.Context(), memberID, workYearID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
