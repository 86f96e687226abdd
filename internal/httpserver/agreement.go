package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) createAgreement(c *gin.Context) {
	var in domain.CreateAgreementInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Agreements.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getAgreement(c *gin.Context) {
	sponsorID, ok := pathID(c, "sponsorId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	a, err := h.deps.Agreements.Get(c.Request.Context(), sponsorID, workYearID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) listAgreementsByWorkYear(c *gin.Context) {
	workYearID, ok := pathID(c, "id")
	if !ok {
		return
	}
	agreements, err := h.deps.Agreements.ListByWorkYear(c.Request.Context(), workYearID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if agreements == nil {
		agreements = []domain.SponsorshipAgreement{}
	}
	c.JSON(http.StatusOK, agreements)
}

func (h *handlers) listAgreementsBySponsor(c *gin.Context) {
	sponsorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	agreements, err := h.deps.Agreements.ListBySponsor(c.Request.Context(), sponsorID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if agreements == nil {
		agreements = []domain.SponsorshipAgreement{}
	}
	c.JSON(http.StatusOK, agreements)
}

func (h *handlers) updateAgreement(c *gin.Context) {
	sponsorID, ok := pathID(c, "sponsorId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	var in domain.UpdateAgreementInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Agreements.Update(c.Request.Context(), sponsorID, workYearID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) payAgreement(c *gin.Context) {
	sponsorID, ok := pathID(c, "sponsorId")
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
	paid, err := h.deps.Agreements.MarkPaid(c.Request.Context(), sponsorID, workYearID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.PaymentsReceived.WithLabelValues("sponsorship_agreement").Inc()
	}
	c.JSON(http.StatusOK, paid)
}

func (h *handlers) deleteAgreement(c *gin.Context) {
	sponsorID, ok := pathID(c, "sponsorId")
	if !ok {
		return
	}
	workYearID, ok := pathID(c, "workYearId")
	if !ok {
		return
	}
	if err := h.deps.Agreements.Delete(c.Request.Context(), sponsorID, workYearID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
