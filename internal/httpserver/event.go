package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/domain"
)

func (h *handlers) listEvents(c *gin.Context) {
	events, err := h.deps.Events.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// listUpcomingEvents feeds the public calendar. An optional "at" query
// parameter (RFC 3339) overrides the reference date.
func (h *handlers) listUpcomingEvents(c *gin.Context) {
	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid at, want RFC 3339"})
			return
		}
		at = parsed
	}
	events, err := h.deps.Events.ListUpcoming(c.Request.Context(), at)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *handlers) createEvent(c *gin.Context) {
	var in domain.CreateEventInput
	if !bindJSON(c, &in) {
		return
	}
	created, err := h.deps.Events.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.deps.Events.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *handlers) updateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in domain.UpdateEventInput
	if !bindJSON(c, &in) {
		return
	}
	updated, err := h.deps.Events.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Events.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listEventRegistrations(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	regs, err := h.deps.Events.ListRegistrations(c.Request.Context(), eventID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if regs == nil {
		regs = []domain.EventRegistration{}
	}
	c.JSON(http.StatusOK, regs)
}

type registerRequest struct {
	MemberID int64 `json:"memberId"`
}

func (h *handlers) registerForEvent(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.deps.Events.Register(c.Request.Context(), domain.CreateRegistrationInput{
		EventID:  eventID,
		MemberID: req.MemberID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) payEventRegistration(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	var in domain.MarkPaidInput
	if !bindJSON(c, &in) {
		return
	}
	paid, err := h.deps.Events.MarkRegistrationPaid(c.Request.Context(), eventID, memberID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.PaymentsReceived.WithLabelValues("event_registration").Inc()
	}
	c.JSON(http.StatusOK, paid)
}

func (h *handlers) unregisterFromEvent(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	if err := h.deps.Events.Unregister(c.Request.Context(), eventID, memberID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
