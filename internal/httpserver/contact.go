package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chiroportaal/internal/service/contact"
)

func (h *handlers) sendContactMessage(c *gin.Context) {
	var in contact.MessageInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.deps.Contact.Send(c.Request.Context(), in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.ContactMessagesSent.Inc()
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}
