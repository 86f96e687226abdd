package httpserver

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/identity"
	eventsvc "chiroportaal/internal/service/event"
	membershipsvc "chiroportaal/internal/service/membership"
)

// writeError translates a service failure into the wire shape. Validation
// problems come back as a field map; domain conflicts carry the entity and,
// for blocked deletes, what still refers to it.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var fields validation.Errors
	if errors.As(err, &fields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	switch {
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case errors.Is(err, identity.ErrAuthorizationDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case errors.Is(err, membershipsvc.ErrNotEligible),
		errors.Is(err, eventsvc.ErrNotEligible),
		errors.Is(err, domain.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": de.Error()})
			return
		case domain.KindAlreadyExists, domain.KindAlreadyPaid:
			c.JSON(http.StatusConflict, gin.H{"error": de.Error()})
			return
		case domain.KindStillReferenced:
			c.JSON(http.StatusConflict, gin.H{"error": de.Error(), "referencedBy": de.ReferencedBy})
			return
		}
	}

	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
