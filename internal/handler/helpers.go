package handlers

import (
	"errors"
	"net/http"

	"helpdesk-app/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto the HTTP taxonomy. Handlers override
// the message for endpoint-specific 403/404 texts before falling back here.
func respondError(c *gin.Context, err error) {
	var missingField *models.MissingFieldError
	var invalidStatus *models.InvalidStatusError

	switch {
	case errors.As(err, &missingField),
		errors.As(err, &invalidStatus),
		errors.Is(err, models.ErrNoValidFields),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidTime),
		errors.Is(err, models.ErrPastDate),
		errors.Is(err, models.ErrPastTime),
		errors.Is(err, models.ErrInvalidSlot),
		errors.Is(err, models.ErrSlotTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
