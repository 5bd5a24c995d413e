package handlers

import (
	"errors"
	"net/http"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/services"
	"helpdesk-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req struct {
		Title           string `json:"title" validate:"required"`
		Description     string `json:"description" validate:"required"`
		AppointmentDate string `json:"appointmentDate" validate:"required"`
		AppointmentTime string `json:"appointmentTime" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := utils.ValidateRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, _ := utils.GetSession(c)
	appointment, err := h.appointmentService.Create(c.Request.Context(), sess, services.CreateAppointmentInput{
		Title:           req.Title,
		Description:     req.Description,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointmentId": appointment.ID.Hex()})
}

// CheckTimeSlotAvailability answers yes/no; a failed check carries the reason
// instead of an error status so the booking form can show it inline.
func (h *AppointmentHandler) CheckTimeSlotAvailability(c *gin.Context) {
	date := c.Query("date")
	timeSlot := c.Query("time")
	if date == "" || timeSlot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time are required"})
		return
	}

	if err := h.appointmentService.CheckSlot(c.Request.Context(), date, timeSlot); err != nil {
		if isBookingError(err) {
			c.JSON(http.StatusOK, gin.H{"isAvailable": false, "reason": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAvailable": true})
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appointmentID := c.Query("appointmentId")
	if appointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointmentId is required"})
		return
	}

	sess, _ := utils.GetSession(c)
	appointment, err := h.appointmentService.Get(c.Request.Context(), sess, appointmentID)
	if err != nil {
		h.respondAppointmentError(c, err, "Unauthorized to access this appointment")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) GetUserAppointments(c *gin.Context) {
	sess, _ := utils.GetSession(c)
	appointments, err := h.appointmentService.GetForUser(c.Request.Context(), sess, c.Query("userId"))
	if err != nil {
		h.respondAppointmentError(c, err, "Unauthorized to access appointments of other users")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	appointmentID, _ := payload["appointmentId"].(string)
	if appointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointmentId is required"})
		return
	}

	if err := h.appointmentService.Update(c.Request.Context(), appointmentID, payload); err != nil {
		h.respondAppointmentError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully"})
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Query("appointmentId")
	if appointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointmentId is required"})
		return
	}

	sess, _ := utils.GetSession(c)
	if err := h.appointmentService.Delete(c.Request.Context(), sess, appointmentID); err != nil {
		h.respondAppointmentError(c, err, "Unauthorized to delete this appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

func (h *AppointmentHandler) respondAppointmentError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case errors.Is(err, models.ErrForbidden) && forbiddenMsg != "":
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenMsg})
	default:
		respondError(c, err)
	}
}

func isBookingError(err error) bool {
	return errors.Is(err, models.ErrInvalidDate) ||
		errors.Is(err, models.ErrInvalidTime) ||
		errors.Is(err, models.ErrPastDate) ||
		errors.Is(err, models.ErrPastTime) ||
		errors.Is(err, models.ErrInvalidSlot) ||
		errors.Is(err, models.ErrSlotTaken)
}
