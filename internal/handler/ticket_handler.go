package handlers

import (
	"errors"
	"net/http"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/services"
	"helpdesk-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description" validate:"required"`
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
	ticket, err := h.ticketService.Create(c.Request.Context(), sess, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketId": ticket.ID.Hex()})
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID := c.Query("ticketId")
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticketId is required"})
		return
	}

	sess, _ := utils.GetSession(c)
	ticket, err := h.ticketService.Get(c.Request.Context(), sess, ticketID)
	if err != nil {
		h.respondTicketError(c, err, "Unauthorized to access this ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) GetAllTickets(c *gin.Context) {
	tickets, err := h.ticketService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetUserTickets(c *gin.Context) {
	sess, _ := utils.GetSession(c)
	tickets, err := h.ticketService.GetForUser(c.Request.Context(), sess, c.Query("userId"))
	if err != nil {
		h.respondTicketError(c, err, "Unauthorized to access tickets of other users")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ticketID, _ := payload["ticketId"].(string)
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticketId is required"})
		return
	}

	if err := h.ticketService.Update(c.Request.Context(), ticketID, payload); err != nil {
		h.respondTicketError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated successfully"})
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID := c.Query("ticketId")
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticketId is required"})
		return
	}

	sess, _ := utils.GetSession(c)
	if err := h.ticketService.Delete(c.Request.Context(), sess, ticketID); err != nil {
		h.respondTicketError(c, err, "Unauthorized to delete this ticket")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

func (h *TicketHandler) respondTicketError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, models.ErrForbidden) && forbiddenMsg != "":
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenMsg})
	default:
		respondError(c, err)
	}
}
