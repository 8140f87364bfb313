package handlers

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// SupportHandler serves support tickets and booking feedback.
type SupportHandler struct {
	Svc marketplace.Service
}

func NewSupportHandler(svc marketplace.Service) *SupportHandler {
	return &SupportHandler{Svc: svc}
}

func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Svc.CreateSupportTicket(c.Request.Context(), req.Message)
	if err != nil {
		utils.ActorError(c, "Failed to create support ticket", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *SupportHandler) MyTickets(c *gin.Context) {
	tickets, err := h.Svc.GetMySupportTickets(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load support tickets", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tickets))
}

func (h *SupportHandler) AllTickets(c *gin.Context) {
	tickets, err := h.Svc.GetAllSupportTickets(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load support tickets", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tickets))
}

// SubmitFeedback handles POST /api/feedback. Ratings run from 1 to 5.
func (h *SupportHandler) SubmitFeedback(c *gin.Context) {
	var req struct {
		BookingID *models.BookingID `json:"bookingId" binding:"required"`
		Rating    uint64            `json:"rating" binding:"required,min=1,max=5"`
		Comments  string            `json:"comments"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.SubmitFeedback(c.Request.Context(), *req.BookingID, req.Rating, req.Comments); err != nil {
		utils.ActorError(c, "Failed to submit feedback", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted"})
}

func (h *SupportHandler) AllFeedback(c *gin.Context) {
	feedback, err := h.Svc.GetAllFeedback(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load feedback", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(feedback))
}
