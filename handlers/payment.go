package handlers

import (
	"context"
	"net/http"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/services/payment"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler records and lists booking payments.
type PaymentHandler struct {
	Svc     marketplace.Service
	Intents payment.IntentCreator // nil when card payments are not configured
}

func NewPaymentHandler(svc marketplace.Service, intents payment.IntentCreator) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Intents: intents}
}

// RecordPayment handles POST /api/payments. A card payment opens a payment
// intent first; nothing is recorded if that fails, and the intent is
// cancelled if recording fails.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req struct {
		BookingID *models.BookingID `json:"bookingId" binding:"required"`
		Method    string            `json:"method" binding:"required,oneof=cash card upi"`
		Amount    uint64            `json:"amount" binding:"required,min=1,max=9223372036854775807"`
	}
	if !bindJSON(c, &req) {
		return
	}
	logger := middleware.RequestLogger(c)
	booking := *req.BookingID

	var intent *models.PaymentIntent
	if req.Method == models.PaymentMethodCard && h.Intents != nil {
		var err error
		intent, err = h.Intents.CreateIntent(c.Request.Context(), booking, req.Amount)
		if err != nil {
			logger.Error("Card payment intent failed", zap.Uint64("booking", uint64(booking)), zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Failed to create card payment", err.Error())
			return
		}
	}

	id, err := h.Svc.RecordPayment(c.Request.Context(), booking, req.Method, req.Amount)
	if err != nil {
		if intent != nil {
			if cerr := h.Intents.CancelIntent(context.WithoutCancel(c.Request.Context()), intent.ID); cerr != nil {
				logger.Error("Failed to cancel orphaned payment intent", zap.String("intent", intent.ID), zap.Error(cerr))
			}
		}
		utils.ActorError(c, "Failed to record payment", err)
		return
	}
	logger.Info("Payment recorded", zap.Uint64("payment", uint64(id)), zap.String("method", req.Method))

	resp := gin.H{"id": id}
	if intent != nil {
		resp["intent"] = intent
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) AllPayments(c *gin.Context) {
	payments, err := h.Svc.GetAllPayments(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load payments", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(payments))
}

// UpdateStatus handles PUT /api/payments/:id/status.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.UpdatePaymentStatus(c.Request.Context(), models.PaymentID(id), req.Status); err != nil {
		utils.ActorError(c, "Failed to update payment status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}
