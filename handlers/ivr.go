package handlers

import (
	"errors"
	"net/http"

	"homeserve/metrics"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/ivr"
	"homeserve/services/marketplace"
	"homeserve/services/tasks"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IVRHandler serves IVR call tasks, phone bookings and provider settings.
type IVRHandler struct {
	Svc      marketplace.Service
	Settings *ivr.SettingsService
	Queue    tasks.IVRBookingQueue
}

func NewIVRHandler(svc marketplace.Service, settings *ivr.SettingsService, queue tasks.IVRBookingQueue) *IVRHandler {
	return &IVRHandler{Svc: svc, Settings: settings, Queue: queue}
}

func (h *IVRHandler) ListTasks(c *gin.Context) {
	list, err := h.Svc.GetIVRTasks(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load IVR tasks", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// UpdateTaskStatus handles PUT /api/ivr/tasks/:id/status.
func (h *IVRHandler) UpdateTaskStatus(c *gin.Context) {
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
	if err := h.Svc.UpdateIVRTaskStatus(c.Request.Context(), models.IVRTaskID(id), req.Status); err != nil {
		utils.ActorError(c, "Failed to update IVR task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "IVR task updated"})
}

// CreateBooking handles POST /api/ivr/bookings, a phone booking keyed in by staff.
func (h *IVRHandler) CreateBooking(c *gin.Context) {
	var req models.IVRBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid IVR booking", err.Error())
		return
	}
	if err := h.Svc.CreateIvrVerification(c.Request.Context(), req); err != nil {
		utils.ActorError(c, "Failed to create IVR booking", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "IVR booking created"})
}

// GetSettings handles GET /api/ivr/settings.
func (h *IVRHandler) GetSettings(c *gin.Context) {
	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		middleware.RequestLogger(c).Error("Failed to load IVR settings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load IVR settings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":         settings,
		"webhookSecretSet": settings.HasWebhookSecret(),
		"providers":        ivr.Providers,
	})
}

// UpdateSettings handles PUT /api/ivr/settings.
func (h *IVRHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		ProviderName  string `json:"providerName" binding:"required"`
		IVRNumber     string `json:"ivrNumber" binding:"required"`
		WebhookSecret string `json:"webhookSecret"`
	}
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.Settings.Update(c.Request.Context(), middleware.Principal(c), ivr.SettingsUpdate{
		ProviderName:  req.ProviderName,
		IVRNumber:     req.IVRNumber,
		WebhookSecret: req.WebhookSecret,
	})
	if err != nil {
		middleware.RequestLogger(c).Warn("IVR settings update failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Failed to save IVR settings", err.Error())
		return
	}
	middleware.RequestLogger(c).Info("IVR settings updated", zap.String("provider", settings.ProviderName))
	c.JSON(http.StatusOK, gin.H{"settings": settings, "webhookSecretSet": settings.HasWebhookSecret()})
}

// WebhookSecretHeader carries the shared secret configured for the provider.
const WebhookSecretHeader = "X-IVR-Secret"

// Webhook handles POST /webhooks/ivr from the telephony provider.
func (h *IVRHandler) Webhook(c *gin.Context) {
	logger := middleware.RequestLogger(c)
	ctx := c.Request.Context()

	if err := h.Settings.VerifyWebhookSecret(ctx, c.GetHeader(WebhookSecretHeader)); err != nil {
		switch {
		case errors.Is(err, ivr.ErrWebhookNotConfigured):
			metrics.IncIVRWebhook("unconfigured")
			utils.JSONError(c, http.StatusServiceUnavailable, "IVR webhook not configured", err.Error())
		case errors.Is(err, ivr.ErrWebhookSecret):
			metrics.IncIVRWebhook("unauthorized")
			utils.JSONError(c, http.StatusUnauthorized, "Invalid webhook secret", "")
		default:
			metrics.IncIVRWebhook("error")
			logger.Error("IVR webhook verification failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to verify webhook", err.Error())
		}
		return
	}

	var req models.IVRBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncIVRWebhook("invalid")
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		metrics.IncIVRWebhook("invalid")
		utils.JSONError(c, http.StatusBadRequest, "Invalid IVR booking", err.Error())
		return
	}

	if err := h.Queue.Enqueue(ctx, req); err != nil {
		metrics.IncIVRWebhook("error")
		logger.Error("Failed to queue IVR booking", zap.Error(err))
		utils.ActorError(c, "Failed to accept IVR booking", err)
		return
	}
	metrics.IncIVRWebhook("accepted")
	c.JSON(http.StatusAccepted, gin.H{"message": "IVR booking accepted"})
}
