package handlers

import (
	"net/http"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the caller's own profile, role and verification.
type ProfileHandler struct {
	Svc marketplace.Service
}

func NewProfileHandler(svc marketplace.Service) *ProfileHandler {
	return &ProfileHandler{Svc: svc}
}

// GetProfile handles GET /api/me/profile. A caller without a profile gets null.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.Svc.GetCallerUserProfile(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SaveProfile handles PUT /api/me/profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req struct {
		AppRole      models.AppRole `json:"appRole" binding:"required"`
		Name         string         `json:"name" binding:"required"`
		Zone         string         `json:"zone"`
		MobileNumber string         `json:"mobileNumber" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	profile := models.UserProfile{AppRole: req.AppRole, Name: req.Name, Zone: req.Zone, MobileNumber: req.MobileNumber}
	if err := profile.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile", err.Error())
		return
	}

	if err := h.Svc.SaveCallerUserProfile(c.Request.Context(), profile); err != nil {
		utils.ActorError(c, "Failed to save profile", err)
		return
	}
	middleware.RequestLogger(c).Info("Profile saved", zap.String("appRole", string(profile.AppRole)))
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved"})
}

// GetRole handles GET /api/me/role.
func (h *ProfileHandler) GetRole(c *gin.Context) {
	role, err := h.Svc.GetCallerUserRole(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// IsAdmin handles GET /api/me/admin.
func (h *ProfileHandler) IsAdmin(c *gin.Context) {
	isAdmin, err := h.Svc.IsCallerAdmin(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to check admin status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}

// StartVerification handles POST /api/me/verification/start.
func (h *ProfileHandler) StartVerification(c *gin.Context) {
	var req struct {
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	status, err := h.Svc.StartVerification(c.Request.Context(), req.MobileNumber)
	if err != nil {
		utils.ActorError(c, "Failed to start verification", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CompleteVerification handles POST /api/me/verification/complete.
func (h *ProfileHandler) CompleteVerification(c *gin.Context) {
	var req struct {
		MobileNumber     string `json:"mobileNumber" binding:"required"`
		VerificationCode string `json:"verificationCode" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	status, err := h.Svc.CompleteVerification(c.Request.Context(), models.VerificationRequest{
		MobileNumber:     req.MobileNumber,
		VerificationCode: req.VerificationCode,
	})
	if err != nil {
		utils.ActorError(c, "Failed to complete verification", err)
		return
	}
	c.JSON(http.StatusOK, status)
}
