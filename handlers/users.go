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

// AdminHandler manages other users' profiles and roles.
type AdminHandler struct {
	Svc marketplace.Service
}

func NewAdminHandler(svc marketplace.Service) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// GetUserProfile handles GET /api/users/:principal/profile.
func (h *AdminHandler) GetUserProfile(c *gin.Context) {
	user := models.Principal(c.Param("principal"))
	profile, err := h.Svc.GetUserProfile(c.Request.Context(), user)
	if err != nil {
		utils.ActorError(c, "Failed to load user profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetAppRole handles PUT /api/users/:principal/app-role.
func (h *AdminHandler) SetAppRole(c *gin.Context) {
	var req struct {
		Role models.AppRole `json:"role" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !req.Role.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role", string(req.Role))
		return
	}
	user := models.Principal(c.Param("principal"))
	if err := h.Svc.SetUserAppRole(c.Request.Context(), user, req.Role); err != nil {
		utils.ActorError(c, "Failed to update app role", err)
		return
	}
	middleware.RequestLogger(c).Info("App role updated", zap.String("user", string(user)), zap.String("role", string(req.Role)))
	c.JSON(http.StatusOK, gin.H{"message": "App role updated"})
}

// AssignRole handles PUT /api/users/:principal/role.
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req struct {
		Role models.UserRole `json:"role" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !req.Role.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role", string(req.Role))
		return
	}
	user := models.Principal(c.Param("principal"))
	if err := h.Svc.AssignCallerUserRole(c.Request.Context(), user, req.Role); err != nil {
		utils.ActorError(c, "Failed to assign role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role assigned"})
}
