package handlers

import (
	"net/http"

	"homeserve/middleware"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler mints identity tokens for local development.
type AuthHandler struct {
	Issuer *utils.TokenIssuer
}

func NewAuthHandler(issuer *utils.TokenIssuer) *AuthHandler {
	return &AuthHandler{Issuer: issuer}
}

// DevLogin handles POST /auth/dev-login. It is only routed outside production.
func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req struct {
		Principal string `json:"principal" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.Issuer.GenerateToken(req.Principal, utils.DevTokenTTL)
	if err != nil {
		middleware.RequestLogger(c).Error("Failed to sign dev token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to sign token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"principal": req.Principal,
		"expiresIn": int(utils.DevTokenTTL.Seconds()),
	})
}
