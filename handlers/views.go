package handlers

import (
	"net/http"

	"homeserve/middleware"
	"homeserve/utils"
	"homeserve/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewHandler resolves page paths into view documents.
type ViewHandler struct {
	Resolver *views.Resolver
}

func NewViewHandler(resolver *views.Resolver) *ViewHandler {
	return &ViewHandler{Resolver: resolver}
}

// Render handles GET /views/*path. It runs behind the identity and profile gates.
func (h *ViewHandler) Render(c *gin.Context) {
	profile := middleware.Profile(c)
	if profile == nil {
		c.JSON(http.StatusOK, views.View{Name: views.ProfileSetup, Path: c.Param("path")})
		return
	}

	v, status, err := h.Resolver.Resolve(c.Request.Context(), views.Request{
		Path:      c.Param("path"),
		Query:     c.Request.URL.Query(),
		Principal: middleware.Principal(c),
		Profile:   *profile,
	})
	if err != nil {
		middleware.RequestLogger(c).Warn("View failed", zap.String("path", c.Param("path")), zap.Error(err))
		utils.ActorError(c, "Failed to load page", err)
		return
	}
	c.JSON(status, v)
}
