package middleware

import (
	"net/http"
	"strings"

	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/utils"
	"homeserve/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func identity(issuer *utils.TokenIssuer, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			reject(c)
			return
		}

		principal, err := issuer.ExtractPrincipal(tokenString)
		if err != nil {
			RequestLogger(c).Debug("Rejected identity token", zap.Error(err))
			reject(c)
			return
		}

		c.Set(utils.CtxPrincipal, models.Principal(principal))
		ctx := actor.WithCaller(c.Request.Context(), actor.Caller{
			Principal: models.Principal(principal),
			Token:     tokenString,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireIdentity rejects API requests without a valid bearer token.
func RequireIdentity(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return identity(issuer, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
			Message: "Authentication required",
			Details: "missing or invalid bearer token",
		})
	})
}

// RequireViewIdentity sends unauthenticated page requests to the login view.
func RequireViewIdentity(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return identity(issuer, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, views.View{Name: views.Login, Path: viewPath(c)})
	})
}

// Principal returns the caller set by the identity middleware.
func Principal(c *gin.Context) models.Principal {
	p, _ := c.Get(utils.CtxPrincipal)
	principal, _ := p.(models.Principal)
	return principal
}

func viewPath(c *gin.Context) string {
	if p := c.Param("path"); p != "" {
		return p
	}
	return c.Request.URL.Path
}
