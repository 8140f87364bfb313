package utils

import (
	"errors"
	"net/http"

	"homeserve/services/actor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	zap.L().Warn(message, zap.String("details", details), zap.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}

// ActorError reports a failed remote call with the raw actor message as details.
func ActorError(c *gin.Context, message string, err error) {
	JSONError(c, ActorStatus(err), message, err.Error())
}

// ActorStatus maps a remote failure onto the gateway response status.
// Client errors reported by the actor pass through; everything else is a bad gateway.
func ActorStatus(err error) int {
	var callErr *actor.CallError
	if errors.As(err, &callErr) && callErr.Status >= 400 && callErr.Status < 500 {
		return callErr.Status
	}
	return http.StatusBadGateway
}
