package middleware

import (
	"net/http"

	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// RequireAppRole allows only callers whose profile carries one of roles.
// It must run after RequireProfile.
func RequireAppRole(roles ...models.AppRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := Profile(c)
		if profile != nil {
			for _, r := range roles {
				if profile.AppRole == r {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
			Message: "Access denied",
			Details: "your role does not permit this action",
		})
	}
}
