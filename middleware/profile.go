package middleware

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/utils"
	"homeserve/views"

	"github.com/gin-gonic/gin"
)

func loadProfile(c *gin.Context, svc marketplace.Service) (*models.UserProfile, bool) {
	profile, err := svc.GetCallerUserProfile(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load profile", err)
		return nil, false
	}
	if profile != nil {
		c.Set(utils.CtxProfile, profile)
	}
	return profile, true
}

// RequireProfile rejects API requests from callers who have not saved a profile.
func RequireProfile(svc marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := loadProfile(c, svc)
		if !ok {
			return
		}
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message:  "Profile required",
				Details:  "complete your profile before using this endpoint",
				Redirect: "/profile-setup",
			})
			return
		}
		c.Next()
	}
}

// RequireViewProfile renders the profile-setup view for every page until a
// profile is saved.
func RequireViewProfile(svc marketplace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := loadProfile(c, svc)
		if !ok {
			return
		}
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusOK, views.View{Name: views.ProfileSetup, Path: viewPath(c)})
			return
		}
		c.Next()
	}
}

// Profile returns the profile loaded by the profile gate.
func Profile(c *gin.Context) *models.UserProfile {
	v, ok := c.Get(utils.CtxProfile)
	if !ok {
		return nil
	}
	profile, _ := v.(*models.UserProfile)
	return profile
}
