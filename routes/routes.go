package routes

import (
	"time"

	"homeserve/handlers"
	"homeserve/middleware"
	"homeserve/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterAuthRoutes registers the development login when enabled.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if !hb.EnableDevLogin {
		return
	}
	r.POST("/auth/dev-login", hb.Auth.DevLogin)
}

// RegisterViewRoutes serves page views. Every page needs an identity and a
// saved profile; the resolver applies the per-page role rules.
func RegisterViewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	v := r.Group("/views")
	v.Use(middleware.RequireViewIdentity(hb.Issuer), middleware.RequireViewProfile(hb.Svc))
	v.GET("/*path", hb.View.Render)
}

// RegisterMeRoutes registers the caller's own profile, role and
// verification endpoints. These only need an identity.
func RegisterMeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	me := r.Group("/api/me")
	{
		me.Use(middleware.RequireIdentity(hb.Issuer))
		me.GET("/profile", hb.Profile.GetProfile)
		me.PUT("/profile", hb.Profile.SaveProfile)
		me.GET("/role", hb.Profile.GetRole)
		me.GET("/admin", hb.Profile.IsAdmin)
		me.POST("/verification/start", hb.Profile.StartVerification)
		me.POST("/verification/complete", hb.Profile.CompleteVerification)
	}
}

// RegisterAPIRoutes registers the marketplace endpoints, which need an
// identity and a saved profile. Authorization beyond that is the backend's.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.RequireIdentity(hb.Issuer), middleware.RequireProfile(hb.Svc))

	catalog := api.Group("")
	{
		catalog.GET("/categories", hb.Catalog.ListCategories)
		catalog.POST("/categories", hb.Catalog.CreateCategory)
		catalog.GET("/categories/:id/slots", hb.Catalog.ListSlots)
		catalog.GET("/plans", hb.Catalog.ListPlans)
		catalog.POST("/plans", hb.Catalog.CreatePlan)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", hb.Booking.CreateBooking)
		bookings.GET("", hb.Booking.AllBookings)
		bookings.GET("/mine", hb.Booking.MyBookings)
		bookings.GET("/demo", hb.Booking.DemoBookings)
		bookings.PUT("/:id/status", hb.Booking.UpdateStatus)
		bookings.PUT("/:id/staff", hb.Booking.AssignStaff)
	}

	support := api.Group("")
	{
		support.POST("/support/tickets", hb.Support.CreateTicket)
		support.GET("/support/tickets", hb.Support.AllTickets)
		support.GET("/support/tickets/mine", hb.Support.MyTickets)
		support.POST("/feedback", hb.Support.SubmitFeedback)
		support.GET("/feedback", hb.Support.AllFeedback)
	}

	payments := api.Group("/payments")
	{
		payments.POST("", hb.Payment.RecordPayment)
		payments.GET("", hb.Payment.AllPayments)
		payments.PUT("/:id/status", hb.Payment.UpdateStatus)
	}

	ivrGroup := api.Group("/ivr")
	{
		ivrGroup.GET("/tasks", hb.IVR.ListTasks)
		ivrGroup.PUT("/tasks/:id/status", hb.IVR.UpdateTaskStatus)
		ivrGroup.POST("/bookings", hb.IVR.CreateBooking)

		settings := ivrGroup.Group("/settings")
		settings.Use(middleware.RequireAppRole(models.AppRoleAdmin))
		settings.GET("", hb.IVR.GetSettings)
		settings.PUT("", hb.IVR.UpdateSettings)
	}

	users := api.Group("/users")
	{
		users.GET("/:principal/profile", hb.Admin.GetUserProfile)
		users.PUT("/:principal/app-role", hb.Admin.SetAppRole)
		users.PUT("/:principal/role", hb.Admin.AssignRole)
	}
}

// RegisterWebhookRoutes registers provider callbacks, authenticated by a
// shared secret rather than a caller identity.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhooks/ivr", hb.IVR.Webhook)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader, handlers.WebhookSecretHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterViewRoutes(r, hb)
	RegisterMeRoutes(r, hb)
	RegisterAPIRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
}
