package handlers

import (
	"net/http"
	"time"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/marketplace"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking creation, listing and lifecycle updates.
type BookingHandler struct {
	Svc marketplace.Service
	now func() time.Time
}

func NewBookingHandler(svc marketplace.Service) *BookingHandler {
	return &BookingHandler{Svc: svc, now: time.Now}
}

// CreateBooking handles POST /api/bookings. Unverified callers are refused
// before the backend is contacted. A missing preferredTime defaults to now.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req struct {
		ServiceCategory *models.ServiceCategoryID `json:"serviceCategory" binding:"required"`
		Address         string                    `json:"address" binding:"required"`
		TimeSlot        string                    `json:"timeSlot" binding:"required"`
		PreferredTime   models.Time               `json:"preferredTime"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if profile, ok := c.Get(utils.CtxProfile); ok {
		if p, _ := profile.(*models.UserProfile); p != nil && !p.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message:  "Mobile verification required",
				Details:  "verify your mobile number before booking services",
				Redirect: "/profile-setup",
			})
			return
		}
	}

	booking := models.BookingRequest{
		ServiceCategory: *req.ServiceCategory,
		Address:         req.Address,
		TimeSlot:        req.TimeSlot,
		PreferredTime:   req.PreferredTime,
	}
	if booking.PreferredTime == 0 {
		booking.PreferredTime = models.FromTime(h.now())
	}
	if err := booking.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking", err.Error())
		return
	}

	resp, err := h.Svc.CreateBooking(c.Request.Context(), booking)
	if err != nil {
		utils.ActorError(c, "Failed to create booking", err)
		return
	}
	middleware.RequestLogger(c).Info("Booking created", zap.Uint64("category", uint64(booking.ServiceCategory)))
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	bookings, err := h.Svc.GetMyBookings(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(bookings))
}

func (h *BookingHandler) AllBookings(c *gin.Context) {
	bookings, err := h.Svc.GetAllBookings(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(bookings))
}

func (h *BookingHandler) DemoBookings(c *gin.Context) {
	bookings, err := h.Svc.DemoBookingsWithLocations(c.Request.Context())
	if err != nil {
		utils.ActorError(c, "Failed to load demo bookings", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(bookings))
}

// UpdateStatus handles PUT /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !req.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking status", string(req.Status))
		return
	}
	if err := h.Svc.UpdateBookingStatus(c.Request.Context(), models.BookingID(id), req.Status); err != nil {
		utils.ActorError(c, "Failed to update booking status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated"})
}

// AssignStaff handles PUT /api/bookings/:id/staff.
func (h *BookingHandler) AssignStaff(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Staff models.Principal `json:"staff" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.AssignStaffToBooking(c.Request.Context(), models.BookingID(id), req.Staff); err != nil {
		utils.ActorError(c, "Failed to assign staff", err)
		return
	}
	middleware.RequestLogger(c).Info("Staff assigned", zap.Uint64("booking", id), zap.String("staff", string(req.Staff)))
	c.JSON(http.StatusOK, gin.H{"message": "Staff assigned"})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
