package marketplace

import (
	"context"

	"homeserve/models"
)

// Service is the data-access surface used by handlers and views. Reads are
// served from the query cache; writes invalidate the reads they affect.
type Service interface {
	GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error
	GetUserProfile(ctx context.Context, user models.Principal) (*models.UserProfile, error)
	GetCallerUserRole(ctx context.Context) (models.UserRole, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	AssignCallerUserRole(ctx context.Context, user models.Principal, role models.UserRole) error
	SetUserAppRole(ctx context.Context, user models.Principal, role models.AppRole) error

	StartVerification(ctx context.Context, mobileNumber string) (models.MobileVerificationStatus, error)
	CompleteVerification(ctx context.Context, req models.VerificationRequest) (models.MobileVerificationStatus, error)

	GetServiceCategories(ctx context.Context) ([]models.ServiceCategory, error)
	CreateServiceCategory(ctx context.Context, name, description string) (models.ServiceCategoryID, error)
	GetAvailableTimeSlots(ctx context.Context, category models.ServiceCategoryID) ([]string, error)
	GetSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	CreateSubscriptionPlan(ctx context.Context, name string, price uint64) (models.SubscriptionPlanID, error)

	CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error)
	GetMyBookings(ctx context.Context) ([]models.Booking, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
	DemoBookingsWithLocations(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id models.BookingID, status models.BookingStatus) error
	AssignStaffToBooking(ctx context.Context, id models.BookingID, staff models.Principal) error

	CreateSupportTicket(ctx context.Context, message string) (models.SupportTicketID, error)
	GetMySupportTickets(ctx context.Context) ([]models.SupportTicket, error)
	GetAllSupportTickets(ctx context.Context) ([]models.SupportTicket, error)
	SubmitFeedback(ctx context.Context, booking models.BookingID, rating uint64, comments string) error
	GetAllFeedback(ctx context.Context) ([]models.Feedback, error)

	RecordPayment(ctx context.Context, booking models.BookingID, method string, amount uint64) (models.PaymentID, error)
	GetAllPayments(ctx context.Context) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id models.PaymentID, status string) error

	GetIVRTasks(ctx context.Context) ([]models.IVRTask, error)
	UpdateIVRTaskStatus(ctx context.Context, id models.IVRTaskID, status string) error
	CreateIvrVerification(ctx context.Context, req models.IVRBookingRequest) error
}
