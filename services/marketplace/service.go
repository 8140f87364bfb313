package marketplace

import (
	"context"
	"strconv"

	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/services/query"
)

// DefaultMarketplaceService binds each actor procedure to its resource key
// or to the keys it invalidates.
type DefaultMarketplaceService struct {
	Actor actor.Actor
	Cache *query.Client
}

var _ Service = (*DefaultMarketplaceService)(nil)

func NewService(a actor.Actor, cache *query.Client) *DefaultMarketplaceService {
	return &DefaultMarketplaceService{Actor: a, Cache: cache}
}

// Profiles and roles.

func (s *DefaultMarketplaceService) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyCurrentUserProfile), s.Actor.GetCallerUserProfile)
}

func (s *DefaultMarketplaceService) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.SaveCallerUserProfile(ctx, profile)
	}, query.KeyCurrentUserProfile)
}

func (s *DefaultMarketplaceService) GetUserProfile(ctx context.Context, user models.Principal) (*models.UserProfile, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyUserProfile, string(user)), func(ctx context.Context) (*models.UserProfile, error) {
		return s.Actor.GetUserProfile(ctx, user)
	})
}

func (s *DefaultMarketplaceService) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyCallerRole), s.Actor.GetCallerUserRole)
}

func (s *DefaultMarketplaceService) IsCallerAdmin(ctx context.Context) (bool, error) {
	return s.Actor.IsCallerAdmin(ctx)
}

func (s *DefaultMarketplaceService) AssignCallerUserRole(ctx context.Context, user models.Principal, role models.UserRole) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.AssignCallerUserRole(ctx, user, role)
	}, query.KeyCurrentUserProfile, query.KeyCallerRole)
}

func (s *DefaultMarketplaceService) SetUserAppRole(ctx context.Context, user models.Principal, role models.AppRole) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.SetUserAppRole(ctx, user, role)
	}, query.KeyCurrentUserProfile, query.KeyUserProfile)
}

// Mobile verification.

func (s *DefaultMarketplaceService) StartVerification(ctx context.Context, mobileNumber string) (models.MobileVerificationStatus, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.MobileVerificationStatus, error) {
		return s.Actor.StartVerification(ctx, mobileNumber)
	})
}

func (s *DefaultMarketplaceService) CompleteVerification(ctx context.Context, req models.VerificationRequest) (models.MobileVerificationStatus, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.MobileVerificationStatus, error) {
		return s.Actor.CompleteVerification(ctx, req)
	}, query.KeyCurrentUserProfile)
}

// Catalog.

func (s *DefaultMarketplaceService) GetServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyServiceCategories), s.Actor.ViewServiceCategories)
}

func (s *DefaultMarketplaceService) CreateServiceCategory(ctx context.Context, name, description string) (models.ServiceCategoryID, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.ServiceCategoryID, error) {
		return s.Actor.CreateServiceCategory(ctx, name, description)
	}, query.KeyServiceCategories)
}

func (s *DefaultMarketplaceService) GetAvailableTimeSlots(ctx context.Context, category models.ServiceCategoryID) ([]string, error) {
	ref := query.Resource(query.KeyAvailableTimeSlots, strconv.FormatUint(uint64(category), 10))
	return query.Fetch(ctx, s.Cache, ref, func(ctx context.Context) ([]string, error) {
		return s.Actor.GetAvailableTimeSlots(ctx, category)
	})
}

func (s *DefaultMarketplaceService) GetSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeySubscriptionPlans), s.Actor.GetSubscriptionPlans)
}

func (s *DefaultMarketplaceService) CreateSubscriptionPlan(ctx context.Context, name string, price uint64) (models.SubscriptionPlanID, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.SubscriptionPlanID, error) {
		return s.Actor.CreateSubscriptionPlan(ctx, name, price)
	}, query.KeySubscriptionPlans)
}

// Bookings.

func (s *DefaultMarketplaceService) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.BookingResponse, error) {
		return s.Actor.CreateBooking(ctx, req)
	}, query.KeyMyBookings, query.KeyAllBookings)
}

func (s *DefaultMarketplaceService) GetMyBookings(ctx context.Context) ([]models.Booking, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyMyBookings), s.Actor.GetMyBookings)
}

func (s *DefaultMarketplaceService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyAllBookings), s.Actor.GetAllBookings)
}

func (s *DefaultMarketplaceService) DemoBookingsWithLocations(ctx context.Context) ([]models.Booking, error) {
	return s.Actor.DemoBookingsWithLocations(ctx)
}

func (s *DefaultMarketplaceService) UpdateBookingStatus(ctx context.Context, id models.BookingID, status models.BookingStatus) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.UpdateBookingStatus(ctx, id, status)
	}, query.KeyMyBookings, query.KeyAllBookings)
}

func (s *DefaultMarketplaceService) AssignStaffToBooking(ctx context.Context, id models.BookingID, staff models.Principal) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.AssignStaffToBooking(ctx, id, staff)
	}, query.KeyAllBookings)
}

// Support and feedback.

func (s *DefaultMarketplaceService) CreateSupportTicket(ctx context.Context, message string) (models.SupportTicketID, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.SupportTicketID, error) {
		return s.Actor.CreateSupportTicket(ctx, message)
	}, query.KeyMySupportTickets, query.KeyAllSupportTickets)
}

func (s *DefaultMarketplaceService) GetMySupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyMySupportTickets), s.Actor.GetMySupportTickets)
}

func (s *DefaultMarketplaceService) GetAllSupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyAllSupportTickets), s.Actor.GetAllSupportTickets)
}

func (s *DefaultMarketplaceService) SubmitFeedback(ctx context.Context, booking models.BookingID, rating uint64, comments string) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.SubmitFeedback(ctx, booking, rating, comments)
	}, query.KeyAllFeedback)
}

func (s *DefaultMarketplaceService) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyAllFeedback), s.Actor.GetAllFeedback)
}

// Payments.

func (s *DefaultMarketplaceService) RecordPayment(ctx context.Context, booking models.BookingID, method string, amount uint64) (models.PaymentID, error) {
	return query.Mutate(ctx, s.Cache, func(ctx context.Context) (models.PaymentID, error) {
		return s.Actor.RecordPayment(ctx, booking, method, amount)
	}, query.KeyAllPayments)
}

func (s *DefaultMarketplaceService) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyAllPayments), s.Actor.GetAllPayments)
}

func (s *DefaultMarketplaceService) UpdatePaymentStatus(ctx context.Context, id models.PaymentID, status string) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.UpdatePaymentStatus(ctx, id, status)
	}, query.KeyAllPayments)
}

// IVR.

func (s *DefaultMarketplaceService) GetIVRTasks(ctx context.Context) ([]models.IVRTask, error) {
	return query.Fetch(ctx, s.Cache, query.Resource(query.KeyIVRTasks), s.Actor.GetIVRTasks)
}

func (s *DefaultMarketplaceService) UpdateIVRTaskStatus(ctx context.Context, id models.IVRTaskID, status string) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.UpdateIVRTaskStatus(ctx, id, status)
	}, query.KeyIVRTasks)
}

func (s *DefaultMarketplaceService) CreateIvrVerification(ctx context.Context, req models.IVRBookingRequest) error {
	return query.Exec(ctx, s.Cache, func(ctx context.Context) error {
		return s.Actor.CreateIvrVerification(ctx, req)
	}, query.KeyIVRTasks, query.KeyAllBookings)
}
