package actor

import (
	"context"

	"homeserve/models"
)

var _ Actor = (*HTTPActor)(nil)

func (a *HTTPActor) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile *models.UserProfile
	if err := a.call(ctx, "getCallerUserProfile", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (a *HTTPActor) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	return a.call(ctx, "saveCallerUserProfile", map[string]any{"profile": profile}, nil)
}

func (a *HTTPActor) GetUserProfile(ctx context.Context, user models.Principal) (*models.UserProfile, error) {
	var profile *models.UserProfile
	if err := a.call(ctx, "getUserProfile", map[string]any{"user": user}, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (a *HTTPActor) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	var role models.UserRole
	err := a.call(ctx, "getCallerUserRole", nil, &role)
	return role, err
}

func (a *HTTPActor) IsCallerAdmin(ctx context.Context) (bool, error) {
	var admin bool
	err := a.call(ctx, "isCallerAdmin", nil, &admin)
	return admin, err
}

func (a *HTTPActor) AssignCallerUserRole(ctx context.Context, user models.Principal, role models.UserRole) error {
	return a.call(ctx, "assignCallerUserRole", map[string]any{"user": user, "role": role}, nil)
}

func (a *HTTPActor) SetUserAppRole(ctx context.Context, user models.Principal, role models.AppRole) error {
	return a.call(ctx, "setUserAppRole", map[string]any{"user": user, "newRole": role}, nil)
}

func (a *HTTPActor) StartVerification(ctx context.Context, mobileNumber string) (models.MobileVerificationStatus, error) {
	var status models.MobileVerificationStatus
	err := a.call(ctx, "startVerification", map[string]any{"mobileNumber": mobileNumber}, &status)
	return status, err
}

func (a *HTTPActor) CompleteVerification(ctx context.Context, req models.VerificationRequest) (models.MobileVerificationStatus, error) {
	var status models.MobileVerificationStatus
	err := a.call(ctx, "completeVerification", map[string]any{"request": req}, &status)
	return status, err
}

func (a *HTTPActor) ViewServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	err := a.call(ctx, "viewServiceCategories", nil, &categories)
	return categories, err
}

func (a *HTTPActor) CreateServiceCategory(ctx context.Context, name, description string) (models.ServiceCategoryID, error) {
	var id models.ServiceCategoryID
	err := a.call(ctx, "createServiceCategory", map[string]any{"name": name, "description": description}, &id)
	return id, err
}

func (a *HTTPActor) GetAvailableTimeSlots(ctx context.Context, category models.ServiceCategoryID) ([]string, error) {
	var slots []string
	err := a.call(ctx, "getAvailableTimeSlots", map[string]any{"serviceCategory": category}, &slots)
	return slots, err
}

func (a *HTTPActor) GetSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := a.call(ctx, "getSubscriptionPlans", nil, &plans)
	return plans, err
}

func (a *HTTPActor) CreateSubscriptionPlan(ctx context.Context, name string, price uint64) (models.SubscriptionPlanID, error) {
	var id models.SubscriptionPlanID
	err := a.call(ctx, "createSubscriptionPlan", map[string]any{"name": name, "price": price}, &id)
	return id, err
}

func (a *HTTPActor) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	var resp models.BookingResponse
	err := a.call(ctx, "createBooking", map[string]any{"request": req}, &resp)
	return resp, err
}

func (a *HTTPActor) GetMyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := a.call(ctx, "getMyBookings", nil, &bookings)
	return bookings, err
}

func (a *HTTPActor) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := a.call(ctx, "getAllBookings", nil, &bookings)
	return bookings, err
}

func (a *HTTPActor) DemoBookingsWithLocations(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := a.call(ctx, "demoBookingsWithLocations", nil, &bookings)
	return bookings, err
}

func (a *HTTPActor) UpdateBookingStatus(ctx context.Context, id models.BookingID, status models.BookingStatus) error {
	return a.call(ctx, "updateBookingStatus", map[string]any{"bookingId": id, "newStatus": status}, nil)
}

func (a *HTTPActor) AssignStaffToBooking(ctx context.Context, id models.BookingID, staff models.Principal) error {
	return a.call(ctx, "assignStaffToBooking", map[string]any{"bookingId": id, "staffPrincipal": staff}, nil)
}

func (a *HTTPActor) CreateSupportTicket(ctx context.Context, message string) (models.SupportTicketID, error) {
	var id models.SupportTicketID
	err := a.call(ctx, "createSupportTicket", map[string]any{"message": message}, &id)
	return id, err
}

func (a *HTTPActor) GetMySupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := a.call(ctx, "getMySupportTickets", nil, &tickets)
	return tickets, err
}

func (a *HTTPActor) GetAllSupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := a.call(ctx, "getAllSupportTickets", nil, &tickets)
	return tickets, err
}

func (a *HTTPActor) SubmitFeedback(ctx context.Context, booking models.BookingID, rating uint64, comments string) error {
	return a.call(ctx, "submitFeedback", map[string]any{"bookingId": booking, "rating": rating, "comments": comments}, nil)
}

func (a *HTTPActor) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := a.call(ctx, "getAllFeedback", nil, &feedback)
	return feedback, err
}

func (a *HTTPActor) RecordPayment(ctx context.Context, booking models.BookingID, method string, amount uint64) (models.PaymentID, error) {
	var id models.PaymentID
	err := a.call(ctx, "recordPayment", map[string]any{"bookingId": booking, "method": method, "amount": amount}, &id)
	return id, err
}

func (a *HTTPActor) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := a.call(ctx, "getAllPayments", nil, &payments)
	return payments, err
}

func (a *HTTPActor) UpdatePaymentStatus(ctx context.Context, id models.PaymentID, status string) error {
	return a.call(ctx, "updatePaymentStatus", map[string]any{"paymentId": id, "newStatus": status}, nil)
}

func (a *HTTPActor) GetIVRTasks(ctx context.Context) ([]models.IVRTask, error) {
	var tasks []models.IVRTask
	err := a.call(ctx, "getIVRTasks", nil, &tasks)
	return tasks, err
}

func (a *HTTPActor) UpdateIVRTaskStatus(ctx context.Context, id models.IVRTaskID, status string) error {
	return a.call(ctx, "updateIVRTaskStatus", map[string]any{"taskId": id, "newStatus": status}, nil)
}

func (a *HTTPActor) CreateIvrVerification(ctx context.Context, req models.IVRBookingRequest) error {
	return a.call(ctx, "createIvrVerification", map[string]any{"request": req}, nil)
}
