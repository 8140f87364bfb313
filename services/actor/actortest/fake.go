// Package actortest provides an in-memory Actor for tests.
package actortest

import (
	"context"
	"fmt"
	"sync"

	"homeserve/models"
	"homeserve/services/actor"
)

// Fake is an in-memory actor with just enough behaviour to drive the gateway.
type Fake struct {
	mu sync.Mutex

	Profiles   map[models.Principal]models.UserProfile
	Roles      map[models.Principal]models.UserRole
	Categories []models.ServiceCategory
	Slots      map[models.ServiceCategoryID][]string
	Plans      []models.SubscriptionPlan
	Bookings   []models.Booking
	Tickets    []models.SupportTicket
	Feedback   []models.Feedback
	Payments   []models.Payment
	Tasks      []models.IVRTask
	IVRBooked  []models.IVRBookingRequest

	// OTP accepted by CompleteVerification.
	OTP string

	// Errors forces a method (by RPC name) to fail with the given message.
	Errors map[string]string

	calls map[string]int
}

var _ actor.Actor = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Profiles: make(map[models.Principal]models.UserProfile),
		Roles:    make(map[models.Principal]models.UserRole),
		Slots:    make(map[models.ServiceCategoryID][]string),
		Errors:   make(map[string]string),
		OTP:      "123456",
		calls:    make(map[string]int),
	}
}

// Calls reports how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Fail makes method return an error carrying msg.
func (f *Fake) Fail(method, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[method] = msg
}

// begin locks the fake, counts the call and resolves the caller.
func (f *Fake) begin(ctx context.Context, method string) (models.Principal, error) {
	f.mu.Lock()
	f.calls[method]++
	caller, ok := actor.CallerFrom(ctx)
	if !ok {
		return "", actor.ErrNoCaller
	}
	if msg, ok := f.Errors[method]; ok {
		return "", &actor.CallError{Method: method, Status: 400, Message: msg}
	}
	return caller.Principal, nil
}

func (f *Fake) isAdmin(p models.Principal) bool {
	profile, ok := f.Profiles[p]
	return ok && profile.AppRole == models.AppRoleAdmin
}

func unauthorized(method string) error {
	return &actor.CallError{Method: method, Status: 403, Message: "Unauthorized: Only admins can perform this action"}
}

func (f *Fake) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "getCallerUserProfile")
	if err != nil {
		return nil, err
	}
	profile, ok := f.Profiles[p]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (f *Fake) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "saveCallerUserProfile")
	if err != nil {
		return err
	}
	if existing, ok := f.Profiles[p]; ok {
		profile.IsVerified = existing.IsVerified
	}
	f.Profiles[p] = profile
	return nil
}

func (f *Fake) GetUserProfile(ctx context.Context, user models.Principal) (*models.UserProfile, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getUserProfile"); err != nil {
		return nil, err
	}
	profile, ok := f.Profiles[user]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (f *Fake) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "getCallerUserRole")
	if err != nil {
		return "", err
	}
	if role, ok := f.Roles[p]; ok {
		return role, nil
	}
	return models.UserRoleGuest, nil
}

func (f *Fake) IsCallerAdmin(ctx context.Context) (bool, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "isCallerAdmin")
	if err != nil {
		return false, err
	}
	return f.isAdmin(p), nil
}

func (f *Fake) AssignCallerUserRole(ctx context.Context, user models.Principal, role models.UserRole) error {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "assignCallerUserRole")
	if err != nil {
		return err
	}
	if !f.isAdmin(p) {
		return unauthorized("assignCallerUserRole")
	}
	f.Roles[user] = role
	return nil
}

func (f *Fake) SetUserAppRole(ctx context.Context, user models.Principal, role models.AppRole) error {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "setUserAppRole")
	if err != nil {
		return err
	}
	if !f.isAdmin(p) {
		return unauthorized("setUserAppRole")
	}
	profile, ok := f.Profiles[user]
	if !ok {
		return &actor.CallError{Method: "setUserAppRole", Status: 404, Message: "User profile not found"}
	}
	profile.AppRole = role
	f.Profiles[user] = profile
	return nil
}

func (f *Fake) StartVerification(ctx context.Context, mobileNumber string) (models.MobileVerificationStatus, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "startVerification"); err != nil {
		return models.MobileVerificationStatus{}, err
	}
	return models.MobileVerificationStatus{Verified: false}, nil
}

func (f *Fake) CompleteVerification(ctx context.Context, req models.VerificationRequest) (models.MobileVerificationStatus, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "completeVerification")
	if err != nil {
		return models.MobileVerificationStatus{}, err
	}
	if req.VerificationCode != f.OTP {
		return models.MobileVerificationStatus{Verified: false}, nil
	}
	if profile, ok := f.Profiles[p]; ok {
		profile.IsVerified = true
		profile.MobileNumber = req.MobileNumber
		f.Profiles[p] = profile
	}
	return models.MobileVerificationStatus{Verified: true}, nil
}

func (f *Fake) ViewServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "viewServiceCategories"); err != nil {
		return nil, err
	}
	return append([]models.ServiceCategory(nil), f.Categories...), nil
}

func (f *Fake) CreateServiceCategory(ctx context.Context, name, description string) (models.ServiceCategoryID, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "createServiceCategory")
	if err != nil {
		return 0, err
	}
	if !f.isAdmin(p) {
		return 0, unauthorized("createServiceCategory")
	}
	id := models.ServiceCategoryID(len(f.Categories) + 1)
	f.Categories = append(f.Categories, models.ServiceCategory{ID: id, Name: name, Description: description})
	return id, nil
}

func (f *Fake) GetAvailableTimeSlots(ctx context.Context, category models.ServiceCategoryID) ([]string, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getAvailableTimeSlots"); err != nil {
		return nil, err
	}
	return append([]string(nil), f.Slots[category]...), nil
}

func (f *Fake) GetSubscriptionPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getSubscriptionPlans"); err != nil {
		return nil, err
	}
	return append([]models.SubscriptionPlan(nil), f.Plans...), nil
}

func (f *Fake) CreateSubscriptionPlan(ctx context.Context, name string, price uint64) (models.SubscriptionPlanID, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "createSubscriptionPlan")
	if err != nil {
		return 0, err
	}
	if !f.isAdmin(p) {
		return 0, unauthorized("createSubscriptionPlan")
	}
	id := models.SubscriptionPlanID(len(f.Plans) + 1)
	f.Plans = append(f.Plans, models.SubscriptionPlan{ID: id, Name: name, Price: price})
	return id, nil
}

func (f *Fake) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "createBooking")
	if err != nil {
		return models.BookingResponse{}, err
	}
	id := models.BookingID(len(f.Bookings) + 1)
	f.Bookings = append(f.Bookings, models.Booking{
		ID:            id,
		Status:        models.BookingPending,
		Address:       req.Address,
		PreferredTime: req.PreferredTime,
		Category:      req.ServiceCategory,
		CustomerID:    p,
		TimeSlot:      req.TimeSlot,
	})
	return models.BookingResponse{Message: fmt.Sprintf("Booking %d created", id)}, nil
}

func (f *Fake) GetMyBookings(ctx context.Context) ([]models.Booking, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "getMyBookings")
	if err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range f.Bookings {
		if b.CustomerID == p {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *Fake) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getAllBookings"); err != nil {
		return nil, err
	}
	return append([]models.Booking(nil), f.Bookings...), nil
}

func (f *Fake) DemoBookingsWithLocations(ctx context.Context) ([]models.Booking, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "demoBookingsWithLocations"); err != nil {
		return nil, err
	}
	return append([]models.Booking(nil), f.Bookings...), nil
}

func (f *Fake) UpdateBookingStatus(ctx context.Context, id models.BookingID, status models.BookingStatus) error {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "updateBookingStatus"); err != nil {
		return err
	}
	for i := range f.Bookings {
		if f.Bookings[i].ID == id {
			f.Bookings[i].Status = status
			return nil
		}
	}
	return &actor.CallError{Method: "updateBookingStatus", Status: 404, Message: "Booking not found"}
}

func (f *Fake) AssignStaffToBooking(ctx context.Context, id models.BookingID, staff models.Principal) error {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "assignStaffToBooking")
	if err != nil {
		return err
	}
	if !f.isAdmin(p) {
		return unauthorized("assignStaffToBooking")
	}
	for i := range f.Bookings {
		if f.Bookings[i].ID == id {
			s := staff
			f.Bookings[i].AssignedStaff = &s
			f.Bookings[i].Status = models.BookingConfirmed
			return nil
		}
	}
	return &actor.CallError{Method: "assignStaffToBooking", Status: 404, Message: "Booking not found"}
}

func (f *Fake) CreateSupportTicket(ctx context.Context, message string) (models.SupportTicketID, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "createSupportTicket")
	if err != nil {
		return 0, err
	}
	id := models.SupportTicketID(len(f.Tickets) + 1)
	f.Tickets = append(f.Tickets, models.SupportTicket{ID: id, Status: "open", Message: message, CustomerID: p})
	return id, nil
}

func (f *Fake) GetMySupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "getMySupportTickets")
	if err != nil {
		return nil, err
	}
	var out []models.SupportTicket
	for _, t := range f.Tickets {
		if t.CustomerID == p {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *Fake) GetAllSupportTickets(ctx context.Context) ([]models.SupportTicket, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "getAllSupportTickets")
	if err != nil {
		return nil, err
	}
	if !f.isAdmin(p) {
		return nil, unauthorized("getAllSupportTickets")
	}
	return append([]models.SupportTicket(nil), f.Tickets...), nil
}

func (f *Fake) SubmitFeedback(ctx context.Context, booking models.BookingID, rating uint64, comments string) error {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "submitFeedback"); err != nil {
		return err
	}
	id := models.FeedbackID(len(f.Feedback) + 1)
	f.Feedback = append(f.Feedback, models.Feedback{ID: id, BookingID: booking, Rating: rating, Comments: comments})
	return nil
}

func (f *Fake) GetAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getAllFeedback"); err != nil {
		return nil, err
	}
	return append([]models.Feedback(nil), f.Feedback...), nil
}

func (f *Fake) RecordPayment(ctx context.Context, booking models.BookingID, method string, amount uint64) (models.PaymentID, error) {
	defer f.mu.Unlock()
	p, err := f.begin(ctx, "recordPayment")
	if err != nil {
		return 0, err
	}
	if !f.isAdmin(p) {
		return 0, unauthorized("recordPayment")
	}
	id := models.PaymentID(len(f.Payments) + 1)
	f.Payments = append(f.Payments, models.Payment{ID: id, Status: "pending", Method: method, BookingID: booking, Amount: amount})
	return id, nil
}

func (f *Fake) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getAllPayments"); err != nil {
		return nil, err
	}
	return append([]models.Payment(nil), f.Payments...), nil
}

func (f *Fake) UpdatePaymentStatus(ctx context.Context, id models.PaymentID, status string) error {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "updatePaymentStatus"); err != nil {
		return err
	}
	for i := range f.Payments {
		if f.Payments[i].ID == id {
			f.Payments[i].Status = status
			return nil
		}
	}
	return &actor.CallError{Method: "updatePaymentStatus", Status: 404, Message: "Payment not found"}
}

func (f *Fake) GetIVRTasks(ctx context.Context) ([]models.IVRTask, error) {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "getIVRTasks"); err != nil {
		return nil, err
	}
	return append([]models.IVRTask(nil), f.Tasks...), nil
}

func (f *Fake) UpdateIVRTaskStatus(ctx context.Context, id models.IVRTaskID, status string) error {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "updateIVRTaskStatus"); err != nil {
		return err
	}
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks[i].Status = status
			return nil
		}
	}
	return &actor.CallError{Method: "updateIVRTaskStatus", Status: 404, Message: "Task not found"}
}

func (f *Fake) CreateIvrVerification(ctx context.Context, req models.IVRBookingRequest) error {
	defer f.mu.Unlock()
	if _, err := f.begin(ctx, "createIvrVerification"); err != nil {
		return err
	}
	f.IVRBooked = append(f.IVRBooked, req)
	bookingID := models.BookingID(len(f.Bookings) + 1)
	f.Bookings = append(f.Bookings, models.Booking{
		ID:       bookingID,
		Status:   models.BookingPending,
		Address:  req.Address,
		Category: req.ServiceCategory,
		TimeSlot: req.TimeSlot,
	})
	f.Tasks = append(f.Tasks, models.IVRTask{
		ID:        models.IVRTaskID(len(f.Tasks) + 1),
		Status:    "pending",
		BookingID: bookingID,
		TaskType:  "verification",
	})
	return nil
}
