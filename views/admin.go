package views

import (
	"context"

	"homeserve/models"
	"homeserve/services/ivr"

	"golang.org/x/sync/errgroup"
)

// recentBookingsLimit is how many bookings the admin dashboard lists.
const recentBookingsLimit = 5

type AdminDashboardData struct {
	Total  int                          `json:"total"`
	Counts map[models.BookingStatus]int `json:"counts"`
	Recent []BookingRow                 `json:"recent"`
}

type UsersData struct {
	Customers []models.Principal `json:"customers"`
	Staff     []models.Principal `json:"staff"`
}

type AllocationData struct {
	Unassigned []BookingRow       `json:"unassigned"`
	Staff      []models.Principal `json:"staff"`
}

type ManageServicesData struct {
	Categories []models.ServiceCategory `json:"categories"`
	Plans      []PlanRow                `json:"plans"`
}

type PaymentRow struct {
	ID        models.PaymentID `json:"id"`
	BookingID models.BookingID `json:"bookingId"`
	Method    string           `json:"method"`
	Status    string           `json:"status"`
	Amount    Amount           `json:"amount"`
}

type PaymentsData struct {
	Payments []PaymentRow       `json:"payments"`
	Bookings []models.BookingID `json:"bookings"`
	Methods  []string           `json:"methods"`
}

type SupportAndFeedbackData struct {
	Tickets  []models.SupportTicket `json:"tickets"`
	Feedback []models.Feedback      `json:"feedback"`
}

type IVRSettingsData struct {
	Settings         models.IVRSettings `json:"settings"`
	WebhookSecretSet bool               `json:"webhookSecretSet"`
	Providers        []string           `json:"providers"`
}

type IVRTasksData struct {
	Tasks []models.IVRTask `json:"tasks"`
}

func adminDashboard(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetAllBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	return AdminDashboardData{
		Total:  len(bookings),
		Counts: StatusCounts(bookings),
		Recent: toRows(Recent(bookings, recentBookingsLimit), names),
	}, nil
}

func users(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	bookings, err := r.svc.GetAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return UsersData{Customers: CustomerSet(bookings), Staff: StaffSet(bookings)}, nil
}

func allocation(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetAllBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	return AllocationData{
		Unassigned: toRows(Unassigned(bookings), names),
		Staff:      StaffSet(bookings),
	}, nil
}

func manageServices(ctx context.Context, r *Resolver, req Request, params map[string]string) (any, error) {
	data, err := catalog(ctx, r, req, params)
	if err != nil {
		return nil, err
	}
	c := data.(CatalogData)
	return ManageServicesData{Categories: c.Categories, Plans: c.Plans}, nil
}

func payments(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	var (
		list     []models.Payment
		bookings []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list, err = r.svc.GetAllPayments(gctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = r.svc.GetAllBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := PaymentsData{
		Payments: make([]PaymentRow, 0, len(list)),
		Bookings: make([]models.BookingID, 0, len(bookings)),
		Methods:  []string{models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI},
	}
	for _, p := range list {
		data.Payments = append(data.Payments, PaymentRow{
			ID: p.ID, BookingID: p.BookingID, Method: p.Method, Status: p.Status, Amount: FormatAmount(p.Amount),
		})
	}
	for _, b := range bookings {
		data.Bookings = append(data.Bookings, b.ID)
	}
	return data, nil
}

func supportAndFeedback(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	var data SupportAndFeedbackData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Tickets, err = r.svc.GetAllSupportTickets(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Feedback, err = r.svc.GetAllFeedback(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.Tickets = nonNil(data.Tickets)
	data.Feedback = nonNil(data.Feedback)
	return data, nil
}

func ivrSettings(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	settings, err := r.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return IVRSettingsData{
		Settings:         settings,
		WebhookSecretSet: settings.HasWebhookSecret(),
		Providers:        ivr.Providers,
	}, nil
}

func ivrTasks(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	tasks, err := r.svc.GetIVRTasks(ctx)
	if err != nil {
		return nil, err
	}
	return IVRTasksData{Tasks: nonNil(tasks)}, nil
}
