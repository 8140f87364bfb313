package views

import (
	"context"

	"homeserve/models"

	"golang.org/x/sync/errgroup"
)

type CustomerDashboardData struct {
	Name          string       `json:"name"`
	CategoryCount int          `json:"categoryCount"`
	UpcomingCount int          `json:"upcomingCount"`
	TotalBookings int          `json:"totalBookings"`
	Upcoming      []BookingRow `json:"upcoming"`
}

type CatalogData struct {
	Categories []models.ServiceCategory `json:"categories"`
	Plans      []PlanRow                `json:"plans"`
}

type PlanRow struct {
	ID    models.SubscriptionPlanID `json:"id"`
	Name  string                    `json:"name"`
	Price Amount                    `json:"price"`
}

type BookServiceData struct {
	Categories       []models.ServiceCategory  `json:"categories"`
	SelectedCategory *models.ServiceCategoryID `json:"selectedCategory,omitempty"`
	Slots            []string                  `json:"slots"`
	Verified         bool                      `json:"verified"`
	CanBook          bool                      `json:"canBook"`
}

type BookingConfirmationData struct {
	BookingID string      `json:"bookingId"`
	Booking   *BookingRow `json:"booking,omitempty"`
}

type MyBookingsData struct {
	Upcoming []BookingRow `json:"upcoming"`
	History  []BookingRow `json:"history"`
}

type BookingDetailsData struct {
	Booking          BookingRow       `json:"booking"`
	Timeline         []TimelineStep   `json:"timeline"`
	CanLeaveFeedback bool             `json:"canLeaveFeedback"`
	IVRTasks         []models.IVRTask `json:"ivrTasks"`
}

type SupportData struct {
	Tickets []models.SupportTicket `json:"tickets"`
}

type SubscriptionsData struct {
	Plans []PlanRow `json:"plans"`
}

type ProfileSetupData struct {
	Profile models.UserProfile `json:"profile"`
}

// dashboardUpcomingLimit is how many upcoming bookings the customer dashboard shows.
const dashboardUpcomingLimit = 3

// bookingsWithNames fetches bookings and the category catalog together.
func bookingsWithNames(ctx context.Context, fetch func(context.Context) ([]models.Booking, error), categories func(context.Context) ([]models.ServiceCategory, error)) ([]models.Booking, map[models.ServiceCategoryID]string, error) {
	var (
		bookings []models.Booking
		cats     []models.ServiceCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = fetch(gctx)
		return err
	})
	g.Go(func() (err error) {
		cats, err = categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return bookings, categoryNames(cats), nil
}

func planRows(plans []models.SubscriptionPlan) []PlanRow {
	rows := make([]PlanRow, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, PlanRow{ID: p.ID, Name: p.Name, Price: FormatAmount(p.Price)})
	}
	return rows
}

func customerDashboard(ctx context.Context, r *Resolver, req Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetMyBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	upcoming := Upcoming(bookings)
	data := CustomerDashboardData{
		Name:          req.Profile.Name,
		CategoryCount: len(names),
		UpcomingCount: len(upcoming),
		TotalBookings: len(bookings),
	}
	if len(upcoming) > dashboardUpcomingLimit {
		upcoming = upcoming[:dashboardUpcomingLimit]
	}
	data.Upcoming = toRows(upcoming, names)
	return data, nil
}

func catalog(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	var data CatalogData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Categories, err = r.svc.GetServiceCategories(gctx)
		return err
	})
	g.Go(func() error {
		plans, err := r.svc.GetSubscriptionPlans(gctx)
		data.Plans = planRows(plans)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func bookService(ctx context.Context, r *Resolver, req Request, _ map[string]string) (any, error) {
	categories, err := r.svc.GetServiceCategories(ctx)
	if err != nil {
		return nil, err
	}
	data := BookServiceData{
		Categories: categories,
		Verified:   req.Profile.IsVerified,
		CanBook:    req.Profile.IsVerified,
		Slots:      []string{},
	}

	raw := req.Query.Get("category")
	if raw == "" {
		raw = req.Query.Get("categoryId")
	}
	if id, ok := parseCategory(raw); ok {
		slots, err := r.svc.GetAvailableTimeSlots(ctx, id)
		if err != nil {
			return nil, err
		}
		data.SelectedCategory = &id
		if slots != nil {
			data.Slots = slots
		}
	}
	return data, nil
}

func bookingConfirmation(ctx context.Context, r *Resolver, _ Request, params map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetMyBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	data := BookingConfirmationData{BookingID: params["bookingId"]}
	if b, ok := findBooking(bookings, params["bookingId"]); ok {
		row := toRow(b, names)
		data.Booking = &row
	}
	return data, nil
}

func myBookings(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	bookings, names, err := bookingsWithNames(ctx, r.svc.GetMyBookings, r.svc.GetServiceCategories)
	if err != nil {
		return nil, err
	}
	return MyBookingsData{
		Upcoming: toRows(Upcoming(bookings), names),
		History:  toRows(History(bookings), names),
	}, nil
}

// bookingWithTasks loads one booking, the category names and the IVR tasks
// raised for it. found is false when the booking is not in the list.
func bookingWithTasks(ctx context.Context, r *Resolver, fetch func(context.Context) ([]models.Booking, error), rawID string) (b models.Booking, names map[models.ServiceCategoryID]string, tasks []models.IVRTask, found bool, err error) {
	var (
		bookings []models.Booking
		all      []models.IVRTask
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, names, err = bookingsWithNames(gctx, fetch, r.svc.GetServiceCategories)
		return err
	})
	g.Go(func() (err error) {
		all, err = r.svc.GetIVRTasks(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return
	}
	b, found = findBooking(bookings, rawID)
	if found {
		tasks = TasksFor(all, b.ID)
	}
	return
}

func bookingDetails(ctx context.Context, r *Resolver, _ Request, params map[string]string) (any, error) {
	b, names, tasks, found, err := bookingWithTasks(ctx, r, r.svc.GetMyBookings, params["bookingId"])
	if err != nil || !found {
		return nil, err
	}
	return BookingDetailsData{
		Booking:          toRow(b, names),
		Timeline:         Timeline(b.Status),
		CanLeaveFeedback: b.Status == models.BookingCompleted,
		IVRTasks:         tasks,
	}, nil
}

func customerSupport(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	tickets, err := r.svc.GetMySupportTickets(ctx)
	if err != nil {
		return nil, err
	}
	return SupportData{Tickets: nonNil(tickets)}, nil
}

func subscriptions(ctx context.Context, r *Resolver, _ Request, _ map[string]string) (any, error) {
	plans, err := r.svc.GetSubscriptionPlans(ctx)
	if err != nil {
		return nil, err
	}
	return SubscriptionsData{Plans: planRows(plans)}, nil
}

func profileSetup(_ context.Context, _ *Resolver, req Request, _ map[string]string) (any, error) {
	return ProfileSetupData{Profile: req.Profile}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
