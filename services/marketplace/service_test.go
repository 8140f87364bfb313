package marketplace

import (
	"context"
	"testing"
	"time"

	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/services/actor/actortest"
	"homeserve/services/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*DefaultMarketplaceService, *actortest.Fake) {
	t.Helper()
	fake := actortest.New()
	cache := query.NewClient(query.NewMemoryStore(), time.Minute, nil)
	return NewService(fake, cache), fake
}

func as(p string) context.Context {
	return actor.WithCaller(context.Background(), actor.Caller{Principal: models.Principal(p)})
}

func TestCallerProfile_SaveRefetches(t *testing.T) {
	svc, fake := newService(t)
	ctx := as("cust-1")

	profile, err := svc.GetCallerUserProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	_, _ = svc.GetCallerUserProfile(ctx)
	assert.Equal(t, 1, fake.Calls("getCallerUserProfile"))

	require.NoError(t, svc.SaveCallerUserProfile(ctx, models.UserProfile{
		AppRole: models.AppRoleCustomer, Name: "Asha", MobileNumber: "+9100000", Zone: "north",
	}))

	profile, err = svc.GetCallerUserProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, 2, fake.Calls("getCallerUserProfile"))
}

func TestCreateBooking_InvalidatesBookingLists(t *testing.T) {
	svc, fake := newService(t)
	ctx := as("cust-1")

	mine, err := svc.GetMyBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
	_, err = svc.GetAllBookings(ctx)
	require.NoError(t, err)

	resp, err := svc.CreateBooking(ctx, models.BookingRequest{ServiceCategory: 1, Address: "12 MG Road", TimeSlot: "9-11"})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "created")

	mine, err = svc.GetMyBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	all, err := svc.GetAllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.Equal(t, 2, fake.Calls("getMyBookings"))
	assert.Equal(t, 2, fake.Calls("getAllBookings"))
}

func TestAssignStaff_InvalidatesOnlyAllBookings(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin, Name: "Root"}
	fake.Bookings = []models.Booking{{ID: 1, Status: models.BookingPending, CustomerID: "admin"}}
	ctx := as("admin")

	_, _ = svc.GetMyBookings(ctx)
	_, _ = svc.GetAllBookings(ctx)

	require.NoError(t, svc.AssignStaffToBooking(ctx, 1, "staff-1"))

	_, _ = svc.GetMyBookings(ctx)
	all, _ := svc.GetAllBookings(ctx)

	assert.Equal(t, 1, fake.Calls("getMyBookings"))
	assert.Equal(t, 2, fake.Calls("getAllBookings"))
	require.Len(t, all, 1)
	assert.True(t, all[0].AssignedTo("staff-1"))
}

func TestFailedMutation_SurfacesRawMessage(t *testing.T) {
	svc, fake := newService(t)
	ctx := as("cust-1")

	_, _ = svc.GetServiceCategories(ctx)
	_, err := svc.CreateServiceCategory(ctx, "Plumbing", "Pipes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only admins")

	_, _ = svc.GetServiceCategories(ctx)
	assert.Equal(t, 1, fake.Calls("viewServiceCategories"))
	assert.Equal(t, 1, fake.Calls("createServiceCategory"))
}

func TestCompleteVerification_RefreshesProfile(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["cust-1"] = models.UserProfile{AppRole: models.AppRoleCustomer, Name: "Asha", MobileNumber: "+91"}
	ctx := as("cust-1")

	p, _ := svc.GetCallerUserProfile(ctx)
	require.NotNil(t, p)
	assert.False(t, p.IsVerified)

	status, err := svc.StartVerification(ctx, "+91")
	require.NoError(t, err)
	assert.False(t, status.Verified)

	status, err = svc.CompleteVerification(ctx, models.VerificationRequest{VerificationCode: "123456", MobileNumber: "+91"})
	require.NoError(t, err)
	assert.True(t, status.Verified)

	p, _ = svc.GetCallerUserProfile(ctx)
	assert.True(t, p.IsVerified)
}

func TestSupportTickets(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin}

	_, _ = svc.GetMySupportTickets(as("cust-1"))
	_, _ = svc.GetAllSupportTickets(as("admin"))

	id, err := svc.CreateSupportTicket(as("cust-1"), "Cleaner was late")
	require.NoError(t, err)
	assert.Equal(t, models.SupportTicketID(1), id)

	mine, _ := svc.GetMySupportTickets(as("cust-1"))
	all, _ := svc.GetAllSupportTickets(as("admin"))
	assert.Len(t, mine, 1)
	assert.Len(t, all, 1)
}

func TestPaymentsAndFeedback(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin}
	ctx := as("admin")

	_, _ = svc.GetAllPayments(ctx)
	id, err := svc.RecordPayment(ctx, 4, models.PaymentMethodCash, 1200)
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePaymentStatus(ctx, id, "paid"))
	payments, _ := svc.GetAllPayments(ctx)
	require.Len(t, payments, 1)
	assert.Equal(t, "paid", payments[0].Status)

	_, _ = svc.GetAllFeedback(ctx)
	require.NoError(t, svc.SubmitFeedback(ctx, 4, 5, "great"))
	fb, _ := svc.GetAllFeedback(ctx)
	assert.Len(t, fb, 1)
}

func TestIVRFlow(t *testing.T) {
	svc, fake := newService(t)
	ctx := as("ivr-gateway")

	tasks, _ := svc.GetIVRTasks(ctx)
	assert.Empty(t, tasks)

	require.NoError(t, svc.CreateIvrVerification(ctx, models.IVRBookingRequest{ServiceCategory: 1, Address: "x", Mobile: "+91", TimeSlot: "9-11"}))
	tasks, _ = svc.GetIVRTasks(ctx)
	require.Len(t, tasks, 1)

	require.NoError(t, svc.UpdateIVRTaskStatus(ctx, tasks[0].ID, "done"))
	tasks, _ = svc.GetIVRTasks(ctx)
	assert.Equal(t, "done", tasks[0].Status)
	assert.Equal(t, 3, fake.Calls("getIVRTasks"))
}

func TestSetUserAppRole_InvalidatesTargetProfile(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin}
	fake.Profiles["worker"] = models.UserProfile{AppRole: models.AppRoleCustomer}

	p, _ := svc.GetCallerUserProfile(as("worker"))
	assert.Equal(t, models.AppRoleCustomer, p.AppRole)
	other, _ := svc.GetUserProfile(as("admin"), "worker")
	assert.Equal(t, models.AppRoleCustomer, other.AppRole)

	require.NoError(t, svc.SetUserAppRole(as("admin"), "worker", models.AppRoleStaff))

	p, _ = svc.GetCallerUserProfile(as("worker"))
	assert.Equal(t, models.AppRoleStaff, p.AppRole)
	other, _ = svc.GetUserProfile(as("admin"), "worker")
	assert.Equal(t, models.AppRoleStaff, other.AppRole)
}

func TestCatalogReads(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin}
	fake.Slots[1] = []string{"9-11", "11-13"}
	ctx := as("admin")

	slots, err := svc.GetAvailableTimeSlots(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"9-11", "11-13"}, slots)
	_, _ = svc.GetAvailableTimeSlots(ctx, 1)
	assert.Equal(t, 1, fake.Calls("getAvailableTimeSlots"))

	_, _ = svc.GetSubscriptionPlans(ctx)
	_, err = svc.CreateSubscriptionPlan(ctx, "Monthly", 999)
	require.NoError(t, err)
	plans, _ := svc.GetSubscriptionPlans(ctx)
	assert.Len(t, plans, 1)

	admin, err := svc.IsCallerAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, admin)
	_, _ = svc.IsCallerAdmin(ctx)
	assert.Equal(t, 2, fake.Calls("isCallerAdmin"), "admin check is never cached")
}

func TestCallerRole(t *testing.T) {
	svc, fake := newService(t)
	fake.Profiles["admin"] = models.UserProfile{AppRole: models.AppRoleAdmin}

	role, err := svc.GetCallerUserRole(as("admin"))
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleGuest, role)

	require.NoError(t, svc.AssignCallerUserRole(as("admin"), "admin", models.UserRoleAdmin))
	role, _ = svc.GetCallerUserRole(as("admin"))
	assert.Equal(t, models.UserRoleAdmin, role)
}
