package actor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Path      string
	Principal string
	Auth      string
	Args      map[string]any
}

func newTestActor(t *testing.T, handler func(w http.ResponseWriter, call recordedCall)) (*HTTPActor, *[]recordedCall) {
	t.Helper()
	var calls []recordedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{
			Path:      r.URL.Path,
			Principal: r.Header.Get(PrincipalHeader),
			Auth:      r.Header.Get("Authorization"),
		}
		_ = json.NewDecoder(r.Body).Decode(&call.Args)
		calls = append(calls, call)
		handler(w, call)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPActor(srv.URL+"/", time.Second, nil), &calls
}

func callerCtx() context.Context {
	return WithCaller(context.Background(), Caller{Principal: "user-1", Token: "tok"})
}

func TestCall_SendsIdentityAndArgs(t *testing.T) {
	a, calls := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		_, _ = w.Write([]byte(`{"ok": 7}`))
	})

	id, err := a.RecordPayment(callerCtx(), 3, "cash", 1500)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentID(7), id)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, "/rpc/recordPayment", got.Path)
	assert.Equal(t, "user-1", got.Principal)
	assert.Equal(t, "Bearer tok", got.Auth)
	assert.Equal(t, float64(3), got.Args["bookingId"])
	assert.Equal(t, "cash", got.Args["method"])
	assert.Equal(t, float64(1500), got.Args["amount"])
}

func TestCall_NullProfile(t *testing.T) {
	a, _ := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		_, _ = w.Write([]byte(`{"ok": null}`))
	})

	profile, err := a.GetCallerUserProfile(callerCtx())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestCall_DecodesRecords(t *testing.T) {
	a, _ := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		_, _ = w.Write([]byte(`{"ok": [{"id": 1, "status": "pending", "address": "12 MG Road", "preferredTime": 1700000000000000000, "category": 2, "customerId": "user-1", "timeSlot": "9-11", "assignedStaff": "staff-9"}]}`))
	})

	bookings, err := a.GetMyBookings(callerCtx())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.BookingPending, bookings[0].Status)
	assert.Equal(t, models.Time(1700000000000000000), bookings[0].PreferredTime)
	require.NotNil(t, bookings[0].AssignedStaff)
	assert.Equal(t, models.Principal("staff-9"), *bookings[0].AssignedStaff)
}

func TestCall_RawErrorMessagePreserved(t *testing.T) {
	a, _ := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "Unauthorized: Only admins can create categories"}`))
	})

	_, err := a.CreateServiceCategory(callerCtx(), "Cleaning", "Deep clean")
	require.Error(t, err)

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "createServiceCategory", callErr.Method)
	assert.Equal(t, http.StatusForbidden, callErr.Status)
	assert.Equal(t, "Unauthorized: Only admins can create categories", callErr.Message)
}

func TestCall_PlainTextError(t *testing.T) {
	a, _ := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("trap: canister out of cycles"))
	})

	err := a.UpdateIVRTaskStatus(callerCtx(), 4, "done")
	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "trap: canister out of cycles", callErr.Message)
}

func TestCall_NoRetry(t *testing.T) {
	a, calls := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := a.SaveCallerUserProfile(callerCtx(), models.UserProfile{Name: "x"})
	require.Error(t, err)
	assert.Len(t, *calls, 1)
}

func TestCall_RequiresCaller(t *testing.T) {
	a, calls := newTestActor(t, func(w http.ResponseWriter, _ recordedCall) {
		_, _ = w.Write([]byte(`{"ok": []}`))
	})

	_, err := a.GetAllBookings(context.Background())
	assert.ErrorIs(t, err, ErrNoCaller)
	assert.Empty(t, *calls)
}

func TestCall_TransportFailure(t *testing.T) {
	a := NewHTTPActor("http://127.0.0.1:1", 200*time.Millisecond, nil)
	_, err := a.GetIVRTasks(callerCtx())

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, 0, callErr.Status)
	assert.Equal(t, "getIVRTasks", callErr.Method)
}

func TestCallerFrom(t *testing.T) {
	_, ok := CallerFrom(context.Background())
	assert.False(t, ok)

	_, ok = CallerFrom(WithCaller(context.Background(), Caller{}))
	assert.False(t, ok)

	c, ok := CallerFrom(callerCtx())
	assert.True(t, ok)
	assert.Equal(t, models.Principal("user-1"), c.Principal)
}
