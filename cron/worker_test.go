package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/services/actor/actortest"
	"homeserve/services/marketplace"
	"homeserve/services/query"
	"homeserve/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gateway() (actor.Caller, error) {
	return actor.Caller{Principal: "ivr-gateway", Token: "tok"}, nil
}

func newHandler() (func(context.Context, models.IVRBookingRequest) error, *actortest.Fake) {
	fake := actortest.New()
	svc := marketplace.NewService(fake, query.NewClient(query.NewMemoryStore(), time.Minute, nil))
	return IVRBookingHandler(svc, gateway, zap.NewNop()), fake
}

func TestIVRBookingHandler_CreatesBooking(t *testing.T) {
	handle, fake := newHandler()
	req := models.IVRBookingRequest{ServiceCategory: 2, Address: "4 Park St", Mobile: "+919811111111", TimeSlot: "14:00-16:00"}

	require.NoError(t, handle(context.Background(), req))
	assert.Equal(t, 1, fake.Calls("createIvrVerification"))
	require.Len(t, fake.IVRBooked, 1)
	assert.Equal(t, req, fake.IVRBooked[0])
}

func TestIVRBookingHandler_RejectsInvalid(t *testing.T) {
	handle, fake := newHandler()

	err := handle(context.Background(), models.IVRBookingRequest{Mobile: "+91"})
	assert.Error(t, err)
	assert.Zero(t, fake.Calls("createIvrVerification"))
}

func TestIVRBookingHandler_PropagatesBackendError(t *testing.T) {
	handle, fake := newHandler()
	fake.Fail("createIvrVerification", "slot taken")

	err := handle(context.Background(), models.IVRBookingRequest{Address: "a", Mobile: "m", TimeSlot: "t"})
	var callErr *actor.CallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "slot taken", callErr.Message)
}

func TestIVRBookingHandler_IdentityFailure(t *testing.T) {
	fake := actortest.New()
	svc := marketplace.NewService(fake, query.NewClient(query.NewMemoryStore(), time.Minute, nil))
	handle := IVRBookingHandler(svc, func() (actor.Caller, error) {
		return actor.Caller{}, errors.New("no signing key")
	}, zap.NewNop())

	err := handle(context.Background(), models.IVRBookingRequest{Address: "a", Mobile: "m", TimeSlot: "t"})
	assert.Error(t, err)
	assert.Zero(t, fake.Calls("createIvrVerification"))
}

func TestHandleIVRTask_BadPayloadSkipsRetry(t *testing.T) {
	h := handleIVRTask(func(context.Context, models.IVRBookingRequest) error { return nil })

	err := h(context.Background(), asynq.NewTask(tasks.TypeIVRBooking, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
