package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"homeserve/models"
	"homeserve/services/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func as(principal string) context.Context {
	return actor.WithCaller(context.Background(), actor.Caller{Principal: models.Principal(principal)})
}

type counter struct {
	calls atomic.Int32
	value []string
}

func (c *counter) fetch(context.Context) ([]string, error) {
	c.calls.Add(1)
	return c.value, nil
}

func TestFetch_CachesUnderKey(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{value: []string{"Cleaning"}}
	ctx := as("user-1")

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, c, Resource(KeyServiceCategories), src.fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cleaning"}, got)
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFetch_RequiresCaller(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{}

	_, err := Fetch(context.Background(), c, Resource(KeyMyBookings), src.fetch)
	assert.ErrorIs(t, err, actor.ErrNoCaller)
	assert.Zero(t, src.calls.Load())
}

func TestFetch_PartitionedPerCaller(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{value: []string{"b1"}}

	_, err := Fetch(as("user-1"), c, Resource(KeyMyBookings), src.fetch)
	require.NoError(t, err)
	_, err = Fetch(as("user-2"), c, Resource(KeyMyBookings), src.fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFetch_ParamsSeparateEntries(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{value: []string{"9-11"}}
	ctx := as("user-1")

	_, _ = Fetch(ctx, c, Resource(KeyAvailableTimeSlots, "1"), src.fetch)
	_, _ = Fetch(ctx, c, Resource(KeyAvailableTimeSlots, "2"), src.fetch)
	_, _ = Fetch(ctx, c, Resource(KeyAvailableTimeSlots, "1"), src.fetch)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestMutate_SuccessInvalidatesDependents(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	mine := &counter{value: []string{"b1"}}
	all := &counter{value: []string{"b1"}}
	plans := &counter{value: []string{"gold"}}
	ctx := as("user-1")

	_, _ = Fetch(ctx, c, Resource(KeyMyBookings), mine.fetch)
	_, _ = Fetch(ctx, c, Resource(KeyAllBookings), all.fetch)
	_, _ = Fetch(ctx, c, Resource(KeySubscriptionPlans), plans.fetch)

	msg, err := Mutate(ctx, c, func(context.Context) (string, error) { return "created", nil }, KeyMyBookings, KeyAllBookings)
	require.NoError(t, err)
	assert.Equal(t, "created", msg)

	_, _ = Fetch(ctx, c, Resource(KeyMyBookings), mine.fetch)
	_, _ = Fetch(ctx, c, Resource(KeyAllBookings), all.fetch)
	_, _ = Fetch(ctx, c, Resource(KeySubscriptionPlans), plans.fetch)

	assert.Equal(t, int32(2), mine.calls.Load())
	assert.Equal(t, int32(2), all.calls.Load())
	assert.Equal(t, int32(1), plans.calls.Load(), "unrelated key stays cached")
}

func TestMutate_FailureKeepsCache(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{value: []string{"p1"}}
	ctx := as("admin")

	_, _ = Fetch(ctx, c, Resource(KeyAllPayments), src.fetch)

	boom := errors.New("Unauthorized")
	attempts := 0
	err := Exec(ctx, c, func(context.Context) error {
		attempts++
		return boom
	}, KeyAllPayments)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)

	_, _ = Fetch(ctx, c, Resource(KeyAllPayments), src.fetch)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestInvalidate_ReachesEveryCaller(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	src := &counter{value: []string{"b1"}}

	_, _ = Fetch(as("customer"), c, Resource(KeyMyBookings), src.fetch)
	require.NoError(t, Exec(as("staff"), c, func(context.Context) error { return nil }, KeyMyBookings))
	_, _ = Fetch(as("customer"), c, Resource(KeyMyBookings), src.fetch)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestFetch_ErrorNotCached(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	ctx := as("user-1")
	calls := 0
	fail := func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("actor down")
	}

	_, err := Fetch(ctx, c, Resource(KeyIVRTasks), fail)
	assert.Error(t, err)
	_, err = Fetch(ctx, c, Resource(KeyIVRTasks), fail)
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_CoalescesConcurrentReads(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	ctx := as("user-1")

	release := make(chan struct{})
	var calls atomic.Int32
	slow := func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"x"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Fetch(ctx, c, Resource(KeyAllFeedback), slow)
			assert.NoError(t, err)
			assert.Equal(t, []string{"x"}, got)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ReadRacingMutationIsRefetched(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	ctx := as("user-1")

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	read := func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []string{"before"}, nil
		}
		return []string{"after"}, nil
	}

	done := make(chan []string)
	go func() {
		got, _ := Fetch(ctx, c, Resource(KeyAllBookings), read)
		done <- got
	}()

	<-started
	require.NoError(t, Exec(ctx, c, func(context.Context) error { return nil }, KeyAllBookings))
	close(release)
	assert.Equal(t, []string{"before"}, <-done)

	got, err := Fetch(ctx, c, Resource(KeyAllBookings), read)
	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, got)
}

func TestFetch_ExpiresAfterTTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	c := NewClient(store, time.Minute, nil)
	src := &counter{value: []string{"gold"}}
	ctx := as("user-1")

	_, _ = Fetch(ctx, c, Resource(KeySubscriptionPlans), src.fetch)
	now = now.Add(2 * time.Minute)
	_, _ = Fetch(ctx, c, Resource(KeySubscriptionPlans), src.fetch)

	assert.Equal(t, int32(2), src.calls.Load())
}

type brokenStore struct{ MemoryStore }

func (*brokenStore) Generation(context.Context, Key) (uint64, error) {
	return 0, errors.New("connection refused")
}

func TestFetch_StoreFailureReadsThrough(t *testing.T) {
	c := NewClient(&brokenStore{}, time.Minute, nil)
	src := &counter{value: []string{"x"}}

	got, err := Fetch(as("user-1"), c, Resource(KeyAllFeedback), src.fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestFetch_NilPointerCached(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute, nil)
	ctx := as("new-user")
	calls := 0
	read := func(context.Context) (*models.UserProfile, error) {
		calls++
		return nil, nil
	}

	p, err := Fetch(ctx, c, Resource(KeyCurrentUserProfile), read)
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = Fetch(ctx, c, Resource(KeyCurrentUserProfile), read)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 1, calls)
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "myBookings", Resource(KeyMyBookings).String())
	assert.Equal(t, "availableTimeSlots:3", Resource(KeyAvailableTimeSlots, "3").String())
}
