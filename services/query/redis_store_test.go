package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_GetSet(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_Generations(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	gen, err := s.Generation(ctx, KeyAllBookings)
	require.NoError(t, err)
	assert.Zero(t, gen)

	gen, err = s.Bump(ctx, KeyAllBookings)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)

	gen, err = s.Generation(ctx, KeyAllBookings)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
}

func TestRedisStore_BacksClient(t *testing.T) {
	s, _ := newRedisStore(t)
	c := NewClient(s, time.Minute, nil)
	src := &counter{value: []string{"t1"}}
	ctx := as("user-1")

	_, _ = Fetch(ctx, c, Resource(KeyMySupportTickets), src.fetch)
	_, _ = Fetch(ctx, c, Resource(KeyMySupportTickets), src.fetch)
	assert.Equal(t, int32(1), src.calls.Load())

	require.NoError(t, Exec(ctx, c, func(context.Context) error { return nil }, KeyMySupportTickets))
	_, _ = Fetch(ctx, c, Resource(KeyMySupportTickets), src.fetch)
	assert.Equal(t, int32(2), src.calls.Load())
}
