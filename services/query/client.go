package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homeserve/metrics"
	"homeserve/services/actor"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Client wraps remote reads in cache entries and remote writes in invalidations.
// Entries are partitioned per caller; invalidation of a key reaches every caller.
type Client struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func NewClient(store Store, ttl time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{store: store, ttl: ttl, logger: logger}
}

type entry struct {
	Gen  uint64          `json:"gen"`
	Data json.RawMessage `json:"data"`
}

func storageKey(ctx context.Context, ref Ref) (string, error) {
	caller, ok := actor.CallerFrom(ctx)
	if !ok {
		return "", actor.ErrNoCaller
	}
	return ref.String() + "@" + string(caller.Principal), nil
}

// Fetch returns the cached value of ref when it was stored under the current
// generation, otherwise it calls fn and caches the result. Identical reads in
// the same generation share one call to fn.
func Fetch[T any](ctx context.Context, c *Client, ref Ref, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	key, err := storageKey(ctx, ref)
	if err != nil {
		return zero, err
	}

	gen, err := c.store.Generation(ctx, ref.Key)
	if err != nil {
		c.logger.Warn("query cache unavailable, reading through", zap.String("key", string(ref.Key)), zap.Error(err))
		metrics.IncCacheLookup(string(ref.Key), "bypass")
		return fn(ctx)
	}

	if v, ok := c.lookup(ctx, key, gen, ref); ok {
		var out T
		if err := json.Unmarshal(v, &out); err == nil {
			metrics.IncCacheLookup(string(ref.Key), "hit")
			return out, nil
		}
	}
	metrics.IncCacheLookup(string(ref.Key), "miss")

	flight := fmt.Sprintf("%s#%d", key, gen)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.save(ctx, key, gen, ref, val)
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (c *Client) lookup(ctx context.Context, key string, gen uint64, ref Ref) (json.RawMessage, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("query cache read failed", zap.String("key", ref.String()), zap.Error(err))
		}
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("query cache entry corrupt", zap.String("key", ref.String()), zap.Error(err))
		return nil, false
	}
	if e.Gen != gen {
		return nil, false
	}
	return e.Data, true
}

func (c *Client) save(ctx context.Context, key string, gen uint64, ref Ref, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("query result not cacheable", zap.String("key", ref.String()), zap.Error(err))
		return
	}
	raw, err := json.Marshal(entry{Gen: gen, Data: data})
	if err != nil {
		return
	}
	if err := c.store.Set(context.WithoutCancel(ctx), key, raw, c.ttl); err != nil {
		c.logger.Warn("query cache write failed", zap.String("key", ref.String()), zap.Error(err))
	}
}

// Mutate runs fn and, only when it succeeds, invalidates keys so the next
// read of each refetches. Failures are returned untouched and never retried.
func Mutate[T any](ctx context.Context, c *Client, fn func(context.Context) (T, error), keys ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	c.Invalidate(ctx, keys...)
	return v, nil
}

// Exec is Mutate for remote writes without a result.
func Exec(ctx context.Context, c *Client, fn func(context.Context) error, keys ...Key) error {
	_, err := Mutate(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, keys...)
	return err
}

// Invalidate marks every cached read of keys stale.
func (c *Client) Invalidate(ctx context.Context, keys ...Key) {
	ctx = context.WithoutCancel(ctx)
	for _, k := range keys {
		gen, err := c.store.Bump(ctx, k)
		if err != nil {
			// Entries still expire after the TTL.
			c.logger.Error("query cache invalidation failed", zap.String("key", string(k)), zap.Error(err))
			continue
		}
		metrics.IncCacheInvalidation(string(k))
		c.logger.Debug("query cache invalidated", zap.String("key", string(k)), zap.Uint64("generation", gen))
	}
}
