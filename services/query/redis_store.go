package query

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisDataPrefix = "query:data:"
	redisGenPrefix  = "query:gen:"
)

// RedisStore shares the query cache across gateway replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, redisDataPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, redisDataPrefix+key, value, ttl).Err()
}

func (s *RedisStore) Generation(ctx context.Context, key Key) (uint64, error) {
	gen, err := s.client.Get(ctx, redisGenPrefix+string(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *RedisStore) Bump(ctx context.Context, key Key) (uint64, error) {
	gen, err := s.client.Incr(ctx, redisGenPrefix+string(key)).Result()
	if err != nil {
		return 0, err
	}
	return uint64(gen), nil
}
