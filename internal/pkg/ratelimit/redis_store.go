package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store sharing counters across service instances.
// Window expiry is handled by key TTL, so the clock argument is unused.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) Check(key string, capacity int, window time.Duration, _ time.Time) (Result, error) {
	ctx := context.Background()
	redisKey := s.prefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		// First hit in the window owns the expiry.
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return Result{}, err
		}
	}

	if count > int64(capacity) {
		return Result{Allowed: false, Remaining: 0}, nil
	}
	return Result{Allowed: true, Remaining: capacity - int(count)}, nil
}

func (s *redisStore) Reset() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
}
