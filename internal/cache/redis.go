// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Redis is a Cache backed by a shared long-lived Redis connection. The
// go-redis client is safe for concurrent use, so no additional locking
// happens here.
type Redis struct {
	client  *redis.Client
	metrics Metrics
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, cfg types.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}

	return &Redis{client: client}, nil
}

// Get implements Cache. Connection errors are counted and reported so the
// caller can degrade to a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.metrics.miss()
		return nil, false, nil
	}
	if err != nil {
		r.metrics.errored()
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	r.metrics.hit()
	return payload, true, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.metrics.errored()
		return fmt.Errorf("redis set: %w", err)
	}
	r.metrics.set()
	return nil
}

// Metrics implements Cache.
func (r *Redis) Metrics() MetricsSnapshot { return r.metrics.Snapshot() }

// Close implements Cache.
func (r *Redis) Close() error { return r.client.Close() }
