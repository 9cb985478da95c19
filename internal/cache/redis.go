// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/metrics"
)

const (
	redisBreakerName = "redis-cache"
	redisScanCount   = 500
)

// Redis stores entries in Redis behind a circuit breaker.
//
// While the breaker is open every call fails fast with
// gobreaker.ErrOpenState; the service treats that as a cache miss, so a
// Redis outage degrades latency but never availability.
type Redis struct {
	client *redis.Client
	prefix string
	cb     *gobreaker.CircuitBreaker[[]byte]
}

// NewRedis connects to cfg.RedisURL. The connection is lazy; use Ping to
// check reachability.
func NewRedis(cfg Config) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisWithClient(redis.NewClient(opts), cfg), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, cfg Config) *Redis {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "cinesense:"
	}

	log := logging.WithComponent("cache")
	metrics.CircuitBreakerState.WithLabelValues(redisBreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        redisBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cache circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &Redis{client: client, prefix: prefix, cb: cb}
}

// Get returns the cached value for key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var miss bool
	data, err := r.cb.Execute(func() ([]byte, error) {
		b, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			miss = true
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if miss {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores value with ttl.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := r.cb.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, r.prefix+key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the store prefix using SCAN, so it never
// blocks Redis the way KEYS would.
func (r *Redis) Clear(ctx context.Context) error {
	_, err := r.cb.Execute(func() ([]byte, error) {
		iter := r.client.Scan(ctx, 0, r.prefix+"*", redisScanCount).Iterator()
		batch := make([]string, 0, redisScanCount)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == redisScanCount {
				if err := r.client.Del(ctx, batch...).Err(); err != nil {
					return nil, err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		if len(batch) > 0 {
			return nil, r.client.Del(ctx, batch...).Err()
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

// Ping checks connectivity, bypassing the breaker.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// BreakerState returns the breaker state name.
func (r *Redis) BreakerState() string {
	return r.cb.State().String()
}

// Backend returns "redis".
func (r *Redis) Backend() string { return BackendRedis }

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
