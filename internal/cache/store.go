// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Store is a byte-oriented cache with per-entry TTL.
//
// Get reports a miss as (nil, false, nil); a non-nil error means the
// backend itself failed and callers should treat the lookup as a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear removes every entry this store owns.
	Clear(ctx context.Context) error

	// Backend returns the backend name used in logs and metric labels.
	Backend() string

	Close() error
}

// Config selects and configures a Store.
type Config struct {
	Backend  string
	Capacity int

	RedisURL   string
	BadgerPath string

	// KeyPrefix namespaces keys in shared backends.
	// Default: "cinesense:"
	KeyPrefix string

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// New builds the store named by cfg.Backend.
func New(cfg Config) (Store, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "cinesense:"
	}
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemory(cfg.Capacity), nil
	case BackendRedis:
		return NewRedis(cfg)
	case BackendBadger:
		return NewBadger(cfg.BadgerPath, cfg.KeyPrefix)
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GetJSON decodes a cached JSON value into a T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return v, true, nil
}

// SetJSON encodes v as JSON and stores it.
func SetJSON[T any](ctx context.Context, s Store, key string, v T, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Clear(context.Context) error { return nil }
func (Noop) Backend() string { return BackendNone }
func (Noop) Close() error { return nil }
