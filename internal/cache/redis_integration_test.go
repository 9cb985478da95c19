// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/cinesense/internal/testinfra"
)

func TestRedis_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc)

	r, err := NewRedis(Config{RedisURL: rc.URL, KeyPrefix: "it:"})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer r.Close()

	if err := r.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	if _, ok, err := r.Get(ctx, "missing"); ok || err != nil {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}

	// More keys than one SCAN batch.
	for i := 0; i < redisScanCount+20; i++ {
		if err := r.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	got, ok, err := r.Get(ctx, "k7")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get(k7) = %q, %v, %v", got, ok, err)
	}

	if err := r.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := r.Get(ctx, "k7"); ok {
		t.Error("entry survived Clear")
	}
	if r.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", r.BreakerState())
	}
}

func TestRedis_BreakerOpensWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	r, err := NewRedis(Config{
		RedisURL:           "redis://127.0.0.1:1/0",
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer r.Close()

	for i := 0; i < 3; i++ {
		if _, _, err := r.Get(ctx, "k"); err == nil {
			t.Fatal("Get() against closed port succeeded")
		}
	}
	if r.BreakerState() != "open" {
		t.Errorf("BreakerState() = %q, want open", r.BreakerState())
	}
}
