// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package cache

import (
	"context"
	"reflect"
	"testing"
	"time"
)

type cachedItem struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		cfg     Config
		want    string
		wantErr bool
	}{
		{Config{Backend: "memory", Capacity: 5}, BackendMemory, false},
		{Config{}, BackendMemory, false},
		{Config{Backend: "none"}, BackendNone, false},
		{Config{Backend: "badger"}, BackendBadger, false},
		{Config{Backend: "redis", RedisURL: "redis://localhost:6379/0"}, BackendRedis, false},
		{Config{Backend: "redis", RedisURL: "://bad"}, "", true},
		{Config{Backend: "memcached"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Backend, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("New() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer s.Close()
			if s.Backend() != tt.want {
				t.Errorf("Backend() = %q, want %q", s.Backend(), tt.want)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(10)

	want := []cachedItem{{MovieID: 3, Score: 4.25}, {MovieID: 1, Score: 3.5}}
	if err := SetJSON(ctx, s, "rec", want, time.Minute); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}

	got, ok, err := GetJSON[[]cachedItem](ctx, s, "rec")
	if err != nil || !ok {
		t.Fatalf("GetJSON() = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetJSON() = %+v, want %+v", got, want)
	}

	if _, ok, err := GetJSON[[]cachedItem](ctx, s, "absent"); ok || err != nil {
		t.Errorf("GetJSON(absent) = %v, %v; want miss", ok, err)
	}

	_ = s.Set(ctx, "corrupt", []byte("{not json"), time.Minute)
	if _, ok, err := GetJSON[[]cachedItem](ctx, s, "corrupt"); ok || err == nil {
		t.Errorf("GetJSON(corrupt) = %v, %v; want decode error", ok, err)
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var s Store = Noop{}

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("Noop returned a value")
	}
}

func TestBadger_InMemory(t *testing.T) {
	ctx := context.Background()
	b, err := NewBadger("", "test:")
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	defer b.Close()

	if err := b.Set(ctx, "a", []byte("1"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	_ = b.Set(ctx, "b", []byte("2"), time.Minute)

	got, ok, err := b.Get(ctx, "a")
	if err != nil || !ok || string(got) != "1" {
		t.Errorf("Get(a) = %q, %v, %v", got, ok, err)
	}

	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := b.Get(ctx, "b"); ok {
		t.Error("entry survived Clear")
	}
}

func TestBadger_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := NewBadger(dir, "cinesense:")
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	_ = b.Set(ctx, "k", []byte("kept"), time.Hour)
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err = NewBadger(dir, "cinesense:")
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer b.Close()

	got, ok, _ := b.Get(ctx, "k")
	if !ok || string(got) != "kept" {
		t.Errorf("Get(k) after reopen = %q, %v", got, ok)
	}
}
