// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200"))
	RecordAPIRequest("GET", "/api/v1/stats", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		kind      string
		wantError float64
	}{
		{"success", "diverse", "", 0},
		{"not found", "diverse", "not_found", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendationErrors.WithLabelValues(tt.mode, "not_found"))
			RecordRecommendation(tt.mode, time.Millisecond, tt.kind)
			after := testutil.ToFloat64(RecommendationErrors.WithLabelValues(tt.mode, "not_found"))
			if after-before != tt.wantError {
				t.Errorf("error delta = %v, want %v", after-before, tt.wantError)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("memory"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("memory"))

	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", false)
	RecordCacheLookup("memory", false)

	if d := testutil.ToFloat64(CacheHits.WithLabelValues("memory")) - hits; d != 1 {
		t.Errorf("hits delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(CacheMisses.WithLabelValues("memory")) - misses; d != 2 {
		t.Errorf("misses delta = %v, want 2", d)
	}
}

func TestRecordInitialization(t *testing.T) {
	failures := testutil.ToFloat64(EngineInitializations.WithLabelValues("failure"))
	RecordInitialization(time.Second, nil, errors.New("load failed"))
	if d := testutil.ToFloat64(EngineInitializations.WithLabelValues("failure")) - failures; d != 1 {
		t.Errorf("failure delta = %v, want 1", d)
	}

	RecordInitialization(time.Second, &DatasetStats{
		Movies:  42,
		Users:   7,
		Ratings: 300,
		Version: 3,
		Dropped: map[string]int{"unknown_movie_ratings": 4},
	}, nil)

	if got := testutil.ToFloat64(DatasetSize.WithLabelValues("movies")); got != 42 {
		t.Errorf("dataset_size{movies} = %v, want 42", got)
	}
	if got := testutil.ToFloat64(EngineModelVersion); got != 3 {
		t.Errorf("engine_model_version = %v, want 3", got)
	}
	if got := testutil.ToFloat64(DatasetDroppedRows.WithLabelValues("unknown_movie_ratings")); got != 4 {
		t.Errorf("dropped rows = %v, want 4", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tests := []struct {
		to   string
		want float64
	}{
		{"open", 2},
		{"half-open", 1},
		{"closed", 0},
	}
	for _, tt := range tests {
		RecordBreakerTransition("redis-cache", "x", tt.to)
		if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("redis-cache")); got != tt.want {
			t.Errorf("state after %s = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestRecordReloadTrigger(t *testing.T) {
	before := testutil.ToFloat64(ReloadTriggers.WithLabelValues("admin", "throttled"))
	RecordReloadTrigger("admin", false)
	if d := testutil.ToFloat64(ReloadTriggers.WithLabelValues("admin", "throttled")) - before; d != 1 {
		t.Errorf("throttled delta = %v, want 1", d)
	}
}
