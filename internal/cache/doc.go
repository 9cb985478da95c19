// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package cache provides the recommendation response cache.
//
// Four backends implement Store:
//
//   - memory: in-process LRU with per-entry TTL (default)
//   - redis: shared cache for multi-instance deployments, guarded by a
//     sony/gobreaker circuit breaker so an outage turns into cache misses
//   - badger: embedded on-disk cache that survives restarts
//   - none: disables caching
//
// Keys embed the engine model version, so entries from an older snapshot
// are never served after a reload even before Clear runs.
//
//	store, err := cache.New(cache.Config{Backend: "redis", RedisURL: url})
//	items, ok, err := cache.GetJSON[[]recommend.RecommendationItem](ctx, store, key)
package cache
