// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto at
// package init. Callers use the Record* helpers rather than touching the
// vectors directly so label sets stay consistent:
//
//	start := time.Now()
//	items, err := svc.Recommend(ctx, userID, n, mode)
//	metrics.RecordRecommendation(mode.String(), time.Since(start), kind(err))
package metrics
