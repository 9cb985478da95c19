// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package service composes the recommendation engine, the response cache and
// the dataset loader into the operations exposed over HTTP.
//
// Cached recommendation lists are keyed by the engine's model version, so a
// reload never serves lists computed from the previous snapshot even before
// the cache is cleared. Cache failures are logged and counted but never fail
// a request.
package service
