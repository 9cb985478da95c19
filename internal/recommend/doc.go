// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package recommend implements the sentiment-aware hybrid recommendation engine.
//
// # Architecture
//
// The engine composes five parts, leaf first:
//
//   - Catalog: validated, read-only movie and rating tables
//   - Profiles: per-user mean, genre counts and sentiment disposition
//   - Scorer: collaborative rating predictor (see package algorithms)
//   - Blender: shifts a base score by movie sentiment according to disposition
//   - Reranker: selects a genre-diverse subset of a pool (see package reranking)
//
// Initialize builds the catalog and profiles, fits a fresh scorer and
// publishes everything as one immutable snapshot. Queries read the current
// snapshot without locking.
//
// # Modes
//
// Three strategies serve recommendation requests:
//
//   - ModeCollaborative: scorer output as-is
//   - ModeSentimentAware: oversampled pool, blended, sorted by adjusted score
//   - ModeDiverse: oversampled pool, blended, then reranked for genre coverage
//
// # Dispositions
//
// A user who rates high-sentiment movies (> 0.6) at least one point higher
// than low-sentiment movies (< 0.4) is a positive_seeker; the reverse is
// critical; everyone else is balanced. Movies without sentiment count as
// neutral (0.5) and fall in neither band.
//
// # Errors
//
// Every query failure wraps one of ErrNotFound, ErrUnavailable or
// ErrInvalidInput. Users without ratings are reported as not found instead
// of receiving fabricated defaults.
//
// # Usage
//
//	factory, _ := algorithms.Factory(algorithms.DefaultSettings(), recommend.DefaultRatingScale())
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), factory, reranking.NewGenreCoverage(), logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.Initialize(ctx, movies, ratings); err != nil {
//	    return err
//	}
//	items, err := engine.RecommendSentimentAware(ctx, userID, 10)
//
// # Thread Safety
//
// Initialize calls are serialized. All other methods are safe for
// concurrent use and never observe a partially built snapshot.
package recommend
