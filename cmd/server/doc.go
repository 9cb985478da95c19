// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package main is the entry point for the CineSense server.
//
// CineSense serves movie recommendations that blend collaborative
// filtering predictions with each user's sentiment disposition.
//
// # Startup
//
//  1. Configuration: Koanf v2 with env > config.yaml > defaults
//  2. Logging: zerolog, JSON or console
//  3. Cache: memory, Redis, Badger or none
//  4. Dataset loader: CSV through DuckDB, or PostgreSQL, optionally
//     wrapped with on-disk snapshots
//  5. Engine: scorer (baseline, itemknn, svd) and diverse-mode reranker
//     (coverage, mmr)
//  6. Supervisor tree: refresh service (initial load and reloads), NATS
//     events listener when enabled, HTTP server
//
// The HTTP server starts immediately; /api/v1/health/ready returns 503
// until the first dataset load completes.
//
// # Example
//
//	export MOVIES_PATH=/data/ml-latest-small/movies.csv
//	export RATINGS_PATH=/data/ml-latest-small/ratings.csv
//	export SENTIMENT_PATH=/data/sentiment.csv
//	export RECOMMEND_SCORER=svd
//	./cinesense
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree: the HTTP server drains
// in-flight requests within server.shutdown_timeout and the cache and
// loader connections are closed.
package main
