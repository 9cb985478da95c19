// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package logging provides the process-wide zerolog logger for CineSense.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
// Components take a tagged child logger:
//
//	log := logging.WithComponent("dataset")
//	log.Info().Int("movies", n).Msg("dataset loaded")
//
// Request handlers log through the request context so every line carries
// the request ID set by the API middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("recommendation failed")
//
// Two adapters route third-party loggers into the same stream:
// SlogHandler (log/slog, used by sutureslog) and WatermillAdapter
// (watermill.LoggerAdapter, used by the NATS reload subscriber).
//
// Always terminate chains with Msg or Send; an unterminated event is
// never written.
package logging
