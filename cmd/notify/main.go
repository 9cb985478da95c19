// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Command notify publishes a dataset.updated event so running CineSense
// servers reload their data. Data pipelines run it after writing new
// movie, rating or sentiment files.
//
//	NATS_URL=nats://nats:4222 notify -source nightly-etl -reason "ratings import"
//
// The NATS URL and topic come from the same configuration as the server.
package main

import (
	"flag"
	"os"

	"github.com/tomtom215/cinesense/internal/config"
	"github.com/tomtom215/cinesense/internal/events"
	"github.com/tomtom215/cinesense/internal/logging"
)

func main() {
	source := flag.String("source", "cli", "name of the system that changed the dataset")
	reason := flag.String("reason", "", "free-form description of the change")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	if err := run(cfg, *source, *reason); err != nil {
		logging.Error().Err(err).Msg("Failed to publish dataset event")
		os.Exit(1)
	}
}

func run(cfg *config.Config, source, reason string) error {
	pub, err := events.NewPublisher(events.NATSConfig{
		URL:      cfg.Events.NATSURL,
		FailFast: true,
	}, logging.NewWatermillAdapter(logging.WithComponent("watermill")))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Error closing publisher")
		}
	}()

	e := events.NewDatasetUpdated(source, reason)
	if err := events.Publish(pub, cfg.Events.Topic, e); err != nil {
		return err
	}

	logging.Info().
		Str("event_id", e.EventID).
		Str("topic", cfg.Events.Topic).
		Str("source", source).
		Msg("Dataset event published")
	return nil
}
