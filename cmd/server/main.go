// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinesense/internal/api"
	"github.com/tomtom215/cinesense/internal/auth"
	"github.com/tomtom215/cinesense/internal/config"
	"github.com/tomtom215/cinesense/internal/events"
	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/supervisor"
	"github.com/tomtom215/cinesense/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("data_source", cfg.Data.Source).
		Str("scorer", cfg.Recommend.Scorer).
		Str("reranker", cfg.Recommend.Reranker).
		Str("cache", cfg.Cache.Backend).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting CineSense")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := initRecommend(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation components")
	}
	defer components.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	refresh := services.NewRefreshService(components.Service, services.RefreshConfig{
		Interval:    cfg.Recommend.RefreshInterval,
		MinInterval: cfg.Recommend.ReloadMinInterval,
	}, logging.Logger())
	tree.AddDataService(refresh)

	// Messaging layer
	if cfg.Events.Enabled {
		if closeEvents := initEvents(cfg, refresh, tree); closeEvents != nil {
			defer closeEvents()
		}
	}

	// API layer
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           buildRouter(cfg, components, refresh).Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("CineSense stopped")
}

// buildRouter wires handlers, middleware and admin auth.
func buildRouter(cfg *config.Config, components *RecommendComponents, refresh *services.RefreshService) *api.Router {
	handler := api.NewHandler(components.Service, refresh, api.HandlerConfig{
		DefaultCount:   cfg.Recommend.DefaultCount,
		MaxCount:       cfg.Recommend.MaxCount,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mw.RateLimitRequests = cfg.Server.RateLimitRequests
	mw.RateLimitWindow = cfg.Server.RateLimitWindow
	mw.RateLimitDisabled = cfg.Server.RateLimitDisabled

	var admin *auth.JWTManager
	if cfg.Server.AdminJWTSecret != "" {
		var err error
		admin, err = auth.NewJWTManager(cfg.Server.AdminJWTSecret)
		if err != nil {
			logging.Fatal().Err(err).Msg("Invalid admin JWT secret")
		}
		logging.Info().Msg("Admin reload endpoint enabled")
	}

	return api.NewRouter(handler, api.RouterConfig{Middleware: mw, Admin: admin})
}

// initEvents adds the dataset listener to the tree. A bus that cannot be
// configured is logged and skipped; periodic refresh still runs.
func initEvents(cfg *config.Config, trigger events.Trigger, tree *supervisor.SupervisorTree) func() {
	logger := logging.NewWatermillAdapter(logging.WithComponent("watermill"))
	sub, err := events.NewSubscriber(events.NATSConfig{
		URL:           cfg.Events.NATSURL,
		QueueGroup:    cfg.Events.QueueGroup,
		MaxReconnects: cfg.Events.MaxReconnects,
		ReconnectWait: cfg.Events.ReconnectWait,
	}, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Dataset events disabled: subscriber setup failed")
		return nil
	}

	tree.AddMessagingService(services.NewEventsService(events.NewListener(sub, cfg.Events.Topic, trigger)))
	logging.Info().
		Str("url", cfg.Events.NATSURL).
		Str("topic", cfg.Events.Topic).
		Msg("Dataset events listener added")

	return func() {
		if err := sub.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing events subscriber")
		}
	}
}
