// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinesense/internal/metrics"
	"github.com/tomtom215/cinesense/internal/service"
)

// Reload sources used as metric labels.
const (
	SourceStartup  = "startup"
	SourceInterval = "interval"
	SourceAdmin    = "admin"
	SourceRetry    = "retry"
)

// DatasetReloader loads the dataset and re-initializes the engine.
type DatasetReloader interface {
	Reload(ctx context.Context) (*service.ReloadResult, error)
}

// RefreshConfig configures RefreshService.
type RefreshConfig struct {
	// Interval between scheduled reloads. Zero disables them.
	Interval time.Duration

	// MinInterval is the minimum spacing of on-demand reloads
	// (admin and event). Zero disables throttling.
	MinInterval time.Duration

	// RetryDelay is how soon a failed startup load is retried.
	// Default: 30s
	RetryDelay time.Duration
}

// RefreshService owns the engine's data lifecycle: the initial load,
// scheduled reloads and reloads requested by admins or bus events.
//
// On-demand requests share one token bucket. Asynchronous triggers are
// coalesced: while a reload is pending, further triggers are absorbed.
type RefreshService struct {
	reloader DatasetReloader
	config   RefreshConfig
	limiter  *rate.Limiter
	pending  chan string
	logger   zerolog.Logger
	name     string
}

// NewRefreshService creates the service.
func NewRefreshService(reloader DatasetReloader, cfg RefreshConfig, logger zerolog.Logger) *RefreshService {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &RefreshService{
		reloader: reloader,
		config:   cfg,
		limiter:  rate.NewLimiter(limit, 1),
		pending:  make(chan string, 1),
		logger:   logger.With().Str("service", "refresh").Logger(),
		name:     "refresh-service",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Dur("min_interval", s.config.MinInterval).
		Msg("refresh service starting")

	// Retry a failed startup load until one succeeds; after that only the
	// schedule and triggers reload.
	var retry <-chan time.Time
	metrics.RecordReloadTrigger(SourceStartup, true)
	if !s.reload(ctx, SourceStartup) {
		retry = time.After(s.config.RetryDelay)
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-retry:
			retry = nil
			metrics.RecordReloadTrigger(SourceRetry, true)
			if !s.reload(ctx, SourceRetry) {
				retry = time.After(s.config.RetryDelay)
			}

		case <-tick:
			metrics.RecordReloadTrigger(SourceInterval, true)
			if s.reload(ctx, SourceInterval) {
				retry = nil
			}

		case source := <-s.pending:
			if s.reload(ctx, source) {
				retry = nil
			}
		}
	}
}

// TriggerReload queues an asynchronous reload. It returns false when the
// request was throttled.
func (s *RefreshService) TriggerReload(source string) bool {
	if !s.limiter.Allow() {
		metrics.RecordReloadTrigger(source, false)
		s.logger.Debug().Str("source", source).Msg("reload trigger throttled")
		return false
	}
	metrics.RecordReloadTrigger(source, true)

	select {
	case s.pending <- source:
	default:
		// One is already queued.
	}
	return true
}

// Reload runs a reload on the caller's goroutine, subject to the same
// throttle as TriggerReload. It returns service.ErrReloadThrottled when
// throttled.
func (s *RefreshService) Reload(ctx context.Context) (*service.ReloadResult, error) {
	if !s.limiter.Allow() {
		metrics.RecordReloadTrigger(SourceAdmin, false)
		return nil, service.ErrReloadThrottled
	}
	metrics.RecordReloadTrigger(SourceAdmin, true)

	res, err := s.reloader.Reload(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", SourceAdmin).Msg("reload failed, keeping previous snapshot")
		return nil, err
	}
	return res, nil
}

func (s *RefreshService) reload(ctx context.Context, source string) bool {
	res, err := s.reloader.Reload(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Str("source", source).Msg("reload failed, keeping previous snapshot")
		}
		return false
	}
	s.logger.Debug().
		Str("source", source).
		Int64("version", res.Version).
		Dur("duration", res.Duration).
		Msg("reload complete")
	return true
}

func (s *RefreshService) String() string {
	return s.name
}
