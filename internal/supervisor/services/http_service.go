// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinesense/internal/logging"
)

// HTTPServer is satisfied by *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server and shuts it down gracefully when
// its context is canceled.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
	addr            string
	logger          zerolog.Logger
}

// NewHTTPServerService wraps server. A non-positive timeout means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
		addr:            serverAddr(server),
		logger:          logging.WithComponent("http"),
	}
}

// WithLogger replaces the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (h *HTTPServerService) WithLogger(logger zerolog.Logger) *HTTPServerService {
	h.logger = logger
	return h
}

// serverAddr returns the listen address when server is an *http.Server.
func serverAddr(server HTTPServer) string {
	if hs, ok := server.(*http.Server); ok {
		return hs.Addr
	}
	return ""
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	h.logger.Info().Str("addr", h.addr).Msg("http server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			h.logger.Error().Err(err).Str("addr", h.addr).Msg("http server failed")
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled, so shutdown needs a fresh one.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		start := time.Now()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Warn().Err(err).Dur("timeout", h.shutdownTimeout).Msg("http server shutdown failed")
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		h.logger.Info().Dur("duration", time.Since(start)).Msg("http server stopped")
		return ctx.Err()
	}
}

func (h *HTTPServerService) String() string {
	return h.name
}
