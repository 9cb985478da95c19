// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinesense/internal/auth"
	"github.com/tomtom215/cinesense/internal/middleware"
)

// RouterConfig configures the router.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig

	// Admin validates admin tokens. When nil the admin routes are not
	// registered and answer 404.
	Admin *auth.JWTManager
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	admin         *auth.JWTManager
}

// NewRouter creates a router for h.
func NewRouter(h *Handler, cfg RouterConfig) *Router {
	return &Router{
		handler:       h,
		chiMiddleware: NewChiMiddleware(cfg.Middleware),
		admin:         cfg.Admin,
	}
}

// Setup builds the HTTP handler.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/profile", h.UserProfile)
				r.Get("/recommendations", h.UserRecommendations)
			})
			r.Get("/movies/{movieID}", h.MovieDetail)
			r.Get("/stats", h.Stats)
		})

		if router.admin != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin(router.admin, writeAuthError))
				r.Post("/reload", h.AdminReload)
			})
		}
	})

	return r
}
