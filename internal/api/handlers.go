// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinesense/internal/recommend"
	"github.com/tomtom215/cinesense/internal/service"
)

// Recommender is the read side of the recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, userID, n int, mode recommend.Mode) (*service.Recommendations, error)
	Profile(ctx context.Context, userID int) (*service.Profile, error)
	Movie(ctx context.Context, id int) (*service.MovieDetail, error)
	Stats(ctx context.Context) (recommend.Stats, error)
	Ready() bool
	LastReload() *service.ReloadResult
}

// Reloader runs an on-demand dataset reload.
type Reloader interface {
	Reload(ctx context.Context) (*service.ReloadResult, error)
}

// HandlerConfig bounds request parameters.
type HandlerConfig struct {
	DefaultCount int
	MaxCount     int

	// RequestTimeout bounds one query. Zero means no timeout.
	RequestTimeout time.Duration
}

// Handler serves the HTTP endpoints.
type Handler struct {
	svc       Recommender
	reloader  Reloader
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler. reloader may be nil when admin reloads
// are not exposed.
func NewHandler(svc Recommender, reloader Reloader, cfg HandlerConfig) *Handler {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 20
	}
	if cfg.DefaultCount <= 0 || cfg.DefaultCount > cfg.MaxCount {
		cfg.DefaultCount = min(10, cfg.MaxCount)
	}
	return &Handler{
		svc:       svc,
		reloader:  reloader,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

func (h *Handler) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
}

// HealthLive reports that the process is up, regardless of engine state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 503 until the engine has a snapshot.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Ready() {
		NewResponseWriter(w, r).ServiceUnavailable("recommendation engine is not initialized")
		return
	}

	data := map[string]interface{}{"ready": true}
	if last := h.svc.LastReload(); last != nil {
		data["model_version"] = last.Version
		data["loaded_at"] = last.CompletedAt
	}
	WriteSuccess(w, r, data)
}

// UserProfile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ve := pathID(r, "userID", "user_id")
	if ve != nil {
		writeValidationError(w, r, ve)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	profile, err := h.svc.Profile(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, profile)
}

// UserRecommendations handles GET /api/v1/users/{userID}/recommendations.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ve := pathID(r, "userID", "user_id")
	if ve != nil {
		writeValidationError(w, r, ve)
		return
	}
	req, mode, ve := parseRecommendationsRequest(r, h.cfg.DefaultCount, h.cfg.MaxCount)
	if ve != nil {
		writeValidationError(w, r, ve)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	recs, err := h.svc.Recommend(ctx, userID, req.Count, mode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, recs)
}

// MovieDetail handles GET /api/v1/movies/{movieID}.
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID, ve := pathID(r, "movieID", "movie_id")
	if ve != nil {
		writeValidationError(w, r, ve)
		return
	}

	movie, err := h.svc.Movie(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, movie)
}

type statsResponse struct {
	recommend.Stats
	LastReload *service.ReloadResult `json:"last_reload,omitempty"`
	Uptime     float64               `json:"uptime"`
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, statsResponse{
		Stats:      stats,
		LastReload: h.svc.LastReload(),
		Uptime:     time.Since(h.startTime).Seconds(),
	})
}

// AdminReload handles POST /api/v1/admin/reload. The reload runs on the
// request goroutine and its result is returned.
func (h *Handler) AdminReload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		NewResponseWriter(w, r).ServiceUnavailable("reloads are not enabled")
		return
	}

	res, err := h.reloader.Reload(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, r, res)
}
