// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinesense/internal/cache"
	"github.com/tomtom215/cinesense/internal/dataset"
	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/metrics"
	"github.com/tomtom215/cinesense/internal/recommend"
)

// TopGenreCount is how many genres a profile response lists.
const TopGenreCount = 5

// ErrReloadThrottled is returned by reload triggers that refuse a request
// arriving too soon after the previous reload.
var ErrReloadThrottled = errors.New("reload throttled")

// Engine is the subset of *recommend.Engine the service needs.
type Engine interface {
	Initialize(ctx context.Context, movies []recommend.Movie, ratings []recommend.Rating) (recommend.LoadReport, error)
	State() recommend.State
	Version() int64
	AnalyzeUser(ctx context.Context, userID int) (*recommend.UserProfile, error)
	Recommend(ctx context.Context, userID, n int, mode recommend.Mode) ([]recommend.RecommendationItem, error)
	Movie(id int) (*recommend.Movie, error)
	Stats() (recommend.Stats, error)
}

// Config tunes the service.
type Config struct {
	// CacheTTL is how long a recommendation list stays cached.
	CacheTTL time.Duration

	// LoadTimeout bounds a full reload (load plus initialize).
	LoadTimeout time.Duration

	// MaxCount is the largest accepted n.
	MaxCount int
}

// Recommendations is one recommendation list with its context.
type Recommendations struct {
	UserID       int                            `json:"user_id"`
	Mode         string                         `json:"mode"`
	ModeName     string                         `json:"mode_name"`
	Count        int                            `json:"count"`
	Items        []recommend.RecommendationItem `json:"items"`
	ModelVersion int64                          `json:"model_version"`
	Cached       bool                           `json:"cached"`
}

// Profile is the user analysis returned to clients.
type Profile struct {
	UserID           int                    `json:"user_id"`
	AverageRating    float64                `json:"average_rating"`
	TotalRatings     int                    `json:"total_ratings"`
	SentimentProfile recommend.Disposition  `json:"sentiment_profile"`
	TopGenres        []recommend.GenreCount `json:"top_genres"`
}

// MovieDetail is a catalog movie with its sentiment label.
type MovieDetail struct {
	recommend.Movie
	SentimentLabel recommend.SentimentLabel `json:"sentiment_label"`
}

// ReloadResult describes a completed reload.
type ReloadResult struct {
	Version     int64                `json:"model_version"`
	Source      string               `json:"source"`
	Report      recommend.LoadReport `json:"report"`
	Duration    time.Duration        `json:"-"`
	DurationMS  int64                `json:"duration_ms"`
	CompletedAt time.Time            `json:"completed_at"`
}

// RecommendationService serves recommendations through a cache and owns
// dataset reloads.
type RecommendationService struct {
	engine Engine
	cache  cache.Store
	loader dataset.Loader
	cfg    Config
	log    zerolog.Logger

	reloadMu   sync.Mutex
	lastReload atomic.Pointer[ReloadResult]
}

// New creates a service. A nil store disables caching.
func New(engine Engine, store cache.Store, loader dataset.Loader, cfg Config) *RecommendationService {
	if store == nil {
		store = cache.Noop{}
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &RecommendationService{
		engine: engine,
		cache:  store,
		loader: loader,
		cfg:    cfg,
		log:    logging.WithComponent("service"),
	}
}

// CacheKey is the cache key of one recommendation list.
func CacheKey(version int64, mode recommend.Mode, userID, n int) string {
	return fmt.Sprintf("rec:v%d:%s:%d:%d", version, mode, userID, n)
}

// Ready reports whether the engine can serve queries.
func (s *RecommendationService) Ready() bool {
	return s.engine.State() == recommend.StateReady
}

// LastReload returns the most recent successful reload, or nil.
func (s *RecommendationService) LastReload() *ReloadResult {
	return s.lastReload.Load()
}

// Recommend returns up to n recommendations for userID, from cache when possible.
func (s *RecommendationService) Recommend(ctx context.Context, userID, n int, mode recommend.Mode) (*Recommendations, error) {
	if n < 1 || n > s.cfg.MaxCount {
		return nil, recommend.NewError("recommend", recommend.ErrInvalidInput,
			"n must be between 1 and %d, got %d", s.cfg.MaxCount, n)
	}

	version := s.engine.Version()
	key := CacheKey(version, mode, userID, n)
	backend := s.cache.Backend()

	if version > 0 {
		items, hit, err := cache.GetJSON[[]recommend.RecommendationItem](ctx, s.cache, key)
		if err != nil {
			metrics.RecordCacheError(backend, "get")
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		}
		metrics.RecordCacheLookup(backend, hit)
		if hit {
			return s.result(userID, mode, version, items, true), nil
		}
	}

	start := time.Now()
	items, err := s.engine.Recommend(ctx, userID, n, mode)
	metrics.RecordRecommendation(mode.String(), time.Since(start), errorKind(err))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []recommend.RecommendationItem{}
	}

	// The engine may have been re-initialized while computing; only cache
	// under the version the list was actually computed from.
	if s.engine.Version() == version {
		if err := cache.SetJSON(ctx, s.cache, key, items, s.cfg.CacheTTL); err != nil {
			metrics.RecordCacheError(backend, "set")
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache store failed")
		}
	}

	return s.result(userID, mode, version, items, false), nil
}

func (s *RecommendationService) result(userID int, mode recommend.Mode, version int64, items []recommend.RecommendationItem, cached bool) *Recommendations {
	return &Recommendations{
		UserID:       userID,
		Mode:         mode.String(),
		ModeName:     mode.DisplayName(),
		Count:        len(items),
		Items:        items,
		ModelVersion: version,
		Cached:       cached,
	}
}

// Profile returns the user analysis with the top genres.
func (s *RecommendationService) Profile(ctx context.Context, userID int) (*Profile, error) {
	p, err := s.engine.AnalyzeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:           p.UserID,
		AverageRating:    p.AverageRating,
		TotalRatings:     p.TotalRatings,
		SentimentProfile: p.Disposition,
		TopGenres:        p.TopGenres(TopGenreCount),
	}, nil
}

// Movie returns one catalog movie.
func (s *RecommendationService) Movie(_ context.Context, id int) (*MovieDetail, error) {
	m, err := s.engine.Movie(id)
	if err != nil {
		return nil, err
	}
	return &MovieDetail{Movie: *m, SentimentLabel: recommend.LabelSentiment(m.Sentiment)}, nil
}

// Stats returns dataset and model statistics.
func (s *RecommendationService) Stats(context.Context) (recommend.Stats, error) {
	return s.engine.Stats()
}

// Reload loads the dataset, re-initializes the engine and clears the cache.
// Concurrent calls run one after another. On failure the engine keeps
// serving its previous snapshot.
func (s *RecommendationService) Reload(ctx context.Context) (*ReloadResult, error) {
	if s.loader == nil {
		return nil, errors.New("no dataset loader configured")
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LoadTimeout)
		defer cancel()
	}

	start := time.Now()
	ds, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordInitialization(time.Since(start), nil, err)
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	report, err := s.engine.Initialize(ctx, ds.Movies, ds.Ratings)
	if err != nil {
		metrics.RecordInitialization(time.Since(start), nil, err)
		return nil, fmt.Errorf("initialize engine: %w", err)
	}
	duration := time.Since(start)

	stats, err := s.engine.Stats()
	if err == nil {
		metrics.RecordInitialization(duration, &metrics.DatasetStats{
			Movies:  stats.TotalMovies,
			Users:   stats.TotalUsers,
			Ratings: stats.TotalRatings,
			Version: stats.ModelVersion,
			Dropped: droppedByReason(report),
		}, nil)
	}

	if err := s.cache.Clear(ctx); err != nil {
		metrics.RecordCacheError(s.cache.Backend(), "clear")
		s.log.Warn().Err(err).Msg("Failed to clear recommendation cache after reload")
	}

	res := &ReloadResult{
		Version:     s.engine.Version(),
		Source:      ds.Source,
		Report:      report,
		Duration:    duration,
		DurationMS:  duration.Milliseconds(),
		CompletedAt: time.Now().UTC(),
	}
	s.lastReload.Store(res)

	s.log.Info().
		Int64("version", res.Version).
		Str("source", res.Source).
		Int("movies", report.MoviesLoaded).
		Int("ratings", report.RatingsLoaded).
		Dur("duration", duration).
		Msg("Dataset reloaded")

	return res, nil
}

func droppedByReason(r recommend.LoadReport) map[string]int {
	return map[string]int{
		"invalid_movie":     r.InvalidMovies,
		"duplicate_movie":   r.DuplicateMovie,
		"invalid_sentiment": r.InvalidSentiment,
		"unknown_movie":     r.UnknownMovieRatings,
		"invalid_rating":    r.InvalidRatings,
		"duplicate_rating":  r.DuplicateRatings,
	}
}

// errorKind maps an engine error to a metric label.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case recommend.IsNotFound(err):
		return "not_found"
	case recommend.IsInvalidInput(err):
		return "invalid_input"
	case recommend.IsUnavailable(err):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
