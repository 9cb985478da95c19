// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State is the engine lifecycle state.
type State int

const (
	// StateUninitialized means Initialize has not completed.
	StateUninitialized State = iota

	// StateReady means queries can be served.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// snapshot is the immutable derived state published by Initialize.
type snapshot struct {
	version       int64
	catalog       *Catalog
	profiles      map[int]*UserProfile
	scorer        Scorer
	report        LoadReport
	initializedAt time.Time
}

// Stats summarizes the current dataset and model.
type Stats struct {
	TotalMovies   int        `json:"total_movies"`
	TotalUsers    int        `json:"total_users"`
	TotalRatings  int        `json:"total_ratings"`
	AverageRating float64    `json:"average_rating"`
	ModelVersion  int64      `json:"model_version"`
	Scorer        string     `json:"scorer"`
	InitializedAt time.Time  `json:"initialized_at"`
	Report        LoadReport `json:"load_report"`
}

// Engine is the hybrid recommendation orchestrator.
//
// Initialize runs with exclusive access and publishes an immutable snapshot.
// All query methods read the current snapshot without locking and may be
// called concurrently.
type Engine struct {
	config        Config
	scorerFactory ScorerFactory
	logger        zerolog.Logger

	strategies map[Mode]Strategy

	initMu  sync.Mutex
	current atomic.Pointer[snapshot]
	version atomic.Int64
}

// NewEngine creates an engine in the uninitialized state.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, scorerFactory ScorerFactory, reranker Reranker, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if scorerFactory == nil {
		return nil, errors.New("scorer factory is required")
	}
	if reranker == nil {
		return nil, errors.New("reranker is required")
	}

	blender := NewBlender(cfg.BlendWeight)

	return &Engine{
		config:        cfg,
		scorerFactory: scorerFactory,
		logger:        logger.With().Str("component", "recommend").Logger(),
		strategies: map[Mode]Strategy{
			ModeCollaborative:  collaborativeStrategy{},
			ModeSentimentAware: sentimentAwareStrategy{blender: blender, oversample: cfg.Oversample},
			ModeDiverse:        diverseStrategy{blender: blender, oversample: cfg.Oversample, reranker: reranker},
		},
	}, nil
}

// Initialize builds the catalog and user profiles and fits a new scorer.
//
// It is safe to call repeatedly: each call rebuilds all derived state from
// scratch and replaces the published snapshot only after the fit succeeds.
// Profiles returned before a re-initialization describe the old snapshot.
func (e *Engine) Initialize(ctx context.Context, movies []Movie, ratings []Rating) (LoadReport, error) {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	start := time.Now()

	catalog, report := NewCatalog(movies, ratings, e.config.Scale)
	e.logger.Info().
		Int("movies", report.MoviesLoaded).
		Int("ratings", report.RatingsLoaded).
		Int("dropped_movies", report.DroppedMovies()).
		Int("unknown_movie_ratings", report.UnknownMovieRatings).
		Int("invalid_ratings", report.InvalidRatings).
		Int("duplicate_ratings", report.DuplicateRatings).
		Int("missing_sentiment", report.MissingSentiment).
		Msg("catalog loaded")

	profiles := BuildProfiles(catalog, e.config.Profile)

	scorer := e.scorerFactory()
	if err := scorer.Fit(ctx, catalog.MovieIDs(), catalog.Ratings()); err != nil {
		return report, fmt.Errorf("fit %s scorer: %w", scorer.Name(), err)
	}

	snap := &snapshot{
		version:       e.version.Add(1),
		catalog:       catalog,
		profiles:      profiles,
		scorer:        scorer,
		report:        report,
		initializedAt: time.Now(),
	}
	e.current.Store(snap)

	e.logger.Info().
		Int64("version", snap.version).
		Int("users", len(profiles)).
		Str("scorer", scorer.Name()).
		Dur("duration", time.Since(start)).
		Msg("engine ready")

	return report, nil
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	if e.current.Load() == nil {
		return StateUninitialized
	}
	return StateReady
}

// Version returns the published snapshot version, or 0 before initialization.
func (e *Engine) Version() int64 {
	if s := e.current.Load(); s != nil {
		return s.version
	}
	return 0
}

func (e *Engine) ready(op string) (*snapshot, error) {
	s := e.current.Load()
	if s == nil {
		return nil, unavailable(op, "engine is not initialized")
	}
	return s, nil
}

// AnalyzeUser returns a copy of the user's profile.
func (e *Engine) AnalyzeUser(ctx context.Context, userID int) (*UserProfile, error) {
	const op = "analyze_user"

	s, err := e.ready(op)
	if err != nil {
		return nil, e.fail(op, err)
	}
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, e.fail(op, notFound(op, "user %d has no rating history", userID))
	}
	return profile.Clone(), nil
}

// Recommend dispatches to the strategy for mode.
func (e *Engine) Recommend(ctx context.Context, userID, n int, mode Mode) ([]RecommendationItem, error) {
	strategy, ok := e.strategies[mode]
	if !ok {
		return nil, e.fail("recommend", invalidInput("recommend", "unknown mode %d", mode))
	}
	return e.run(ctx, strategy, userID, n)
}

// RecommendSentimentAware blends an oversampled candidate pool and returns
// the top n by adjusted score.
func (e *Engine) RecommendSentimentAware(ctx context.Context, userID, n int) ([]RecommendationItem, error) {
	return e.run(ctx, e.strategies[ModeSentimentAware], userID, n)
}

// RecommendDiverse blends an oversampled candidate pool and reranks it for
// genre coverage.
func (e *Engine) RecommendDiverse(ctx context.Context, userID, n int) ([]RecommendationItem, error) {
	return e.run(ctx, e.strategies[ModeDiverse], userID, n)
}

// RecommendCollaborative returns the scorer's top n without sentiment adjustment.
func (e *Engine) RecommendCollaborative(ctx context.Context, userID, n int) ([]RecommendationItem, error) {
	return e.run(ctx, e.strategies[ModeCollaborative], userID, n)
}

func (e *Engine) run(ctx context.Context, st Strategy, userID, n int) ([]RecommendationItem, error) {
	op := "recommend_" + st.Mode().String()

	s, err := e.ready(op)
	if err != nil {
		return nil, e.fail(op, err)
	}
	if n <= 0 {
		return nil, e.fail(op, invalidInput(op, "n must be positive, got %d", n))
	}
	if _, ok := s.profiles[userID]; !ok {
		return nil, e.fail(op, notFound(op, "user %d has no rating history", userID))
	}

	items, err := st.recommend(s, userID, n)
	if err != nil {
		return nil, e.fail(op, err)
	}

	logger := e.requestLogger(userID, st.Mode())
	logger.Debug().
		Int("n", n).
		Int("returned", len(items)).
		Int64("version", s.version).
		Msg("recommendations generated")

	return items, nil
}

func (e *Engine) fail(op string, err error) error {
	e.logger.Debug().Err(err).Str("op", op).Msg("request failed")
	return err
}

func (e *Engine) requestLogger(userID int, mode Mode) zerolog.Logger {
	return e.logger.With().
		Int("user_id", userID).
		Str("mode", mode.String()).
		Logger()
}

// Movie returns a catalog movie by id.
func (e *Engine) Movie(id int) (*Movie, error) {
	const op = "movie"
	s, err := e.ready(op)
	if err != nil {
		return nil, err
	}
	m, ok := s.catalog.Movie(id)
	if !ok {
		return nil, notFound(op, "movie %d", id)
	}
	c := *m
	c.Genres = append([]string(nil), m.Genres...)
	c.Sentiment = copyFloat(m.Sentiment)
	return &c, nil
}

// Stats returns dataset and model statistics.
func (e *Engine) Stats() (Stats, error) {
	s, err := e.ready("stats")
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalMovies:   s.catalog.NumMovies(),
		TotalUsers:    s.catalog.NumUsers(),
		TotalRatings:  s.catalog.NumRatings(),
		AverageRating: s.catalog.AverageRating(),
		ModelVersion:  s.version,
		Scorer:        s.scorer.Name(),
		InitializedAt: s.initializedAt,
		Report:        s.report,
	}, nil
}
