// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// Source names.
const (
	SourceDuckDB   = "duckdb"
	SourcePostgres = "postgres"
	SourceSnapshot = "snapshot"
)

// noGenres is the MovieLens placeholder for a movie without genres.
const noGenres = "(no genres listed)"

// Dataset is one complete load of the catalog and ratings.
type Dataset struct {
	Movies  []recommend.Movie
	Ratings []recommend.Rating

	// Source names where the data came from.
	Source string

	LoadedAt time.Time
}

// Loader produces a fresh Dataset on every call.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
	Close() error
}

// Config selects and configures a Loader.
type Config struct {
	Source string

	MoviesPath    string
	RatingsPath   string
	SentimentPath string
	ReviewsPath   string

	// DuckDBPath is the database file used for CSV parsing.
	// Empty means an in-memory database.
	DuckDBPath string

	PostgresDSN string

	// SnapshotDir enables snapshot fallback when non-empty.
	SnapshotDir  string
	SnapshotKeep int
}

// New builds the loader named by cfg.Source, wrapped in a SnapshotLoader
// when cfg.SnapshotDir is set.
func New(ctx context.Context, cfg Config) (Loader, error) {
	var (
		l   Loader
		err error
	)
	switch cfg.Source {
	case SourceDuckDB, "":
		l, err = NewDuckDBLoader(cfg)
	case SourcePostgres:
		l, err = NewPostgresLoader(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SnapshotDir == "" {
		return l, nil
	}
	store, err := NewSnapshotStore(cfg.SnapshotDir)
	if err != nil {
		_ = l.Close() //nolint:errcheck // already returning the snapshot error
		return nil, err
	}
	return NewSnapshotLoader(l, store, cfg.SnapshotKeep), nil
}

// parseGenres splits a pipe-separated genre list.
func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// mergeSentiment attaches explicit sentiment scores, then fills the
// remaining gaps from review text. It returns how many movies were scored
// from reviews.
func mergeSentiment(movies []recommend.Movie, explicit map[int]float64, reviews map[int][]string, scorer *SentimentScorer) int {
	fromReviews := 0
	for i := range movies {
		m := &movies[i]
		if s, ok := explicit[m.ID]; ok {
			v := s
			m.Sentiment = &v
			continue
		}
		if m.Sentiment != nil || scorer == nil {
			continue
		}
		if v, ok := scorer.Score(reviews[m.ID]); ok {
			m.Sentiment = &v
			fromReviews++
		}
	}
	return fromReviews
}
