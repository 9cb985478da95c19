// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/recommend"
)

// schemaStatements create the tables PostgresLoader reads. Genres are
// stored pipe-separated, as in the MovieLens CSVs.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id       BIGINT PRIMARY KEY,
		title    TEXT NOT NULL,
		genres   TEXT,
		overview TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id  BIGINT NOT NULL,
		movie_id BIGINT NOT NULL,
		rating   DOUBLE PRECISION NOT NULL,
		rated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS movie_sentiment (
		movie_id        BIGINT PRIMARY KEY REFERENCES movies (id) ON DELETE CASCADE,
		sentiment_score DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings (user_id)`,
}

// PostgresLoader reads the catalog and ratings from PostgreSQL.
type PostgresLoader struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresLoader connects a pool to dsn and verifies it.
func NewPostgresLoader(ctx context.Context, dsn string) (*PostgresLoader, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresLoaderWithPool(pool), nil
}

// NewPostgresLoaderWithPool wraps an existing pool. Close closes the pool.
func NewPostgresLoaderWithPool(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool, log: logging.WithComponent("dataset")}
}

// EnsureSchema creates the tables if they do not exist.
func (l *PostgresLoader) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := l.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Load queries movies and ratings concurrently.
func (l *PostgresLoader) Load(ctx context.Context) (*Dataset, error) {
	var (
		movies  []recommend.Movie
		ratings []recommend.Rating
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = l.loadMovies(gctx)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = l.loadRatings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.log.Info().
		Int("movies", len(movies)).
		Int("ratings", len(ratings)).
		Msg("Loaded PostgreSQL dataset")

	return &Dataset{
		Movies:   movies,
		Ratings:  ratings,
		Source:   SourcePostgres,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// Close closes the pool.
func (l *PostgresLoader) Close() error {
	l.pool.Close()
	return nil
}

func (l *PostgresLoader) loadMovies(ctx context.Context) ([]recommend.Movie, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT m.id, m.title, COALESCE(m.genres, ''), COALESCE(m.overview, ''), s.sentiment_score
		FROM movies m
		LEFT JOIN movie_sentiment s ON s.movie_id = m.id
		ORDER BY m.id`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []recommend.Movie
	for rows.Next() {
		var (
			id        int64
			m         recommend.Movie
			genres    string
			sentiment *float64
		)
		if err := rows.Scan(&id, &m.Title, &genres, &m.Overview, &sentiment); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.ID = int(id)
		m.Genres = parseGenres(genres)
		m.Sentiment = sentiment
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func (l *PostgresLoader) loadRatings(ctx context.Context) ([]recommend.Rating, error) {
	rows, err := l.pool.Query(ctx, `SELECT user_id, movie_id, rating, rated_at FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []recommend.Rating
	for rows.Next() {
		var (
			userID, movieID int64
			value           float64
			ratedAt         *time.Time
		)
		if err := rows.Scan(&userID, &movieID, &value, &ratedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		r := recommend.Rating{UserID: int(userID), MovieID: int(movieID), Value: value}
		if ratedAt != nil {
			r.Timestamp = ratedAt.UTC()
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}
