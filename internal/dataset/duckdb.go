// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/recommend"
)

// DuckDBLoader reads MovieLens-style CSV files through DuckDB.
//
// Every column is read as text and converted with TRY_CAST so a malformed
// row yields NULLs that are skipped instead of failing the whole load.
type DuckDBLoader struct {
	db     *sql.DB
	cfg    Config
	scorer *SentimentScorer
	log    zerolog.Logger
}

// NewDuckDBLoader opens the DuckDB database at cfg.DuckDBPath (in-memory
// when empty). CSV paths are checked on every Load, not here.
func NewDuckDBLoader(cfg Config) (*DuckDBLoader, error) {
	db, err := sql.Open("duckdb", cfg.DuckDBPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // already returning the ping error
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	l := &DuckDBLoader{db: db, cfg: cfg, log: logging.WithComponent("dataset")}
	if cfg.ReviewsPath != "" {
		l.scorer = NewSentimentScorer()
	}
	return l, nil
}

// Load reads all configured files concurrently and merges them.
func (l *DuckDBLoader) Load(ctx context.Context) (*Dataset, error) {
	for _, p := range []string{l.cfg.MoviesPath, l.cfg.RatingsPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("dataset file: %w", err)
		}
	}

	var (
		movies    []recommend.Movie
		ratings   []recommend.Rating
		sentiment map[int]float64
		reviews   map[int][]string
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
	if l.cfg.SentimentPath != "" {
		g.Go(func() (err error) {
			sentiment, err = l.loadSentiment(gctx)
			return err
		})
	}
	if l.cfg.ReviewsPath != "" {
		g.Go(func() (err error) {
			reviews, err = l.loadReviews(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := mergeSentiment(movies, sentiment, reviews, l.scorer)

	l.log.Info().
		Int("movies", len(movies)).
		Int("ratings", len(ratings)).
		Int("explicit_sentiment", len(sentiment)).
		Int("review_sentiment", scored).
		Msg("Loaded CSV dataset")

	return &Dataset{
		Movies:   movies,
		Ratings:  ratings,
		Source:   SourceDuckDB,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// Close closes the DuckDB handle.
func (l *DuckDBLoader) Close() error {
	return l.db.Close()
}

func (l *DuckDBLoader) loadMovies(ctx context.Context) ([]recommend.Movie, error) {
	query := `SELECT TRY_CAST(movieId AS BIGINT), title, COALESCE(genres, '')
		FROM ` + csvSource(l.cfg.MoviesPath)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query movies csv: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	var (
		movies  []recommend.Movie
		skipped int
	)
	for rows.Next() {
		var (
			id     sql.NullInt64
			title  sql.NullString
			genres string
		)
		if err := rows.Scan(&id, &title, &genres); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if !id.Valid {
			skipped++
			continue
		}
		movies = append(movies, recommend.Movie{
			ID:     int(id.Int64),
			Title:  strings.TrimSpace(title.String),
			Genres: parseGenres(genres),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies csv: %w", err)
	}
	l.logSkipped("movies", skipped)
	return movies, nil
}

func (l *DuckDBLoader) loadRatings(ctx context.Context) ([]recommend.Rating, error) {
	query := `SELECT TRY_CAST(userId AS BIGINT), TRY_CAST(movieId AS BIGINT),
			TRY_CAST(rating AS DOUBLE), TRY_CAST("timestamp" AS BIGINT)
		FROM ` + csvSource(l.cfg.RatingsPath)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings csv: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	var (
		ratings []recommend.Rating
		skipped int
	)
	for rows.Next() {
		var (
			userID, movieID, ts sql.NullInt64
			value               sql.NullFloat64
		)
		if err := rows.Scan(&userID, &movieID, &value, &ts); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if !userID.Valid || !movieID.Valid || !value.Valid {
			skipped++
			continue
		}
		r := recommend.Rating{
			UserID:  int(userID.Int64),
			MovieID: int(movieID.Int64),
			Value:   value.Float64,
		}
		if ts.Valid {
			r.Timestamp = time.Unix(ts.Int64, 0).UTC()
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings csv: %w", err)
	}
	l.logSkipped("ratings", skipped)
	return ratings, nil
}

func (l *DuckDBLoader) loadSentiment(ctx context.Context) (map[int]float64, error) {
	query := `SELECT TRY_CAST(movieId AS BIGINT), TRY_CAST(sentiment_score AS DOUBLE)
		FROM ` + csvSource(l.cfg.SentimentPath)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sentiment csv: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	scores := make(map[int]float64)
	skipped := 0
	for rows.Next() {
		var (
			id    sql.NullInt64
			score sql.NullFloat64
		)
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("scan sentiment: %w", err)
		}
		if !id.Valid || !score.Valid {
			skipped++
			continue
		}
		scores[int(id.Int64)] = score.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentiment csv: %w", err)
	}
	l.logSkipped("sentiment", skipped)
	return scores, nil
}

func (l *DuckDBLoader) loadReviews(ctx context.Context) (map[int][]string, error) {
	query := `SELECT TRY_CAST(movieId AS BIGINT), review
		FROM ` + csvSource(l.cfg.ReviewsPath)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reviews csv: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only cursor

	reviews := make(map[int][]string)
	for rows.Next() {
		var (
			id   sql.NullInt64
			text sql.NullString
		)
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if id.Valid && text.Valid {
			reviews[int(id.Int64)] = append(reviews[int(id.Int64)], text.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews csv: %w", err)
	}
	return reviews, nil
}

func (l *DuckDBLoader) logSkipped(file string, n int) {
	if n > 0 {
		l.log.Warn().Str("file", file).Int("rows", n).Msg("Skipped unparseable CSV rows")
	}
}

// csvSource renders a read_csv_auto call for path.
func csvSource(path string) string {
	return fmt.Sprintf("read_csv_auto('%s', header = true, all_varchar = true)",
		strings.ReplaceAll(path, "'", "''"))
}
