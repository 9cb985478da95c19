// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

//go:build integration

package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/cinesense/internal/testinfra"
)

func TestPostgresLoader_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pc, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("NewPostgresContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, pc)

	l, err := NewPostgresLoader(ctx, pc.DSN)
	if err != nil {
		t.Fatalf("NewPostgresLoader() error = %v", err)
	}
	defer l.Close()

	if err := l.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}

	seed := []string{
		`INSERT INTO movies (id, title, genres, overview) VALUES
			(1, 'Toy Story (1995)', 'Animation|Comedy', 'Toys come alive.'),
			(2, 'Heat (1995)', 'Action|Crime', NULL),
			(3, 'Untitled', '(no genres listed)', NULL)`,
		`INSERT INTO movie_sentiment (movie_id, sentiment_score) VALUES (1, 0.8)`,
		`INSERT INTO ratings (user_id, movie_id, rating, rated_at) VALUES
			(1, 1, 4.5, '2024-01-02T03:04:05Z'),
			(1, 2, 3.0, NULL),
			(2, 1, 5.0, NULL)`,
	}
	for _, stmt := range seed {
		if _, err := l.pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ds, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Source != SourcePostgres || len(ds.Movies) != 3 || len(ds.Ratings) != 3 {
		t.Fatalf("dataset = %s, %d movies, %d ratings", ds.Source, len(ds.Movies), len(ds.Ratings))
	}

	toy := ds.Movies[0]
	if toy.ID != 1 || toy.Overview != "Toys come alive." || toy.Sentiment == nil || *toy.Sentiment != 0.8 {
		t.Errorf("movie 1 = %+v", toy)
	}
	if ds.Movies[1].Sentiment != nil {
		t.Error("movie without sentiment row has a score")
	}
	if len(ds.Movies[2].Genres) != 0 {
		t.Errorf("placeholder genres parsed as %v", ds.Movies[2].Genres)
	}

	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	found := false
	for _, r := range ds.Ratings {
		if r.UserID == 1 && r.MovieID == 1 {
			found = r.Timestamp.Equal(want) && r.Value == 4.5
		}
	}
	if !found {
		t.Error("timestamped rating not loaded correctly")
	}
}
