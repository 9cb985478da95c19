// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinesense/internal/recommend"
	"github.com/tomtom215/cinesense/internal/recommend/algorithms"
	"github.com/tomtom215/cinesense/internal/recommend/reranking"
)

var pipelineGenres = []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi"}

// pipelineData builds 60 movies across six genres and 20 users who each
// rate a deterministic subset.
func pipelineData() ([]recommend.Movie, []recommend.Rating) {
	var movies []recommend.Movie
	for id := 1; id <= 60; id++ {
		s := float64(id%10) / 10
		movies = append(movies, recommend.Movie{
			ID:        id,
			Title:     fmt.Sprintf("Movie %d", id),
			Genres:    []string{pipelineGenres[id%len(pipelineGenres)]},
			Sentiment: &s,
		})
	}

	var ratings []recommend.Rating
	for u := 1; u <= 20; u++ {
		for id := 1; id <= 60; id++ {
			if (id*7+u*3)%4 != 0 {
				continue
			}
			v := float64((id+u)%9)/2 + 0.5
			ratings = append(ratings, recommend.Rating{UserID: u, MovieID: id, Value: v})
		}
	}
	return movies, ratings
}

func newPipelineEngine(t *testing.T, scorer string) *recommend.Engine {
	t.Helper()

	settings := algorithms.DefaultSettings()
	settings.Scorer = scorer
	factory, err := algorithms.Factory(settings, recommend.DefaultRatingScale())
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}

	cfg := recommend.DefaultConfig()
	cfg.Oversample = 5
	e, err := recommend.NewEngine(cfg, factory, reranking.NewGenreCoverage(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	movies, ratings := pipelineData()
	if _, err := e.Initialize(context.Background(), movies, ratings); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return e
}

func TestPipeline_AllScorers(t *testing.T) {
	for _, name := range algorithms.Names() {
		t.Run(name, func(t *testing.T) {
			e := newPipelineEngine(t, name)
			ctx := context.Background()

			seen := make(map[int]bool)
			_, ratings := pipelineData()
			for _, r := range ratings {
				if r.UserID == 1 {
					seen[r.MovieID] = true
				}
			}

			for _, mode := range recommend.Modes {
				items, err := e.Recommend(ctx, 1, 10, mode)
				if err != nil {
					t.Fatalf("Recommend(%v) error = %v", mode, err)
				}
				if len(items) != 10 {
					t.Errorf("Recommend(%v) returned %d items, want 10", mode, len(items))
				}
				for i, it := range items {
					if seen[it.MovieID] {
						t.Errorf("%v: rated movie %d recommended", mode, it.MovieID)
					}
					if it.Rank != i+1 {
						t.Errorf("%v: rank %d at position %d", mode, it.Rank, i)
					}
					if it.DisplayScore != it.Score() {
						t.Errorf("%v: display score %v, want %v", mode, it.DisplayScore, it.Score())
					}
					if (mode == recommend.ModeCollaborative) != (it.AdjustedScore == nil) {
						t.Errorf("%v: adjusted score presence wrong for movie %d", mode, it.MovieID)
					}
				}
			}
		})
	}
}

func TestPipeline_DiverseCoversGenres(t *testing.T) {
	e := newPipelineEngine(t, algorithms.NameItemKNN)
	ctx := context.Background()
	n := len(pipelineGenres)

	// The collaborative top n*oversample is the diverse candidate pool.
	pool, err := e.RecommendCollaborative(ctx, 3, n*5)
	if err != nil {
		t.Fatalf("RecommendCollaborative() error = %v", err)
	}
	available := make(map[string]bool)
	for _, it := range pool {
		for _, g := range it.Genres {
			available[g] = true
		}
	}

	items, err := e.RecommendDiverse(ctx, 3, n)
	if err != nil {
		t.Fatalf("RecommendDiverse() error = %v", err)
	}
	covered := make(map[string]bool)
	for _, it := range items {
		for _, g := range it.Genres {
			covered[g] = true
		}
	}

	want := len(available)
	if want > n {
		want = n
	}
	if len(covered) != want {
		t.Errorf("diverse list covers %d genres, want %d", len(covered), want)
	}
}

func TestPipeline_SentimentAwareSortedByAdjustedScore(t *testing.T) {
	e := newPipelineEngine(t, algorithms.NameSVD)

	for u := 1; u <= 20; u++ {
		items, err := e.RecommendSentimentAware(context.Background(), u, 8)
		if err != nil {
			t.Fatalf("RecommendSentimentAware(%d) error = %v", u, err)
		}
		for i := 1; i < len(items); i++ {
			prev, cur := *items[i-1].AdjustedScore, *items[i].AdjustedScore
			if cur > prev || (cur == prev && items[i].MovieID < items[i-1].MovieID) {
				t.Errorf("user %d: items out of order at %d", u, i)
			}
		}
	}
}

func TestPipeline_Reinitialize(t *testing.T) {
	e := newPipelineEngine(t, algorithms.NameItemKNN)
	ctx := context.Background()

	before, err := e.RecommendDiverse(ctx, 5, 10)
	if err != nil {
		t.Fatalf("RecommendDiverse() error = %v", err)
	}

	movies, ratings := pipelineData()
	if _, err := e.Initialize(ctx, movies, ratings); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	after, err := e.RecommendDiverse(ctx, 5, 10)
	if err != nil {
		t.Fatalf("RecommendDiverse() error = %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("recommendations changed after re-initializing with the same data")
	}
}

func TestPipeline_UnknownUser(t *testing.T) {
	e := newPipelineEngine(t, algorithms.NameBaseline)

	for _, mode := range recommend.Modes {
		if _, err := e.Recommend(context.Background(), 999999, 5, mode); !recommend.IsNotFound(err) {
			t.Errorf("Recommend(%v) error = %v, want not found", mode, err)
		}
	}
}

func TestPipeline_DiverseDisplayScoreAllRerankers(t *testing.T) {
	rerankers := []recommend.Reranker{reranking.NewGenreCoverage(), reranking.NewMMR(0.7)}

	for _, rr := range rerankers {
		t.Run(rr.Name(), func(t *testing.T) {
			factory, err := algorithms.Factory(algorithms.DefaultSettings(), recommend.DefaultRatingScale())
			if err != nil {
				t.Fatalf("Factory() error = %v", err)
			}
			e, err := recommend.NewEngine(recommend.DefaultConfig(), factory, rr, zerolog.Nop())
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			movies, ratings := pipelineData()
			if _, err := e.Initialize(context.Background(), movies, ratings); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}

			for _, n := range []int{1, 6} {
				items, err := e.RecommendDiverse(context.Background(), 2, n)
				if err != nil {
					t.Fatalf("RecommendDiverse(%d) error = %v", n, err)
				}
				for _, it := range items {
					if it.AdjustedScore == nil || it.DisplayScore != *it.AdjustedScore {
						t.Errorf("n=%d movie %d: display score %v does not match adjusted score", n, it.MovieID, it.DisplayScore)
					}
				}
			}
		})
	}
}
