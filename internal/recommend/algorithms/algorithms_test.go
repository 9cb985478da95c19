// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// testRatings: movies 1 and 2 move together, movie 3 is rated 3.0 by
// everyone, movies 4 and 5 have a single rater each.
func testRatings() ([]int, []recommend.Rating) {
	movies := []int{1, 2, 3, 4, 5}
	ratings := []recommend.Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 5},
		{UserID: 1, MovieID: 3, Value: 3},
		{UserID: 2, MovieID: 1, Value: 1},
		{UserID: 2, MovieID: 2, Value: 1},
		{UserID: 2, MovieID: 3, Value: 3},
		{UserID: 3, MovieID: 1, Value: 4},
		{UserID: 3, MovieID: 2, Value: 4.5},
		{UserID: 3, MovieID: 3, Value: 3},
		{UserID: 4, MovieID: 1, Value: 2},
		{UserID: 4, MovieID: 2, Value: 1.5},
		{UserID: 4, MovieID: 3, Value: 3},
		{UserID: 4, MovieID: 4, Value: 4.5},
		{UserID: 3, MovieID: 5, Value: 1},
	}
	return movies, ratings
}

func allScorers() map[string]func() recommend.Scorer {
	return map[string]func() recommend.Scorer{
		NameBaseline: func() recommend.Scorer { return NewBaseline(DefaultBaselineConfig()) },
		NameItemKNN:  func() recommend.Scorer { return NewItemKNN(DefaultKNNConfig()) },
		NameSVD:      func() recommend.Scorer { return NewSVD(DefaultSVDConfig()) },
	}
}

func TestScorers_NotFitted(t *testing.T) {
	for name, ctor := range allScorers() {
		t.Run(name, func(t *testing.T) {
			s := ctor()
			if s.Name() != name {
				t.Errorf("Name() = %q, want %q", s.Name(), name)
			}
			if s.IsFitted() {
				t.Error("IsFitted() = true before Fit")
			}
			if _, err := s.Predict(1, 1); !recommend.IsUnavailable(err) {
				t.Errorf("Predict() error = %v, want unavailable", err)
			}
			if _, err := s.Recommend(1, 5); !recommend.IsUnavailable(err) {
				t.Errorf("Recommend() error = %v, want unavailable", err)
			}
		})
	}
}

func TestScorers_Recommend(t *testing.T) {
	movies, ratings := testRatings()
	scale := recommend.DefaultRatingScale()

	for name, ctor := range allScorers() {
		t.Run(name, func(t *testing.T) {
			s := ctor()
			if err := s.Fit(context.Background(), movies, ratings); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if !s.IsFitted() {
				t.Fatal("IsFitted() = false after Fit")
			}

			got, err := s.Recommend(4, 10)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			// User 4 rated 1-4, leaving only movie 5.
			if len(got) != 1 || got[0].MovieID != 5 {
				t.Errorf("Recommend(4) = %+v, want only movie 5", got)
			}

			got, err = s.Recommend(2, 1)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("len(Recommend(2, 1)) = %d, want 1", len(got))
			}

			for _, r := range ratings {
				p, err := s.Predict(r.UserID, r.MovieID)
				if err != nil {
					t.Fatalf("Predict(%d, %d) error = %v", r.UserID, r.MovieID, err)
				}
				if !scale.Contains(p) {
					t.Errorf("Predict(%d, %d) = %v outside scale", r.UserID, r.MovieID, p)
				}
			}
		})
	}
}

func TestScorers_Errors(t *testing.T) {
	movies, ratings := testRatings()

	for name, ctor := range allScorers() {
		t.Run(name, func(t *testing.T) {
			s := ctor()
			if err := s.Fit(context.Background(), movies, ratings); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}

			if _, err := s.Recommend(999999, 5); !recommend.IsNotFound(err) {
				t.Errorf("Recommend(unknown user) error = %v, want not found", err)
			}
			if _, err := s.Recommend(1, 0); !recommend.IsInvalidInput(err) {
				t.Errorf("Recommend(n=0) error = %v, want invalid input", err)
			}
			if _, err := s.Predict(1, 42); !recommend.IsNotFound(err) {
				t.Errorf("Predict(unknown movie) error = %v, want not found", err)
			}
			if err := s.Fit(context.Background(), movies, ratings); err == nil {
				t.Error("second Fit() error = nil, want error")
			}
		})
	}
}

func TestScorers_Deterministic(t *testing.T) {
	movies, ratings := testRatings()

	for name, ctor := range allScorers() {
		t.Run(name, func(t *testing.T) {
			a, b := ctor(), ctor()
			if err := a.Fit(context.Background(), movies, ratings); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if err := b.Fit(context.Background(), movies, ratings); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}

			for _, user := range []int{1, 2, 3, 4} {
				ra, err := a.Recommend(user, 5)
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				rb, err := b.Recommend(user, 5)
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				if !reflect.DeepEqual(ra, rb) {
					t.Errorf("user %d: %+v != %+v", user, ra, rb)
				}
			}
		})
	}
}

func TestScorers_CancelledContext(t *testing.T) {
	movies, ratings := testRatings()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, ctor := range allScorers() {
		t.Run(name, func(t *testing.T) {
			s := ctor()
			if err := s.Fit(ctx, movies, ratings); err == nil {
				t.Error("Fit() error = nil, want context error")
			}
			if s.IsFitted() {
				t.Error("IsFitted() = true after cancelled Fit")
			}
		})
	}
}

func TestBaseline_Biases(t *testing.T) {
	movies := []int{1, 2}
	ratings := []recommend.Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 1},
		{UserID: 2, MovieID: 1, Value: 4.5},
		{UserID: 2, MovieID: 2, Value: 1.5},
		{UserID: 3, MovieID: 1, Value: 5},
	}

	b := NewBaseline(BaselineConfig{UserReg: 1, ItemReg: 1, Iterations: 5, Scale: recommend.DefaultRatingScale()})
	if err := b.Fit(context.Background(), movies, ratings); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	high, err := b.Predict(1, 1)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	low, err := b.Predict(1, 2)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if high <= low {
		t.Errorf("Predict(1,1) = %v, Predict(1,2) = %v; want well-liked movie higher", high, low)
	}

	got, err := b.Recommend(3, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 || got[0].MovieID != 2 {
		t.Errorf("Recommend(3, 1) = %+v, want movie 2", got)
	}
}

func TestItemKNN_NeighborsOf(t *testing.T) {
	movies, ratings := testRatings()

	cfg := DefaultKNNConfig()
	cfg.SimilarityMetric = MetricCosine
	cfg.Shrinkage = 0
	cfg.MinCommonUsers = 2
	cfg.Baseline.UserReg = 1e9
	cfg.Baseline.ItemReg = 1e9

	k := NewItemKNN(cfg)
	if err := k.Fit(context.Background(), movies, ratings); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got := k.neighborsOf(1, 5)
	if len(got) == 0 {
		t.Fatal("Neighbors(1) is empty")
	}
	if got[0].MovieID != 2 {
		t.Errorf("Neighbors(1)[0].MovieID = %d, want 2", got[0].MovieID)
	}
	if got[0].Score < 0.9 {
		t.Errorf("Neighbors(1)[0].Score = %v, want > 0.9", got[0].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("Neighbors(1) not sorted: %+v", got)
		}
	}

	// Movie 4 shares a single rater with every other movie.
	if nbrs := k.neighborsOf(4, 5); len(nbrs) != 0 {
		t.Errorf("Neighbors(4) = %+v, want none", nbrs)
	}
}

func TestNewItemKNN_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		cfg    KNNConfig
		verify func(t *testing.T, k *ItemKNN)
	}{
		{
			name: "applies defaults for zero config",
			cfg:  KNNConfig{},
			verify: func(t *testing.T, k *ItemKNN) {
				if k.config.K <= 0 {
					t.Errorf("K = %d, want > 0", k.config.K)
				}
				if k.config.SimilarityMetric != MetricPearson {
					t.Errorf("SimilarityMetric = %q, want %q", k.config.SimilarityMetric, MetricPearson)
				}
				if k.config.Baseline.Scale != recommend.DefaultRatingScale() {
					t.Errorf("Baseline.Scale = %+v, want default", k.config.Baseline.Scale)
				}
			},
		},
		{
			name: "uses provided config values",
			cfg:  KNNConfig{K: 10, SimilarityMetric: MetricCosine},
			verify: func(t *testing.T, k *ItemKNN) {
				if k.config.K != 10 {
					t.Errorf("K = %d, want 10", k.config.K)
				}
				if k.config.SimilarityMetric != MetricCosine {
					t.Errorf("SimilarityMetric = %q, want %q", k.config.SimilarityMetric, MetricCosine)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewItemKNN(tt.cfg)
			if k.Name() != NameItemKNN {
				t.Errorf("Name() = %q, want %q", k.Name(), NameItemKNN)
			}
			tt.verify(t, k)
		})
	}
}

func TestSelectTop(t *testing.T) {
	items := []recommend.ScoredMovie{
		{MovieID: 3, Score: 4},
		{MovieID: 1, Score: 4},
		{MovieID: 2, Score: 5},
		{MovieID: 4, Score: 1},
	}
	got := selectTop(items, 3)
	want := []recommend.ScoredMovie{
		{MovieID: 2, Score: 5},
		{MovieID: 1, Score: 4},
		{MovieID: 3, Score: 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectTop() = %+v, want %+v", got, want)
	}
}

func TestChunkInts(t *testing.T) {
	tests := []struct {
		name  string
		ids   []int
		parts int
		want  int
	}{
		{name: "empty", ids: nil, parts: 4, want: 0},
		{name: "fewer ids than parts", ids: []int{1, 2}, parts: 4, want: 2},
		{name: "even split", ids: []int{1, 2, 3, 4}, parts: 2, want: 2},
		{name: "uneven split", ids: []int{1, 2, 3, 4, 5}, parts: 2, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkInts(tt.ids, tt.parts)
			if len(chunks) != tt.want {
				t.Errorf("len(chunks) = %d, want %d", len(chunks), tt.want)
			}
			var total int
			for _, c := range chunks {
				total += len(c)
			}
			if total != len(tt.ids) {
				t.Errorf("chunks hold %d ids, want %d", total, len(tt.ids))
			}
		})
	}
}

func TestFactory(t *testing.T) {
	scale := recommend.RatingScale{Min: 1, Max: 10}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s := DefaultSettings()
			s.Scorer = name
			factory, err := Factory(s, scale)
			if err != nil {
				t.Fatalf("Factory() error = %v", err)
			}
			a, b := factory(), factory()
			if a == b {
				t.Error("factory returned the same scorer twice")
			}
			if a.Name() != name {
				t.Errorf("Name() = %q, want %q", a.Name(), name)
			}
		})
	}

	s := DefaultSettings()
	s.Scorer = "nope"
	if _, err := Factory(s, scale); err == nil {
		t.Error("Factory(unknown) error = nil, want error")
	}
}
