// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package reranking

import (
	"reflect"
	"testing"

	"github.com/tomtom215/cinesense/internal/recommend"
)

func item(id int, score float64, genres ...string) recommend.RecommendationItem {
	return recommend.RecommendationItem{MovieID: id, BaseScore: score, Genres: genres}
}

func ids(items []recommend.RecommendationItem) []int {
	out := make([]int, len(items))
	for i := range items {
		out[i] = items[i].MovieID
	}
	return out
}

func testPool() []recommend.RecommendationItem {
	return []recommend.RecommendationItem{
		item(1, 5.0, "Action"),
		item(2, 4.9, "Action"),
		item(3, 4.8, "Comedy"),
		item(4, 4.7, "Action"),
		item(5, 4.6, "Drama"),
		item(6, 4.5, "Comedy"),
	}
}

func TestGenreCoverage_Rerank(t *testing.T) {
	tests := []struct {
		name       string
		candidates []recommend.RecommendationItem
		n          int
		want       []int
	}{
		{
			name:       "covers every genre before repeating",
			candidates: testPool(),
			n:          3,
			want:       []int{1, 3, 5},
		},
		{
			name:       "falls back to score order once covered",
			candidates: testPool(),
			n:          5,
			want:       []int{1, 3, 5, 2, 4},
		},
		{
			name:       "pool smaller than n returns everything",
			candidates: testPool()[:3],
			n:          10,
			want:       []int{1, 3, 2},
		},
		{
			name: "ties break by ascending movie id",
			candidates: []recommend.RecommendationItem{
				item(8, 4.0, "Horror"),
				item(7, 4.0, "Horror"),
				item(9, 3.0, "Western"),
			},
			n:    2,
			want: []int{7, 9},
		},
		{
			name: "movie adding a second genre counts as new coverage",
			candidates: []recommend.RecommendationItem{
				item(1, 5.0, "Action"),
				item(2, 4.5, "Action", "Sci-Fi"),
				item(3, 4.0, "Action"),
			},
			n:    2,
			want: []int{1, 2},
		},
		{
			name: "movies without genres are selected in the fallback tier",
			candidates: []recommend.RecommendationItem{
				item(1, 5.0),
				item(2, 3.0, "Drama"),
			},
			n:    2,
			want: []int{2, 1},
		},
		{
			name:       "empty pool",
			candidates: nil,
			n:          5,
			want:       []int{},
		},
		{
			name:       "zero n",
			candidates: testPool(),
			n:          0,
			want:       []int{},
		},
	}

	r := NewGenreCoverage()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rerank(tt.candidates, tt.n)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Rerank() = %v, want %v", ids(got), tt.want)
			}
			for i := range got {
				if got[i].Rank != i+1 {
					t.Errorf("got[%d].Rank = %d, want %d", i, got[i].Rank, i+1)
				}
			}
		})
	}
}

func TestGenreCoverage_UsesAdjustedScore(t *testing.T) {
	adjusted := 6.0
	pool := testPool()
	pool[5].AdjustedScore = &adjusted // movie 6 jumps to the top

	got := NewGenreCoverage().Rerank(pool, 2)
	if want := []int{6, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Rerank() = %v, want %v", ids(got), want)
	}
}

func TestGenreCoverage_DoesNotModifyInput(t *testing.T) {
	pool := testPool()
	before := ids(pool)

	_ = NewGenreCoverage().Rerank(pool, 4)

	if !reflect.DeepEqual(ids(pool), before) {
		t.Errorf("input order changed: %v, want %v", ids(pool), before)
	}
	for i := range pool {
		if pool[i].Rank != 0 {
			t.Errorf("input rank modified for movie %d", pool[i].MovieID)
		}
	}
}

func TestGenreCoverage_FullCoverage(t *testing.T) {
	genres := []string{"Action", "Comedy", "Drama", "Horror", "Romance"}
	var pool []recommend.RecommendationItem
	id := 1
	// The best-scored movies are all Action, so score order alone would
	// cover a single genre.
	for i := 0; i < 10; i++ {
		pool = append(pool, item(id, 5.0-float64(i)*0.01, "Action"))
		id++
	}
	for i, g := range genres[1:] {
		pool = append(pool, item(id, 3.0-float64(i)*0.1, g))
		id++
	}

	got := NewGenreCoverage().Rerank(pool, len(genres))

	seen := make(map[string]bool)
	for i := range got {
		for _, g := range got[i].Genres {
			seen[g] = true
		}
	}
	for _, g := range genres {
		if !seen[g] {
			t.Errorf("genre %q missing from %v", g, ids(got))
		}
	}
}

func TestGenreCoverage_Name(t *testing.T) {
	if got := NewGenreCoverage().Name(); got != "coverage" {
		t.Errorf("Name() = %q, want %q", got, "coverage")
	}
}
