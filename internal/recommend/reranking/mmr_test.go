// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package reranking

import (
	"math"
	"reflect"
	"testing"
)

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmr := NewMMR(tt.lambda)
			if mmr.Lambda() != tt.wantLambda {
				t.Errorf("Lambda() = %f, want %f", mmr.Lambda(), tt.wantLambda)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	if got := NewMMR(0.7).Name(); got != "mmr" {
		t.Errorf("Name() = %q, want %q", got, "mmr")
	}
}

func TestMMR_Rerank(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
		n      int
		want   []int
	}{
		{
			name:   "pure relevance keeps score order",
			lambda: 1.0,
			n:      3,
			want:   []int{1, 2, 3},
		},
		{
			name:   "balanced lambda spreads genres",
			lambda: 0.5,
			n:      3,
			want:   []int{1, 3, 5},
		},
		{
			name:   "n larger than pool",
			lambda: 0.5,
			n:      100,
			want:   []int{1, 3, 5, 2, 4, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMMR(tt.lambda).Rerank(testPool(), tt.n)
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

func TestMMR_EmptyInput(t *testing.T) {
	if got := NewMMR(0.5).Rerank(nil, 5); len(got) != 0 {
		t.Errorf("Rerank(nil) = %v, want empty", ids(got))
	}
	if got := NewMMR(0.5).Rerank(testPool(), 0); len(got) != 0 {
		t.Errorf("Rerank(n=0) = %v, want empty", ids(got))
	}
}

func TestGenreSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"Action", "Drama"}, []string{"Drama", "Action"}, 1.0},
		{"disjoint", []string{"Action"}, []string{"Comedy"}, 0.0},
		{"half overlap", []string{"Action", "Drama"}, []string{"Action", "Comedy", "Drama", "War"}, 0.5},
		{"case insensitive", []string{"action"}, []string{"Action"}, 1.0},
		{"both empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := genreSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("genreSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
