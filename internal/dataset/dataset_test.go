// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/cinesense/internal/recommend"
)

func TestParseGenres(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Adventure|Animation|Children", []string{"Adventure", "Animation", "Children"}},
		{"Drama", []string{"Drama"}},
		{"(no genres listed)", []string{}},
		{"", []string{}},
		{" Comedy | |Romance ", []string{"Comedy", "Romance"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseGenres(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseGenres(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeSentiment(t *testing.T) {
	preset := 0.9
	movies := []recommend.Movie{
		{ID: 1, Title: "Explicit"},
		{ID: 2, Title: "Reviewed"},
		{ID: 3, Title: "Preset", Sentiment: &preset},
		{ID: 4, Title: "Unknown"},
	}
	explicit := map[int]float64{1: 0.25}
	reviews := map[int][]string{
		1: {"terrible"},
		2: {"great", "great"},
		3: {"awful"},
	}

	scored := mergeSentiment(movies, explicit, reviews, NewSentimentScorer())
	if scored != 1 {
		t.Errorf("mergeSentiment() = %d, want 1", scored)
	}

	tests := []struct {
		idx  int
		want *float64
	}{
		{0, ptr(0.25)},
		{1, ptr(1)},
		{2, ptr(0.9)},
		{3, nil},
	}
	for _, tt := range tests {
		got := movies[tt.idx].Sentiment
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("movie %d sentiment = %v, want %v", movies[tt.idx].ID, deref(got), deref(tt.want))
		}
	}
}

func TestMergeSentiment_NoScorer(t *testing.T) {
	movies := []recommend.Movie{{ID: 1}}
	if n := mergeSentiment(movies, nil, map[int][]string{1: {"great"}}, nil); n != 0 {
		t.Errorf("mergeSentiment() = %d, want 0", n)
	}
	if movies[0].Sentiment != nil {
		t.Error("sentiment set without a scorer")
	}
}

func TestNew_UnknownSource(t *testing.T) {
	if _, err := New(context.Background(), Config{Source: "mongo"}); err == nil {
		t.Error("New() error = nil, want error")
	}
}

func ptr(v float64) *float64 { return &v }

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
