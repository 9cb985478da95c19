// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"reflect"
	"testing"
)

// profileMovies has two high-sentiment, two low-sentiment and one neutral movie.
func profileMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "Bright", Genres: []string{"Drama"}, Sentiment: ptr(0.9)},
		{ID: 2, Title: "Glow", Genres: []string{"Drama", "Romance"}, Sentiment: ptr(0.7)},
		{ID: 3, Title: "Gloom", Genres: []string{"Comedy"}, Sentiment: ptr(0.2)},
		{ID: 4, Title: "Grim", Genres: []string{"Horror", "Comedy"}, Sentiment: ptr(0.1)},
		{ID: 5, Title: "Plain", Genres: []string{"Action"}},
	}
}

func TestBuildProfiles_Disposition(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		cfg     ProfileConfig
		want    Disposition
	}{
		{
			name: "positive seeker",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 5},
				{UserID: 1, MovieID: 3, Value: 2},
			},
			want: DispositionPositiveSeeker,
		},
		{
			name: "critical",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 1.5},
				{UserID: 1, MovieID: 2, Value: 2},
				{UserID: 1, MovieID: 3, Value: 4.5},
			},
			want: DispositionCritical,
		},
		{
			name: "gap exactly one point classifies",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 4},
				{UserID: 1, MovieID: 3, Value: 3},
			},
			want: DispositionPositiveSeeker,
		},
		{
			name: "gap below one point is balanced",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 4},
				{UserID: 1, MovieID: 3, Value: 3.5},
			},
			want: DispositionBalanced,
		},
		{
			name: "no low-sentiment ratings is balanced",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 5},
				{UserID: 1, MovieID: 2, Value: 5},
				{UserID: 1, MovieID: 5, Value: 1},
			},
			want: DispositionBalanced,
		},
		{
			name: "fewer than min ratings is balanced",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 5},
				{UserID: 1, MovieID: 3, Value: 1},
			},
			cfg:  ProfileConfig{HighSentiment: 0.6, LowSentiment: 0.4, RatingGap: 1, MinRatings: 5},
			want: DispositionBalanced,
		},
		{
			name: "band averages use every rating in the band",
			ratings: []Rating{
				{UserID: 1, MovieID: 1, Value: 5},
				{UserID: 1, MovieID: 2, Value: 1.5},
				{UserID: 1, MovieID: 3, Value: 2.5},
				{UserID: 1, MovieID: 4, Value: 2.5},
			},
			want: DispositionBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if cfg == (ProfileConfig{}) {
				cfg = DefaultProfileConfig()
			}
			c, _ := NewCatalog(profileMovies(), tt.ratings, DefaultRatingScale())
			profiles := BuildProfiles(c, cfg)

			p, ok := profiles[1]
			if !ok {
				t.Fatal("profile for user 1 missing")
			}
			if p.Disposition != tt.want {
				t.Errorf("Disposition = %v, want %v", p.Disposition, tt.want)
			}
		})
	}
}

func TestBuildProfiles_Aggregates(t *testing.T) {
	ratings := []Rating{
		{UserID: 7, MovieID: 1, Value: 4},
		{UserID: 7, MovieID: 2, Value: 3},
		{UserID: 7, MovieID: 3, Value: 2},
		{UserID: 7, MovieID: 4, Value: 5},
		{UserID: 8, MovieID: 5, Value: 3.5},
	}
	c, _ := NewCatalog(profileMovies(), ratings, DefaultRatingScale())
	profiles := BuildProfiles(c, DefaultProfileConfig())

	if len(profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2", len(profiles))
	}

	p := profiles[7]
	if p.UserID != 7 || p.TotalRatings != 4 {
		t.Errorf("profile = %+v, want user 7 with 4 ratings", p)
	}
	if p.AverageRating != 3.5 {
		t.Errorf("AverageRating = %v, want 3.5", p.AverageRating)
	}

	want := []GenreCount{
		{Genre: "Comedy", Count: 2},
		{Genre: "Drama", Count: 2},
		{Genre: "Horror", Count: 1},
		{Genre: "Romance", Count: 1},
	}
	if !reflect.DeepEqual(p.GenreCounts, want) {
		t.Errorf("GenreCounts = %+v, want %+v", p.GenreCounts, want)
	}

	if _, ok := profiles[999999]; ok {
		t.Error("profile fabricated for a user without ratings")
	}
}

func TestBuildProfiles_Deterministic(t *testing.T) {
	ratings := []Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 4},
		{UserID: 1, MovieID: 3, Value: 1},
		{UserID: 2, MovieID: 4, Value: 3},
		{UserID: 2, MovieID: 5, Value: 3},
	}

	c1, _ := NewCatalog(profileMovies(), ratings, DefaultRatingScale())
	c2, _ := NewCatalog(profileMovies(), ratings, DefaultRatingScale())

	a := BuildProfiles(c1, DefaultProfileConfig())
	b := BuildProfiles(c2, DefaultProfileConfig())
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildProfiles() differs between identical inputs")
	}
}

func TestSortGenreCounts_TieBreak(t *testing.T) {
	got := sortGenreCounts(map[string]int{"Western": 3, "Action": 3, "Drama": 7})
	want := []GenreCount{
		{Genre: "Drama", Count: 7},
		{Genre: "Action", Count: 3},
		{Genre: "Western", Count: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortGenreCounts() = %+v, want %+v", got, want)
	}
}
