// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeSentimentAware, false},
		{"sentiment", ModeSentimentAware, false},
		{"Sentiment-Aware", ModeSentimentAware, false},
		{"collaborative", ModeCollaborative, false},
		{" CF ", ModeCollaborative, false},
		{"diverse", ModeDiverse, false},
		{"diversity", ModeDiverse, false},
		{"popular", ModeSentimentAware, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !IsInvalidInput(err) {
					t.Errorf("ParseMode(%q) error = %v, want invalid input", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMode_Names(t *testing.T) {
	tests := []struct {
		mode    Mode
		wire    string
		display string
	}{
		{ModeSentimentAware, "sentiment", "Sentiment-Aware"},
		{ModeCollaborative, "collaborative", "Collaborative Filtering"},
		{ModeDiverse, "diverse", "Diverse"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.wire {
			t.Errorf("String() = %q, want %q", got, tt.wire)
		}
		if got := tt.mode.DisplayName(); got != tt.display {
			t.Errorf("DisplayName() = %q, want %q", got, tt.display)
		}
		back, err := ParseMode(tt.wire)
		if err != nil || back != tt.mode {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.wire, back, err, tt.mode)
		}
	}

	if len(Modes) != 3 {
		t.Errorf("len(Modes) = %d, want 3", len(Modes))
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		oversample  int
		catalogSize int
		want        int
	}{
		{"oversampled", 10, 4, 1000, 40},
		{"capped by catalog", 30, 4, 100, 100},
		{"n larger than catalog", 200, 4, 100, 200},
		{"no oversampling", 10, 1, 1000, 10},
		{"invalid oversample treated as one", 10, 0, 1000, 10},
		{"exactly fits", 25, 4, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := poolSize(tt.n, tt.oversample, tt.catalogSize); got != tt.want {
				t.Errorf("poolSize(%d, %d, %d) = %d, want %d", tt.n, tt.oversample, tt.catalogSize, got, tt.want)
			}
			if got := poolSize(tt.n, tt.oversample, tt.catalogSize); got < tt.n {
				t.Errorf("poolSize() = %d smaller than n = %d", got, tt.n)
			}
		})
	}
}

func TestSortByScore(t *testing.T) {
	items := []RecommendationItem{
		{MovieID: 4, BaseScore: 3.0},
		{MovieID: 2, BaseScore: 4.0},
		{MovieID: 1, BaseScore: 3.0},
		{MovieID: 3, BaseScore: 1.0, AdjustedScore: ptr(4.5)},
	}
	sortByScore(items)

	want := []int{3, 2, 1, 4}
	for i, id := range want {
		if items[i].MovieID != id {
			t.Errorf("items[%d].MovieID = %d, want %d", i, items[i].MovieID, id)
		}
	}
}
