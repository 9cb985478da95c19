// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"math"
	"testing"
)

func TestSentimentScorer_Polarity(t *testing.T) {
	s := NewSentimentScorer()

	tests := []struct {
		name string
		text string
		sign int
	}{
		{"strong positive", "A great film.", 1},
		{"strong negative", "Terrible acting and a boring plot.", -1},
		{"no lexicon words", "The film runs two hours.", 0},
		{"empty", "", 0},
		{"negated positive", "It was not good at all", -1},
		{"negated contraction", "I didn't enjoy it", -1},
		{"negation stops at clause boundary", "Not what I expected, but wonderful", 1},
		{"mixed leaning positive", "Brilliant cast, slightly slow middle", 1},
		{"mixed leaning negative", "Good score, but an awful, pointless mess", -1},
		{"case insensitive", "AMAZING", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.Polarity(tt.text)
			if p < -1 || p > 1 {
				t.Fatalf("Polarity(%q) = %v outside [-1, 1]", tt.text, p)
			}
			var got int
			switch {
			case p > 0:
				got = 1
			case p < 0:
				got = -1
			}
			if got != tt.sign {
				t.Errorf("Polarity(%q) = %v, want sign %d", tt.text, p, tt.sign)
			}
		})
	}
}

func TestSentimentScorer_Intensifier(t *testing.T) {
	s := NewSentimentScorer()
	plain := s.Polarity("good")
	strong := s.Polarity("very good")
	weak := s.Polarity("slightly good")

	if !(weak < plain && plain < strong) {
		t.Errorf("polarity order slightly=%v plain=%v very=%v, want increasing", weak, plain, strong)
	}
}

func TestSentimentScorer_Score(t *testing.T) {
	s := NewSentimentScorer()

	tests := []struct {
		name    string
		reviews []string
		want    float64
		wantOK  bool
	}{
		{"no reviews", nil, 0, false},
		{"only blank reviews", []string{"", "   "}, 0, false},
		{"single positive", []string{"great"}, 1, true},
		{"single negative", []string{"terrible"}, 0, true},
		{"opposites average to neutral", []string{"great", "terrible"}, 0.5, true},
		{"neutral text", []string{"it exists"}, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Score(tt.reviews)
			if ok != tt.wantOK {
				t.Fatalf("Score() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
