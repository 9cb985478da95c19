// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"math"
	"strings"
	"unicode"
)

// defaultNegationWindow is how many preceding words a negation reaches.
const defaultNegationWindow = 3

// SentimentScorer assigns review polarity from a word lexicon.
//
// A negation within the window before a lexicon word reverses and halves
// its weight; an intensifier directly before it scales the weight. Clause
// punctuation ends a negation's reach.
type SentimentScorer struct {
	lexicon        map[string]float64
	intensifiers   map[string]float64
	negations      map[string]bool
	negationWindow int
}

// NewSentimentScorer returns a scorer with the built-in movie review lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{
		lexicon:        reviewLexicon,
		intensifiers:   intensifiers,
		negations:      negations,
		negationWindow: defaultNegationWindow,
	}
}

// Polarity returns the tone of one review in [-1, 1]; 0 when no lexicon
// word occurs.
func (s *SentimentScorer) Polarity(text string) float64 {
	var posScore, negScore float64
	wordCount := 0

	for _, clause := range splitClauses(text) {
		tokens := tokenize(clause)
		for i, tok := range tokens {
			weight, ok := s.lexicon[tok]
			if !ok {
				continue
			}
			if i > 0 {
				if mult, ok := s.intensifiers[tokens[i-1]]; ok {
					weight *= mult
				}
			}
			if s.negated(tokens, i) {
				weight = -weight * 0.5
			}

			if weight > 0 {
				posScore += weight
			} else {
				negScore += -weight
			}
			wordCount++
		}
	}

	if wordCount == 0 {
		return 0
	}
	posScore /= float64(wordCount)
	negScore /= float64(wordCount)

	switch {
	case negScore == 0:
		return math.Min(1, posScore*1.5)
	case posScore == 0:
		return math.Max(-1, -negScore*1.5)
	default:
		return (posScore - negScore) / (posScore + negScore)
	}
}

// Score maps the mean polarity of reviews into [0, 1]. It reports false
// when there are no non-empty reviews.
func (s *SentimentScorer) Score(reviews []string) (float64, bool) {
	var sum float64
	n := 0
	for _, r := range reviews {
		if strings.TrimSpace(r) == "" {
			continue
		}
		sum += (s.Polarity(r) + 1) / 2
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (s *SentimentScorer) negated(tokens []string, pos int) bool {
	start := pos - s.negationWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < pos; i++ {
		t := tokens[i]
		if s.negations[t] || strings.HasSuffix(t, "n't") {
			return true
		}
	}
	return false
}

func splitClauses(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', ',', ';', ':', '!', '?', '\n':
			return true
		}
		return false
	})
}

func tokenize(clause string) []string {
	fields := strings.FieldsFunc(strings.ToLower(clause), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '’'
	})
	for i, f := range fields {
		fields[i] = strings.Trim(strings.ReplaceAll(f, "’", "'"), "'")
	}
	return fields
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "nothing": true, "neither": true,
	"nor": true, "hardly": true, "barely": true, "without": true,
}

var intensifiers = map[string]float64{
	"very": 1.5, "really": 1.4, "extremely": 1.8, "incredibly": 1.7,
	"truly": 1.4, "so": 1.3, "utterly": 1.6, "somewhat": 0.6, "slightly": 0.5,
}

var reviewLexicon = map[string]float64{
	// positive
	"amazing": 1, "beautiful": 0.8, "best": 1, "brilliant": 1, "captivating": 0.8,
	"charming": 0.7, "compelling": 0.7, "delightful": 0.8, "enjoy": 0.6,
	"enjoyable": 0.7, "enjoyed": 0.6, "excellent": 1, "fantastic": 1, "fun": 0.6,
	"funny": 0.6, "good": 0.6, "gorgeous": 0.8, "great": 1, "heartwarming": 0.8,
	"hilarious": 0.8, "like": 0.3, "liked": 0.5, "love": 0.8, "loved": 0.8,
	"masterpiece": 1, "memorable": 0.7, "moving": 0.6, "perfect": 1,
	"powerful": 0.7, "recommend": 0.6, "remarkable": 0.8, "stunning": 0.9,
	"superb": 1, "terrific": 0.9, "thrilling": 0.7, "touching": 0.6,
	"wonderful": 1, "worth": 0.5,
	// negative
	"annoying": -0.6, "awful": -1, "bad": -0.7, "bland": -0.5, "boring": -0.7,
	"clumsy": -0.5, "confusing": -0.5, "disappointing": -0.8, "dull": -0.6,
	"forgettable": -0.6, "hate": -0.8, "hated": -0.8, "horrible": -1,
	"mediocre": -0.5, "mess": -0.6, "pointless": -0.7, "poor": -0.7,
	"predictable": -0.4, "ridiculous": -0.6, "slow": -0.3, "stupid": -0.7,
	"terrible": -1, "tedious": -0.6, "waste": -0.8, "weak": -0.5, "worst": -1,
}
