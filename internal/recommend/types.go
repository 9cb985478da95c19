// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"context"
	"fmt"
	"time"
)

// NeutralSentiment is the sentiment assumed for movies without a score.
const NeutralSentiment = 0.5

// Movie is a catalog entry. Movies are immutable once the catalog is built.
type Movie struct {
	// ID is the unique movie identifier.
	ID int `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Genres is the set of genre labels.
	Genres []string `json:"genres"`

	// Overview is an optional plot summary.
	Overview string `json:"overview,omitempty"`

	// Sentiment is the aggregate review tone in [0, 1].
	// Nil when no reviews matched the movie.
	Sentiment *float64 `json:"sentiment_score,omitempty"`
}

// SentimentOrNeutral returns the movie sentiment, or NeutralSentiment when absent.
func (m *Movie) SentimentOrNeutral() float64 {
	if m.Sentiment == nil {
		return NeutralSentiment
	}
	return *m.Sentiment
}

// Rating is a single user rating. Ratings are append-only facts.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Value   float64 `json:"rating"`

	// Timestamp is optional and only used to resolve duplicate ratings.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// RatingScale bounds accepted rating values.
type RatingScale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultRatingScale is the MovieLens half-star scale.
func DefaultRatingScale() RatingScale {
	return RatingScale{Min: 0.5, Max: 5.0}
}

// Contains reports whether v lies within the scale.
func (s RatingScale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp limits v to the scale.
func (s RatingScale) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Disposition classifies how a user's enjoyment tracks movie sentiment.
type Disposition int

const (
	// DispositionBalanced means sentiment has no clear effect on the user's ratings.
	DispositionBalanced Disposition = iota

	// DispositionPositiveSeeker rates well-reviewed movies higher.
	DispositionPositiveSeeker

	// DispositionCritical rates poorly-reviewed movies higher.
	DispositionCritical
)

// String returns the wire name of the disposition.
func (d Disposition) String() string {
	switch d {
	case DispositionPositiveSeeker:
		return "positive_seeker"
	case DispositionCritical:
		return "critical"
	default:
		return "balanced"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Disposition) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Disposition) UnmarshalText(text []byte) error {
	switch string(text) {
	case "positive_seeker":
		*d = DispositionPositiveSeeker
	case "critical":
		*d = DispositionCritical
	case "balanced":
		*d = DispositionBalanced
	default:
		return fmt.Errorf("unknown disposition %q", text)
	}
	return nil
}

// GenreCount is the number of rated movies a user has in one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// UserProfile holds per-user aggregates derived from the ratings table.
type UserProfile struct {
	UserID        int     `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`

	// GenreCounts is ordered by descending count, ties by genre label.
	GenreCounts []GenreCount `json:"genre_counts"`

	Disposition Disposition `json:"sentiment_profile"`
}

// TopGenres returns a copy of up to n leading GenreCounts entries.
func (p *UserProfile) TopGenres(n int) []GenreCount {
	if n > len(p.GenreCounts) {
		n = len(p.GenreCounts)
	}
	if n < 0 {
		n = 0
	}
	return append(make([]GenreCount, 0, n), p.GenreCounts[:n]...)
}

// Clone returns a deep copy so callers cannot alias engine state.
func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.GenreCounts = append([]GenreCount(nil), p.GenreCounts...)
	return &c
}

// ScoredMovie is a collaborative prediction for one movie.
type ScoredMovie struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// RecommendationItem is a single entry in a returned recommendation list.
type RecommendationItem struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`

	// BaseScore is the collaborative prediction.
	BaseScore float64 `json:"base_score"`

	// AdjustedScore is the sentiment-blended score.
	// Present only for sentiment-aware and diverse recommendations.
	AdjustedScore *float64 `json:"adjusted_score,omitempty"`

	// Sentiment is the movie's sentiment score, if known.
	Sentiment *float64 `json:"sentiment_score,omitempty"`

	// SentimentLabel is Positive, Neutral, Negative or Unknown.
	SentimentLabel SentimentLabel `json:"sentiment_label"`

	// DisplayScore is AdjustedScore when present, otherwise BaseScore.
	DisplayScore float64 `json:"display_score"`

	// Rank is the 1-based position in the returned list.
	Rank int `json:"rank"`
}

// Score returns AdjustedScore when present, otherwise BaseScore.
func (it *RecommendationItem) Score() float64 {
	if it.AdjustedScore != nil {
		return *it.AdjustedScore
	}
	return it.BaseScore
}

// SentimentLabel is a coarse human-readable sentiment bucket.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
	SentimentUnknown  SentimentLabel = "Unknown"
)

// LabelSentiment buckets a sentiment score: above 0.6 is Positive,
// above 0.4 is Neutral, anything else Negative.
func LabelSentiment(s *float64) SentimentLabel {
	switch {
	case s == nil:
		return SentimentUnknown
	case *s > 0.6:
		return SentimentPositive
	case *s > 0.4:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// Scorer predicts base affinity scores from rating history.
//
// Implementations must be safe for concurrent Predict and Recommend calls
// once Fit has returned.
type Scorer interface {
	// Name returns the scorer identifier (e.g., "itemknn").
	Name() string

	// Fit trains the model over the full movie universe and ratings table.
	Fit(ctx context.Context, movieIDs []int, ratings []Rating) error

	// Predict estimates the rating userID would give movieID.
	Predict(userID, movieID int) (float64, error)

	// Recommend returns the top n movies the user has not rated,
	// ordered by score descending and movie id ascending.
	Recommend(userID, n int) ([]ScoredMovie, error)

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// ScorerFactory creates an untrained scorer. The engine calls it once per
// initialization so every snapshot owns an independent model.
type ScorerFactory func() Scorer

// Reranker selects and orders a final list from a scored candidate pool.
type Reranker interface {
	// Name returns the reranker identifier.
	Name() string

	// Rerank returns at most n items chosen from candidates with ranks
	// rewritten from 1. The input slice is not modified.
	Rerank(candidates []RecommendationItem, n int) []RecommendationItem
}
