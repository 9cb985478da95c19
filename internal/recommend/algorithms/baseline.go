// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"context"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// BaselineConfig contains configuration for the bias model.
type BaselineConfig struct {
	// UserReg shrinks user biases toward zero.
	// Typical range: 5-25
	UserReg float64

	// ItemReg shrinks item biases toward zero.
	// Typical range: 5-25
	ItemReg float64

	// Iterations is the number of alternating least squares passes.
	Iterations int

	// Scale bounds predictions.
	Scale recommend.RatingScale

	// NumWorkers is the number of goroutines used to score candidates.
	// Zero means runtime.NumCPU.
	NumWorkers int
}

// DefaultBaselineConfig returns sensible defaults.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		UserReg:    15,
		ItemReg:    10,
		Iterations: 10,
		Scale:      recommend.DefaultRatingScale(),
	}
}

// biases is the fitted baseline estimate b_ui = mu + b_u + b_i.
type biases struct {
	mu   float64
	user map[int]float64
	item map[int]float64
}

func (b *biases) estimate(userID, movieID int) float64 {
	return b.mu + b.user[userID] + b.item[movieID]
}

// fitBiases estimates regularized biases by alternating item and user
// updates. Sums follow rating order so the result is deterministic.
func fitBiases(ctx context.Context, ratings []recommend.Rating, cfg BaselineConfig) (biases, error) {
	b := biases{
		user: make(map[int]float64),
		item: make(map[int]float64),
	}
	if len(ratings) == 0 {
		return b, nil
	}

	var total float64
	for _, r := range ratings {
		total += r.Value
	}
	b.mu = total / float64(len(ratings))

	iterations := cfg.Iterations
	if iterations < 1 {
		iterations = 1
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for iter := 0; iter < iterations; iter++ {
		if ContextCancelled(ctx) {
			return b, ctx.Err()
		}

		clear(sums)
		clear(counts)
		for _, r := range ratings {
			sums[r.MovieID] += r.Value - b.mu - b.user[r.UserID]
			counts[r.MovieID]++
		}
		for id, s := range sums {
			b.item[id] = s / (cfg.ItemReg + float64(counts[id]))
		}

		clear(sums)
		clear(counts)
		for _, r := range ratings {
			sums[r.UserID] += r.Value - b.mu - b.item[r.MovieID]
			counts[r.UserID]++
		}
		for id, s := range sums {
			b.user[id] = s / (cfg.UserReg + float64(counts[id]))
		}
	}
	return b, nil
}

// Baseline predicts ratings from the global mean and per-user and per-item
// biases. It ignores interactions and serves as a fallback scorer.
type Baseline struct {
	BaseScorer
	config BaselineConfig

	index  ratingIndex
	biases biases
}

// NewBaseline creates a new baseline scorer.
func NewBaseline(cfg BaselineConfig) *Baseline {
	return &Baseline{
		BaseScorer: NewBaseScorer("baseline"),
		config:     cfg,
	}
}

// Fit estimates biases from the rating table.
func (b *Baseline) Fit(ctx context.Context, movieIDs []int, ratings []recommend.Rating) error {
	b.fitMu.Lock()
	defer b.fitMu.Unlock()

	if b.IsFitted() {
		return recommend.NewError("fit", recommend.ErrInvalidInput, "%s scorer is already fitted", b.name)
	}

	fitted, err := fitBiases(ctx, ratings, b.config)
	if err != nil {
		return err
	}
	b.index = newRatingIndex(movieIDs, ratings)
	b.biases = fitted
	b.markFitted()
	return nil
}

// Predict returns the clamped bias estimate.
func (b *Baseline) Predict(userID, movieID int) (float64, error) {
	if err := checkPredict(&b.BaseScorer, &b.index, userID, movieID); err != nil {
		return 0, err
	}
	return b.predict(userID, movieID), nil
}

func (b *Baseline) predict(userID, movieID int) float64 {
	return b.config.Scale.Clamp(b.biases.estimate(userID, movieID))
}

// Recommend returns the top n unrated movies by bias estimate.
func (b *Baseline) Recommend(userID, n int) ([]recommend.ScoredMovie, error) {
	return recommendUnseen(&b.BaseScorer, &b.index, userID, n, b.config.NumWorkers, func(movieID int) float64 {
		return b.predict(userID, movieID)
	})
}

// Compile-time interface check.
var _ recommend.Scorer = (*Baseline)(nil)
