// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"context"
	"math/rand"
	"sort"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// SVDConfig contains configuration for biased matrix factorization.
type SVDConfig struct {
	// Factors is the number of latent dimensions.
	// Typical range: 10-100.
	Factors int

	// Epochs is the number of SGD passes over the ratings.
	Epochs int

	// LearningRate is the SGD step size.
	// Typical range: 0.002-0.01.
	LearningRate float64

	// Regularization is the L2 penalty applied to biases and factors.
	// Typical range: 0.01-0.1.
	Regularization float64

	// InitStdDev is the standard deviation of the initial factor values.
	InitStdDev float64

	// Seed makes initialization and shuffling reproducible.
	Seed int64

	// Scale bounds predictions.
	Scale recommend.RatingScale

	// NumWorkers is the number of goroutines used to score candidates.
	NumWorkers int
}

// DefaultSVDConfig returns sensible defaults.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Factors:        50,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
		Scale:          recommend.DefaultRatingScale(),
		NumWorkers:     4,
	}
}

// SVD implements Funk-style matrix factorization with user and item biases.
//
// r̂(u, i) = mu + b_u + b_i + p_u · q_i
type SVD struct {
	BaseScorer
	config SVDConfig

	index ratingIndex

	mu       float64
	userPos  map[int]int
	itemPos  map[int]int
	userBias []float64
	itemBias []float64
	userVecs [][]float64
	itemVecs [][]float64
}

// NewSVD creates a new matrix factorization scorer.
func NewSVD(cfg SVDConfig) *SVD {
	def := DefaultSVDConfig()
	if cfg.Factors <= 0 {
		cfg.Factors = def.Factors
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.InitStdDev <= 0 {
		cfg.InitStdDev = def.InitStdDev
	}
	if cfg.Scale == (recommend.RatingScale{}) {
		cfg.Scale = def.Scale
	}

	return &SVD{
		BaseScorer: NewBaseScorer("svd"),
		config:     cfg,
	}
}

// Fit trains factors with stochastic gradient descent.
func (s *SVD) Fit(ctx context.Context, movieIDs []int, ratings []recommend.Rating) error {
	s.fitMu.Lock()
	defer s.fitMu.Unlock()

	if s.IsFitted() {
		return recommend.NewError("fit", recommend.ErrInvalidInput, "%s scorer is already fitted", s.name)
	}

	idx := newRatingIndex(movieIDs, ratings)

	users := make([]int, 0, len(idx.userRatings))
	for u := range idx.userRatings {
		users = append(users, u)
	}
	sort.Ints(users)

	userPos := make(map[int]int, len(users))
	for p, u := range users {
		userPos[u] = p
	}
	itemPos := make(map[int]int, len(idx.movieIDs))
	for p, id := range idx.movieIDs {
		itemPos[id] = p
	}

	rng := rand.New(rand.NewSource(s.config.Seed)) //nolint:gosec // reproducible model init, not security sensitive
	f := s.config.Factors
	userVecs := randomMatrix(rng, len(users), f, s.config.InitStdDev)
	itemVecs := randomMatrix(rng, len(idx.movieIDs), f, s.config.InitStdDev)
	userBias := make([]float64, len(users))
	itemBias := make([]float64, len(idx.movieIDs))

	var mu float64
	for _, r := range ratings {
		mu += r.Value
	}
	if len(ratings) > 0 {
		mu /= float64(len(ratings))
	}

	order := make([]int, len(ratings))
	for i := range order {
		order[i] = i
	}

	lr, reg := s.config.LearningRate, s.config.Regularization
	for epoch := 0; epoch < s.config.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, k := range order {
			r := ratings[k]
			u, ok := userPos[r.UserID]
			if !ok {
				continue
			}
			i, ok := itemPos[r.MovieID]
			if !ok {
				continue
			}
			pu, qi := userVecs[u], itemVecs[i]

			e := r.Value - (mu + userBias[u] + itemBias[i] + dot(pu, qi))
			userBias[u] += lr * (e - reg*userBias[u])
			itemBias[i] += lr * (e - reg*itemBias[i])
			for x := 0; x < f; x++ {
				puf, qif := pu[x], qi[x]
				pu[x] += lr * (e*qif - reg*puf)
				qi[x] += lr * (e*puf - reg*qif)
			}
		}
	}

	s.index = idx
	s.mu = mu
	s.userPos = userPos
	s.itemPos = itemPos
	s.userBias = userBias
	s.itemBias = itemBias
	s.userVecs = userVecs
	s.itemVecs = itemVecs
	s.markFitted()
	return nil
}

// Predict returns the clamped factorization estimate.
func (s *SVD) Predict(userID, movieID int) (float64, error) {
	if err := checkPredict(&s.BaseScorer, &s.index, userID, movieID); err != nil {
		return 0, err
	}
	return s.predict(userID, movieID), nil
}

func (s *SVD) predict(userID, movieID int) float64 {
	u := s.userPos[userID]
	i := s.itemPos[movieID]
	est := s.mu + s.userBias[u] + s.itemBias[i] + dot(s.userVecs[u], s.itemVecs[i])
	return s.config.Scale.Clamp(est)
}

// Recommend returns the top n unrated movies by predicted rating.
func (s *SVD) Recommend(userID, n int) ([]recommend.ScoredMovie, error) {
	return recommendUnseen(&s.BaseScorer, &s.index, userID, n, s.config.NumWorkers, func(movieID int) float64 {
		return s.predict(userID, movieID)
	})
}

func randomMatrix(rng *rand.Rand, rows, cols int, std float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		row := make([]float64, cols)
		for c := range row {
			row[c] = rng.NormFloat64() * std
		}
		m[r] = row
	}
	return m
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Compile-time interface check.
var _ recommend.Scorer = (*SVD)(nil)
