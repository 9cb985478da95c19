// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// Similarity metrics accepted by KNNConfig.
const (
	MetricCosine  = "cosine"
	MetricPearson = "pearson"
)

// KNNConfig contains configuration for the item neighbourhood model.
type KNNConfig struct {
	// K is the number of neighbors kept per movie.
	// Typical range: 20-100.
	K int

	// MinSimilarity is the minimum similarity threshold.
	// Neighbors with lower similarity are ignored.
	// Typical range: 0.0-0.3.
	MinSimilarity float64

	// SimilarityMetric specifies which similarity function to use.
	// Options: "cosine", "pearson".
	SimilarityMetric string

	// Shrinkage adds a penalty for pairs with few co-ratings.
	// Regularizes similarity: sim = raw_sim * n / (n + shrinkage)
	// Typical range: 10-100.
	Shrinkage float64

	// MinCommonUsers is the minimum number of users who rated both movies.
	MinCommonUsers int

	// NumWorkers is the number of parallel workers.
	NumWorkers int

	// Baseline configures the bias model whose residuals are compared.
	Baseline BaselineConfig
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		K:                40,
		MinSimilarity:    0.0,
		SimilarityMetric: MetricPearson,
		Shrinkage:        100,
		MinCommonUsers:   2,
		NumWorkers:       4,
		Baseline:         DefaultBaselineConfig(),
	}
}

// neighbor represents a similar movie with its similarity score.
type neighbor struct {
	ID         int
	Similarity float64
}

// cell is one entry of a sparse vector.
type cell struct {
	key int
	val float64
}

// pairAcc accumulates co-rating statistics for one movie pair.
type pairAcc struct {
	n      int
	dot    float64
	sumA   float64
	sumB   float64
	sumSqA float64
	sumSqB float64
}

// ItemKNN implements item-based collaborative filtering on baseline residuals.
//
// For a target user u and candidate movie i:
// score(u, i) = b_ui + sum_{j in N(i;u)} sim(i, j) * (r_uj - b_uj) / sum_{j in N(i;u)} |sim(i, j)|
//
// where N(i;u) is the set of the K most similar movies to i that u has rated.
// Movies with no usable neighbors fall back to the baseline estimate.
type ItemKNN struct {
	BaseScorer
	config KNNConfig

	index     ratingIndex
	biases    biases
	neighbors map[int][]neighbor
}

// NewItemKNN creates a new item neighbourhood scorer.
func NewItemKNN(cfg KNNConfig) *ItemKNN {
	if cfg.K <= 0 {
		cfg.K = 40
	}
	if cfg.SimilarityMetric == "" {
		cfg.SimilarityMetric = MetricPearson
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}
	if cfg.Baseline.Scale == (recommend.RatingScale{}) {
		cfg.Baseline = DefaultBaselineConfig()
	}
	if cfg.Baseline.NumWorkers <= 0 {
		cfg.Baseline.NumWorkers = cfg.NumWorkers
	}

	return &ItemKNN{
		BaseScorer: NewBaseScorer("itemknn"),
		config:     cfg,
	}
}

// Fit estimates biases and precomputes the top-K neighbors of every rated movie.
func (k *ItemKNN) Fit(ctx context.Context, movieIDs []int, ratings []recommend.Rating) error {
	k.fitMu.Lock()
	defer k.fitMu.Unlock()

	if k.IsFitted() {
		return recommend.NewError("fit", recommend.ErrInvalidInput, "%s scorer is already fitted", k.name)
	}

	b, err := fitBiases(ctx, ratings, k.config.Baseline)
	if err != nil {
		return err
	}

	neighbors, err := k.computeNeighbors(ctx, ratings, &b)
	if err != nil {
		return err
	}

	k.index = newRatingIndex(movieIDs, ratings)
	k.biases = b
	k.neighbors = neighbors
	k.markFitted()
	return nil
}

// computeNeighbors builds residual vectors and accumulates co-rating
// statistics through each user's rated list, which touches only pairs that
// share at least one user.
func (k *ItemKNN) computeNeighbors(ctx context.Context, ratings []recommend.Rating, b *biases) (map[int][]neighbor, error) {
	pos := make(map[int]int)
	var items []int
	for _, r := range ratings {
		if _, ok := pos[r.MovieID]; !ok {
			pos[r.MovieID] = 0
			items = append(items, r.MovieID)
		}
	}
	sort.Ints(items)
	for p, id := range items {
		pos[id] = p
	}

	itemVecs := make([][]cell, len(items))
	userVecs := make(map[int][]cell)
	for _, r := range ratings {
		res := r.Value - b.estimate(r.UserID, r.MovieID)
		p := pos[r.MovieID]
		itemVecs[p] = append(itemVecs[p], cell{key: r.UserID, val: res})
		userVecs[r.UserID] = append(userVecs[r.UserID], cell{key: p, val: res})
	}
	norms := make([]float64, len(items))
	for p, vec := range itemVecs {
		sortCells(vec)
		var sq float64
		for _, c := range vec {
			sq += c.val * c.val
		}
		norms[p] = math.Sqrt(sq)
	}
	for _, vec := range userVecs {
		sortCells(vec)
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	positions := make([]int, len(items))
	for p := range positions {
		positions[p] = p
	}
	chunks := chunkInts(positions, k.config.NumWorkers)
	result := make([][]neighbor, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			acc := make([]pairAcc, len(items))
			var touched []int
			for _, i := range chunk {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}

				touched = touched[:0]
				for _, uc := range itemVecs[i] {
					for _, jc := range userVecs[uc.key] {
						j := jc.key
						if j == i {
							continue
						}
						a := &acc[j]
						if a.n == 0 {
							touched = append(touched, j)
						}
						a.n++
						a.dot += uc.val * jc.val
						a.sumA += uc.val
						a.sumB += jc.val
						a.sumSqA += uc.val * uc.val
						a.sumSqB += jc.val * jc.val
					}
				}

				var nbrs []neighbor
				for _, j := range touched {
					if sim, ok := k.similarity(&acc[j], norms[i], norms[j]); ok {
						nbrs = append(nbrs, neighbor{ID: items[j], Similarity: sim})
					}
					acc[j] = pairAcc{}
				}
				result[i] = topNeighbors(nbrs, k.config.K)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int][]neighbor, len(items))
	for p, nbrs := range result {
		if len(nbrs) > 0 {
			out[items[p]] = nbrs
		}
	}
	return out, nil
}

// similarity turns accumulated statistics into a shrunk similarity score.
func (k *ItemKNN) similarity(a *pairAcc, normA, normB float64) (float64, bool) {
	if a.n < k.config.MinCommonUsers {
		return 0, false
	}

	var sim float64
	switch k.config.SimilarityMetric {
	case MetricCosine:
		if normA == 0 || normB == 0 {
			return 0, false
		}
		sim = a.dot / (normA * normB)
	default:
		n := float64(a.n)
		num := n*a.dot - a.sumA*a.sumB
		den := math.Sqrt(n*a.sumSqA-a.sumA*a.sumA) * math.Sqrt(n*a.sumSqB-a.sumB*a.sumB)
		if den == 0 || math.IsNaN(den) {
			return 0, false
		}
		sim = num / den
	}

	if k.config.Shrinkage > 0 {
		sim *= float64(a.n) / (float64(a.n) + k.config.Shrinkage)
	}
	if sim <= k.config.MinSimilarity || math.IsNaN(sim) {
		return 0, false
	}
	return sim, true
}

// Predict returns the residual-adjusted baseline estimate.
func (k *ItemKNN) Predict(userID, movieID int) (float64, error) {
	if err := checkPredict(&k.BaseScorer, &k.index, userID, movieID); err != nil {
		return 0, err
	}
	return k.predict(userID, movieID), nil
}

func (k *ItemKNN) predict(userID, movieID int) float64 {
	base := k.biases.estimate(userID, movieID)
	rated := k.index.userRatings[userID]

	var num, den float64
	for _, nb := range k.neighbors[movieID] {
		r, ok := rated[nb.ID]
		if !ok {
			continue
		}
		num += nb.Similarity * (r - k.biases.estimate(userID, nb.ID))
		den += abs(nb.Similarity)
	}
	if den > 0 {
		base += num / den
	}
	return k.config.Baseline.Scale.Clamp(base)
}

// Recommend returns the top n unrated movies by predicted rating.
func (k *ItemKNN) Recommend(userID, n int) ([]recommend.ScoredMovie, error) {
	return recommendUnseen(&k.BaseScorer, &k.index, userID, n, k.config.NumWorkers, func(movieID int) float64 {
		return k.predict(userID, movieID)
	})
}

// neighborsOf returns up to n neighbors of a movie, most similar first.
func (k *ItemKNN) neighborsOf(movieID, n int) []recommend.ScoredMovie {
	if !k.IsFitted() {
		return nil
	}
	nbrs := k.neighbors[movieID]
	if n > len(nbrs) {
		n = len(nbrs)
	}
	out := make([]recommend.ScoredMovie, 0, n)
	for _, nb := range nbrs[:n] {
		out = append(out, recommend.ScoredMovie{MovieID: nb.ID, Score: nb.Similarity})
	}
	return out
}

func topNeighbors(nbrs []neighbor, k int) []neighbor {
	sort.Slice(nbrs, func(a, b int) bool {
		if nbrs[a].Similarity != nbrs[b].Similarity {
			return nbrs[a].Similarity > nbrs[b].Similarity
		}
		return nbrs[a].ID < nbrs[b].ID
	})
	if len(nbrs) > k {
		nbrs = nbrs[:k]
	}
	return nbrs
}

func sortCells(v []cell) {
	sort.Slice(v, func(i, j int) bool { return v[i].key < v[j].key })
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Compile-time interface check.
var _ recommend.Scorer = (*ItemKNN)(nil)
