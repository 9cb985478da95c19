// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package reranking

import (
	"strings"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// MMR implements Maximal Marginal Relevance reranking.
// It balances relevance and diversity by iteratively selecting items
// that are both relevant and dissimilar to already selected items.
//
// The MMR formula is:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected]
//
// Where:
//   - lambda: balance parameter (1.0 = pure relevance, 0.0 = pure diversity)
//   - score(i): candidate score min-max normalized over the pool
//   - sim(i, s): genre Jaccard similarity between item i and selected item s
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	// Lambda balances relevance vs. diversity (0.0 to 1.0)
	lambda float64
}

// NewMMR creates a new MMR reranker.
func NewMMR(lambda float64) *MMR {
	if lambda < 0 {
		lambda = 0
	}
	if lambda > 1 {
		lambda = 1
	}
	return &MMR{lambda: lambda}
}

// Name returns the reranker identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance weight.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank applies MMR reranking to diversify the recommendation list.
func (m *MMR) Rerank(candidates []recommend.RecommendationItem, n int) []recommend.RecommendationItem {
	if len(candidates) == 0 || n <= 0 {
		return []recommend.RecommendationItem{}
	}
	if n > maxRerankSize {
		n = maxRerankSize
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	pool := sortedCopy(candidates)

	// Pure relevance keeps the sorted order.
	if m.lambda >= 1.0 {
		out := pool[:n]
		rank(out)
		return out
	}

	relevance := normalizedScores(pool)
	similarities := buildSimilarityMatrix(pool)

	selected := make([]recommend.RecommendationItem, 0, n)
	selectedIdx := make([]int, 0, n)
	taken := make([]bool, len(pool))

	for len(selected) < n {
		bestIdx := -1
		var bestMMR float64

		// pool is sorted, so strict comparison keeps the lower movie id on ties.
		for i := range pool {
			if taken[i] {
				continue
			}

			maxSim := 0.0
			for _, j := range selectedIdx {
				if sim := similarities[i][j]; sim > maxSim {
					maxSim = sim
				}
			}

			score := m.lambda*relevance[i] - (1-m.lambda)*maxSim
			if bestIdx < 0 || score > bestMMR {
				bestMMR = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}

		taken[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
		selected = append(selected, pool[bestIdx])
	}

	rank(selected)
	return selected
}

// normalizedScores maps effective scores onto [0, 1] over the pool.
func normalizedScores(pool []recommend.RecommendationItem) []float64 {
	out := make([]float64, len(pool))
	lo, hi := pool[len(pool)-1].Score(), pool[0].Score()
	span := hi - lo
	for i := range pool {
		if span > 0 {
			out[i] = (pool[i].Score() - lo) / span
		} else {
			out[i] = 1
		}
	}
	return out
}

// buildSimilarityMatrix computes pairwise genre-based similarity.
func buildSimilarityMatrix(items []recommend.RecommendationItem) [][]float64 {
	n := len(items)
	similarities := make([][]float64, n)
	for i := range similarities {
		similarities[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := genreSimilarity(items[i].Genres, items[j].Genres)
			similarities[i][j] = sim
			similarities[j][i] = sim
		}
	}

	return similarities
}

// genreSimilarity computes Jaccard similarity between genre lists.
func genreSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, g := range a {
		setA[strings.ToLower(g)] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, g := range b {
		setB[strings.ToLower(g)] = struct{}{}
	}

	intersection := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// Ensure MMR implements the interface.
var _ recommend.Reranker = (*MMR)(nil)
