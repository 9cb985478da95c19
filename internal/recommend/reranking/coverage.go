// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package reranking

import (
	"sort"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// maxRerankSize limits slice allocations; n is also bounded by the pool size.
const maxRerankSize = 10000

// GenreCoverage implements greedy genre-coverage reranking.
//
// Selection runs in two tiers. While some genre in the candidate pool is
// not yet represented, it picks the highest-scoring remaining candidate that
// contributes at least one unrepresented genre. Once every genre in the pool
// is covered, it falls back to plain highest-score selection. Ties within a
// tier break by ascending movie id.
type GenreCoverage struct{}

// NewGenreCoverage creates a genre coverage reranker.
func NewGenreCoverage() *GenreCoverage {
	return &GenreCoverage{}
}

// Name returns the reranker identifier.
func (g *GenreCoverage) Name() string {
	return "coverage"
}

// Rerank selects up to n candidates for maximal genre coverage.
func (g *GenreCoverage) Rerank(candidates []recommend.RecommendationItem, n int) []recommend.RecommendationItem {
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

	uncovered := make(map[string]struct{})
	for i := range pool {
		for _, genre := range pool[i].Genres {
			uncovered[genre] = struct{}{}
		}
	}

	selected := make([]recommend.RecommendationItem, 0, n)
	taken := make([]bool, len(pool))

	for len(selected) < n {
		best := -1
		if len(uncovered) > 0 {
			for i := range pool {
				if !taken[i] && addsGenre(pool[i].Genres, uncovered) {
					best = i
					break
				}
			}
		}
		if best < 0 {
			for i := range pool {
				if !taken[i] {
					best = i
					break
				}
			}
		}
		if best < 0 {
			break
		}

		taken[best] = true
		for _, genre := range pool[best].Genres {
			delete(uncovered, genre)
		}
		selected = append(selected, pool[best])
	}

	rank(selected)
	return selected
}

func addsGenre(genres []string, uncovered map[string]struct{}) bool {
	for _, genre := range genres {
		if _, ok := uncovered[genre]; ok {
			return true
		}
	}
	return false
}

// sortedCopy returns candidates ordered by effective score descending,
// movie id ascending. The input is not modified.
func sortedCopy(candidates []recommend.RecommendationItem) []recommend.RecommendationItem {
	pool := append([]recommend.RecommendationItem(nil), candidates...)
	sort.SliceStable(pool, func(i, j int) bool {
		si, sj := pool[i].Score(), pool[j].Score()
		if si != sj {
			return si > sj
		}
		return pool[i].MovieID < pool[j].MovieID
	})
	return pool
}

func rank(items []recommend.RecommendationItem) {
	for i := range items {
		items[i].Rank = i + 1
	}
}

// Ensure GenreCoverage implements the interface.
var _ recommend.Reranker = (*GenreCoverage)(nil)
