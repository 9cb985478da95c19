// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package reranking implements diversity rerankers for blended candidate pools.
//
// Rerankers run after the engine has scored and blended a candidate pool.
// They choose at most n items from it and rewrite ranks from 1:
//
//	Scorer -> Blender -> Reranker -> Final Ranking
//	(relevance) (sentiment) (diversity)
//
// # Available Rerankers
//
// GenreCoverage (default):
//   - Prefers the highest-scoring candidate that adds an unrepresented genre
//   - Falls back to pure score order once every pool genre is covered
//   - With n >= number of pool genres, every genre appears at least once
//
// Maximal Marginal Relevance (MMR):
//   - Balances normalized score against genre Jaccard similarity
//   - Lambda parameter controls relevance/diversity tradeoff
//
// Lambda Guidelines:
//   - 0.9-1.0: Mostly relevance, minimal diversity
//   - 0.7-0.9: Balanced
//   - 0.0-0.7: Diversity-focused (may sacrifice relevance)
//
// # Determinism
//
// Both rerankers sort the pool by score descending and movie id ascending
// before selecting, so equal inputs always produce equal outputs.
//
// # Performance
//
// GenreCoverage is O(n * p * g) for pool size p and g genres per movie.
// MMR is O(n * p^2) time and O(p^2) space for the similarity matrix.
// The engine bounds p through the oversampling factor.
//
// # Thread Safety
//
// All rerankers are stateless and safe for concurrent use.
package reranking
