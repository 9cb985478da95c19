// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package algorithms implements collaborative scorers for the recommendation engine.
//
// Each scorer implements recommend.Scorer and predicts ratings on the input
// rating scale. The engine fits a fresh scorer on every initialization and
// then serves reads from it concurrently.
//
// # Scorers
//
//   - Baseline: global mean plus regularized user and item biases
//   - ItemKNN: item-item neighbourhood model over baseline residuals
//   - SVD: biased matrix factorization trained with SGD
//
// ItemKNN is the default. Baseline is useful for very sparse datasets and
// as a reference point when tuning.
//
// # Usage Example
//
//	knn := algorithms.NewItemKNN(algorithms.DefaultKNNConfig())
//	if err := knn.Fit(ctx, movieIDs, ratings); err != nil {
//	    return err
//	}
//	top, err := knn.Recommend(userID, 10)
//
// # Thread Safety
//
// Fit holds an exclusive lock and a scorer may be fitted only once. After
// Fit returns the model is never mutated, so Predict and Recommend read it
// without locking.
//
// # Determinism
//
// Fits are deterministic for a fixed input. Sums follow rating order,
// random initialization uses a seeded source, and result lists are ordered
// by score descending with ties broken by ascending movie id.
package algorithms
