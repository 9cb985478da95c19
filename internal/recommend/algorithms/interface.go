// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// BaseScorer provides lifecycle bookkeeping shared by all scorers.
type BaseScorer struct {
	name   string
	fitted atomic.Bool
	fitMu  sync.Mutex
}

// NewBaseScorer creates a base scorer with the given name.
func NewBaseScorer(name string) BaseScorer {
	return BaseScorer{name: name}
}

// Name returns the scorer identifier.
func (b *BaseScorer) Name() string {
	return b.name
}

// IsFitted reports whether Fit has completed.
func (b *BaseScorer) IsFitted() bool {
	return b.fitted.Load()
}

// markFitted publishes the fitted state. Must be called after all model
// fields are written and while holding fitMu.
func (b *BaseScorer) markFitted() {
	b.fitted.Store(true)
}

// ratingIndex is the read-only view of the training data every scorer keeps.
type ratingIndex struct {
	movieIDs    []int
	userRatings map[int]map[int]float64
}

func newRatingIndex(movieIDs []int, ratings []recommend.Rating) ratingIndex {
	ids := append([]int(nil), movieIDs...)
	sort.Ints(ids)

	idx := ratingIndex{
		movieIDs:    ids,
		userRatings: make(map[int]map[int]float64),
	}
	for _, r := range ratings {
		m := idx.userRatings[r.UserID]
		if m == nil {
			m = make(map[int]float64)
			idx.userRatings[r.UserID] = m
		}
		m[r.MovieID] = r.Value
	}
	return idx
}

func (idx *ratingIndex) hasMovie(id int) bool {
	i := sort.SearchInts(idx.movieIDs, id)
	return i < len(idx.movieIDs) && idx.movieIDs[i] == id
}

// checkPredict validates a Predict call against the fitted index.
func checkPredict(b *BaseScorer, idx *ratingIndex, userID, movieID int) error {
	const op = "predict"
	if !b.IsFitted() {
		return recommend.NewError(op, recommend.ErrUnavailable, "%s scorer is not fitted", b.name)
	}
	if _, ok := idx.userRatings[userID]; !ok {
		return recommend.NewError(op, recommend.ErrNotFound, "user %d has no rating history", userID)
	}
	if !idx.hasMovie(movieID) {
		return recommend.NewError(op, recommend.ErrNotFound, "movie %d", movieID)
	}
	return nil
}

// recommendUnseen scores every movie the user has not rated and returns the
// top n. Scoring is split across workers; the result order does not depend
// on scheduling.
func recommendUnseen(b *BaseScorer, idx *ratingIndex, userID, n, workers int, predict func(movieID int) float64) ([]recommend.ScoredMovie, error) {
	const op = "recommend"
	if !b.IsFitted() {
		return nil, recommend.NewError(op, recommend.ErrUnavailable, "%s scorer is not fitted", b.name)
	}
	if n <= 0 {
		return nil, recommend.NewError(op, recommend.ErrInvalidInput, "n must be positive, got %d", n)
	}
	seen, ok := idx.userRatings[userID]
	if !ok {
		return nil, recommend.NewError(op, recommend.ErrNotFound, "user %d has no rating history", userID)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunks := chunkInts(idx.movieIDs, workers)
	partial := make([][]recommend.ScoredMovie, len(chunks))

	var g errgroup.Group
	for ci, chunk := range chunks {
		g.Go(func() error {
			out := make([]recommend.ScoredMovie, 0, len(chunk))
			for _, id := range chunk {
				if _, rated := seen[id]; rated {
					continue
				}
				out = append(out, recommend.ScoredMovie{MovieID: id, Score: predict(id)})
			}
			partial[ci] = selectTop(out, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []recommend.ScoredMovie
	for _, p := range partial {
		merged = append(merged, p...)
	}
	return selectTop(merged, n), nil
}

// selectTop sorts by score descending, movie id ascending and truncates to n.
func selectTop(items []recommend.ScoredMovie, n int) []recommend.ScoredMovie {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].MovieID < items[j].MovieID
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// chunkInts splits ids into at most parts contiguous chunks.
func chunkInts(ids []int, parts int) [][]int {
	if len(ids) == 0 {
		return nil
	}
	if parts > len(ids) {
		parts = len(ids)
	}
	size := (len(ids) + parts - 1) / parts
	chunks := make([][]int, 0, parts)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
