// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects the recommendation strategy.
type Mode int

const (
	// ModeSentimentAware blends collaborative scores with movie sentiment.
	ModeSentimentAware Mode = iota

	// ModeCollaborative returns raw collaborative predictions.
	ModeCollaborative

	// ModeDiverse blends scores and then reranks for genre coverage.
	ModeDiverse
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeSentimentAware, ModeCollaborative, ModeDiverse}

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCollaborative:
		return "collaborative"
	case ModeDiverse:
		return "diverse"
	default:
		return "sentiment"
	}
}

// DisplayName returns the human-readable mode name.
func (m Mode) DisplayName() string {
	switch m {
	case ModeCollaborative:
		return "Collaborative Filtering"
	case ModeDiverse:
		return "Diverse"
	default:
		return "Sentiment-Aware"
	}
}

// ParseMode converts a wire name into a Mode. The empty string selects
// ModeSentimentAware.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sentiment", "sentiment_aware", "sentiment-aware":
		return ModeSentimentAware, nil
	case "collaborative", "cf":
		return ModeCollaborative, nil
	case "diverse", "diversity":
		return ModeDiverse, nil
	default:
		return ModeSentimentAware, invalidInput("parse_mode", "unknown mode %q", s)
	}
}

// Strategy produces a recommendation list from a ready snapshot.
// The set of strategies is closed: collaborative, sentiment-aware and diverse.
type Strategy interface {
	// Mode returns the mode this strategy implements.
	Mode() Mode

	recommend(s *snapshot, userID, n int) ([]RecommendationItem, error)
}

// collaborativeStrategy passes scorer output through without adjustment.
type collaborativeStrategy struct{}

func (collaborativeStrategy) Mode() Mode { return ModeCollaborative }

func (collaborativeStrategy) recommend(s *snapshot, userID, n int) ([]RecommendationItem, error) {
	scored, err := s.scorer.Recommend(userID, n)
	if err != nil {
		return nil, err
	}

	items := make([]RecommendationItem, 0, len(scored))
	for _, sm := range scored {
		item, err := s.item(sm)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	assignRanks(items)
	return items, nil
}

// sentimentAwareStrategy blends an oversampled pool and sorts by adjusted score.
type sentimentAwareStrategy struct {
	blender    Blender
	oversample int
}

func (sentimentAwareStrategy) Mode() Mode { return ModeSentimentAware }

func (st sentimentAwareStrategy) recommend(s *snapshot, userID, n int) ([]RecommendationItem, error) {
	pool, err := blendedPool(s, st.blender, userID, n, st.oversample)
	if err != nil {
		return nil, err
	}

	sortByScore(pool)
	if len(pool) > n {
		pool = pool[:n]
	}
	assignRanks(pool)
	return pool, nil
}

// diverseStrategy blends an oversampled pool and hands it to the reranker.
type diverseStrategy struct {
	blender    Blender
	oversample int
	reranker   Reranker
}

func (diverseStrategy) Mode() Mode { return ModeDiverse }

func (st diverseStrategy) recommend(s *snapshot, userID, n int) ([]RecommendationItem, error) {
	pool, err := blendedPool(s, st.blender, userID, n, st.oversample)
	if err != nil {
		return nil, err
	}
	items := st.reranker.Rerank(pool, n)
	assignRanks(items)
	return items, nil
}

// blendedPool fetches n*oversample candidates and attaches adjusted scores.
func blendedPool(s *snapshot, b Blender, userID, n, oversample int) ([]RecommendationItem, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, notFound("candidate_pool", "user %d has no rating history", userID)
	}

	size := poolSize(n, oversample, s.catalog.NumMovies())
	scored, err := s.scorer.Recommend(userID, size)
	if err != nil {
		return nil, err
	}

	pool := make([]RecommendationItem, 0, len(scored))
	for _, sm := range scored {
		item, err := s.item(sm)
		if err != nil {
			return nil, err
		}
		adjusted := b.Blend(profile.Disposition, item.BaseScore, item.Sentiment)
		item.AdjustedScore = &adjusted
		pool = append(pool, item)
	}
	return pool, nil
}

// poolSize returns n*oversample bounded by the catalog size, never below n.
func poolSize(n, oversample, catalogSize int) int {
	if oversample < 1 {
		oversample = 1
	}
	size := n
	if n <= catalogSize/oversample {
		size = n * oversample
	} else if catalogSize > n {
		size = catalogSize
	}
	return size
}

// sortByScore orders items by effective score descending, movie id ascending.
func sortByScore(items []RecommendationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].Score(), items[j].Score()
		if si != sj {
			return si > sj
		}
		return items[i].MovieID < items[j].MovieID
	})
}

func assignRanks(items []RecommendationItem) {
	for i := range items {
		items[i].Rank = i + 1
		items[i].DisplayScore = items[i].Score()
	}
}

// item converts a scorer result into a recommendation record.
func (s *snapshot) item(sm ScoredMovie) (RecommendationItem, error) {
	m, ok := s.catalog.Movie(sm.MovieID)
	if !ok {
		return RecommendationItem{}, fmt.Errorf("scorer returned movie %d outside the catalog: %w", sm.MovieID, ErrNotFound)
	}
	return RecommendationItem{
		MovieID:        m.ID,
		Title:          m.Title,
		Genres:         append([]string(nil), m.Genres...),
		BaseScore:      sm.Score,
		Sentiment:      copyFloat(m.Sentiment),
		SentimentLabel: LabelSentiment(m.Sentiment),
	}, nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
