// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import "sort"

// BuildProfiles derives a profile for every user with at least one rating.
// The result is deterministic for a fixed catalog and config.
func BuildProfiles(c *Catalog, cfg ProfileConfig) map[int]*UserProfile {
	profiles := make(map[int]*UserProfile, c.NumUsers())
	for _, userID := range c.UserIDs() {
		profiles[userID] = buildProfile(c, userID, cfg)
	}
	return profiles
}

func buildProfile(c *Catalog, userID int, cfg ProfileConfig) *UserProfile {
	ratings := c.UserRatings(userID)

	var (
		sum       float64
		highSum   float64
		highCount int
		lowSum    float64
		lowCount  int
		genres    = make(map[string]int)
	)

	for _, r := range ratings {
		sum += r.Value

		m, ok := c.Movie(r.MovieID)
		if !ok {
			continue
		}
		for _, g := range m.Genres {
			genres[g]++
		}

		s := m.SentimentOrNeutral()
		switch {
		case s > cfg.HighSentiment:
			highSum += r.Value
			highCount++
		case s < cfg.LowSentiment:
			lowSum += r.Value
			lowCount++
		}
	}

	profile := &UserProfile{
		UserID:       userID,
		TotalRatings: len(ratings),
		GenreCounts:  sortGenreCounts(genres),
		Disposition:  DispositionBalanced,
	}
	if len(ratings) > 0 {
		profile.AverageRating = sum / float64(len(ratings))
	}

	if len(ratings) >= cfg.MinRatings && highCount > 0 && lowCount > 0 {
		profile.Disposition = classify(highSum/float64(highCount), lowSum/float64(lowCount), cfg.RatingGap)
	}

	return profile
}

func classify(highAvg, lowAvg, gap float64) Disposition {
	switch {
	case highAvg-lowAvg >= gap:
		return DispositionPositiveSeeker
	case lowAvg-highAvg >= gap:
		return DispositionCritical
	default:
		return DispositionBalanced
	}
}

func sortGenreCounts(genres map[string]int) []GenreCount {
	out := make([]GenreCount, 0, len(genres))
	for g, n := range genres {
		out = append(out, GenreCount{Genre: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
