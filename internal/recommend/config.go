// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"fmt"
	"math"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scale bounds accepted rating values.
	// Default: 0.5 - 5.0
	Scale RatingScale `json:"scale"`

	// Profile controls disposition classification.
	Profile ProfileConfig `json:"profile"`

	// BlendWeight is the sentiment adjustment weight w.
	// The adjustment is w*(s-0.5), so it never exceeds w/2 in either direction.
	// Must be in [0, 2] so a blend moves a score by at most one rating unit.
	// Default: 1.0
	BlendWeight float64 `json:"blend_weight"`

	// Oversample is the candidate pool size as a multiple of the requested count.
	// Default: 4
	Oversample int `json:"oversample"`
}

// ProfileConfig controls how user sentiment dispositions are derived.
type ProfileConfig struct {
	// HighSentiment is the exclusive lower bound of the high-sentiment band.
	// Default: 0.6
	HighSentiment float64 `json:"high_sentiment"`

	// LowSentiment is the exclusive upper bound of the low-sentiment band.
	// Default: 0.4
	LowSentiment float64 `json:"low_sentiment"`

	// RatingGap is the minimum difference between band averages needed to
	// classify a user as positive_seeker or critical.
	// Default: 1.0
	RatingGap float64 `json:"rating_gap"`

	// MinRatings is the minimum number of ratings before a user can be
	// classified as anything other than balanced.
	// Default: 2
	MinRatings int `json:"min_ratings"`
}

// DefaultProfileConfig returns the standard disposition thresholds.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		HighSentiment: 0.6,
		LowSentiment:  0.4,
		RatingGap:     1.0,
		MinRatings:    2,
	}
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Scale:       DefaultRatingScale(),
		Profile:     DefaultProfileConfig(),
		BlendWeight: 1.0,
		Oversample:  4,
	}
}

// MaxBlendWeight keeps a blend within one rating unit of the base score.
const MaxBlendWeight = 2.0

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if math.IsNaN(c.Scale.Min) || math.IsNaN(c.Scale.Max) || c.Scale.Min >= c.Scale.Max {
		return fmt.Errorf("scale must satisfy min < max, got [%f, %f]", c.Scale.Min, c.Scale.Max)
	}

	p := c.Profile
	if p.LowSentiment < 0 || p.HighSentiment > 1 || p.LowSentiment > p.HighSentiment {
		return fmt.Errorf("profile sentiment bands must satisfy 0 <= low <= high <= 1, got low=%f high=%f",
			p.LowSentiment, p.HighSentiment)
	}
	if p.RatingGap <= 0 {
		return fmt.Errorf("profile.rating_gap must be positive, got %f", p.RatingGap)
	}
	if p.MinRatings < 0 {
		return fmt.Errorf("profile.min_ratings must be non-negative, got %d", p.MinRatings)
	}

	if math.IsNaN(c.BlendWeight) || c.BlendWeight < 0 || c.BlendWeight > MaxBlendWeight {
		return fmt.Errorf("blend_weight must be in [0, %.0f], got %f", MaxBlendWeight, c.BlendWeight)
	}

	if c.Oversample < 1 || c.Oversample > 10 {
		return fmt.Errorf("oversample must be in [1, 10], got %d", c.Oversample)
	}

	return nil
}
