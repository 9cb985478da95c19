// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import "math"

// Blender adjusts collaborative scores by movie sentiment according to the
// user's disposition. It is a pure function of its inputs.
type Blender struct {
	weight float64
}

// NewBlender creates a blender with weight w, clamped to [0, MaxBlendWeight].
func NewBlender(w float64) Blender {
	if math.IsNaN(w) || w < 0 {
		w = 0
	}
	if w > MaxBlendWeight {
		w = MaxBlendWeight
	}
	return Blender{weight: w}
}

// Weight returns the configured weight.
func (b Blender) Weight() float64 {
	return b.weight
}

// Blend returns the adjusted score for a movie with the given sentiment.
//
//	positive_seeker: base + w*(s-0.5)
//	critical:        base - w*(s-0.5)
//	balanced:        base
//
// Absent or NaN sentiment is neutral and other values are clamped to [0, 1],
// so |adjusted-base| <= w/2. The result is not clamped to the rating scale.
func (b Blender) Blend(disposition Disposition, base float64, sentiment *float64) float64 {
	delta := b.weight * (effectiveSentiment(sentiment) - NeutralSentiment)

	switch disposition {
	case DispositionPositiveSeeker:
		return base + delta
	case DispositionCritical:
		return base - delta
	default:
		return base
	}
}

func effectiveSentiment(s *float64) float64 {
	if s == nil || math.IsNaN(*s) {
		return NeutralSentiment
	}
	return math.Max(0, math.Min(1, *s))
}
