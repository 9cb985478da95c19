// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package algorithms

import (
	"fmt"
	"sort"

	"github.com/tomtom215/cinesense/internal/recommend"
)

// Scorer names accepted by Factory.
const (
	NameBaseline = "baseline"
	NameItemKNN  = "itemknn"
	NameSVD      = "svd"
)

// Settings selects a scorer and carries the configuration for each kind.
type Settings struct {
	Scorer   string
	Baseline BaselineConfig
	KNN      KNNConfig
	SVD      SVDConfig
}

// DefaultSettings selects ItemKNN with default parameters.
func DefaultSettings() Settings {
	return Settings{
		Scorer:   NameItemKNN,
		Baseline: DefaultBaselineConfig(),
		KNN:      DefaultKNNConfig(),
		SVD:      DefaultSVDConfig(),
	}
}

var constructors = map[string]func(Settings) recommend.Scorer{
	NameBaseline: func(s Settings) recommend.Scorer { return NewBaseline(s.Baseline) },
	NameItemKNN:  func(s Settings) recommend.Scorer { return NewItemKNN(s.KNN) },
	NameSVD:      func(s Settings) recommend.Scorer { return NewSVD(s.SVD) },
}

// Names returns the registered scorer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory returns a ScorerFactory that builds a fresh scorer per call.
// All scorers share the given rating scale.
func Factory(s Settings, scale recommend.RatingScale) (recommend.ScorerFactory, error) {
	ctor, ok := constructors[s.Scorer]
	if !ok {
		return nil, fmt.Errorf("unknown scorer %q (available: %v)", s.Scorer, Names())
	}
	s.Baseline.Scale = scale
	s.KNN.Baseline.Scale = scale
	s.SVD.Scale = scale
	return func() recommend.Scorer { return ctor(s) }, nil
}
