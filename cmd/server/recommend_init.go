// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinesense/internal/cache"
	"github.com/tomtom215/cinesense/internal/config"
	"github.com/tomtom215/cinesense/internal/dataset"
	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/recommend"
	"github.com/tomtom215/cinesense/internal/recommend/algorithms"
	"github.com/tomtom215/cinesense/internal/recommend/reranking"
	"github.com/tomtom215/cinesense/internal/service"
)

// RecommendComponents holds everything initRecommend created.
type RecommendComponents struct {
	Engine  *recommend.Engine
	Service *service.RecommendationService
	Cache   cache.Store
	Loader  dataset.Loader
}

// Close releases the cache and loader connections.
func (c *RecommendComponents) Close() {
	if err := c.Loader.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing dataset loader")
	}
	if err := c.Cache.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing cache")
	}
}

// initRecommend builds the engine, cache, loader and service. The engine
// starts uninitialized; the refresh service performs the first load.
func initRecommend(ctx context.Context, cfg *config.Config) (*RecommendComponents, error) {
	scale := recommend.RatingScale{Min: cfg.Recommend.RatingMin, Max: cfg.Recommend.RatingMax}

	factory, err := algorithms.Factory(buildScorerSettings(cfg), scale)
	if err != nil {
		return nil, err
	}
	reranker, err := buildReranker(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), factory, reranker, logging.WithComponent("recommend"))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	store, err := cache.New(cache.Config{
		Backend:            cfg.Cache.Backend,
		Capacity:           cfg.Cache.Capacity,
		RedisURL:           cfg.Cache.RedisURL,
		BadgerPath:         cfg.Cache.BadgerPath,
		BreakerMaxFailures: cfg.Cache.BreakerMaxFailures,
		BreakerTimeout:     cfg.Cache.BreakerTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	loader, err := dataset.New(ctx, buildDatasetConfig(cfg))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create dataset loader: %w", err)
	}

	svc := service.New(engine, store, loader, service.Config{
		CacheTTL:    cfg.Cache.TTL,
		LoadTimeout: cfg.Data.LoadTimeout,
		MaxCount:    cfg.Recommend.MaxCount,
	})

	logging.Info().
		Str("scorer", cfg.Recommend.Scorer).
		Str("reranker", reranker.Name()).
		Str("cache", store.Backend()).
		Str("data_source", cfg.Data.Source).
		Msg("Recommendation components initialized")

	return &RecommendComponents{
		Engine:  engine,
		Service: svc,
		Cache:   store,
		Loader:  loader,
	}, nil
}

func buildEngineConfig(cfg *config.Config) recommend.Config {
	rc := cfg.Recommend
	return recommend.Config{
		Scale: recommend.RatingScale{Min: rc.RatingMin, Max: rc.RatingMax},
		Profile: recommend.ProfileConfig{
			HighSentiment: rc.HighSentiment,
			LowSentiment:  rc.LowSentiment,
			RatingGap:     rc.RatingGap,
			MinRatings:    rc.MinRatings,
		},
		BlendWeight: rc.BlendWeight,
		Oversample:  rc.Oversample,
	}
}

func buildScorerSettings(cfg *config.Config) algorithms.Settings {
	rc := cfg.Recommend
	s := algorithms.DefaultSettings()
	s.Scorer = rc.Scorer

	s.Baseline.UserReg = rc.Baseline.UserReg
	s.Baseline.ItemReg = rc.Baseline.ItemReg
	s.Baseline.Iterations = rc.Baseline.Iterations
	s.Baseline.NumWorkers = rc.NumWorkers

	s.KNN.K = rc.KNN.Neighbors
	s.KNN.SimilarityMetric = rc.KNN.Similarity
	s.KNN.Shrinkage = rc.KNN.Shrinkage
	s.KNN.MinCommonUsers = rc.KNN.MinCommonUsers
	s.KNN.MinSimilarity = rc.KNN.MinSimilarity
	s.KNN.NumWorkers = rc.NumWorkers
	s.KNN.Baseline = s.Baseline

	s.SVD.Factors = rc.SVD.Factors
	s.SVD.Epochs = rc.SVD.Epochs
	s.SVD.LearningRate = rc.SVD.LearningRate
	s.SVD.Regularization = rc.SVD.Regularization
	s.SVD.Seed = rc.SVD.Seed
	s.SVD.NumWorkers = rc.NumWorkers
	return s
}

func buildReranker(cfg *config.Config) (recommend.Reranker, error) {
	switch cfg.Recommend.Reranker {
	case "coverage", "":
		return reranking.NewGenreCoverage(), nil
	case "mmr":
		return reranking.NewMMR(cfg.Recommend.MMRLambda), nil
	default:
		return nil, fmt.Errorf("unknown reranker %q (available: coverage, mmr)", cfg.Recommend.Reranker)
	}
}

func buildDatasetConfig(cfg *config.Config) dataset.Config {
	d := cfg.Data
	return dataset.Config{
		Source:        d.Source,
		MoviesPath:    d.MoviesPath,
		RatingsPath:   d.RatingsPath,
		SentimentPath: d.SentimentPath,
		ReviewsPath:   d.ReviewsPath,
		DuckDBPath:    d.DuckDBPath,
		PostgresDSN:   d.PostgresDSN,
		SnapshotDir:   d.SnapshotDir,
		SnapshotKeep:  d.SnapshotKeep,
	}
}
