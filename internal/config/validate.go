// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package config

import (
	"fmt"
	"math"
	"net/url"
	"time"
)

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// minAdminSecretLength is the shortest accepted HS256 secret.
const minAdminSecretLength = 32

// Validate checks that the configuration is complete and consistent.
// Errors name the environment variable that controls the offending value.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateData,
		c.validateRecommend,
		c.validateCache,
		c.validateEvents,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if !s.RateLimitDisabled {
		if s.RateLimitRequests < minRateLimitRequests || s.RateLimitRequests > maxRateLimitRequests {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
		}
		if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
		}
	}
	if s.AdminJWTSecret != "" && len(s.AdminJWTSecret) < minAdminSecretLength {
		return fmt.Errorf("ADMIN_JWT_SECRET must be at least %d characters", minAdminSecretLength)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

func (c *Config) validateData() error {
	d := c.Data
	switch d.Source {
	case "duckdb":
		if d.MoviesPath == "" || d.RatingsPath == "" {
			return fmt.Errorf("MOVIES_PATH and RATINGS_PATH are required when DATA_SOURCE=duckdb")
		}
	case "postgres":
		if d.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be duckdb or postgres, got %q", d.Source)
	}
	if d.LoadTimeout <= 0 {
		return fmt.Errorf("LOAD_TIMEOUT must be positive")
	}
	if d.SnapshotDir != "" && d.SnapshotKeep < 1 {
		return fmt.Errorf("SNAPSHOT_KEEP must be at least 1 when SNAPSHOT_DIR is set")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	switch r.Scorer {
	case "baseline", "itemknn", "svd":
	default:
		return fmt.Errorf("RECOMMEND_SCORER must be one of: baseline, itemknn, svd")
	}
	switch r.Reranker {
	case "coverage", "mmr":
	default:
		return fmt.Errorf("RECOMMEND_RERANKER must be coverage or mmr")
	}
	if r.MMRLambda < 0 || r.MMRLambda > 1 {
		return fmt.Errorf("RECOMMEND_MMR_LAMBDA must be between 0 and 1")
	}
	if r.Oversample < 1 || r.Oversample > 10 {
		return fmt.Errorf("RECOMMEND_OVERSAMPLE must be between 1 and 10")
	}
	if math.IsNaN(r.BlendWeight) || r.BlendWeight < 0 || r.BlendWeight > 2 {
		return fmt.Errorf("RECOMMEND_BLEND_WEIGHT must be between 0 and 2")
	}
	if r.LowSentiment < 0 || r.HighSentiment > 1 || r.LowSentiment > r.HighSentiment {
		return fmt.Errorf("RECOMMEND_LOW_SENTIMENT and RECOMMEND_HIGH_SENTIMENT must satisfy 0 <= low <= high <= 1")
	}
	if r.RatingGap <= 0 {
		return fmt.Errorf("RECOMMEND_RATING_GAP must be positive")
	}
	if r.MinRatings < 1 {
		return fmt.Errorf("RECOMMEND_MIN_RATINGS must be at least 1")
	}
	if r.RatingMin >= r.RatingMax {
		return fmt.Errorf("RECOMMEND_RATING_MIN must be below RECOMMEND_RATING_MAX")
	}
	if r.NumWorkers < 1 {
		return fmt.Errorf("RECOMMEND_WORKERS must be at least 1")
	}
	if r.KNN.Similarity != "cosine" && r.KNN.Similarity != "pearson" {
		return fmt.Errorf("RECOMMEND_KNN_SIMILARITY must be cosine or pearson")
	}
	if r.KNN.Neighbors < 1 || r.SVD.Factors < 1 || r.SVD.Epochs < 1 || r.Baseline.Iterations < 1 {
		return fmt.Errorf("RECOMMEND_KNN_NEIGHBORS, RECOMMEND_SVD_FACTORS and RECOMMEND_SVD_EPOCHS must be positive")
	}
	if r.RefreshInterval < 0 || r.ReloadMinInterval < 0 {
		return fmt.Errorf("RECOMMEND_REFRESH_INTERVAL and RECOMMEND_RELOAD_MIN_INTERVAL must not be negative")
	}
	if r.MaxCount < 1 || r.DefaultCount < 1 || r.DefaultCount > r.MaxCount {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be between 1 and RECOMMEND_MAX_COUNT")
	}
	return nil
}

func (c *Config) validateCache() error {
	cc := c.Cache
	switch cc.Backend {
	case "none":
		return nil
	case "memory":
		if cc.Capacity < 1 {
			return fmt.Errorf("CACHE_CAPACITY must be at least 1")
		}
	case "redis":
		if err := validateURL(cc.RedisURL, "REDIS_URL", "redis", "rediss"); err != nil {
			return err
		}
	case "badger":
		if cc.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, badger, none")
	}
	if cc.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateEvents() error {
	e := c.Events
	if !e.Enabled {
		return nil
	}
	if err := validateURL(e.NATSURL, "NATS_URL", "nats", "tls", "ws", "wss"); err != nil {
		return err
	}
	if e.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	return nil
}

// validateURL checks that rawURL parses with one of the given schemes and a host.
func validateURL(rawURL, envVar string, schemes ...string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", envVar, err)
	}
	ok := false
	for _, s := range schemes {
		if u.Scheme == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%s scheme must be one of %v, got: %q", envVar, schemes, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", envVar)
	}
	return nil
}
