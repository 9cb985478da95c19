// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminJWTSecret enables POST /api/v1/admin/reload when set.
	// Tokens must be HS256-signed with this secret.
	AdminJWTSecret string `koanf:"admin_jwt_secret"`
}

// LoggingConfig mirrors logging.Config for the fields that can be configured.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	Caller bool `koanf:"caller"`
}

// DataConfig selects and locates the movie/rating dataset.
type DataConfig struct {
	// Source is duckdb (CSV files read through DuckDB) or postgres.
	// Default: duckdb
	Source string `koanf:"source"`

	MoviesPath    string `koanf:"movies_path"`
	RatingsPath   string `koanf:"ratings_path"`
	SentimentPath string `koanf:"sentiment_path"`
	ReviewsPath   string `koanf:"reviews_path"`

	// DuckDBPath is the database file used for CSV ingestion.
	// Empty means an in-memory database.
	DuckDBPath string `koanf:"duckdb_path"`

	PostgresDSN string `koanf:"postgres_dsn"`

	LoadTimeout time.Duration `koanf:"load_timeout"`

	// SnapshotDir stores compressed copies of successfully loaded datasets
	// so the service can start when the primary source is down.
	// Empty disables snapshots.
	SnapshotDir  string `koanf:"snapshot_dir"`
	SnapshotKeep int    `koanf:"snapshot_keep"`
}

// RecommendConfig holds engine and scorer settings.
type RecommendConfig struct {
	// Scorer is baseline, itemknn or svd.
	// Default: itemknn
	Scorer string `koanf:"scorer"`

	// Reranker is coverage or mmr and drives diverse mode.
	// Default: coverage
	Reranker  string  `koanf:"reranker"`
	MMRLambda float64 `koanf:"mmr_lambda"`

	Oversample  int     `koanf:"oversample"`
	BlendWeight float64 `koanf:"blend_weight"`

	HighSentiment float64 `koanf:"high_sentiment"`
	LowSentiment  float64 `koanf:"low_sentiment"`
	RatingGap     float64 `koanf:"rating_gap"`
	MinRatings    int     `koanf:"min_ratings"`

	RatingMin float64 `koanf:"rating_min"`
	RatingMax float64 `koanf:"rating_max"`

	NumWorkers int `koanf:"num_workers"`

	Baseline BaselineConfig `koanf:"baseline"`
	KNN      KNNConfig      `koanf:"knn"`
	SVD      SVDConfig      `koanf:"svd"`

	// RefreshInterval reloads the dataset periodically. Zero disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// ReloadMinInterval throttles on-demand reloads (admin API, events).
	ReloadMinInterval time.Duration `koanf:"reload_min_interval"`

	DefaultCount int `koanf:"default_count"`
	MaxCount     int `koanf:"max_count"`
}

// BaselineConfig holds bias model settings.
type BaselineConfig struct {
	UserReg    float64 `koanf:"user_reg"`
	ItemReg    float64 `koanf:"item_reg"`
	Iterations int     `koanf:"iterations"`
}

// KNNConfig holds item-kNN settings.
type KNNConfig struct {
	Neighbors      int     `koanf:"neighbors"`
	Similarity     string  `koanf:"similarity"`
	Shrinkage      float64 `koanf:"shrinkage"`
	MinCommonUsers int     `koanf:"min_common_users"`
	MinSimilarity  float64 `koanf:"min_similarity"`
}

// SVDConfig holds matrix factorization settings.
type SVDConfig struct {
	Factors        int     `koanf:"factors"`
	Epochs         int     `koanf:"epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`
	Seed           int64   `koanf:"seed"`
}

// CacheConfig selects the recommendation response cache.
type CacheConfig struct {
	// Backend is memory, redis, badger or none.
	// Default: memory
	Backend  string        `koanf:"backend"`
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`

	RedisURL   string `koanf:"redis_url"`
	BadgerPath string `koanf:"badger_path"`

	// Circuit breaker guarding the remote backend.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// EventsConfig configures the NATS subscriber that triggers reloads.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	NATSURL string `koanf:"nats_url"`
	Topic   string `koanf:"topic"`

	// QueueGroup load-balances events across replicas. Leave empty so
	// every replica reloads.
	QueueGroup string `koanf:"queue_group"`

	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
