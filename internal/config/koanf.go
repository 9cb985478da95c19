// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinesense/config.yaml",
	"/etc/cinesense/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Data: DataConfig{
			Source:       "duckdb",
			MoviesPath:   "data/movies.csv",
			RatingsPath:  "data/ratings.csv",
			LoadTimeout:  5 * time.Minute,
			SnapshotKeep: 3,
		},
		Recommend: RecommendConfig{
			Scorer:        "itemknn",
			Reranker:      "coverage",
			MMRLambda:     0.7,
			Oversample:    4,
			BlendWeight:   1.0,
			HighSentiment: 0.6,
			LowSentiment:  0.4,
			RatingGap:     1.0,
			MinRatings:    2,
			RatingMin:     0.5,
			RatingMax:     5.0,
			NumWorkers:    4,
			Baseline: BaselineConfig{
				UserReg:    15,
				ItemReg:    10,
				Iterations: 10,
			},
			KNN: KNNConfig{
				Neighbors:      40,
				Similarity:     "pearson",
				Shrinkage:      100,
				MinCommonUsers: 2,
			},
			SVD: SVDConfig{
				Factors:        50,
				Epochs:         20,
				LearningRate:   0.005,
				Regularization: 0.02,
				Seed:           42,
			},
			ReloadMinInterval: 30 * time.Second,
			DefaultCount:      10,
			MaxCount:          20,
		},
		Cache: CacheConfig{
			Backend:            "memory",
			TTL:                5 * time.Minute,
			Capacity:           10000,
			RedisURL:           "redis://localhost:6379/0",
			BadgerPath:         "data/cache",
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Events: EventsConfig{
			NATSURL:       "nats://127.0.0.1:4222",
			Topic:         "dataset.updated",
			QueueGroup:    "",
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
		},
	}
}

// Load reads configuration with precedence env > file > defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variables (lowercased) to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"admin_jwt_secret":      "server.admin_jwt_secret",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"data_source":    "data.source",
	"movies_path":    "data.movies_path",
	"ratings_path":   "data.ratings_path",
	"sentiment_path": "data.sentiment_path",
	"reviews_path":   "data.reviews_path",
	"duckdb_path":    "data.duckdb_path",
	"postgres_dsn":   "data.postgres_dsn",
	"load_timeout":   "data.load_timeout",
	"snapshot_dir":   "data.snapshot_dir",
	"snapshot_keep":  "data.snapshot_keep",

	"recommend_scorer":              "recommend.scorer",
	"recommend_reranker":            "recommend.reranker",
	"recommend_mmr_lambda":          "recommend.mmr_lambda",
	"recommend_oversample":          "recommend.oversample",
	"recommend_blend_weight":        "recommend.blend_weight",
	"recommend_high_sentiment":      "recommend.high_sentiment",
	"recommend_low_sentiment":       "recommend.low_sentiment",
	"recommend_rating_gap":          "recommend.rating_gap",
	"recommend_min_ratings":         "recommend.min_ratings",
	"recommend_rating_min":          "recommend.rating_min",
	"recommend_rating_max":          "recommend.rating_max",
	"recommend_workers":             "recommend.num_workers",
	"recommend_knn_neighbors":       "recommend.knn.neighbors",
	"recommend_knn_similarity":      "recommend.knn.similarity",
	"recommend_knn_shrinkage":       "recommend.knn.shrinkage",
	"recommend_knn_min_common":      "recommend.knn.min_common_users",
	"recommend_svd_factors":         "recommend.svd.factors",
	"recommend_svd_epochs":          "recommend.svd.epochs",
	"recommend_svd_seed":            "recommend.svd.seed",
	"recommend_refresh_interval":    "recommend.refresh_interval",
	"recommend_reload_min_interval": "recommend.reload_min_interval",
	"recommend_default_count":       "recommend.default_count",
	"recommend_max_count":           "recommend.max_count",

	"cache_backend":              "cache.backend",
	"cache_ttl":                  "cache.ttl",
	"cache_capacity":             "cache.capacity",
	"redis_url":                  "cache.redis_url",
	"badger_path":                "cache.badger_path",
	"cache_breaker_max_failures": "cache.breaker_max_failures",
	"cache_breaker_timeout":      "cache.breaker_timeout",

	"events_enabled":     "events.enabled",
	"nats_url":           "events.nats_url",
	"events_topic":       "events.topic",
	"events_queue_group": "events.queue_group",
}

// envTransformFunc maps RATINGS_PATH to data.ratings_path and so on.
// An empty return value tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
