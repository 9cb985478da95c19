// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package config loads and validates CineSense configuration.

# Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (Default)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/cinesense/config.yaml
 3. Environment variables

Only environment variables listed in the mapping table are read, so unrelated
variables in the process environment never leak into the configuration.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - ADMIN_JWT_SECRET: enables the admin reload endpoint

Data:
  - DATA_SOURCE: duckdb or postgres
  - MOVIES_PATH, RATINGS_PATH, SENTIMENT_PATH, REVIEWS_PATH
  - DUCKDB_PATH, POSTGRES_DSN, LOAD_TIMEOUT
  - SNAPSHOT_DIR, SNAPSHOT_KEEP

Recommendation engine:
  - RECOMMEND_SCORER: baseline, itemknn (default) or svd
  - RECOMMEND_RERANKER: coverage (default) or mmr
  - RECOMMEND_OVERSAMPLE (1-10), RECOMMEND_BLEND_WEIGHT (0-2)
  - RECOMMEND_HIGH_SENTIMENT, RECOMMEND_LOW_SENTIMENT, RECOMMEND_RATING_GAP
  - RECOMMEND_REFRESH_INTERVAL, RECOMMEND_DEFAULT_COUNT, RECOMMEND_MAX_COUNT

Cache:
  - CACHE_BACKEND: memory, redis, badger or none
  - CACHE_TTL, CACHE_CAPACITY, REDIS_URL, BADGER_PATH

Events:
  - EVENTS_ENABLED, NATS_URL, EVENTS_TOPIC, EVENTS_QUEUE_GROUP

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
