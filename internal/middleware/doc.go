// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

  - RequestID assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs.
  - PrometheusMetrics records request counts, latency and in-flight
    requests, labelled by chi route pattern so path parameters do not
    explode label cardinality.
  - AccessLog writes one structured log line per request.

Order matters: RequestID must run before AccessLog so log lines carry the
request ID.
*/
package middleware
