// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package api exposes the recommendation service over HTTP.

Routes are registered on a Chi router and every response uses the same
JSON envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Failures set success to false and carry an error object with a stable
machine-readable code (NOT_FOUND, VALIDATION_FAILED, SERVICE_UNAVAILABLE, ...).

# Endpoints

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/users/{userID}/profile
	GET  /api/v1/users/{userID}/recommendations?n=10&mode=sentiment
	GET  /api/v1/movies/{movieID}
	GET  /api/v1/stats
	POST /api/v1/admin/reload           (only when an admin secret is configured)
	GET  /metrics

Engine errors map onto status codes: unknown user or movie is 404, bad
parameters are 400, and an uninitialized engine is 503.
*/
package api
