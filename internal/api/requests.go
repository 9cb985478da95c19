// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinesense/internal/recommend"
	"github.com/tomtom215/cinesense/internal/validation"
)

// RecommendationsRequest holds the query parameters of the recommendations endpoint.
type RecommendationsRequest struct {
	Count int    `query:"n" validate:"min=1"`
	Mode  string `query:"mode" validate:"omitempty,recmode"`
}

// parseRecommendationsRequest reads n and mode, applying defaults. The
// upper bound on n comes from configuration.
func parseRecommendationsRequest(r *http.Request, defaultCount, maxCount int) (RecommendationsRequest, recommend.Mode, *validation.RequestValidationError) {
	q := r.URL.Query()
	req := RecommendationsRequest{
		Count: defaultCount,
		Mode:  strings.TrimSpace(q.Get("mode")),
	}

	if raw := strings.TrimSpace(q.Get("n")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, 0, validation.FieldErrorf("n", "int", "n must be an integer")
		}
		req.Count = n
	}

	if ve := validation.ValidateStruct(&req); ve != nil {
		return req, 0, ve
	}
	if ve := validation.ValidateVar("n", req.Count, fmt.Sprintf("max=%d", maxCount)); ve != nil {
		return req, 0, ve
	}

	// recmode already accepted the spelling.
	mode, _ := recommend.ParseMode(req.Mode)
	return req, mode, nil
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, param, field string) (int, *validation.RequestValidationError) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.FieldErrorf(field, "int", "%s must be an integer", field)
	}
	if ve := validation.ValidateVar(field, id, "gt=0"); ve != nil {
		return 0, ve
	}
	return id, nil
}
