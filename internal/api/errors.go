// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cinesense/internal/auth"
	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/recommend"
	"github.com/tomtom215/cinesense/internal/service"
	"github.com/tomtom215/cinesense/internal/validation"
)

// FieldError is one entry of a VALIDATION_FAILED details list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeServiceError maps a service or engine error onto a response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	switch {
	case recommend.IsNotFound(err):
		rw.NotFound(err.Error())
	case recommend.IsInvalidInput(err):
		rw.BadRequest(err.Error())
	case recommend.IsUnavailable(err):
		rw.ServiceUnavailable(err.Error())
	case errors.Is(err, service.ErrReloadThrottled):
		rw.TooManyRequests("reload requested too soon after the previous one")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; status is for the access log only.
		rw.Error(499, ErrCodeTimeout, "request canceled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled service error")
		rw.InternalError("internal server error")
	}
}

func writeValidationError(w http.ResponseWriter, r *http.Request, ve *validation.RequestValidationError) {
	errs := ve.Errors()
	details := make([]FieldError, len(errs))
	for i := range errs {
		details[i] = FieldError{Field: errs[i].Field(), Message: errs[i].Error()}
	}
	NewResponseWriter(w, r).ValidationError(ve.Error(), details)
}

// writeAuthError satisfies auth.ErrorWriter.
func writeAuthError(w http.ResponseWriter, r *http.Request, status int, err error) {
	rw := NewResponseWriter(w, r)
	if status == http.StatusForbidden || errors.Is(err, auth.ErrForbidden) {
		rw.Forbidden(err.Error())
		return
	}
	rw.Unauthorized(err.Error())
}
