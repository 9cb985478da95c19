// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package validation wraps go-playground/validator v10 for API request
// structs.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in errors use the
// struct's query or json tag so messages match the parameter the client sent.
//
// Besides the built-in tags, "recmode" accepts any recommendation mode name
// understood by recommend.ParseMode.
//
//	type recommendationsQuery struct {
//	    N    int    `query:"n" validate:"min=1"`
//	    Mode string `query:"mode" validate:"omitempty,recmode"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    writeValidationError(w, r, verr)
//	}
package validation
