// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrNotFound is returned for unknown users (no rating history) and unknown movies.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the engine or scorer has not been initialized.
	ErrUnavailable = errors.New("unavailable")

	// ErrInvalidInput is returned for invalid request arguments such as n <= 0.
	ErrInvalidInput = errors.New("invalid input")
)

// Error is a typed failure carrying the operation and the error kind.
type Error struct {
	// Op is the operation that failed (e.g., "recommend_diverse").
	Op string

	// Kind is one of ErrNotFound, ErrUnavailable or ErrInvalidInput.
	Kind error

	// Msg is a human-readable detail.
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the error kind so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(op, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func unavailable(op, msg string) error {
	return &Error{Op: op, Kind: ErrUnavailable, Msg: msg}
}

func invalidInput(op, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// NewError builds a typed error for scorer implementations outside this package.
func NewError(op string, kind error, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err is an unavailable failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsInvalidInput reports whether err is an invalid-input failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
