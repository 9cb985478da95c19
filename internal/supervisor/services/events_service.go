// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventListener consumes bus messages until its context ends.
type EventListener interface {
	Run(ctx context.Context) error
}

// EventsService runs the dataset event listener. The subscriber it reads
// from is owned by the caller and closed after the tree stops, so a
// restarted service can subscribe again.
type EventsService struct {
	listener EventListener
	name     string
}

// NewEventsService wraps listener.
func NewEventsService(listener EventListener) *EventsService {
	return &EventsService{
		listener: listener,
		name:     "events-listener",
	}
}

// Serve implements suture.Service.
func (s *EventsService) Serve(ctx context.Context) error {
	err := s.listener.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("subscription closed")
	}
	return fmt.Errorf("events listener: %w", err)
}

func (s *EventsService) String() string {
	return s.name
}
