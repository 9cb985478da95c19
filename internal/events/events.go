// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// DefaultTopic is the topic dataset notifications are published on.
const DefaultTopic = "dataset.updated"

// DatasetUpdated announces that the movie or rating data changed.
type DatasetUpdated struct {
	EventID    string    `json:"event_id"`
	Source     string    `json:"source"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewDatasetUpdated creates an event with a fresh ID.
func NewDatasetUpdated(source, reason string) DatasetUpdated {
	return DatasetUpdated{
		EventID:    uuid.NewString(),
		Source:     source,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (e *DatasetUpdated) Validate() error {
	if e.EventID == "" {
		return errors.New("event_id is required")
	}
	if e.Source == "" {
		return errors.New("source is required")
	}
	return nil
}

// Message encodes the event as a Watermill message. The message UUID is
// the event ID.
func (e *DatasetUpdated) Message() (*message.Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(e.EventID, payload)
	msg.Metadata.Set("content_type", "application/json")
	return msg, nil
}

// DecodeDatasetUpdated parses and validates a message payload.
func DecodeDatasetUpdated(payload []byte) (*DatasetUpdated, error) {
	var e DatasetUpdated
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return &e, nil
}
