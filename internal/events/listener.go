// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinesense/internal/logging"
	"github.com/tomtom215/cinesense/internal/metrics"
)

// ReloadSource labels reloads requested through the bus.
const ReloadSource = "event"

// Trigger requests an asynchronous reload. It reports false when the
// request was throttled.
type Trigger interface {
	TriggerReload(source string) bool
}

// Listener turns DatasetUpdated messages into reload requests.
type Listener struct {
	sub     message.Subscriber
	topic   string
	trigger Trigger
	log     zerolog.Logger
}

// NewListener creates a listener. An empty topic uses DefaultTopic.
func NewListener(sub message.Subscriber, topic string, trigger Trigger) *Listener {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Listener{
		sub:     sub,
		topic:   topic,
		trigger: trigger,
		log:     logging.WithComponent("events"),
	}
}

// Topic returns the subscribed topic.
func (l *Listener) Topic() string { return l.topic }

// Run consumes messages until ctx is done or the subscription closes.
func (l *Listener) Run(ctx context.Context) error {
	messages, err := l.sub.Subscribe(ctx, l.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", l.topic, err)
	}
	l.log.Info().Str("topic", l.topic).Msg("Listening for dataset events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			l.handle(msg)
		}
	}
}

// handle always acks. A malformed payload would fail again on redelivery.
func (l *Listener) handle(msg *message.Message) {
	defer msg.Ack()

	e, err := DecodeDatasetUpdated(msg.Payload)
	if err != nil {
		metrics.RecordEvent(l.topic, false)
		l.log.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed dataset event")
		return
	}
	metrics.RecordEvent(l.topic, true)

	accepted := l.trigger.TriggerReload(ReloadSource)
	l.log.Info().
		Str("event_id", e.EventID).
		Str("source", e.Source).
		Str("reason", e.Reason).
		Bool("reload_accepted", accepted).
		Msg("Dataset event received")
}
