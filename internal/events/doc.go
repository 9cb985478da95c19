// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package events connects the service to a NATS message bus through Watermill.

Data pipelines announce a new dataset by publishing a DatasetUpdated event
(JSON) on the configured topic, dataset.updated by default. A Listener
consumes the topic and asks a Trigger to reload; reloads are coalesced and
rate limited by the trigger, so bursts of events cost one reload.

Core NATS (JetStream disabled) is used: a missed notification is recovered
by the periodic refresh, so at-most-once delivery is enough. Replicas share
a queue group only when configured; with an empty QueueGroup every replica
receives every event, which is usually what a reload notification wants.
*/
package events
