// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

/*
Package supervisor runs the long-lived services under a suture tree.

	cinesense (root)
	├── data-layer       RefreshService (initial load, periodic and on-demand reloads)
	├── messaging-layer  EventsService (dataset.updated listener, optional)
	└── api-layer        HTTPServerService

A service that returns an error is restarted with backoff. When a layer
keeps failing past FailureThreshold it is restarted as a whole after
FailureBackoff. Supervisor events are logged through sutureslog.
*/
package supervisor
