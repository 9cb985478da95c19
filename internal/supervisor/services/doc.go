// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package services adapts the server's long-running components to
// suture.Service. Each Serve blocks until its context is canceled and
// returns an error only for failures the supervisor should restart on.
package services
