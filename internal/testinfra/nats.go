// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultNATSImage is the NATS image used by integration tests.
const DefaultNATSImage = "nats:2.10-alpine"

// NATSContainer is a running NATS server.
type NATSContainer struct {
	testcontainers.Container

	// URL is a nats:// client URL.
	URL string
}

// NewNATSContainer starts a throwaway NATS server.
func NewNATSContainer(ctx context.Context) (*NATSContainer, error) {
	container, host, err := startContainer(ctx, testcontainers.ContainerRequest{
		Image:        DefaultNATSImage,
		ExposedPorts: []string{"4222/tcp"},
		WaitingFor:   wait.ForLog("Server is ready").WithStartupTimeout(60 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("create nats container: %w", err)
	}

	port, err := container.MappedPort(ctx, "4222/tcp")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}
