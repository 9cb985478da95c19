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

// Postgres container defaults.
const (
	DefaultPostgresImage = "postgres:16-alpine"
	postgresUser         = "cinesense"
	postgresPassword     = "cinesense"
	postgresDB           = "cinesense"
)

// PostgresContainer is a running PostgreSQL server.
type PostgresContainer struct {
	testcontainers.Container

	// DSN is a postgres:// connection string for pgxpool.
	DSN string
}

// NewPostgresContainer starts a throwaway PostgreSQL server with an empty
// database. Tests create their own schema.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	container, host, err := startContainer(ctx, testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// The server logs readiness twice: once for the init run, once for real.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN: fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			postgresUser, postgresPassword, host, port.Port(), postgresDB),
	}, nil
}
