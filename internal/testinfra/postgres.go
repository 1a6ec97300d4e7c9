// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Default Postgres container settings.
const (
	DefaultPostgresImage = "postgres:16-alpine"
	DefaultPostgresPort  = "5432"
	defaultPostgresUser  = "engage_test"
	defaultPostgresPass  = "engage_test"
	defaultPostgresDB    = "engage_test"
)

// PostgresContainer wraps a running Postgres container with its DSN.
type PostgresContainer struct {
	testcontainers.Container
	DSN string
}

// postgresConfig holds container options.
type postgresConfig struct {
	image        string
	startTimeout time.Duration
}

// PostgresOption configures the Postgres container.
type PostgresOption func(*postgresConfig)

// WithPostgresImage overrides the container image.
func WithPostgresImage(image string) PostgresOption {
	return func(cfg *postgresConfig) {
		cfg.image = image
	}
}

// NewPostgresContainer creates and starts a Postgres container for testing.
//
// Example:
//
//	ctx := context.Background()
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer pg.Terminate(ctx)
//
//	db, err := database.Open(config.DatabaseConfig{URL: pg.DSN})
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultPostgresPort + "/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     defaultPostgresUser,
			"POSTGRES_PASSWORD": defaultPostgresPass,
			"POSTGRES_DB":       defaultPostgresDB,
		},
		WaitingFor: wait.ForAll(
			// Postgres restarts once during init; the second "ready" line
			// marks the final server.
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(DefaultPostgresPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultPostgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		defaultPostgresUser, defaultPostgresPass, host, port.Port(), defaultPostgresDB)

	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
	}, nil
}
