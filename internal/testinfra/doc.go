// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package testinfra provides test infrastructure for integration testing
// with containers.
//
// This package uses testcontainers-go to manage Docker containers for
// integration tests, so the SQL semantics the storage layer depends on
// (ON CONFLICT upserts, text[] overlap operators, NOT EXISTS subqueries)
// are exercised against a real Postgres instead of reimplemented in fakes.
//
// # Postgres Container
//
//	func TestStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer pg.Terminate(ctx)
//
//	    db, err := database.Open(config.DatabaseConfig{URL: pg.DSN})
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker and are built only with the integration tag:
//
//	go test -tags integration ./...
//
// Tests skip gracefully when Docker is unavailable. First run downloads the
// container image; subsequent runs use the cache.
package testinfra
