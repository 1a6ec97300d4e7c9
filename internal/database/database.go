// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teapoio/engage/internal/config"
	"github.com/teapoio/engage/internal/logging"
	"github.com/teapoio/engage/internal/models"
)

// DB wraps the GORM handle and exposes the storage operations consumed by
// the tracking and recommendation layers.
type DB struct {
	gorm *gorm.DB
}

// Open connects to Postgres and configures the connection pool. GORM's own
// query logging is silenced; errors surface through the returned values and
// are logged by the callers.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	logging.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connection established")

	return &DB{gorm: gdb}, nil
}

// Migrate creates or updates the tables Engage owns. The content tables are
// owned by the main backend and migrated there; creating them here as well
// keeps standalone development and test databases usable.
func (db *DB) Migrate() error {
	if err := db.gorm.AutoMigrate(
		&models.Interaction{},
		&models.ContentStats{},
		&models.Article{},
		&models.Activity{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
