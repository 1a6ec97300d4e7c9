// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Command server runs the Engage HTTP service: interaction tracking,
// per-content statistics, and tag-based content recommendations.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teapoio/engage/internal/api"
	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/config"
	"github.com/teapoio/engage/internal/database"
	"github.com/teapoio/engage/internal/logging"
	"github.com/teapoio/engage/internal/recommend"
	"github.com/teapoio/engage/internal/tracking"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("version", version).Msg("Starting Engage server")

	db, err := database.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if err := db.Migrate(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	tracker := tracking.NewTracker(db, logging.Logger())

	engineCfg := recommend.DefaultConfig()
	engineCfg.ProfileSize = cfg.Recommend.ProfileSize
	engineCfg.CandidateLimit = cfg.Recommend.CandidateLimit
	engineCfg.SimilarCandidateLimit = cfg.Recommend.SimilarCandidateLimit
	engineCfg.DefaultLimit = cfg.Recommend.DefaultLimit
	engineCfg.SimilarDefaultLimit = cfg.Recommend.SimilarDefaultLimit
	engineCfg.MaxLimit = cfg.Recommend.MaxLimit

	provider := database.NewRecommendationProvider(db)
	engine, err := recommend.NewEngine(engineCfg, provider, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	handlers := api.NewHandlers(tracker, engine, db, version)
	router := api.NewRouter(handlers, jwtManager, cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Fatal().Err(err).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		return
	}
	logging.Info().Msg("Server stopped")
}
