// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/recommend"
	"github.com/teapoio/engage/internal/tracking"
)

// Pinger reports storage liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the request handlers with their collaborators.
type Handlers struct {
	tracker *tracking.Tracker
	engine  *recommend.Engine
	pinger  Pinger
	version string
}

// NewHandlers creates the handler set.
func NewHandlers(tracker *tracking.Tracker, engine *recommend.Engine, pinger Pinger, version string) *Handlers {
	return &Handlers{
		tracker: tracker,
		engine:  engine,
		pinger:  pinger,
		version: version,
	}
}

// Health handles GET /api/v1/health. It reports degraded with a 503 when
// the database is unreachable so load balancers stop routing here.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	httpStatus := http.StatusOK
	checks := map[string]string{"database": "ok"}
	var apiErr *models.APIError

	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["database"] = "unreachable"
			apiErr = &models.APIError{
				Code:    "DATABASE_UNAVAILABLE",
				Message: "Database is unreachable",
			}
		}
	}

	envelope := "success"
	if apiErr != nil {
		envelope = "error"
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: envelope,
		Data: map[string]interface{}{
			"status":  status,
			"version": h.version,
			"checks":  checks,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}
