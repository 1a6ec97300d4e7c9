// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/metrics"
	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/tracking"
	"github.com/teapoio/engage/internal/validation"
)

// TrackInteraction handles POST /api/v1/interactions. The interaction is
// attributed to the authenticated user; the body names the kind and exactly
// one content reference. The response carries the post-update counters.
func (h *Handlers) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req tracking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordInteractionRejected("invalid")
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordInteractionRejected("invalid")
		respondValidationError(w, verr)
		return
	}

	start := time.Now()
	stats, err := h.tracker.Track(r.Context(), userID, req)
	switch {
	case errors.Is(err, tracking.ErrInvalidRequest):
		metrics.RecordInteractionRejected("invalid")
		respondError(w, http.StatusBadRequest, "INVALID_INTERACTION", err.Error(), nil)
		return
	case errors.Is(err, tracking.ErrContentNotFound):
		metrics.RecordInteractionRejected("not_found")
		respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Referenced content does not exist", nil)
		return
	case err != nil:
		metrics.RecordInteractionRejected("error")
		respondError(w, http.StatusInternalServerError, "TRACKING_ERROR", "Failed to record interaction", err)
		return
	}

	metrics.RecordInteraction(req.Kind, string(stats.ContentKind))
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GetArticleStats handles GET /api/v1/articles/{id}/stats.
func (h *Handlers) GetArticleStats(w http.ResponseWriter, r *http.Request) {
	h.contentStats(w, r, models.ContentArticle)
}

// GetActivityStats handles GET /api/v1/activities/{id}/stats.
func (h *Handlers) GetActivityStats(w http.ResponseWriter, r *http.Request) {
	h.contentStats(w, r, models.ContentActivity)
}

// contentStats serves the counters for one content item. Content that was
// never interacted with gets an all-zero snapshot rather than a 404; the
// stats endpoints do not confirm content existence.
func (h *Handlers) contentStats(w http.ResponseWriter, r *http.Request, kind models.ContentKind) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_CONTENT_ID", "Content ID is required", nil)
		return
	}

	start := time.Now()
	stats, err := h.tracker.Stats(r.Context(), models.ContentRef{Kind: kind, ID: id})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STATS_ERROR", "Failed to load statistics", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
