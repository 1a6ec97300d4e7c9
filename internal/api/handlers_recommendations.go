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

	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/metrics"
	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/recommend"
)

// GetRecommendations handles GET /api/v1/recommendations. The feed is
// personalized from the authenticated user's interaction history; users
// without history fall back to recent published content.
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	recs, err := h.engine.ForUser(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to generate recommendations", err)
		return
	}
	elapsed := time.Since(start)

	mode := "personalized"
	if len(recs.UserTags) == 0 {
		mode = "cold_start"
	}
	metrics.RecordRecommendation(mode, len(recs.Articles)+len(recs.Activities), elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   recs,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}

// GetSimilarArticles handles GET /api/v1/recommendations/articles/{id}.
func (h *Handlers) GetSimilarArticles(w http.ResponseWriter, r *http.Request) {
	h.similar(w, r, models.ContentArticle)
}

// GetSimilarActivities handles GET /api/v1/recommendations/activities/{id}.
func (h *Handlers) GetSimilarActivities(w http.ResponseWriter, r *http.Request) {
	h.similar(w, r, models.ContentActivity)
}

// similar serves content similar to a seed item, ranked by tag overlap with
// the seed's tags. Unlike the personalized feed it needs no authentication.
func (h *Handlers) similar(w http.ResponseWriter, r *http.Request, kind models.ContentKind) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_CONTENT_ID", "Content ID is required", nil)
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	result, err := h.engine.SimilarTo(r.Context(), kind, id, limit)
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		respondError(w, http.StatusNotFound, "CONTENT_NOT_FOUND", "Seed content does not exist", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to find similar content", err)
		return
	}
	elapsed := time.Since(start)

	metrics.RecordRecommendation("similar", len(result.Recommendations), elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}
