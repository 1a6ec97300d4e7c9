// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/models"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (string, json.RawMessage, *models.APIError) {
	t.Helper()
	var resp struct {
		Status string           `json:"status"`
		Data   json.RawMessage  `json:"data"`
		Error  *models.APIError `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	return resp.Status, resp.Data, resp.Error
}

func postInteraction(t *testing.T, h *Handlers, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.TrackInteraction(rec, req)
	return rec
}

func TestTrackInteraction(t *testing.T) {
	store := newFakeStore()
	store.addContent(models.ContentRef{Kind: models.ContentArticle, ID: "a1"})
	h := newTestHandlers(t, store, newFakeProvider(), nil)

	rec := postInteraction(t, h, "user-1", `{"kind":"LIKE","articleId":"a1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	status, data, _ := decodeEnvelope(t, rec)
	if status != "success" {
		t.Errorf("envelope status = %q, want success", status)
	}
	var stats models.ContentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats failed: %v", err)
	}
	if stats.LikeCount != 1 || stats.ContentID != "a1" {
		t.Errorf("stats = %+v, want likeCount 1 for a1", stats)
	}
}

func TestTrackInteractionRepeatIncrementsCounter(t *testing.T) {
	store := newFakeStore()
	store.addContent(models.ContentRef{Kind: models.ContentActivity, ID: "act1"})
	h := newTestHandlers(t, store, newFakeProvider(), nil)

	postInteraction(t, h, "user-1", `{"kind":"VIEW","activityId":"act1"}`)
	rec := postInteraction(t, h, "user-1", `{"kind":"VIEW","activityId":"act1"}`)

	_, data, _ := decodeEnvelope(t, rec)
	var stats models.ContentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats failed: %v", err)
	}
	if stats.ViewCount != 2 {
		t.Errorf("viewCount after repeat = %d, want 2", stats.ViewCount)
	}
}

func TestTrackInteractionRejections(t *testing.T) {
	store := newFakeStore()
	store.addContent(models.ContentRef{Kind: models.ContentArticle, ID: "a1"})
	h := newTestHandlers(t, store, newFakeProvider(), nil)

	tests := []struct {
		name       string
		userID     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"no auth", "", `{"kind":"VIEW","articleId":"a1"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad json", "user-1", `{`, http.StatusBadRequest, "INVALID_BODY"},
		{"unknown kind", "user-1", `{"kind":"SHARE","articleId":"a1"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing kind", "user-1", `{"articleId":"a1"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"no content ref", "user-1", `{"kind":"VIEW"}`, http.StatusBadRequest, "INVALID_INTERACTION"},
		{"both content refs", "user-1", `{"kind":"VIEW","articleId":"a1","activityId":"act1"}`, http.StatusBadRequest, "INVALID_INTERACTION"},
		{"ghost content", "user-1", `{"kind":"VIEW","articleId":"ghost"}`, http.StatusNotFound, "CONTENT_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postInteraction(t, h, tt.userID, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			_, _, apiErr := decodeEnvelope(t, rec)
			if apiErr == nil || apiErr.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", apiErr, tt.wantCode)
			}
		})
	}
}

func statsRequest(t *testing.T, h *Handlers, handler http.HandlerFunc, path, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetArticleStatsZeroForUntouched(t *testing.T) {
	h := newTestHandlers(t, newFakeStore(), newFakeProvider(), nil)

	rec := statsRequest(t, h, h.GetArticleStats, "/api/v1/articles/a9/stats", "a9")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	_, data, _ := decodeEnvelope(t, rec)
	var stats models.ContentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats failed: %v", err)
	}
	if stats.ContentID != "a9" || stats.ViewCount != 0 || stats.BookmarkCount != 0 {
		t.Errorf("stats = %+v, want zero snapshot for a9", stats)
	}
}

func TestGetActivityStatsAfterTracking(t *testing.T) {
	store := newFakeStore()
	ref := models.ContentRef{Kind: models.ContentActivity, ID: "act1"}
	store.addContent(ref)
	h := newTestHandlers(t, store, newFakeProvider(), nil)

	postInteraction(t, h, "user-1", `{"kind":"BOOKMARK","activityId":"act1"}`)

	rec := statsRequest(t, h, h.GetActivityStats, "/api/v1/activities/act1/stats", "act1")
	_, data, _ := decodeEnvelope(t, rec)
	var stats models.ContentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats failed: %v", err)
	}
	if stats.BookmarkCount != 1 {
		t.Errorf("bookmarkCount = %d, want 1", stats.BookmarkCount)
	}
}
