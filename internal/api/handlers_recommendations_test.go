// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/teapoio/engage/internal/auth"
	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/recommend"
)

func getRecommendations(t *testing.T, h *Handlers, userID, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations"+query, nil)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.GetRecommendations(rec, req)
	return rec
}

func getSimilar(t *testing.T, h *Handlers, handler http.HandlerFunc, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/articles/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetRecommendationsRequiresAuth(t *testing.T) {
	h := newTestHandlers(t, newFakeStore(), newFakeProvider(), nil)

	rec := getRecommendations(t, h, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetRecommendationsColdStart(t *testing.T) {
	provider := newFakeProvider()
	created := time.Now().Add(-24 * time.Hour)
	provider.items = []recommend.ContentItem{
		testArticleItem("a1", []string{"sono"}, created),
		testActivityItem("act1", []string{"rotina"}, created),
	}
	h := newTestHandlers(t, newFakeStore(), provider, nil)

	rec := getRecommendations(t, h, "new-user", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	_, data, _ := decodeEnvelope(t, rec)
	var recs recommend.Recommendations
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("decoding recommendations failed: %v", err)
	}
	if recs.UserTags == nil || len(recs.UserTags) != 0 {
		t.Errorf("userTags = %v, want empty but present", recs.UserTags)
	}
	if len(recs.Articles) != 1 || len(recs.Activities) != 1 {
		t.Errorf("got %d articles / %d activities, want 1 / 1", len(recs.Articles), len(recs.Activities))
	}
}

func TestGetRecommendationsPersonalized(t *testing.T) {
	provider := newFakeProvider()
	created := time.Now().Add(-24 * time.Hour)
	provider.items = []recommend.ContentItem{
		testArticleItem("a1", []string{"sono", "bebe"}, created),
		testArticleItem("a2", []string{"culinaria"}, created),
	}
	provider.interactions["user-1"] = []recommend.TaggedInteraction{
		{Kind: models.KindBookmark, Tags: []string{"sono", "bebe"}, CreatedAt: created},
	}
	h := newTestHandlers(t, newFakeStore(), provider, nil)

	rec := getRecommendations(t, h, "user-1", "?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	_, data, _ := decodeEnvelope(t, rec)
	var recs recommend.Recommendations
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("decoding recommendations failed: %v", err)
	}
	if len(recs.UserTags) != 2 {
		t.Errorf("userTags = %v, want the two profile tags", recs.UserTags)
	}
	if len(recs.Articles) != 1 || recs.Articles[0].Item.ID() != "a1" {
		t.Fatalf("articles = %+v, want only the tag-matching a1", recs.Articles)
	}
	if recs.Articles[0].MatchingTags != 2 {
		t.Errorf("matchingTags = %d, want 2", recs.Articles[0].MatchingTags)
	}
}

func TestGetRecommendationsStorageError(t *testing.T) {
	provider := newFakeProvider()
	provider.failWith = errStorage
	h := newTestHandlers(t, newFakeStore(), provider, nil)

	rec := getRecommendations(t, h, "user-1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	_, _, apiErr := decodeEnvelope(t, rec)
	if apiErr == nil || apiErr.Code != "RECOMMENDATION_ERROR" {
		t.Errorf("error = %+v, want RECOMMENDATION_ERROR", apiErr)
	}
}

func TestGetSimilarArticles(t *testing.T) {
	provider := newFakeProvider()
	created := time.Now().Add(-24 * time.Hour)
	provider.items = []recommend.ContentItem{
		testArticleItem("seed", []string{"sono", "rotina"}, created),
		testArticleItem("a2", []string{"sono"}, created),
		testArticleItem("a3", []string{"culinaria"}, created),
	}
	h := newTestHandlers(t, newFakeStore(), provider, nil)

	rec := getSimilar(t, h, h.GetSimilarArticles, "seed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	_, data, _ := decodeEnvelope(t, rec)
	var result recommend.SimilarResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decoding result failed: %v", err)
	}
	if len(result.SeedTags) != 2 {
		t.Errorf("seedTags = %v, want the seed's two tags", result.SeedTags)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Item.ID() != "a2" {
		t.Errorf("recommendations = %+v, want only a2", result.Recommendations)
	}
}

func TestGetSimilarArticlesSeedNotFound(t *testing.T) {
	h := newTestHandlers(t, newFakeStore(), newFakeProvider(), nil)

	rec := getSimilar(t, h, h.GetSimilarArticles, "ghost")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	_, _, apiErr := decodeEnvelope(t, rec)
	if apiErr == nil || apiErr.Code != "CONTENT_NOT_FOUND" {
		t.Errorf("error = %+v, want CONTENT_NOT_FOUND", apiErr)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name         string
		pinger       Pinger
		wantStatus   int
		wantEnvelope string
		wantErrCode  string
	}{
		{"healthy", &fakePinger{}, http.StatusOK, "success", ""},
		{"degraded", &fakePinger{err: errStorage}, http.StatusServiceUnavailable, "error", "DATABASE_UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(t, newFakeStore(), newFakeProvider(), tt.pinger)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			rec := httptest.NewRecorder()
			h.Health(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			status, _, apiErr := decodeEnvelope(t, rec)
			if status != tt.wantEnvelope {
				t.Errorf("envelope status = %q, want %q", status, tt.wantEnvelope)
			}
			if tt.wantErrCode == "" {
				if apiErr != nil {
					t.Errorf("unexpected error payload: %+v", apiErr)
				}
			} else {
				if apiErr == nil {
					t.Fatal("expected error payload, got none")
				}
				if apiErr.Code != tt.wantErrCode {
					t.Errorf("error code = %q, want %q", apiErr.Code, tt.wantErrCode)
				}
			}
		})
	}
}
