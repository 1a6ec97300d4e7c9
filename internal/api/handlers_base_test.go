// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/teapoio/engage/internal/logging"
	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/recommend"
	"github.com/teapoio/engage/internal/tracking"
)

// fakeStore is an in-memory tracking.Store.
type fakeStore struct {
	content map[models.ContentRef]bool
	stats   map[models.ContentRef]models.ContentStats
	events  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		content: make(map[models.ContentRef]bool),
		stats:   make(map[models.ContentRef]models.ContentStats),
		events:  make(map[string]int),
	}
}

func (s *fakeStore) addContent(ref models.ContentRef) {
	s.content[ref] = true
}

func (s *fakeStore) ContentExists(_ context.Context, ref models.ContentRef) (bool, error) {
	return s.content[ref], nil
}

func (s *fakeStore) RecordInteraction(_ context.Context, userID string, ref models.ContentRef, kind models.InteractionKind, at time.Time) (models.ContentStats, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", userID, kind, ref.Kind, ref.ID)
	s.events[key]++

	stats, ok := s.stats[ref]
	if !ok {
		stats = models.ZeroStats(ref)
	}
	switch kind {
	case models.KindView:
		stats.ViewCount++
	case models.KindClick:
		stats.ClickCount++
	case models.KindLike:
		stats.LikeCount++
	case models.KindBookmark:
		stats.BookmarkCount++
	}
	stats.UpdatedAt = at
	s.stats[ref] = stats
	return stats, nil
}

func (s *fakeStore) GetStats(_ context.Context, ref models.ContentRef) (models.ContentStats, error) {
	if stats, ok := s.stats[ref]; ok {
		return stats, nil
	}
	return models.ZeroStats(ref), nil
}

// fakeProvider is an in-memory recommend.DataProvider.
type fakeProvider struct {
	interactions map[string][]recommend.TaggedInteraction
	items        []recommend.ContentItem
	failWith     error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{interactions: make(map[string][]recommend.TaggedInteraction)}
}

func (p *fakeProvider) UserInteractions(_ context.Context, userID string) ([]recommend.TaggedInteraction, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	return p.interactions[userID], nil
}

func (p *fakeProvider) Candidates(_ context.Context, q recommend.CandidateQuery) ([]recommend.ContentItem, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	var out []recommend.ContentItem
	for _, item := range p.items {
		if item.Kind != q.Kind || item.ID() == q.ExcludeContentID {
			continue
		}
		if !tagsOverlap(item.Tags(), q.Tags) {
			continue
		}
		out = append(out, item)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (p *fakeProvider) RecentPublished(_ context.Context, kind models.ContentKind, limit int) ([]recommend.ContentItem, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	var out []recommend.ContentItem
	for _, item := range p.items {
		if item.Kind != kind {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (p *fakeProvider) GetContent(_ context.Context, kind models.ContentKind, id string) (recommend.ContentItem, error) {
	if p.failWith != nil {
		return recommend.ContentItem{}, p.failWith
	}
	for _, item := range p.items {
		if item.Kind == kind && item.ID() == id {
			return item, nil
		}
	}
	return recommend.ContentItem{}, recommend.ErrNotFound
}

func tagsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// fakePinger reports a configurable database health.
type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func testArticleItem(id string, tags []string, created time.Time) recommend.ContentItem {
	return recommend.ContentItem{
		Kind: models.ContentArticle,
		Article: &models.Article{
			ID:        id,
			Title:     "Article " + id,
			Tags:      tags,
			Published: true,
			CreatedAt: created,
		},
		Stats: models.ZeroStats(models.ContentRef{Kind: models.ContentArticle, ID: id}),
	}
}

func testActivityItem(id string, tags []string, created time.Time) recommend.ContentItem {
	return recommend.ContentItem{
		Kind: models.ContentActivity,
		Activity: &models.Activity{
			ID:        id,
			Title:     "Activity " + id,
			Tags:      tags,
			Published: true,
			CreatedAt: created,
		},
		Stats: models.ZeroStats(models.ContentRef{Kind: models.ContentActivity, ID: id}),
	}
}

// newTestHandlers wires the handler set over in-memory fakes.
func newTestHandlers(t *testing.T, store *fakeStore, provider *fakeProvider, pinger Pinger) *Handlers {
	t.Helper()
	logger := logging.NewTestLogger(io.Discard)

	tracker := tracking.NewTracker(store, logger)
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), provider, logger)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return NewHandlers(tracker, engine, pinger, "test")
}

var errStorage = errors.New("storage unavailable")
