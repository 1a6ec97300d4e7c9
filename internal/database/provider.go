// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/teapoio/engage/internal/models"
	"github.com/teapoio/engage/internal/recommend"
)

// seenKinds are the interaction kinds that mark content as already consumed.
// LIKE and BOOKMARK alone never suppress a candidate.
var seenKinds = []models.InteractionKind{models.KindView, models.KindClick}

// RecommendationProvider implements recommend.DataProvider on top of the
// shared Postgres schema.
type RecommendationProvider struct {
	db *DB
}

// NewRecommendationProvider returns a provider backed by db.
func NewRecommendationProvider(db *DB) *RecommendationProvider {
	return &RecommendationProvider{db: db}
}

// UserInteractions returns the user's interaction events joined with the
// tags of the content they touched, most recent first. Events whose content
// has since been deleted keep an empty tag set rather than disappearing.
func (p *RecommendationProvider) UserInteractions(ctx context.Context, userID string) ([]recommend.TaggedInteraction, error) {
	var events []models.Interaction
	if err := p.db.gorm.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load user interactions: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	var articleIDs, activityIDs []string
	for _, ev := range events {
		switch ev.ContentKind {
		case models.ContentArticle:
			articleIDs = append(articleIDs, ev.ContentID)
		case models.ContentActivity:
			activityIDs = append(activityIDs, ev.ContentID)
		}
	}

	articleTags, err := p.tagsByID(ctx, &models.Article{}, articleIDs)
	if err != nil {
		return nil, err
	}
	activityTags, err := p.tagsByID(ctx, &models.Activity{}, activityIDs)
	if err != nil {
		return nil, err
	}

	out := make([]recommend.TaggedInteraction, 0, len(events))
	for _, ev := range events {
		var tags []string
		switch ev.ContentKind {
		case models.ContentArticle:
			tags = articleTags[ev.ContentID]
		case models.ContentActivity:
			tags = activityTags[ev.ContentID]
		}
		out = append(out, recommend.TaggedInteraction{
			Kind:      ev.Kind,
			Tags:      tags,
			CreatedAt: ev.CreatedAt,
		})
	}
	return out, nil
}

// taggedRow is the projection used when batch-loading content tags.
type taggedRow struct {
	ID   string         `gorm:"column:id"`
	Tags pq.StringArray `gorm:"column:tags;type:text[]"`
}

func (p *RecommendationProvider) tagsByID(ctx context.Context, model interface{}, ids []string) (map[string][]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []taggedRow
	if err := p.db.gorm.WithContext(ctx).
		Model(model).
		Select("id, tags").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load content tags: %w", err)
	}
	out := make(map[string][]string, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Tags
	}
	return out, nil
}

// Candidates returns published content whose tag set overlaps the query tags,
// applying the query's seen-content and seed exclusions.
func (p *RecommendationProvider) Candidates(ctx context.Context, q recommend.CandidateQuery) ([]recommend.ContentItem, error) {
	if len(q.Tags) == 0 {
		return nil, nil
	}

	tx := p.db.gorm.WithContext(ctx).
		Where("published = ?", true).
		Where("tags && ?", pq.Array(q.Tags))
	if q.ExcludeContentID != "" {
		tx = tx.Where("id <> ?", q.ExcludeContentID)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	tx = tx.Order("created_at DESC")

	switch q.Kind {
	case models.ContentArticle:
		if q.ExcludeSeenByUser != "" {
			tx = tx.Where(
				"NOT EXISTS (SELECT 1 FROM interactions WHERE interactions.user_id = ? AND interactions.content_kind = ? AND interactions.content_id = articles.id AND interactions.kind IN ?)",
				q.ExcludeSeenByUser, models.ContentArticle, seenKinds,
			)
		}
		var rows []models.Article
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load article candidates: %w", err)
		}
		return p.wrapArticles(ctx, rows)
	case models.ContentActivity:
		if q.ExcludeSeenByUser != "" {
			tx = tx.Where(
				"NOT EXISTS (SELECT 1 FROM interactions WHERE interactions.user_id = ? AND interactions.content_kind = ? AND interactions.content_id = activities.id AND interactions.kind IN ?)",
				q.ExcludeSeenByUser, models.ContentActivity, seenKinds,
			)
		}
		var rows []models.Activity
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load activity candidates: %w", err)
		}
		return p.wrapActivities(ctx, rows)
	default:
		return nil, fmt.Errorf("unknown content kind %q", q.Kind)
	}
}

// RecentPublished returns the most recently created published content of the
// given kind, used for cold-start users without an interest profile.
func (p *RecommendationProvider) RecentPublished(ctx context.Context, kind models.ContentKind, limit int) ([]recommend.ContentItem, error) {
	tx := p.db.gorm.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	switch kind {
	case models.ContentArticle:
		var rows []models.Article
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load recent articles: %w", err)
		}
		return p.wrapArticles(ctx, rows)
	case models.ContentActivity:
		var rows []models.Activity
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load recent activities: %w", err)
		}
		return p.wrapActivities(ctx, rows)
	default:
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
}

// GetContent returns one content item with its stats snapshot.
func (p *RecommendationProvider) GetContent(ctx context.Context, kind models.ContentKind, id string) (recommend.ContentItem, error) {
	switch kind {
	case models.ContentArticle:
		var row models.Article
		err := p.db.gorm.WithContext(ctx).Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recommend.ContentItem{}, recommend.ErrNotFound
		}
		if err != nil {
			return recommend.ContentItem{}, fmt.Errorf("load article: %w", err)
		}
		items, err := p.wrapArticles(ctx, []models.Article{row})
		if err != nil {
			return recommend.ContentItem{}, err
		}
		return items[0], nil
	case models.ContentActivity:
		var row models.Activity
		err := p.db.gorm.WithContext(ctx).Where("id = ?", id).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recommend.ContentItem{}, recommend.ErrNotFound
		}
		if err != nil {
			return recommend.ContentItem{}, fmt.Errorf("load activity: %w", err)
		}
		items, err := p.wrapActivities(ctx, []models.Activity{row})
		if err != nil {
			return recommend.ContentItem{}, err
		}
		return items[0], nil
	default:
		return recommend.ContentItem{}, fmt.Errorf("unknown content kind %q", kind)
	}
}

func (p *RecommendationProvider) wrapArticles(ctx context.Context, rows []models.Article) ([]recommend.ContentItem, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	stats, err := p.statsByID(ctx, models.ContentArticle, ids)
	if err != nil {
		return nil, err
	}
	items := make([]recommend.ContentItem, len(rows))
	for i := range rows {
		row := rows[i]
		items[i] = recommend.ContentItem{
			Kind:    models.ContentArticle,
			Article: &row,
			Stats:   statsOrZero(stats, models.ContentArticle, row.ID),
		}
	}
	return items, nil
}

func (p *RecommendationProvider) wrapActivities(ctx context.Context, rows []models.Activity) ([]recommend.ContentItem, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	stats, err := p.statsByID(ctx, models.ContentActivity, ids)
	if err != nil {
		return nil, err
	}
	items := make([]recommend.ContentItem, len(rows))
	for i := range rows {
		row := rows[i]
		items[i] = recommend.ContentItem{
			Kind:     models.ContentActivity,
			Activity: &row,
			Stats:    statsOrZero(stats, models.ContentActivity, row.ID),
		}
	}
	return items, nil
}

// statsByID batch-loads stats rows for the given content ids.
func (p *RecommendationProvider) statsByID(ctx context.Context, kind models.ContentKind, ids []string) (map[string]models.ContentStats, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ContentStats
	if err := p.db.gorm.WithContext(ctx).
		Where("content_kind = ? AND content_id IN ?", kind, ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load content stats: %w", err)
	}
	out := make(map[string]models.ContentStats, len(rows))
	for _, r := range rows {
		out[r.ContentID] = r
	}
	return out, nil
}

// statsOrZero returns the loaded stats row or a zero snapshot. Content never
// interacted with has no stats row and scores zero popularity.
func statsOrZero(stats map[string]models.ContentStats, kind models.ContentKind, id string) models.ContentStats {
	if s, ok := stats[id]; ok {
		return s
	}
	return models.ZeroStats(models.ContentRef{Kind: kind, ID: id})
}
