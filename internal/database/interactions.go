// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teapoio/engage/internal/models"
)

// counterColumn maps an interaction kind to its stats counter column.
func counterColumn(kind models.InteractionKind) (string, error) {
	switch kind {
	case models.KindView:
		return "view_count", nil
	case models.KindClick:
		return "click_count", nil
	case models.KindLike:
		return "like_count", nil
	case models.KindBookmark:
		return "bookmark_count", nil
	default:
		return "", fmt.Errorf("no counter column for interaction kind %q", kind)
	}
}

// seededStats returns the stats row to insert when the content has no stats
// yet: the matching counter starts at 1.
func seededStats(ref models.ContentRef, kind models.InteractionKind, at time.Time) models.ContentStats {
	stats := models.ZeroStats(ref)
	stats.UpdatedAt = at
	switch kind {
	case models.KindView:
		stats.ViewCount = 1
	case models.KindClick:
		stats.ClickCount = 1
	case models.KindLike:
		stats.LikeCount = 1
	case models.KindBookmark:
		stats.BookmarkCount = 1
	}
	return stats
}

// ContentExists reports whether the referenced article or activity exists.
func (db *DB) ContentExists(ctx context.Context, ref models.ContentRef) (bool, error) {
	tx := db.gorm.WithContext(ctx)
	switch ref.Kind {
	case models.ContentArticle:
		tx = tx.Model(&models.Article{})
	case models.ContentActivity:
		tx = tx.Model(&models.Activity{})
	default:
		return false, fmt.Errorf("unknown content kind %q", ref.Kind)
	}

	var count int64
	if err := tx.Where("id = ?", ref.ID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check content existence: %w", err)
	}
	return count > 0, nil
}

// RecordInteraction upserts the interaction event and increments the stats
// counter in one transaction. Repeating the same interaction refreshes the
// event's timestamp instead of inserting a duplicate row, but the counter
// still increments: counters track total occurrences, the event row tracks
// distinct (user, content, kind) pairs.
func (db *DB) RecordInteraction(ctx context.Context, userID string, ref models.ContentRef, kind models.InteractionKind, at time.Time) (models.ContentStats, error) {
	column, err := counterColumn(kind)
	if err != nil {
		return models.ContentStats{}, err
	}

	var stats models.ContentStats
	err = db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := models.Interaction{
			UserID:      userID,
			ContentKind: ref.Kind,
			ContentID:   ref.ID,
			Kind:        kind,
			CreatedAt:   at,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "content_kind"},
				{Name: "content_id"}, {Name: "kind"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{"created_at": at}),
		}).Create(&event).Error; err != nil {
			return fmt.Errorf("upsert interaction: %w", err)
		}

		seed := seededStats(ref, kind, at)
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "content_kind"}, {Name: "content_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				column:       gorm.Expr(column + " + 1"),
				"updated_at": at,
			}),
		}).Create(&seed).Error; err != nil {
			return fmt.Errorf("upsert stats: %w", err)
		}

		if err := tx.Where("content_kind = ? AND content_id = ?", ref.Kind, ref.ID).
			Take(&stats).Error; err != nil {
			return fmt.Errorf("reload stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.ContentStats{}, err
	}
	return stats, nil
}

// GetStats returns the stats row for the content, or a zero-valued snapshot
// when no interaction has ever touched it.
func (db *DB) GetStats(ctx context.Context, ref models.ContentRef) (models.ContentStats, error) {
	var stats models.ContentStats
	err := db.gorm.WithContext(ctx).
		Where("content_kind = ? AND content_id = ?", ref.Kind, ref.ID).
		Take(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ZeroStats(ref), nil
	}
	if err != nil {
		return models.ContentStats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}
