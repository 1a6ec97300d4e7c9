// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package models

import (
	"fmt"
	"time"
)

// InteractionKind classifies a tracked user-content interaction.
type InteractionKind string

// The four tracked interaction kinds, in ascending signal strength.
const (
	KindView     InteractionKind = "VIEW"
	KindClick    InteractionKind = "CLICK"
	KindLike     InteractionKind = "LIKE"
	KindBookmark InteractionKind = "BOOKMARK"
)

// ParseInteractionKind validates a wire-format interaction kind.
func ParseInteractionKind(s string) (InteractionKind, error) {
	switch k := InteractionKind(s); k {
	case KindView, KindClick, KindLike, KindBookmark:
		return k, nil
	default:
		return "", fmt.Errorf("unknown interaction kind %q", s)
	}
}

// ProfileWeight returns the interest-profile weight of this interaction kind.
// Stronger signals weigh more: BOOKMARK=4, LIKE=3, CLICK=2, VIEW=1.
// Unrecognized kinds fall back to 1 so stale rows never poison a profile.
func (k InteractionKind) ProfileWeight() int {
	switch k {
	case KindBookmark:
		return 4
	case KindLike:
		return 3
	case KindClick:
		return 2
	case KindView:
		return 1
	default:
		return 1
	}
}

// ContentKind discriminates the two content types sharing the interaction
// and stats tables.
type ContentKind string

// Content kinds.
const (
	ContentArticle  ContentKind = "article"
	ContentActivity ContentKind = "activity"
)

// ContentRef identifies exactly one content item.
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	ID   string      `json:"id"`
}

// Interaction is one (user, content, kind) event. The composite unique index
// makes repeat interactions of the same kind an upsert: only CreatedAt is
// refreshed, never a second row.
type Interaction struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	UserID      string          `gorm:"size:36;not null;index;uniqueIndex:idx_interactions_identity" json:"userId"`
	ContentKind ContentKind     `gorm:"size:16;not null;uniqueIndex:idx_interactions_identity" json:"contentKind"`
	ContentID   string          `gorm:"size:36;not null;index;uniqueIndex:idx_interactions_identity" json:"contentId"`
	Kind        InteractionKind `gorm:"size:16;not null;uniqueIndex:idx_interactions_identity" json:"kind"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TableName maps Interaction to the interactions table.
func (Interaction) TableName() string { return "interactions" }

// Content returns the content reference of this interaction.
func (i Interaction) Content() ContentRef {
	return ContentRef{Kind: i.ContentKind, ID: i.ContentID}
}

// ContentStats holds the denormalized counters for one content item, created
// lazily on first interaction. Counters only ever increase; the transaction
// in the tracking store keeps them equal to the number of interaction events
// of each kind.
type ContentStats struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	ContentKind   ContentKind `gorm:"size:16;not null;uniqueIndex:idx_content_stats_content" json:"contentKind"`
	ContentID     string      `gorm:"size:36;not null;uniqueIndex:idx_content_stats_content" json:"contentId"`
	ViewCount     int64       `gorm:"not null;default:0" json:"viewCount"`
	ClickCount    int64       `gorm:"not null;default:0" json:"clickCount"`
	LikeCount     int64       `gorm:"not null;default:0" json:"likeCount"`
	BookmarkCount int64       `gorm:"not null;default:0" json:"bookmarkCount"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TableName maps ContentStats to the content_stats table.
func (ContentStats) TableName() string { return "content_stats" }

// ZeroStats returns the all-zero stats snapshot for content that has never
// been interacted with. Absence of a stats row is not an error.
func ZeroStats(ref ContentRef) ContentStats {
	return ContentStats{ContentKind: ref.Kind, ContentID: ref.ID}
}

// Count returns the counter matching the given interaction kind.
func (s ContentStats) Count(kind InteractionKind) int64 {
	switch kind {
	case KindView:
		return s.ViewCount
	case KindClick:
		return s.ClickCount
	case KindLike:
		return s.LikeCount
	case KindBookmark:
		return s.BookmarkCount
	default:
		return 0
	}
}
