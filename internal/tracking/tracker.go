// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package tracking records user-content interaction events and maintains the
// denormalized per-content counters consumed by the recommendation pipeline.
//
// An interaction is unique per (user, content, kind): tracking the same kind
// again refreshes the event timestamp without creating a second row, while
// the matching counter still increments. Both writes happen in one storage
// transaction; a failed counter update fails the whole operation rather than
// leaving silently inconsistent state.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teapoio/engage/internal/models"
)

// Sentinel errors mapped to HTTP status codes at the API layer.
var (
	// ErrInvalidRequest indicates a malformed tracking request: an unknown
	// interaction kind, or not exactly one content reference.
	ErrInvalidRequest = errors.New("invalid interaction request")

	// ErrContentNotFound indicates the referenced content does not exist.
	ErrContentNotFound = errors.New("content not found")
)

// Request is the wire-format tracking payload. Exactly one of ArticleID and
// ActivityID must be set.
type Request struct {
	Kind       string `json:"kind" validate:"required,oneof=VIEW CLICK LIKE BOOKMARK"`
	ArticleID  string `json:"articleId" validate:"omitempty,max=36"`
	ActivityID string `json:"activityId" validate:"omitempty,max=36"`
}

// ContentRef resolves the request's content reference, enforcing the
// exactly-one rule.
func (r Request) ContentRef() (models.ContentRef, error) {
	switch {
	case r.ArticleID != "" && r.ActivityID != "":
		return models.ContentRef{}, fmt.Errorf("%w: both articleId and activityId provided", ErrInvalidRequest)
	case r.ArticleID != "":
		return models.ContentRef{Kind: models.ContentArticle, ID: r.ArticleID}, nil
	case r.ActivityID != "":
		return models.ContentRef{Kind: models.ContentActivity, ID: r.ActivityID}, nil
	default:
		return models.ContentRef{}, fmt.Errorf("%w: articleId or activityId is required", ErrInvalidRequest)
	}
}

// Store is the persistence interface the tracker depends on, implemented by
// the database package.
type Store interface {
	// ContentExists reports whether the referenced content exists.
	ContentExists(ctx context.Context, ref models.ContentRef) (bool, error)

	// RecordInteraction atomically upserts the (user, content, kind) event
	// and increments the matching stats counter, returning the post-update
	// stats snapshot. Both writes share one transaction.
	RecordInteraction(ctx context.Context, userID string, ref models.ContentRef, kind models.InteractionKind, at time.Time) (models.ContentStats, error)

	// GetStats returns the stats row for the content, or a zero-valued
	// snapshot when none exists yet.
	GetStats(ctx context.Context, ref models.ContentRef) (models.ContentStats, error)
}

// Tracker validates and records interaction events.
type Tracker struct {
	store  Store
	logger zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewTracker creates a tracker over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTracker(store Store, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger.With().Str("component", "tracking").Logger(),
		now:    time.Now,
	}
}

// Track validates the request, verifies the content exists, and records the
// interaction. Returns ErrInvalidRequest for malformed input and
// ErrContentNotFound when the referenced content is missing.
func (t *Tracker) Track(ctx context.Context, userID string, req Request) (models.ContentStats, error) {
	kind, err := models.ParseInteractionKind(req.Kind)
	if err != nil {
		return models.ContentStats{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	ref, err := req.ContentRef()
	if err != nil {
		return models.ContentStats{}, err
	}

	exists, err := t.store.ContentExists(ctx, ref)
	if err != nil {
		return models.ContentStats{}, fmt.Errorf("check %s %s: %w", ref.Kind, ref.ID, err)
	}
	if !exists {
		return models.ContentStats{}, fmt.Errorf("%w: %s %s", ErrContentNotFound, ref.Kind, ref.ID)
	}

	stats, err := t.store.RecordInteraction(ctx, userID, ref, kind, t.now())
	if err != nil {
		return models.ContentStats{}, fmt.Errorf("record %s on %s %s: %w", kind, ref.Kind, ref.ID, err)
	}

	t.logger.Debug().
		Str("user_id", userID).
		Str("content_kind", string(ref.Kind)).
		Str("content_id", ref.ID).
		Str("kind", string(kind)).
		Msg("interaction recorded")

	return stats, nil
}

// Stats returns the counters for one content item; content that has never
// been interacted with yields the zero-valued snapshot, not an error.
func (t *Tracker) Stats(ctx context.Context, ref models.ContentRef) (models.ContentStats, error) {
	stats, err := t.store.GetStats(ctx, ref)
	if err != nil {
		return models.ContentStats{}, fmt.Errorf("load stats for %s %s: %w", ref.Kind, ref.ID, err)
	}
	return stats, nil
}
