// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/teapoio/engage/internal/models"
)

// ErrNotFound is returned when a referenced content item (typically the seed
// of a similar-item request) does not exist. DataProvider implementations
// translate their storage-level not-found errors to this sentinel.
var ErrNotFound = errors.New("content not found")

// ContentItem is the tagged union of the two content kinds, carrying the
// stats snapshot used for popularity scoring. Exactly one of Article or
// Activity is set, matching Kind.
type ContentItem struct {
	Kind     models.ContentKind  `json:"kind"`
	Article  *models.Article     `json:"article,omitempty"`
	Activity *models.Activity    `json:"activity,omitempty"`
	Stats    models.ContentStats `json:"stats"`
}

// ID returns the content item's identifier.
func (c ContentItem) ID() string {
	if c.Article != nil {
		return c.Article.ID
	}
	if c.Activity != nil {
		return c.Activity.ID
	}
	return ""
}

// Tags returns the content item's tag set.
func (c ContentItem) Tags() []string {
	if c.Article != nil {
		return c.Article.Tags
	}
	if c.Activity != nil {
		return c.Activity.Tags
	}
	return nil
}

// CreatedAt returns the content item's creation time.
func (c ContentItem) CreatedAt() time.Time {
	if c.Article != nil {
		return c.Article.CreatedAt
	}
	if c.Activity != nil {
		return c.Activity.CreatedAt
	}
	return time.Time{}
}

// ScoredItem is a candidate with its composite relevance score and the number
// of interest tags it matched, kept for explainability in API responses.
type ScoredItem struct {
	Item         ContentItem `json:"item"`
	Score        float64     `json:"score"`
	MatchingTags int         `json:"matchingTags"`
}

// TaggedInteraction is the profile extractor's view of one interaction
// event: the kind and the tag set of the content it touched.
type TaggedInteraction struct {
	Kind      models.InteractionKind `json:"kind"`
	Tags      []string               `json:"tags"`
	CreatedAt time.Time              `json:"createdAt"`
}

// CandidateQuery is the typed query specification for candidate retrieval.
// Items qualify when they are published and their tag set intersects Tags in
// at least one element.
type CandidateQuery struct {
	// Kind selects the content table to search.
	Kind models.ContentKind

	// Tags is the query tag set; at least one must match.
	Tags []string

	// ExcludeSeenByUser, when non-empty, removes content for which this user
	// already has a VIEW or CLICK event. LIKE and BOOKMARK alone do not
	// suppress, so bookmarked items a user wants to revisit stay eligible.
	ExcludeSeenByUser string

	// ExcludeContentID, when non-empty, removes that single item (the seed
	// in similar-item mode).
	ExcludeContentID string

	// Limit caps the fetch, bounding downstream scoring cost.
	Limit int
}

// DataProvider is the storage interface consumed by the Engine. It is
// implemented by the database package; tests use in-memory fakes.
type DataProvider interface {
	// UserInteractions returns all of the user's interaction events joined
	// with their content's tags, most recent first.
	UserInteractions(ctx context.Context, userID string) ([]TaggedInteraction, error)

	// Candidates returns published content matching the query specification.
	Candidates(ctx context.Context, q CandidateQuery) ([]ContentItem, error)

	// RecentPublished returns the most recently created published content of
	// the given kind, for the cold-start fallback.
	RecentPublished(ctx context.Context, kind models.ContentKind, limit int) ([]ContentItem, error)

	// GetContent returns one content item with its stats snapshot, or
	// ErrNotFound.
	GetContent(ctx context.Context, kind models.ContentKind, id string) (ContentItem, error)
}

// Recommendations is the general-mode response: ranked items per content
// kind plus the interest tags that drove the ranking. UserTags is empty (but
// present) for cold-start users, whose lists fall back to recent content.
type Recommendations struct {
	Articles   []ScoredItem `json:"articles"`
	Activities []ScoredItem `json:"activities"`
	UserTags   []string     `json:"userTags"`
}

// SimilarResult is the similar-item response: ranked items of the seed's
// kind plus the seed tags the scoring used.
type SimilarResult struct {
	Recommendations []ScoredItem `json:"recommendations"`
	SeedTags        []string     `json:"seedTags"`
}
