// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teapoio/engage/internal/models"
)

// Engine orchestrates the recommendation pipeline. It holds no mutable
// state beyond its configuration and is safe for concurrent use; every
// request recomputes from the data provider.
type Engine struct {
	cfg      Config
	provider DataProvider
	scorer   Scorer
	logger   zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewEngine creates an engine with the given policy and data provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}
	return &Engine{
		cfg:      cfg,
		provider: provider,
		scorer:   NewScorer(cfg),
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      time.Now,
	}, nil
}

// ForUser produces general recommendations for a user. The user's interest
// profile is derived from their interaction history; candidates sharing at
// least one interest tag are scored and ranked per content kind. Users with
// no interactions get the most recent published content of each kind with an
// empty UserTags marker instead of an error.
func (e *Engine) ForUser(ctx context.Context, userID string, limit int) (*Recommendations, error) {
	limit = e.clampLimit(limit, e.cfg.DefaultLimit)

	events, err := e.provider.UserInteractions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %s: %w", userID, err)
	}

	userTags := TopTags(events, e.cfg.ProfileSize)
	if len(userTags) == 0 {
		return e.coldStart(ctx, userID, limit)
	}

	now := e.now()

	articles, err := e.personalized(ctx, models.ContentArticle, userID, userTags, limit, now)
	if err != nil {
		return nil, err
	}
	activities, err := e.personalized(ctx, models.ContentActivity, userID, userTags, limit, now)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("user_id", userID).
		Strs("user_tags", userTags).
		Int("articles", len(articles)).
		Int("activities", len(activities)).
		Msg("personalized recommendations computed")

	return &Recommendations{
		Articles:   articles,
		Activities: activities,
		UserTags:   userTags,
	}, nil
}

// personalized retrieves, scores, and ranks candidates of one kind.
func (e *Engine) personalized(ctx context.Context, kind models.ContentKind, userID string, userTags []string, limit int, now time.Time) ([]ScoredItem, error) {
	candidates, err := e.provider.Candidates(ctx, CandidateQuery{
		Kind:              kind,
		Tags:              userTags,
		ExcludeSeenByUser: userID,
		Limit:             e.cfg.CandidateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve %s candidates: %w", kind, err)
	}

	return Rank(e.scoreAll(candidates, userTags, nil, now), limit), nil
}

// coldStart returns the most recent published content of both kinds. The
// empty UserTags slice signals to callers that no profile was available.
func (e *Engine) coldStart(ctx context.Context, userID string, limit int) (*Recommendations, error) {
	articles, err := e.provider.RecentPublished(ctx, models.ContentArticle, limit)
	if err != nil {
		return nil, fmt.Errorf("cold start articles: %w", err)
	}
	activities, err := e.provider.RecentPublished(ctx, models.ContentActivity, limit)
	if err != nil {
		return nil, fmt.Errorf("cold start activities: %w", err)
	}

	e.logger.Debug().Str("user_id", userID).Msg("cold start fallback to recent content")

	return &Recommendations{
		Articles:   wrapUnscored(articles),
		Activities: wrapUnscored(activities),
		UserTags:   []string{},
	}, nil
}

// SimilarTo produces recommendations similar to a seed content item. The
// seed's own tags serve as both the interest and the seed tag sets, so the
// tag-match and seed-similarity components reinforce the same signal; this
// reproduces the platform's established ranking. Returns ErrNotFound when
// the seed does not exist. Already-seen suppression does not apply here;
// only the seed itself is excluded.
func (e *Engine) SimilarTo(ctx context.Context, kind models.ContentKind, contentID string, limit int) (*SimilarResult, error) {
	limit = e.clampLimit(limit, e.cfg.SimilarDefaultLimit)

	seed, err := e.provider.GetContent(ctx, kind, contentID)
	if err != nil {
		return nil, fmt.Errorf("load seed %s/%s: %w", kind, contentID, err)
	}

	seedTags := seed.Tags()
	candidates, err := e.provider.Candidates(ctx, CandidateQuery{
		Kind:             kind,
		Tags:             seedTags,
		ExcludeContentID: contentID,
		Limit:            e.cfg.SimilarCandidateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve similar candidates: %w", err)
	}

	ranked := Rank(e.scoreAll(candidates, seedTags, seedTags, e.now()), limit)

	e.logger.Debug().
		Str("seed_id", contentID).
		Str("kind", string(kind)).
		Int("results", len(ranked)).
		Msg("similar-item recommendations computed")

	return &SimilarResult{
		Recommendations: ranked,
		SeedTags:        seedTags,
	}, nil
}

// scoreAll scores each candidate, preserving retrieval order for the
// ranker's stable tie-break.
func (e *Engine) scoreAll(candidates []ContentItem, interestTags, seedTags []string, now time.Time) []ScoredItem {
	scored := make([]ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		scored = append(scored, ScoredItem{
			Item:         item,
			Score:        e.scorer.Score(item, interestTags, seedTags, now),
			MatchingTags: MatchingTags(item.Tags(), interestTags),
		})
	}
	return scored
}

// wrapUnscored lifts plain content items into the response shape. Cold-start
// lists are ordered by recency, not score, so scores stay zero.
func wrapUnscored(items []ContentItem) []ScoredItem {
	wrapped := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		wrapped = append(wrapped, ScoredItem{Item: item})
	}
	return wrapped
}

func (e *Engine) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}
