// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import "fmt"

// Config contains the numeric policy and operational limits of the
// recommendation pipeline. The scoring weights mirror the platform's
// long-standing blend: tag match dominates (40), popularity contributes up to
// 30 (log-dampened), recency up to 20 over a 30-day window, and seed
// similarity adds up to 10 in similar-item mode.
type Config struct {
	// TagMatchWeight scales the interest-tag overlap ratio.
	TagMatchWeight float64 `json:"tag_match_weight"`

	// PopularityViewWeight scales log10(1+views).
	PopularityViewWeight float64 `json:"popularity_view_weight"`

	// PopularityLikeWeight scales log10(1+likes).
	PopularityLikeWeight float64 `json:"popularity_like_weight"`

	// PopularityBookmarkWeight scales log10(1+bookmarks).
	PopularityBookmarkWeight float64 `json:"popularity_bookmark_weight"`

	// PopularityCap bounds the summed popularity component.
	// The cap applies after summation, not per term.
	PopularityCap float64 `json:"popularity_cap"`

	// RecencyWeight is the score of brand-new content; it decays linearly
	// to zero over RecencyWindowDays and stays zero thereafter.
	RecencyWeight float64 `json:"recency_weight"`

	// RecencyWindowDays is the linear decay window in days.
	RecencyWindowDays float64 `json:"recency_window_days"`

	// SeedWeight scales the seed-tag overlap ratio in similar-item mode.
	SeedWeight float64 `json:"seed_weight"`

	// ProfileSize is the number of interest tags derived per user.
	ProfileSize int `json:"profile_size"`

	// CandidateLimit caps pre-scoring candidate fetches per content kind in
	// general mode, independent of the caller's result limit.
	CandidateLimit int `json:"candidate_limit"`

	// SimilarCandidateLimit caps candidate fetches in similar-item mode.
	SimilarCandidateLimit int `json:"similar_candidate_limit"`

	// DefaultLimit is the result count when the caller supplies none.
	DefaultLimit int `json:"default_limit"`

	// SimilarDefaultLimit is the similar-item result count default.
	SimilarDefaultLimit int `json:"similar_default_limit"`

	// MaxLimit caps any caller-supplied result limit.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the production scoring policy.
func DefaultConfig() Config {
	return Config{
		TagMatchWeight:           40,
		PopularityViewWeight:     2,
		PopularityLikeWeight:     3,
		PopularityBookmarkWeight: 5,
		PopularityCap:            30,
		RecencyWeight:            20,
		RecencyWindowDays:        30,
		SeedWeight:               10,
		ProfileSize:              10,
		CandidateLimit:           50,
		SimilarCandidateLimit:    20,
		DefaultLimit:             10,
		SimilarDefaultLimit:      5,
		MaxLimit:                 50,
	}
}

// Validate checks the configuration for values that would break scoring
// invariants (negative weights, zero windows, inverted limits).
func (c Config) Validate() error {
	if c.TagMatchWeight < 0 || c.SeedWeight < 0 || c.RecencyWeight < 0 {
		return fmt.Errorf("score weights must be non-negative")
	}
	if c.PopularityViewWeight < 0 || c.PopularityLikeWeight < 0 || c.PopularityBookmarkWeight < 0 {
		return fmt.Errorf("popularity term weights must be non-negative")
	}
	if c.PopularityCap < 0 {
		return fmt.Errorf("popularity cap must be non-negative, got %f", c.PopularityCap)
	}
	if c.RecencyWindowDays <= 0 {
		return fmt.Errorf("recency window must be positive, got %f days", c.RecencyWindowDays)
	}
	if c.ProfileSize <= 0 {
		return fmt.Errorf("profile size must be positive, got %d", c.ProfileSize)
	}
	if c.CandidateLimit <= 0 || c.SimilarCandidateLimit <= 0 {
		return fmt.Errorf("candidate limits must be positive")
	}
	if c.DefaultLimit <= 0 || c.SimilarDefaultLimit <= 0 {
		return fmt.Errorf("default limits must be positive")
	}
	if c.MaxLimit < c.DefaultLimit || c.MaxLimit < c.SimilarDefaultLimit {
		return fmt.Errorf("max limit %d must be >= default limits", c.MaxLimit)
	}
	return nil
}
