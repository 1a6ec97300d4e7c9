// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import (
	"math"
	"time"
)

// Scorer computes composite relevance scores. Score is a pure function of
// its inputs: no I/O, no clock reads (the reference time is a parameter), so
// identical inputs always produce identical scores.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given policy.
func NewScorer(cfg Config) Scorer {
	return Scorer{cfg: cfg}
}

// Score blends four components:
//
//	tag match:   (|item.tags ∩ interestTags| / max(|interestTags|, 1)) × TagMatchWeight
//	popularity:  log10(1+views)×wv + log10(1+likes)×wl + log10(1+bookmarks)×wb, capped
//	recency:     linear decay from RecencyWeight to 0 over RecencyWindowDays
//	seed match:  (|item.tags ∩ seedTags| / max(|seedTags|, 1)) × SeedWeight
//
// The seed component contributes only when seedTags is non-empty. Only the
// popularity component is internally capped; the total is not.
func (s Scorer) Score(item ContentItem, interestTags, seedTags []string, now time.Time) float64 {
	score := s.tagMatchComponent(item.Tags(), interestTags)
	score += s.popularityComponent(item.Stats.ViewCount, item.Stats.LikeCount, item.Stats.BookmarkCount)
	score += s.recencyComponent(item.CreatedAt(), now)
	if len(seedTags) > 0 {
		score += s.seedComponent(item.Tags(), seedTags)
	}
	return score
}

func (s Scorer) tagMatchComponent(itemTags, interestTags []string) float64 {
	ratio := overlapRatio(itemTags, interestTags)
	return ratio * s.cfg.TagMatchWeight
}

func (s Scorer) popularityComponent(views, likes, bookmarks int64) float64 {
	sum := math.Log10(1+float64(views))*s.cfg.PopularityViewWeight +
		math.Log10(1+float64(likes))*s.cfg.PopularityLikeWeight +
		math.Log10(1+float64(bookmarks))*s.cfg.PopularityBookmarkWeight
	return math.Min(sum, s.cfg.PopularityCap)
}

func (s Scorer) recencyComponent(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	decayed := s.cfg.RecencyWeight - (days/s.cfg.RecencyWindowDays)*s.cfg.RecencyWeight
	return math.Max(0, decayed)
}

func (s Scorer) seedComponent(itemTags, seedTags []string) float64 {
	return overlapRatio(itemTags, seedTags) * s.cfg.SeedWeight
}

// MatchingTags counts how many of the query tags appear in the item's tags.
func MatchingTags(itemTags, queryTags []string) int {
	if len(itemTags) == 0 || len(queryTags) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(queryTags))
	for _, t := range queryTags {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range itemTags {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// overlapRatio is |itemTags ∩ queryTags| / max(|queryTags|, 1).
func overlapRatio(itemTags, queryTags []string) float64 {
	denom := len(queryTags)
	if denom < 1 {
		denom = 1
	}
	return float64(MatchingTags(itemTags, queryTags)) / float64(denom)
}
