// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

/*
Package recommend implements the tag-based content recommendation pipeline.

The pipeline has four stages, each a small, separately testable unit:

 1. Interest profile extraction (profile.go): a user's interaction history is
    folded into a ranked set of interest tags, weighted by interaction kind.
 2. Candidate retrieval (DataProvider, implemented by the database package):
    published content sharing at least one tag with the query tag set, with
    already-seen suppression in general mode.
 3. Scoring (scorer.go): a deterministic weighted blend of tag overlap,
    log-dampened popularity, linear recency decay, and optional seed
    similarity.
 4. Ranking (ranker.go): stable descending sort, truncated to the caller's
    limit.

The Engine (engine.go) orchestrates the stages for the two entry points:
general per-user recommendations (with a most-recent-published cold-start
fallback) and similar-to-seed recommendations.

Every request recomputes from current storage state; the package holds no
caches and no mutable state beyond configuration, trading latency for
always-fresh results.
*/
package recommend
