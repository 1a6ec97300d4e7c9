// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

/*
Package models defines data structures for the Engage service.

It is the single source of truth for the database schemas Engage owns
(interactions, content stats), the read-side views of the shared content
tables (articles, activities), and the API response envelope.

Key Components:

  - InteractionKind: the four tracked interaction kinds with profile weights
  - Interaction: unique (user, content, kind) event with a recency timestamp
  - ContentStats: denormalized per-content counters, monotonically incremented
  - Article / Activity: published content with tags, as read for scoring
  - APIResponse: standardized API response wrapper
*/
package models
