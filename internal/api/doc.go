// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package api provides the HTTP surface of Engage: chi routing, the
// interaction tracking and statistics endpoints, and the recommendation
// endpoints. All responses use the APIResponse envelope; errors carry a
// machine-readable code.
//
// Route map:
//
//	POST /api/v1/interactions                       record an interaction (auth)
//	GET  /api/v1/articles/{id}/stats                article counters (public)
//	GET  /api/v1/activities/{id}/stats              activity counters (public)
//	GET  /api/v1/recommendations                    personalized feed (auth)
//	GET  /api/v1/recommendations/articles/{id}      similar articles (public)
//	GET  /api/v1/recommendations/activities/{id}    similar activities (public)
//	GET  /api/v1/health                             liveness and readiness
//	GET  /metrics                                   Prometheus metrics
package api
