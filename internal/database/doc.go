// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

// Package database provides the Postgres persistence layer: connection
// management, interaction and stats writes, and candidate retrieval for the
// recommendation engine.
//
// The articles and activities tables are owned by the main platform backend;
// this package reads them and migrates only the interactions and
// content_stats tables it owns. All queries run through GORM; tag overlap
// uses the Postgres array operator && on text[] columns.
package database
