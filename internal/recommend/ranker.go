// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import "sort"

// Rank sorts scored candidates descending by score and truncates to limit.
// The sort is stable, so ties keep their original retrieval order. The input
// slice is not modified. Pure computation, no I/O.
func Rank(items []ScoredItem, limit int) []ScoredItem {
	ranked := make([]ScoredItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
