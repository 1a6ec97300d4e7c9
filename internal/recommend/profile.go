// TeApoio Engage - Content Recommendations and Interaction Analytics
// Copyright 2026 TeApoio
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/teapoio/engage

package recommend

import "sort"

// TopTags derives a user's ranked interest tags from their interaction
// history. Each event contributes its kind's full profile weight to every
// tag of the content it touched; weights accumulate per tag across events.
//
// Tags are ordered by accumulated weight descending. Ties break on first-seen
// order over the event slice, which the data provider returns most recent
// first, so among equally weighted tags the more recently touched one wins.
// An empty event slice yields an empty (cold start) profile.
func TopTags(events []TaggedInteraction, limit int) []string {
	if len(events) == 0 || limit <= 0 {
		return []string{}
	}

	weights := make(map[string]int)
	order := make([]string, 0, len(events))

	for _, ev := range events {
		w := ev.Kind.ProfileWeight()
		for _, tag := range ev.Tags {
			if _, seen := weights[tag]; !seen {
				order = append(order, tag)
			}
			weights[tag] += w
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
