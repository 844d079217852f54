package notes

import "strings"

// Derive resolves the latest note text of every episode into its final
// cross-referenced form. order is the full episode id list sorted
// most-recent-first; latest maps episode id to the latest entry (the
// summary projection). The result maps episode id to resolved,
// comma-joined note text for every episode that has an entry.
//
// Two passes share one counter table. Pass 1 walks most-recent to
// least-recent, processing each note's segments in reverse order with a
// step of -1: it learns anchors looking backward in time and records the
// oldest index at which a previously-unseen counter was first anchored
// (the start boundary). Pass 2 walks least-recent to most-recent over the
// boundary..now sub-range with a step of +1, propagating each anchor
// forward through the increments between it and the present. All counters
// share the single global boundary.
//
// Derivation is pure: identical inputs produce byte-identical output.
func Derive(order []string, latest map[string]Entry) map[string]string {
	counters := counterTable{}
	resolved := make(map[string]string)
	boundary := 0

	for idx, videoID := range order {
		entry, ok := latest[videoID]
		if !ok {
			continue
		}
		parts := strings.Split(entry.Notes, ",")
		for i := len(parts) - 1; i >= 0; i-- {
			parts[i], boundary = resolveSegment(parts[i], counters, -1, idx, boundary, videoID)
		}
		resolved[videoID] = strings.Join(parts, ",")
	}

	for idx := min(boundary, len(order)-1); idx >= 0; idx-- {
		videoID := order[idx]
		text, ok := resolved[videoID]
		if !ok {
			continue
		}
		parts := strings.Split(text, ",")
		for i := range parts {
			parts[i], _ = resolveSegment(parts[i], counters, 1, 0, 0, videoID)
		}
		resolved[videoID] = strings.Join(parts, ",")
	}

	return resolved
}
