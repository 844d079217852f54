// Package catalog models the recorded episodes and the client that loads
// them from the external video platform.
package catalog

import (
	"sort"
	"strings"
	"time"
)

// dateOffset shifts start times when approximating the air date; streams
// that start late in the evening UTC belong to the previous calendar day.
const dateOffset = 12 * time.Hour

// Episode is one recorded episode. Immutable per refresh cycle; sourced
// entirely from the external platform.
type Episode struct {
	// VideoID is the platform's unique, stable identifier
	VideoID string `json:"video_id"`

	// Title with the configured common suffix trimmed
	Title string `json:"title"`

	// StartTime is an ISO-8601 instant and the chronological sort key
	StartTime string `json:"start_time"`

	// Engagement metrics from the batched stats lookup
	Views int64 `json:"views"`
	Likes int64 `json:"likes"`
}

// SortEpisodes orders episodes most-recent-first by start time.
// ISO-8601 Z-suffixed instants sort correctly as strings.
func SortEpisodes(episodes []Episode) {
	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].StartTime > episodes[j].StartTime
	})
}

// AirDate approximates the air date of a start time as YYYY-MM-DD.
// Returns the input unchanged if it does not parse.
func AirDate(startTime string) string {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return startTime
	}
	return t.Add(-dateOffset).Format("2006-01-02")
}

// CleanTitle strips the common trailing suffix from a title when present.
func CleanTitle(title, suffix string) string {
	if suffix != "" && strings.HasSuffix(title, suffix) {
		return title[:len(title)-len(suffix)]
	}
	return title
}

// Neighbors locates videoID in a most-recent-first episode list and returns
// the episode plus its chronological neighbors: next is the following (more
// recent) episode, prev the preceding (older) one. All nil if not found.
func Neighbors(episodes []Episode, videoID string) (item, next, prev *Episode) {
	for i := range episodes {
		if episodes[i].VideoID != videoID {
			continue
		}
		item = &episodes[i]
		if i > 0 {
			next = &episodes[i-1]
		}
		if i+1 < len(episodes) {
			prev = &episodes[i+1]
		}
		return item, next, prev
	}
	return nil, nil, nil
}
