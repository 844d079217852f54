package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Marker is the reserved resolved-marker rune appended to resolved counter
// values. Raw note text may never contain it.
const Marker = 'ʹ'

// Note segments are split on commas; each segment is classified against
// these patterns after trimming. The anchor pattern tolerates a trailing
// marker so that resolved increments re-match as anchors on a later scan.
var (
	patternAnchor  = regexp.MustCompile(`^(egg|event) (\d+)ʹ?`)
	patternClip    = regexp.MustCompile(`^!clip ([A-Za-z0-9_-]+)`)
	patternCounter = regexp.MustCompile(`^!(egg|event)`)
)

// counterTable holds the running counter values during one derivation pass.
// It is the only mutable, order-sensitive state in the engine.
type counterTable map[string]int

// resolveSegment classifies one comma-delimited note segment and resolves it
// against the counter table. step is -1 on the backward (most-recent-first)
// pass and +1 on the forward pass. itemIdx and boundary feed the start
// boundary computation: a previously-unseen counter anchored at itemIdx
// pushes the boundary to the oldest such index. Returns the resolved segment
// and the updated boundary hint. Unrecognized segments pass through.
func resolveSegment(part string, counters counterTable, step, itemIdx, boundary int, videoID string) (string, int) {
	p := strings.TrimSpace(part)
	if m := patternCounter.FindStringSubmatch(p); m != nil {
		name := m[1]
		if _, known := counters[name]; known {
			counters[name] += step
			resolved := fmt.Sprintf("%s %d%c", name, counters[name], Marker)
			return strings.Replace(part, m[0], resolved, 1), boundary
		}
		// No anchor seen yet for this counter; leave the macro unresolved.
		return part, boundary
	}
	if m := patternAnchor.FindStringSubmatch(p); m != nil {
		name := m[1]
		count, _ := strconv.Atoi(m[2])
		if _, known := counters[name]; !known && itemIdx > boundary {
			boundary = itemIdx
		}
		counters[name] = count
		return part, boundary
	}
	if m := patternClip.FindStringSubmatch(p); m != nil {
		return strings.Replace(part, p, clipLink(m[1], videoID), 1), boundary
	}
	return part, boundary
}

// clipLink rewrites a clip token to a hyperlink. Short numeric tokens are
// timestamp offsets into the episode's canonical video URL; anything else is
// a clip-sharing path. Direction-independent.
func clipLink(token, videoID string) string {
	path := "clip/" + token
	if len(token) < 10 && isDigits(token) {
		path = fmt.Sprintf("watch?v=%s&t=%s", videoID, token)
	}
	return fmt.Sprintf(`<a href="https://www.youtube.com/%s">clip</a>`, path)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
