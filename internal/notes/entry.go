// Package notes holds the annotation domain: note entries, the macro
// grammar, and the derivation engine that resolves macros across the
// chronological episode list.
package notes

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entry is a single note revision for one episode. Immutable once created.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string `json:"id"`

	// Author is the identity string of the curator who saved the entry
	Author string `json:"author"`

	// Notes is the raw macro-bearing note text
	Notes string `json:"notes"`

	// Timestamp is second-precision UTC, Z-suffixed
	Timestamp string `json:"timestamp"`
}

// NewEntry creates an entry with a fresh ULID and the current timestamp.
func NewEntry(author, noteText string) (Entry, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:        id.String(),
		Author:    author,
		Notes:     noteText,
		Timestamp: Timestamp(time.Now()),
	}, nil
}

// Timestamp formats t as second-precision UTC with a Z suffix.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// Etag returns an order-sensitive fingerprint of the last entry in the
// history, used as the optimistic-concurrency token. An empty history
// yields the empty string.
func Etag(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	last := entries[len(entries)-1]
	h := sha256.New()
	for _, field := range []string{last.ID, last.Author, last.Notes, last.Timestamp} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
