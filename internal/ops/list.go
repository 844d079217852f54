package ops

import (
	"context"
	"time"

	"github.com/covertbagel/compendium/internal/cache"
	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/db"
	"github.com/covertbagel/compendium/internal/notes"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Playlist PlaylistSet
}

// ListItem is one episode with its resolved annotation text.
type ListItem struct {
	catalog.Episode
	Notes string `json:"notes,omitempty"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []ListItem `json:"items"`
}

// List returns the episode list, most-recent-first, with resolved notes
// attached where present. Reads never take the write lock; they combine
// the cached episode list with the (cached) derived-notes mapping.
func (s *Service) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	episodes, err := s.episodes(ctx, input.Playlist)
	if err != nil {
		return nil, err
	}

	derived, err := s.derivedNotes(ctx, episodes)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, len(episodes))
	for i, ep := range episodes {
		items[i] = ListItem{Episode: ep, Notes: derived[ep.VideoID]}
	}
	return &ListOutput{Items: items}, nil
}

// derivedNotes returns the memoized derived-notes mapping for the given
// episode order, recomputing on miss. The cache entry is invalidated on
// every accepted write; derivation is pure, so a population race between
// two concurrent recomputations is harmless.
func (s *Service) derivedNotes(ctx context.Context, episodes []catalog.Episode) (map[string]string, error) {
	ttl := time.Duration(s.cfg.DerivedCacheTTLSecs) * time.Second
	v, err := s.cache.Once(cache.KeyDerivedNotes, ttl, func() (any, error) {
		latest, err := db.Summary(s.db)
		if err != nil {
			return nil, err
		}
		order := make([]string, len(episodes))
		for i, ep := range episodes {
			order[i] = ep.VideoID
		}
		return notes.Derive(order, latest), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}
