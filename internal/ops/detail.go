package ops

import (
	"context"

	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/db"
	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/notes"
)

// DetailInput contains parameters for the Detail operation.
type DetailInput struct {
	VideoID  string
	Playlist PlaylistSet
}

// DetailOutput contains the result of the Detail operation. Etag is the
// optimistic-concurrency token a client must echo back when submitting;
// it fingerprints the last history entry and is empty for a fresh episode.
type DetailOutput struct {
	Episode       catalog.Episode  `json:"episode"`
	Next          *catalog.Episode `json:"next,omitempty"`
	Prev          *catalog.Episode `json:"prev,omitempty"`
	Entries       []notes.Entry    `json:"entries"`
	Etag          string           `json:"etag"`
	NotesMaxChars int              `json:"notes_max_chars"`
}

// Detail returns one episode with its full note history and current etag.
func (s *Service) Detail(ctx context.Context, input DetailInput) (*DetailOutput, error) {
	if input.VideoID == "" {
		return nil, errors.NewInvalidRequest("video_id is required")
	}

	episodes, err := s.episodes(ctx, input.Playlist)
	if err != nil {
		return nil, err
	}

	item, next, prev := catalog.Neighbors(episodes, input.VideoID)
	if item == nil {
		return nil, errors.NewNotFound(input.VideoID)
	}

	entries, err := db.History(s.db, input.VideoID)
	if err != nil {
		return nil, err
	}

	return &DetailOutput{
		Episode:       *item,
		Next:          next,
		Prev:          prev,
		Entries:       entries,
		Etag:          notes.Etag(entries),
		NotesMaxChars: s.cfg.NotesMaxChars,
	}, nil
}
