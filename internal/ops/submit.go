package ops

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/covertbagel/compendium/internal/cache"
	"github.com/covertbagel/compendium/internal/db"
	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/notes"
)

// SubmitInput contains parameters for the Submit operation.
type SubmitInput struct {
	VideoID    string
	Notes      string
	ClientEtag string
	Author     string
}

// SubmitOutput contains the result of the Submit operation. Recoverable
// rejections come back in-band with Accepted false and a named Reason;
// nothing was mutated in that case. On acceptance Etag carries the new
// token for the client's next submission.
type SubmitOutput struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Etag     string `json:"etag,omitempty"`
}

// Submit saves a new note entry for an episode. The write sequence:
// validate content, acquire the global write lock, re-read the history,
// reject no-change and stale-etag submissions, then append the history
// entry and update the summary projection in one transaction and
// invalidate the derived-notes cache. The lock is released on every exit
// path.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	if input.VideoID == "" {
		return nil, errors.NewInvalidRequest("video_id is required")
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, errors.NewInvalidRequest("author is required")
	}

	noteText := strings.TrimSpace(input.Notes)
	if n := utf8.RuneCountInString(noteText); n > s.cfg.NotesMaxChars {
		return reject(errors.NewNotesTooLong(s.cfg.NotesMaxChars, n)), nil
	}
	if strings.ContainsRune(noteText, notes.Marker) {
		return reject(errors.NewReservedMarker(notes.Marker)), nil
	}

	var out *SubmitOutput
	err := s.lock.With(ctx, func() error {
		entries, err := db.History(s.db, input.VideoID)
		if err != nil {
			return err
		}

		if (len(entries) == 0 && noteText == "") ||
			(len(entries) > 0 && entries[len(entries)-1].Notes == noteText) {
			out = reject(errors.NewNoChange())
			return nil
		}
		if notes.Etag(entries) != input.ClientEtag {
			out = reject(errors.NewStaleEtag())
			return nil
		}

		entry, err := notes.NewEntry(input.Author, noteText)
		if err != nil {
			return errors.NewInternal(err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return errors.NewInternal(err)
		}
		defer tx.Rollback()

		// Both records or neither: the projection invariant
		// Summary[v] == History[v].last() holds on every commit.
		if err := db.AppendEntry(tx, input.VideoID, entry); err != nil {
			return err
		}
		if err := db.SetLatest(tx, input.VideoID, entry); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return errors.NewInternal(err)
		}

		s.cache.Delete(cache.KeyDerivedNotes)

		s.logger.Info("note saved",
			"video_id", input.VideoID,
			"author", input.Author,
			"entry_id", entry.ID)

		out = &SubmitOutput{
			Accepted: true,
			Etag:     notes.Etag(append(entries, entry)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// reject maps a recoverable validation failure to an in-band result.
func reject(err *errors.Error) *SubmitOutput {
	return &SubmitOutput{Accepted: false, Reason: string(err.Code)}
}
