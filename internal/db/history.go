package db

import (
	"database/sql"

	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/notes"
)

// History returns the ordered, append-only entry sequence for an episode.
// An episode with no persisted history yields an empty slice.
func History(db *sql.DB, videoID string) ([]notes.Entry, error) {
	query := `
		SELECT entry_id, author, notes, timestamp
		FROM history_entries
		WHERE video_id = ?
		ORDER BY seq
	`

	rows, err := db.Query(query, videoID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var entries []notes.Entry
	for rows.Next() {
		var e notes.Entry
		if err := rows.Scan(&e.ID, &e.Author, &e.Notes, &e.Timestamp); err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return entries, nil
}

// AppendEntry appends an entry to an episode's history within tx. The
// history is never reordered or mutated in place; the next sequence number
// is computed inside the same transaction that commits the summary update,
// so concurrent writers cannot observe a gap.
func AppendEntry(tx *sql.Tx, videoID string, e notes.Entry) error {
	query := `
		INSERT INTO history_entries (video_id, seq, entry_id, author, notes, timestamp)
		SELECT ?, COALESCE(MAX(seq), -1) + 1, ?, ?, ?, ?
		FROM history_entries
		WHERE video_id = ?
	`

	if _, err := tx.Exec(query, videoID, e.ID, e.Author, e.Notes, e.Timestamp, videoID); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
