package db

import (
	"database/sql"

	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/notes"
)

// Summary returns the full projection: episode id to latest entry.
// The projection is denormalized from the history tails and kept in sync
// transactionally, so it can feed derivation without touching histories.
func Summary(db *sql.DB) (map[string]notes.Entry, error) {
	rows, err := db.Query(`SELECT video_id, entry_id, author, notes, timestamp FROM summary`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	latest := make(map[string]notes.Entry)
	for rows.Next() {
		var videoID string
		var e notes.Entry
		if err := rows.Scan(&videoID, &e.ID, &e.Author, &e.Notes, &e.Timestamp); err != nil {
			return nil, errors.NewInternal(err)
		}
		latest[videoID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return latest, nil
}

// Latest returns the latest entry for one episode, or nil if absent.
func Latest(db *sql.DB, videoID string) (*notes.Entry, error) {
	row := db.QueryRow(
		`SELECT entry_id, author, notes, timestamp FROM summary WHERE video_id = ?`,
		videoID,
	)

	var e notes.Entry
	err := row.Scan(&e.ID, &e.Author, &e.Notes, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &e, nil
}

// SetLatest updates the projection for one episode within tx. Must run in
// the same transaction as the corresponding AppendEntry so that
// Summary[v] == History[v].last() holds on every commit.
func SetLatest(tx *sql.Tx, videoID string, e notes.Entry) error {
	query := `
		INSERT INTO summary (video_id, entry_id, author, notes, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			entry_id = excluded.entry_id,
			author = excluded.author,
			notes = excluded.notes,
			timestamp = excluded.timestamp
	`

	if _, err := tx.Exec(query, videoID, e.ID, e.Author, e.Notes, e.Timestamp); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
