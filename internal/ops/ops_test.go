package ops

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covertbagel/compendium/internal/cache"
	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/config"
	"github.com/covertbagel/compendium/internal/db"
)

// fakeSource serves a fixed episode list and records call counts.
type fakeSource struct {
	episodes []catalog.Episode
	err      error
	calls    int
}

func (f *fakeSource) Episodes(ctx context.Context, playlistIDs []string) ([]catalog.Episode, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.episodes, nil
}

func threeEpisodes() []catalog.Episode {
	return []catalog.Episode{
		{VideoID: "vid3", Title: "Three", StartTime: "2026-03-01T20:00:00Z", Views: 30},
		{VideoID: "vid2", Title: "Two", StartTime: "2026-02-01T20:00:00Z", Views: 20},
		{VideoID: "vid1", Title: "One", StartTime: "2026-01-01T20:00:00Z", Views: 10},
	}
}

func newTestService(t *testing.T, source EpisodeSource) (*Service, *sql.DB) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.PlaylistIDs = []string{"pl-default"}
	cfg.CompletePlaylistIDs = []string{"pl-default", "pl-archive"}
	cfg.LockRetrySecs = 0

	logger := slog.New(slog.DiscardHandler)
	return NewService(database, cfg, cache.New(), source, logger), database
}

// submit is a shorthand for an accepted write in setup code.
func submit(t *testing.T, s *Service, videoID, etag, text string) string {
	t.Helper()
	out, err := s.Submit(context.Background(), SubmitInput{
		VideoID:    videoID,
		Notes:      text,
		ClientEtag: etag,
		Author:     "curator@example.com",
	})
	require.NoError(t, err)
	require.True(t, out.Accepted, "submit rejected: %s", out.Reason)
	return out.Etag
}
