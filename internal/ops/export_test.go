package ops

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})
	ctx := context.Background()

	submit(t, s, "vid2", "", "egg 10,!clip abc-123")

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(ctx, &buf, ExportInput{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"~aired", "start time", "title", "video id", "notes"}, rows[0])

	// One row per episode, most-recent-first, with the air date rolled
	// back twelve hours from the start time.
	require.Equal(t, "vid3", rows[1][3])
	require.Equal(t, "2026-03-01", rows[1][0])
	require.Equal(t, "2026-03-01T20:00:00Z", rows[1][1])
	require.Equal(t, "Three", rows[1][2])

	var populated int
	for _, row := range rows[1:] {
		if row[4] != "" {
			populated++
			require.Equal(t, "vid2", row[3])
		}
	}
	require.Equal(t, 1, populated)
}

func TestExportCSV_PropagatesUpstreamError(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{err: context.DeadlineExceeded})

	var buf bytes.Buffer
	err := s.ExportCSV(context.Background(), &buf, ExportInput{})
	require.Error(t, err)
	require.Zero(t, buf.Len())
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	require.Equal(t, "compendium.202608301405.csv", ExportFilename(now))
}
