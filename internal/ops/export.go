package ops

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/errors"
)

// csvHeader is the export column order: approximate air date, start time,
// title, video id, resolved notes.
var csvHeader = []string{"~aired", "start time", "title", "video id", "notes"}

// ExportInput contains parameters for the ExportCSV operation.
type ExportInput struct {
	Playlist PlaylistSet
}

// ExportCSV writes the full episode list as CSV, one row per episode,
// most-recent-first, with the resolved notes column empty for episodes
// without notes.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, input ExportInput) error {
	list, err := s.List(ctx, ListInput{Playlist: input.Playlist})
	if err != nil {
		return err
	}

	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return errors.NewInternal(err)
	}
	for _, item := range list.Items {
		row := []string{
			catalog.AirDate(item.StartTime),
			item.StartTime,
			item.Title,
			item.VideoID,
			item.Notes,
		}
		if err := out.Write(row); err != nil {
			return errors.NewInternal(err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ExportFilename names a CSV download after the export instant.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("compendium.%s.csv", now.Format("200601021504"))
}
