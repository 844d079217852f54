package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/ops"
)

// Handlers contains HTTP route handlers.
type Handlers struct {
	service *ops.Service
	logger  *slog.Logger
}

// HandleList handles GET /episodes — list episodes with resolved notes.
// ?playlist=complete selects the complete-series playlists.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ops.ListInput{
		Playlist: playlistParam(r),
	})
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleDetail handles GET /episodes/{id} — one episode with note history
// and the current etag.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Detail(r.Context(), ops.DetailInput{
		VideoID:  r.PathValue("id"),
		Playlist: playlistParam(r),
	})
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// submitRequest is the POST body for note submission. Etag must echo the
// token from the detail response; author identity comes from the caller
// (authentication policy sits outside this service).
type submitRequest struct {
	Notes  string `json:"notes"`
	Etag   string `json:"etag"`
	Author string `json:"author"`
}

// HandleSubmitNote handles POST /episodes/{id}/notes.
func (h *Handlers) HandleSubmitNote(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	result, err := h.service.Submit(r.Context(), ops.SubmitInput{
		VideoID:    r.PathValue("id"),
		Notes:      req.Notes,
		ClientEtag: req.Etag,
		Author:     req.Author,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleExportCSV handles GET /episodes.csv — CSV download of the full list.
func (h *Handlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", ops.ExportFilename(time.Now())))

	if err := h.service.ExportCSV(r.Context(), w, ops.ExportInput{
		Playlist: playlistParam(r),
	}); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

// playlistParam reads the optional ?playlist= selector.
func playlistParam(r *http.Request) ops.PlaylistSet {
	if r.URL.Query().Get("playlist") == "complete" {
		return ops.PlaylistComplete
	}
	return ops.PlaylistDefault
}
