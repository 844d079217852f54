package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/covertbagel/compendium/internal/errors"
)

// renderJSON writes a JSON response with the given status.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError maps an error to a JSON error response using the coded
// taxonomy; anything unrecognized becomes a 500.
func (h *Handlers) renderError(w http.ResponseWriter, err error) {
	var cErr *errors.Error
	if !stderrors.As(err, &cErr) {
		cErr = errors.NewInternal(err)
	}

	if cErr.Status >= 500 {
		h.logger.Error("request failed", "code", cErr.Code, "error", cErr.Message)
	}

	payload := map[string]any{
		"code":    string(cErr.Code),
		"message": cErr.Message,
		"status":  cErr.Status,
	}
	// Internal error details can leak file paths or SQL text; omit them.
	if cErr.Code != errors.ErrInternal && cErr.Details != nil {
		payload["details"] = cErr.Details
	}

	renderJSON(w, cErr.Status, map[string]any{"error": payload})
}
