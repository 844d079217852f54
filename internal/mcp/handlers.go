package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/covertbagel/compendium/internal/errors"
	"github.com/covertbagel/compendium/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	service *ops.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *ops.Service) *Handlers {
	return &Handlers{service: service}
}

// ListRequest represents the arguments for episode_list.
type ListRequest struct {
	Playlist string `json:"playlist,omitempty"`
}

// DetailRequest represents the arguments for episode_detail.
type DetailRequest struct {
	VideoID string `json:"video_id"`
}

// SubmitRequest represents the arguments for note_submit.
type SubmitRequest struct {
	VideoID string `json:"video_id"`
	Notes   string `json:"notes,omitempty"`
	Etag    string `json:"etag,omitempty"`
	Author  string `json:"author"`
}

// ExportRequest represents the arguments for notes_export.
type ExportRequest struct {
	Playlist string `json:"playlist,omitempty"`
}

// HandleList handles the episode_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.service.List(ctx, ops.ListInput{
		Playlist: ops.PlaylistSet(input.Playlist),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDetail handles the episode_detail tool call.
func (h *Handlers) HandleDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DetailRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.service.Detail(ctx, ops.DetailInput{VideoID: input.VideoID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSubmit handles the note_submit tool call.
func (h *Handlers) HandleSubmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SubmitRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.service.Submit(ctx, ops.SubmitInput{
		VideoID:    input.VideoID,
		Notes:      input.Notes,
		ClientEtag: input.Etag,
		Author:     input.Author,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the notes_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(ctx, &buf, ops.ExportInput{
		Playlist: ops.PlaylistSet(input.Playlist),
	}); err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// errorResult creates an MCP error result from a coded error.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
