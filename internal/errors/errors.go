package errors

import "fmt"

// ErrorCode represents a compendium error code.
// Submit rejections double as the reason strings reported to the caller.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrNoChange       ErrorCode = "NO_CHANGE"       // 409
	ErrStaleEtag      ErrorCode = "STALE_ETAG"      // 409
	ErrNotesTooLong   ErrorCode = "NOTES_TOO_LONG"  // 413
	ErrReservedMarker ErrorCode = "RESERVED_MARKER" // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
	ErrUpstream       ErrorCode = "UPSTREAM"        // 502
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown episode.
func NewNotFound(videoID string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("episode not found: %s", videoID),
		Details: map[string]any{"video_id": videoID},
	}
}

// NewNoChange creates a 409 rejection for a note identical to the latest entry.
func NewNoChange() *Error {
	return &Error{
		Code:    ErrNoChange,
		Status:  409,
		Message: "nothing new to save",
	}
}

// NewStaleEtag creates a 409 rejection for an optimistic-concurrency conflict.
// The caller must reload and resubmit; no merge is attempted.
func NewStaleEtag() *Error {
	return &Error{
		Code:    ErrStaleEtag,
		Status:  409,
		Message: "note has already been modified; update failed",
	}
}

// NewNotesTooLong creates a 413 rejection when note text exceeds the limit.
func NewNotesTooLong(max, actual int) *Error {
	return &Error{
		Code:    ErrNotesTooLong,
		Status:  413,
		Message: fmt.Sprintf("notes must be at most %d characters (got %d)", max, actual),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewReservedMarker creates a 422 rejection when note text contains the
// resolved-marker character.
func NewReservedMarker(marker rune) *Error {
	return &Error{
		Code:    ErrReservedMarker,
		Status:  422,
		Message: fmt.Sprintf("notes may not contain reserved %c character", marker),
	}
}

// NewUpstream creates a 502 error for episode-source fetch failures.
func NewUpstream(err error) *Error {
	msg := "episode source unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrUpstream,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an Error with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*Error); ok {
		return cErr.Code == code
	}
	return false
}
