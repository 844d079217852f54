package errors

import (
	"fmt"
	"testing"
)

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		code   ErrorCode
		status int
	}{
		{NewInvalidRequest("bad"), ErrInvalidRequest, 400},
		{NewNotFound("vid1"), ErrNotFound, 404},
		{NewNoChange(), ErrNoChange, 409},
		{NewStaleEtag(), ErrStaleEtag, 409},
		{NewNotesTooLong(200, 250), ErrNotesTooLong, 413},
		{NewReservedMarker('ʹ'), ErrReservedMarker, 422},
		{NewInternal(fmt.Errorf("boom")), ErrInternal, 500},
		{NewUpstream(fmt.Errorf("down")), ErrUpstream, 502},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
		}
		if tt.err.Status != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.code, tt.err.Status, tt.status)
		}
		if tt.err.Error() == "" {
			t.Errorf("%s: empty error string", tt.code)
		}
	}
}

func TestNotesTooLongDetails(t *testing.T) {
	err := NewNotesTooLong(200, 250)
	if err.Details["max_chars"] != 200 || err.Details["actual_chars"] != 250 {
		t.Errorf("details = %v", err.Details)
	}
}

func TestIs(t *testing.T) {
	err := error(NewStaleEtag())
	if !Is(err, ErrStaleEtag) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrNoChange) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrStaleEtag) {
		t.Error("Is should not match a plain error")
	}
	if Is(nil, ErrStaleEtag) {
		t.Error("Is should not match nil")
	}
}
