package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "malformed id", err: ValidateID("12345"), wantCode: "ARG001"},
		{name: "missing id", err: ValidateID(""), wantCode: "ARG003"},
		{
			name:     "bad criteria",
			err:      func() error { _, err := ParseCriteria(CriteriaInput{MinAge: "ten"}, 0); return err }(),
			wantCode: "ARG002",
		},
		{name: "not found", err: fmt.Errorf("lookup 111111111111: %w", ErrNotFound), wantCode: "REC001"},
		{
			name:     "invalid record wins over embedded id error",
			err:      Record{ID: "abc"}.Validate(),
			wantCode: "DATA001",
		},
		{name: "duplicate id", err: fmt.Errorf("%w: 111111111111", ErrDuplicateID), wantCode: "DATA002"},
		{name: "method not allowed", err: errors.New("method not allowed"), wantCode: "REQ003"},
		{name: "decode failure", err: fmt.Errorf("%w: unexpected EOF", ErrInvalidDataset), wantCode: "DATA001"},
		{name: "busy", err: ErrTooManyScans, wantCode: "SYS001"},
		{name: "cancelled", err: context.Canceled, wantCode: "REQ001"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "REQ002"},
		{name: "rate limited", err: errors.New("rate limit exceeded"), wantCode: "RATE001"},
		{name: "other invalid argument", err: fmt.Errorf("%w: --target must be positive", ErrInvalidArgument), wantCode: "ARG000"},
		{name: "unknown falls back", err: errors.New("something odd"), wantCode: "ERR000"},

		// Client text embedded in an argument error never selects the code.
		{name: "id spelling a dataset error", err: ValidateID("invalid dataset"), wantCode: "ARG001"},
		{name: "id spelling a duplicate", err: ValidateID("duplicate id"), wantCode: "ARG001"},
		{name: "id spelling missing", err: ValidateID("missing id"), wantCode: "ARG001"},
		{
			name:     "criteria spelling not found",
			err:      func() error { _, err := ParseCriteria(CriteriaInput{Limit: "record not found"}, 0); return err }(),
			wantCode: "ARG002",
		},
		{name: "argument spelling rate limit", err: fmt.Errorf("%w: rate limit", ErrInvalidArgument), wantCode: "ARG000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestArgumentSentinels(t *testing.T) {
	for _, err := range []error{ErrMissingID, ErrInvalidID, ErrInvalidCriteria} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v does not wrap ErrInvalidArgument", err)
		}
	}
	if err := ValidateID(""); !errors.Is(err, ErrMissingID) {
		t.Errorf("ValidateID(\"\") = %v, want ErrMissingID", err)
	}
	if err := ValidateID("12ab"); !errors.Is(err, ErrInvalidID) || errors.Is(err, ErrMissingID) {
		t.Errorf("ValidateID(\"12ab\") = %v, want ErrInvalidID only", err)
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ValidateID("x"))
	want := "Aadhaar number must be exactly 12 digits (Code: ARG001). Check the number and try again"
	if got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
	if !IsUserFacing(ErrTooManyScans) {
		t.Error("ErrTooManyScans should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unmatched error should not be user facing")
	}
	if IsUserFacing(fmt.Errorf("%w: --target must be positive", ErrInvalidArgument)) {
		t.Error("generic argument error should not be user facing")
	}
}
