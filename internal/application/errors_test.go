package application

import (
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withFields := &ValidationError{FieldErrors: map[string]string{"items": "at least one activity is required", "date": "date is required"}}
	want := "validation failed: date: date is required; items: at least one activity is required"
	if got := withFields.Error(); got != want {
		t.Fatalf("expected sorted field message %q, got %q", want, got)
	}
}

func TestValidationError_AddAndMerge(t *testing.T) {
	t.Parallel()

	base := &ValidationError{}
	if base.HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}
	base.add("first", "value")
	if got := base.FieldErrors["first"]; got != "value" {
		t.Fatalf("expected add to populate map, got %q", got)
	}

	other := &ValidationError{FieldErrors: map[string]string{"second": "another"}}
	base.merge(other)
	if got := base.FieldErrors["second"]; got != "another" {
		t.Fatalf("expected merge to copy field, got %q", got)
	}

	base.merge(nil)
	if len(base.FieldErrors) != 2 || !base.HasErrors() {
		t.Fatalf("expected merge with nil to leave fields unchanged")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrUnauthorized, want: "unauthorized"},
		{err: fmt.Errorf("load group: %w", ErrNotFound), want: "not_found"},
		{err: ErrInvalidCredentials, want: "invalid_credentials"},
		{err: &ValidationError{FieldErrors: map[string]string{"date": "x"}}, want: "validation"},
		{err: fmt.Errorf("boom"), want: "unexpected"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
