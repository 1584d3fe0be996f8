package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	cause := stderrors.New("record not found")
	err := NotFound("job not found", cause)

	if got := err.Error(); got != "NOT_FOUND: job not found: record not found" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if len(err.StackTrace()) == 0 {
		t.Fatalf("expected stack trace to be captured")
	}
}

func TestDomainErrorWithoutCause(t *testing.T) {
	err := InvalidInput("title is required", nil)
	if got := err.Error(); got != "INVALID_INPUT: title is required" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "not found", err: NotFound("job", nil), want: ErrTypeNotFound},
		{name: "wrapped model call", err: fmt.Errorf("generate: %w", ModelCall("gemini", nil)), want: ErrTypeModelCall},
		{name: "plain error", err: stderrors.New("boom"), want: ErrTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.want {
				t.Errorf("TypeOf() = %s, want %s", got, tt.want)
			}
		})
	}

	if !Is(fmt.Errorf("outer: %w", InvalidInput("bad", nil)), ErrTypeInvalidInput) {
		t.Fatalf("expected Is to see through wrapping")
	}
	if !strings.Contains(Internal("db", stderrors.New("down")).Error(), "down") {
		t.Fatalf("expected cause in message")
	}
}
