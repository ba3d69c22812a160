package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidPath, "must input a CSV filename; got %q", "data.txt"),
			want: `INVALID_PATH: must input a CSV filename; got "data.txt"`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidEntity, stderrors.New("empty value"), "row 3"),
			want: "INVALID_ENTITY: row 3: empty value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeHeterogeneousGroup, "mixed types")

	if !Is(err, ErrCodeHeterogeneousGroup) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is() = true for a plain error")
	}

	// Codes survive wrapping with %w.
	wrapped := fmt.Errorf("loading: %w", err)
	if !Is(wrapped, ErrCodeHeterogeneousGroup) {
		t.Error("Is() = false through a %w chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeInternal, cause, "context")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
	if GetCode(err) != ErrCodeInternal {
		t.Errorf("GetCode() = %q", GetCode(err))
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "edge 7 not found")); got != "edge 7 not found" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
