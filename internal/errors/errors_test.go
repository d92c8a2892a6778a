package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrInvalidValue, ExitUser),
			want: "invalid value",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidValue, "parsing window_width")
	exitErr := NewUserError(wrapped, "pass an integer")

	if !Is(exitErr, ErrInvalidValue) {
		t.Error("errors.Is() should find ErrInvalidValue through the chain")
	}
	if Is(exitErr, ErrInvalidConfig) {
		t.Error("errors.Is() matched an unrelated sentinel")
	}

	var target *ExitError
	if !As(fmt.Errorf("command failed: %w", exitErr), &target) {
		t.Fatal("errors.As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("ExitError.Code = %d, want %d", target.Code, ExitUser)
	}
	if target.Suggestion != "pass an integer" {
		t.Errorf("Suggestion = %q", target.Suggestion)
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(New("disk full"), "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(ErrInvalidConfig)
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion == "" {
			t.Error("expected a suggestion")
		}
	})
}
