package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return "coded" }
func (e *codedError) ExitCode() int { return e.code }

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: stderrors.New("boom"), want: 1},
		{name: "usage error", err: Usagef("bad flag"), want: 1},
		{name: "cancelled-style code", err: &codedError{code: 3}, want: 3},
		{name: "unparseable-style code", err: &codedError{code: 4}, want: 4},
		{name: "wrapped coded error", err: fmt.Errorf("context: %w", &codedError{code: 3}), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(stderrors.New("boom"))
	if !strings.Contains(got, "ubertmux:") || !strings.Contains(got, "boom") {
		t.Errorf("Format() = %q, want prefix and message", got)
	}

	got = Format(Usagef("unknown flag %q", "-x"))
	if !strings.Contains(got, "--help") {
		t.Errorf("Format(usage error) = %q, want a --help hint", got)
	}
}
