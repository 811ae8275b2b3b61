// Package errors provides error formatting and exit-code mapping for the
// ubertmux CLI. Errors that should terminate the process with a specific
// exit code implement the ExitCoder interface; everything else exits 1.
package errors

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// ExitCoder is implemented by errors that carry a specific process exit
// code (e.g. a cancelled interactive prompt).
type ExitCoder interface {
	ExitCode() int
}

// UsageError indicates invalid command-line input. The message is shown
// together with a hint to run --help.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// Usagef creates a UsageError with a formatted message.
func Usagef(format string, args ...interface{}) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode returns the process exit code for err: 0 for nil, the carried
// code for ExitCoder errors, and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// Format renders err for stderr. Usage errors get a hint pointing at
// --help; all messages are prefixed with the program name.
func Format(err error) string {
	if err == nil {
		return ""
	}
	prefix := color.New(color.FgRed, color.Bold).Sprint("ubertmux:")
	var ue *UsageError
	if errors.As(err, &ue) {
		hint := color.New(color.Faint).Sprint("run 'ubertmux --help' for usage")
		return fmt.Sprintf("%s %s\n%s", prefix, ue.Msg, hint)
	}
	return fmt.Sprintf("%s %v", prefix, err)
}
