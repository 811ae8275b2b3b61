package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. It abstracts process spawning so a
// fake multiplexer can stand in during tests.
type Runner interface {
	// Run executes a command, discarding stdout. Stderr is folded into
	// the returned error.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns trimmed stdout. Stderr is
	// folded into the returned error.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// RunInteractive executes a command with the process's terminal
	// attached and blocks until it exits. Used for handing the terminal
	// to the tmux client.
	RunInteractive(name string, args ...string) error

	// LookPath locates a binary in PATH.
	LookPath(file string) (string, error)
}

// execRunner is the real Runner backed by os/exec.
type execRunner struct{}

// NewRunner returns a Runner that spawns real processes.
func NewRunner() Runner {
	return &execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return wrapRunError(name, args, err, stderr.String())
	}
	return nil
}

func (execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapRunError(name, args, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) RunInteractive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func wrapRunError(name string, args []string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	subcommand := name
	if len(args) > 0 {
		// Skip global flags to find the subcommand for the message.
		for i := 0; i < len(args); i++ {
			if strings.HasPrefix(args[i], "-") {
				i++ // flag value
				continue
			}
			subcommand = name + " " + args[i]
			break
		}
	}
	if stderr != "" {
		return fmt.Errorf("%s: %w: %s", subcommand, err, stderr)
	}
	return fmt.Errorf("%s: %w", subcommand, err)
}
