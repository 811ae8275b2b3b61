// Package picker implements interactive selection from a list of
// entries. It prefers an external fuzzy finder (fzf, then sk) when one
// is installed and stdin is a terminal, and falls back to a numbered
// menu that needs no external dependency.
package picker

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CancelledError indicates the user abandoned the prompt with empty
// input. The process exits 3 to distinguish cancellation from failure.
type CancelledError struct{}

func (*CancelledError) Error() string {
	return "selection cancelled"
}

// ExitCode implements errors.ExitCoder.
func (*CancelledError) ExitCode() int {
	return 3
}

// ParseError indicates interactive input that could not be mapped to an
// entry. The process exits 4.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand selection %q", e.Input)
}

// ExitCode implements errors.ExitCoder.
func (e *ParseError) ExitCode() int {
	return 4
}

// Entry is one selectable row.
type Entry struct {
	// Label is the text matched and returned by the finder.
	Label string
	// Detail is supplementary text shown alongside the label.
	Detail string
}

// finders are tried in order; the first one found in PATH is used.
var finders = []string{"fzf", "sk"}

// Picker selects one entry interactively. The I/O streams, PATH lookup,
// terminal detection, and finder invocation are injectable for tests.
type Picker struct {
	In  io.Reader
	Out io.Writer

	LookPath   func(file string) (string, error)
	IsTerminal func() bool

	// RunFinder feeds input lines to the finder's stdin and returns the
	// selected line from its stdout.
	RunFinder func(path, prompt, input string) (string, error)

	// reader wraps In once so buffered input survives across prompts.
	reader *bufio.Reader
}

// New creates a Picker wired to the real terminal and PATH.
func New() *Picker {
	return &Picker{
		In:       os.Stdin,
		Out:      os.Stdout,
		LookPath: exec.LookPath,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		RunFinder: runFinder,
	}
}

// Pick shows entries and returns the index of the selected one.
// Returns a CancelledError on empty input and a ParseError on input
// that maps to no entry.
func (p *Picker) Pick(prompt string, entries []Entry) (int, error) {
	if p.IsTerminal() {
		for _, name := range finders {
			path, err := p.LookPath(name)
			if err != nil {
				continue
			}
			return p.pickWithFinder(path, prompt, entries)
		}
	}
	return p.pickWithMenu(prompt, entries)
}

// pickWithFinder drives an external fuzzy finder.
func (p *Picker) pickWithFinder(path, prompt string, entries []Entry) (int, error) {
	var input strings.Builder
	for _, e := range entries {
		input.WriteString(e.Label)
		input.WriteString("\n")
	}

	selected, err := p.RunFinder(path, prompt, input.String())
	if err != nil || selected == "" {
		// The finder exits non-zero both on escape and empty selection.
		return 0, &CancelledError{}
	}

	for i, e := range entries {
		if e.Label == selected {
			return i, nil
		}
	}
	return 0, &ParseError{Input: selected}
}

// runFinder executes the finder binary, piping entries in and the
// selection out. The finder draws its UI on the terminal directly.
func runFinder(path, prompt, input string) (string, error) {
	cmd := exec.Command(path, "--prompt", prompt+"> ")
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// pickWithMenu renders a numbered menu and reads one selection.
func (p *Picker) pickWithMenu(prompt string, entries []Entry) (int, error) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(p.Out, "%s\n", bold.Sprint(prompt))
	for i, e := range entries {
		fmt.Fprintf(p.Out, "  %s %s", bold.Sprintf("%d)", i+1), e.Label)
		if e.Detail != "" {
			fmt.Fprintf(p.Out, "  %s", faint.Sprint(e.Detail))
		}
		fmt.Fprintln(p.Out)
	}
	fmt.Fprintf(p.Out, "select [1-%d]: ", len(entries))

	line, err := p.readLine()
	if err != nil {
		return 0, &CancelledError{}
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, &CancelledError{}
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(entries) {
		return 0, &ParseError{Input: line}
	}
	return n - 1, nil
}

// ReadName prompts for a free-form name on the terminal. Empty input is
// a cancellation.
func (p *Picker) ReadName(prompt string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", color.New(color.Bold).Sprint(prompt))
	line, err := p.readLine()
	if err != nil {
		return "", &CancelledError{}
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", &CancelledError{}
	}
	return line, nil
}

func (p *Picker) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
