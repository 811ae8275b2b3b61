package tmux

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// listFormat is the display format used for list-sessions. Fields are
// colon-separated to match tmux's default "name: rest" line shape.
const listFormat = "#{session_name}:#{session_windows}:#{session_created}:#{session_attached}"

// MissingBinaryError indicates the tmux binary was not found in PATH.
type MissingBinaryError struct {
	Cause error
}

func (e *MissingBinaryError) Error() string {
	return "tmux binary not found in PATH"
}

func (e *MissingBinaryError) Unwrap() error {
	return e.Cause
}

// Session describes one session on the isolated server.
type Session struct {
	Name     string
	Windows  int
	Created  time.Time
	Attached bool
}

// Client drives a tmux server on a dedicated socket with a dedicated
// config file.
type Client struct {
	runner     Runner
	socket     string
	configFile string
}

// NewClient creates a Client for the named server socket, launching it
// with the given config file. Commands run through real processes.
func NewClient(socket, configFile string) *Client {
	return NewClientWithRunner(NewRunner(), socket, configFile)
}

// NewClientWithRunner creates a Client with an injected Runner. Used by
// tests to substitute a fake multiplexer.
func NewClientWithRunner(r Runner, socket, configFile string) *Client {
	return &Client{
		runner:     r,
		socket:     socket,
		configFile: configFile,
	}
}

// serverArgs prepends the socket and config flags common to every
// invocation. The config file is only read when the server starts, but
// passing it consistently keeps first-command behavior deterministic.
func (c *Client) serverArgs(args ...string) []string {
	return append([]string{"-L", c.socket, "-f", c.configFile}, args...)
}

// IsAvailable reports whether the tmux binary can be found in PATH.
func (c *Client) IsAvailable() bool {
	_, err := c.runner.LookPath("tmux")
	return err == nil
}

// CheckAvailable returns a MissingBinaryError if tmux is not installed.
func (c *Client) CheckAvailable() error {
	if _, err := c.runner.LookPath("tmux"); err != nil {
		return &MissingBinaryError{Cause: err}
	}
	return nil
}

// Version returns the installed tmux version string, e.g. "tmux 3.4".
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, "tmux", "-V")
	if err != nil {
		return "", fmt.Errorf("failed to get tmux version: %w", err)
	}
	return out, nil
}

// HasSession reports whether the named session exists on the server.
func (c *Client) HasSession(ctx context.Context, name string) bool {
	// has-session matches name prefixes unless the target is anchored.
	return c.runner.Run(ctx, "tmux", c.serverArgs("has-session", "-t", "="+name)...) == nil
}

// ServerRunning reports whether the isolated server has any sessions.
func (c *Client) ServerRunning(ctx context.Context) bool {
	out, err := c.runner.Output(ctx, "tmux", c.serverArgs("list-sessions", "-F", "#{session_name}")...)
	return err == nil && out != ""
}

// ListSessions returns all sessions on the isolated server. A server
// that is not running yields an empty list, not an error.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	out, err := c.runner.Output(ctx, "tmux", c.serverArgs("list-sessions", "-F", listFormat)...)
	if err != nil {
		if isNoServer(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ParseSessions(out), nil
}

// isNoServer recognizes the stderr tmux emits when no server is
// listening on the socket.
func isNoServer(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "error connecting to") ||
		strings.Contains(msg, "no sessions")
}

// ParseSessions parses line-oriented session listing output. Each line
// is "<name>:<rest>". Lines in the structured listFormat shape yield
// full Session fields; other rests are parsed best-effort ("2 windows"
// still yields the window count). Unparseable lines keep the name only.
func ParseSessions(output string) []Session {
	var sessions []Session
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		name, rest, found := strings.Cut(line, ":")
		if !found || name == "" {
			continue
		}

		s := Session{Name: name}
		parts := strings.Split(rest, ":")
		if len(parts) == 3 {
			if windows, err := strconv.Atoi(parts[0]); err == nil {
				s.Windows = windows
				if epoch, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
					s.Created = time.Unix(epoch, 0)
				}
				s.Attached = parts[2] == "1"
				sessions = append(sessions, s)
				continue
			}
		}
		// Default human-readable shape: "name: 2 windows (created ...)".
		var windows int
		if _, err := fmt.Sscanf(rest, " %d windows", &windows); err == nil {
			s.Windows = windows
		}
		sessions = append(sessions, s)
	}
	return sessions
}

// AttachOrCreate hands the terminal to tmux, attaching to the named
// session or creating it in dir. Extra args are passed to new-session
// verbatim. Blocks until the tmux client exits or detaches.
func (c *Client) AttachOrCreate(session, dir string, extra []string) error {
	args := c.serverArgs("new-session", "-A", "-s", session, "-c", dir)
	args = append(args, extra...)
	if err := c.runner.RunInteractive("tmux", args...); err != nil {
		return fmt.Errorf("tmux new-session: %w", err)
	}
	return nil
}

// CreateDetached creates the named session in dir without attaching.
// Creating a session that already exists is an error.
func (c *Client) CreateDetached(ctx context.Context, session, dir string) error {
	if err := c.runner.Run(ctx, "tmux", c.serverArgs("new-session", "-d", "-s", session, "-c", dir)...); err != nil {
		return fmt.Errorf("failed to create session %q: %w", session, err)
	}
	return nil
}

// NewWindow creates a named window in an existing session, starting in dir.
func (c *Client) NewWindow(ctx context.Context, session, window, dir string) error {
	args := c.serverArgs("new-window", "-t", session+":", "-n", window)
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if err := c.runner.Run(ctx, "tmux", args...); err != nil {
		return fmt.Errorf("failed to create window %q in %q: %w", window, session, err)
	}
	return nil
}

// Attach hands the terminal to tmux, attaching to an existing session.
func (c *Client) Attach(session string) error {
	if err := c.runner.RunInteractive("tmux", c.serverArgs("attach-session", "-t", "="+session)...); err != nil {
		return fmt.Errorf("tmux attach-session: %w", err)
	}
	return nil
}

// KillSession kills the named session on the isolated server.
func (c *Client) KillSession(ctx context.Context, session string) error {
	if err := c.runner.Run(ctx, "tmux", c.serverArgs("kill-session", "-t", "="+session)...); err != nil {
		return fmt.Errorf("failed to kill session %q: %w", session, err)
	}
	return nil
}
