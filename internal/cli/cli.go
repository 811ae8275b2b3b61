// Package cli parses the ubertmux command line and dispatches to the
// tmux client, the workspace resolver, and the interactive picker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/fatih/color"

	"github.com/micheal-at/ubertmux/internal/config"
	"github.com/micheal-at/ubertmux/internal/errors"
	"github.com/micheal-at/ubertmux/internal/picker"
	"github.com/micheal-at/ubertmux/internal/topic"
	"github.com/micheal-at/ubertmux/internal/workspace"
	"github.com/micheal-at/ubertmux/pkg/tmux"
)

// createNewLabel is the reserved picker entry that routes to the
// new-topic flow instead of an attach.
const createNewLabel = "[create new topic]"

// CLI wires the components behind one Execute call.
type CLI struct {
	paths      *config.Paths
	tmux       *tmux.Client
	workspaces *workspace.Resolver
	picker     *picker.Picker
	stdout     io.Writer
	chdir      func(dir string) error
	lookPath   func(file string) (string, error)
}

// New creates a CLI against the real home directory, environment, and
// terminal.
func New() (*CLI, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}
	return &CLI{
		paths:      paths,
		tmux:       tmux.NewClient(config.SocketName, paths.ConfigFile),
		workspaces: workspace.NewResolver(),
		picker:     picker.New(),
		stdout:     os.Stdout,
		chdir:      os.Chdir,
		lookPath:   exec.LookPath,
	}, nil
}

// Execute parses args and runs the selected action.
func (c *CLI) Execute(args []string) error {
	req, err := Parse(args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch req.Action {
	case ActionHelp:
		c.printUsage()
		return nil
	case ActionDoctor:
		return c.doctor(ctx)
	case ActionList:
		return c.listTopics(ctx, req.Interactive)
	case ActionSelect:
		return c.selectTopic(ctx)
	case ActionNewTopic:
		return c.newTopic(ctx, req)
	case ActionKill:
		return c.killTopic(ctx, req.Topic)
	default:
		return c.attach(req.Topic, req.Passthrough)
	}
}

// attach resolves the workspace and hands the terminal to tmux with
// attach-or-create semantics for the topic's session.
func (c *CLI) attach(topicName string, passthrough []string) error {
	if topicName != "" {
		if err := topic.Validate(topicName); err != nil {
			return err
		}
	}
	if err := c.tmux.CheckAvailable(); err != nil {
		return err
	}
	if _, err := config.Materialize(c.paths.ConfigFile); err != nil {
		return err
	}

	dir, source, err := c.workspaces.Resolve(topicName)
	if err != nil {
		return err
	}
	if source != workspace.SourceCwd {
		if _, err := config.EnsureWorkspaceBinding(c.paths.ConfigFile, dir); err != nil {
			return err
		}
	}
	if err := c.chdir(dir); err != nil {
		return fmt.Errorf("failed to enter workspace %q: %w", dir, err)
	}

	return c.tmux.AttachOrCreate(topic.SessionName(topicName), dir, passthrough)
}

// topicEntry is one renderable topic session.
type topicEntry struct {
	Topic   string
	Session tmux.Session
}

// displayName renders the empty topic as "default".
func (e topicEntry) displayName() string {
	if e.Topic == "" {
		return "default"
	}
	return e.Topic
}

// filterTopics keeps only sessions in our namespace, mapped to topics.
func filterTopics(sessions []tmux.Session) []topicEntry {
	var entries []topicEntry
	for _, s := range sessions {
		name, ok := topic.FromSession(s.Name)
		if !ok {
			continue
		}
		entries = append(entries, topicEntry{Topic: name, Session: s})
	}
	return entries
}

// listTopics prints the topic sessions, or browses them interactively.
func (c *CLI) listTopics(ctx context.Context, interactive bool) error {
	if interactive {
		return c.selectTopic(ctx)
	}
	if err := c.tmux.CheckAvailable(); err != nil {
		return err
	}

	sessions, err := c.tmux.ListSessions(ctx)
	if err != nil {
		return err
	}
	entries := filterTopics(sessions)
	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, color.New(color.Faint).Sprint("no topic sessions"))
		return nil
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)
	for _, e := range entries {
		name := bold.Sprintf("%-20s", truncateString(e.displayName(), 20))
		detail := fmt.Sprintf("%d windows", e.Session.Windows)
		if !e.Session.Created.IsZero() {
			detail += "  " + formatTime(e.Session.Created)
		}
		line := fmt.Sprintf("  %s %s", name, faint.Sprint(detail))
		if e.Session.Attached {
			line += "  " + green.Sprint("attached")
		}
		fmt.Fprintln(c.stdout, line)
	}
	return nil
}

// selectTopic runs the picker over existing topics plus the reserved
// create-new entry, then attaches or routes to topic creation.
func (c *CLI) selectTopic(ctx context.Context) error {
	if err := c.tmux.CheckAvailable(); err != nil {
		return err
	}

	sessions, err := c.tmux.ListSessions(ctx)
	if err != nil {
		return err
	}
	entries := filterTopics(sessions)

	items := make([]picker.Entry, 0, len(entries)+1)
	for _, e := range entries {
		items = append(items, picker.Entry{
			Label:  e.displayName(),
			Detail: fmt.Sprintf("%d windows", e.Session.Windows),
		})
	}
	items = append(items, picker.Entry{Label: createNewLabel})

	idx, err := c.picker.Pick("topic", items)
	if err != nil {
		return err
	}
	if idx == len(items)-1 {
		return c.promptNewTopic(ctx, nil)
	}

	name := entries[idx].Topic
	return c.attach(name, nil)
}

// promptNewTopic asks for a topic name, validates it, and creates the
// session (with template windows when given).
func (c *CLI) promptNewTopic(ctx context.Context, tpl *Template) error {
	name, err := c.picker.ReadName("new topic name")
	if err != nil {
		return err
	}
	if err := topic.Validate(name); err != nil {
		return err
	}
	return c.createTopic(ctx, name, tpl)
}

// newTopic handles --new-topic, with or without --template.
func (c *CLI) newTopic(ctx context.Context, req *Request) error {
	if !req.Template {
		if err := topic.Validate(req.Topic); err != nil {
			return err
		}
		return c.createTopic(ctx, req.Topic, nil)
	}

	items := make([]picker.Entry, len(builtinTemplates))
	for i, t := range builtinTemplates {
		items[i] = picker.Entry{Label: t.Name, Detail: t.Description}
	}
	idx, err := c.picker.Pick("template", items)
	if err != nil {
		return err
	}
	tpl := &builtinTemplates[idx]

	if req.Topic != "" {
		if err := topic.Validate(req.Topic); err != nil {
			return err
		}
		return c.createTopic(ctx, req.Topic, tpl)
	}
	return c.promptNewTopic(ctx, tpl)
}

// createTopic creates the topic session and attaches to it. Refuses to
// create a topic whose session already exists.
func (c *CLI) createTopic(ctx context.Context, name string, tpl *Template) error {
	if err := c.tmux.CheckAvailable(); err != nil {
		return err
	}
	session := topic.SessionName(name)
	if c.tmux.HasSession(ctx, session) {
		return errors.Usagef("topic %q already exists; use --topic to attach", name)
	}
	if _, err := config.Materialize(c.paths.ConfigFile); err != nil {
		return err
	}

	dir, source, err := c.workspaces.Resolve(name)
	if err != nil {
		return err
	}
	if source != workspace.SourceCwd {
		if _, err := config.EnsureWorkspaceBinding(c.paths.ConfigFile, dir); err != nil {
			return err
		}
	}
	if err := c.chdir(dir); err != nil {
		return fmt.Errorf("failed to enter workspace %q: %w", dir, err)
	}

	if tpl == nil {
		return c.tmux.AttachOrCreate(session, dir, nil)
	}

	// Template sessions are created detached so the extra windows exist
	// before the client attaches.
	if err := c.tmux.CreateDetached(ctx, session, dir); err != nil {
		return err
	}
	for _, window := range tpl.Windows {
		if err := c.tmux.NewWindow(ctx, session, window, dir); err != nil {
			return err
		}
	}
	return c.tmux.Attach(session)
}

// killTopic kills the named topic's session on the isolated server.
func (c *CLI) killTopic(ctx context.Context, name string) error {
	if err := topic.Validate(name); err != nil {
		return err
	}
	if err := c.tmux.CheckAvailable(); err != nil {
		return err
	}
	session := topic.SessionName(name)
	if !c.tmux.HasSession(ctx, session) {
		return errors.Usagef("no session for topic %q", name)
	}
	if err := c.tmux.KillSession(ctx, session); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "killed topic %s\n", color.New(color.Bold).Sprint(name))
	return nil
}

// formatTime renders recent times as clock time and older ones with a
// date, matching how the listing keeps short rows.
func formatTime(t time.Time) string {
	if time.Since(t) < 24*time.Hour {
		return t.Format("15:04:05")
	}
	return t.Format("Jan 02")
}

// truncateString shortens s to maxLen, ellipsizing when it has to cut.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
