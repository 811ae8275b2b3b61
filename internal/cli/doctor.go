package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/micheal-at/ubertmux/internal/config"
)

// doctor prints a diagnostic of the external dependencies and the
// generated config. It fails (exit 1) only when tmux itself is missing;
// everything else is informational.
func (c *CLI) doctor(ctx context.Context) error {
	ok := color.New(color.FgGreen).Sprint("ok")
	warn := color.New(color.FgYellow).Sprint("--")
	bold := color.New(color.Bold)

	report := func(status, label, detail string) {
		fmt.Fprintf(c.stdout, "  %s  %-14s %s\n", status, label, detail)
	}

	fmt.Fprintf(c.stdout, "%s\n", bold.Sprint("ubertmux doctor"))

	tmuxErr := c.tmux.CheckAvailable()
	if tmuxErr != nil {
		report(color.New(color.FgRed).Sprint("!!"), "tmux", "not found in PATH")
		return tmuxErr
	}
	version, err := c.tmux.Version(ctx)
	if err != nil {
		version = "version unknown"
	}
	report(ok, "tmux", version)

	if _, err := os.Stat(c.paths.ConfigFile); err != nil {
		report(warn, "config", fmt.Sprintf("%s absent (generated on first run)", c.paths.ConfigFile))
	} else if meta, err := config.ReadMetadata(c.paths.ConfigFile); err != nil {
		report(warn, "config", fmt.Sprintf("unreadable metadata: %v", err))
	} else if meta.GenerationID == "" {
		report(ok, "config", c.paths.ConfigFile+" (no metadata block)")
	} else {
		report(ok, "config", fmt.Sprintf("%s generation %s", c.paths.ConfigFile, meta.GenerationID))
	}

	if c.tmux.ServerRunning(ctx) {
		sessions, err := c.tmux.ListSessions(ctx)
		if err != nil {
			return err
		}
		report(ok, "server", fmt.Sprintf("running, %d topic session(s)", len(filterTopics(sessions))))
	} else {
		report(warn, "server", "not running (started on first attach)")
	}

	finder := "none; numbered menu fallback"
	for _, name := range []string{"fzf", "sk"} {
		if path, err := c.lookPath(name); err == nil {
			finder = path
			break
		}
	}
	report(ok, "fuzzy finder", finder)

	return nil
}
