package cli

import (
	"fmt"

	"github.com/fatih/color"
)

func (c *CLI) printUsage() {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(c.stdout, "%s — topic-based tmux sessions on an isolated server\n\n", bold.Sprint("ubertmux"))
	fmt.Fprintln(c.stdout, "usage:")

	rows := []struct{ flags, desc string }{
		{"ubertmux", "attach or create the default session"},
		{"ubertmux -t, --topic <name>", "attach or create a topic session"},
		{"ubertmux -s, --select", "pick a topic interactively"},
		{"ubertmux -l, --list-topics [-i]", "list topics; -i browses interactively"},
		{"ubertmux --new-topic <name>", "create a new topic session"},
		{"ubertmux --new-topic --template", "create a new topic from a template menu"},
		{"ubertmux --kill-topic <name>", "kill a topic session"},
		{"ubertmux --doctor", "check tmux, config, and server health"},
		{"ubertmux -h, --help", "show this help"},
		{"ubertmux [...] -- <args>", "pass remaining args to tmux verbatim"},
	}
	for _, r := range rows {
		fmt.Fprintf(c.stdout, "  %-36s %s\n", r.flags, r.desc)
	}

	fmt.Fprintf(c.stdout, "\nenvironment:\n")
	fmt.Fprintf(c.stdout, "  %-36s %s\n", "UBERTMUX_WORKSPACE", "workspace directory for every session (must exist)")
	fmt.Fprintf(c.stdout, "  %-36s %s\n", "UBERTMUX_WORKSPACE_<TOPIC>", "per-topic workspace (skipped when missing)")
	fmt.Fprintf(c.stdout, "\n%s\n", faint.Sprint("sessions live on the dedicated 'ubertmux' server socket; config at ~/.ubertmux.conf"))
}
