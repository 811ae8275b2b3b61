package cli

import (
	"strings"

	"github.com/micheal-at/ubertmux/internal/errors"
)

// Action is the terminal action selected by the command line. Exactly
// one action runs per invocation; later flags in the same category
// overwrite earlier ones.
type Action int

const (
	// ActionDefault attaches to or creates the default session.
	ActionDefault Action = iota
	// ActionTopic attaches to or creates a topic session.
	ActionTopic
	// ActionList lists topic sessions.
	ActionList
	// ActionNewTopic creates a new topic session.
	ActionNewTopic
	// ActionSelect runs the interactive topic picker.
	ActionSelect
	// ActionKill kills a topic session.
	ActionKill
	// ActionDoctor prints an environment diagnostic.
	ActionDoctor
	// ActionHelp prints usage.
	ActionHelp
)

// Request is the parsed form of one invocation. Immutable after Parse.
type Request struct {
	Action      Action
	Topic       string
	Passthrough []string
	Interactive bool
	Template    bool
}

// Parse converts command-line tokens into a Request. Everything after
// "--" is captured verbatim for the tmux invocation. Unknown flags
// before "--" are fatal.
func Parse(args []string) (*Request, error) {
	req := &Request{Action: ActionDefault}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--":
			req.Passthrough = args[i+1:]
			return validate(req)
		case "-t", "--topic":
			value, ok := takeValue(args, i)
			if !ok {
				return nil, errors.Usagef("flag %s requires a topic name", arg)
			}
			req.Action = ActionTopic
			req.Topic = value
			i++
		case "-s", "--select":
			req.Action = ActionSelect
		case "-l", "--list-topics":
			req.Action = ActionList
		case "-i":
			req.Interactive = true
		case "--new-topic":
			req.Action = ActionNewTopic
			if value, ok := takeValue(args, i); ok {
				req.Topic = value
				i++
			}
		case "--template":
			req.Template = true
		case "--kill-topic":
			value, ok := takeValue(args, i)
			if !ok {
				return nil, errors.Usagef("flag %s requires a topic name", arg)
			}
			req.Action = ActionKill
			req.Topic = value
			i++
		case "--doctor":
			req.Action = ActionDoctor
		case "-h", "--help":
			req.Action = ActionHelp
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, errors.Usagef("unknown flag %q", arg)
			}
			return nil, errors.Usagef("unexpected argument %q", arg)
		}
	}

	return validate(req)
}

// takeValue returns the token after position i when it exists and is
// not itself a flag.
func takeValue(args []string, i int) (string, bool) {
	if i+1 >= len(args) {
		return "", false
	}
	next := args[i+1]
	if strings.HasPrefix(next, "-") {
		return "", false
	}
	return next, true
}

func validate(req *Request) (*Request, error) {
	if req.Action == ActionNewTopic && req.Topic == "" && !req.Template {
		return nil, errors.Usagef("--new-topic requires a topic name or --template")
	}
	if req.Template && req.Action != ActionNewTopic {
		return nil, errors.Usagef("--template is only valid with --new-topic")
	}
	return req, nil
}
