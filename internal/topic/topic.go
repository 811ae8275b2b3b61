// Package topic defines topic names and their mappings to tmux session
// names and workspace environment variables. All functions are pure.
package topic

import (
	"fmt"
	"strings"
)

// SessionPrefix is the session name used when no topic is given, and the
// prefix for all topic sessions.
const SessionPrefix = "ubertmux"

// InvalidNameError indicates a topic name containing characters outside
// letters, digits, hyphen, and underscore.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid topic name %q: only letters, digits, '-' and '_' are allowed", e.Name)
}

// Validate checks that name is a usable topic name. Empty names and names
// with characters outside [A-Za-z0-9_-] are rejected.
func Validate(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name}
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return &InvalidNameError{Name: name}
		}
	}
	return nil
}

// SessionName maps a topic to its tmux session name. The empty topic maps
// to the bare default session.
func SessionName(name string) string {
	if name == "" {
		return SessionPrefix
	}
	return SessionPrefix + "-" + name
}

// FromSession is the inverse of SessionName. It reports whether session
// is one of ours, returning the topic name ("" for the default session).
func FromSession(session string) (string, bool) {
	if session == SessionPrefix {
		return "", true
	}
	if rest, ok := strings.CutPrefix(session, SessionPrefix+"-"); ok && rest != "" {
		return rest, true
	}
	return "", false
}

// EnvSuffix normalizes a topic name into the suffix of its workspace
// environment variable: upper-cased, hyphens mapped to underscores.
func EnvSuffix(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
