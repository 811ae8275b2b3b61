// Package workspace resolves the working directory for a new session.
//
// Resolution order: the global UBERTMUX_WORKSPACE override (hard
// requirement when set), then the per-topic UBERTMUX_WORKSPACE_<TOPIC>
// variable (advisory: a missing directory falls through), then the
// process's current working directory.
package workspace

import (
	"fmt"
	"os"

	"github.com/micheal-at/ubertmux/internal/topic"
)

const (
	// EnvGlobal overrides the workspace for every invocation.
	EnvGlobal = "UBERTMUX_WORKSPACE"

	// envTopicPrefix prefixes per-topic override variables; the suffix
	// is the normalized topic name (see topic.EnvSuffix).
	envTopicPrefix = "UBERTMUX_WORKSPACE_"
)

// Source records which tier produced the resolved directory.
type Source int

const (
	// SourceCwd means no override applied; the current directory is used.
	SourceCwd Source = iota
	// SourceGlobal means the global override variable applied.
	SourceGlobal
	// SourceTopic means a per-topic override variable applied.
	SourceTopic
)

// NotFoundError indicates an explicitly requested workspace directory
// that does not exist.
type NotFoundError struct {
	Var  string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workspace %q (from %s) is not a directory", e.Path, e.Var)
}

// Resolver resolves workspace directories. The environment lookup is
// injected so tests can substitute a fixed mapping.
type Resolver struct {
	// Lookup reads an environment variable. Defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)

	// Getwd returns the current working directory. Defaults to os.Getwd.
	Getwd func() (string, error)
}

// NewResolver creates a Resolver backed by the real process environment.
func NewResolver() *Resolver {
	return &Resolver{
		Lookup: os.LookupEnv,
		Getwd:  os.Getwd,
	}
}

// EnvVar returns the per-topic override variable name for topicName.
func EnvVar(topicName string) string {
	return envTopicPrefix + topic.EnvSuffix(topicName)
}

// Resolve determines the working directory for a session on topicName
// (empty for the default session). A set global override must name an
// existing directory or resolution fails; a set per-topic override that
// names a missing directory is skipped silently.
func (r *Resolver) Resolve(topicName string) (string, Source, error) {
	if dir, ok := r.Lookup(EnvGlobal); ok && dir != "" {
		if !isDir(dir) {
			return "", SourceGlobal, &NotFoundError{Var: EnvGlobal, Path: dir}
		}
		return dir, SourceGlobal, nil
	}

	if topicName != "" {
		envVar := EnvVar(topicName)
		if dir, ok := r.Lookup(envVar); ok && dir != "" && isDir(dir) {
			return dir, SourceTopic, nil
		}
	}

	cwd, err := r.Getwd()
	if err != nil {
		return "", SourceCwd, fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, SourceCwd, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
