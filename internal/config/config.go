// Package config manages the generated tmux configuration file.
//
// The file lives at a fixed path under the user's home directory. On
// first run the full template is written; afterwards the file is never
// rewritten, only appended to (workspace key bindings, added at most
// once each). The first lines of the file are a commented YAML metadata
// block identifying the generator and the generation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file name under the home directory.
	FileName = ".ubertmux.conf"

	// SocketName isolates our tmux server from the user's default one.
	SocketName = "ubertmux"
)

// metaMarker delimits the commented YAML metadata block.
const metaMarker = "# ---"

// Paths holds the filesystem locations the tool uses.
type Paths struct {
	Home       string
	ConfigFile string
}

// DefaultPaths resolves paths under the current user's home directory.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Paths{
		Home:       home,
		ConfigFile: filepath.Join(home, FileName),
	}, nil
}

// Metadata identifies a generated config file. It is written as a
// commented YAML block at the top of the file so tmux ignores it.
type Metadata struct {
	Generator    string    `yaml:"generator"`
	GenerationID string    `yaml:"generation_id"`
	CreatedAt    time.Time `yaml:"created_at"`
}

// template is the static body of the generated config. It only sets
// conservative defaults; users edit the file freely after generation.
const template = `# ubertmux server configuration. Generated once; edits are preserved.

set-option -g default-terminal "screen-256color"
set-option -g history-limit 50000
set-option -g base-index 1
set-window-option -g pane-base-index 1
set-option -g renumber-windows on
set-option -g mouse on

set-option -g status-left "#[bold][#S] "
set-option -g status-left-length 30
set-option -g status-right "%H:%M %d-%b"

bind-key r source-file ~/` + FileName + ` \; display-message "config reloaded"
`

// Materialize ensures the config file exists, writing the template on
// first run. It returns the file's metadata in either case.
func Materialize(path string) (*Metadata, error) {
	if _, err := os.Stat(path); err == nil {
		return ReadMetadata(path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	meta := &Metadata{
		Generator:    "ubertmux",
		GenerationID: uuid.New().String(),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	header, err := renderMetadata(meta)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(header+"\n"+template), 0644); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return meta, nil
}

// renderMetadata marshals meta to YAML and comments every line so the
// block is inert to tmux.
func renderMetadata(meta *Metadata) (string, error) {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config metadata: %w", err)
	}

	var b strings.Builder
	b.WriteString(metaMarker + "\n")
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		b.WriteString("# " + line + "\n")
	}
	b.WriteString(metaMarker + "\n")
	return b.String(), nil
}

// ReadMetadata parses the commented YAML block at the top of the config
// file. A file without a block (hand-written or pre-metadata) yields an
// empty Metadata, not an error.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != metaMarker {
		return &Metadata{}, nil
	}

	var yamlLines []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == metaMarker {
			break
		}
		yamlLines = append(yamlLines, strings.TrimPrefix(line, "# "))
	}

	meta := &Metadata{}
	if err := yaml.Unmarshal([]byte(strings.Join(yamlLines, "\n")), meta); err != nil {
		return nil, fmt.Errorf("failed to parse config metadata: %w", err)
	}
	return meta, nil
}

// WorkspaceBinding returns the key binding line for a workspace
// directory: prefix + W opens a new window there.
func WorkspaceBinding(dir string) string {
	return fmt.Sprintf("bind-key W new-window -c %q", dir)
}

// EnsureWorkspaceBinding appends the workspace binding for dir unless an
// identical binding is already present. It reports whether a write
// happened, so repeated invocations with the same workspace never
// duplicate the line.
func EnsureWorkspaceBinding(path, dir string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	binding := WorkspaceBinding(dir)
	if strings.Contains(string(data), binding) {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open config file for append: %w", err)
	}
	defer f.Close()

	content := binding + "\n"
	if !strings.HasSuffix(string(data), "\n") {
		content = "\n" + content
	}
	if _, err := f.WriteString(content); err != nil {
		return false, fmt.Errorf("failed to append workspace binding: %w", err)
	}
	return true, nil
}
