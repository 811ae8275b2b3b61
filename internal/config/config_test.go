package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMaterializeWritesTemplateOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	meta, err := Materialize(path)
	if err != nil {
		t.Fatalf("Materialize() failed: %v", err)
	}
	if meta.Generator != "ubertmux" {
		t.Errorf("Generator = %q, want ubertmux", meta.Generator)
	}
	if meta.GenerationID == "" {
		t.Error("GenerationID should be set on first materialization")
	}
	if meta.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on first materialization")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "set-option -g default-terminal") {
		t.Error("config template body missing")
	}
	if !strings.HasPrefix(content, "# ---\n") {
		t.Error("config should start with the commented metadata block")
	}

	// Second run must leave the file untouched and return the same
	// generation.
	again, err := Materialize(path)
	if err != nil {
		t.Fatalf("second Materialize() failed: %v", err)
	}
	if again.GenerationID != meta.GenerationID {
		t.Errorf("GenerationID changed across runs: %q != %q", again.GenerationID, meta.GenerationID)
	}

	dataAgain, _ := os.ReadFile(path)
	if string(dataAgain) != content {
		t.Error("Materialize() rewrote an existing config file")
	}
}

func TestReadMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	written, err := Materialize(path)
	if err != nil {
		t.Fatalf("Materialize() failed: %v", err)
	}

	read, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() failed: %v", err)
	}
	if read.GenerationID != written.GenerationID {
		t.Errorf("GenerationID = %q, want %q", read.GenerationID, written.GenerationID)
	}
	if !read.CreatedAt.Equal(written.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", read.CreatedAt, written.CreatedAt)
	}
}

func TestReadMetadataHandWrittenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("set-option -g mouse on\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	meta, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() failed on hand-written config: %v", err)
	}
	if meta.GenerationID != "" {
		t.Errorf("GenerationID = %q, want empty for hand-written config", meta.GenerationID)
	}
}

func TestEnsureWorkspaceBindingIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if _, err := Materialize(path); err != nil {
		t.Fatalf("Materialize() failed: %v", err)
	}

	dir := "/home/user/projects/demo"

	added, err := EnsureWorkspaceBinding(path, dir)
	if err != nil {
		t.Fatalf("EnsureWorkspaceBinding() failed: %v", err)
	}
	if !added {
		t.Error("first EnsureWorkspaceBinding() should append")
	}

	added, err = EnsureWorkspaceBinding(path, dir)
	if err != nil {
		t.Fatalf("second EnsureWorkspaceBinding() failed: %v", err)
	}
	if added {
		t.Error("second EnsureWorkspaceBinding() should be a no-op")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if got := strings.Count(string(data), WorkspaceBinding(dir)); got != 1 {
		t.Errorf("binding appears %d times, want 1", got)
	}
}

func TestEnsureWorkspaceBindingDistinctDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if _, err := Materialize(path); err != nil {
		t.Fatalf("Materialize() failed: %v", err)
	}

	for _, dir := range []string{"/srv/a", "/srv/b"} {
		if _, err := EnsureWorkspaceBinding(path, dir); err != nil {
			t.Fatalf("EnsureWorkspaceBinding(%q) failed: %v", dir, err)
		}
	}

	data, _ := os.ReadFile(path)
	for _, dir := range []string{"/srv/a", "/srv/b"} {
		if !strings.Contains(string(data), WorkspaceBinding(dir)) {
			t.Errorf("binding for %q missing", dir)
		}
	}
}

func TestEnsureWorkspaceBindingMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if _, err := EnsureWorkspaceBinding(path, "/srv/a"); err == nil {
		t.Error("EnsureWorkspaceBinding() on a missing config should fail")
	}
}
