package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Agent.Command != "claude" {
		t.Errorf("expected default agent command claude, got %s", cfg.Agent.Command)
	}
	if cfg.Agent.Timeout != 30*time.Minute {
		t.Errorf("expected default timeout 30m, got %s", cfg.Agent.Timeout)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Command != "claude" {
		t.Errorf("expected defaults for missing file, got command %s", cfg.Agent.Command)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "agent:\n  command: my-agent\n  args: [\"--quiet\"]\n  timeout: 5m\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Command != "my-agent" {
		t.Errorf("Command = %q, want my-agent", cfg.Agent.Command)
	}
	if len(cfg.Agent.Args) != 1 || cfg.Agent.Args[0] != "--quiet" {
		t.Errorf("Args = %v, want [--quiet]", cfg.Agent.Args)
	}
	if cfg.Agent.Timeout != 5*time.Minute {
		t.Errorf("Timeout = %s, want 5m", cfg.Agent.Timeout)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("agent: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestDefaultPaths_RespectsEnvOverride(t *testing.T) {
	t.Setenv("REMEDY_ROOT", "/tmp/remedy-test-root")

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths.Root != "/tmp/remedy-test-root" {
		t.Errorf("Root = %q, want /tmp/remedy-test-root", paths.Root)
	}
	if paths.Recipes != filepath.Join(paths.Root, "recipes") {
		t.Errorf("Recipes = %q, want under root", paths.Recipes)
	}
	if paths.Workspaces != filepath.Join(paths.Root, "workspaces") {
		t.Errorf("Workspaces = %q, want under root", paths.Workspaces)
	}
}
