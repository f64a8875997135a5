package cli

import (
	"bytes"
	"strings"
	"testing"
)

// resetStickyFlags clears flag values left on the shared rootCmd by a
// previous Execute call; cobra flag state persists across executions.
func resetStickyFlags(t *testing.T) {
	t.Cleanup(func() {
		for _, name := range []string{"help", "version"} {
			if f := rootCmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
				f.Changed = false
			}
		}
	})
}

func TestRootCommand_Help(t *testing.T) {
	resetStickyFlags(t)
	rootCmd.SetArgs([]string{"--help"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if output == "" {
		t.Error("expected help output, got empty string")
	}
	if !strings.Contains(output, "remedy") {
		t.Error("expected help to contain 'remedy'")
	}
}

func TestRootCommand_Version(t *testing.T) {
	resetStickyFlags(t)
	SetVersion("1.2.3")
	rootCmd.SetArgs([]string{"--version"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out := buf.String(); !strings.Contains(out, "1.2.3") {
		t.Errorf("expected version output to contain version, got %q", out)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"invalid-command"})
	var buf bytes.Buffer
	rootCmd.SetErr(&buf)

	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestSetVersion_EmptyKeepsCurrent(t *testing.T) {
	SetVersion("2.0.0")
	SetVersion("")
	if rootCmd.Version != "2.0.0" {
		t.Errorf("empty version must not override, got %q", rootCmd.Version)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	subcommands := []string{"apply", "validate", "status", "analyze", "reset", "recipes", "version"}

	for _, cmd := range subcommands {
		t.Run(cmd, func(t *testing.T) {
			subCmd, _, err := rootCmd.Find([]string{cmd})
			if err != nil {
				t.Errorf("Find(%q) error = %v", cmd, err)
			}
			if subCmd == nil {
				t.Errorf("Find(%q) returned nil command", cmd)
			}
		})
	}
}

func TestRecipeIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/add-linting.git", "add-linting"},
		{"https://github.com/acme/add-linting", "add-linting"},
		{"git@github.com:acme/add-docker.git", "add-docker"},
		{"https://example.com/recipes/add-ci/", "add-ci"},
	}

	for _, tt := range tests {
		if got := recipeIDFromURL(tt.url); got != tt.want {
			t.Errorf("recipeIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
