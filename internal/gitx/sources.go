package gitx

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Sources provides operations for fetching recipe source repositories.
type Sources interface {
	// Clone clones the repository at url into dir. dir must not exist yet.
	Clone(url, dir string) error

	// Pull updates an already-cloned repository at dir.
	Pull(dir string) error
}

// RealSources is the production implementation using exec.Command.
type RealSources struct{}

// NewRealSources creates a new RealSources.
func NewRealSources() *RealSources {
	return &RealSources{}
}

// runGit executes a git command in dir and returns trimmed stdout.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git command failed: %w\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Clone clones the repository at url into dir.
func (s *RealSources) Clone(url, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("destination already exists: %s", dir)
	}

	if _, err := runGit(".", "clone", "--depth", "1", url, dir); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}

	return nil
}

// Pull updates an already-cloned repository at dir.
func (s *RealSources) Pull(dir string) error {
	if _, err := runGit(dir, "pull", "--ff-only"); err != nil {
		return fmt.Errorf("failed to pull %s: %w", dir, err)
	}

	return nil
}
