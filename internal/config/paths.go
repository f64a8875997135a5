// Package config manages remedy configuration and filesystem paths.
//
// Configuration includes the locations of remedy data directories, which can
// be customized via environment variables. The default root is ~/.remedy/
// containing recipes/, workspaces/, and the global config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by remedy.
type Paths struct {
	// Root is the base directory for all remedy data (default: ~/.remedy)
	Root string

	// Recipes is the directory containing installed recipe manifests
	Recipes string

	// Workspaces is the directory containing workspace state files
	Workspaces string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for remedy.
// Paths can be overridden with environment variables:
// - REMEDY_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("REMEDY_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".remedy")
	}

	return &Paths{
		Root:       root,
		Recipes:    filepath.Join(root, "recipes"),
		Workspaces: filepath.Join(root, "workspaces"),
		Config:     filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Recipes,
		p.Workspaces,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
