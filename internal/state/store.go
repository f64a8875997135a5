package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/remedyhq/remedy/internal/fsops"
)

// StateStore provides an interface for persisting workspace state.
type StateStore interface {
	// Load loads the workspace state for the given workspace ID.
	// Returns os.ErrNotExist if the state doesn't exist.
	Load(id string) (*WorkspaceState, error)

	// Save saves the workspace state atomically.
	Save(id string, ws *WorkspaceState) error

	// Delete deletes the workspace state file.
	Delete(id string) error
}

// FileStateStore implements StateStore using JSON files on disk.
type FileStateStore struct {
	fs  fsops.FS
	dir string
}

// NewFileStateStore creates a new FileStateStore.
func NewFileStateStore(fs fsops.FS, dir string) *FileStateStore {
	return &FileStateStore{fs: fs, dir: dir}
}

// Load loads the workspace state for the given workspace ID.
func (s *FileStateStore) Load(id string) (*WorkspaceState, error) {
	path := filepath.Join(s.dir, id+".json")

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read workspace state: %w", err)
	}

	var ws WorkspaceState
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace state: %w", err)
	}

	if ws.Workspace == nil {
		ws.Workspace = make(map[string]Value)
	}
	if ws.Projects == nil {
		ws.Projects = make(map[string]map[string]Value)
	}

	return &ws, nil
}

// Save saves the workspace state atomically.
func (s *FileStateStore) Save(id string, ws *WorkspaceState) error {
	path := filepath.Join(s.dir, id+".json")

	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace state: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write workspace state: %w", err)
	}

	return nil
}

// Delete deletes the workspace state file.
func (s *FileStateStore) Delete(id string) error {
	path := filepath.Join(s.dir, id+".json")

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete workspace state: %w", err)
	}

	return nil
}
