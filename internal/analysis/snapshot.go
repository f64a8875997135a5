package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/remedyhq/remedy/internal/fsops"
)

// SnapshotFileName is the analysis snapshot file, relative to SnapshotDir.
const SnapshotFileName = "analysis.json"

// SnapshotDir is the workspace-local remedy data directory.
const SnapshotDir = ".remedy"

// ErrSnapshotMissing indicates no usable analysis snapshot exists for the
// workspace. A corrupt snapshot is treated the same as a missing one so the
// caller regenerates rather than failing on stale bytes.
var ErrSnapshotMissing = errors.New("analysis snapshot missing")

// SnapshotPath returns the snapshot path for a workspace root.
func SnapshotPath(root string) string {
	return filepath.Join(root, SnapshotDir, SnapshotFileName)
}

// Load reads the analysis snapshot for the workspace rooted at root.
// Returns ErrSnapshotMissing when the snapshot is absent or unreadable.
func Load(fs fsops.FS, root string) (*WorkspaceAnalysis, error) {
	data, err := fs.ReadFile(SnapshotPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("failed to read analysis snapshot: %w", err)
	}

	var a WorkspaceAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: corrupt snapshot: %v", ErrSnapshotMissing, err)
	}

	return &a, nil
}

// Save writes an analysis snapshot for the workspace rooted at root.
// Used after the external analyzer regenerates the analysis.
func Save(fs fsops.FS, root string, a *WorkspaceAnalysis) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis snapshot: %w", err)
	}

	if err := fs.AtomicWrite(SnapshotPath(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis snapshot: %w", err)
	}

	return nil
}

// ProjectByPath returns the project with the given relative path.
func (a *WorkspaceAnalysis) ProjectByPath(path string) (*ProjectAnalysis, bool) {
	for i := range a.Projects {
		if a.Projects[i].Path == path {
			return &a.Projects[i], true
		}
	}
	return nil, false
}
