package engine

import (
	"fmt"
	"os"

	"github.com/remedyhq/remedy/internal/state"
)

// ResetRequest represents a request to delete the workspace's recorded state.
type ResetRequest struct {
	// CWD is the current working directory
	CWD string
}

// ResetResult represents the result of a state reset.
type ResetResult struct {
	// WorkspaceID is the computed workspace ID
	WorkspaceID string

	// Existed indicates state was actually recorded before the reset
	Existed bool
}

// Reset deletes the persisted state document for the current workspace.
// Applied markers and provides are lost; recipes will plan as never applied.
func (e *Engine) Reset(req *ResetRequest) (*ResetResult, error) {
	_, fingerprint, err := e.DiscoverWorkspace(req.CWD)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	workspaceID := state.ComputeWorkspaceID(fingerprint)

	existed := true
	if _, err := e.stateStore.Load(workspaceID); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load workspace state: %w", err)
		}
		existed = false
	}

	if existed {
		if err := e.stateStore.Delete(workspaceID); err != nil {
			return nil, err
		}
	}

	return &ResetResult{WorkspaceID: workspaceID, Existed: existed}, nil
}
