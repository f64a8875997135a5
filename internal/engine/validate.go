package engine

import (
	"fmt"
	"strings"
)

// ValidateState verifies persisted state against a recipe's declared
// provides. The returned result carries the full report even when an error
// is returned; the error classifies the most severe finding so callers can
// map it to an exit code.
func (e *Engine) ValidateState(req *ValidateStateRequest) (*ValidateStateResult, error) {
	rec, err := e.recipeRepo.Load(req.RecipeID)
	if err != nil {
		return nil, err
	}

	_, fingerprint, err := e.DiscoverWorkspace(req.CWD)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	ws, workspaceID, err := e.LoadOrCreateWorkspaceState(fingerprint)
	if err != nil {
		return nil, err
	}

	report := ValidateRecipeState(rec, ws)
	result := &ValidateStateResult{WorkspaceID: workspaceID, Report: report}

	if !report.Applied {
		return result, fmt.Errorf("%w: %s", ErrRecipeNotApplied, rec.ID)
	}
	if len(report.MissingProvides) > 0 {
		return result, fmt.Errorf("%w: %s", ErrMissingProvides,
			strings.Join(report.MissingProvides, ", "))
	}
	if len(report.RedundantKeys) > 0 {
		return result, fmt.Errorf("%w: %s", ErrRedundantKeys,
			strings.Join(report.RedundantKeys, ", "))
	}

	return result, nil
}
