package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// Status summarizes the current workspace: identity, analysis availability,
// applied recipes, and recorded fact counts. Never fails on missing
// analysis or empty state; those simply report as absent.
func (e *Engine) Status(req *StatusRequest) (*StatusResult, error) {
	root, fingerprint, err := e.DiscoverWorkspace(req.CWD)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	ws, workspaceID, err := e.LoadOrCreateWorkspaceState(fingerprint)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		WorkspaceID:     workspaceID,
		RepoFingerprint: fingerprint,
		Root:            root,
	}

	an, err := analysis.Load(e.fs, root)
	if err == nil {
		result.HasAnalysis = true
		result.IsMonorepo = an.IsMonorepo
		result.WorkspaceEcosystem = an.WorkspaceEcosystem
		result.ProjectCount = len(an.Projects)
	} else if !errors.Is(err, analysis.ErrSnapshotMissing) {
		return nil, err
	}

	result.WorkspaceFactCount = len(ws.Workspace)
	for scope, facts := range ws.Projects {
		result.ProjectFactCount += len(facts)
		result.AppliedRecipes = append(result.AppliedRecipes, appliedIn(scope, facts)...)
	}
	result.AppliedRecipes = append(result.AppliedRecipes, appliedIn("", ws.Workspace)...)

	sort.Slice(result.AppliedRecipes, func(i, j int) bool {
		a, b := result.AppliedRecipes[i], result.AppliedRecipes[j]
		if a.RecipeID != b.RecipeID {
			return a.RecipeID < b.RecipeID
		}
		return a.Scope < b.Scope
	})

	return result, nil
}

// appliedIn extracts truthy applied markers from one scope's fact map.
func appliedIn(scope string, facts map[string]state.Value) []AppliedRecipe {
	label := scope
	if label == "" {
		label = "workspace"
	}

	var out []AppliedRecipe
	for key, v := range facts {
		if !strings.HasSuffix(key, recipe.AppliedKeySuffix) || !v.Truthy() {
			continue
		}
		out = append(out, AppliedRecipe{
			RecipeID: strings.TrimSuffix(key, recipe.AppliedKeySuffix),
			Scope:    label,
		})
	}
	return out
}
