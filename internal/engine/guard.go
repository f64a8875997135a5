package engine

import (
	"github.com/remedyhq/remedy/internal/planner"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// ReapplyCheck is the outcome of the re-application guard.
type ReapplyCheck struct {
	// AlreadyApplied indicates the applied marker is truthy in at least one
	// of the plan's target scopes
	AlreadyApplied bool

	// RequiresConfirmation indicates the caller must obtain interactive
	// confirmation before proceeding
	RequiresConfirmation bool

	// AppliedScopes lists the scopes carrying the marker: "workspace" or
	// project relative paths, in plan order
	AppliedScopes []string
}

// CheckReapplication looks up the recipe's applied marker in every scope the
// plan targets. When found and neither a yes nor a force override is set,
// confirmation is required; declining is a cancellation, not an error.
func CheckReapplication(rec *recipe.Recipe, ws *state.WorkspaceState, plan *planner.TargetPlan, yes, force bool) ReapplyCheck {
	var check ReapplyCheck

	appliedKey := rec.AppliedKey()
	for _, target := range plan.Targets {
		v, ok := ws.Lookup(target.ScopeKey(), appliedKey)
		if !ok || !v.Truthy() {
			continue
		}
		check.AlreadyApplied = true
		label := target.ProjectPath
		if target.Kind == planner.ScopeWorkspace {
			label = "workspace"
		}
		check.AppliedScopes = append(check.AppliedScopes, label)
	}

	check.RequiresConfirmation = check.AlreadyApplied && !yes && !force
	return check
}
