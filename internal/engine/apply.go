package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/planner"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// Algorithm steps:
// 1. Load and validate the recipe
// 2. Discover the workspace and load analysis + state
// 3. Resolve the target plan and map empty plans to taxonomy errors
// 4. Run the re-application guard; hand back for confirmation if needed
// 5. Execute targets sequentially, workspace first, re-resolving between
//    targets so later eligibility sees earlier state updates
// 6. After each success, persist the applied marker and provides atomically
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	rec, err := e.recipeRepo.Load(req.RecipeID)
	if err != nil {
		return nil, err
	}

	root, fingerprint, err := e.DiscoverWorkspace(req.CWD)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	an, err := analysis.Load(e.fs, root)
	if err != nil {
		if errors.Is(err, analysis.ErrSnapshotMissing) {
			return nil, fmt.Errorf("%w: run 'remedy analyze' first", ErrAnalysisMissing)
		}
		return nil, err
	}

	ws, workspaceID, err := e.LoadOrCreateWorkspaceState(fingerprint)
	if err != nil {
		return nil, err
	}

	opts := planner.Options{ProjectFilter: req.Project, Force: req.Force}
	plan := planner.Resolve(rec, an, ws, opts)

	result := &ApplyResult{
		SessionID:   uuid.NewString(),
		StartedAt:   e.clock.Now(),
		RecipeID:    rec.ID,
		WorkspaceID: workspaceID,
		Plan:        plan,
	}
	defer func() { result.Duration = e.clock.Now().Sub(result.StartedAt) }()

	if err := checkPlan(rec, an, plan, req.Force); err != nil {
		return result, err
	}

	guard := CheckReapplication(rec, ws, plan, req.Yes, req.Force)
	result.AlreadyApplied = guard.AlreadyApplied
	result.AppliedScopes = guard.AppliedScopes
	if guard.RequiresConfirmation {
		// The caller prompts and re-invokes with Yes set; declining is a
		// cancellation and must leave state untouched.
		result.NeedsConfirmation = true
		return result, nil
	}

	if req.DryRun {
		return result, nil
	}

	// Execute sequentially. Each pass re-resolves the plan against current
	// state: a workspace-level success may have provided facts that change
	// which projects are eligible.
	executed := make(map[string]bool)
	for {
		current := planner.Resolve(rec, an, ws, opts)
		target := nextTarget(current, executed)
		if target == nil {
			break
		}
		executed[target.ScopeKey()] = true

		outcome, err := e.executeTarget(ctx, rec, root, *target)
		if err != nil {
			return result, err
		}

		recordSuccess(ws, rec, target.ScopeKey())
		if err := e.stateStore.Save(workspaceID, ws); err != nil {
			return result, fmt.Errorf("failed to save workspace state: %w", err)
		}

		result.Executed = append(result.Executed, *outcome)
		result.TotalCost += outcome.Cost
	}

	return result, nil
}

// checkPlan maps plan-level outcomes to the error taxonomy. Force bypasses
// unsatisfied dependencies only; structural impossibility stays fatal.
func checkPlan(rec *recipe.Recipe, an *analysis.WorkspaceAnalysis, plan *planner.TargetPlan, force bool) error {
	if plan.EcosystemUnsupported {
		return fmt.Errorf("%w: recipe %s does not support workspace ecosystem %q",
			ErrEcosystemNotSupported, rec.ID, an.WorkspaceEcosystem)
	}

	if target := plan.WorkspaceTarget(); target != nil && !target.Applicability.Satisfied && !force {
		return fmt.Errorf("%w:\n  %s", ErrDependenciesNotSatisfied,
			strings.Join(target.Applicability.Describe(), "\n  "))
	}

	if !plan.HasTargets() {
		if rec.Level == recipe.LevelProject {
			return fmt.Errorf("%w: recipe %s matched no eligible project", ErrNoApplicableProjects, rec.ID)
		}
		return fmt.Errorf("%w: recipe %s cannot run at any scope", ErrNoApplicableScope, rec.ID)
	}

	return nil
}

// nextTarget returns the first target in plan order whose scope has not yet
// executed, or nil when every current target has run.
func nextTarget(plan *planner.TargetPlan, executed map[string]bool) *planner.Target {
	for i := range plan.Targets {
		if !executed[plan.Targets[i].ScopeKey()] {
			return &plan.Targets[i]
		}
	}
	return nil
}

// executeTarget invokes the agent for one target.
func (e *Engine) executeTarget(ctx context.Context, rec *recipe.Recipe, root string, target planner.Target) (*TargetOutcome, error) {
	runID := uuid.NewString()

	prompt, err := e.renderPrompt(rec, target)
	if err != nil {
		return nil, err
	}

	dir := root
	if target.Kind == planner.ScopeProject {
		dir = filepath.Join(root, target.ProjectPath)
	}

	res, err := e.runner.Run(ctx, agent.Request{
		RunID:  runID,
		Prompt: prompt,
		Dir:    dir,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe %s failed at %s: %w", rec.ID, scopeLabel(target), err)
	}

	return &TargetOutcome{Target: target, RunID: runID, Cost: res.Cost}, nil
}

// renderPrompt assembles the agent prompt: a scope header plus the recipe's
// instruction file. Prompt content beyond these fields is the recipe
// author's concern, not the engine's.
func (e *Engine) renderPrompt(rec *recipe.Recipe, target planner.Target) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", rec.ID)
	if rec.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", rec.Title)
	}
	fmt.Fprintf(&b, "Scope: %s\n", scopeLabel(target))
	fmt.Fprintf(&b, "Ecosystem: %s\nVariant: %s\n\n", target.Ecosystem, target.Variant)

	if rec.Prompt != "" {
		data, err := e.fs.ReadFile(filepath.Join(e.recipeRepo.Dir(rec.ID), rec.Prompt))
		if err != nil {
			return "", fmt.Errorf("failed to read recipe prompt: %w", err)
		}
		b.Write(data)
	}

	return b.String(), nil
}

// recordSuccess applies the state-update contract for one target: the
// applied marker plus every declared provide, in the target's scope.
func recordSuccess(ws *state.WorkspaceState, rec *recipe.Recipe, scopeKey string) {
	ws.Set(scopeKey, rec.AppliedKey(), state.BoolValue(true))
	for _, p := range rec.Provides {
		ws.Set(scopeKey, p, state.BoolValue(true))
	}
}

func scopeLabel(target planner.Target) string {
	if target.Kind == planner.ScopeWorkspace {
		return "workspace"
	}
	return "project " + target.ProjectPath
}
