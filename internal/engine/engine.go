// Package engine provides the core business logic for remedy operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// the decision layers. It coordinates workspace discovery, recipe loading,
// scope planning, agent invocation, and state persistence.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Apply: Plans and executes a recipe across its resolved targets
//   - CheckReapplication: Gates re-running an already-applied recipe
//   - ValidateRecipeState: Verifies persisted state against a recipe's claims
package engine

import (
	"fmt"
	"os"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/clock"
	"github.com/remedyhq/remedy/internal/config"
	"github.com/remedyhq/remedy/internal/fsops"
	"github.com/remedyhq/remedy/internal/gitx"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// Engine orchestrates all remedy operations.
// It is the main API surface called by the CLI.
type Engine struct {
	gitRepo     gitx.GitRepo
	recipeRepo  recipe.Repo
	stateStore  state.StateStore
	fs          fsops.FS
	runner      agent.Runner
	clock       clock.Clock
	configPaths config.Paths
}

// New creates a new Engine with the given dependencies.
func New(
	gitRepo gitx.GitRepo,
	recipeRepo recipe.Repo,
	stateStore state.StateStore,
	fs fsops.FS,
	runner agent.Runner,
	clk clock.Clock,
	paths config.Paths,
) *Engine {
	return &Engine{
		gitRepo:     gitRepo,
		recipeRepo:  recipeRepo,
		stateStore:  stateStore,
		fs:          fs,
		runner:      runner,
		clock:       clk,
		configPaths: paths,
	}
}

// DiscoverWorkspace returns the workspace root and its fingerprint.
func (e *Engine) DiscoverWorkspace(cwd string) (root, fingerprint string, err error) {
	root, err = e.gitRepo.Discover(cwd)
	if err != nil {
		// Outside a git repository the directory itself is the workspace.
		root = cwd
	}

	fingerprint, err = e.gitRepo.Fingerprint(root)
	if err != nil {
		return "", "", fmt.Errorf("failed to compute workspace fingerprint: %w", err)
	}

	return root, fingerprint, nil
}

// LoadOrCreateWorkspaceState loads the persisted state for a workspace,
// creating an empty document when none exists yet.
func (e *Engine) LoadOrCreateWorkspaceState(fingerprint string) (*state.WorkspaceState, string, error) {
	workspaceID := state.ComputeWorkspaceID(fingerprint)
	ws, err := e.stateStore.Load(workspaceID)
	if err != nil {
		if os.IsNotExist(err) {
			return state.NewWorkspaceState(), workspaceID, nil
		}
		return nil, workspaceID, fmt.Errorf("failed to load workspace state: %w", err)
	}
	return ws, workspaceID, nil
}
