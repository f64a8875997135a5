package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/clock"
	"github.com/remedyhq/remedy/internal/config"
	"github.com/remedyhq/remedy/internal/engine"
	"github.com/remedyhq/remedy/internal/fsops"
	"github.com/remedyhq/remedy/internal/gitx"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

const testFingerprint = "repo-fingerprint-123"

// env holds a fully wired engine over real file-backed stores in temp dirs.
type env struct {
	engine     *engine.Engine
	root       string
	paths      config.Paths
	stateStore *state.FileStateStore
	runner     *agent.ScriptedRunner
}

// setupTestEngine wires an engine with the production recipe catalog and
// state store over temp directories; only git and the agent are faked.
func setupTestEngine(t *testing.T) *env {
	t.Helper()

	root := t.TempDir()
	dataRoot := t.TempDir()
	paths := config.Paths{
		Root:       dataRoot,
		Recipes:    filepath.Join(dataRoot, "recipes"),
		Workspaces: filepath.Join(dataRoot, "workspaces"),
		Config:     filepath.Join(dataRoot, "config.yaml"),
	}
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}

	fs := fsops.NewRealFS()
	stateStore := state.NewFileStateStore(fs, paths.Workspaces)
	recipeRepo := recipe.NewFileRepo(fs, paths.Recipes)
	gitRepo := gitx.NewFakeGitRepo(root, testFingerprint)
	runner := &agent.ScriptedRunner{}
	clk := clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	return &env{
		engine:     engine.New(gitRepo, recipeRepo, stateStore, fs, runner, clk, paths),
		root:       root,
		paths:      paths,
		stateStore: stateStore,
		runner:     runner,
	}
}

// installRecipe writes a recipe manifest and prompt file into the catalog.
func (e *env) installRecipe(t *testing.T, id, manifest string) {
	t.Helper()

	dir := filepath.Join(e.paths.Recipes, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, recipe.ManifestFileName), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompt.md"), []byte("Apply the fix.\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

// writeAnalysis writes the analysis snapshot into the workspace root.
func (e *env) writeAnalysis(t *testing.T, a *analysis.WorkspaceAnalysis) {
	t.Helper()

	if err := analysis.Save(fsops.NewRealFS(), e.root, a); err != nil {
		t.Fatalf("failed to write analysis snapshot: %v", err)
	}
}
