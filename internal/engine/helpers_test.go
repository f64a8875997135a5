package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/clock"
	"github.com/remedyhq/remedy/internal/config"
	"github.com/remedyhq/remedy/internal/fsops"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

const testFingerprint = "fp-test"

// fakeGit returns a fixed root and fingerprint.
type fakeGit struct {
	root        string
	fingerprint string
}

func (g *fakeGit) Discover(cwd string) (string, error) {
	if g.root == "" {
		return "", errors.New("not a git repository")
	}
	return g.root, nil
}

func (g *fakeGit) Fingerprint(root string) (string, error) {
	return g.fingerprint, nil
}

// memRecipeRepo serves recipes from memory, with an on-disk dir for prompts.
type memRecipeRepo struct {
	recipes map[string]*recipe.Recipe
	baseDir string
}

func (r *memRecipeRepo) List() ([]string, error) {
	var ids []string
	for id := range r.recipes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memRecipeRepo) Exists(id string) (bool, error) {
	_, ok := r.recipes[id]
	return ok, nil
}

func (r *memRecipeRepo) Load(id string) (*recipe.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %q is not installed: %w", id, os.ErrNotExist)
	}
	return rec, nil
}

func (r *memRecipeRepo) Dir(id string) string {
	return filepath.Join(r.baseDir, id)
}

// memStateStore keeps workspace state in memory and counts saves.
type memStateStore struct {
	states map[string]*state.WorkspaceState
	saves  int
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]*state.WorkspaceState)}
}

func (s *memStateStore) Load(workspaceID string) (*state.WorkspaceState, error) {
	ws, ok := s.states[workspaceID]
	if !ok {
		return nil, os.ErrNotExist
	}
	return ws, nil
}

func (s *memStateStore) Save(workspaceID string, ws *state.WorkspaceState) error {
	s.states[workspaceID] = ws
	s.saves++
	return nil
}

func (s *memStateStore) Delete(workspaceID string) error {
	delete(s.states, workspaceID)
	return nil
}

// testEnv wires an Engine from fakes plus a real temp-dir filesystem.
type testEnv struct {
	engine *Engine
	root   string
	repo   *memRecipeRepo
	store  *memStateStore
	runner *agent.ScriptedRunner
}

func newTestEnv(t *testing.T, rec *recipe.Recipe, an *analysis.WorkspaceAnalysis, ws *state.WorkspaceState) *testEnv {
	t.Helper()

	root := t.TempDir()
	fs := fsops.NewRealFS()

	if an != nil {
		if err := analysis.Save(fs, root, an); err != nil {
			t.Fatalf("failed to write analysis snapshot: %v", err)
		}
	}

	repo := &memRecipeRepo{recipes: make(map[string]*recipe.Recipe), baseDir: t.TempDir()}
	if rec != nil {
		repo.recipes[rec.ID] = rec
	}

	store := newMemStateStore()
	if ws != nil {
		store.states[state.ComputeWorkspaceID(testFingerprint)] = ws
	}

	runner := &agent.ScriptedRunner{}
	git := &fakeGit{root: root, fingerprint: testFingerprint}
	paths := config.Paths{Root: root}

	return &testEnv{
		engine: New(git, repo, store, fs, runner, clock.NewFakeClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)), paths),
		root:   root,
		repo:   repo,
		store:  store,
		runner: runner,
	}
}

// savedState returns the persisted state for the test workspace.
func (env *testEnv) savedState(t *testing.T) *state.WorkspaceState {
	t.Helper()
	ws, ok := env.store.states[state.ComputeWorkspaceID(testFingerprint)]
	if !ok {
		t.Fatal("expected workspace state to be saved")
	}
	return ws
}

// lintRecipe is a workspace-level recipe supporting the js ecosystem.
func lintRecipe(level recipe.Level) *recipe.Recipe {
	return &recipe.Recipe{
		ID:    "add-linting",
		Title: "Add linting",
		Level: level,
		Ecosystems: []recipe.Ecosystem{{
			ID:             "js",
			DefaultVariant: "eslint",
			Variants:       []recipe.Variant{{ID: "eslint"}},
		}},
		Provides: []string{"linting.configured"},
	}
}

// jsWorkspace builds an analysis snapshot with a js workspace ecosystem.
func jsWorkspace(projects ...analysis.ProjectAnalysis) *analysis.WorkspaceAnalysis {
	return &analysis.WorkspaceAnalysis{
		IsMonorepo:                 len(projects) > 1,
		HasWorkspacePackageManager: true,
		WorkspaceEcosystem:         "js",
		Projects:                   projects,
	}
}

func jsProject(path string) analysis.ProjectAnalysis {
	return analysis.ProjectAnalysis{
		Path:              path,
		Language:          "typescript",
		Ecosystem:         "js",
		Type:              "api_server",
		HasPackageManager: true,
	}
}
