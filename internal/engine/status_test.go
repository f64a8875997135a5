package engine

import (
	"reflect"
	"testing"

	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

func TestStatusFreshWorkspace(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	result, err := env.engine.Status(&StatusRequest{CWD: env.root})
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if result.HasAnalysis {
		t.Error("expected no analysis")
	}
	if result.WorkspaceID == "" || result.RepoFingerprint != testFingerprint {
		t.Errorf("unexpected identity: %+v", result)
	}
	if len(result.AppliedRecipes) != 0 {
		t.Errorf("expected no applied recipes, got %v", result.AppliedRecipes)
	}
}

func TestStatusReportsAppliedRecipes(t *testing.T) {
	ws := state.NewWorkspaceState()
	ws.Set("", "add-linting.applied", state.BoolValue(true))
	ws.Set("", "linting.configured", state.BoolValue(true))
	ws.Set("apps/api", "add-docker.applied", state.BoolValue(true))
	ws.Set("apps/api", "add-testing.applied", state.StringValue("false"))
	env := newTestEnv(t, lintRecipe(recipe.LevelWorkspace), jsWorkspace(jsProject("apps/api")), ws)

	result, err := env.engine.Status(&StatusRequest{CWD: env.root})
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	want := []AppliedRecipe{
		{RecipeID: "add-docker", Scope: "apps/api"},
		{RecipeID: "add-linting", Scope: "workspace"},
	}
	if !reflect.DeepEqual(result.AppliedRecipes, want) {
		t.Errorf("expected %v, got %v", want, result.AppliedRecipes)
	}

	if !result.HasAnalysis || result.WorkspaceEcosystem != "js" || result.ProjectCount != 1 {
		t.Errorf("unexpected analysis summary: %+v", result)
	}
	if result.WorkspaceFactCount != 2 || result.ProjectFactCount != 2 {
		t.Errorf("unexpected fact counts: %+v", result)
	}
}
