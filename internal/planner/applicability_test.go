package planner

import (
	"testing"

	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

func testAnalysis() *analysis.WorkspaceAnalysis {
	return &analysis.WorkspaceAnalysis{
		IsMonorepo:         true,
		WorkspaceEcosystem: "node",
		Projects: []analysis.ProjectAnalysis{
			{Path: "apps/api", Language: "python", Ecosystem: "pip", Type: "api_server"},
			{Path: "apps/web", Language: "typescript", Ecosystem: "node", Type: "web_app"},
		},
	}
}

func TestValidate_NoRequirementsAlwaysSatisfied(t *testing.T) {
	app := Validate(nil, state.NewWorkspaceState(), testAnalysis(), nil)

	if !app.Satisfied {
		t.Error("empty requirement list must be satisfied")
	}
	if len(app.Missing) != 0 || len(app.Conflicting) != 0 {
		t.Errorf("expected empty result, got %+v", app)
	}
}

func TestValidate_UnresolvableIsMissingNeverConflicting(t *testing.T) {
	reqs := []recipe.Dependency{
		{Key: "prerequisite.exists", Equals: "true"},
		{Key: "workspace.unknown_characteristic", Equals: "x"},
	}

	app := Validate(reqs, state.NewWorkspaceState(), testAnalysis(), nil)

	if app.Satisfied {
		t.Error("expected unsatisfied")
	}
	if len(app.Missing) != 2 {
		t.Errorf("Missing = %+v, want both requirements", app.Missing)
	}
	if len(app.Conflicting) != 0 {
		t.Errorf("unresolvable keys must never be conflicting, got %+v", app.Conflicting)
	}
}

func TestValidate_WorkspaceCharacteristics(t *testing.T) {
	reqs := []recipe.Dependency{
		{Key: "workspace.is_monorepo", Equals: "true"},
		{Key: "workspace.ecosystem", Equals: "node"},
	}

	app := Validate(reqs, state.NewWorkspaceState(), testAnalysis(), nil)
	if !app.Satisfied {
		t.Errorf("expected satisfied, got %+v", app)
	}
}

func TestValidate_ConflictReportsBothValues(t *testing.T) {
	reqs := []recipe.Dependency{{Key: "workspace.ecosystem", Equals: "pip"}}

	app := Validate(reqs, state.NewWorkspaceState(), testAnalysis(), nil)

	if len(app.Conflicting) != 1 {
		t.Fatalf("Conflicting = %+v, want one entry", app.Conflicting)
	}
	c := app.Conflicting[0]
	if c.Key != "workspace.ecosystem" || c.Required != "pip" || c.Current != "node" {
		t.Errorf("conflict = %+v", c)
	}
}

func TestValidate_ProjectKeyWithoutProjectIsMissing(t *testing.T) {
	reqs := []recipe.Dependency{{Key: "project.type", Equals: "api_server"}}

	app := Validate(reqs, state.NewWorkspaceState(), testAnalysis(), nil)

	if len(app.Missing) != 1 {
		t.Fatalf("expected missing, got %+v", app)
	}
	if len(app.Conflicting) != 0 {
		t.Error("unbound project key must be missing, not conflicting")
	}
}

func TestValidate_ProjectCharacteristics(t *testing.T) {
	an := testAnalysis()
	reqs := []recipe.Dependency{{Key: "project.type", Equals: "api_server"}}

	app := Validate(reqs, state.NewWorkspaceState(), an, &an.Projects[0])
	if !app.Satisfied {
		t.Errorf("api project should satisfy, got %+v", app)
	}

	app = Validate(reqs, state.NewWorkspaceState(), an, &an.Projects[1])
	if app.Satisfied || len(app.Conflicting) != 1 {
		t.Errorf("web project should conflict, got %+v", app)
	}
}

func TestValidate_StateKeysResolveInScopedMap(t *testing.T) {
	an := testAnalysis()
	ws := state.NewWorkspaceState()
	ws.Set("", "ci.configured", state.BoolValue(true))
	ws.Set("apps/api", "dockerize.applied", state.BoolValue(true))

	reqs := []recipe.Dependency{{Key: "ci.configured", Equals: "true"}}

	// Workspace scope sees the workspace fact
	if app := Validate(reqs, ws, an, nil); !app.Satisfied {
		t.Errorf("workspace scope should satisfy, got %+v", app)
	}
	// Project scope does not inherit workspace facts
	if app := Validate(reqs, ws, an, &an.Projects[0]); app.Satisfied {
		t.Error("project scope must not inherit workspace state facts")
	}

	appliedReqs := []recipe.Dependency{{Key: "dockerize.applied", Equals: "true"}}
	if app := Validate(appliedReqs, ws, an, &an.Projects[0]); !app.Satisfied {
		t.Errorf("project scope should see its own applied marker, got %+v", app)
	}
}

func TestValidate_NoShortCircuitPreservesDeclarationOrder(t *testing.T) {
	an := testAnalysis()
	reqs := []recipe.Dependency{
		{Key: "first.missing", Equals: "x"},
		{Key: "workspace.ecosystem", Equals: "pip"}, // conflicts
		{Key: "second.missing", Equals: "y"},
	}

	app := Validate(reqs, state.NewWorkspaceState(), an, nil)

	if len(app.Missing) != 2 || len(app.Conflicting) != 1 {
		t.Fatalf("expected full evaluation, got %+v", app)
	}
	if app.Missing[0].Key != "first.missing" || app.Missing[1].Key != "second.missing" {
		t.Errorf("missing order = %+v, want declaration order", app.Missing)
	}
}

func TestApplicability_DescribeItemizesEveryEntry(t *testing.T) {
	an := testAnalysis()
	reqs := []recipe.Dependency{
		{Key: "a.missing", Equals: "1"},
		{Key: "workspace.ecosystem", Equals: "pip"},
	}

	lines := Validate(reqs, state.NewWorkspaceState(), an, nil).Describe()
	if len(lines) != 2 {
		t.Fatalf("Describe = %v, want 2 lines", lines)
	}
}

func TestValidate_BooleanStateCoercion(t *testing.T) {
	an := testAnalysis()
	ws := state.NewWorkspaceState()
	ws.Set("", "prerequisite.exists", state.BoolValue(true))

	reqs := []recipe.Dependency{{Key: "prerequisite.exists", Equals: "true"}}
	if app := Validate(reqs, ws, an, nil); !app.Satisfied {
		t.Errorf("boolean state value should compare as \"true\", got %+v", app)
	}
}
