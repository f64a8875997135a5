package planner

import (
	"strings"

	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// Options tunes scope resolution.
type Options struct {
	// ProjectFilter restricts project targets to paths matching it
	// (exact path or substring). Empty matches every project.
	ProjectFilter string

	// Force treats unsatisfied dependencies as eligible. It never bypasses
	// ecosystem support checks.
	Force bool
}

// Resolve decides where the recipe may run, producing an ordered target
// plan: workspace target first, then project targets in analysis order.
//
// Level semantics:
//   - workspace: one workspace target; an unsupported workspace ecosystem is
//     marked fatal on the plan rather than yielding zero targets silently.
//   - project: each project with a supported ecosystem and satisfied
//     dependencies; unsatisfied projects are silently excluded.
//   - workspace_preferred: two independent tracks. The workspace track
//     requires ecosystem support and satisfied workspace dependencies. The
//     project track treats divergent-ecosystem projects like project level;
//     a project sharing the workspace ecosystem is included only when some
//     state-key requirement is satisfied in that project's state but not in
//     workspace state.
func Resolve(r *recipe.Recipe, an *analysis.WorkspaceAnalysis, ws *state.WorkspaceState, opts Options) *TargetPlan {
	plan := &TargetPlan{
		RecipeID: r.ID,
		Level:    r.Level,
	}

	switch r.Level {
	case recipe.LevelWorkspace:
		resolveWorkspaceOnly(r, an, ws, plan)
	case recipe.LevelProject:
		resolveProjectOnly(r, an, ws, opts, plan)
	case recipe.LevelWorkspacePreferred:
		resolveWorkspacePreferred(r, an, ws, opts, plan)
	}

	return plan
}

func resolveWorkspaceOnly(r *recipe.Recipe, an *analysis.WorkspaceAnalysis, ws *state.WorkspaceState, plan *TargetPlan) {
	if !r.SupportsEcosystem(an.WorkspaceEcosystem) {
		plan.EcosystemUnsupported = true
		return
	}

	plan.Targets = append(plan.Targets, Target{
		Kind:          ScopeWorkspace,
		Ecosystem:     an.WorkspaceEcosystem,
		Variant:       r.DefaultVariant(an.WorkspaceEcosystem),
		Applicability: Validate(r.Requires, ws, an, nil),
	})
}

func resolveProjectOnly(r *recipe.Recipe, an *analysis.WorkspaceAnalysis, ws *state.WorkspaceState, opts Options, plan *TargetPlan) {
	for i := range an.Projects {
		p := &an.Projects[i]
		if !matchesFilter(p.Path, opts.ProjectFilter) {
			continue
		}
		if p.Ecosystem == "" || !r.SupportsEcosystem(p.Ecosystem) {
			continue
		}

		app := Validate(r.Requires, ws, an, p)
		if !app.Satisfied && !opts.Force {
			// Ineligible projects are excluded here; the caller treats a
			// fully empty plan as the error condition.
			continue
		}

		plan.Targets = append(plan.Targets, projectTarget(r, p, app))
	}
}

func resolveWorkspacePreferred(r *recipe.Recipe, an *analysis.WorkspaceAnalysis, ws *state.WorkspaceState, opts Options, plan *TargetPlan) {
	// Workspace track
	if r.SupportsEcosystem(an.WorkspaceEcosystem) {
		app := Validate(r.Requires, ws, an, nil)
		if app.Satisfied || opts.Force {
			plan.Targets = append(plan.Targets, Target{
				Kind:          ScopeWorkspace,
				Ecosystem:     an.WorkspaceEcosystem,
				Variant:       r.DefaultVariant(an.WorkspaceEcosystem),
				Applicability: app,
			})
		}
	}

	// Project track, independent of the workspace track outcome
	for i := range an.Projects {
		p := &an.Projects[i]
		if !matchesFilter(p.Path, opts.ProjectFilter) {
			continue
		}
		if p.Ecosystem == "" || !r.SupportsEcosystem(p.Ecosystem) {
			continue
		}

		app := Validate(r.Requires, ws, an, p)
		if !app.Satisfied && !opts.Force {
			continue
		}

		if p.Ecosystem == an.WorkspaceEcosystem {
			// A project homogeneous with the workspace runs only when it has
			// a locally-provided fact the workspace lacks; otherwise the
			// workspace-level run already covers it.
			if !hasLocalStateOverride(r.Requires, ws, p.Path) {
				continue
			}
		}

		plan.Targets = append(plan.Targets, projectTarget(r, p, app))
	}
}

func projectTarget(r *recipe.Recipe, p *analysis.ProjectAnalysis, app Applicability) Target {
	return Target{
		Kind:          ScopeProject,
		ProjectPath:   p.Path,
		Ecosystem:     p.Ecosystem,
		Variant:       r.DefaultVariant(p.Ecosystem),
		Applicability: app,
	}
}

// hasLocalStateOverride reports whether at least one state-key requirement is
// satisfied in the project's state scope but not in the workspace scope.
func hasLocalStateOverride(reqs []recipe.Dependency, ws *state.WorkspaceState, projectPath string) bool {
	for _, req := range reqs {
		if recipe.ParseKey(req.Key).Kind != recipe.KindState {
			continue
		}

		projVal, projOK := ws.Lookup(projectPath, req.Key)
		wsVal, wsOK := ws.Lookup("", req.Key)

		projSatisfied := projOK && projVal.String() == req.Equals
		wsSatisfied := wsOK && wsVal.String() == req.Equals

		if projSatisfied && !wsSatisfied {
			return true
		}
	}
	return false
}

// matchesFilter reports whether a project path matches the filter:
// exact path or substring match.
func matchesFilter(path, filter string) bool {
	if filter == "" {
		return true
	}
	return path == filter || strings.Contains(path, filter)
}
