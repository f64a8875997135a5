package planner

import "github.com/remedyhq/remedy/internal/recipe"

// ScopeKind distinguishes workspace-level from project-level targets.
type ScopeKind string

const (
	// ScopeWorkspace targets the workspace root.
	ScopeWorkspace ScopeKind = "workspace"

	// ScopeProject targets a single sub-project.
	ScopeProject ScopeKind = "project"
)

// Target is a concrete (recipe, scope) execution unit.
type Target struct {
	// Kind is the scope kind
	Kind ScopeKind

	// ProjectPath is the project relative path (empty for workspace targets)
	ProjectPath string

	// Ecosystem is the ecosystem the recipe runs under at this scope
	Ecosystem string

	// Variant is the recipe variant selected for the ecosystem
	Variant string

	// Applicability is the dependency validation outcome for this scope
	Applicability Applicability
}

// ScopeKey returns the state scope for this target: empty string for the
// workspace map, otherwise the project relative path.
func (t Target) ScopeKey() string {
	if t.Kind == ScopeWorkspace {
		return ""
	}
	return t.ProjectPath
}

// TargetPlan is the ordered list of execution targets for one recipe:
// the workspace target (when eligible) first, then project targets in
// analysis order.
type TargetPlan struct {
	// RecipeID is the planned recipe
	RecipeID string

	// Level is the recipe's declared level
	Level recipe.Level

	// EcosystemUnsupported marks the fatal workspace-level case: a
	// workspace-only recipe that does not support the workspace ecosystem.
	EcosystemUnsupported bool

	// Targets is the ordered execution list
	Targets []Target
}

// HasTargets returns true if the plan produced at least one target.
func (p *TargetPlan) HasTargets() bool {
	return len(p.Targets) > 0
}

// WorkspaceTarget returns the workspace target, or nil if the plan has none.
func (p *TargetPlan) WorkspaceTarget() *Target {
	for i := range p.Targets {
		if p.Targets[i].Kind == ScopeWorkspace {
			return &p.Targets[i]
		}
	}
	return nil
}

// ProjectTargets returns the project targets in plan order.
func (p *TargetPlan) ProjectTargets() []Target {
	var out []Target
	for _, t := range p.Targets {
		if t.Kind == ScopeProject {
			out = append(out, t)
		}
	}
	return out
}
