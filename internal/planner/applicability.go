package planner

import (
	"fmt"

	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// Conflict records a requirement whose resolved value differs from the
// declared equals value.
type Conflict struct {
	// Key is the requirement key
	Key string

	// Required is the value the recipe demands
	Required string

	// Current is the value actually resolved
	Current string
}

// Applicability is the outcome of validating a recipe's requirements against
// one scope (workspace or a single project).
type Applicability struct {
	// Satisfied is true iff Missing and Conflicting are both empty
	Satisfied bool

	// Missing lists requirements with no resolvable value, in declaration order
	Missing []recipe.Dependency

	// Conflicting lists requirements whose value mismatches, in declaration order
	Conflicting []Conflict
}

// Describe returns one human-readable line per missing or conflicting
// requirement, every entry itemized.
func (a Applicability) Describe() []string {
	lines := make([]string, 0, len(a.Missing)+len(a.Conflicting))
	for _, dep := range a.Missing {
		lines = append(lines, fmt.Sprintf("missing: %s (requires %q)", dep.Key, dep.Equals))
	}
	for _, c := range a.Conflicting {
		lines = append(lines, fmt.Sprintf("conflict: %s is %q, requires %q", c.Key, c.Current, c.Required))
	}
	return lines
}

// Validate evaluates every requirement against the given scope. A nil project
// means the workspace scope: state keys resolve from the workspace map and
// project.* characteristics count as missing. All requirements are evaluated
// in declaration order with no short-circuit, so callers see the complete
// missing/conflicting picture in one pass.
func Validate(reqs []recipe.Dependency, ws *state.WorkspaceState, an *analysis.WorkspaceAnalysis, project *analysis.ProjectAnalysis) Applicability {
	var app Applicability

	for _, req := range reqs {
		current, ok := resolve(req.Key, ws, an, project)
		if !ok {
			app.Missing = append(app.Missing, req)
			continue
		}
		if current != req.Equals {
			app.Conflicting = append(app.Conflicting, Conflict{
				Key:      req.Key,
				Required: req.Equals,
				Current:  current,
			})
		}
	}

	app.Satisfied = len(app.Missing) == 0 && len(app.Conflicting) == 0
	return app
}

// resolve produces the current value for a requirement key, reporting
// missing (ok=false) when no value exists in the relevant source.
func resolve(key string, ws *state.WorkspaceState, an *analysis.WorkspaceAnalysis, project *analysis.ProjectAnalysis) (string, bool) {
	k := recipe.ParseKey(key)

	switch k.Kind {
	case recipe.KindWorkspace:
		return an.Characteristic(k.Name)

	case recipe.KindProject:
		// A project-scoped requirement without a bound project is missing,
		// not present-but-mismatched.
		if project == nil {
			return "", false
		}
		return project.Characteristic(k.Name)

	default: // recipe.KindState
		scopePath := ""
		if project != nil {
			scopePath = project.Path
		}
		v, ok := ws.Lookup(scopePath, k.Name)
		if !ok {
			return "", false
		}
		return v.String(), true
	}
}
