package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// ValidateRecipeState independently verifies that a recipe's declared
// provides are present in persisted state and that no orphaned keys remain
// in the recipe's namespace. It is pure over its inputs: running it twice
// against unchanged state yields identical reports.
func ValidateRecipeState(rec *recipe.Recipe, ws *state.WorkspaceState) *StateReport {
	report := &StateReport{RecipeID: rec.ID}

	appliedKey := rec.AppliedKey()
	scopes := relevantScopes(rec, ws)

	for _, scope := range scopes {
		if v, ok := ws.Lookup(scope, appliedKey); ok && v.Truthy() {
			report.Applied = true
			break
		}
	}

	if !report.Applied {
		// Never successfully applied: anything in the recipe's namespace is
		// a stale leftover from a prior failed or partial run.
		prefixes := map[string]bool{rec.ID: true}
		for _, p := range rec.Provides {
			addDotPrefixes(prefixes, p)
		}
		report.RedundantKeys = collectRelatedKeys(ws, scopes, prefixes, nil)

		report.Issues = append(report.Issues, StateIssue{
			Code:    IssueRecipeNotApplied,
			Message: fmt.Sprintf("recipe %s has never been applied (no %s marker in state)", rec.ID, appliedKey),
		})
		if len(report.RedundantKeys) > 0 {
			report.Issues = append(report.Issues, StateIssue{
				Code:    IssueRedundantKeys,
				Message: fmt.Sprintf("stale keys in recipe namespace: %s", strings.Join(report.RedundantKeys, ", ")),
			})
		}
		report.Valid = false
		return report
	}

	// Applied: every declared provide must exist at the recipe's level(s).
	for _, p := range rec.Provides {
		found := false
		for _, scope := range scopes {
			if _, ok := ws.Lookup(scope, p); ok {
				found = true
				break
			}
		}
		if !found {
			report.MissingProvides = append(report.MissingProvides, p)
		}
	}

	// Recipe-owned prefixes: every dot-prefix of every provide, plus the
	// applied key itself. Expected keys are the provides and the marker;
	// any other key under the owned prefixes is redundant.
	prefixes := map[string]bool{appliedKey: true}
	for _, p := range rec.Provides {
		addDotPrefixes(prefixes, p)
	}
	expected := map[string]bool{appliedKey: true}
	for _, p := range rec.Provides {
		expected[p] = true
	}
	report.RedundantKeys = collectRelatedKeys(ws, scopes, prefixes, expected)

	if len(report.MissingProvides) > 0 {
		report.Issues = append(report.Issues, StateIssue{
			Code:    IssueMissingProvides,
			Message: fmt.Sprintf("declared provides missing from state: %s", strings.Join(report.MissingProvides, ", ")),
		})
	}
	if len(report.RedundantKeys) > 0 {
		report.Issues = append(report.Issues, StateIssue{
			Code:    IssueRedundantKeys,
			Message: fmt.Sprintf("redundant keys in recipe namespace: %s", strings.Join(report.RedundantKeys, ", ")),
		})
	}

	report.Valid = len(report.MissingProvides) == 0 && len(report.RedundantKeys) == 0
	return report
}

// relevantScopes returns the state scopes a recipe's level covers: the
// workspace map for workspace-level recipes, every project map for
// project-level ones, both for workspace-preferred. Project scopes are
// sorted for deterministic reports.
func relevantScopes(rec *recipe.Recipe, ws *state.WorkspaceState) []string {
	var scopes []string

	if rec.Level == recipe.LevelWorkspace || rec.Level == recipe.LevelWorkspacePreferred {
		scopes = append(scopes, "")
	}
	if rec.Level == recipe.LevelProject || rec.Level == recipe.LevelWorkspacePreferred {
		paths := make([]string, 0, len(ws.Projects))
		for path := range ws.Projects {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		scopes = append(scopes, paths...)
	}

	return scopes
}

// addDotPrefixes adds key and every dot-truncation of it to set.
func addDotPrefixes(set map[string]bool, key string) {
	for {
		set[key] = true
		idx := strings.LastIndex(key, ".")
		if idx < 0 {
			return
		}
		key = key[:idx]
	}
}

// relatedTo reports whether some dot-truncation of key (including key
// itself) is a member of prefixes. Truncation only, never substring
// matching: "workspace.configured" is unrelated to "workspace.config".
func relatedTo(key string, prefixes map[string]bool) bool {
	for {
		if prefixes[key] {
			return true
		}
		idx := strings.LastIndex(key, ".")
		if idx < 0 {
			return false
		}
		key = key[:idx]
	}
}

// collectRelatedKeys gathers every key across scopes related to the prefix
// set and not in expected, deduplicated and sorted within each scope.
func collectRelatedKeys(ws *state.WorkspaceState, scopes []string, prefixes, expected map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string

	for _, scope := range scopes {
		m := ws.Scope(scope)
		if m == nil {
			continue
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if expected != nil && expected[k] {
				continue
			}
			if !relatedTo(k, prefixes) {
				continue
			}
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}

	return out
}
