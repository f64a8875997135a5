package engine

import (
	"errors"

	"github.com/remedyhq/remedy/internal/recipe"
)

var (
	// ErrRecipeInvalid indicates a structurally invalid recipe manifest,
	// propagated as-is from the recipe parser.
	ErrRecipeInvalid = recipe.ErrInvalid

	// ErrDependenciesNotSatisfied indicates missing or conflicting recipe
	// requirements without a force override.
	ErrDependenciesNotSatisfied = errors.New("dependencies not satisfied")

	// ErrEcosystemNotSupported indicates a workspace-only recipe that does
	// not support the workspace ecosystem. Structural, never bypassed.
	ErrEcosystemNotSupported = errors.New("ecosystem not supported")

	// ErrNoApplicableScope indicates scope resolution produced zero targets.
	ErrNoApplicableScope = errors.New("no applicable scope")

	// ErrNoApplicableProjects indicates a project-level recipe with zero
	// eligible projects.
	ErrNoApplicableProjects = errors.New("no applicable projects")

	// ErrRecipeNotApplied indicates state validation found no applied marker.
	ErrRecipeNotApplied = errors.New("recipe not applied")

	// ErrMissingProvides indicates declared provides absent from state.
	ErrMissingProvides = errors.New("missing provides")

	// ErrRedundantKeys indicates orphaned state keys in a recipe's namespace.
	ErrRedundantKeys = errors.New("redundant state keys")

	// ErrAnalysisMissing indicates no usable workspace analysis snapshot.
	ErrAnalysisMissing = errors.New("workspace analysis missing")

	// ErrCancelled indicates the user declined a confirmation prompt.
	// A cancellation, distinct from every failure above.
	ErrCancelled = errors.New("cancelled by user")
)
