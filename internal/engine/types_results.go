package engine

import (
	"time"

	"github.com/remedyhq/remedy/internal/analysis"
	"github.com/remedyhq/remedy/internal/planner"
)

// TargetOutcome records one executed target.
type TargetOutcome struct {
	// Target is the executed target
	Target planner.Target

	// RunID identifies the agent invocation for this target
	RunID string

	// Cost is the agent-reported cost for this target in USD
	Cost float64
}

// ApplyResult represents the result of applying a recipe.
type ApplyResult struct {
	// SessionID identifies this apply session
	SessionID string

	// StartedAt is when the session started
	StartedAt time.Time

	// Duration is the total session duration
	Duration time.Duration

	// RecipeID is the applied recipe
	RecipeID string

	// WorkspaceID is the computed workspace ID
	WorkspaceID string

	// Plan is the resolved target plan
	Plan *planner.TargetPlan

	// AlreadyApplied indicates the recipe was applied before in some scope
	AlreadyApplied bool

	// AppliedScopes lists the scopes carrying an applied marker
	AppliedScopes []string

	// NeedsConfirmation indicates the caller must confirm re-application
	// before invoking Apply again with Yes set
	NeedsConfirmation bool

	// Executed lists the targets that ran, in execution order
	Executed []TargetOutcome

	// TotalCost is the summed agent cost across executed targets
	TotalCost float64
}

// StateIssue is a single structured state-validation finding.
type StateIssue struct {
	// Code is the machine-readable issue code
	Code string

	// Message is the human-readable description with every offending key listed
	Message string
}

// Issue codes reported by state validation.
const (
	IssueRecipeNotApplied = "RECIPE_NOT_APPLIED"
	IssueMissingProvides  = "MISSING_PROVIDES"
	IssueRedundantKeys    = "REDUNDANT_KEYS"
)

// StateReport is the outcome of validating persisted state against a recipe.
type StateReport struct {
	// RecipeID is the validated recipe
	RecipeID string

	// Applied indicates the applied marker was found in a relevant scope
	Applied bool

	// Valid is true iff the recipe is applied and no provides are missing
	// and no redundant keys exist
	Valid bool

	// MissingProvides lists declared provides absent from state
	MissingProvides []string

	// RedundantKeys lists orphaned keys in the recipe's namespace
	RedundantKeys []string

	// Issues lists findings in order: not-applied, missing-provides,
	// redundant-keys
	Issues []StateIssue
}

// ValidateStateResult represents the result of a state validation run.
type ValidateStateResult struct {
	// WorkspaceID is the computed workspace ID
	WorkspaceID string

	// Report is the validation report
	Report *StateReport
}

// AppliedRecipe names a recipe applied in a specific scope.
type AppliedRecipe struct {
	// RecipeID is the recipe (the applied key's prefix)
	RecipeID string

	// Scope is "workspace" or the project relative path
	Scope string
}

// StatusResult represents the current workspace status.
type StatusResult struct {
	// WorkspaceID is the computed workspace ID
	WorkspaceID string

	// RepoFingerprint is the repository fingerprint
	RepoFingerprint string

	// Root is the workspace root directory
	Root string

	// HasAnalysis indicates a usable analysis snapshot exists
	HasAnalysis bool

	// IsMonorepo mirrors the analysis snapshot when present
	IsMonorepo bool

	// WorkspaceEcosystem mirrors the analysis snapshot when present
	WorkspaceEcosystem string

	// ProjectCount is the number of analyzed projects
	ProjectCount int

	// AppliedRecipes lists applied markers found in state, sorted
	AppliedRecipes []AppliedRecipe

	// WorkspaceFactCount is the number of workspace-scope state keys
	WorkspaceFactCount int

	// ProjectFactCount is the total number of project-scope state keys
	ProjectFactCount int
}

// AnalyzeResult represents the result of producing the analysis snapshot.
type AnalyzeResult struct {
	// Root is the workspace root directory
	Root string

	// Analysis is the loaded snapshot
	Analysis *analysis.WorkspaceAnalysis

	// Regenerated indicates the analyzer agent ran (vs. cached snapshot)
	Regenerated bool

	// RunID identifies the analyzer invocation when Regenerated
	RunID string

	// Cost is the agent-reported cost when Regenerated
	Cost float64
}
