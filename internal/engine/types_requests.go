package engine

// ApplyRequest represents a request to apply a recipe to the workspace.
type ApplyRequest struct {
	// CWD is the current working directory
	CWD string

	// RecipeID is the recipe to apply
	RecipeID string

	// Project restricts project targets to paths matching it
	// (exact path or substring)
	Project string

	// Force bypasses unsatisfied dependencies and the re-application guard
	Force bool

	// Yes confirms re-application without prompting
	Yes bool

	// DryRun resolves the plan without invoking the agent or writing state
	DryRun bool
}

// ValidateStateRequest represents a request to validate persisted state
// against a recipe's declared provides.
type ValidateStateRequest struct {
	// CWD is the current working directory
	CWD string

	// RecipeID is the recipe whose state claims are verified
	RecipeID string
}

// StatusRequest represents a request for workspace status.
type StatusRequest struct {
	// CWD is the current working directory
	CWD string
}

// AnalyzeRequest represents a request to produce or refresh the workspace
// analysis snapshot via the external analyzer agent.
type AnalyzeRequest struct {
	// CWD is the current working directory
	CWD string

	// Refresh regenerates the snapshot even when a cached one exists
	Refresh bool
}
