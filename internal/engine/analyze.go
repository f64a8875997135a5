package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/analysis"
)

const analyzePrompt = `Analyze this repository and write the result to ` +
	analysis.SnapshotDir + `/` + analysis.SnapshotFileName + ` as JSON with this shape:

{
  "isMonorepo": bool,
  "hasWorkspacePackageManager": bool,
  "workspaceEcosystem": "js|python|go|rust|jvm|... or empty",
  "cicd": "github_actions|gitlab_ci|... or empty",
  "projects": [
    {
      "path": "relative path from the repository root",
      "language": "...",
      "ecosystem": "...",
      "type": "service|library|cli|...",
      "framework": "... or empty",
      "dependencies": ["..."],
      "hasPackageManager": bool,
      "dockerized": bool
    }
  ]
}

Inspect manifests, lockfiles, workspace configuration, CI configuration, and
Dockerfiles. Report only what the repository actually contains.
`

// Analyze produces the workspace analysis snapshot. A usable cached snapshot
// is returned as-is unless a refresh is requested; otherwise the external
// analyzer agent runs and the snapshot it wrote is loaded back.
func (e *Engine) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	root, _, err := e.DiscoverWorkspace(req.CWD)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspace: %w", err)
	}

	if !req.Refresh {
		if an, err := analysis.Load(e.fs, root); err == nil {
			return &AnalyzeResult{Root: root, Analysis: an}, nil
		} else if !errors.Is(err, analysis.ErrSnapshotMissing) {
			return nil, err
		}
	}

	runID := uuid.NewString()
	res, err := e.runner.Run(ctx, agent.Request{
		RunID:  runID,
		Prompt: analyzePrompt,
		Dir:    root,
	})
	if err != nil {
		return nil, fmt.Errorf("workspace analysis failed: %w", err)
	}

	an, err := analysis.Load(e.fs, root)
	if err != nil {
		if errors.Is(err, analysis.ErrSnapshotMissing) {
			return nil, fmt.Errorf("%w: analyzer produced no snapshot", ErrAnalysisMissing)
		}
		return nil, err
	}

	return &AnalyzeResult{
		Root:        root,
		Analysis:    an,
		Regenerated: true,
		RunID:       runID,
		Cost:        res.Cost,
	}, nil
}
