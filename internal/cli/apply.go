package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/engine"
	"github.com/remedyhq/remedy/internal/planner"
)

var (
	applyProject string
	applyForce   bool
	applyYes     bool
	applyDryRun  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <recipe-id>",
	Short: "Apply a recipe to the current workspace",
	Long: `Apply the given recipe to the current workspace via the configured agent.

The recipe's level decides where it runs: at the workspace root, at each
eligible project, or both. Dependencies are checked per scope; projects
whose dependencies are unsatisfied are skipped silently.

Re-applying an already-applied recipe asks for confirmation unless --yes
or --force is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		req := &engine.ApplyRequest{
			CWD:      cwd,
			RecipeID: args[0],
			Project:  applyProject,
			Force:    applyForce,
			Yes:      applyYes,
			DryRun:   applyDryRun,
		}

		result, err := eng.Apply(ctx, req)
		if err != nil {
			if errors.Is(err, engine.ErrDependenciesNotSatisfied) {
				PrintWarning("Use --force to apply anyway.")
			}
			return err
		}

		if result.NeedsConfirmation {
			PrintSection("Already Applied")
			PrintInfo(fmt.Sprintf("Recipe '%s' was already applied at:", result.RecipeID))
			PrintList(result.AppliedScopes, 1)
			fmt.Println()
			if !promptConfirm("Re-apply?") {
				return engine.ErrCancelled
			}
			req.Yes = true
			result, err = eng.Apply(ctx, req)
			if err != nil {
				return err
			}
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if applyDryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would apply '%s' to %s:", result.RecipeID,
				PrintCount(len(result.Plan.Targets), "target", "targets")))
			PrintList(targetLabels(result.Plan.Targets), 1)
			return nil
		}

		PrintSuccess(fmt.Sprintf("Applied '%s' to %s", result.RecipeID,
			PrintCount(len(result.Executed), "target", "targets")))
		for _, outcome := range result.Executed {
			PrintLabelValue(targetLabel(outcome.Target), fmt.Sprintf("run %s", outcome.RunID))
		}
		PrintLabelValue("Workspace ID", result.WorkspaceID)
		if result.TotalCost > 0 {
			PrintLabelValue("Total cost", fmt.Sprintf("$%.4f", result.TotalCost))
		}
		return nil
	},
}

func targetLabel(t planner.Target) string {
	if t.Kind == planner.ScopeWorkspace {
		return fmt.Sprintf("workspace (%s/%s)", t.Ecosystem, t.Variant)
	}
	return fmt.Sprintf("%s (%s/%s)", t.ProjectPath, t.Ecosystem, t.Variant)
}

func targetLabels(targets []planner.Target) []string {
	labels := make([]string, 0, len(targets))
	for _, t := range targets {
		labels = append(labels, targetLabel(t))
	}
	return labels
}

func init() {
	applyCmd.Flags().StringVarP(&applyProject, "project", "p", "", "Restrict project targets to paths matching this filter")
	applyCmd.Flags().BoolVarP(&applyForce, "force", "f", false, "Apply even when dependencies are unsatisfied or already applied")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Re-apply without prompting")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show the resolved targets without applying")
}
