package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace identity, analysis summary, and applied recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		result, err := eng.Status(&engine.StatusRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Workspace")
		PrintLabelValue("Root", result.Root)
		PrintLabelValue("Workspace ID", result.WorkspaceID)

		if result.HasAnalysis {
			PrintLabelValue("Monorepo", strconv.FormatBool(result.IsMonorepo))
			PrintLabelValue("Ecosystem", result.WorkspaceEcosystem)
			PrintLabelValue("Projects", strconv.Itoa(result.ProjectCount))
		} else {
			PrintWarning("No analysis snapshot. Run 'remedy analyze' first.")
		}

		PrintSection("Applied Recipes")
		if len(result.AppliedRecipes) == 0 {
			PrintEmptyState("No recipes applied yet.")
		} else {
			rows := make([][]string, 0, len(result.AppliedRecipes))
			for _, applied := range result.AppliedRecipes {
				rows = append(rows, []string{applied.RecipeID, applied.Scope})
			}
			PrintTable([]string{"RECIPE", "SCOPE"}, rows)
		}

		fmt.Println()
		PrintInfo(fmt.Sprintf("%s recorded (%d workspace, %d project)",
			PrintCount(result.WorkspaceFactCount+result.ProjectFactCount, "fact", "facts"),
			result.WorkspaceFactCount, result.ProjectFactCount))
		return nil
	},
}
