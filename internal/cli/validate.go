package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate <recipe-id>",
	Short: "Validate persisted state against a recipe's declared provides",
	Long: `Check that the recipe's applied marker and every declared provide are
present in the workspace state, and that no stale keys remain in the
recipe's namespace. A recipe that was never applied always fails with
RECIPE_NOT_APPLIED, even when it declares no provides.

Runs entirely against persisted state; the workspace itself is not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		result, err := eng.ValidateState(&engine.ValidateStateRequest{
			CWD:      cwd,
			RecipeID: args[0],
		})
		if result == nil {
			return err
		}

		if jsonOutput {
			if jerr := outputJSON(result); jerr != nil {
				return jerr
			}
			return err
		}

		report := result.Report
		if report.Valid {
			PrintSuccess(fmt.Sprintf("State for '%s' is consistent", report.RecipeID))
			return nil
		}

		PrintSection("State Validation Failed")
		for _, issue := range report.Issues {
			PrintError(fmt.Sprintf("[%s] %s", issue.Code, issue.Message))
		}
		return err
	},
}
