package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/engine"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the recorded state for the current workspace",
	Long: `Delete the persisted state document for the current workspace.

All applied markers and provided facts are forgotten; recipes will plan as
if they had never been applied. The workspace files themselves are untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		if !resetYes {
			PrintWarning("This forgets every applied recipe for this workspace.")
			if !promptConfirm("Reset workspace state?") {
				return engine.ErrCancelled
			}
		}

		result, err := eng.Reset(&engine.ResetRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if !result.Existed {
			PrintEmptyState("No state recorded for this workspace.")
			return nil
		}
		PrintSuccess(fmt.Sprintf("Reset state for workspace %s", result.WorkspaceID))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Reset without prompting")
}
