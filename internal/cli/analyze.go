package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/engine"
)

var analyzeRefresh bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Produce or refresh the workspace analysis snapshot",
	Long: `Run the configured agent to analyze the workspace and cache the result
at .remedy/analysis.json. Recipes resolve their workspace.* and project.*
dependencies against this snapshot.

A usable cached snapshot is reused; pass --refresh to regenerate it.`,
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

		result, err := eng.Analyze(context.Background(), &engine.AnalyzeRequest{
			CWD:     cwd,
			Refresh: analyzeRefresh,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Regenerated {
			PrintSuccess("Workspace analyzed")
		} else {
			PrintInfo("Using cached analysis snapshot. Pass --refresh to regenerate.")
		}
		PrintLabelValue("Monorepo", strconv.FormatBool(result.Analysis.IsMonorepo))
		PrintLabelValue("Ecosystem", result.Analysis.WorkspaceEcosystem)
		PrintLabelValue("Projects", strconv.Itoa(len(result.Analysis.Projects)))
		if result.Regenerated && result.Cost > 0 {
			PrintLabelValue("Cost", fmt.Sprintf("$%.4f", result.Cost))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "Regenerate the snapshot even when cached")
}
