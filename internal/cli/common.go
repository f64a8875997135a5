package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/remedyhq/remedy/internal/agent"
	"github.com/remedyhq/remedy/internal/clock"
	"github.com/remedyhq/remedy/internal/config"
	"github.com/remedyhq/remedy/internal/engine"
	"github.com/remedyhq/remedy/internal/fsops"
	"github.com/remedyhq/remedy/internal/gitx"
	"github.com/remedyhq/remedy/internal/recipe"
	"github.com/remedyhq/remedy/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.LoadConfig(paths.Config)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo()
	clk := &clock.RealClock{}
	stateStore := state.NewFileStateStore(fs, paths.Workspaces)
	recipeRepo := recipe.NewFileRepo(fs, paths.Recipes)
	runner := agent.NewExecRunner(cfg.Agent.Command, cfg.Agent.Args, cfg.Agent.Timeout)

	return engine.New(gitRepo, recipeRepo, stateStore, fs, runner, clk, *paths), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// promptConfirm prompts the user for a yes/no confirmation.
func promptConfirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
