package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remedyhq/remedy/internal/config"
	"github.com/remedyhq/remedy/internal/fsops"
	"github.com/remedyhq/remedy/internal/gitx"
	"github.com/remedyhq/remedy/internal/recipe"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Manage installed recipes",
	Long: `Manage the local recipe catalog at ~/.remedy/recipes/.

Each recipe lives in its own directory containing a recipe.yaml manifest
and the fix-instruction files the agent consumes.`,
}

// recipeCatalog builds the file-backed catalog from default paths.
func recipeCatalog() (*recipe.FileRepo, *config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	return recipe.NewFileRepo(fsops.NewRealFS(), paths.Recipes), paths, nil
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, err := recipeCatalog()
		if err != nil {
			return err
		}

		ids, err := repo.List()
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(ids)
		}

		PrintSection("Installed Recipes")
		if len(ids) == 0 {
			PrintEmptyState("No recipes installed. Use 'remedy recipes add <git-url>'.")
			return nil
		}

		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			rec, err := repo.Load(id)
			if err != nil {
				rows = append(rows, []string{id, "?", "invalid manifest"})
				continue
			}
			rows = append(rows, []string{rec.ID, string(rec.Level), rec.Title})
		}
		PrintTable([]string{"ID", "LEVEL", "TITLE"}, rows)
		return nil
	},
}

var recipesShowCmd = &cobra.Command{
	Use:   "show <recipe-id>",
	Short: "Show a recipe's manifest details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, err := recipeCatalog()
		if err != nil {
			return err
		}

		rec, err := repo.Load(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(rec)
		}

		PrintSection(rec.ID)
		if rec.Title != "" {
			PrintLabelValue("Title", rec.Title)
		}
		PrintLabelValue("Level", string(rec.Level))

		ecosystems := make([]string, 0, len(rec.Ecosystems))
		for _, eco := range rec.Ecosystems {
			variants := make([]string, 0, len(eco.Variants))
			for _, v := range eco.Variants {
				variants = append(variants, v.ID)
			}
			ecosystems = append(ecosystems, fmt.Sprintf("%s (default: %s, variants: %s)",
				eco.ID, eco.DefaultVariant, strings.Join(variants, ", ")))
		}
		PrintSubsection("Ecosystems:")
		PrintList(ecosystems, 1)

		if len(rec.Requires) > 0 {
			requires := make([]string, 0, len(rec.Requires))
			for _, dep := range rec.Requires {
				requires = append(requires, fmt.Sprintf("%s == %q", dep.Key, dep.Equals))
			}
			PrintSubsection("Requires:")
			PrintList(requires, 1)
		}
		if len(rec.Provides) > 0 {
			PrintSubsection("Provides:")
			PrintList(rec.Provides, 1)
		}
		return nil
	},
}

var recipesAddCmd = &cobra.Command{
	Use:   "add <git-url> [id]",
	Short: "Install a recipe from a git repository",
	Long: `Clone a recipe repository into the local catalog. The repository root
must contain a recipe.yaml manifest whose id matches the install directory.

The install directory defaults to the repository name; pass [id] to override.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, paths, err := recipeCatalog()
		if err != nil {
			return err
		}

		url := args[0]
		id := recipeIDFromURL(url)
		if len(args) > 1 {
			id = args[1]
		}

		sources := gitx.NewRealSources()
		dir := filepath.Join(paths.Recipes, id)
		if err := sources.Clone(url, dir); err != nil {
			return err
		}

		// Validate the manifest; remove the clone when it is not a recipe.
		if _, err := repo.Load(id); err != nil {
			_ = fsops.NewRealFS().RemoveAll(dir)
			return fmt.Errorf("repository at %s is not a valid recipe: %w", url, err)
		}

		PrintSuccess(fmt.Sprintf("Installed recipe '%s'", id))
		return nil
	},
}

var recipesUpdateCmd = &cobra.Command{
	Use:   "update <recipe-id>",
	Short: "Update an installed recipe from its origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, paths, err := recipeCatalog()
		if err != nil {
			return err
		}

		id := args[0]
		ok, err := repo.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("recipe %q is not installed", id)
		}

		sources := gitx.NewRealSources()
		if err := sources.Pull(filepath.Join(paths.Recipes, id)); err != nil {
			return err
		}

		if _, err := repo.Load(id); err != nil {
			return fmt.Errorf("recipe %q is invalid after update: %w", id, err)
		}

		PrintSuccess(fmt.Sprintf("Updated recipe '%s'", id))
		return nil
	},
}

// recipeIDFromURL derives an install directory name from a git URL.
func recipeIDFromURL(url string) string {
	base := filepath.Base(strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git"))
	return base
}

func init() {
	recipesCmd.AddCommand(recipesListCmd)
	recipesCmd.AddCommand(recipesShowCmd)
	recipesCmd.AddCommand(recipesAddCmd)
	recipesCmd.AddCommand(recipesUpdateCmd)
}
