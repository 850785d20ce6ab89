package cli

import (
	"os"

	"github.com/spf13/cobra"

	"crab.casa/tactics-engine/internal/report"
	"crab.casa/tactics-engine/recipes"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the crafting recipe catalog",
	RunE:  runRecipes,
}

func runRecipes(cmd *cobra.Command, args []string) error {
	report.PrintRecipes(os.Stdout, recipes.List(recipes.Filter{}))
	return nil
}
