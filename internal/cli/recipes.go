package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/albertcheruiyot/recipebox/internal/core/repository"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Inspect recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list <username>",
	Short: "List the recipes of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserRepo.FindByUsername(cmd.Context(), username)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user not found: %s", username)
		}
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		recipes, err := services.RecipeService.ListForUser(cmd.Context(), user.ID)
		if err != nil {
			return fmt.Errorf("failed to list recipes: %w", err)
		}

		if len(recipes) == 0 {
			fmt.Printf("No recipes found for '%s'\n", username)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tMINUTES\tCREATED AT")
		for _, recipe := range recipes {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
				recipe.ID,
				recipe.Title,
				recipe.MinutesToComplete,
				recipe.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.AddCommand(recipesListCmd)
}
