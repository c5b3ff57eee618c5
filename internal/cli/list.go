package cli

import (
	"github.com/spf13/cobra"

	"github.com/schrockblock/recipes/internal/recipe"
)

type listItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var (
		query  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the recipes in the category",
		Long: `List fetches the category once and prints every recipe in it.

A query keeps the recipes whose name words start with each query word:

  recipes list --query "choc cake"
  recipes list -c Seafood --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.headlessEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			recipes, err := env.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), listItems(recipes))
			}

			p := opts.printer(cmd)
			if recipes.Len() == 0 {
				if query != "" {
					p.Println("No recipes match %q", query)
				} else {
					p.Println("No recipes in %s", env.Category)
				}
				return nil
			}
			t := newTable(cmd.OutOrStdout(), "ID", "Name", "Thumbnail")
			for _, r := range recipes.Recipes() {
				t.addRow(r.ID.String(), r.Name, p.Dim(r.ImageURL))
			}
			return t.render()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by word prefixes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func listItems(c recipe.Collection) []listItem {
	items := make([]listItem, 0, c.Len())
	for _, r := range c.Recipes() {
		items = append(items, listItem{ID: r.ID.String(), Name: r.Name, ImageURL: r.ImageURL})
	}
	return items
}
