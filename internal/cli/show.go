package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/schrockblock/recipes/internal/imageload"
	"github.com/schrockblock/recipes/internal/recipe"
)

type showItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ImageURL     string           `json:"image_url"`
	Category     *string          `json:"category,omitempty"`
	Area         *string          `json:"area,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	Ingredients  []ingredientItem `json:"ingredients,omitempty"`
	Instructions *string          `json:"instructions,omitempty"`
	VideoURL     *string          `json:"video_url,omitempty"`
	Source       *string          `json:"source,omitempty"`
	Image        *imageItem       `json:"image,omitempty"`
}

type ingredientItem struct {
	Name    string  `json:"name"`
	Measure *string `json:"measure,omitempty"`
}

type imageItem struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int    `json:"bytes"`
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var (
		asJSON    bool
		withImage bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe by id",
		Long: `Show looks up a recipe and prints its ingredients and instructions.

  recipes show 52893
  recipes show 52893 --image --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.headlessEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			p := opts.printer(cmd)
			r, err := env.Show(cmd.Context(), recipe.ID(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			var info *imageload.Info
			if withImage {
				got, err := env.DescribeImage(cmd.Context(), r)
				if err != nil {
					p.Warning("thumbnail unavailable: %v", err)
				} else {
					info = &got
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), newShowItem(r, info))
			}
			return printRecipe(p, r, info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&withImage, "image", false, "download the thumbnail and report its size")
	return cmd
}

func printRecipe(p *printer, r recipe.Recipe, info *imageload.Info) error {
	p.Heading(r.Name)
	if line := joinPresent(" · ", r.Category, r.Area); line != "" {
		p.Println("%s", line)
	}
	if tags := r.TagList(); len(tags) > 0 {
		p.Println("%s", p.Dim(strings.Join(tags, ", ")))
	}
	if info != nil {
		p.Println("Image  %s", info)
	}

	if len(r.Ingredients) > 0 {
		p.Println("")
		p.Heading("Ingredients")
		t := newTable(p.out, "Measure", "Ingredient")
		for _, ing := range r.Ingredients {
			t.addRow(strings.TrimSpace(ing.MeasurementText()), ing.Name)
		}
		if err := t.render(); err != nil {
			return err
		}
	}

	if steps := r.Steps(); len(steps) > 0 {
		p.Println("")
		p.Heading("Instructions")
		for _, step := range steps {
			p.Println("%s\n", step)
		}
	}

	if v := strings.TrimSpace(recipe.Text(r.VideoURL)); v != "" {
		p.Println("Video   %s", v)
	}
	if v := strings.TrimSpace(recipe.Text(r.Source)); v != "" {
		p.Println("Source  %s", v)
	}
	p.Println("ID      %s", r.ID)
	return nil
}

func joinPresent(sep string, values ...*string) string {
	var parts []string
	for _, v := range values {
		if s := strings.TrimSpace(recipe.Text(v)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func newShowItem(r recipe.Recipe, info *imageload.Info) showItem {
	item := showItem{
		ID:           r.ID.String(),
		Name:         r.Name,
		ImageURL:     r.ImageURL,
		Category:     r.Category,
		Area:         r.Area,
		Tags:         r.TagList(),
		Instructions: r.Instructions,
		VideoURL:     r.VideoURL,
		Source:       r.Source,
	}
	for _, ing := range r.Ingredients {
		item.Ingredients = append(item.Ingredients, ingredientItem{Name: ing.Name, Measure: ing.Measurement})
	}
	if info != nil {
		item.Image = &imageItem{Format: info.Format, Width: info.Width, Height: info.Height, Bytes: info.Bytes}
	}
	return item
}
