package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"eTEats_recipes/model"
	"eTEats_recipes/models"
)

func newShowCmd(cfgPath func() string) *cobra.Command {
	var (
		servings int
		bookmark bool
	)
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a recipe",
		Long: `Show a recipe by id. Without an id, the recipe shown last is opened again.

--servings rescales every ingredient quantity; --bookmark toggles the
recipe's bookmark.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfgPath(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				a.navigate(ctx, args[0])
			} else if a.location.Fragment() == "" {
				a.finish()
				return errors.New("no recipe id given and none shown before")
			} else {
				a.recipe.HashChange(ctx)
			}

			status, _ := a.model.RecipeStatus()
			if status == model.StatusLoaded {
				if servings > 0 {
					a.recipe.ChangeServings(servings)
				}
				if bookmark {
					a.recipe.ToggleBookmark(ctx)
				}
			}

			if err := a.finish(); err != nil {
				return err
			}
			if status != model.StatusLoaded {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&servings, "servings", 0, "rescale the recipe to this many servings")
	cmd.Flags().BoolVar(&bookmark, "bookmark", false, "toggle the recipe's bookmark")
	return cmd
}

func newSearchCmd(cfgPath func() string) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfgPath(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a.search.Submit(ctx, strings.TrimSpace(strings.Join(args, " ")))
			// a failed search is only logged; paging would print "no results"
			if page > 1 && len(a.model.Search().Results) > 0 {
				a.pagination.Click(page)
			}
			return a.finish()
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "results page to show")
	return cmd
}

func newBookmarksCmd(cfgPath func() string) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfgPath(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return a.finish()
	}
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarked recipes",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarked recipes",
		Args:  cobra.NoArgs,
		RunE:  list,
	}, &cobra.Command{
		Use:   "clear",
		Short: "Forget every bookmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfgPath(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := a.model.ClearBookmarks(ctx); err != nil {
				a.finish()
				return err
			}
			a.ctrl.ControlBookmarks()
			return a.finish()
		},
	})
	return cmd
}

func newUploadCmd(cfgPath func() string) *cobra.Command {
	var form models.RecipeForm
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a new recipe",
		Long: `Upload a new recipe to the API. It is bookmarked and becomes the recipe
"eteats show" opens.

Each --ingredient is "quantity,unit,description"; quantity and unit may be
empty, e.g. --ingredient "0.5,kg,Rice" --ingredient ",,Salt".`,
		Example: `  eteats upload --title "Avocado toast" --publisher me \
    --source-url https://example.com/toast --image https://example.com/toast.jpg \
    --cooking-time 10 --servings 2 --ingredient "2,,Avocados" --ingredient "4,slices,Bread"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfgPath(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			a.addRecipe.Submit(ctx, form)
			if err := a.finish(); err != nil {
				return err
			}
			if a.addRecipe.Failed() {
				return errReported
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "recipe title")
	f.StringVar(&form.SourceURL, "source-url", "", "URL of the original recipe")
	f.StringVar(&form.Image, "image", "", "image URL")
	f.StringVar(&form.Publisher, "publisher", "", "publisher name")
	f.IntVar(&form.CookingTime, "cooking-time", 0, "preparation time in minutes")
	f.IntVar(&form.Servings, "servings", 0, "number of servings")
	f.StringArrayVar(&form.Ingredients, "ingredient", nil, `ingredient as "quantity,unit,description" (repeatable)`)
	for _, name := range []string{"title", "source-url", "image", "publisher", "cooking-time", "servings"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}
