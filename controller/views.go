package controller

import (
	"context"

	"eTEats_recipes/models"
)

// The *Handler interfaces are what views call when the user does something.
// Controller implements all of them and subscribes itself in Init.

type RecipeHandler interface {
	ControlRecipes(ctx context.Context)
	ControlServings(servings int)
	ControlAddBookmark(ctx context.Context)
}

type SearchHandler interface {
	ControlSearchResults(ctx context.Context)
}

type PaginationHandler interface {
	ControlPagination(page int)
}

type BookmarksHandler interface {
	ControlBookmarks()
}

type UploadHandler interface {
	ControlAddRecipe(ctx context.Context, form models.RecipeForm)
}

// RecipeView shows the current recipe. RenderError with an empty message
// shows the view's default message.
type RecipeView interface {
	Render(recipe models.Recipe)
	Update(recipe models.Recipe)
	RenderSpinner()
	RenderError(msg string)
	Subscribe(h RecipeHandler)
}

type SearchView interface {
	Query() string
	Subscribe(h SearchHandler)
}

type ResultsView interface {
	Render(results []models.SearchResult)
	Update(results []models.SearchResult)
	RenderSpinner()
	RenderError(msg string)
}

type PaginationView interface {
	Render(search models.SearchState)
	Subscribe(h PaginationHandler)
}

type BookmarksView interface {
	Render(bookmarks []models.Recipe)
	Update(bookmarks []models.Recipe)
	Subscribe(h BookmarksHandler)
}

type AddRecipeView interface {
	RenderSpinner()
	RenderMessage(msg string)
	RenderError(msg string)
	Subscribe(h UploadHandler)
}

// Location is the "#<id>" fragment naming the recipe being viewed.
type Location interface {
	Fragment() string
	PushFragment(id string)
}

// Views groups every view the controller drives.
type Views struct {
	Recipe     RecipeView
	Search     SearchView
	Results    ResultsView
	Pagination PaginationView
	Bookmarks  BookmarksView
	AddRecipe  AddRecipeView
}
