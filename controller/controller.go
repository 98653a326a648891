// Package controller reacts to view events: it runs the matching model
// operation and pushes the resulting state back into the views.
package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"eTEats_recipes/model"
	"eTEats_recipes/models"
)

// Model is the part of *model.Model the controller drives.
type Model interface {
	LoadRecipe(ctx context.Context, id string) error
	LoadSearchResults(ctx context.Context, query string) error
	SearchResultsPage(page int) []models.SearchResult
	UpdateServings(servings int) error
	AddBookmark(ctx context.Context, recipe models.Recipe) error
	DeleteBookmark(ctx context.Context, id string) error
	UploadRecipe(ctx context.Context, form models.RecipeForm) error
	Recipe() (models.Recipe, bool)
	Search() models.SearchState
	Bookmarks() []models.Recipe
}

// UploadSuccessMessage is shown after a recipe was uploaded.
const UploadSuccessMessage = "Recipe was successfully uploaded :)"

type Controller struct {
	model    Model
	views    Views
	location Location
	log      *zap.Logger
}

func New(m Model, views Views, location Location, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{model: m, views: views, location: location, log: log}
}

// Init subscribes the controller to every view that raises events. Call it
// once.
func (c *Controller) Init() {
	c.views.Bookmarks.Subscribe(c)
	c.views.Recipe.Subscribe(c)
	c.views.Search.Subscribe(c)
	c.views.Pagination.Subscribe(c)
	c.views.AddRecipe.Subscribe(c)
}

// ControlRecipes loads and shows the recipe named by the location fragment.
// It runs on startup and whenever the fragment changes.
func (c *Controller) ControlRecipes(ctx context.Context) {
	id := c.location.Fragment()
	if id == "" {
		return
	}

	c.views.Recipe.RenderSpinner()
	c.views.Results.Update(c.model.SearchResultsPage(0))
	c.views.Bookmarks.Update(c.model.Bookmarks())

	if err := c.model.LoadRecipe(ctx, id); err != nil {
		if errors.Is(err, model.ErrSuperseded) {
			return
		}
		c.log.Warn("recipe load failed", zap.String("id", id), zap.Error(err))
		c.views.Recipe.RenderError("")
		return
	}

	if r, ok := c.model.Recipe(); ok {
		c.views.Recipe.Render(r)
	}
}

// ControlSearchResults runs the search view's query and shows page 1.
// Failures are logged only.
func (c *Controller) ControlSearchResults(ctx context.Context) {
	query := c.views.Search.Query()
	if query == "" {
		return
	}
	c.views.Results.RenderSpinner()

	if err := c.model.LoadSearchResults(ctx, query); err != nil {
		if !errors.Is(err, model.ErrSuperseded) {
			c.log.Error("search failed", zap.String("query", query), zap.Error(err))
		}
		return
	}

	c.views.Results.Render(c.model.SearchResultsPage(0))
	c.views.Pagination.Render(c.model.Search())
}

func (c *Controller) ControlPagination(page int) {
	c.views.Results.Render(c.model.SearchResultsPage(page))
	c.views.Pagination.Render(c.model.Search())
}

func (c *Controller) ControlServings(servings int) {
	if err := c.model.UpdateServings(servings); err != nil {
		c.log.Warn("servings not updated", zap.Int("servings", servings), zap.Error(err))
		return
	}
	if r, ok := c.model.Recipe(); ok {
		c.views.Recipe.Update(r)
	}
}

// ControlAddBookmark toggles the bookmark on the current recipe.
func (c *Controller) ControlAddBookmark(ctx context.Context) {
	r, ok := c.model.Recipe()
	if !ok {
		return
	}

	var err error
	if !r.Bookmarked {
		err = c.model.AddBookmark(ctx, r)
	} else {
		err = c.model.DeleteBookmark(ctx, r.ID)
	}
	if err != nil {
		c.log.Error("bookmark not saved", zap.String("id", r.ID), zap.Error(err))
	}

	if r, ok := c.model.Recipe(); ok {
		c.views.Recipe.Update(r)
	}
	c.views.Bookmarks.Render(c.model.Bookmarks())
}

func (c *Controller) ControlBookmarks() {
	c.views.Bookmarks.Render(c.model.Bookmarks())
}

// ControlAddRecipe uploads form, shows the new recipe and points the
// location at it.
func (c *Controller) ControlAddRecipe(ctx context.Context, form models.RecipeForm) {
	c.views.AddRecipe.RenderSpinner()

	if err := c.model.UploadRecipe(ctx, form); err != nil {
		c.log.Error("upload failed", zap.Error(err))
		c.views.AddRecipe.RenderError(err.Error())
		return
	}

	r, ok := c.model.Recipe()
	if !ok {
		return
	}
	c.views.Recipe.Render(r)
	c.views.AddRecipe.RenderMessage(UploadSuccessMessage)
	c.views.Bookmarks.Render(c.model.Bookmarks())
	c.location.PushFragment(r.ID)
}

var (
	_ RecipeHandler     = (*Controller)(nil)
	_ SearchHandler     = (*Controller)(nil)
	_ PaginationHandler = (*Controller)(nil)
	_ BookmarksHandler  = (*Controller)(nil)
	_ UploadHandler     = (*Controller)(nil)
	_ Model             = (*model.Model)(nil)
)
