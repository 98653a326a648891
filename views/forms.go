package views

import (
	"context"

	"eTEats_recipes/controller"
	"eTEats_recipes/models"
)

// SearchView holds the text typed into the search box.
type SearchView struct {
	query   string
	handler controller.SearchHandler
}

func NewSearchView() *SearchView { return &SearchView{} }

func (v *SearchView) Subscribe(h controller.SearchHandler) { v.handler = h }

// Query returns the typed query and clears the box.
func (v *SearchView) Query() string {
	q := v.query
	v.query = ""
	return q
}

// Submit types query and presses search.
func (v *SearchView) Submit(ctx context.Context, query string) {
	v.query = query
	if v.handler != nil {
		v.handler.ControlSearchResults(ctx)
	}
}

// AddRecipeView is the upload form. Its spinner, message and errors share
// the screen's message section.
type AddRecipeView struct {
	screen  *Screen
	handler controller.UploadHandler
	failed  bool
}

func NewAddRecipeView(s *Screen) *AddRecipeView { return &AddRecipeView{screen: s} }

func (v *AddRecipeView) Subscribe(h controller.UploadHandler) { v.handler = h }

func (v *AddRecipeView) Submit(ctx context.Context, form models.RecipeForm) {
	if v.handler != nil {
		v.handler.ControlAddRecipe(ctx, form)
	}
}

func (v *AddRecipeView) RenderSpinner() {
	v.failed = false
	v.screen.set(sectionMessage, v.screen.styles.muted.Render(spinnerText))
}

func (v *AddRecipeView) RenderMessage(msg string) {
	v.screen.set(sectionMessage, v.screen.styles.message.Render(iconMessage+" "+msg))
}

func (v *AddRecipeView) RenderError(msg string) {
	v.failed = true
	v.screen.set(sectionMessage, v.screen.styles.errText.Render(iconError+" "+msg))
}

// Failed reports whether the last submission ended in an error.
func (v *AddRecipeView) Failed() bool { return v.failed }
