package views

import (
	"context"
	"fmt"
	"strings"

	"eTEats_recipes/controller"
	"eTEats_recipes/models"
)

const RecipeErrorMessage = "We could not find that recipe. Please try another one!"

type RecipeView struct {
	screen  *Screen
	handler controller.RecipeHandler
}

func NewRecipeView(s *Screen) *RecipeView { return &RecipeView{screen: s} }

func (v *RecipeView) Subscribe(h controller.RecipeHandler) { v.handler = h }

// HashChange tells the subscriber the location now names another recipe.
func (v *RecipeView) HashChange(ctx context.Context) {
	if v.handler != nil {
		v.handler.ControlRecipes(ctx)
	}
}

// ChangeServings asks for the recipe to be rescaled; counts below 1 are
// ignored like the disabled minus button.
func (v *RecipeView) ChangeServings(servings int) {
	if v.handler != nil && servings > 0 {
		v.handler.ControlServings(servings)
	}
}

func (v *RecipeView) ToggleBookmark(ctx context.Context) {
	if v.handler != nil {
		v.handler.ControlAddBookmark(ctx)
	}
}

func (v *RecipeView) Render(r models.Recipe) {
	v.screen.set(sectionRecipe, v.markup(r))
}

func (v *RecipeView) Update(r models.Recipe) {
	v.screen.update(sectionRecipe, v.markup(r))
}

func (v *RecipeView) RenderSpinner() {
	v.screen.set(sectionRecipe, v.screen.styles.muted.Render(spinnerText))
}

func (v *RecipeView) RenderError(msg string) {
	if msg == "" {
		msg = RecipeErrorMessage
	}
	v.screen.set(sectionRecipe, v.screen.styles.errText.Render(iconError+" "+msg))
}

func (v *RecipeView) markup(r models.Recipe) string {
	st := v.screen.styles
	var b strings.Builder

	mark := iconBookmark
	if r.Bookmarked {
		mark = iconBookmarked
	}
	fmt.Fprintf(&b, "%s %s\n", st.title.Render(strings.ToUpper(r.Title)), mark)
	fmt.Fprintf(&b, "%s\n", st.muted.Render(fmt.Sprintf("%d minutes · %d servings · id %s", r.CookingTime, r.Servings, r.ID)))
	if r.Key != "" {
		fmt.Fprintf(&b, "%s\n", st.muted.Render("your recipe"))
	}

	b.WriteString("\n" + st.heading.Render("Recipe ingredients") + "\n")
	for _, ing := range r.Ingredients {
		line := strings.TrimSpace(strings.Join(nonEmpty(formatQuantity(ing.Quantity), ing.Unit, ing.Description), " "))
		fmt.Fprintf(&b, "  ✓ %s\n", line)
	}

	b.WriteString("\n" + st.heading.Render("How to cook it") + "\n")
	fmt.Fprintf(&b, "  This recipe was carefully designed and tested by %s.\n", r.Publisher)
	if r.SourceURL != "" {
		fmt.Fprintf(&b, "  Directions: %s", r.SourceURL)
	}
	return st.card.Render(strings.TrimRight(b.String(), "\n"))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
