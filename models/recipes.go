package models

// Ingredient is one line of a recipe. Quantity is nil when the recipe gives
// none ("salt, to taste").
type Ingredient struct {
	Quantity    *float64 `json:"quantity" firestore:"quantity"`
	Unit        string   `json:"unit" firestore:"unit"`
	Description string   `json:"description" firestore:"description"`
}

// Recipe is the client-side shape of a recipe, as held in state and
// persisted with the bookmarks.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"sourceUrl"`
	Image       string       `json:"image"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cookingTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
	Bookmarked  bool         `json:"bookmarked"`
}

// Clone returns a deep copy so callers can't alias ingredient quantities.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = ing
			if ing.Quantity != nil {
				q := *ing.Quantity
				out.Ingredients[i].Quantity = &q
			}
		}
	}
	return out
}

// SearchResult is the reduced projection shown in result lists.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Image     string `json:"image"`
	Key       string `json:"key,omitempty"`
}

// SearchState is the query, its results and the page being viewed.
type SearchState struct {
	Query          string         `json:"query"`
	Results        []SearchResult `json:"results"`
	Page           int            `json:"page"`
	ResultsPerPage int            `json:"resultsPerPage"`
}

// NumPages returns how many pages the results span.
func (s SearchState) NumPages() int {
	if s.ResultsPerPage <= 0 || len(s.Results) == 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}

// RecipeForm is what a user submits when adding a recipe. Each ingredient is
// a free-form "quantity,unit,description" line; empty lines are skipped.
type RecipeForm struct {
	Title       string
	SourceURL   string
	Image       string
	Publisher   string
	CookingTime int
	Servings    int
	Ingredients []string
}
