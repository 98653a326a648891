package models

// RecipeDTO is the recipe as the API sends and stores it.
type RecipeDTO struct {
	ID          string       `json:"id,omitempty" firestore:"id"`
	Title       string       `json:"title" firestore:"title"`
	Publisher   string       `json:"publisher" firestore:"publisher"`
	SourceURL   string       `json:"source_url" firestore:"source_url"`
	ImageURL    string       `json:"image_url" firestore:"image_url"`
	Servings    int          `json:"servings" firestore:"servings"`
	CookingTime int          `json:"cooking_time" firestore:"cooking_time"`
	Ingredients []Ingredient `json:"ingredients" firestore:"ingredients"`
	Key         string       `json:"key,omitempty" firestore:"key,omitempty"`
}

// ToRecipe normalizes the API shape into the client shape.
func (d RecipeDTO) ToRecipe() Recipe {
	ings := d.Ingredients
	if ings == nil {
		ings = []Ingredient{}
	}
	return Recipe{
		ID:          d.ID,
		Title:       d.Title,
		Publisher:   d.Publisher,
		SourceURL:   d.SourceURL,
		Image:       d.ImageURL,
		Servings:    d.Servings,
		CookingTime: d.CookingTime,
		Ingredients: ings,
		Key:         d.Key,
	}.Clone()
}

// ToSearchResult projects the API shape onto a result list entry.
func (d RecipeDTO) ToSearchResult() SearchResult {
	return SearchResult{
		ID:        d.ID,
		Title:     d.Title,
		Publisher: d.Publisher,
		Image:     d.ImageURL,
		Key:       d.Key,
	}
}

// RecipeEnvelope wraps a single recipe: {"status":..., "data":{"recipe":...}}.
type RecipeEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Recipe RecipeDTO `json:"recipe"`
	} `json:"data"`
}

// SearchEnvelope wraps a recipe list: {"status":..., "results":n, "data":{"recipes":[...]}}.
type SearchEnvelope struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Data    struct {
		Recipes []RecipeDTO `json:"recipes"`
	} `json:"data"`
}

// ErrorEnvelope is the body of every non-2xx API response.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
