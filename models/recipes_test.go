package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v float64) *float64 { return &v }

func TestRecipeDTO_ToRecipe(t *testing.T) {
	dto := RecipeDTO{
		ID:          "5ed6604591c37cdc054bc886",
		Title:       "Pizza",
		Publisher:   "Closet Cooking",
		SourceURL:   "http://example.com/pizza",
		ImageURL:    "http://example.com/pizza.jpg",
		Servings:    4,
		CookingTime: 45,
		Ingredients: []Ingredient{{Quantity: qty(1), Unit: "kg", Description: "flour"}, {Unit: "", Description: "salt"}},
	}

	r := dto.ToRecipe()
	assert.Equal(t, "http://example.com/pizza", r.SourceURL)
	assert.Equal(t, "http://example.com/pizza.jpg", r.Image)
	assert.Equal(t, 45, r.CookingTime)
	assert.Empty(t, r.Key)
	require.Len(t, r.Ingredients, 2)
	assert.Nil(t, r.Ingredients[1].Quantity)

	// normalization must not alias the DTO's quantities
	*r.Ingredients[0].Quantity = 9
	assert.Equal(t, 1.0, *dto.Ingredients[0].Quantity)
}

func TestRecipeDTO_ToRecipeKeepsKey(t *testing.T) {
	r := RecipeDTO{ID: "x", Key: "abc"}.ToRecipe()
	assert.Equal(t, "abc", r.Key)
	assert.NotNil(t, r.Ingredients)
}

func TestSearchState_NumPages(t *testing.T) {
	cases := []struct {
		total, per, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{30, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		s := SearchState{Results: make([]SearchResult, tc.total), ResultsPerPage: tc.per}
		assert.Equal(t, tc.want, s.NumPages(), "total=%d per=%d", tc.total, tc.per)
	}
}
