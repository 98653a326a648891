package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eTEats_recipes/models"
	"eTEats_recipes/storage"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func TestParseIngredients(t *testing.T) {
	got, err := ParseIngredients([]string{"0.5,kg,Rice", "", " 1 , , Avocado ", ",,salt"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 0.5, *got[0].Quantity)
	assert.Equal(t, "kg", got[0].Unit)
	assert.Equal(t, "Rice", got[0].Description)

	assert.Equal(t, 1.0, *got[1].Quantity)
	assert.Equal(t, "", got[1].Unit)
	assert.Equal(t, "Avocado", got[1].Description)

	assert.Nil(t, got[2].Quantity)
	assert.Equal(t, "salt", got[2].Description)
}

func TestParseIngredients_WrongFormat(t *testing.T) {
	bad := [][]string{
		{"0.5 kg Rice"},
		{"0.5,kg"},
		{"1,kg,Rice,extra"},
		{"0.5,kg,Rice", "just text"},
		{"lots,kg,Rice"},
		{"   "},
	}
	for _, lines := range bad {
		_, err := ParseIngredients(lines)
		assert.ErrorIs(t, err, ErrIngredientFormat, "%q", lines)
	}
}

func TestUploadRecipe(t *testing.T) {
	api := newFakeAPI()
	store := storage.NewMemoryStore()
	m := newTestModel(t, api, store)
	ctx := context.Background()

	form := models.RecipeForm{
		Title:       "TEST23",
		SourceURL:   "http://example.com/test",
		Image:       "http://example.com/test.jpg",
		Publisher:   "TEST",
		CookingTime: 23,
		Servings:    23,
		Ingredients: []string{"0.5,kg,Rice", "1,,Avocado", ",,salt", "", ""},
	}
	require.NoError(t, m.UploadRecipe(ctx, form))

	require.Len(t, api.uploaded, 1)
	sent := api.uploaded[0]
	assert.Equal(t, "TEST23", sent.Title)
	assert.Equal(t, "http://example.com/test", sent.SourceURL)
	assert.Equal(t, "http://example.com/test.jpg", sent.ImageURL)
	assert.Equal(t, 23, sent.CookingTime)
	assert.Len(t, sent.Ingredients, 3)

	r, ok := m.Recipe()
	require.True(t, ok)
	assert.Equal(t, "uploaded-1", r.ID)
	assert.Equal(t, "test-key", r.Key)
	assert.True(t, r.Bookmarked)

	bms := m.Bookmarks()
	require.Len(t, bms, 1)
	assert.Equal(t, "uploaded-1", bms[0].ID)

	raw, ok, err := store.Get(ctx, BookmarksKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, "uploaded-1")
}

func TestUploadRecipe_FormatErrorSendsNothing(t *testing.T) {
	api := newFakeAPI()
	m := newTestModel(t, api, nil)

	err := m.UploadRecipe(context.Background(), models.RecipeForm{
		Title:       "bad",
		Servings:    1,
		Ingredients: []string{"0.5,kg,Rice", "Avocado"},
	})
	require.ErrorIs(t, err, ErrIngredientFormat)
	assert.Empty(t, api.uploaded)
	_, ok := m.Recipe()
	assert.False(t, ok)
	assert.Empty(t, m.Bookmarks())
}

func TestUploadRecipe_APIError(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("Validation failed (400)")
	m := newTestModel(t, api, nil)

	err := m.UploadRecipe(context.Background(), models.RecipeForm{Title: "x", Ingredients: []string{"1,kg,Rice"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Empty(t, m.Bookmarks())
}
