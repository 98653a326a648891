package model

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"eTEats_recipes/models"
)

// ErrIngredientFormat is returned for an ingredient line that is not
// "quantity,unit,description".
var ErrIngredientFormat = errors.New("wrong ingredient format! Please use the correct format :)")

// ParseIngredients turns form lines into ingredients. Blank lines are
// skipped; every other line must split into exactly three comma separated
// fields. An empty quantity is allowed and yields a nil Quantity.
func ParseIngredients(lines []string) ([]models.Ingredient, error) {
	ings := make([]models.Ingredient, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrIngredientFormat, line)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		ing := models.Ingredient{Unit: parts[1], Description: parts[2]}
		if parts[0] != "" {
			q, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: quantity %q is not a number", ErrIngredientFormat, parts[0])
			}
			ing.Quantity = &q
		}
		ings = append(ings, ing)
	}
	return ings, nil
}

// UploadRecipe validates form, posts it to the API and makes the stored
// recipe both current and bookmarked.
func (m *Model) UploadRecipe(ctx context.Context, form models.RecipeForm) error {
	ings, err := ParseIngredients(form.Ingredients)
	if err != nil {
		return err
	}

	payload := models.RecipeDTO{
		Title:       form.Title,
		SourceURL:   form.SourceURL,
		ImageURL:    form.Image,
		Publisher:   form.Publisher,
		CookingTime: form.CookingTime,
		Servings:    form.Servings,
		Ingredients: ings,
	}

	dto, err := m.api.Upload(ctx, payload)
	if err != nil {
		return fmt.Errorf("upload recipe: %w", err)
	}
	r := dto.ToRecipe()

	s := m.state
	s.mu.Lock()
	// the upload replaces whatever recipe load may still be in flight
	s.recipeGen++
	s.recipe = &r
	s.status = StatusLoaded
	s.loadErr = nil
	s.mu.Unlock()

	m.log.Info("recipe uploaded", zap.String("id", r.ID), zap.String("title", r.Title))
	return m.AddBookmark(ctx, r)
}
