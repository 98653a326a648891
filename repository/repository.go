// Package repository stores the recipes served by `eteats serve`.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"eTEats_recipes/models"
)

var ErrNotFound = errors.New("recipe not found")

// Repository is implemented by the memory, Firestore and BigQuery backends.
type Repository interface {
	// Search returns recipes whose title or an ingredient description
	// contains query, case-insensitively. Recipes carrying a key are only
	// returned to that key.
	Search(ctx context.Context, query, key string) ([]models.RecipeDTO, error)
	Get(ctx context.Context, id string) (models.RecipeDTO, error)
	Create(ctx context.Context, recipe models.RecipeDTO) error
	Delete(ctx context.Context, id string) error
}

// Visible reports whether a caller holding key may see r.
func Visible(r models.RecipeDTO, key string) bool {
	return r.Key == "" || r.Key == key
}

func matches(r models.RecipeDTO, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Description), q) {
			return true
		}
	}
	return false
}

// LoadSeed creates every recipe in the JSON array at path. Recipes without
// an id are rejected.
func LoadSeed(ctx context.Context, repo Repository, path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed %s: %w", path, err)
	}
	var recipes []models.RecipeDTO
	if err := json.Unmarshal(b, &recipes); err != nil {
		return 0, fmt.Errorf("decode seed %s: %w", path, err)
	}
	for i, r := range recipes {
		if r.ID == "" {
			return i, fmt.Errorf("seed %s: recipe %d has no id", path, i)
		}
		if err := repo.Create(ctx, r); err != nil {
			return i, fmt.Errorf("seed %s: %w", path, err)
		}
	}
	return len(recipes), nil
}
