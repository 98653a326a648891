package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"eTEats_recipes/metrics"
	"eTEats_recipes/models"
	"eTEats_recipes/repository"
)

// Deps is what every handler needs.
type Deps struct {
	Repo            repository.Repository
	Log             *zap.Logger
	Metrics         *metrics.Metrics
	ImageClient     *http.Client
	ThumbnailHeight uint
}

func (d Deps) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Log.Error("encoding response", zap.Int("status", code), zap.Error(err))
	}
}

func (d Deps) writeFail(w http.ResponseWriter, code int, msg string) {
	d.writeJSON(w, code, models.ErrorEnvelope{Status: "fail", Message: msg})
}

// SearchRecipes handles GET /api/v2/recipes?search=q&key=k.
func SearchRecipes(d Deps, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	if strings.TrimSpace(query) == "" {
		d.writeFail(w, http.StatusBadRequest, "Missing 'search' query parameter")
		return
	}
	key := r.URL.Query().Get("key")

	recipes, err := d.Repo.Search(r.Context(), query, key)
	if err != nil {
		d.Log.Error("search failed", zap.String("query", query), zap.Error(err))
		d.writeFail(w, http.StatusInternalServerError, "Failed to search recipes")
		return
	}
	d.Metrics.SearchResults.Observe(float64(len(recipes)))

	// search results carry the preview fields only
	previews := make([]models.RecipeDTO, len(recipes))
	for i, rec := range recipes {
		previews[i] = models.RecipeDTO{
			ID:        rec.ID,
			Title:     rec.Title,
			Publisher: rec.Publisher,
			ImageURL:  rec.ImageURL,
			Key:       rec.Key,
		}
	}

	var env models.SearchEnvelope
	env.Status = "success"
	env.Results = len(previews)
	env.Data.Recipes = previews
	d.writeJSON(w, http.StatusOK, env)
}

// GetRecipe handles GET /api/v2/recipes/{id}?key=k.
func GetRecipe(d Deps, w http.ResponseWriter, r *http.Request) {
	recipeID := mux.Vars(r)["id"]
	key := r.URL.Query().Get("key")

	rec, err := d.Repo.Get(r.Context(), recipeID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !repository.Visible(rec, key)) {
		d.writeFail(w, http.StatusNotFound, "Invalid _id: "+recipeID)
		return
	}
	if err != nil {
		d.Log.Error("failed to retrieve recipe", zap.String("id", recipeID), zap.Error(err))
		d.writeFail(w, http.StatusInternalServerError, "Failed to retrieve recipe")
		return
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []models.Ingredient{}
	}

	var env models.RecipeEnvelope
	env.Status = "success"
	env.Data.Recipe = rec
	d.writeJSON(w, http.StatusOK, env)
}

func validateRecipe(rec models.RecipeDTO) string {
	switch {
	case strings.TrimSpace(rec.Title) == "":
		return "Recipe must have a title"
	case strings.TrimSpace(rec.Publisher) == "":
		return "Recipe must have a publisher"
	case rec.Servings <= 0:
		return "Servings must be a positive number"
	case rec.CookingTime <= 0:
		return "Cooking time must be a positive number"
	}
	return ""
}

// CreateRecipe handles POST /api/v2/recipes?key=k. The recipe gets a fresh
// id and is stamped with the caller's key.
func CreateRecipe(d Deps, w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		d.writeFail(w, http.StatusBadRequest, "Missing 'key' query parameter")
		return
	}

	var rec models.RecipeDTO
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		d.Log.Debug("failed to decode request body", zap.Error(err))
		d.writeFail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if msg := validateRecipe(rec); msg != "" {
		d.writeFail(w, http.StatusBadRequest, msg)
		return
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []models.Ingredient{}
	}
	rec.ID = uuid.New().String()
	rec.Key = key

	if err := d.Repo.Create(r.Context(), rec); err != nil {
		d.Log.Error("failed to create recipe", zap.Error(err))
		d.writeFail(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}
	d.Metrics.RecipesCreated.Inc()
	d.Log.Info("recipe created", zap.String("id", rec.ID), zap.String("title", rec.Title))

	var env models.RecipeEnvelope
	env.Status = "success"
	env.Data.Recipe = rec
	d.writeJSON(w, http.StatusCreated, env)
}

// DeleteRecipe handles DELETE /api/v2/recipes/{id}?key=k. Only the key that
// uploaded a recipe may delete it.
func DeleteRecipe(d Deps, w http.ResponseWriter, r *http.Request) {
	recipeID := mux.Vars(r)["id"]
	key := r.URL.Query().Get("key")

	rec, err := d.Repo.Get(r.Context(), recipeID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && (rec.Key == "" || rec.Key != key)) {
		d.writeFail(w, http.StatusNotFound, "Invalid _id: "+recipeID)
		return
	}
	if err == nil {
		err = d.Repo.Delete(r.Context(), recipeID)
	}
	if err != nil {
		d.Log.Error("failed to delete recipe", zap.String("id", recipeID), zap.Error(err))
		d.writeFail(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
