// Package model owns the recipe application state and every operation that
// changes it: loading and searching recipes through the API, paging results,
// rescaling servings, bookmarking and uploading.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"eTEats_recipes/models"
	"eTEats_recipes/storage"
)

// BookmarksKey is the storage key the bookmark list is persisted under.
const BookmarksKey = "bookmarks"

var (
	ErrNoRecipe        = errors.New("no recipe loaded")
	ErrInvalidServings = errors.New("servings must be positive")
	// ErrSuperseded is returned by a load whose result arrived after a newer
	// load had started; the result is discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// RecipeAPI is the subset of the API client the model needs.
type RecipeAPI interface {
	Recipe(ctx context.Context, id string) (models.RecipeDTO, error)
	Search(ctx context.Context, query string) ([]models.RecipeDTO, error)
	Upload(ctx context.Context, recipe models.RecipeDTO) (models.RecipeDTO, error)
}

// Model is safe for concurrent use; network calls are made without holding
// the state lock.
type Model struct {
	state *State
	api   RecipeAPI
	store storage.Store
	log   *zap.Logger

	// persistMu orders bookmark writes so the last write holds the latest list.
	persistMu sync.Mutex
}

// New wires a model and restores the persisted bookmarks into state.
func New(ctx context.Context, state *State, api RecipeAPI, store storage.Store, log *zap.Logger) (*Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{state: state, api: api, store: store, log: log}
	if err := m.restoreBookmarks(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) restoreBookmarks(ctx context.Context) error {
	raw, ok, err := m.store.Get(ctx, BookmarksKey)
	if err != nil {
		return fmt.Errorf("restore bookmarks: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var bookmarks []models.Recipe
	if err := json.Unmarshal([]byte(raw), &bookmarks); err != nil {
		return fmt.Errorf("restore bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []models.Recipe{}
	}

	m.state.mu.Lock()
	m.state.bookmarks = bookmarks
	m.state.mu.Unlock()

	m.log.Debug("bookmarks restored", zap.Int("count", len(bookmarks)))
	return nil
}

// LoadRecipe fetches recipe id and makes it the current recipe, flagged as
// bookmarked when it is in the bookmark list. On failure the previous recipe
// stays current and the status becomes StatusFailed.
func (m *Model) LoadRecipe(ctx context.Context, id string) error {
	s := m.state
	s.mu.Lock()
	s.recipeGen++
	gen := s.recipeGen
	s.status = StatusLoading
	s.loadErr = nil
	s.mu.Unlock()

	dto, err := m.api.Recipe(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.recipeGen {
		m.log.Debug("discarding stale recipe response", zap.String("id", id))
		return ErrSuperseded
	}
	if err != nil {
		s.status = StatusFailed
		s.loadErr = err
		return fmt.Errorf("load recipe %s: %w", id, err)
	}

	r := dto.ToRecipe()
	r.Bookmarked = s.isBookmarkedLocked(r.ID)
	s.recipe = &r
	s.status = StatusLoaded
	m.log.Debug("recipe loaded", zap.String("id", r.ID), zap.Bool("bookmarked", r.Bookmarked))
	return nil
}

// LoadSearchResults runs query against the API and resets paging to page 1.
func (m *Model) LoadSearchResults(ctx context.Context, query string) error {
	s := m.state
	s.mu.Lock()
	s.search.Query = query
	s.searchGen++
	gen := s.searchGen
	s.mu.Unlock()

	dtos, err := m.api.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.searchGen {
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]models.SearchResult, 0, len(dtos))
	for _, d := range dtos {
		results = append(results, d.ToSearchResult())
	}
	s.search.Results = results
	s.search.Page = 1
	m.log.Debug("search loaded", zap.String("query", query), zap.Int("results", len(results)))
	return nil
}

// SearchResultsPage returns the results on page and makes it the current
// page. Zero selects the current page; pages below 1 are treated as 1 and
// pages past the end yield an empty slice.
func (m *Model) SearchResultsPage(page int) []models.SearchResult {
	s := m.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if page == 0 {
		page = s.search.Page
	}
	if page < 1 {
		page = 1
	}
	s.search.Page = page

	per := s.search.ResultsPerPage
	total := len(s.search.Results)
	// compare page counts first; (page-1)*per overflows for huge pages
	if per <= 0 || page-1 >= (total+per-1)/per {
		return []models.SearchResult{}
	}
	start := (page - 1) * per
	end := min(start+per, total)

	out := make([]models.SearchResult, end-start)
	copy(out, s.search.Results[start:end])
	return out
}

// UpdateServings rescales every ingredient quantity from the current serving
// count to servings: newQty = oldQty * servings / oldServings.
func (m *Model) UpdateServings(servings int) error {
	s := m.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recipe == nil {
		return ErrNoRecipe
	}
	if servings <= 0 || s.recipe.Servings <= 0 {
		return fmt.Errorf("%w: %d -> %d", ErrInvalidServings, s.recipe.Servings, servings)
	}

	old := float64(s.recipe.Servings)
	for i := range s.recipe.Ingredients {
		q := s.recipe.Ingredients[i].Quantity
		if q == nil {
			continue
		}
		nq := *q * float64(servings) / old
		s.recipe.Ingredients[i].Quantity = &nq
	}
	s.recipe.Servings = servings
	return nil
}

// AddBookmark saves recipe and persists the list. A recipe already in the
// list is not added twice.
func (m *Model) AddBookmark(ctx context.Context, recipe models.Recipe) error {
	s := m.state
	s.mu.Lock()
	if !s.isBookmarkedLocked(recipe.ID) {
		b := recipe.Clone()
		b.Bookmarked = true
		s.bookmarks = append(s.bookmarks, b)
	}
	if s.recipe != nil && s.recipe.ID == recipe.ID {
		s.recipe.Bookmarked = true
	}
	s.mu.Unlock()

	return m.persistBookmarks(ctx)
}

// DeleteBookmark removes id from the bookmarks and persists the list.
// Unknown ids leave the list unchanged.
func (m *Model) DeleteBookmark(ctx context.Context, id string) error {
	s := m.state
	s.mu.Lock()
	if i := s.bookmarkIndexLocked(id); i >= 0 {
		s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
	}
	if s.recipe != nil && s.recipe.ID == id {
		s.recipe.Bookmarked = false
	}
	s.mu.Unlock()

	return m.persistBookmarks(ctx)
}

// ClearBookmarks forgets every bookmark, in memory and in storage.
func (m *Model) ClearBookmarks(ctx context.Context) error {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	s := m.state
	s.mu.Lock()
	s.bookmarks = []models.Recipe{}
	if s.recipe != nil {
		s.recipe.Bookmarked = false
	}
	s.mu.Unlock()

	if err := m.store.Delete(ctx, BookmarksKey); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	return nil
}

func (m *Model) persistBookmarks(ctx context.Context) error {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	m.state.mu.Lock()
	b, err := json.Marshal(m.state.bookmarks)
	m.state.mu.Unlock()
	if err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	if err := m.store.Set(ctx, BookmarksKey, string(b)); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

// Recipe returns a copy of the current recipe; ok is false when none is loaded.
func (m *Model) Recipe() (recipe models.Recipe, ok bool) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.recipe == nil {
		return models.Recipe{}, false
	}
	return m.state.recipe.Clone(), true
}

// RecipeStatus reports the load status and, when failed, the error.
func (m *Model) RecipeStatus() (RecipeStatus, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.status, m.state.loadErr
}

// Search returns a copy of the search state.
func (m *Model) Search() models.SearchState {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	out := m.state.search
	out.Results = append([]models.SearchResult(nil), m.state.search.Results...)
	return out
}

// Bookmarks returns a copy of the bookmark list, in insertion order.
func (m *Model) Bookmarks() []models.Recipe {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.cloneBookmarksLocked()
}
