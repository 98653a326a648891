package model

import (
	"sync"

	"eTEats_recipes/models"
)

// RecipeStatus is where the current recipe is in its load cycle.
type RecipeStatus int

const (
	StatusIdle RecipeStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s RecipeStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the application state a Model owns. It is created by the caller
// and injected, so tests can build one per case.
type State struct {
	mu sync.Mutex

	recipe    *models.Recipe
	search    models.SearchState
	bookmarks []models.Recipe

	status  RecipeStatus
	loadErr error

	// recipeGen/searchGen increase on every load; a response whose ticket is
	// no longer current is dropped.
	recipeGen uint64
	searchGen uint64
}

// NewState returns an empty state paging results resultsPerPage at a time.
func NewState(resultsPerPage int) *State {
	return &State{
		search: models.SearchState{
			Results:        []models.SearchResult{},
			Page:           1,
			ResultsPerPage: resultsPerPage,
		},
		bookmarks: []models.Recipe{},
	}
}

func (s *State) isBookmarkedLocked(id string) bool {
	return s.bookmarkIndexLocked(id) >= 0
}

func (s *State) bookmarkIndexLocked(id string) int {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) cloneBookmarksLocked() []models.Recipe {
	out := make([]models.Recipe, len(s.bookmarks))
	for i, b := range s.bookmarks {
		out[i] = b.Clone()
	}
	return out
}
