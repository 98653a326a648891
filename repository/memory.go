package repository

import (
	"context"
	"sync"

	"eTEats_recipes/models"
)

// Memory keeps recipes in insertion order for the life of the process.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]models.RecipeDTO
	order []string
}

func NewMemory() *Memory {
	return &Memory{byID: map[string]models.RecipeDTO{}}
}

func (m *Memory) Search(_ context.Context, query, key string) ([]models.RecipeDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.RecipeDTO{}
	for _, id := range m.order {
		r := m.byID[id]
		if Visible(r, key) && matches(r, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (models.RecipeDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return models.RecipeDTO{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) Create(_ context.Context, r models.RecipeDTO) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.byID[r.ID] = r
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
