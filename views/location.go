package views

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"eTEats_recipes/storage"
)

// LocationKey is the storage key holding the last fragment, so the CLI
// reopens the recipe the previous command showed.
const LocationKey = "location"

const persistTimeout = 5 * time.Second

// StoredLocation is the "#<id>" fragment, kept in storage between runs.
type StoredLocation struct {
	mu    sync.Mutex
	frag  string
	store storage.Store
	log   *zap.Logger
}

// NewStoredLocation reads the last fragment from store.
func NewStoredLocation(ctx context.Context, store storage.Store, log *zap.Logger) (*StoredLocation, error) {
	if log == nil {
		log = zap.NewNop()
	}
	frag, _, err := store.Get(ctx, LocationKey)
	if err != nil {
		return nil, fmt.Errorf("read location: %w", err)
	}
	return &StoredLocation{frag: frag, store: store, log: log}, nil
}

func (l *StoredLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frag
}

// PushFragment records id as the current fragment. A leading '#' is
// stripped. Storage failures are logged; the in-memory fragment still
// changes.
func (l *StoredLocation) PushFragment(id string) {
	id = strings.TrimPrefix(id, "#")

	l.mu.Lock()
	l.frag = id
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := l.store.Set(ctx, LocationKey, id); err != nil {
		l.log.Warn("location not saved", zap.String("id", id), zap.Error(err))
	}
}
