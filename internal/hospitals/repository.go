package hospitals

import (
	"context"
	"sort"
	"sync"
)

// Repository stores the hospital catalog.
type Repository interface {
	// Search returns accredited hospitals matching the filter, best-rated
	// first.
	Search(ctx context.Context, filter SearchFilter) ([]Hospital, error)
	// Upsert inserts or replaces hospitals keyed by ID.
	Upsert(ctx context.Context, items []Hospital) error
}

// InMemoryRepository keeps the catalog in process memory. Used in tests and
// when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Hospital
}

func NewInMemoryRepository(seed []Hospital) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[string]Hospital, len(seed))}
	for _, h := range seed {
		r.items[h.ID] = h
	}
	return r
}

func (r *InMemoryRepository) Search(_ context.Context, filter SearchFilter) ([]Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Hospital, 0, len(r.items))
	for _, h := range r.items {
		if !h.JCIAccredited {
			continue
		}
		if filter.Matches(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, items []Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range items {
		r.items[h.ID] = h
	}
	return nil
}
