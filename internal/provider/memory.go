package provider

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository used in tests and local runs
// without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Provider
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Provider)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Add(ctx context.Context, p *Provider) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[p.ID]; exists {
		return 0, nil
	}
	r.items[p.ID] = *p
	return 1, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *Provider) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[p.ID]; !exists {
		return 0, nil
	}
	r.items[p.ID] = *p
	return 1, nil
}

func (r *MemoryRepository) Remove(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[id]; !exists {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}
