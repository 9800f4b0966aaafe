package memory

import (
	"context"
	"sync"
)

// Repository implements domain.CityStore in process memory, for demo mode
// and tests. Nothing survives a restart.
type Repository struct {
	mu    sync.RWMutex
	city  string
	saved bool
}

// NewRepository creates an empty in-memory store
func NewRepository() *Repository {
	return &Repository{}
}

// NewRepositoryWithCity creates a store that already holds city
func NewRepositoryWithCity(city string) *Repository {
	return &Repository{city: city, saved: true}
}

// LastCity returns the stored city, if any
func (r *Repository) LastCity(ctx context.Context) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.city, r.saved, nil
}

// SaveLastCity overwrites the stored city
func (r *Repository) SaveLastCity(ctx context.Context, city string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.city = city
	r.saved = true
	return nil
}

// Health always returns nil in memory mode
func (r *Repository) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op in memory mode
func (r *Repository) Close() error {
	return nil
}
