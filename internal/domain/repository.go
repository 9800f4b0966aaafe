package domain

import "context"

// LastCityKey is the storage key holding the last successfully searched city.
const LastCityKey = "last_city"

// CityStore persists the last successfully searched city across restarts.
// The domain defines the interface; repositories implement it.
type CityStore interface {
	// LastCity returns the stored city; ok is false when nothing was stored yet.
	LastCity(ctx context.Context) (city string, ok bool, err error)

	// SaveLastCity overwrites the stored city.
	SaveLastCity(ctx context.Context, city string) error

	// Health checks backend connectivity
	Health(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
