package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/weatherwidget/backend/internal/domain"
)

// KeyPrefix namespaces widget keys in a shared Redis/Valkey instance.
const KeyPrefix = "weather-widget:"

// Repository implements domain.CityStore as a single Redis string key
// without expiry.
type Repository struct {
	client *goredis.Client
	key    string
}

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRepository connects to Redis and verifies the connection
func NewRepository(ctx context.Context, opts Options) (*Repository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to connect to %s: %w", opts.Addr, err)
	}

	return &Repository{client: client, key: KeyPrefix + domain.LastCityKey}, nil
}

// LastCity reads the last searched city
func (r *Repository) LastCity(ctx context.Context) (string, bool, error) {
	city, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: failed to read last city: %w", err)
	}
	return city, true, nil
}

// SaveLastCity overwrites the last searched city
func (r *Repository) SaveLastCity(ctx context.Context, city string) error {
	if err := r.client.Set(ctx, r.key, city, 0).Err(); err != nil {
		return fmt.Errorf("redis: failed to save last city: %w", err)
	}
	return nil
}

// Health pings Redis
func (r *Repository) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: health check failed: %w", err)
	}
	return nil
}

// Close closes the client
func (r *Repository) Close() error {
	return r.client.Close()
}
