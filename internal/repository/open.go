// Package repository selects the last-city store named by the configuration.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weatherwidget/backend/internal/config"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository/memory"
	"github.com/weatherwidget/backend/internal/repository/postgres"
	"github.com/weatherwidget/backend/internal/repository/redis"
	"github.com/weatherwidget/backend/internal/repository/sqlite"
)

// Open connects the configured store. The caller owns the returned store
// and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig) (domain.CityStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewRepository(), nil

	case config.DriverSQLite:
		repo, err := sqlite.NewRepository(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("repository: DATABASE_URL is required for the postgres driver")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("repository: failed to reach postgres: %w", err)
		}
		repo := postgres.NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil

	case config.DriverRedis:
		repo, err := redis.NewRepository(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("repository: unknown driver %q", cfg.Driver)
	}
}
