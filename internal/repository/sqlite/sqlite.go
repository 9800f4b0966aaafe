package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/weatherwidget/backend/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Repository implements domain.CityStore on a local SQLite file using the
// pure Go modernc.org/sqlite driver.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the database at path and applies the schema
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	// Single writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("sqlite: warning: could not set WAL mode:", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// LastCity reads the last searched city
func (r *Repository) LastCity(ctx context.Context) (string, bool, error) {
	var city string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, domain.LastCityKey).Scan(&city)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite: failed to read last city: %w", err)
	}
	return city, true, nil
}

// SaveLastCity upserts the last searched city
func (r *Repository) SaveLastCity(ctx context.Context, city string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		domain.LastCityKey, city, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save last city: %w", err)
	}
	return nil
}

// Health pings the database
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
