package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresBackend stores cache entries in a key-value table. It is the
// durable alternative to Redis for deployments that already run Postgres:
// entries survive restarts the way the original localStorage cache
// survived page reloads.
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend opens a connection and ensures the cache table exists.
func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS kv_cache (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresBackend{db: db}, nil
}

// Get returns the stored value for key, if any. Rows past their storage
// horizon count as absent; the store purges them on its own expiry check.
func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := `SELECT value FROM kv_cache WHERE key = $1`

	err := p.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache row: %w", err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO kv_cache (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	_, err := p.db.ExecContext(ctx, query, key, value, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to write cache row: %w", err)
	}
	return nil
}

// Delete removes key.
func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_cache WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache row: %w", err)
	}
	return nil
}

// Cleanup removes rows past their storage horizon. The service runs this
// periodically so abandoned keys do not accumulate.
func (p *PostgresBackend) Cleanup(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM kv_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to clean cache table: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database connection.
func (p *PostgresBackend) Close() error {
	return p.db.Close()
}
