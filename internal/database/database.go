// Package database owns the sqlite file that backs the fleet backend:
// settings, vehicles, reminder configurations and delivery logs.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// dsnOptions enables WAL so the API handlers and the daily check can read
// while a write is in flight, and waits out the sqlite write lock instead
// of surfacing SQLITE_BUSY.
const dsnOptions = "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

// DB wraps sqlx.DB with the fleet schema migration
type DB struct {
	*sqlx.DB
}

// New opens (creating if needed) the sqlite database at path
func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to open fleet database: %w", err)
	}

	// sqlite has a single writer; a small pool is enough for the API
	// plus the scheduler sharing one file
	db.SetMaxOpenConns(4)

	return &DB{db}, nil
}

// Migrate applies the fleet schema, which is idempotent
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
