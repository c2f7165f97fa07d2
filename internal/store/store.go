// Package store is the relational access layer for employees, accounts,
// employee-account associations, and account API keys. It is backed by MySQL
// in production; tests run it against in-memory SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the backing database. All methods are safe for concurrent use;
// the connection pool is the only shared state.
type Store struct {
	db *sqlx.DB
}

// New opens the database identified by driver and dsn and applies the schema
// migrations. The driver must be registered by the caller (the serve command
// registers mysql; tests register sqlite).
func New(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		// A single connection keeps an in-memory database alive and avoids
		// SQLite's writer contention.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
