// Package db manages the SQLite store: connection lifecycle, schema
// initialization, migrations, and the exclusive acquisition needed by
// backup and restore.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the explicit handle to the single database file. It is
// constructed once (see internal/wire) and passed to every repository;
// there is no hidden global connection.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database file at path, enables
// foreign keys, and initializes the schema and migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := open(path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(GetSchemaSQL()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := RunMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: conn, path: path}, nil
}

func open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return conn, nil
}

// DB returns the underlying connection for repositories.
func (s *Store) DB() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// WithExclusive runs fn while holding a write lock on the database file:
// an immediate transaction is opened so no other writer can touch the
// file for the duration of fn. Used by backup to copy a quiescent file.
// The lock is released unconditionally afterward.
func (s *Store) WithExclusive(fn func(dbPath string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("store is closed")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to acquire exclusive lock: %w", err)
	}
	defer tx.Rollback()

	// Escalate to a write lock so concurrent writers block until done.
	if _, err := tx.Exec("UPDATE sauvegardes SET id = id WHERE 0"); err != nil {
		return fmt.Errorf("failed to escalate lock: %w", err)
	}

	return fn(s.path)
}

// Replace swaps the live database file with the one at srcPath: the
// connection is closed, the file replaced, and the store reopened.
// Used by restore. On reopen failure the store stays closed and the
// error is reported; nothing is retried.
func (s *Store) Replace(srcPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database before restore: %w", err)
		}
		s.db = nil
	}

	if err := copyFile(srcPath, s.path); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}

	conn, err := open(s.path)
	if err != nil {
		return err
	}
	s.db = conn
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
