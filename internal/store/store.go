// Package store is the persistence layer: a sqlite database with
// auto-increment keys holding expenses plus the reference collections
// (categories, payment methods, users) and settings. The parsing layer
// only sees it through small interfaces; all SQL lives here.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the sqlite handle. Safe for concurrent use; sqlite
// serializes writers internally.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path, applies the
// schema and seeds reference data on first run.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}
