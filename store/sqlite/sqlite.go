// Package sqlite is a standalone, modernc.org/sqlite-backed implementation
// of the match.Store / match.HistoryStore / match.PolicyStore / match.UserStore
// interfaces, used by enginectl to run the orchestrator without a live
// Nakama instance (the engine's own tests use in-memory doubles instead) — mirrored on the teacher pack's
// internal/storage.Open schema-embed pattern.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps the shared *sql.DB connection the four store implementations in
// this package operate on.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the sqlite database at path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// MatchStore returns a match.Store backed by this connection.
func (db *DB) MatchStore() *MatchStore { return &MatchStore{db: db.conn} }

// HistoryStore returns a match.HistoryStore backed by this connection.
func (db *DB) HistoryStore() *HistoryStore { return &HistoryStore{db: db.conn} }

// PolicyStore returns a match.PolicyStore backed by this connection.
func (db *DB) PolicyStore() *PolicyStore { return &PolicyStore{db: db.conn} }

// UserStore returns a match.UserStore backed by this connection.
func (db *DB) UserStore() *UserStore { return &UserStore{db: db.conn} }
