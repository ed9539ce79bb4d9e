// Package credstore persists the session token in a local SQLite database.
package credstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS credentials (
    id        INTEGER PRIMARY KEY CHECK (id = 1),
    token     TEXT NOT NULL,
    saved_at  TEXT NOT NULL
);
`

// Store holds the single persisted session token.
type Store struct {
	db *sql.DB
}

// Open opens or creates the credential database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating credential dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening credential db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the credential database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the persisted session token, or "" if none is stored.
func (s *Store) Token() (string, error) {
	var token string
	err := s.db.QueryRow("SELECT token FROM credentials WHERE id = 1").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Save stores the session token, replacing any previous one.
func (s *Store) Save(token string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO credentials (id, token, saved_at)
		VALUES (1, ?, ?)`, token, now)
	return err
}

// Clear removes the persisted token, if any.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM credentials WHERE id = 1")
	return err
}
