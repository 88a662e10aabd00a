// Package history persists the cross-session log of submitted prompts.
// The editor widget's own history (spec.md's in-memory, per-invocation Up/Down
// recall) never touches disk; this package is the host-side companion that
// survives process restarts, backed by SQLite the way the rest of the host
// persists state alongside flat log files.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed log of submitted prompts, newest first.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the conventional location of the history database,
// creating its parent directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".local", "share", "reapo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a submitted prompt. Empty text and exact repeats of the
// most recent entry are skipped, matching the editor's own in-memory
// history dedup rule.
func (s *Store) Append(text string) error {
	if text == "" {
		return nil
	}
	last, err := s.mostRecent()
	if err != nil {
		return err
	}
	if last == text {
		return nil
	}
	_, err = s.db.Exec(`INSERT INTO submissions (text) VALUES (?)`, text)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

func (s *Store) mostRecent() (string, error) {
	var text string
	err := s.db.QueryRow(`SELECT text FROM submissions ORDER BY id DESC LIMIT 1`).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read most recent history entry: %w", err)
	}
	return text, nil
}

// Recent returns up to limit most-recently-submitted prompts, newest first.
func (s *Store) Recent(limit int) ([]string, error) {
	rows, err := s.db.Query(`SELECT text FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, text)
	}
	return entries, rows.Err()
}
