// Package store provides a SQLite-backed cache of fetched dataset payloads,
// so repeat runs work offline and without refetching.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is a payload cache keyed by dataset reference (path or URL).
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant cache database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "unbudget", "cache.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "unbudget", "cache.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached payload for ref, if any.
func (c *Cache) Get(ref string) (body []byte, fetchedAt time.Time, ok bool, err error) {
	var at string
	row := c.db.QueryRow("SELECT body, fetched_at FROM payloads WHERE ref = ?", ref)
	if err := row.Scan(&body, &at); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, err
	}
	fetchedAt, _ = time.Parse(time.RFC3339, at)
	return body, fetchedAt, true, nil
}

// Put stores or replaces the payload for ref.
func (c *Cache) Put(ref string, body []byte) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO payloads (ref, body, fetched_at) VALUES (?, ?, ?)",
		ref, body, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
