// Package store provides a SQLite-backed cache of per-file outlines, keyed by
// the hash of the file content they were rendered from.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS outline_cache (
	hash     TEXT PRIMARY KEY,
	path     TEXT NOT NULL,
	outline  TEXT NOT NULL,
	created  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outline_created ON outline_cache(created);
CREATE INDEX IF NOT EXISTS idx_outline_path ON outline_cache(path);
`

// Cache is a SQLite-backed outline cache.
type Cache struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a cache database at the given path.
// ttl controls how long entries remain fresh.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &Cache{db: db, ttl: ttl}
	c.purgeStale()
	return c, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// GetOutline returns the cached outline for a content hash.
// Safe to call on a nil receiver (returns miss).
func (c *Cache) GetOutline(hash string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl).Unix()
	var outline string
	err := c.db.QueryRow(
		"SELECT outline FROM outline_cache WHERE hash = ? AND created > ?",
		hash, cutoff,
	).Scan(&outline)
	if err != nil {
		return "", false
	}
	return outline, true
}

// SetOutline stores the outline rendered for path at content hash, dropping
// older entries for the same path. No-op on nil receiver.
func (c *Cache) SetOutline(hash, path, outline string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to cache outline")
		return
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM outline_cache WHERE path = ? AND hash != ?", path, hash); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to drop superseded outlines")
		return
	}
	_, err = tx.Exec(
		"INSERT OR REPLACE INTO outline_cache (hash, path, outline, created) VALUES (?, ?, ?, ?)",
		hash, path, outline, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to cache outline")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to commit outline")
	}
}

// Len returns the number of cached outlines, fresh or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM outline_cache").Scan(&n); err != nil {
		return 0
	}
	return n
}

// purgeStale removes entries older than the TTL.
func (c *Cache) purgeStale() {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.Exec("DELETE FROM outline_cache WHERE created <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale cache")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale cache entries")
	}
}
