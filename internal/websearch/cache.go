package websearch

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// migrations is an ordered list of SQL migration statements.
// Each entry is applied once in order. New migrations are appended at the end.
var migrations = []string{
	// Migration 0: initial schema
	`CREATE TABLE IF NOT EXISTS search_cache (
		query      TEXT PRIMARY KEY,
		results    TEXT NOT NULL,
		cached_at  INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_search_cache_age ON search_cache(cached_at)`,
}

// Cache persists search results in SQLite so repeated queries within the TTL
// never hit the network.
type Cache struct {
	conn *sql.DB
	ttl  time.Duration
	now  func() time.Time
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("websearch: create cache directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("websearch: resolve cache path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", absPath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("websearch: open cache: %w", err)
	}

	// Single writer, multiple readers.
	conn.SetMaxOpenConns(1)

	if err := applyMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("websearch: apply migrations: %w", err)
	}

	return &Cache{conn: conn, ttl: ttl, now: time.Now}, nil
}

// Close closes the cache database connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Get returns the cached results for a query, or ok=false when absent or
// expired. Expired rows are deleted on the way out.
func (c *Cache) Get(query string) ([]Result, bool) {
	var data string
	var cachedAt int64
	row := c.conn.QueryRow(`SELECT results, cached_at FROM search_cache WHERE query = ?`, query)
	if err := row.Scan(&data, &cachedAt); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintf(os.Stderr, "[augi] search cache read failed: %v\n", err)
		}
		return nil, false
	}

	if c.now().Sub(time.Unix(cachedAt, 0)) > c.ttl {
		c.conn.Exec(`DELETE FROM search_cache WHERE query = ?`, query)
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.conn.Exec(`DELETE FROM search_cache WHERE query = ?`, query)
		return nil, false
	}
	return results, true
}

// Put stores results for a query, replacing any prior entry.
func (c *Cache) Put(query string, results []Result) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("websearch: encode results: %w", err)
	}
	_, err = c.conn.Exec(
		`INSERT OR REPLACE INTO search_cache (query, results, cached_at) VALUES (?, ?, ?)`,
		query, string(data), c.now().Unix())
	if err != nil {
		return fmt.Errorf("websearch: cache write: %w", err)
	}
	return nil
}

// PurgeExpired removes every entry older than the TTL and returns how many
// rows were dropped.
func (c *Cache) PurgeExpired() (int64, error) {
	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.conn.Exec(`DELETE FROM search_cache WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("websearch: purge: %w", err)
	}
	return res.RowsAffected()
}

// applyMigrations runs any migrations that have not yet been applied.
func applyMigrations(conn *sql.DB) error {
	// Ensure the migration tracking table exists first.
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmt := range migrations {
		var count int
		row := conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, i)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("check migration %d: %w", i, err)
		}
		if count > 0 {
			continue
		}

		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}

		if _, err := conn.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i); err != nil {
			return fmt.Errorf("record migration %d: %w", i, err)
		}
	}

	return nil
}
