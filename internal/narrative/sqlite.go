package narrative

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteCache persists narratives with write-through semantics: reads are
// served from an embedded MemoryCache, writes go to both. Restarting the
// service keeps the cache warm.
type SQLiteCache struct {
	inner *MemoryCache
	db    *sqlx.DB
	mu    sync.Mutex
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS narratives (
	cache_key  TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &SQLiteCache{inner: NewMemoryCache(), db: db}
	if err := c.loadAll(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load narratives: %w", err)
	}
	return c, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) loadAll() error {
	rows, err := c.db.Query("SELECT cache_key, text FROM narratives")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key, text string
		if err := rows.Scan(&key, &text); err != nil {
			return err
		}
		c.inner.entries[key] = text
	}
	return rows.Err()
}

func (c *SQLiteCache) Get(ctx context.Context, key string) (string, bool, error) {
	return c.inner.Get(ctx, key)
}

func (c *SQLiteCache) Set(ctx context.Context, key, text string) error {
	if err := c.inner.Set(ctx, key, text); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.Exec(`INSERT OR REPLACE INTO narratives (cache_key, text, created_at) VALUES (?, ?, ?)`,
		key, text, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

var _ Cache = (*SQLiteCache)(nil)
