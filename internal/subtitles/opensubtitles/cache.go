package opensubtitles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

const searchCacheSize = 128

// Cache persists search results and downloaded subtitle bodies in a single
// SQLite file so repeated runs over the same library do not burn API quota.
// A sidecar flock guards the file against concurrent runs; an in-process LRU
// fronts the searches table.
type Cache struct {
	db       *sql.DB
	lock     *flock.Flock
	searches *lru.Cache[string, []Subtitle]
}

// OpenCache opens or creates the cache file, taking the sidecar lock. It
// fails immediately when another process holds the lock.
func OpenCache(path string) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("opensubtitles cache: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("opensubtitles cache: create directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("opensubtitles cache: acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("opensubtitles cache: %s is in use by another process", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("opensubtitles cache: open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("opensubtitles cache: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("opensubtitles cache: apply schema: %w", err)
	}

	searches, err := lru.New[string, []Subtitle](searchCacheSize)
	if err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("opensubtitles cache: build lru: %w", err)
	}
	return &Cache{db: db, lock: lock, searches: searches}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS searches (
    key        TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS downloads (
    file_id    INTEGER PRIMARY KEY,
    body       BLOB NOT NULL,
    created_at TEXT NOT NULL
);
`

// SearchKey canonicalizes a query plus language list into a cache key.
func SearchKey(query string, languages []string) string {
	return strings.ToLower(strings.TrimSpace(query)) + "|" + strings.ToLower(strings.Join(languages, ","))
}

// GetSearch returns cached search results for the key, if any.
func (c *Cache) GetSearch(ctx context.Context, key string) ([]Subtitle, bool, error) {
	if hits, ok := c.searches.Get(key); ok {
		return hits, true, nil
	}
	var payload string
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM searches WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("opensubtitles cache: query search: %w", err)
	}
	var hits []Subtitle
	if err := json.Unmarshal([]byte(payload), &hits); err != nil {
		return nil, false, fmt.Errorf("opensubtitles cache: decode search payload: %w", err)
	}
	c.searches.Add(key, hits)
	return hits, true, nil
}

// PutSearch stores search results under the key. Empty result sets are cached
// too so a library full of misses still makes one API call per title.
func (c *Cache) PutSearch(ctx context.Context, key string, hits []Subtitle) error {
	payload, err := json.Marshal(hits)
	if err != nil {
		return fmt.Errorf("opensubtitles cache: encode search payload: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO searches (key, payload, created_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("opensubtitles cache: store search: %w", err)
	}
	c.searches.Add(key, hits)
	return nil
}

// GetDownload returns a cached subtitle body for the file ID, if any.
func (c *Cache) GetDownload(ctx context.Context, fileID int64) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx, `SELECT body FROM downloads WHERE file_id = ?`, fileID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("opensubtitles cache: query download: %w", err)
	}
	return body, true, nil
}

// PutDownload stores a subtitle body under its file ID.
func (c *Cache) PutDownload(ctx context.Context, fileID int64, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO downloads (file_id, body, created_at) VALUES (?, ?, ?)
         ON CONFLICT(file_id) DO UPDATE SET body = excluded.body, created_at = excluded.created_at`,
		fileID, body, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("opensubtitles cache: store download: %w", err)
	}
	return nil
}

// Close releases the database handle and the sidecar lock.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			firstErr = err
		}
	}
	if c.lock != nil {
		if err := c.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
