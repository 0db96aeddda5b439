package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache categories. The key format "{category}:{identifier}" is a
// contract: the stats command counts rows per category string.
const (
	CategoryAutocomplete = "autocomplete"
	CategorySearch       = "search"
	CategoryVideo        = "video"
	CategoryChannel      = "channel"
	CategoryTrends       = "trends"
	CategorySupply       = "supply"
)

// DefaultTTL is the fallback expiry when a category has no specific TTL.
const DefaultTTL = 24 * time.Hour

// Per-category TTLs. Channel subscriber counts churn slower than search
// rankings, so they live longer.
var categoryTTL = map[string]time.Duration{
	CategoryAutocomplete: 24 * time.Hour,
	CategorySearch:       12 * time.Hour,
	CategoryVideo:        24 * time.Hour,
	CategoryChannel:      48 * time.Hour,
	CategoryTrends:       24 * time.Hour,
	CategorySupply:       12 * time.Hour,
}

// TTLFor returns the default TTL for a cache category.
func TTLFor(category string) time.Duration {
	if ttl, ok := categoryTTL[category]; ok {
		return ttl
	}
	return DefaultTTL
}

// Store is the SQLite-backed expiring key-value cache shared by every
// external data source. It is content-agnostic: values round-trip through
// JSON and the store never interprets what it holds.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if necessary) the cache database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "gapscout.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP NOT NULL,
		category TEXT NOT NULL DEFAULT 'general'
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache table: %w", err)
	}

	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_cache_expires_at ON cache(expires_at)`); err != nil {
		return fmt.Errorf("failed to create expiry index: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func cacheKey(category, identifier string) string {
	return fmt.Sprintf("%s:%s", category, identifier)
}

// Get looks up a cached value and unmarshals it into dest. It returns
// false on a miss. An entry past its expiry is a miss and is deleted
// eagerly; a value that no longer deserializes is treated the same way so
// a fresh fetch can repopulate it.
func (s *Store) Get(category, identifier string, dest any) (bool, error) {
	key := cacheKey(category, identifier)

	var value string
	var expiresAt time.Time
	err := s.db.QueryRow(`SELECT value, expires_at FROM cache WHERE key = ?`, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if time.Now().After(expiresAt) {
		if _, err := s.db.Exec(`DELETE FROM cache WHERE key = ?`, key); err != nil {
			return false, fmt.Errorf("failed to delete expired entry: %w", err)
		}
		return false, nil
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		// Corrupted row: drop it and report a miss.
		_, _ = s.db.Exec(`DELETE FROM cache WHERE key = ?`, key)
		return false, nil
	}

	return true, nil
}

// Set stores a JSON-serializable value. A non-positive ttl selects the
// category default. Writing an existing key overwrites it (last write
// wins), atomically per key.
func (s *Store) Set(category, identifier string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = TTLFor(category)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache value: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO cache (key, value, created_at, expires_at, category)
		VALUES (?, ?, ?, ?, ?)`,
		cacheKey(category, identifier), string(data), now, now.Add(ttl), category)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Delete removes a single cache entry.
func (s *Store) Delete(category, identifier string) error {
	_, err := s.db.Exec(`DELETE FROM cache WHERE key = ?`, cacheKey(category, identifier))
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// ClearCategory removes every entry of one category.
func (s *Store) ClearCategory(category string) error {
	_, err := s.db.Exec(`DELETE FROM cache WHERE category = ?`, category)
	if err != nil {
		return fmt.Errorf("failed to clear category %s: %w", category, err)
	}
	return nil
}

// ClearExpired removes all entries past their expiry.
func (s *Store) ClearExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM cache WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ClearAll empties the cache and reclaims file space.
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if _, err := s.db.Exec(`VACUUM`); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

// Stats holds cache statistics for the stats command.
type Stats struct {
	TotalEntries   int
	ExpiredEntries int
	ByCategory     map[string]int
	CacheSize      int64
	LastUpdated    time.Time
}

// GetStats returns entry counts, per-category breakdown, and file size.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByCategory: map[string]int{}}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cache`).Scan(&stats.TotalEntries); err != nil {
		return nil, fmt.Errorf("failed to count cache entries: %w", err)
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cache WHERE expires_at < ?`, time.Now().UTC()).
		Scan(&stats.ExpiredEntries); err != nil {
		return nil, fmt.Errorf("failed to count expired entries: %w", err)
	}

	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM cache GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category counts: %w", err)
	}

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.CacheSize = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}

	return stats, nil
}
