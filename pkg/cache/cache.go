package cache

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/json-iterator/go"
	"github.com/perchapp/cli/pkg/config"
	"github.com/perchapp/cli/pkg/logger"
)

// Named cache regions. Reads go through these; a successful profile-image
// upload invalidates both so the next read refetches fresh data.
const (
	KeyUserProfile = "user-profile"
	KeyUserStats   = "user-stats"
)

// entry wraps a cached payload with the time it was fetched
type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Store is a file-backed response cache keyed by region name.
// Entries older than the TTL are treated as absent.
type Store struct {
	dir string
	ttl time.Duration
}

// NewStore creates a cache store rooted at dir
func NewStore(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl}
}

// Default returns a store rooted at the configured cache directory
func Default() *Store {
	ttl := time.Duration(config.GetInt("cache.ttl")) * time.Second
	return NewStore(config.GetCacheDir(), ttl)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get loads a cached entry into target. It returns false when the entry
// is missing, stale, or unreadable.
func (s *Store) Get(key string, target interface{}) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}

	if s.ttl > 0 && time.Since(e.FetchedAt) > s.ttl {
		return false
	}

	if err := json.Unmarshal(e.Data, target); err != nil {
		return false
	}

	return true
}

// Put stores a value under key
func (s *Store) Put(key string, value interface{}) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry{
		FetchedAt: time.Now(),
		Data:      raw,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(key), data, 0600)
}

// Invalidate marks a region stale so the next read refetches.
// Invalidation is fire-and-forget; a missing entry is not an error.
func (s *Store) Invalidate(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		logger.Debug("Cache invalidation failed", "key", key, "error", err.Error())
	}
}
