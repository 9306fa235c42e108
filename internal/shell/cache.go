package shell

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds cached prompt status data.
type PromptCache struct {
	Today          bool      `json:"today"`
	Streak         int       `json:"streak"`
	Mood           string    `json:"mood,omitempty"`
	TodayDate      string    `json:"today_date"`
	StorageBackend string    `json:"storage_backend"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CachePath returns the full path to the prompt cache file.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(dataDir string) *PromptCache {
	data, err := os.ReadFile(CachePath(dataDir))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk.
func WriteCache(dataDir string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(CachePath(dataDir), data, 0o600)
}

// IsFresh reports whether the cache is still valid at now. A cache goes
// stale when the TTL has elapsed or the local date has changed since it
// was written.
func (c *PromptCache) IsFresh(ttl time.Duration, now time.Time) bool {
	if c == nil {
		return false
	}
	if c.TodayDate != now.Format(dayLayout) {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(dataDir string) error {
	if err := os.Remove(CachePath(dataDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
