package channels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache persists the channel directory as a flat JSON object mapping
// channel name to channel ID, e.g. {"general": "C123"}.
type Cache struct {
	path string
}

// NewCache creates a Cache that persists to the given path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the full mapping from disk. ok is false when the cache file
// does not exist yet.
func (c *Cache) Load() (entries map[string]string, ok bool, err error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, true, nil
}

// Save overwrites the cache file with entries.
func (c *Cache) Save(entries map[string]string) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}
