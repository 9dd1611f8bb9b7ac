// Package jsoncache is a persistent string-keyed cache backed by a flat,
// human-inspectable JSON object file. Deleting the file forces a re-fetch
// of everything; a nil value records a lookup that failed so it is never
// retried.
package jsoncache

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cache maps keys to raw JSON values. Negative results are stored as JSON
// null, which is distinct from an absent key.
type Cache struct {
	path    string
	entries map[string]json.RawMessage
	dirty   int
	// FlushEvery persists the file after this many writes so a crash
	// mid-run loses at most the in-flight lookup. Zero disables the
	// incremental flush; Save must then be called explicitly.
	FlushEvery int
}

// Open loads the cache at path, starting empty if the file is missing.
func Open(path string) (*Cache, error) {
	c := &Cache{
		path:       path,
		entries:    make(map[string]json.RawMessage),
		FlushEvery: 20,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parse cache %s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of cached keys, including negative entries.
func (c *Cache) Len() int { return len(c.entries) }

// Has reports whether key has any cached result, positive or negative.
func (c *Cache) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Get unmarshals the cached value for key into out. The second return is
// false when the key is absent. A negative (null) entry returns ok=true
// with found=false.
func (c *Cache) Get(key string, out any) (found, ok bool) {
	raw, exists := c.entries[key]
	if !exists {
		return false, false
	}
	if string(raw) == "null" {
		return false, true
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, true
	}
	return true, true
}

// Put stores a value for key and flushes if the write budget is spent.
func (c *Cache) Put(key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	c.entries[key] = raw
	return c.wrote()
}

// PutNegative records a failed lookup so the key is never retried until
// the cache file is manually cleared.
func (c *Cache) PutNegative(key string) error {
	c.entries[key] = json.RawMessage("null")
	return c.wrote()
}

func (c *Cache) wrote() error {
	c.dirty++
	if c.FlushEvery > 0 && c.dirty >= c.FlushEvery {
		return c.Save()
	}
	return nil
}

// Save writes the cache file with indented JSON.
func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("cache write %s: %w", c.path, err)
	}
	c.dirty = 0
	return nil
}
