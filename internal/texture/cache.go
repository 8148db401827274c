package texture

import (
	"path/filepath"
	"sync"

	"pano-viewer/internal/raster"
)

// Resolver resolves an image path to a decoded source.
type Resolver interface {
	Resolve(path string) (*raster.Source, error)
}

// Cache is a concurrency-safe source cache. Failed loads are cached too so a
// bad file is only read once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(string) (*raster.Source, error)
}

type cacheEntry struct {
	src *raster.Source
	err error
}

// NewCache creates an empty cache that decodes with Load.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  Load,
	}
}

// Resolve loads and caches an image by path.
func (c *Cache) Resolve(path string) (*raster.Source, error) {
	key := filepath.Clean(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry.src, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	src, err := c.load(key)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[key]; exists {
		return entry.src, entry.err
	}
	c.items[key] = &cacheEntry{src: src, err: err}
	return src, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
