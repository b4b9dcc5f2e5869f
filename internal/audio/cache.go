package audio

import (
	"fmt"
	"path/filepath"
	"sync"
)

// CanonicalPath resolves path to the absolute, symlink-free form used
// as the cache key, so relative and absolute references to one file
// share a single entry.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	return resolved, nil
}

// Cache maps canonical file paths to decoded tracks. Entries live
// until Clear (no eviction, no size bound) and Get/Put both move deep
// copies, so cached audio is immune to whatever the player does with
// the buffers it hands out. Cache methods are called from the control
// goroutine, never from the real-time callback; the mutex keeps them
// safe should control work ever fan out.
type Cache struct {
	mu     sync.Mutex
	tracks map[string]*Track
}

func NewCache() *Cache {
	return &Cache{tracks: make(map[string]*Track)}
}

// Get returns an independent copy of the entry for path,
// canonicalizing first. A path that cannot be resolved is a miss.
func (c *Cache) Get(path string) (*Track, bool) {
	key, err := CanonicalPath(path)
	if err != nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tracks[key]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Put stores an independent copy of track under the canonical form of
// path, replacing any existing entry.
func (c *Cache) Put(path string, track *Track) {
	key, err := CanonicalPath(path)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracks[key] = track.Clone()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracks = make(map[string]*Track)
}

// Len reports the number of cached tracks.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tracks)
}
