// Package view holds the response cache the rendering layer reads through.
// Mutations never re-render; they mark a logical path stale and the next
// request recomputes it.
package view

import "sync"

// Cache memoizes rendered response bodies by logical view path.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Get returns the cached body for path, if any.
func (c *Cache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[path]
	return body, ok
}

// Put stores a copy of body under path.
func (c *Cache) Put(path string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = append([]byte(nil), body...)
}

// Invalidate marks path stale. Invalidating an absent path is a no-op.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
