package client

import (
	"strings"
	"sync"
)

// Cache stores list results under a composite key (resource + filter), the
// same shape the console's query layer used. A successful write invalidates
// every key of its resource so the next read refetches.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func cacheKey(resource, filter string) string {
	return resource + "|" + filter
}

func (c *Cache) get(resource, filter string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[cacheKey(resource, filter)]
	return v, ok
}

func (c *Cache) put(resource, filter string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(resource, filter)] = v
}

// Invalidate drops every cached entry of a resource, whatever the filter.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := resource + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Clear drops everything (logout).
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
