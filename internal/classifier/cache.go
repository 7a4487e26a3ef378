package classifier

import "sync"

// responseCache is a bounded in-memory store of successful classification
// results keyed by deterministic request content. When the bound is reached
// the oldest entry is evicted. It backs the fallback path taken after the
// retry budget is exhausted.
type responseCache struct {
	mu      sync.Mutex
	max     int
	entries map[string][]Note
	order   []string
}

func newResponseCache(max int) *responseCache {
	return &responseCache{
		max:     max,
		entries: make(map[string][]Note),
	}
}

func (c *responseCache) get(key string) ([]Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	notes, ok := c.entries[key]
	return notes, ok
}

func (c *responseCache) put(key string, notes []Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = notes
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
