package cache

import (
	"sync"
	"time"
)

// entry pairs a cached payload with its insertion time.
type entry struct {
	insertedAt time.Time
	payload    any
}

// Cache is a concurrency-safe in-memory key-value store with a single TTL.
// It keeps raw upstream payloads so repeated requests within the TTL window
// skip the network call. There is no capacity bound; time is the only
// eviction policy.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is swappable in tests.
	now func() time.Time
}

// New creates a Cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the payload stored under key, or ok=false when the key was
// never set or its entry is older than the TTL. Expired entries are purged
// during the lookup, so a later Get does not age-check stale data again.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, unconditionally overwriting any previous
// entry. Concurrent writers for the same key race benignly: last one wins.
func (c *Cache) Set(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{insertedAt: c.now(), payload: payload}
}
