package toolkit

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache is a read-through memoization layer over a Store. Within one
// run the same (kind, id) pair always returns the identical descriptor
// instance. The key includes the store root so identical identifiers
// across different stores never alias. A Cache is constructed per run
// and passed explicitly; there is no ambient singleton.
type Cache struct {
	store *Store

	mu      sync.Mutex
	entries map[string]*Descriptor

	hits   atomic.Int64
	misses atomic.Int64

	hitCounter  prometheus.Counter
	missCounter prometheus.Counter
}

// NewCache creates a cache over the given store. Hit/miss counters are
// registered on reg when it is non-nil; they are diagnostics only.
func NewCache(store *Store, reg prometheus.Registerer) *Cache {
	c := &Cache{
		store:   store,
		entries: make(map[string]*Descriptor),
		hitCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolforge_descriptor_cache_hits_total",
			Help: "Descriptor cache hits within the current run.",
		}),
		missCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolforge_descriptor_cache_misses_total",
			Help: "Descriptor cache misses within the current run.",
		}),
	}

	if reg != nil {
		// Caches are per run but registries may outlive them; adopt the
		// already-registered counters on repeat runs.
		c.hitCounter = registerCounter(reg, c.hitCounter)
		c.missCounter = registerCounter(reg, c.missCounter)
	}

	return c
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter) prometheus.Counter {
	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return counter
}

// Load returns the cached descriptor for (kind, id), reading through to
// the store on first access. Errors, including ErrNotFound, are not
// cached; a retry hits the store again.
func (c *Cache) Load(kind Kind, id string) (*Descriptor, error) {
	key := c.key(kind, id)

	c.mu.Lock()
	if desc, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		c.hitCounter.Inc()
		return desc, nil
	}
	c.mu.Unlock()

	c.misses.Add(1)
	c.missCounter.Inc()

	desc, err := c.store.Load(kind, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A concurrent loader may have won the race; descriptors for the
	// same key are substitutable, so keep the first stored instance to
	// preserve reference consistency for earlier callers.
	if existing, ok := c.entries[key]; ok {
		desc = existing
	} else {
		c.entries[key] = desc
	}
	c.mu.Unlock()

	return desc, nil
}

// Hits returns the number of cache hits so far.
func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of cache misses so far.
func (c *Cache) Misses() int64 {
	return c.misses.Load()
}

// key builds the cache key from store identity and descriptor identity.
func (c *Cache) key(kind Kind, id string) string {
	return fmt.Sprintf("%s|%s|%s", c.store.Root(), kind, id)
}
