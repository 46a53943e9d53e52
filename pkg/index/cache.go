package index

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a published snapshot, the generation it was built for
// and its expiration time.
type cacheEntry struct {
	snapshot   *Snapshot
	generation uint64
	expiresAt  time.Time
}

// BuildFunc builds the snapshot for a scope on a cache miss.
type BuildFunc func(ctx context.Context) (*Snapshot, error)

// Cache is a thread-safe, in-memory cache of snapshots keyed by scope.
// Each scope is built at most once at a time; concurrent misses for the
// same scope share one build. Entries are lazily expired on access when a
// TTL is set, and Invalidate discards every entry by moving to a new
// generation.
type Cache struct {
	mu         sync.RWMutex
	entries    map[Scope]cacheEntry
	ttl        time.Duration
	generation atomic.Uint64
	group      singleflight.Group
	now        func() time.Time
}

// NewCache creates a cache. A zero ttl keeps snapshots until Invalidate.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[Scope]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the snapshot for scope built under generation, building it
// with build when it is missing or expired. The caller reads generation
// from Generation or Invalidate together with the inputs build depends on;
// a snapshot built for a generation that is no longer current is returned
// to its callers but never published. The bool reports whether the snapshot
// came from the cache.
//
// build runs detached from the cancellation of ctx since its result is
// shared by every caller of the flight.
func (c *Cache) Get(ctx context.Context, scope Scope, generation uint64, build BuildFunc) (*Snapshot, bool, error) {
	if snapshot, ok := c.lookup(scope, generation); ok {
		return snapshot, true, nil
	}

	flightKey := fmt.Sprintf("%d:%s:%s", generation, scope, scope.OptionsKey)
	value, err, _ := c.group.Do(flightKey, func() (any, error) {
		// Another flight may have published while this one queued.
		if snapshot, ok := c.lookup(scope, generation); ok {
			return snapshot, nil
		}
		snapshot, err := build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.publish(scope, generation, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*Snapshot), false, nil
}

func (c *Cache) lookup(scope Scope, generation uint64) (*Snapshot, bool) {
	c.mu.RLock()
	entry, exists := c.entries[scope]
	c.mu.RUnlock()

	if !exists || entry.generation != generation {
		return nil, false
	}
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		// Lazily remove the expired entry.
		c.mu.Lock()
		// Re-check in case another goroutine already replaced it.
		if current, stillExists := c.entries[scope]; stillExists && c.now().After(current.expiresAt) {
			delete(c.entries, scope)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.snapshot, true
}

// publish stores snapshot unless the cache moved to a newer generation
// while it was being built.
func (c *Cache) publish(scope Scope, generation uint64, snapshot *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation.Load() != generation {
		return
	}
	c.entries[scope] = cacheEntry{
		snapshot:   snapshot,
		generation: generation,
		expiresAt:  c.now().Add(c.ttl),
	}
}

// Invalidate discards every snapshot and returns the new generation.
// Builds already in flight complete for their callers but are not
// published.
func (c *Cache) Invalidate() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Scope]cacheEntry)
	return c.generation.Add(1)
}

// Generation returns the current cache generation.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// Len returns the number of entries currently in the cache (including
// potentially expired ones).
func (c *Cache) Len() int {
	c.mu.RLock()
	count := len(c.entries)
	c.mu.RUnlock()
	return count
}
