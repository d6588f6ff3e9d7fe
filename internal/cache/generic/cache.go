// Package generic provides a RAM-first cache persisted behind the caller.
package generic

import (
	"context"
	"sync"

	"github.com/bnema/flexpane/internal/logging"
)

// Store is the persistence behind a WriteBehind cache.
type Store[K comparable, V any] interface {
	// LoadAll returns every stored entry.
	LoadAll(ctx context.Context) (map[K]V, error)

	// Persist saves a single entry.
	Persist(ctx context.Context, key K, value V) error
}

// WriteBehind serves reads from memory and persists writes asynchronously.
// Writes to the same key are persisted in order; a write superseded before
// it reaches the store is skipped.
type WriteBehind[K comparable, V any] struct {
	store Store[K, V]

	mu       sync.RWMutex
	values   map[K]V
	versions map[K]uint64

	// persistMu serializes store writes so that version checks hold.
	persistMu sync.Mutex
	pending   sync.WaitGroup
}

// NewWriteBehind creates an empty cache over store.
func NewWriteBehind[K comparable, V any](store Store[K, V]) *WriteBehind[K, V] {
	return &WriteBehind[K, V]{
		store:    store,
		values:   make(map[K]V),
		versions: make(map[K]uint64),
	}
}

// Load bulk-loads the store into memory. Entries already set in memory win.
func (c *WriteBehind[K, V]) Load(ctx context.Context) error {
	data, err := c.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range data {
		if _, ok := c.values[k]; !ok {
			c.values[k] = v
		}
	}
	return nil
}

// Get returns the cached value. Never reads the store.
func (c *WriteBehind[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of cached entries.
func (c *WriteBehind[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Set updates memory immediately and persists in the background. Failures
// are logged with the logger of ctx; cancelling ctx does not abort the write.
func (c *WriteBehind[K, V]) Set(ctx context.Context, key K, value V) {
	c.mu.Lock()
	c.values[key] = value
	c.versions[key]++
	version := c.versions[key]
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		c.persistMu.Lock()
		defer c.persistMu.Unlock()

		c.mu.RLock()
		stale := c.versions[key] != version
		c.mu.RUnlock()
		if stale {
			return
		}
		if err := c.store.Persist(ctx, key, value); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Interface("key", key).Msg("write-behind persist failed")
		}
	}()
}

// Flush blocks until every pending write has completed.
func (c *WriteBehind[K, V]) Flush() {
	c.pending.Wait()
}
