package data

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"business-analysis/internal/model"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. Stored values are shared between readers and must be
// treated as read-only once Set.
type Cache[V any] struct {
	mu    sync.RWMutex
	store map[string]cacheEntry[V]
	ttl   time.Duration
	now   func() time.Time
}

func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		store: make(map[string]cacheEntry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached value if present and not expired. A nil cache never hits.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key. It is a no-op on a nil cache.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len counts entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache[V]) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry[V])
}

// Sweep removes expired entries.
func (c *Cache[V]) Sweep() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

// RunJanitor sweeps expired entries every interval until ctx is done.
func (c *Cache[V]) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// SeriesKey identifies a series and cadence. Any change to a record yields a new key,
// so cached results never outlive the data they were computed from.
func SeriesKey(s model.Series, periodsPerYear int) string {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(periodsPerYear))
	h.Write(buf[:])
	for _, r := range s {
		h.Write([]byte(r.Period))
		h.Write([]byte{0})
		for _, f := range model.Fields {
			v, _ := r.Value(f)
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
