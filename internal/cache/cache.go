// Package cache holds the in-memory read models the UI consumes. The
// durable copies live in the SQLite store; this layer exists so reads
// during a session never touch the disk and so optimistic updates are
// visible immediately.
package cache

import (
	"context"
	"fmt"
	"sync"
)

// Key builders. Every cached collection is addressed by one of these.

func BookingsKey(eventID int64) string   { return fmt.Sprintf("bookings:%d", eventID) }
func StatsKey(eventID int64) string      { return fmt.Sprintf("stats:%d", eventID) }
func GownStatsKey(eventID int64) string  { return fmt.Sprintf("gown-stats:%d", eventID) }
func EventKey(eventID int64) string      { return fmt.Sprintf("event:%d", eventID) }
func CeremoniesKey(eventID int64) string { return fmt.Sprintf("ceremonies:%d", eventID) }
func PendingKey(bookingID int64) string  { return fmt.Sprintf("pending:%d", bookingID) }

// Cache is the session-scoped read model store.
type Cache interface {
	// Get returns the cached value for key and whether it was present.
	Get(key string) (any, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value any)

	// Invalidate removes the given keys. Missing keys are ignored.
	Invalidate(keys ...string)

	// InvalidatePrefix removes every key starting with prefix.
	InvalidatePrefix(prefix string)

	// TrackInFlight registers a cancel func for an in-flight fill of key.
	// A later CancelInFlight(key) aborts it. Registering a second fill
	// for the same key cancels the first.
	TrackInFlight(key string, cancel context.CancelFunc)

	// CancelInFlight aborts the in-flight fill of key, if any.
	CancelInFlight(key string)

	// Clear drops all values and aborts all in-flight fills.
	Clear()
}

// MemoryCache is the map-backed Cache used by the agent. Safe for
// concurrent use.
type MemoryCache struct {
	mu       sync.RWMutex
	values   map[string]any
	inflight map[string]context.CancelFunc
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		values:   make(map[string]any),
		inflight: make(map[string]context.CancelFunc),
	}
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *MemoryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *MemoryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
	}
}

func (c *MemoryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.values {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.values, key)
		}
	}
}

func (c *MemoryCache) TrackInFlight(key string, cancel context.CancelFunc) {
	c.mu.Lock()
	prev := c.inflight[key]
	c.inflight[key] = cancel
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (c *MemoryCache) CancelInFlight(key string) {
	c.mu.Lock()
	cancel := c.inflight[key]
	delete(c.inflight, key)
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(c.inflight))
	for _, cancel := range c.inflight {
		cancels = append(cancels, cancel)
	}
	c.values = make(map[string]any)
	c.inflight = make(map[string]context.CancelFunc)
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Typed lookup helper. Returns the zero value and false when the key is
// absent or holds a different type.
func Lookup[T any](c Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
