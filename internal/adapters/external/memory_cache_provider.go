package external

import (
	"context"
	"sync"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// MemoryCacheProvider is an unbounded map store. Entries are never removed on
// read; a newer Set for the same key replaces the old one.
type MemoryCacheProvider struct {
	data  map[string]ports.CacheEntry
	mutex sync.RWMutex
	now   func() time.Time
}

// NewMemoryCacheProvider creates an empty in-memory store using the wall clock
func NewMemoryCacheProvider() *MemoryCacheProvider {
	return NewMemoryCacheProviderWithClock(time.Now)
}

// NewMemoryCacheProviderWithClock creates a store that timestamps writes with now
func NewMemoryCacheProviderWithClock(now func() time.Time) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data: make(map[string]ports.CacheEntry),
		now:  now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) (*ports.CacheEntry, error) {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("cache miss")
	}

	return &entry, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = ports.CacheEntry{
		Value:    value,
		StoredAt: c.now(),
	}

	return nil
}

func (c *MemoryCacheProvider) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}
