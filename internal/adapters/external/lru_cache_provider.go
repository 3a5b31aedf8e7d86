package external

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// LRUCacheProvider is a capacity-bounded store backed by ttlcache. Items carry
// no expiry of their own; the least recently used entry is evicted once the
// capacity is reached.
type LRUCacheProvider struct {
	cache  *ttlcache.Cache[string, ports.CacheEntry]
	now    func() time.Time
	logger ports.Logger
}

// LRUCacheProviderParams holds parameters for creating the LRU store
type LRUCacheProviderParams struct {
	MaxEntries int
	Logger     ports.Logger
	Now        func() time.Time
}

// NewLRUCacheProvider creates a bounded store
func NewLRUCacheProvider(params LRUCacheProviderParams) (*LRUCacheProvider, error) {
	if params.MaxEntries < 1 {
		return nil, errors.NewConfigurationError("lru cache capacity must be at least 1", nil)
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	cache := ttlcache.New[string, ports.CacheEntry](
		ttlcache.WithCapacity[string, ports.CacheEntry](uint64(params.MaxEntries)),
		ttlcache.WithDisableTouchOnHit[string, ports.CacheEntry](),
	)

	p := &LRUCacheProvider{cache: cache, now: now, logger: params.Logger}

	if p.logger != nil {
		cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, ports.CacheEntry]) {
			if reason == ttlcache.EvictionReasonCapacityReached {
				p.logger.Debug("Evicted least recently used cache entry", ports.F("key", item.Key()))
			}
		})
	}

	return p, nil
}

func (c *LRUCacheProvider) Get(ctx context.Context, key string) (*ports.CacheEntry, error) {
	item := c.cache.Get(key)
	if item == nil {
		return nil, errors.NewNotFoundError("cache miss")
	}

	entry := item.Value()
	return &entry, nil
}

func (c *LRUCacheProvider) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}

	c.cache.Set(key, ports.CacheEntry{Value: value, StoredAt: c.now()}, ttlcache.NoTTL)
	return nil
}

func (c *LRUCacheProvider) Len() int {
	return c.cache.Len()
}
