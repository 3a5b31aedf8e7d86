package ports

import (
	"context"
	"time"
)

// CacheEntry is a stored value and the instant it was written
type CacheEntry struct {
	Value    []byte
	StoredAt time.Time
}

// CacheProvider defines the contract for the raw key/value store behind the
// weather cache. Entries carry no expiry and are only ever overwritten;
// freshness is decided by the caller.
type CacheProvider interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, value []byte) error
	Len() int
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
}
