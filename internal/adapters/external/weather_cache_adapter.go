package external

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// WeatherCacheAdapter bridges a generic CacheProvider to the weather-specific
// WeatherCache. Freshness is decided here on read: an entry is served only
// while its age is below the TTL. Stale entries stay in place until overwritten.
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
	ttl           time.Duration
	now           func() time.Time
	metrics       ports.MetricsCollector

	statsMu sync.RWMutex
	hits    int64
	misses  int64
}

// WeatherCacheAdapterParams holds parameters for creating the weather cache
type WeatherCacheAdapterParams struct {
	CacheProvider ports.CacheProvider
	TTL           time.Duration
	// Now defaults to time.Now
	Now func() time.Time
	// Metrics, when set, receives the entry count after every write
	Metrics ports.MetricsCollector
}

// NewWeatherCacheAdapter creates a weather cache adapter using generic cache provider
func NewWeatherCacheAdapter(params WeatherCacheAdapterParams) *WeatherCacheAdapter {
	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &WeatherCacheAdapter{
		cacheProvider: params.CacheProvider,
		ttl:           params.TTL,
		now:           now,
		metrics:       params.Metrics,
	}
}

// Lookup returns a fresh entry or a NotFound error
func (w *WeatherCacheAdapter) Lookup(ctx context.Context, key string) (*ports.CachedWeather, error) {
	entry, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		if errors.IsNotFoundError(err) {
			w.RecordMiss()
		}
		return nil, err
	}

	age := w.now().Sub(entry.StoredAt)
	if age >= w.ttl {
		w.RecordMiss()
		return nil, errors.NewNotFoundError("cache entry expired")
	}

	w.RecordHit()
	return &ports.CachedWeather{
		Payload:  json.RawMessage(entry.Value),
		StoredAt: entry.StoredAt,
		Age:      age,
	}, nil
}

// Store writes the payload, replacing any previous entry for the key
func (w *WeatherCacheAdapter) Store(ctx context.Context, key string, payload json.RawMessage) error {
	if payload == nil {
		return errors.NewValidationError("weather payload cannot be nil")
	}

	if err := w.cacheProvider.Set(ctx, key, []byte(payload)); err != nil {
		return err
	}

	if w.metrics != nil {
		w.metrics.SetCacheEntries(w.cacheProvider.Len())
	}
	return nil
}

// GetStats returns cache statistics
func (w *WeatherCacheAdapter) GetStats() ports.CacheStats {
	w.statsMu.RLock()
	hits, misses := w.hits, w.misses
	w.statsMu.RUnlock()

	total := hits + misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		Entries:     w.cacheProvider.Len(),
		LastUpdated: w.now(),
	}
}

// RecordHit increments the cache hit counter
func (w *WeatherCacheAdapter) RecordHit() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.hits++
}

// RecordMiss increments the cache miss counter
func (w *WeatherCacheAdapter) RecordMiss() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.misses++
}

// WeatherMetricsAdapter implements WeatherMetrics port
type WeatherMetricsAdapter struct {
	cacheMetrics ports.CacheMetrics
	provider     ports.WeatherProvider
	info         WeatherMetricsInfo
}

// WeatherMetricsInfo describes the static configuration reported by /api/metrics
type WeatherMetricsInfo struct {
	ProviderSupported bool
	CacheType         string
	CacheTTL          time.Duration
	CoalesceFetches   bool
}

// NewWeatherMetricsAdapter creates a new weather metrics adapter
func NewWeatherMetricsAdapter(cacheMetrics ports.CacheMetrics, provider ports.WeatherProvider, info WeatherMetricsInfo) *WeatherMetricsAdapter {
	return &WeatherMetricsAdapter{
		cacheMetrics: cacheMetrics,
		provider:     provider,
		info:         info,
	}
}

// GetProviderInfo returns provider information
func (m *WeatherMetricsAdapter) GetProviderInfo() map[string]interface{} {
	status := "active"
	if !m.info.ProviderSupported {
		status = "unsupported"
	}

	return map[string]interface{}{
		"provider":         m.provider.GetProviderName(),
		"status":           status,
		"cache_type":       m.info.CacheType,
		"cache_ttl_ms":     m.info.CacheTTL.Milliseconds(),
		"coalesce_fetches": m.info.CoalesceFetches,
	}
}

// GetCacheMetrics returns cache performance metrics
func (m *WeatherMetricsAdapter) GetCacheMetrics() (ports.CacheStats, error) {
	if m.cacheMetrics == nil {
		return ports.CacheStats{LastUpdated: time.Now()}, nil
	}
	return m.cacheMetrics.GetStats(), nil
}
