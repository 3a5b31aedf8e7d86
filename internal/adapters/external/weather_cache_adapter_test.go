package external

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/mocks"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// Interface compliance verification
var (
	_ ports.WeatherCache   = (*WeatherCacheAdapter)(nil)
	_ ports.CacheMetrics   = (*WeatherCacheAdapter)(nil)
	_ ports.WeatherMetrics = (*WeatherMetricsAdapter)(nil)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestWeatherCache(t *testing.T, cacheType config.CacheType, ttl time.Duration, clock *fakeClock) *WeatherCacheAdapter {
	provider, err := NewCacheProviderFactory(&testLogger{}).
		WithClock(clock.Now).
		CreateCacheProvider(&config.CacheConfig{Type: cacheType, MaxEntries: 16})
	require.NoError(t, err)

	return NewWeatherCacheAdapter(WeatherCacheAdapterParams{
		CacheProvider: provider,
		TTL:           ttl,
		Now:           clock.Now,
	})
}

func TestWeatherCacheAdapter_Integration(t *testing.T) {
	for _, cacheType := range []config.CacheType{config.CacheTypeMemory, config.CacheTypeLRU} {
		t.Run(cacheType.String(), func(t *testing.T) {
			clock := newFakeClock()
			weatherCache := newTestWeatherCache(t, cacheType, 10*time.Minute, clock)
			ctx := context.Background()
			payload := json.RawMessage(`{"current_weather":{"temperature":18.3}}`)

			_, err := weatherCache.Lookup(ctx, "52.52,13.41")
			assert.True(t, errors.IsNotFoundError(err))

			require.NoError(t, weatherCache.Store(ctx, "52.52,13.41", payload))
			clock.Advance(time.Minute)

			cached, err := weatherCache.Lookup(ctx, "52.52,13.41")
			require.NoError(t, err)
			assert.Equal(t, []byte(payload), []byte(cached.Payload))
			assert.Equal(t, time.Minute, cached.Age)

			stats := weatherCache.GetStats()
			assert.Equal(t, int64(1), stats.Hits)
			assert.Equal(t, int64(1), stats.Misses)
			assert.Equal(t, int64(2), stats.TotalOps)
			assert.Equal(t, 0.5, stats.HitRatio)
			assert.Equal(t, 1, stats.Entries)
		})
	}
}

func TestWeatherCacheAdapter_TTLBoundary(t *testing.T) {
	clock := newFakeClock()
	weatherCache := newTestWeatherCache(t, config.CacheTypeMemory, 10*time.Minute, clock)
	ctx := context.Background()

	require.NoError(t, weatherCache.Store(ctx, "1,2", json.RawMessage(`{}`)))

	clock.Advance(10*time.Minute - time.Millisecond)
	_, err := weatherCache.Lookup(ctx, "1,2")
	assert.NoError(t, err, "fresh just below the TTL")

	clock.Advance(time.Millisecond)
	_, err = weatherCache.Lookup(ctx, "1,2")
	assert.True(t, errors.IsNotFoundError(err), "stale at exactly the TTL")
}

func TestWeatherCacheAdapter_StaleEntryIsReplacedNotDeleted(t *testing.T) {
	clock := newFakeClock()
	weatherCache := newTestWeatherCache(t, config.CacheTypeMemory, time.Second, clock)
	ctx := context.Background()

	require.NoError(t, weatherCache.Store(ctx, "1,2", json.RawMessage(`{"v":1}`)))
	clock.Advance(2 * time.Second)

	_, err := weatherCache.Lookup(ctx, "1,2")
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 1, weatherCache.GetStats().Entries)

	require.NoError(t, weatherCache.Store(ctx, "1,2", json.RawMessage(`{"v":2}`)))
	cached, err := weatherCache.Lookup(ctx, "1,2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(cached.Payload))
	assert.Equal(t, time.Duration(0), cached.Age)
}

func TestWeatherCacheAdapter_ZeroTTLNeverHits(t *testing.T) {
	clock := newFakeClock()
	weatherCache := newTestWeatherCache(t, config.CacheTypeMemory, 0, clock)
	ctx := context.Background()

	require.NoError(t, weatherCache.Store(ctx, "1,2", json.RawMessage(`{}`)))
	_, err := weatherCache.Lookup(ctx, "1,2")

	assert.True(t, errors.IsNotFoundError(err))
}

func TestWeatherCacheAdapter_ErrorHandling(t *testing.T) {
	weatherCache := newTestWeatherCache(t, config.CacheTypeMemory, time.Minute, newFakeClock())

	err := weatherCache.Store(context.Background(), "k", nil)

	assert.True(t, errors.IsValidationError(err))
}

func TestWeatherCacheAdapter_ReportsEntryCount(t *testing.T) {
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().SetCacheEntries(1).Once()
	metrics.EXPECT().SetCacheEntries(2).Once()

	weatherCache := NewWeatherCacheAdapter(WeatherCacheAdapterParams{
		CacheProvider: NewMemoryCacheProvider(),
		TTL:           time.Minute,
		Metrics:       metrics,
	})
	ctx := context.Background()

	require.NoError(t, weatherCache.Store(ctx, "a", json.RawMessage(`1`)))
	require.NoError(t, weatherCache.Store(ctx, "b", json.RawMessage(`2`)))

	metrics.AssertNotCalled(t, "SetCacheEntries", mock.MatchedBy(func(n int) bool { return n > 2 }))
}

func TestWeatherMetricsAdapter(t *testing.T) {
	weatherCache := newTestWeatherCache(t, config.CacheTypeMemory, time.Minute, newFakeClock())
	weatherCache.RecordHit()
	weatherCache.RecordHit()
	weatherCache.RecordMiss()

	adapter := NewWeatherMetricsAdapter(weatherCache, NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{}), WeatherMetricsInfo{
		ProviderSupported: true,
		CacheType:         "memory",
		CacheTTL:          time.Minute,
	})

	info := adapter.GetProviderInfo()
	assert.Equal(t, "open-meteo", info["provider"])
	assert.Equal(t, "active", info["status"])
	assert.Equal(t, "memory", info["cache_type"])
	assert.Equal(t, int64(60000), info["cache_ttl_ms"])
	assert.Equal(t, false, info["coalesce_fetches"])

	stats, err := adapter.GetCacheMetrics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.6667, stats.HitRatio, 0.001)

	unsupported := NewWeatherMetricsAdapter(nil, NewUnsupportedProviderAdapter("darksky"), WeatherMetricsInfo{})
	assert.Equal(t, "unsupported", unsupported.GetProviderInfo()["status"])
	stats, err = unsupported.GetCacheMetrics()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOps)
}
