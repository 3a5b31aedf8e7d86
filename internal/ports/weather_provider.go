package ports

import (
	"context"
	"encoding/json"
	"time"
)

// Coordinates are the raw lat/lon query values. They are never parsed.
type Coordinates struct {
	Latitude  string
	Longitude string
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	Entries     int
	LastUpdated time.Time
}

// WeatherProvider defines the contract for an upstream weather integration
type WeatherProvider interface {
	FetchCurrentWeather(ctx context.Context, coords Coordinates) (json.RawMessage, error)
	GetProviderName() string
}

// CachedWeather is a fresh cache hit together with its age
type CachedWeather struct {
	Payload  json.RawMessage
	StoredAt time.Time
	Age      time.Duration
}

// WeatherCache defines the contract for caching upstream payloads.
// Lookup returns a NotFound error when the key is absent or stale.
type WeatherCache interface {
	Lookup(ctx context.Context, key string) (*CachedWeather, error)
	Store(ctx context.Context, key string, payload json.RawMessage) error
}

// WeatherMetrics defines the contract for weather provider metrics
type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (CacheStats, error)
}
