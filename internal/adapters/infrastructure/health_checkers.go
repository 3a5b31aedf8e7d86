package infrastructure

import (
	"context"
	"time"

	"weatherproxy.app/internal/ports"
)

// ProviderHealthChecker reports whether the configured provider names a known
// integration. It never calls upstream.
type ProviderHealthChecker struct {
	provider  ports.WeatherProvider
	supported bool
	timeout   time.Duration
}

// NewProviderHealthChecker creates a new provider health checker
func NewProviderHealthChecker(provider ports.WeatherProvider, supported bool, timeout time.Duration) *ProviderHealthChecker {
	return &ProviderHealthChecker{provider: provider, supported: supported, timeout: timeout}
}

// Check verifies provider configuration
func (p *ProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "provider",
		Status:    ports.HealthStatusHealthy,
		Details:   map[string]interface{}{},
	}

	if p.provider == nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = "weather provider is not configured"
		return status
	}

	status.Details["name"] = p.provider.GetProviderName()
	status.Details["timeout_ms"] = p.timeout.Milliseconds()
	if !p.supported {
		status.Status = ports.HealthStatusDegraded
		status.Error = "Unknown provider: " + p.provider.GetProviderName()
	}

	return status
}

// CacheHealthChecker reports the cache backend and its size
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
	ttl       time.Duration
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string, ttl time.Duration) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType, ttl: ttl}
}

// Check reports cache details
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.HealthStatusHealthy,
		Details: map[string]interface{}{
			"type":   c.cacheType,
			"ttl_ms": c.ttl.Milliseconds(),
		},
	}

	if c.cache == nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = "cache is not configured"
		return status
	}

	status.Details["entries"] = c.cache.Len()
	return status
}
