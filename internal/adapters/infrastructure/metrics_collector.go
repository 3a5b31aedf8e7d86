package infrastructure

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherproxy.app/internal/ports"
)

const metricsNamespace = "weatherproxy"

// PrometheusMetricsCollector implements the MetricsCollector port on a
// private registry, so several instances can coexist in tests.
type PrometheusMetricsCollector struct {
	registry         *prometheus.Registry
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheEntries     prometheus.Gauge
}

// NewPrometheusMetricsCollector registers the proxy metrics plus the Go and
// process collectors
func NewPrometheusMetricsCollector() *PrometheusMetricsCollector {
	registry := prometheus.NewRegistry()

	m := &PrometheusMetricsCollector{
		registry: registry,
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "The total number of requests served from cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "The total number of requests that missed the cache or found a stale entry",
		}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream provider calls by outcome",
		}, []string{"provider", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_entries",
			Help:      "Number of entries held by the cache, fresh or stale",
		}),
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.upstreamRequests,
		m.upstreamDuration,
		m.cacheEntries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *PrometheusMetricsCollector) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Inc()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.cacheMisses.Inc()
}

func (m *PrometheusMetricsCollector) RecordUpstreamCall(ctx context.Context, provider string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.upstreamDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *PrometheusMetricsCollector) SetCacheEntries(n int) {
	m.cacheEntries.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format
func (m *PrometheusMetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsReporterAdapter builds the JSON document served on /api/metrics
type MetricsReporterAdapter struct {
	weatherMetrics ports.WeatherMetrics
}

// NewMetricsReporterAdapter creates a new metrics reporter
func NewMetricsReporterAdapter(weatherMetrics ports.WeatherMetrics) *MetricsReporterAdapter {
	return &MetricsReporterAdapter{weatherMetrics: weatherMetrics}
}

// GetMetrics returns provider information and cache statistics
func (m *MetricsReporterAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := map[string]interface{}{
		"weather": m.weatherMetrics.GetProviderInfo(),
	}

	cacheStats, err := m.weatherMetrics.GetCacheMetrics()
	if err != nil {
		return nil, err
	}
	metrics["cache"] = map[string]interface{}{
		"hits":      cacheStats.Hits,
		"misses":    cacheStats.Misses,
		"total_ops": cacheStats.TotalOps,
		"hit_ratio": cacheStats.HitRatio,
		"entries":   cacheStats.Entries,
		"updated":   cacheStats.LastUpdated,
	}

	return metrics, nil
}
