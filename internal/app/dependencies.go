package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"weatherproxy.app/internal/adapters/external"
	"weatherproxy.app/internal/adapters/infrastructure"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/ports"
)

type DependencyContainer struct {
	config  *config.Config
	options DependencyOptions
	ports   *ports.ApplicationPorts

	prometheus *infrastructure.PrometheusMetricsCollector
	closers    []io.Closer
}

// DependencyOptions overrides infrastructure for tests. Zero values select
// the production defaults.
type DependencyOptions struct {
	Logger     ports.Logger
	HTTPClient external.HTTPClient
	Now        func() time.Time
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = infrastructure.NewSlogLoggerAdapter(nil)
	}

	container := &DependencyContainer{
		config:  cfg,
		options: opts,
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger := c.options.Logger
	upstreamLogger := logger

	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.closers = append(c.closers, fileLogger)
			upstreamLogger = infrastructure.NewMultiLogger(logger, fileLogger)
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	c.prometheus = infrastructure.NewPrometheusMetricsCollector()

	httpClient := c.options.HTTPClient
	if httpClient == nil {
		httpClient = external.NewHTTPClient(c.config.Weather.HTTPTimeout())
	}

	var provider ports.WeatherProvider = external.NewWeatherProviderFactory(httpClient, logger).
		CreateWeatherProvider(c.config.Weather)

	if c.config.Weather.EnableLogging {
		provider = external.NewWeatherProviderLoggingDecorator(provider, upstreamLogger)
		slog.Info("Weather provider logging enabled")
	}

	cacheProvider, err := external.NewCacheProviderFactory(logger).
		WithClock(c.options.Now).
		CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}

	weatherCache := external.NewWeatherCacheAdapter(external.WeatherCacheAdapterParams{
		CacheProvider: cacheProvider,
		TTL:           c.config.Cache.TTL(),
		Now:           c.options.Now,
		Metrics:       c.prometheus,
	})

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"ttl", c.config.Cache.TTL().String())

	weatherMetrics := external.NewWeatherMetricsAdapter(weatherCache, provider, external.WeatherMetricsInfo{
		ProviderSupported: c.ProviderSupported(),
		CacheType:         c.config.Cache.Type.String(),
		CacheTTL:          c.config.Cache.TTL(),
		CoalesceFetches:   c.config.Weather.CoalesceFetches,
	})

	c.ports = &ports.ApplicationPorts{
		// Weather
		WeatherProvider: provider,
		WeatherCache:    weatherCache,
		WeatherMetrics:  weatherMetrics,

		// Cache
		CacheProvider: cacheProvider,
		CacheMetrics:  weatherCache,

		// Infrastructure
		Logger:  logger,
		Metrics: c.prometheus,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// ProviderSupported reports whether WEATHER_PROVIDER names a known integration
func (c *DependencyContainer) ProviderSupported() bool {
	return c.config.Weather.ProviderKind().IsValid()
}

// MetricsHandler serves the Prometheus registry
func (c *DependencyContainer) MetricsHandler() http.Handler {
	return c.prometheus.Handler()
}

// Close releases resources such as the upstream log file
func (c *DependencyContainer) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
