package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProvider
	WeatherCache    WeatherCache
	WeatherMetrics  WeatherMetrics

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Infrastructure
	Logger  Logger
	Metrics MetricsCollector
}
