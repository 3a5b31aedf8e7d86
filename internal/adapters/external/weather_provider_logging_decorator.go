package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherproxy.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) *WeatherProviderLoggingDecorator {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// FetchCurrentWeather wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) FetchCurrentWeather(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Upstream request started",
		ports.F("provider", providerName),
		ports.F("lat", coords.Latitude),
		ports.F("lon", coords.Longitude),
		ports.F("event", "request"))

	startTime := time.Now()
	payload, err := d.provider.FetchCurrentWeather(ctx, coords)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Warn("Upstream request failed",
			ports.F("provider", providerName),
			ports.F("lat", coords.Latitude),
			ports.F("lon", coords.Longitude),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Upstream request completed",
		ports.F("provider", providerName),
		ports.F("lat", coords.Latitude),
		ports.F("lon", coords.Longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("bytes", len(payload)))

	return payload, nil
}

// GetProviderName returns the name of the wrapped provider
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
