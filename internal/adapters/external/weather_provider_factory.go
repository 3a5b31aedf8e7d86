package external

import (
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/ports"
)

// WeatherProviderFactory builds the single upstream integration named by the configuration
type WeatherProviderFactory struct {
	client HTTPClient
	logger ports.Logger
}

// NewWeatherProviderFactory creates a factory sharing one HTTP client across adapters
func NewWeatherProviderFactory(client HTTPClient, logger ports.Logger) *WeatherProviderFactory {
	return &WeatherProviderFactory{client: client, logger: logger}
}

// CreateWeatherProvider resolves the configured provider. An unknown name
// yields an adapter that fails every request with a configuration error.
func (f *WeatherProviderFactory) CreateWeatherProvider(cfg config.WeatherConfig) ports.WeatherProvider {
	client := f.client
	if client == nil {
		client = NewHTTPClient(cfg.HTTPTimeout())
	}

	var provider ports.WeatherProvider
	switch cfg.ProviderKind() {
	case config.ProviderOpenMeteo:
		provider = NewOpenMeteoProviderAdapter(OpenMeteoProviderParams{
			BaseURL: cfg.OpenMeteoBaseURL,
			Client:  client,
			Logger:  f.logger,
		})
	case config.ProviderOpenWeather:
		provider = NewOpenWeatherProviderAdapter(OpenWeatherProviderParams{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.OpenWeatherURL,
			Client:  client,
			Logger:  f.logger,
		})
	case config.ProviderWeatherAPI:
		provider = NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.WeatherAPIBaseURL,
			Client:  client,
			Logger:  f.logger,
		})
	default:
		f.logger.Warn("Unknown weather provider configured, requests will fail",
			ports.F("provider", cfg.Provider))
		return NewUnsupportedProviderAdapter(cfg.Provider)
	}

	if cfg.ProviderKind().RequiresAPIKey() && cfg.APIKey == "" {
		f.logger.Warn("Weather provider requires an API key but WEATHER_API_KEY is empty",
			ports.F("provider", cfg.Provider))
	}

	f.logger.Debug("Created weather provider", ports.F("provider", provider.GetProviderName()))
	return provider
}
