package external

import (
	"context"
	"encoding/json"
	"net/url"

	"weatherproxy.app/internal/ports"
)

const (
	WeatherAPIProviderName   = "weatherapi"
	defaultWeatherAPIBaseURL = "http://api.weatherapi.com/v1"
)

// WeatherAPIProviderAdapter implements WeatherProvider port for WeatherAPI.com
type WeatherAPIProviderAdapter struct {
	apiKey  string
	baseURL string
	fetcher jsonFetcher
}

// WeatherAPIProviderParams holds parameters for creating WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Client  HTTPClient
	Logger  ports.Logger
}

// NewWeatherAPIProviderAdapter creates a new WeatherAPI provider adapter
func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) *WeatherAPIProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultWeatherAPIBaseURL
	}

	return &WeatherAPIProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		fetcher: newJSONFetcher(WeatherAPIProviderName, params.Client, params.Logger),
	}
}

// FetchCurrentWeather retrieves weather data from WeatherAPI.com
func (p *WeatherAPIProviderAdapter) FetchCurrentWeather(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	return p.fetcher.get(ctx, p.requestURL(coords))
}

func (p *WeatherAPIProviderAdapter) requestURL(coords ports.Coordinates) string {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", coords.Latitude+","+coords.Longitude)
	return p.baseURL + "/current.json?" + query.Encode()
}

// GetProviderName returns the name of this weather provider
func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return WeatherAPIProviderName
}
