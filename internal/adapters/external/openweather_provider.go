package external

import (
	"context"
	"encoding/json"
	"net/url"

	"weatherproxy.app/internal/ports"
)

const (
	OpenWeatherProviderName   = "openweather"
	defaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
)

// OpenWeatherProviderAdapter implements WeatherProvider port for OpenWeatherMap One Call
type OpenWeatherProviderAdapter struct {
	apiKey  string
	baseURL string
	fetcher jsonFetcher
}

// OpenWeatherProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherProviderParams struct {
	APIKey  string
	BaseURL string
	Client  HTTPClient
	Logger  ports.Logger
}

// NewOpenWeatherProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherProviderAdapter(params OpenWeatherProviderParams) *OpenWeatherProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenWeatherBaseURL
	}

	return &OpenWeatherProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		fetcher: newJSONFetcher(OpenWeatherProviderName, params.Client, params.Logger),
	}
}

// FetchCurrentWeather retrieves metric one-call data. An empty key is sent
// as is and rejected upstream.
func (p *OpenWeatherProviderAdapter) FetchCurrentWeather(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	return p.fetcher.get(ctx, p.requestURL(coords))
}

func (p *OpenWeatherProviderAdapter) requestURL(coords ports.Coordinates) string {
	query := url.Values{}
	query.Set("lat", coords.Latitude)
	query.Set("lon", coords.Longitude)
	query.Set("units", "metric")
	query.Set("exclude", "minutely")
	query.Set("appid", p.apiKey)
	return p.baseURL + "/onecall?" + query.Encode()
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherProviderAdapter) GetProviderName() string {
	return OpenWeatherProviderName
}
