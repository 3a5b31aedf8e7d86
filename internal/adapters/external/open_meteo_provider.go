package external

import (
	"context"
	"encoding/json"
	"net/url"

	"weatherproxy.app/internal/ports"
)

const (
	OpenMeteoProviderName   = "open-meteo"
	defaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1"
)

// OpenMeteoProviderAdapter implements WeatherProvider port for Open-Meteo.
// Open-Meteo needs no API key.
type OpenMeteoProviderAdapter struct {
	baseURL string
	fetcher jsonFetcher
}

// OpenMeteoProviderParams holds parameters for creating Open-Meteo provider
type OpenMeteoProviderParams struct {
	BaseURL string
	Client  HTTPClient
	Logger  ports.Logger
}

// NewOpenMeteoProviderAdapter creates a new Open-Meteo provider adapter
func NewOpenMeteoProviderAdapter(params OpenMeteoProviderParams) *OpenMeteoProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenMeteoBaseURL
	}

	return &OpenMeteoProviderAdapter{
		baseURL: baseURL,
		fetcher: newJSONFetcher(OpenMeteoProviderName, params.Client, params.Logger),
	}
}

// FetchCurrentWeather requests current conditions from the forecast endpoint
func (p *OpenMeteoProviderAdapter) FetchCurrentWeather(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	return p.fetcher.get(ctx, p.requestURL(coords))
}

func (p *OpenMeteoProviderAdapter) requestURL(coords ports.Coordinates) string {
	query := url.Values{}
	query.Set("latitude", coords.Latitude)
	query.Set("longitude", coords.Longitude)
	query.Set("current_weather", "true")
	return p.baseURL + "/forecast?" + query.Encode()
}

// GetProviderName returns the name of this weather provider
func (p *OpenMeteoProviderAdapter) GetProviderName() string {
	return OpenMeteoProviderName
}
