package external

import (
	"context"
	"encoding/json"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// UnsupportedProviderAdapter stands in for a WEATHER_PROVIDER value that names
// no known integration. Every fetch fails without touching the network.
type UnsupportedProviderAdapter struct {
	name string
}

// NewUnsupportedProviderAdapter creates an adapter that rejects every request
func NewUnsupportedProviderAdapter(name string) *UnsupportedProviderAdapter {
	return &UnsupportedProviderAdapter{name: name}
}

// FetchCurrentWeather always returns a configuration error
func (p *UnsupportedProviderAdapter) FetchCurrentWeather(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	return nil, errors.NewConfigurationError("Unknown provider: "+p.name, nil)
}

// GetProviderName returns the configured name verbatim
func (p *UnsupportedProviderAdapter) GetProviderName() string {
	return p.name
}
