package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/pkg/errors"
)

func TestWeatherProviderFactory_CreateWeatherProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantType interface{}
	}{
		{provider: "open-meteo", wantType: &OpenMeteoProviderAdapter{}},
		{provider: "openweather", wantType: &OpenWeatherProviderAdapter{}},
		{provider: "weatherapi", wantType: &WeatherAPIProviderAdapter{}},
		{provider: "darksky", wantType: &UnsupportedProviderAdapter{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := config.Default().Weather
			cfg.Provider = tt.provider
			cfg.APIKey = "key"

			provider := NewWeatherProviderFactory(nil, &testLogger{}).CreateWeatherProvider(cfg)

			assert.IsType(t, tt.wantType, provider)
			assert.Equal(t, tt.provider, provider.GetProviderName())
		})
	}
}

func TestWeatherProviderFactory_UnknownProviderMakesNoNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := config.Default().Weather
	cfg.Provider = "darksky"
	cfg.OpenMeteoBaseURL = server.URL
	logger := &testLogger{}

	provider := NewWeatherProviderFactory(nil, logger).CreateWeatherProvider(cfg)
	_, err := provider.FetchCurrentWeather(context.Background(), berlin)

	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "Unknown provider: darksky")
	assert.False(t, called)
	require.Len(t, logger.byLevel("WARN"), 1)
	assert.Equal(t, "darksky", logger.byLevel("WARN")[0].fields["provider"])
}

func TestWeatherProviderFactory_MissingAPIKeyWarns(t *testing.T) {
	cfg := config.Default().Weather
	cfg.Provider = "weatherapi"
	logger := &testLogger{}

	provider := NewWeatherProviderFactory(nil, logger).CreateWeatherProvider(cfg)

	assert.IsType(t, &WeatherAPIProviderAdapter{}, provider)
	assert.Len(t, logger.byLevel("WARN"), 1)
}

func TestWeatherProviderFactory_UsesConfiguredTimeout(t *testing.T) {
	cfg := config.Default().Weather
	cfg.HTTPTimeoutMs = 1234

	provider := NewWeatherProviderFactory(nil, &testLogger{}).CreateWeatherProvider(cfg)

	adapter, ok := provider.(*OpenMeteoProviderAdapter)
	require.True(t, ok)
	client, ok := adapter.fetcher.client.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, cfg.HTTPTimeout(), client.Timeout)
}
