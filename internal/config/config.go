package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherproxy.app/pkg/errors"
)

const (
	maxPortNumber       = 65535
	maxHTTPTimeoutMs    = 60000
	defaultMaxEntries   = 10000
	providerOpenMeteo   = "open-meteo"
	providerOpenWeather = "openweather"
	providerWeatherAPI  = "weatherapi"

	// gin.SetMode panics on anything else
	ginModeDebug   = "debug"
	ginModeRelease = "release"
	ginModeTest    = "test"
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
}

type ServerConfig struct {
	Port    int    `envconfig:"PORT" default:"3000"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// ProviderKind is the closed set of upstream integrations
type ProviderKind int

const (
	ProviderUnknown ProviderKind = iota
	ProviderOpenMeteo
	ProviderOpenWeather
	ProviderWeatherAPI
)

// String returns the configuration name of the provider
func (p ProviderKind) String() string {
	switch p {
	case ProviderOpenMeteo:
		return providerOpenMeteo
	case ProviderOpenWeather:
		return providerOpenWeather
	case ProviderWeatherAPI:
		return providerWeatherAPI
	default:
		return "unknown"
	}
}

// IsValid checks if the provider kind is one of the known integrations
func (p ProviderKind) IsValid() bool {
	return p == ProviderOpenMeteo || p == ProviderOpenWeather || p == ProviderWeatherAPI
}

// RequiresAPIKey reports whether the provider authenticates with WEATHER_API_KEY
func (p ProviderKind) RequiresAPIKey() bool {
	return p == ProviderOpenWeather || p == ProviderWeatherAPI
}

// ProviderKindFromString converts a WEATHER_PROVIDER value to ProviderKind
func ProviderKindFromString(s string) ProviderKind {
	switch s {
	case providerOpenMeteo:
		return ProviderOpenMeteo
	case providerOpenWeather:
		return ProviderOpenWeather
	case providerWeatherAPI:
		return ProviderWeatherAPI
	default:
		return ProviderUnknown
	}
}

type WeatherConfig struct {
	// Provider is kept as the raw string so an unknown name can be reported verbatim
	Provider          string `envconfig:"WEATHER_PROVIDER" default:"open-meteo"`
	APIKey            string `envconfig:"WEATHER_API_KEY"`
	OpenMeteoBaseURL  string `envconfig:"OPEN_METEO_BASE_URL" default:"https://api.open-meteo.com/v1"`
	OpenWeatherURL    string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIBaseURL string `envconfig:"WEATHERAPI_BASE_URL" default:"http://api.weatherapi.com/v1"`
	HTTPTimeoutMs     int    `envconfig:"WEATHER_HTTP_TIMEOUT_MS" default:"5000"`
	StrictProvider    bool   `envconfig:"WEATHER_PROVIDER_STRICT" default:"false"`
	CoalesceFetches   bool   `envconfig:"WEATHER_COALESCE_FETCHES" default:"false"`
	EnableLogging     bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath       string `envconfig:"WEATHER_LOG_FILE_PATH"`
}

// ProviderKind returns the parsed provider selector
func (w WeatherConfig) ProviderKind() ProviderKind {
	return ProviderKindFromString(w.Provider)
}

// HTTPTimeout returns the outbound request timeout
func (w WeatherConfig) HTTPTimeout() time.Duration {
	return time.Duration(w.HTTPTimeoutMs) * time.Millisecond
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeLRU
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeLRU:
		return "lru"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeLRU
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "lru":
		return CacheTypeLRU
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type       CacheType `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMs      int64     `envconfig:"CACHE_TTL_MS" default:"600000"`
	MaxEntries int       `envconfig:"CACHE_MAX_ENTRIES" default:"10000"`
}

// TTL returns the freshness window for cache entries
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMs) * time.Millisecond
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("PORT must be between 1 and 65535", nil)
	}
	switch s.GinMode {
	case ginModeDebug, ginModeRelease, ginModeTest:
	default:
		return errors.NewConfigurationError("GIN_MODE must be one of: debug, release, test", nil)
	}
	return nil
}

// Validate checks the weather section. An unknown provider only fails here in
// strict mode; otherwise it is reported on every request.
func (w *WeatherConfig) Validate() error {
	if w.StrictProvider && !w.ProviderKind().IsValid() {
		return errors.NewConfigurationError(
			fmt.Sprintf("WEATHER_PROVIDER must be one of: %s, %s, %s (got %q)",
				providerOpenMeteo, providerOpenWeather, providerWeatherAPI, w.Provider), nil)
	}

	for name, baseURL := range map[string]string{
		"OPEN_METEO_BASE_URL":  w.OpenMeteoBaseURL,
		"OPENWEATHER_BASE_URL": w.OpenWeatherURL,
		"WEATHERAPI_BASE_URL":  w.WeatherAPIBaseURL,
	} {
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
		}
	}

	if w.HTTPTimeoutMs < 1 || w.HTTPTimeoutMs > maxHTTPTimeoutMs {
		return errors.NewConfigurationError("WEATHER_HTTP_TIMEOUT_MS must be between 1 and 60000", nil)
	}

	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, lru", nil)
	}
	if c.TTLMs < 0 {
		return errors.NewConfigurationError("CACHE_TTL_MS cannot be negative", nil)
	}
	if c.Type == CacheTypeLRU && c.MaxEntries < 1 {
		return errors.NewConfigurationError("CACHE_MAX_ENTRIES must be at least 1 when using lru cache", nil)
	}
	return nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 3000, GinMode: ginModeRelease},
		Weather: WeatherConfig{
			Provider:          providerOpenMeteo,
			OpenMeteoBaseURL:  "https://api.open-meteo.com/v1",
			OpenWeatherURL:    "https://api.openweathermap.org/data/2.5",
			WeatherAPIBaseURL: "http://api.weatherapi.com/v1",
			HTTPTimeoutMs:     5000,
			EnableLogging:     true,
		},
		Cache: CacheConfig{Type: CacheTypeMemory, TTLMs: 600000, MaxEntries: defaultMaxEntries},
		Log:   LogConfig{Level: "info"},
	}
}
