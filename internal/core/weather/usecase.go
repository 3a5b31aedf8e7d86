package weather

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

type UseCase struct {
	weatherProvider ports.WeatherProvider
	cache           ports.WeatherCache
	logger          ports.Logger
	metrics         ports.MetricsCollector
	coalesce        bool
	inflight        singleflight.Group
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Cache           ports.WeatherCache
	Logger          ports.Logger
	Metrics         ports.MetricsCollector
	// CoalesceFetches lets concurrent misses for one key share a single
	// upstream call. Off by default: duplicate fetches under a race are allowed.
	CoalesceFetches bool
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		cache:           deps.Cache,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
		coalesce:        deps.CoalesceFetches,
	}, nil
}

// GetWeather serves a fresh cached payload when there is one and otherwise
// fetches from the configured provider and stores the result. Provider errors
// are returned as they are.
func (uc *UseCase) GetWeather(ctx context.Context, request WeatherRequest) (*WeatherResult, error) {
	if err := request.IsValid(); err != nil {
		return nil, err
	}

	key := request.CacheKey()

	cached, err := uc.cache.Lookup(ctx, key)
	if err == nil && cached != nil {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Debug("Weather found in cache",
			ports.F("key", key),
			ports.F("age_ms", cached.Age.Milliseconds()))
		return &WeatherResult{Data: cached.Payload, Cached: true, Age: cached.Age}, nil
	}
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Warn("Cache lookup failed, fetching from provider",
			ports.F("key", key),
			ports.F("error", err))
	}
	uc.metrics.RecordCacheMiss(ctx)

	// The upstream call outlives a client that hangs up; only the provider
	// timeout bounds it.
	payload, err := uc.load(context.WithoutCancel(ctx), key, request.Coordinates())
	if err != nil {
		// the provider decorator and the HTTP layer already report the failure
		uc.logger.Debug("Failed to get weather",
			ports.F("key", key),
			ports.F("provider", uc.weatherProvider.GetProviderName()),
			ports.F("error", err))
		return nil, err
	}

	return &WeatherResult{Data: payload, Cached: false}, nil
}

func (uc *UseCase) load(ctx context.Context, key string, coords ports.Coordinates) (json.RawMessage, error) {
	if !uc.coalesce {
		return uc.fetchAndStore(ctx, key, coords)
	}

	v, err, shared := uc.inflight.Do(key, func() (interface{}, error) {
		return uc.fetchAndStore(ctx, key, coords)
	})
	if shared {
		uc.logger.Debug("Joined in-flight upstream fetch", ports.F("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (uc *UseCase) fetchAndStore(ctx context.Context, key string, coords ports.Coordinates) (json.RawMessage, error) {
	payload, err := uc.getWeatherFromProvider(ctx, coords)
	if err != nil {
		return nil, err
	}

	if cacheErr := uc.cache.Store(ctx, key, payload); cacheErr != nil {
		uc.logger.Warn("Failed to cache weather data",
			ports.F("key", key),
			ports.F("error", cacheErr))
	}

	return payload, nil
}

func (uc *UseCase) getWeatherFromProvider(ctx context.Context, coords ports.Coordinates) (json.RawMessage, error) {
	providerName := uc.weatherProvider.GetProviderName()

	start := time.Now()
	payload, err := uc.weatherProvider.FetchCurrentWeather(ctx, coords)
	if !errors.IsConfigurationError(err) {
		uc.metrics.RecordUpstreamCall(ctx, providerName, err == nil, time.Since(start))
	}

	if err != nil {
		// Adapters already return typed errors; anything else is an upstream failure.
		if errors.TypeOf(err) == errors.ErrorTypeUnknown {
			return nil, errors.NewUpstreamError(providerName+" request failed", err)
		}
		return nil, err
	}

	return payload, nil
}

// ProviderName returns the name of the configured provider
func (uc *UseCase) ProviderName() string {
	return uc.weatherProvider.GetProviderName()
}
