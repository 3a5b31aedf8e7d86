package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/adapters/api"
	"weatherproxy.app/internal/adapters/infrastructure"
	"weatherproxy.app/internal/config"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/logger"
)

const serviceName = "weatherproxy"

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase

	// Adapters
	httpAdapter *api.HTTPServerAdapter

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// port-level records carry the service and provider
	l := logger.Install(cfg.Log.Level).WithFields(map[string]interface{}{
		"service":  serviceName,
		"provider": cfg.Weather.Provider,
	})

	return NewApplicationWithConfig(cfg, DependencyOptions{
		Logger: infrastructure.NewSlogLoggerAdapter(l),
	})
}

// NewApplicationWithConfig wires the application from an explicit configuration
func NewApplicationWithConfig(cfg *config.Config, opts DependencyOptions) (*Application, error) {
	gin.SetMode(cfg.Server.GinMode)

	deps, err := NewDependencyContainer(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Cache:           a.ports.WeatherCache,
		Logger:          a.ports.Logger,
		Metrics:         a.ports.Metrics,
		CoalesceFetches: a.config.Weather.CoalesceFetches,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully",
		"provider", weatherUseCase.ProviderName(),
		"coalesce_fetches", a.config.Weather.CoalesceFetches)
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		ProviderChecker: infrastructure.NewProviderHealthChecker(
			a.ports.WeatherProvider, a.deps.ProviderSupported(), a.config.Weather.HTTPTimeout()),
		CacheChecker: infrastructure.NewCacheHealthChecker(
			a.ports.CacheProvider, a.config.Cache.Type.String(), a.config.Cache.TTL()),
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		WeatherUseCase:  a.weatherUseCase,
		MetricsReporter: infrastructure.NewMetricsReporterAdapter(a.ports.WeatherMetrics),
		MetricsHandler:  a.deps.MetricsHandler(),
		HealthChecker:   systemHealthChecker,
		Logger:          a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpAdapter = httpAdapter

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start serves HTTP until Shutdown is called
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...", "port", a.config.Server.Port)
	return a.httpAdapter.Start(ctx)
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpAdapter.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Close(); err != nil {
		slog.Warn("Error closing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.httpAdapter.GetRouter()
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
