// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

const readHeaderTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router          *gin.Engine
	config          ServerConfig
	httpServer      *http.Server
	weatherUseCase  WeatherUseCase
	metricsReporter MetricsReporter
	metricsHandler  http.Handler
	healthChecker   ports.SystemHealthChecker
	logger          ports.Logger
}

// WeatherUseCase is the use case the HTTP adapter depends on
type WeatherUseCase interface {
	GetWeather(ctx context.Context, request weather.WeatherRequest) (*weather.WeatherResult, error)
}

// MetricsReporter supplies the JSON document for /api/metrics
type MetricsReporter interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config          ServerConfig
	WeatherUseCase  WeatherUseCase
	MetricsReporter MetricsReporter
	// MetricsHandler serves /metrics; the route is omitted when nil
	MetricsHandler http.Handler
	HealthChecker  ports.SystemHealthChecker
	Logger         ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(opts.Logger))

	server := &HTTPServerAdapter{
		router: router,
		config: opts.Config,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.Port),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		weatherUseCase:  opts.WeatherUseCase,
		metricsReporter: opts.MetricsReporter,
		metricsHandler:  opts.MetricsHandler,
		healthChecker:   opts.HealthChecker,
		logger:          opts.Logger,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.MetricsReporter == nil {
		return errors.NewValidationError("metrics reporter is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/weather", s.getWeather)
	s.router.GET("/health", s.getHealth)

	api := s.router.Group("/api")
	{
		api.GET("/metrics", s.getMetrics)
	}

	if s.metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}
}

// Start serves HTTP until Shutdown is called. It returns nil after a clean shutdown.
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", ports.F("port", s.config.Port))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
