package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/ports"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth reports 200 when every component is healthy and 503 otherwise
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())
	status := ports.OverallStatus(components)

	code := http.StatusOK
	if status != ports.HealthStatusHealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{Status: status, Components: components})
}
