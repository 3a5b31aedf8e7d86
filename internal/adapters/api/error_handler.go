package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherproxy.app/internal/ports"
	errorspkg "weatherproxy.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError maps validation failures to 400 and everything else to 500.
// Server-side failures are logged in full; the client only sees the message.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		s.logger.Error("Request failed",
			ports.F("path", c.Request.URL.Path),
			ports.F("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if appErr.Type == errorspkg.ValidationError {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
		return
	}

	s.logger.Error("Request failed",
		ports.F("path", c.Request.URL.Path),
		ports.F("error_type", appErr.Type.String()),
		ports.F("error", err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: appErr.Detail()})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsReporter.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
