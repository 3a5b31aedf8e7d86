package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"weatherproxy.app/internal/core/weather"
	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// WeatherQuery binds the /weather query string. Values stay as raw strings.
type WeatherQuery struct {
	Lat string `form:"lat" binding:"required"`
	Lon string `form:"lon" binding:"required"`
}

// WeatherResponse wraps the upstream payload untouched
type WeatherResponse struct {
	Data   json.RawMessage `json:"data"`
	Cached bool            `json:"cached"`
}

// getWeather handles GET /weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var query WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field())
			}
			s.logger.Debug("Rejected weather request", ports.F("missing", fields))
		}
		s.handleError(c, errors.NewValidationError(weather.MissingCoordinatesMessage))
		return
	}

	result, err := s.weatherUseCase.GetWeather(c.Request.Context(), weather.WeatherRequest{
		Latitude:  query.Lat,
		Longitude: query.Lon,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	// PureJSON leaves <, > and & in the upstream payload unescaped
	c.PureJSON(http.StatusOK, WeatherResponse{
		Data:   result.Data,
		Cached: result.Cached,
	})
}
