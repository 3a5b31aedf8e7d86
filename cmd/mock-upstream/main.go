// Command mock-upstream serves a minimal Open-Meteo compatible forecast
// endpoint for running the proxy locally without network access. Point
// OPEN_METEO_BASE_URL at it.
package main

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
)

type mockConfig struct {
	Port    int `envconfig:"MOCK_UPSTREAM_PORT" default:"8080"`
	DelayMs int `envconfig:"MOCK_UPSTREAM_DELAY_MS" default:"0"`
}

type currentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

type forecastResponse struct {
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	CurrentWeather currentWeather `json:"current_weather"`
}

func main() {
	var cfg mockConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(time.Duration(cfg.DelayMs)*time.Millisecond, time.Now)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Mock upstream starting", "addr", addr, "delay_ms", cfg.DelayMs)
	if err := r.Run(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func newRouter(delay time.Duration, now func() time.Time) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/forecast", func(c *gin.Context) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request.Context().Done():
				return
			}
		}

		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			openMeteoError(c, "Cannot initialize Float from invalid String value for key latitude")
			return
		}
		lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			openMeteoError(c, "Cannot initialize Float from invalid String value for key longitude")
			return
		}
		if lat < -90 || lat > 90 {
			openMeteoError(c, "Latitude must be in range of -90 to 90°. Given: "+c.Query("latitude")+".")
			return
		}
		if lon < -180 || lon > 180 {
			openMeteoError(c, "Longitude must be in range of -180 to 180°. Given: "+c.Query("longitude")+".")
			return
		}

		c.JSON(http.StatusOK, forecastResponse{
			Latitude:       lat,
			Longitude:      lon,
			CurrentWeather: syntheticWeather(lat, lon, now()),
		})
	})

	return r
}

func openMeteoError(c *gin.Context, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": true, "reason": reason})
}

// syntheticWeather is deterministic for a coordinate pair and hour
func syntheticWeather(lat, lon float64, at time.Time) currentWeather {
	hour := at.UTC().Truncate(time.Hour)
	temp := 30 - math.Abs(lat)*0.5 + 5*math.Sin(float64(hour.Hour())/24*2*math.Pi)

	return currentWeather{
		Temperature:   math.Round(temp*10) / 10,
		WindSpeed:     math.Round(math.Mod(math.Abs(lon), 40)*10) / 10,
		WindDirection: math.Mod(math.Abs(lat+lon)*10, 360),
		WeatherCode:   int(math.Abs(lat)) % 4,
		Time:          hour.Format("2006-01-02T15:04"),
	}
}
