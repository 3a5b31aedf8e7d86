package weather

import (
	"encoding/json"
	"time"

	"weatherproxy.app/internal/ports"
)

// MissingCoordinatesMessage is returned to clients that omit lat or lon
const MissingCoordinatesMessage = "Provide lat and lon query params"

// cacheKeySeparator joins the raw coordinate strings into a cache key
const cacheKeySeparator = ","

// WeatherRequest carries the raw, unvalidated coordinate strings of a request
type WeatherRequest struct {
	Latitude  string
	Longitude string
}

// IsValid only checks presence. Coordinates are passed upstream as typed.
func (wr WeatherRequest) IsValid() error {
	if wr.Latitude == "" || wr.Longitude == "" {
		return errMissingCoordinates
	}
	return nil
}

// CacheKey derives the cache key from the raw strings, so "1" and "1.0" are
// different keys.
func (wr WeatherRequest) CacheKey() string {
	return wr.Latitude + cacheKeySeparator + wr.Longitude
}

// Coordinates converts the request to the provider port type
func (wr WeatherRequest) Coordinates() ports.Coordinates {
	return ports.Coordinates{
		Latitude:  wr.Latitude,
		Longitude: wr.Longitude,
	}
}

// WeatherResult is the upstream payload plus whether it was served from cache
type WeatherResult struct {
	Data   json.RawMessage
	Cached bool
	// Age is zero for fresh fetches
	Age time.Duration
}
