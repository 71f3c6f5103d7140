package handlers

import (
	"encoding/json"
	"net/http"
)

// APIIndex returns the entry-point document listing every endpoint group.
// Clients are expected to start here and follow the URLs instead of
// hard-coding paths.
func APIIndex(w http.ResponseWriter, r *http.Request) {
	index := map[string]string{
		"locations_url":                "/v1/locations",
		"location_by_code_url":         "/v1/locations/{code}",
		"realtime_weather_by_ip_url":   "/v1/realtime",
		"realtime_weather_by_code_url": "/v1/realtime/{code}",
		"hourly_forecast_by_ip_url":    "/v1/hourly",
		"hourly_forecast_by_code_url":  "/v1/hourly/{code}",
		"daily_forecast_by_ip_url":     "/v1/daily",
		"daily_forecast_by_code_url":   "/v1/daily/{code}",
		"full_weather_by_ip_url":       "/v1/full",
		"full_weather_by_code_url":     "/v1/full/{code}",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(index)
}
