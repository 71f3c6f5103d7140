package handlers

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"weather-api/internal/models"
	"weather-api/internal/services"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// Geolocator resolves a caller IP address to a location guess
type Geolocator interface {
	Locate(ctx context.Context, ipAddress string) (*models.Location, error)
}

// WeatherHandler handles the weather data endpoints
type WeatherHandler struct {
	baseHandler
	realtimeService *services.RealtimeWeatherService
	hourlyService   *services.HourlyWeatherService
	dailyService    *services.DailyWeatherService
	fullService     *services.FullWeatherService
	geolocator      Geolocator
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(
	realtimeService *services.RealtimeWeatherService,
	hourlyService *services.HourlyWeatherService,
	dailyService *services.DailyWeatherService,
	fullService *services.FullWeatherService,
	geolocator Geolocator,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *WeatherHandler {
	return &WeatherHandler{
		baseHandler:     baseHandler{logger: logger, metrics: metricsCollector},
		realtimeService: realtimeService,
		hourlyService:   hourlyService,
		dailyService:    dailyService,
		fullService:     fullService,
		geolocator:      geolocator,
	}
}

// RealtimeResponse is the realtime weather representation
type RealtimeResponse struct {
	Location string `json:"location"`
	models.RealtimeWeather
	Links Links `json:"_links"`
}

// HourlyResponse is the hourly forecast representation
type HourlyResponse struct {
	Location       string                 `json:"location"`
	HourlyForecast []models.HourlyWeather `json:"hourly_forecast"`
	Links          Links                  `json:"_links"`
}

// DailyResponse is the daily forecast representation
type DailyResponse struct {
	Location      string                `json:"location"`
	DailyForecast []models.DailyWeather `json:"daily_forecast"`
	Links         Links                 `json:"_links"`
}

// FullResponse is the composite aggregate representation
type FullResponse struct {
	models.FullWeather
	Links Links `json:"_links"`
}

// clientIP extracts the caller address: the first X-Forwarded-For entry when
// the request came through a proxy, the socket peer address otherwise.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// currentHour reads the mandatory X-Current-Hour header of hourly requests
func currentHour(r *http.Request) (int, error) {
	return strconv.Atoi(r.Header.Get("X-Current-Hour"))
}

// locate resolves the caller address for the by-IP endpoint variants
func (h *WeatherHandler) locate(w http.ResponseWriter, r *http.Request) (*models.Location, bool) {
	guess, err := h.geolocator.Locate(r.Context(), clientIP(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return nil, false
	}
	return guess, true
}

// GetRealtimeByIP handles GET /v1/realtime
func (h *WeatherHandler) GetRealtimeByIP(w http.ResponseWriter, r *http.Request) {
	guess, ok := h.locate(w, r)
	if !ok {
		return
	}

	weather, location, err := h.realtimeService.GetByLocation(r.Context(), guess)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendRealtime(w, r, weather, location, http.StatusOK)
}

// GetRealtimeByCode handles GET /v1/realtime/{code}
func (h *WeatherHandler) GetRealtimeByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	weather, location, err := h.realtimeService.GetByCode(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendRealtime(w, r, weather, location, http.StatusOK)
}

// UpdateRealtime handles PUT /v1/realtime/{code}
func (h *WeatherHandler) UpdateRealtime(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/v1/realtime/{code}").Observe(duration.Seconds())
	}()

	var weather models.RealtimeWeather
	if !h.decodeJSON(w, r, &weather) {
		return
	}

	if err := models.Validate(&weather); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	updated, location, err := h.realtimeService.Update(r.Context(), code, &weather)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendRealtime(w, r, updated, location, http.StatusOK)
}

func (h *WeatherHandler) sendRealtime(w http.ResponseWriter, r *http.Request, weather *models.RealtimeWeather, location *models.Location, status int) {
	h.sendJSON(w, r, RealtimeResponse{
		Location:        location.String(),
		RealtimeWeather: *weather,
		Links:           weatherLinks("realtime_weather", location.Code),
	}, status)
}

// GetHourlyByIP handles GET /v1/hourly
func (h *WeatherHandler) GetHourlyByIP(w http.ResponseWriter, r *http.Request) {
	hour, err := currentHour(r)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "invalid or missing X-Current-Hour header")
		return
	}

	guess, ok := h.locate(w, r)
	if !ok {
		return
	}

	hourly, location, err := h.hourlyService.GetByLocation(r.Context(), guess, hour)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendHourly(w, r, hourly, location)
}

// GetHourlyByCode handles GET /v1/hourly/{code}
func (h *WeatherHandler) GetHourlyByCode(w http.ResponseWriter, r *http.Request) {
	hour, err := currentHour(r)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "invalid or missing X-Current-Hour header")
		return
	}

	code := mux.Vars(r)["code"]

	hourly, location, err := h.hourlyService.GetByCode(r.Context(), code, hour)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendHourly(w, r, hourly, location)
}

// UpdateHourly handles PUT /v1/hourly/{code}
func (h *WeatherHandler) UpdateHourly(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var incoming []models.HourlyWeather
	if !h.decodeJSON(w, r, &incoming) {
		return
	}

	if len(incoming) == 0 {
		h.sendError(w, r, http.StatusBadRequest, "hourly forecast data cannot be empty")
		return
	}

	if !h.validateAll(w, r, hourlyValidatable(incoming)) {
		return
	}

	updated, location, err := h.hourlyService.Update(r.Context(), code, incoming)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, r, HourlyResponse{
		Location:       location.String(),
		HourlyForecast: updated,
		Links:          weatherLinks("hourly_forecast", location.Code),
	}, http.StatusOK)
}

func (h *WeatherHandler) sendHourly(w http.ResponseWriter, r *http.Request, hourly []models.HourlyWeather, location *models.Location) {
	if len(hourly) == 0 {
		h.sendJSON(w, r, nil, http.StatusNoContent)
		return
	}

	h.sendJSON(w, r, HourlyResponse{
		Location:       location.String(),
		HourlyForecast: hourly,
		Links:          weatherLinks("hourly_forecast", location.Code),
	}, http.StatusOK)
}

// GetDailyByIP handles GET /v1/daily
func (h *WeatherHandler) GetDailyByIP(w http.ResponseWriter, r *http.Request) {
	guess, ok := h.locate(w, r)
	if !ok {
		return
	}

	daily, location, err := h.dailyService.GetByLocation(r.Context(), guess)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendDaily(w, r, daily, location)
}

// GetDailyByCode handles GET /v1/daily/{code}
func (h *WeatherHandler) GetDailyByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	daily, location, err := h.dailyService.GetByCode(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendDaily(w, r, daily, location)
}

// UpdateDaily handles PUT /v1/daily/{code}
func (h *WeatherHandler) UpdateDaily(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var incoming []models.DailyWeather
	if !h.decodeJSON(w, r, &incoming) {
		return
	}

	if len(incoming) == 0 {
		h.sendError(w, r, http.StatusBadRequest, "daily forecast data cannot be empty")
		return
	}

	if !h.validateAll(w, r, dailyValidatable(incoming)) {
		return
	}

	updated, location, err := h.dailyService.Update(r.Context(), code, incoming)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, r, DailyResponse{
		Location:      location.String(),
		DailyForecast: updated,
		Links:         weatherLinks("daily_forecast", location.Code),
	}, http.StatusOK)
}

func (h *WeatherHandler) sendDaily(w http.ResponseWriter, r *http.Request, daily []models.DailyWeather, location *models.Location) {
	if len(daily) == 0 {
		h.sendJSON(w, r, nil, http.StatusNoContent)
		return
	}

	h.sendJSON(w, r, DailyResponse{
		Location:      location.String(),
		DailyForecast: daily,
		Links:         weatherLinks("daily_forecast", location.Code),
	}, http.StatusOK)
}

// GetFullByIP handles GET /v1/full
func (h *WeatherHandler) GetFullByIP(w http.ResponseWriter, r *http.Request) {
	guess, ok := h.locate(w, r)
	if !ok {
		return
	}

	full, location, err := h.fullService.GetByLocation(r.Context(), guess)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendFull(w, r, full, location)
}

// GetFullByCode handles GET /v1/full/{code}
func (h *WeatherHandler) GetFullByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	full, location, err := h.fullService.GetByCode(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendFull(w, r, full, location)
}

// UpdateFull handles PUT /v1/full/{code}
func (h *WeatherHandler) UpdateFull(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/v1/full/{code}").Observe(duration.Seconds())
	}()

	var incoming models.FullWeather
	if !h.decodeJSON(w, r, &incoming) {
		return
	}

	if len(incoming.HourlyForecast) == 0 {
		h.sendError(w, r, http.StatusBadRequest, "hourly forecast data cannot be empty")
		return
	}

	if len(incoming.DailyForecast) == 0 {
		h.sendError(w, r, http.StatusBadRequest, "daily forecast data cannot be empty")
		return
	}

	if err := models.Validate(&incoming); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	full, location, err := h.fullService.Update(r.Context(), code, &incoming)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendFull(w, r, full, location)
}

func (h *WeatherHandler) sendFull(w http.ResponseWriter, r *http.Request, full *models.FullWeather, location *models.Location) {
	h.sendJSON(w, r, FullResponse{
		FullWeather: *full,
		Links:       weatherLinks("full_forecast", location.Code),
	}, http.StatusOK)
}

// validateAll checks every element of a weather list, aggregating the
// violations of all rows into one response.
func (h *WeatherHandler) validateAll(w http.ResponseWriter, r *http.Request, items []interface{}) bool {
	var messages []string

	for _, item := range items {
		if err := models.Validate(item); err != nil {
			if verr, ok := err.(*models.ValidationError); ok {
				messages = append(messages, verr.Messages...)
			} else {
				h.handleServiceError(w, r, err)
				return false
			}
		}
	}

	if len(messages) > 0 {
		h.sendError(w, r, http.StatusBadRequest, messages...)
		return false
	}

	return true
}

func hourlyValidatable(items []models.HourlyWeather) []interface{} {
	out := make([]interface{}, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

func dailyValidatable(items []models.DailyWeather) []interface{} {
	out := make([]interface{}, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// RegisterRoutes registers the weather data routes
func (h *WeatherHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/realtime", h.GetRealtimeByIP).Methods("GET")
	router.HandleFunc("/v1/realtime/{code}", h.GetRealtimeByCode).Methods("GET")
	router.HandleFunc("/v1/realtime/{code}", h.UpdateRealtime).Methods("PUT")

	router.HandleFunc("/v1/hourly", h.GetHourlyByIP).Methods("GET")
	router.HandleFunc("/v1/hourly/{code}", h.GetHourlyByCode).Methods("GET")
	router.HandleFunc("/v1/hourly/{code}", h.UpdateHourly).Methods("PUT")

	router.HandleFunc("/v1/daily", h.GetDailyByIP).Methods("GET")
	router.HandleFunc("/v1/daily/{code}", h.GetDailyByCode).Methods("GET")
	router.HandleFunc("/v1/daily/{code}", h.UpdateDaily).Methods("PUT")

	router.HandleFunc("/v1/full", h.GetFullByIP).Methods("GET")
	router.HandleFunc("/v1/full/{code}", h.GetFullByCode).Methods("GET")
	router.HandleFunc("/v1/full/{code}", h.UpdateFull).Methods("PUT")
}
