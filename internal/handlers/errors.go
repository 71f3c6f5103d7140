package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"weather-api/internal/geolocation"
	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Path      string    `json:"path"`
	Errors    []string  `json:"errors"`
}

// baseHandler carries the response plumbing shared by every handler
type baseHandler struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// sendJSON sends a JSON response
func (h *baseHandler) sendJSON(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// sendError sends an error response
func (h *baseHandler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, messages ...string) {
	response := ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    statusCode,
		Path:      r.URL.Path,
		Errors:    messages,
	}

	h.sendJSON(w, r, response, statusCode)
}

// handleServiceError translates errors surfaced by the service layer into
// HTTP responses. Anything unrecognized is a 500 with the detail kept out
// of the body.
func (h *baseHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var geoErr *geolocation.Error
	var validationErr *models.ValidationError

	switch {
	case errors.Is(err, repository.ErrLocationNotFound):
		h.metrics.RecordAPIError("not_found", r.URL.Path)
		h.sendError(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrDuplicateLocation):
		h.metrics.RecordAPIError("duplicate", r.URL.Path)
		h.sendError(w, r, http.StatusBadRequest, err.Error())

	case errors.As(err, &geoErr):
		h.metrics.RecordAPIError("geolocation", r.URL.Path)
		h.sendError(w, r, http.StatusBadRequest, geoErr.Message)

	case errors.As(err, &validationErr):
		h.metrics.RecordAPIError("validation", r.URL.Path)
		h.sendError(w, r, http.StatusBadRequest, validationErr.Messages...)

	default:
		h.metrics.RecordAPIError("internal_error", r.URL.Path)
		h.logger.Error(r.Context(), "[API_ERROR] Request failed", logging.Fields{
			"path":   r.URL.Path,
			"method": r.Method,
		}, err)
		h.sendError(w, r, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

// decodeJSON decodes the request body into dst, rejecting malformed payloads
func (h *baseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "malformed JSON request body")
		return false
	}
	return true
}
