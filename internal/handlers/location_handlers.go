package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/internal/services"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

const (
	defaultPageSize = 5
	maxPageSize     = 20
	defaultSort     = "code"
)

// LocationHandler handles the location management endpoints
type LocationHandler struct {
	baseHandler
	service *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service *services.LocationService, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *LocationHandler {
	return &LocationHandler{
		baseHandler: baseHandler{logger: logger, metrics: metricsCollector},
		service:     service,
	}
}

// PageMetadata describes the position of a page within its collection
type PageMetadata struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// LocationListItem is one location in a collection response
type LocationListItem struct {
	models.Location
	Links Links `json:"_links"`
}

// LocationCollection is the paged listing response
type LocationCollection struct {
	Locations []LocationListItem `json:"locations"`
	Page      PageMetadata       `json:"page"`
	Links     Links              `json:"_links"`
}

// ListLocations handles GET /v1/locations
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/v1/locations").Observe(duration.Seconds())
	}()

	query := r.URL.Query()

	pageNum := 1
	if raw := query.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			h.sendError(w, r, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		pageNum = p
	}

	size := defaultPageSize
	if raw := query.Get("size"); raw != "" {
		s, err := strconv.Atoi(raw)
		if err != nil || s < defaultPageSize || s > maxPageSize {
			h.sendError(w, r, http.StatusBadRequest,
				"size must be an integer between 5 and 20")
			return
		}
		size = s
	}

	sortOption := query.Get("sort")
	if sortOption == "" {
		sortOption = defaultSort
	}
	sortFields, err := repository.ParseSortOption(sortOption)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := repository.BuildLocationFilter(
		query.Get("enabled"),
		query.Get("region_name"),
		query.Get("country_code"),
	)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.List(ctx, repository.ListOptions{
		PageNum:  pageNum,
		PageSize: size,
		Sort:     sortFields,
		Filter:   filter,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if len(page.Items) == 0 {
		h.sendJSON(w, r, nil, http.StatusNoContent)
		return
	}

	items := make([]LocationListItem, 0, len(page.Items))
	for _, location := range page.Items {
		items = append(items, LocationListItem{
			Location: location,
			Links:    locationLinks(location.Code),
		})
	}

	filters := url.Values{}
	for _, key := range []string{"enabled", "region_name", "country_code"} {
		if v := query.Get(key); v != "" {
			filters.Set(key, v)
		}
	}

	response := LocationCollection{
		Locations: items,
		Page: PageMetadata{
			Size:          page.Size,
			Number:        page.Number + 1,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
		},
		Links: collectionLinks("/v1/locations", pageNum, size, page.TotalPages, sortOption, filters),
	}

	h.sendJSON(w, r, response, http.StatusOK)
}

// GetLocation handles GET /v1/locations/{code}
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	location, err := h.service.Get(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, r, LocationListItem{
		Location: *location,
		Links:    locationLinks(location.Code),
	}, http.StatusOK)
}

// AddLocation handles POST /v1/locations
func (h *LocationHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if !h.decodeJSON(w, r, &location) {
		return
	}

	if err := models.Validate(&location); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.service.Add(r.Context(), &location); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/locations/"+location.Code)
	h.sendJSON(w, r, LocationListItem{
		Location: location,
		Links:    locationLinks(location.Code),
	}, http.StatusCreated)
}

// UpdateLocation handles PUT /v1/locations. The target is the code carried
// in the body; the code field itself is never rewritten.
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if !h.decodeJSON(w, r, &location) {
		return
	}

	if err := models.Validate(&location); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), &location)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, r, LocationListItem{
		Location: *updated,
		Links:    locationLinks(updated.Code),
	}, http.StatusOK)
}

// DeleteLocation handles DELETE /v1/locations/{code}
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.service.Delete(r.Context(), code); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, r, nil, http.StatusNoContent)
}

// RegisterRoutes registers the location management routes
func (h *LocationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/locations", h.ListLocations).Methods("GET")
	router.HandleFunc("/v1/locations", h.AddLocation).Methods("POST")
	router.HandleFunc("/v1/locations", h.UpdateLocation).Methods("PUT")
	router.HandleFunc("/v1/locations/{code}", h.GetLocation).Methods("GET")
	router.HandleFunc("/v1/locations/{code}", h.DeleteLocation).Methods("DELETE")
}
