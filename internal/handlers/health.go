package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// HealthHandler reports service liveness and store reachability
type HealthHandler struct {
	baseHandler
	repo repository.LocationRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *HealthHandler {
	return &HealthHandler{
		baseHandler: baseHandler{logger: logger, metrics: metricsCollector},
		repo:        repo,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}
	code := http.StatusOK

	if err := h.repo.HealthCheck(r.Context()); err != nil {
		status["status"] = "unhealthy"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	} else {
		status["database"] = "ok"
	}

	h.sendJSON(w, r, status, code)
}

// RegisterRoutes registers the health and entry-point routes
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/", APIIndex).Methods("GET")
}
