package services

import (
	"context"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// LocationService handles location management operations
type LocationService struct {
	repo    repository.LocationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewLocationService creates a new location service
func NewLocationService(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *LocationService {
	return &LocationService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Add persists a new location
func (s *LocationService) Add(ctx context.Context, location *models.Location) error {
	if err := s.repo.CreateLocation(ctx, location); err != nil {
		return err
	}

	s.logger.Info(ctx, "[LOCATION_ADDED] Location created", logging.Fields{
		"code": location.Code,
	})

	return nil
}

// Get retrieves a location by code
func (s *LocationService) Get(ctx context.Context, code string) (*models.Location, error) {
	return s.repo.FindByCode(ctx, code)
}

// List executes the filtered, sorted, paged listing
func (s *LocationService) List(ctx context.Context, opts repository.ListOptions) (*repository.LocationPage, error) {
	return s.repo.ListLocations(ctx, opts)
}

// Update copies the incoming representation onto the persisted location,
// keyed by code. The code itself is never replaced.
func (s *LocationService) Update(ctx context.Context, incoming *models.Location) (*models.Location, error) {
	persisted, err := s.repo.FindByCode(ctx, incoming.Code)
	if err != nil {
		return nil, err
	}

	persisted.CopyFieldsFrom(incoming)

	if err := s.repo.UpdateLocation(ctx, persisted); err != nil {
		return nil, err
	}

	return persisted, nil
}

// Delete soft-deletes a location by code
func (s *LocationService) Delete(ctx context.Context, code string) error {
	if err := s.repo.TrashByCode(ctx, code); err != nil {
		return err
	}

	s.logger.Info(ctx, "[LOCATION_TRASHED] Location soft-deleted", logging.Fields{
		"code": code,
	})

	return nil
}
