package services

import (
	"context"
	"time"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// RealtimeWeatherService handles the singleton current-conditions record
type RealtimeWeatherService struct {
	repo    repository.LocationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewRealtimeWeatherService creates a new realtime weather service
func NewRealtimeWeatherService(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *RealtimeWeatherService {
	return &RealtimeWeatherService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// GetByCode retrieves realtime weather for a location code, along with the
// resolved location for display
func (s *RealtimeWeatherService) GetByCode(ctx context.Context, locationCode string) (*models.RealtimeWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	weather, err := s.repo.FindRealtime(ctx, location.Code)
	if err != nil {
		return nil, nil, err
	}

	return weather, location, nil
}

// GetByLocation retrieves realtime weather for a geolocation guess,
// matching it against the store by country code and city name
func (s *RealtimeWeatherService) GetByLocation(ctx context.Context, guess *models.Location) (*models.RealtimeWeather, *models.Location, error) {
	location, err := s.repo.FindByCountryCodeAndCityName(ctx, guess.CountryCode, guess.CityName)
	if err != nil {
		return nil, nil, err
	}

	weather, err := s.repo.FindRealtime(ctx, location.Code)
	if err != nil {
		return nil, nil, err
	}

	return weather, location, nil
}

// Update overwrites the realtime record of an existing location, creating
// it if the location has none yet. last_updated is server-assigned.
func (s *RealtimeWeatherService) Update(ctx context.Context, locationCode string, weather *models.RealtimeWeather) (*models.RealtimeWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	weather.LocationCode = location.Code
	weather.LastUpdated = time.Now().UTC()

	if err := s.repo.SaveRealtime(ctx, weather); err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "[REALTIME_UPDATED] Realtime weather saved", logging.Fields{
		"location_code": location.Code,
	})

	return weather, location, nil
}
