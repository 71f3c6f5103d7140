package services

import (
	"context"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// DailyWeatherService handles day-of-year forecasts
type DailyWeatherService struct {
	repo    repository.LocationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewDailyWeatherService creates a new daily weather service
func NewDailyWeatherService(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *DailyWeatherService {
	return &DailyWeatherService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// GetByCode lists the daily forecast of a location
func (s *DailyWeatherService) GetByCode(ctx context.Context, locationCode string) ([]models.DailyWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	daily, err := s.repo.ListDaily(ctx, location.Code)
	if err != nil {
		return nil, nil, err
	}

	return daily, location, nil
}

// GetByLocation lists the daily forecast for a geolocation guess
func (s *DailyWeatherService) GetByLocation(ctx context.Context, guess *models.Location) ([]models.DailyWeather, *models.Location, error) {
	location, err := s.repo.FindByCountryCodeAndCityName(ctx, guess.CountryCode, guess.CityName)
	if err != nil {
		return nil, nil, err
	}

	daily, err := s.repo.ListDaily(ctx, location.Code)
	if err != nil {
		return nil, nil, err
	}

	return daily, location, nil
}

// Update reconciles the location's daily collection against incoming: rows
// whose (day, month) key is absent from incoming are removed, the rest are
// upserted by key.
func (s *DailyWeatherService) Update(ctx context.Context, locationCode string, incoming []models.DailyWeather) ([]models.DailyWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	for i := range incoming {
		incoming[i].LocationCode = location.Code
	}

	if err := s.repo.ReplaceDaily(ctx, location.Code, incoming); err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "[DAILY_UPDATED] Daily forecast reconciled", logging.Fields{
		"location_code": location.Code,
		"records":       len(incoming),
	})

	return incoming, location, nil
}
