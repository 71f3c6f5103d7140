package services

import (
	"context"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// HourlyWeatherService handles hour-of-day forecasts
type HourlyWeatherService struct {
	repo    repository.LocationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewHourlyWeatherService creates a new hourly weather service
func NewHourlyWeatherService(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *HourlyWeatherService {
	return &HourlyWeatherService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// GetByCode lists the hourly forecast of a location from currentHour on
func (s *HourlyWeatherService) GetByCode(ctx context.Context, locationCode string, currentHour int) ([]models.HourlyWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	hourly, err := s.repo.ListHourly(ctx, location.Code, currentHour)
	if err != nil {
		return nil, nil, err
	}

	return hourly, location, nil
}

// GetByLocation lists the hourly forecast for a geolocation guess
func (s *HourlyWeatherService) GetByLocation(ctx context.Context, guess *models.Location, currentHour int) ([]models.HourlyWeather, *models.Location, error) {
	location, err := s.repo.FindByCountryCodeAndCityName(ctx, guess.CountryCode, guess.CityName)
	if err != nil {
		return nil, nil, err
	}

	hourly, err := s.repo.ListHourly(ctx, location.Code, currentHour)
	if err != nil {
		return nil, nil, err
	}

	return hourly, location, nil
}

// Update reconciles the location's hourly collection against incoming:
// rows absent from incoming are removed, the rest are upserted by hour.
func (s *HourlyWeatherService) Update(ctx context.Context, locationCode string, incoming []models.HourlyWeather) ([]models.HourlyWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	for i := range incoming {
		incoming[i].LocationCode = location.Code
	}

	if err := s.repo.ReplaceHourly(ctx, location.Code, incoming); err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "[HOURLY_UPDATED] Hourly forecast reconciled", logging.Fields{
		"location_code": location.Code,
		"records":       len(incoming),
	})

	return incoming, location, nil
}
