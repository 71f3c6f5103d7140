package services

import (
	"context"
	"errors"
	"time"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// FullWeatherService handles the composite aggregate: a location's realtime
// record plus its hourly and daily collections, read and written as one unit.
type FullWeatherService struct {
	repo    repository.LocationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewFullWeatherService creates a new full weather service
func NewFullWeatherService(repo repository.LocationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *FullWeatherService {
	return &FullWeatherService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// GetByCode assembles the full aggregate of a location
func (s *FullWeatherService) GetByCode(ctx context.Context, locationCode string) (*models.FullWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	full, err := s.assemble(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	return full, location, nil
}

// GetByLocation assembles the full aggregate for a geolocation guess
func (s *FullWeatherService) GetByLocation(ctx context.Context, guess *models.Location) (*models.FullWeather, *models.Location, error) {
	location, err := s.repo.FindByCountryCodeAndCityName(ctx, guess.CountryCode, guess.CityName)
	if err != nil {
		return nil, nil, err
	}

	full, err := s.assemble(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	return full, location, nil
}

// Update reconciles the whole aggregate against the incoming payload. The
// target location comes from the endpoint path only; every sub-record is
// stamped with the resolved location's code and the realtime timestamp is
// server-assigned. All changes commit in one transaction.
func (s *FullWeatherService) Update(ctx context.Context, locationCode string, incoming *models.FullWeather) (*models.FullWeather, *models.Location, error) {
	location, err := s.repo.FindByCode(ctx, locationCode)
	if err != nil {
		return nil, nil, err
	}

	incoming.Realtime.LocationCode = location.Code
	incoming.Realtime.LastUpdated = time.Now().UTC()

	for i := range incoming.HourlyForecast {
		incoming.HourlyForecast[i].LocationCode = location.Code
	}

	for i := range incoming.DailyForecast {
		incoming.DailyForecast[i].LocationCode = location.Code
	}

	if err := s.repo.SaveFullWeather(ctx, location.Code, incoming); err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "[FULL_UPDATED] Full weather aggregate saved", logging.Fields{
		"location_code": location.Code,
		"hourly":        len(incoming.HourlyForecast),
		"daily":         len(incoming.DailyForecast),
	})

	full, err := s.assemble(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	return full, location, nil
}

func (s *FullWeatherService) assemble(ctx context.Context, location *models.Location) (*models.FullWeather, error) {
	full := &models.FullWeather{
		Location: location.String(),
	}

	realtime, err := s.repo.FindRealtime(ctx, location.Code)
	switch {
	case err == nil:
		full.Realtime = *realtime
	case errors.Is(err, repository.ErrLocationNotFound):
		// no realtime record yet; the aggregate renders a zero one
	default:
		return nil, err
	}

	hourly, err := s.repo.ListHourly(ctx, location.Code, 0)
	if err != nil {
		return nil, err
	}
	full.HourlyForecast = hourly

	daily, err := s.repo.ListDaily(ctx, location.Code)
	if err != nil {
		return nil, err
	}
	full.DailyForecast = daily

	return full, nil
}
