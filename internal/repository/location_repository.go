package repository

import (
	"context"
	"errors"

	"weather-api/internal/models"
)

// ErrLocationNotFound is returned when a location lookup (by code or by
// country+city) finds no untrashed row.
var ErrLocationNotFound = errors.New("location not found")

// ErrDuplicateLocation is returned when a create collides with an existing code.
var ErrDuplicateLocation = errors.New("location code already exists")

// ListOptions carries the validated listing parameters: 1-based page number,
// page size, translated sort fields, and the equality filter.
type ListOptions struct {
	PageNum  int
	PageSize int
	Sort     []SortField
	Filter   LocationFilter
}

// LocationPage is one page of a filtered listing. Number is the zero-based
// page index; callers render it 1-based.
type LocationPage struct {
	Items         []models.Location
	Size          int
	Number        int
	TotalElements int64
	TotalPages    int
}

// LocationRepository provides data access for locations and their weather
// records.
type LocationRepository interface {
	// Location operations
	CreateLocation(ctx context.Context, location *models.Location) error
	FindByCode(ctx context.Context, code string) (*models.Location, error)
	FindByCountryCodeAndCityName(ctx context.Context, countryCode, cityName string) (*models.Location, error)
	UpdateLocation(ctx context.Context, location *models.Location) error
	TrashByCode(ctx context.Context, code string) error
	ListLocations(ctx context.Context, opts ListOptions) (*LocationPage, error)

	// Realtime weather operations
	FindRealtime(ctx context.Context, locationCode string) (*models.RealtimeWeather, error)
	SaveRealtime(ctx context.Context, weather *models.RealtimeWeather) error

	// Hourly weather operations
	ListHourly(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error)
	ReplaceHourly(ctx context.Context, locationCode string, incoming []models.HourlyWeather) error

	// Daily weather operations
	ListDaily(ctx context.Context, locationCode string) ([]models.DailyWeather, error)
	ReplaceDaily(ctx context.Context, locationCode string, incoming []models.DailyWeather) error

	// SaveFullWeather commits a full aggregate update (realtime upsert plus
	// diff-based hourly and daily replacement) in one transaction.
	SaveFullWeather(ctx context.Context, locationCode string, full *models.FullWeather) error

	// Utility operations
	HealthCheck(ctx context.Context) error
}
