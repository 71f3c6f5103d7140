package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"weather-api/internal/models"
	"weather-api/internal/repository"
	"weather-api/internal/services"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// mockRepository implements repository.LocationRepository with overridable
// function fields. Unset operations report a missing location.
type mockRepository struct {
	createLocation               func(ctx context.Context, location *models.Location) error
	findByCode                   func(ctx context.Context, code string) (*models.Location, error)
	findByCountryCodeAndCityName func(ctx context.Context, countryCode, cityName string) (*models.Location, error)
	updateLocation               func(ctx context.Context, location *models.Location) error
	trashByCode                  func(ctx context.Context, code string) error
	listLocations                func(ctx context.Context, opts repository.ListOptions) (*repository.LocationPage, error)
	findRealtime                 func(ctx context.Context, locationCode string) (*models.RealtimeWeather, error)
	saveRealtime                 func(ctx context.Context, weather *models.RealtimeWeather) error
	listHourly                   func(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error)
	replaceHourly                func(ctx context.Context, locationCode string, incoming []models.HourlyWeather) error
	listDaily                    func(ctx context.Context, locationCode string) ([]models.DailyWeather, error)
	replaceDaily                 func(ctx context.Context, locationCode string, incoming []models.DailyWeather) error
	saveFullWeather              func(ctx context.Context, locationCode string, full *models.FullWeather) error
}

func (m *mockRepository) CreateLocation(ctx context.Context, location *models.Location) error {
	if m.createLocation == nil {
		return nil
	}
	return m.createLocation(ctx, location)
}

func (m *mockRepository) FindByCode(ctx context.Context, code string) (*models.Location, error) {
	if m.findByCode == nil {
		return nil, repository.ErrLocationNotFound
	}
	return m.findByCode(ctx, code)
}

func (m *mockRepository) FindByCountryCodeAndCityName(ctx context.Context, countryCode, cityName string) (*models.Location, error) {
	if m.findByCountryCodeAndCityName == nil {
		return nil, repository.ErrLocationNotFound
	}
	return m.findByCountryCodeAndCityName(ctx, countryCode, cityName)
}

func (m *mockRepository) UpdateLocation(ctx context.Context, location *models.Location) error {
	if m.updateLocation == nil {
		return nil
	}
	return m.updateLocation(ctx, location)
}

func (m *mockRepository) TrashByCode(ctx context.Context, code string) error {
	if m.trashByCode == nil {
		return nil
	}
	return m.trashByCode(ctx, code)
}

func (m *mockRepository) ListLocations(ctx context.Context, opts repository.ListOptions) (*repository.LocationPage, error) {
	if m.listLocations == nil {
		return &repository.LocationPage{}, nil
	}
	return m.listLocations(ctx, opts)
}

func (m *mockRepository) FindRealtime(ctx context.Context, locationCode string) (*models.RealtimeWeather, error) {
	if m.findRealtime == nil {
		return nil, repository.ErrLocationNotFound
	}
	return m.findRealtime(ctx, locationCode)
}

func (m *mockRepository) SaveRealtime(ctx context.Context, weather *models.RealtimeWeather) error {
	if m.saveRealtime == nil {
		return nil
	}
	return m.saveRealtime(ctx, weather)
}

func (m *mockRepository) ListHourly(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error) {
	if m.listHourly == nil {
		return nil, nil
	}
	return m.listHourly(ctx, locationCode, fromHour)
}

func (m *mockRepository) ReplaceHourly(ctx context.Context, locationCode string, incoming []models.HourlyWeather) error {
	if m.replaceHourly == nil {
		return nil
	}
	return m.replaceHourly(ctx, locationCode, incoming)
}

func (m *mockRepository) ListDaily(ctx context.Context, locationCode string) ([]models.DailyWeather, error) {
	if m.listDaily == nil {
		return nil, nil
	}
	return m.listDaily(ctx, locationCode)
}

func (m *mockRepository) ReplaceDaily(ctx context.Context, locationCode string, incoming []models.DailyWeather) error {
	if m.replaceDaily == nil {
		return nil
	}
	return m.replaceDaily(ctx, locationCode, incoming)
}

func (m *mockRepository) SaveFullWeather(ctx context.Context, locationCode string, full *models.FullWeather) error {
	if m.saveFullWeather == nil {
		return nil
	}
	return m.saveFullWeather(ctx, locationCode, full)
}

func (m *mockRepository) HealthCheck(ctx context.Context) error {
	return nil
}

// mockGeolocator resolves every address to a fixed guess
type mockGeolocator struct {
	locate func(ctx context.Context, ipAddress string) (*models.Location, error)
}

func (m *mockGeolocator) Locate(ctx context.Context, ipAddress string) (*models.Location, error) {
	return m.locate(ctx, ipAddress)
}

func newTestRouter(repo repository.LocationRepository, geo Geolocator) http.Handler {
	logger := logging.NewTestLogger(io.Discard)
	collector := metrics.NewTestCollector()

	locationService := services.NewLocationService(repo, logger, collector)
	realtimeService := services.NewRealtimeWeatherService(repo, logger, collector)
	hourlyService := services.NewHourlyWeatherService(repo, logger, collector)
	dailyService := services.NewDailyWeatherService(repo, logger, collector)
	fullService := services.NewFullWeatherService(repo, logger, collector)

	router := mux.NewRouter()
	NewLocationHandler(locationService, logger, collector).RegisterRoutes(router)
	NewWeatherHandler(realtimeService, hourlyService, dailyService, fullService, geo, logger, collector).RegisterRoutes(router)
	NewHealthHandler(repo, logger, collector).RegisterRoutes(router)

	return router
}

func testLocation() *models.Location {
	return &models.Location{
		Code:        "NYC_USA",
		CityName:    "New York City",
		RegionName:  "New York",
		CountryCode: "US",
		CountryName: "United States of America",
		Enabled:     true,
	}
}
