package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather-api/internal/models"
	"weather-api/internal/repository"
)

func TestRealtimeUpdateStampsCodeAndTimestamp(t *testing.T) {
	var saved *models.RealtimeWeather

	repo := &mockRepository{
		findByCode: func(ctx context.Context, code string) (*models.Location, error) {
			return storedLocation(), nil
		},
		saveRealtime: func(ctx context.Context, weather *models.RealtimeWeather) error {
			saved = weather
			return nil
		},
	}

	logger, collector := testDeps()
	service := NewRealtimeWeatherService(repo, logger, collector)

	before := time.Now().UTC()

	incoming := &models.RealtimeWeather{
		LocationCode:  "SPOOFED",
		Temperature:   12,
		Humidity:      60,
		Precipitation: 40,
		WindSpeed:     10,
		Status:        "Cloudy",
		LastUpdated:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	updated, location, err := service.Update(context.Background(), "NYC_USA", incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("repository save was not called")
	}

	if updated.LocationCode != "NYC_USA" {
		t.Errorf("location code = %q, want NYC_USA", updated.LocationCode)
	}
	if updated.LastUpdated.Before(before) {
		t.Errorf("last updated %v was not re-stamped", updated.LastUpdated)
	}
	if location.Code != "NYC_USA" {
		t.Errorf("resolved location = %+v", location)
	}
}

func TestRealtimeUpdateUnknownLocation(t *testing.T) {
	logger, collector := testDeps()
	service := NewRealtimeWeatherService(&mockRepository{}, logger, collector)

	_, _, err := service.Update(context.Background(), "MISSING", &models.RealtimeWeather{})
	if !errors.Is(err, repository.ErrLocationNotFound) {
		t.Errorf("error = %v, want ErrLocationNotFound", err)
	}
}

func TestRealtimeGetByLocationMatchesCountryAndCity(t *testing.T) {
	repo := &mockRepository{
		findByCountryCodeAndCityName: func(ctx context.Context, countryCode, cityName string) (*models.Location, error) {
			if countryCode != "US" || cityName != "New York City" {
				t.Errorf("matched by (%q, %q)", countryCode, cityName)
			}
			return storedLocation(), nil
		},
		findRealtime: func(ctx context.Context, locationCode string) (*models.RealtimeWeather, error) {
			return &models.RealtimeWeather{LocationCode: locationCode, Status: "Sunny"}, nil
		},
	}

	logger, collector := testDeps()
	service := NewRealtimeWeatherService(repo, logger, collector)

	guess := &models.Location{CountryCode: "US", CityName: "New York City"}

	weather, location, err := service.GetByLocation(context.Background(), guess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if weather.Status != "Sunny" {
		t.Errorf("weather = %+v", weather)
	}
	if location.Code != "NYC_USA" {
		t.Errorf("location = %+v", location)
	}
}
