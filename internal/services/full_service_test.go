package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather-api/internal/models"
	"weather-api/internal/repository"
)

func TestFullUpdateStampsEverySubRecord(t *testing.T) {
	var savedCode string
	var saved *models.FullWeather

	repo := &mockRepository{
		findByCode: func(ctx context.Context, code string) (*models.Location, error) {
			return storedLocation(), nil
		},
		saveFullWeather: func(ctx context.Context, locationCode string, full *models.FullWeather) error {
			savedCode = locationCode
			saved = full
			return nil
		},
		findRealtime: func(ctx context.Context, locationCode string) (*models.RealtimeWeather, error) {
			return &models.RealtimeWeather{LocationCode: locationCode, Status: "Cloudy"}, nil
		},
		listHourly: func(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error) {
			if fromHour != 0 {
				t.Errorf("aggregate read filtered hours from %d", fromHour)
			}
			return []models.HourlyWeather{{LocationCode: locationCode, HourOfDay: 9}}, nil
		},
		listDaily: func(ctx context.Context, locationCode string) ([]models.DailyWeather, error) {
			return []models.DailyWeather{{LocationCode: locationCode, DayOfMonth: 1, Month: 7}}, nil
		},
	}

	logger, collector := testDeps()
	service := NewFullWeatherService(repo, logger, collector)

	before := time.Now().UTC()

	incoming := &models.FullWeather{
		Location: "should be ignored",
		Realtime: models.RealtimeWeather{
			LocationCode: "SPOOFED",
			Status:       "Cloudy",
			LastUpdated:  time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		HourlyForecast: []models.HourlyWeather{
			{LocationCode: "SPOOFED", HourOfDay: 9, Status: "Sunny"},
			{HourOfDay: 10, Status: "Sunny"},
		},
		DailyForecast: []models.DailyWeather{
			{LocationCode: "SPOOFED", DayOfMonth: 1, Month: 7, Status: "Rainy"},
		},
	}

	full, location, err := service.Update(context.Background(), "NYC_USA", incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if savedCode != "NYC_USA" {
		t.Errorf("saved against code %q", savedCode)
	}

	if saved.Realtime.LocationCode != "NYC_USA" {
		t.Errorf("realtime code = %q", saved.Realtime.LocationCode)
	}
	if saved.Realtime.LastUpdated.Before(before) {
		t.Errorf("last updated %v was not re-stamped", saved.Realtime.LastUpdated)
	}

	for i, h := range saved.HourlyForecast {
		if h.LocationCode != "NYC_USA" {
			t.Errorf("hourly[%d] code = %q", i, h.LocationCode)
		}
	}
	for i, d := range saved.DailyForecast {
		if d.LocationCode != "NYC_USA" {
			t.Errorf("daily[%d] code = %q", i, d.LocationCode)
		}
	}

	if full.Location != "New York City, New York, United States of America" {
		t.Errorf("display location = %q", full.Location)
	}
	if location.Code != "NYC_USA" {
		t.Errorf("resolved location = %+v", location)
	}
}

func TestFullGetToleratesMissingRealtime(t *testing.T) {
	repo := &mockRepository{
		findByCode: func(ctx context.Context, code string) (*models.Location, error) {
			return storedLocation(), nil
		},
		findRealtime: func(ctx context.Context, locationCode string) (*models.RealtimeWeather, error) {
			return nil, repository.ErrLocationNotFound
		},
		listHourly: func(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error) {
			return []models.HourlyWeather{{HourOfDay: 8}}, nil
		},
		listDaily: func(ctx context.Context, locationCode string) ([]models.DailyWeather, error) {
			return nil, nil
		},
	}

	logger, collector := testDeps()
	service := NewFullWeatherService(repo, logger, collector)

	full, _, err := service.GetByCode(context.Background(), "NYC_USA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if full.Realtime.Status != "" {
		t.Errorf("expected zero realtime record, got %+v", full.Realtime)
	}
	if len(full.HourlyForecast) != 1 {
		t.Errorf("hourly forecast = %+v", full.HourlyForecast)
	}
}

func TestFullGetUnknownLocation(t *testing.T) {
	logger, collector := testDeps()
	service := NewFullWeatherService(&mockRepository{}, logger, collector)

	_, _, err := service.GetByCode(context.Background(), "MISSING")
	if !errors.Is(err, repository.ErrLocationNotFound) {
		t.Errorf("error = %v, want ErrLocationNotFound", err)
	}
}
