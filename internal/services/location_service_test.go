package services

import (
	"context"
	"errors"
	"testing"

	"weather-api/internal/models"
	"weather-api/internal/repository"
)

func storedLocation() *models.Location {
	return &models.Location{
		Code:        "NYC_USA",
		CityName:    "New York City",
		RegionName:  "New York",
		CountryCode: "US",
		CountryName: "United States of America",
		Enabled:     true,
	}
}

func TestLocationServiceUpdateKeepsCode(t *testing.T) {
	var saved *models.Location

	repo := &mockRepository{
		findByCode: func(ctx context.Context, code string) (*models.Location, error) {
			if code != "NYC_USA" {
				t.Errorf("looked up code %q", code)
			}
			return storedLocation(), nil
		},
		updateLocation: func(ctx context.Context, location *models.Location) error {
			saved = location
			return nil
		},
	}

	logger, collector := testDeps()
	service := NewLocationService(repo, logger, collector)

	incoming := &models.Location{
		Code:        "NYC_USA",
		CityName:    "New Amsterdam",
		RegionName:  "New Netherland",
		CountryCode: "US",
		CountryName: "United States of America",
		Enabled:     false,
	}

	updated, err := service.Update(context.Background(), incoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("repository update was not called")
	}

	if updated.Code != "NYC_USA" {
		t.Errorf("code = %q, want NYC_USA", updated.Code)
	}
	if updated.CityName != "New Amsterdam" || updated.Enabled {
		t.Errorf("fields not copied: %+v", updated)
	}
}

func TestLocationServiceUpdateNotFound(t *testing.T) {
	logger, collector := testDeps()
	service := NewLocationService(&mockRepository{}, logger, collector)

	_, err := service.Update(context.Background(), storedLocation())
	if !errors.Is(err, repository.ErrLocationNotFound) {
		t.Errorf("error = %v, want ErrLocationNotFound", err)
	}
}

func TestLocationServiceDeletePropagatesNotFound(t *testing.T) {
	repo := &mockRepository{
		trashByCode: func(ctx context.Context, code string) error {
			return repository.ErrLocationNotFound
		},
	}

	logger, collector := testDeps()
	service := NewLocationService(repo, logger, collector)

	err := service.Delete(context.Background(), "MISSING")
	if !errors.Is(err, repository.ErrLocationNotFound) {
		t.Errorf("error = %v, want ErrLocationNotFound", err)
	}
}

func TestLocationServiceAddPropagatesDuplicate(t *testing.T) {
	repo := &mockRepository{
		createLocation: func(ctx context.Context, location *models.Location) error {
			return repository.ErrDuplicateLocation
		},
	}

	logger, collector := testDeps()
	service := NewLocationService(repo, logger, collector)

	err := service.Add(context.Background(), storedLocation())
	if !errors.Is(err, repository.ErrDuplicateLocation) {
		t.Errorf("error = %v, want ErrDuplicateLocation", err)
	}
}
