package geolocation

import (
	"context"
	"fmt"

	"github.com/ip2location/ip2location-go/v9"

	"weather-api/internal/models"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// Error reports a failed IP-to-location lookup. It is treated as
// client-caused because it stems from the caller's address.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Service resolves caller IP addresses to location guesses using the
// IP2Location LITE database.
type Service struct {
	db      *ip2location.DB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewService opens the IP2Location BIN database at dbPath.
func NewService(dbPath string, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) (*Service, error) {
	db, err := ip2location.OpenDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open IP2Location database %s: %w", dbPath, err)
	}

	logger.Info(context.Background(), "[GEO_INIT] IP2Location database loaded", logging.Fields{
		"path": dbPath,
	})

	return &Service{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}, nil
}

// Close releases the underlying database handle.
func (s *Service) Close() {
	s.db.Close()
}

// Locate resolves ipAddress to a location guess. The result is not a
// persisted location; callers match it against the store by country code
// and city name.
func (s *Service) Locate(ctx context.Context, ipAddress string) (*models.Location, error) {
	timer := s.metrics.NewTimer(s.metrics.GeolocationDuration)
	defer timer.ObserveDuration()

	record, err := s.db.Get_all(ipAddress)
	if err != nil {
		s.metrics.RecordGeolocationLookup("error")
		return nil, &Error{Message: "error querying IP database", Err: err}
	}

	// The LITE database reports misses through sentinel field values
	// rather than errors.
	if record.Country_short == "" || record.Country_short == "-" || record.Country_short == "INVALID IP ADDRESS" {
		s.metrics.RecordGeolocationLookup("miss")
		return nil, &Error{Message: fmt.Sprintf("geolocation failed for address %s", ipAddress)}
	}

	s.metrics.RecordGeolocationLookup("hit")

	s.logger.Debug(ctx, "[GEO_LOOKUP] IP address resolved", logging.Fields{
		"ip":           ipAddress,
		"country_code": record.Country_short,
		"city":         record.City,
	})

	return &models.Location{
		CityName:    record.City,
		RegionName:  record.Region,
		CountryName: record.Country_long,
		CountryCode: record.Country_short,
	}, nil
}
