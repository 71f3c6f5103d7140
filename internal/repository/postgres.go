package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"weather-api/internal/models"
	"weather-api/pkg/database"
	"weather-api/pkg/logging"
	"weather-api/pkg/metrics"
)

// filterColumns fixes the order filter entries are rendered in, keeping the
// generated SQL stable for a given filter.
var filterColumns = []string{"enabled", "region_name", "country_code"}

// locationRepository implements LocationRepository over PostgreSQL
type locationRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) LocationRepository {
	return &locationRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

const locationColumns = "code, city_name, region_name, country_code, country_name, enabled, trashed"

// CreateLocation inserts a new location
func (r *locationRepository) CreateLocation(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (code, city_name, region_name, country_code, country_name, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, "insert_location", query,
		location.Code,
		location.CityName,
		location.RegionName,
		location.CountryCode,
		location.CountryName,
		location.Enabled,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateLocation
		}
		return fmt.Errorf("failed to create location: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_CREATE_LOCATION] Location created", logging.Fields{
		"code":         location.Code,
		"country_code": location.CountryCode,
	})

	return nil
}

// FindByCode retrieves an untrashed location by its code
func (r *locationRepository) FindByCode(ctx context.Context, code string) (*models.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE code = $1 AND trashed = FALSE
	`

	var location models.Location
	err := r.db.GetContext(ctx, "get_location", &location, query, code)

	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

// FindByCountryCodeAndCityName retrieves an untrashed location by the pair
// a geolocation guess provides
func (r *locationRepository) FindByCountryCodeAndCityName(ctx context.Context, countryCode, cityName string) (*models.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE country_code = $1 AND city_name = $2 AND trashed = FALSE
	`

	var location models.Location
	err := r.db.GetContext(ctx, "get_location_by_country_city", &location, query, countryCode, cityName)

	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get location by country and city: %w", err)
	}

	return &location, nil
}

// UpdateLocation overwrites the mutable fields of an existing location
func (r *locationRepository) UpdateLocation(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET city_name = $1, region_name = $2, country_code = $3, country_name = $4, enabled = $5
		WHERE code = $6 AND trashed = FALSE
	`

	result, err := r.db.ExecContext(ctx, "update_location", query,
		location.CityName,
		location.RegionName,
		location.CountryCode,
		location.CountryName,
		location.Enabled,
		location.Code,
	)

	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}

	if affected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// TrashByCode soft-deletes a location; its weather rows stay in place but
// become unreachable through every lookup
func (r *locationRepository) TrashByCode(ctx context.Context, code string) error {
	query := `UPDATE locations SET trashed = TRUE WHERE code = $1 AND trashed = FALSE`

	result, err := r.db.ExecContext(ctx, "trash_location", query, code)
	if err != nil {
		return fmt.Errorf("failed to trash location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read trash result: %w", err)
	}

	if affected == 0 {
		return ErrLocationNotFound
	}

	r.logger.Debug(ctx, "[REPO_TRASH_LOCATION] Location trashed", logging.Fields{
		"code": code,
	})

	return nil
}

// ListLocations executes the filtered, sorted, paged listing query
func (r *locationRepository) ListLocations(ctx context.Context, opts ListOptions) (*LocationPage, error) {
	where := "WHERE trashed = FALSE"
	args := []interface{}{}
	argNum := 1

	for _, column := range filterColumns {
		value, ok := opts.Filter[column]
		if !ok {
			continue
		}
		where += fmt.Sprintf(" AND %s = $%d", column, argNum)
		args = append(args, value)
		argNum++
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM locations " + where
	var totalCount int64
	if err := r.db.GetContext(ctx, "count_locations", &totalCount, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count locations: %w", err)
	}

	sort := opts.Sort
	if len(sort) == 0 {
		sort = []SortField{{Column: "code"}}
	}

	query := "SELECT " + locationColumns + " FROM locations " + where +
		" ORDER BY " + orderByClause(sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, opts.PageSize, (opts.PageNum-1)*opts.PageSize)

	var locations []models.Location
	if err := r.db.SelectContext(ctx, "list_locations", &locations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	totalPages := int((totalCount + int64(opts.PageSize) - 1) / int64(opts.PageSize))

	return &LocationPage{
		Items:         locations,
		Size:          opts.PageSize,
		Number:        opts.PageNum - 1,
		TotalElements: totalCount,
		TotalPages:    totalPages,
	}, nil
}

// FindRealtime retrieves the realtime record of an untrashed location
func (r *locationRepository) FindRealtime(ctx context.Context, locationCode string) (*models.RealtimeWeather, error) {
	query := `
		SELECT r.location_code, r.temperature, r.humidity, r.precipitation, r.wind_speed, r.status, r.last_updated
		FROM realtime_weather r
		JOIN locations l ON l.code = r.location_code AND l.trashed = FALSE
		WHERE r.location_code = $1
	`

	var weather models.RealtimeWeather
	err := r.db.GetContext(ctx, "get_realtime", &weather, query, locationCode)

	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get realtime weather: %w", err)
	}

	return &weather, nil
}

// SaveRealtime creates or overwrites the singleton realtime record
func (r *locationRepository) SaveRealtime(ctx context.Context, weather *models.RealtimeWeather) error {
	_, err := r.db.ExecContext(ctx, "upsert_realtime", upsertRealtimeQuery,
		weather.LocationCode,
		weather.Temperature,
		weather.Humidity,
		weather.Precipitation,
		weather.WindSpeed,
		weather.Status,
		weather.LastUpdated,
	)

	if err != nil {
		return fmt.Errorf("failed to save realtime weather: %w", err)
	}

	return nil
}

const upsertRealtimeQuery = `
	INSERT INTO realtime_weather (location_code, temperature, humidity, precipitation, wind_speed, status, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (location_code) DO UPDATE SET
		temperature = EXCLUDED.temperature,
		humidity = EXCLUDED.humidity,
		precipitation = EXCLUDED.precipitation,
		wind_speed = EXCLUDED.wind_speed,
		status = EXCLUDED.status,
		last_updated = EXCLUDED.last_updated
`

// ListHourly retrieves the hourly rows of an untrashed location from
// fromHour on, ordered by hour
func (r *locationRepository) ListHourly(ctx context.Context, locationCode string, fromHour int) ([]models.HourlyWeather, error) {
	query := `
		SELECT h.location_code, h.hour_of_day, h.temperature, h.precipitation, h.status
		FROM weather_hourly h
		JOIN locations l ON l.code = h.location_code AND l.trashed = FALSE
		WHERE h.location_code = $1 AND h.hour_of_day >= $2
		ORDER BY h.hour_of_day
	`

	var hourly []models.HourlyWeather
	if err := r.db.SelectContext(ctx, "list_hourly", &hourly, query, locationCode, fromHour); err != nil {
		return nil, fmt.Errorf("failed to list hourly weather: %w", err)
	}

	return hourly, nil
}

// ReplaceHourly reconciles the hourly collection against incoming in one
// transaction
func (r *locationRepository) ReplaceHourly(ctx context.Context, locationCode string, incoming []models.HourlyWeather) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return r.reconcileHourly(ctx, tx, locationCode, incoming)
	})
}

// ListDaily retrieves the daily rows of an untrashed location ordered by
// month, then day
func (r *locationRepository) ListDaily(ctx context.Context, locationCode string) ([]models.DailyWeather, error) {
	query := `
		SELECT d.location_code, d.day_of_month, d.month, d.min_temp, d.max_temp, d.precipitation, d.status
		FROM weather_daily d
		JOIN locations l ON l.code = d.location_code AND l.trashed = FALSE
		WHERE d.location_code = $1
		ORDER BY d.month, d.day_of_month
	`

	var daily []models.DailyWeather
	if err := r.db.SelectContext(ctx, "list_daily", &daily, query, locationCode); err != nil {
		return nil, fmt.Errorf("failed to list daily weather: %w", err)
	}

	return daily, nil
}

// ReplaceDaily reconciles the daily collection against incoming in one
// transaction
func (r *locationRepository) ReplaceDaily(ctx context.Context, locationCode string, incoming []models.DailyWeather) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return r.reconcileDaily(ctx, tx, locationCode, incoming)
	})
}

// SaveFullWeather commits the whole aggregate update in a single
// transaction: either every sub-record change is visible or none is
func (r *locationRepository) SaveFullWeather(ctx context.Context, locationCode string, full *models.FullWeather) error {
	timer := r.metrics.NewTimer(r.metrics.ReconcileDuration)
	defer timer.ObserveDuration()

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		rt := full.Realtime
		_, err := tx.ExecContext(ctx, upsertRealtimeQuery,
			rt.LocationCode,
			rt.Temperature,
			rt.Humidity,
			rt.Precipitation,
			rt.WindSpeed,
			rt.Status,
			rt.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("failed to save realtime weather: %w", err)
		}

		if err := r.reconcileDaily(ctx, tx, locationCode, full.DailyForecast); err != nil {
			return err
		}

		return r.reconcileHourly(ctx, tx, locationCode, full.HourlyForecast)
	})
}

func (r *locationRepository) reconcileHourly(ctx context.Context, tx *sqlx.Tx, locationCode string, incoming []models.HourlyWeather) error {
	var persisted []int
	err := tx.SelectContext(ctx, &persisted,
		`SELECT hour_of_day FROM weather_hourly WHERE location_code = $1 ORDER BY hour_of_day`,
		locationCode)
	if err != nil {
		return fmt.Errorf("failed to load hourly keys: %w", err)
	}

	incomingKeys := make([]int, 0, len(incoming))
	for i := range incoming {
		incomingKeys = append(incomingKeys, incoming[i].Key())
	}

	plan := ReconcileKeys(persisted, incomingKeys)

	for _, hour := range plan.ToRemove {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM weather_hourly WHERE location_code = $1 AND hour_of_day = $2`,
			locationCode, hour)
		if err != nil {
			return fmt.Errorf("failed to remove hourly row %d: %w", hour, err)
		}
	}

	for i := range incoming {
		h := &incoming[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO weather_hourly (location_code, hour_of_day, temperature, precipitation, status)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (location_code, hour_of_day) DO UPDATE SET
				temperature = EXCLUDED.temperature,
				precipitation = EXCLUDED.precipitation,
				status = EXCLUDED.status
		`, h.LocationCode, h.HourOfDay, h.Temperature, h.Precipitation, h.Status)
		if err != nil {
			return fmt.Errorf("failed to save hourly row %d: %w", h.HourOfDay, err)
		}
	}

	r.metrics.RecordReconcileOps("hourly", len(plan.ToInsert), len(plan.ToUpdate), len(plan.ToRemove))

	r.logger.Debug(ctx, "[REPO_RECONCILE_HOURLY] Hourly collection reconciled", logging.Fields{
		"location_code": locationCode,
		"inserted":      len(plan.ToInsert),
		"updated":       len(plan.ToUpdate),
		"removed":       len(plan.ToRemove),
	})

	return nil
}

func (r *locationRepository) reconcileDaily(ctx context.Context, tx *sqlx.Tx, locationCode string, incoming []models.DailyWeather) error {
	var persistedRows []struct {
		DayOfMonth int `db:"day_of_month"`
		Month      int `db:"month"`
	}
	err := tx.SelectContext(ctx, &persistedRows,
		`SELECT day_of_month, month FROM weather_daily WHERE location_code = $1 ORDER BY month, day_of_month`,
		locationCode)
	if err != nil {
		return fmt.Errorf("failed to load daily keys: %w", err)
	}

	persisted := make([]models.DailyKey, 0, len(persistedRows))
	for _, row := range persistedRows {
		persisted = append(persisted, models.DailyKey{DayOfMonth: row.DayOfMonth, Month: row.Month})
	}

	incomingKeys := make([]models.DailyKey, 0, len(incoming))
	for i := range incoming {
		incomingKeys = append(incomingKeys, incoming[i].Key())
	}

	plan := ReconcileKeys(persisted, incomingKeys)

	for _, key := range plan.ToRemove {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM weather_daily WHERE location_code = $1 AND day_of_month = $2 AND month = $3`,
			locationCode, key.DayOfMonth, key.Month)
		if err != nil {
			return fmt.Errorf("failed to remove daily row %d/%d: %w", key.DayOfMonth, key.Month, err)
		}
	}

	for i := range incoming {
		d := &incoming[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO weather_daily (location_code, day_of_month, month, min_temp, max_temp, precipitation, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (location_code, day_of_month, month) DO UPDATE SET
				min_temp = EXCLUDED.min_temp,
				max_temp = EXCLUDED.max_temp,
				precipitation = EXCLUDED.precipitation,
				status = EXCLUDED.status
		`, d.LocationCode, d.DayOfMonth, d.Month, d.MinTemp, d.MaxTemp, d.Precipitation, d.Status)
		if err != nil {
			return fmt.Errorf("failed to save daily row %d/%d: %w", d.DayOfMonth, d.Month, err)
		}
	}

	r.metrics.RecordReconcileOps("daily", len(plan.ToInsert), len(plan.ToUpdate), len(plan.ToRemove))

	r.logger.Debug(ctx, "[REPO_RECONCILE_DAILY] Daily collection reconciled", logging.Fields{
		"location_code": locationCode,
		"inserted":      len(plan.ToInsert),
		"updated":       len(plan.ToUpdate),
		"removed":       len(plan.ToRemove),
	})

	return nil
}

// HealthCheck performs a repository health check
func (r *locationRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
