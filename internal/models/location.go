package models

import (
	"fmt"
	"time"
)

// Location represents a place weather is tracked for. The code is the
// business key; trashed rows are soft-deleted and excluded from every lookup.
type Location struct {
	Code        string `json:"code" db:"code" validate:"required,min=3,max=12"`
	CityName    string `json:"city_name" db:"city_name" validate:"required,min=3,max=128"`
	RegionName  string `json:"region_name,omitempty" db:"region_name" validate:"omitempty,min=3,max=128"`
	CountryCode string `json:"country_code" db:"country_code" validate:"required,len=2"`
	CountryName string `json:"country_name" db:"country_name" validate:"required,min=3,max=64"`
	Enabled     bool   `json:"enabled" db:"enabled"`
	Trashed     bool   `json:"-" db:"trashed"`
}

// CopyFieldsFrom copies the mutable fields of in onto l. The code is the
// primary key and is never replaced.
func (l *Location) CopyFieldsFrom(in *Location) {
	l.CityName = in.CityName
	l.RegionName = in.RegionName
	l.CountryCode = in.CountryCode
	l.CountryName = in.CountryName
	l.Enabled = in.Enabled
}

// String renders the location as "city, region, country" for display fields.
func (l *Location) String() string {
	if l.RegionName == "" {
		return fmt.Sprintf("%s, %s", l.CityName, l.CountryName)
	}
	return fmt.Sprintf("%s, %s, %s", l.CityName, l.RegionName, l.CountryName)
}

// RealtimeWeather is the singleton current-conditions record of a location.
// It shares the location's code as its primary key and is created lazily on
// the first update.
type RealtimeWeather struct {
	LocationCode  string    `json:"-" db:"location_code"`
	Temperature   int       `json:"temperature" db:"temperature" validate:"min=-50,max=50"`
	Humidity      int       `json:"humidity" db:"humidity" validate:"min=0,max=100"`
	Precipitation int       `json:"precipitation" db:"precipitation" validate:"min=0,max=100"`
	WindSpeed     int       `json:"wind_speed" db:"wind_speed" validate:"min=0,max=200"`
	Status        string    `json:"status" db:"status" validate:"required,min=3,max=50"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}

// HourlyWeather is one hour-of-day forecast row for a location.
type HourlyWeather struct {
	LocationCode  string `json:"-" db:"location_code"`
	HourOfDay     int    `json:"hour_of_day" db:"hour_of_day" validate:"min=0,max=23"`
	Temperature   int    `json:"temperature" db:"temperature" validate:"min=-50,max=50"`
	Precipitation int    `json:"precipitation" db:"precipitation" validate:"min=0,max=100"`
	Status        string `json:"status" db:"status" validate:"required,min=3,max=50"`
}

// Key returns the composite identity of the row within its location.
func (h *HourlyWeather) Key() int {
	return h.HourOfDay
}

// DailyKey identifies a daily forecast row within its location.
type DailyKey struct {
	DayOfMonth int
	Month      int
}

// DailyWeather is one day-of-year forecast row for a location.
// min_temp <= max_temp is not enforced; callers may store inverted ranges.
type DailyWeather struct {
	LocationCode  string `json:"-" db:"location_code"`
	DayOfMonth    int    `json:"day_of_month" db:"day_of_month" validate:"min=1,max=31"`
	Month         int    `json:"month" db:"month" validate:"min=1,max=12"`
	MinTemp       int    `json:"min_temp" db:"min_temp" validate:"min=-50,max=50"`
	MaxTemp       int    `json:"max_temp" db:"max_temp" validate:"min=-50,max=50"`
	Precipitation int    `json:"precipitation" db:"precipitation" validate:"min=0,max=100"`
	Status        string `json:"status" db:"status" validate:"required,min=3,max=50"`
}

// Key returns the composite identity of the row within its location.
func (d *DailyWeather) Key() DailyKey {
	return DailyKey{DayOfMonth: d.DayOfMonth, Month: d.Month}
}

// FullWeather is the composite aggregate payload: one realtime record plus
// the hourly and daily collections, updated as a single unit. It carries no
// location reference; the target location is supplied by the endpoint path.
type FullWeather struct {
	Location       string          `json:"location,omitempty"`
	Realtime       RealtimeWeather `json:"realtime_weather"`
	HourlyForecast []HourlyWeather `json:"hourly_forecast" validate:"dive"`
	DailyForecast  []DailyWeather  `json:"daily_forecast" validate:"dive"`
}
