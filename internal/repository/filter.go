package repository

import (
	"fmt"
	"strconv"
)

// LocationFilter maps column names to required equality values. All present
// entries are AND-ed by the listing query.
type LocationFilter map[string]interface{}

// BuildLocationFilter converts the raw listing query parameters into a
// filter. An empty string means "not supplied" and produces no entry. A
// non-boolean enabled value is rejected rather than silently coerced.
func BuildLocationFilter(enabled, regionName, countryCode string) (LocationFilter, error) {
	filter := LocationFilter{}

	if enabled != "" {
		value, err := strconv.ParseBool(enabled)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled filter value: %q", enabled)
		}
		filter["enabled"] = value
	}

	if regionName != "" {
		filter["region_name"] = regionName
	}

	if countryCode != "" {
		filter["country_code"] = countryCode
	}

	return filter, nil
}
