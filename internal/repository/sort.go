package repository

import (
	"fmt"
	"strings"
)

// sortableFields is the allow-list of client sort keys, mapped to the
// columns they order by. Anything outside this table is rejected before the
// query is built.
var sortableFields = map[string]string{
	"code":         "code",
	"city_name":    "city_name",
	"region_name":  "region_name",
	"country_code": "country_code",
	"country_name": "country_name",
	"enabled":      "enabled",
}

// SortField is one translated (column, direction) pair. The order of fields
// in a parsed sort option is significant: the first is the primary key,
// later fields break ties in listed order.
type SortField struct {
	Column     string
	Descending bool
}

// InvalidSortFieldError reports a sort key outside the allow-list.
type InvalidSortFieldError struct {
	Field string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("invalid sort field: %s", e.Field)
}

// ParseSortOption parses a client sort expression such as
// "-country_code,city_name" into an ordered list of sort fields. A leading
// "-" on a token means descending.
func ParseSortOption(option string) ([]SortField, error) {
	tokens := strings.Split(option, ",")

	fields := make([]SortField, 0, len(tokens))

	for _, token := range tokens {
		key := strings.TrimPrefix(token, "-")

		column, ok := sortableFields[key]
		if !ok {
			return nil, &InvalidSortFieldError{Field: key}
		}

		fields = append(fields, SortField{
			Column:     column,
			Descending: strings.HasPrefix(token, "-"),
		})
	}

	return fields, nil
}

// orderByClause renders the fields as a SQL ORDER BY body. Columns come
// from the allow-list only, so interpolation is safe.
func orderByClause(fields []SortField) string {
	parts := make([]string, 0, len(fields))

	for _, f := range fields {
		if f.Descending {
			parts = append(parts, f.Column+" DESC")
		} else {
			parts = append(parts, f.Column+" ASC")
		}
	}

	return strings.Join(parts, ", ")
}
