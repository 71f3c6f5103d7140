package repository

import (
	"testing"
)

func TestBuildLocationFilter(t *testing.T) {
	tests := []struct {
		name        string
		enabled     string
		regionName  string
		countryCode string
		want        LocationFilter
		wantErr     bool
	}{
		{
			name: "all absent yields empty filter",
			want: LocationFilter{},
		},
		{
			name:    "enabled true",
			enabled: "true",
			want:    LocationFilter{"enabled": true},
		},
		{
			name:    "enabled false",
			enabled: "false",
			want:    LocationFilter{"enabled": false},
		},
		{
			name:    "enabled rejects non-boolean",
			enabled: "maybe",
			wantErr: true,
		},
		{
			name:        "all present",
			enabled:     "true",
			regionName:  "California",
			countryCode: "US",
			want: LocationFilter{
				"enabled":      true,
				"region_name":  "California",
				"country_code": "US",
			},
		},
		{
			name:       "region only",
			regionName: "Bavaria",
			want:       LocationFilter{"region_name": "Bavaria"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildLocationFilter(tt.enabled, tt.regionName, tt.countryCode)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("filter has %d entries, want %d", len(got), len(tt.want))
			}

			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("filter[%q] = %v, want %v", key, got[key], want)
				}
			}
		})
	}
}
