package repository

import (
	"reflect"
	"testing"

	"weather-api/internal/models"
)

func TestReconcileKeys(t *testing.T) {
	tests := []struct {
		name      string
		persisted []int
		incoming  []int
		want      ReconcilePlan[int]
	}{
		{
			name:      "overlap splits into insert, update, remove",
			persisted: []int{1, 2, 3},
			incoming:  []int{2, 3, 4},
			want: ReconcilePlan[int]{
				ToInsert: []int{4},
				ToUpdate: []int{2, 3},
				ToRemove: []int{1},
			},
		},
		{
			name:     "everything new",
			incoming: []int{7, 8},
			want: ReconcilePlan[int]{
				ToInsert: []int{7, 8},
			},
		},
		{
			name:      "empty incoming removes everything",
			persisted: []int{5, 6},
			want: ReconcilePlan[int]{
				ToRemove: []int{5, 6},
			},
		},
		{
			name:      "identical sets are pure update",
			persisted: []int{1, 2},
			incoming:  []int{1, 2},
			want: ReconcilePlan[int]{
				ToUpdate: []int{1, 2},
			},
		},
		{
			name:      "duplicate incoming keys collapse to first occurrence",
			persisted: []int{1},
			incoming:  []int{1, 1, 2, 2},
			want: ReconcilePlan[int]{
				ToInsert: []int{2},
				ToUpdate: []int{1},
			},
		},
		{
			name: "both empty",
			want: ReconcilePlan[int]{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileKeys(tt.persisted, tt.incoming)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReconcileKeys(%v, %v) = %+v, want %+v",
					tt.persisted, tt.incoming, got, tt.want)
			}
		})
	}
}

// Applying a plan and reconciling again must produce no further changes.
func TestReconcileKeysIdempotent(t *testing.T) {
	persisted := []int{1, 2, 3}
	incoming := []int{2, 3, 4}

	first := ReconcileKeys(persisted, incoming)

	applied := append(append([]int{}, first.ToUpdate...), first.ToInsert...)

	second := ReconcileKeys(applied, incoming)

	if len(second.ToInsert) != 0 || len(second.ToRemove) != 0 {
		t.Errorf("second pass not stable: %+v", second)
	}

	if len(second.ToUpdate) != len(incoming) {
		t.Errorf("second pass updates = %d, want %d", len(second.ToUpdate), len(incoming))
	}
}

func TestReconcileKeysCompositeKey(t *testing.T) {
	persisted := []models.DailyKey{{DayOfMonth: 1, Month: 1}, {DayOfMonth: 2, Month: 1}}
	incoming := []models.DailyKey{{DayOfMonth: 2, Month: 1}, {DayOfMonth: 2, Month: 2}}

	got := ReconcileKeys(persisted, incoming)

	want := ReconcilePlan[models.DailyKey]{
		ToInsert: []models.DailyKey{{DayOfMonth: 2, Month: 2}},
		ToUpdate: []models.DailyKey{{DayOfMonth: 2, Month: 1}},
		ToRemove: []models.DailyKey{{DayOfMonth: 1, Month: 1}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReconcileKeys() = %+v, want %+v", got, want)
	}
}
