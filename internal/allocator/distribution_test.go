package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

func TestValidateDistribution(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 2, Total: 12},
		{Date: date(10), TimeLabel: "09:30 AM", Available: 5, Total: 12},
	}

	tests := []struct {
		name         string
		entries      []Distribution
		vehicleCount int32
		wantErr      string
	}{
		{
			name: "valid",
			entries: []Distribution{
				{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2},
				{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 3},
			},
			vehicleCount: 5,
		},
		{
			name: "sum below requested count",
			entries: []Distribution{
				{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 3},
			},
			vehicleCount: 5,
			wantErr:      "covers 3 vehicles, expected 5",
		},
		{
			name: "slot over its remaining capacity",
			entries: []Distribution{
				{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 4},
			},
			vehicleCount: 4,
			wantErr:      "only 2 left",
		},
		{
			name: "duplicate entries summed before capacity check",
			entries: []Distribution{
				{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 3},
				{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 3},
			},
			vehicleCount: 6,
			wantErr:      "only 5 left",
		},
		{
			name: "unknown slot",
			entries: []Distribution{
				{Date: date(11), TimeLabel: "08:30 AM", VehicleCount: 5},
			},
			vehicleCount: 5,
			wantErr:      "not bookable",
		},
		{
			name: "non-positive vehicle count",
			entries: []Distribution{
				{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 0},
			},
			vehicleCount: 0,
			wantErr:      "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateDistribution(tt.entries, tt.vehicleCount, slots)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
