package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

func sumEntries(entries []Distribution) int32 {
	var total int32
	for _, e := range entries {
		total += e.VehicleCount
	}
	return total
}

func TestGreedyFillsEarliestSlotsFirst(t *testing.T) {
	a := New(domain.TimeLabels)

	// worked example: capacity 2 at 08:30, 5 at 09:30, everything else full
	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "09:30 AM", Available: 5, Total: 5},
		{Date: date(10), TimeLabel: "08:30 AM", Available: 2, Total: 5},
		{Date: date(10), TimeLabel: "10:30 AM", Available: 0, Total: 5},
	}

	entries := a.Greedy(4, slots)

	require.Equal(t, []Distribution{
		{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2},
		{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 2},
	}, entries)
}

func TestGreedyProperties(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(12), TimeLabel: "08:30 AM", Available: 3, Total: 12},
		{Date: date(10), TimeLabel: "02:30 PM", Available: 1, Total: 12},
		{Date: date(11), TimeLabel: "08:30 AM", Available: 0, Total: 12},
		{Date: date(10), TimeLabel: "08:30 AM", Available: 4, Total: 12},
	}

	tests := []struct {
		name         string
		vehicleCount int32
		wantTotal    int32
	}{
		{name: "fits exactly", vehicleCount: 8, wantTotal: 8},
		{name: "fits with room", vehicleCount: 5, wantTotal: 5},
		{name: "single slot", vehicleCount: 3, wantTotal: 3},
		{name: "exceeds capacity gives maximal partial fill", vehicleCount: 20, wantTotal: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := a.Greedy(tt.vehicleCount, slots)
			require.Equal(t, tt.wantTotal, sumEntries(entries))

			// entries come back in non-decreasing chronological order and
			// never exceed a slot's availability
			avail := make(map[SlotKey]int32)
			for _, s := range slots {
				avail[SlotKey{Date: s.Date, TimeLabel: s.TimeLabel}] = s.Available
			}
			for i, e := range entries {
				require.LessOrEqual(t, e.VehicleCount, avail[SlotKey{Date: e.Date, TimeLabel: e.TimeLabel}])
				if i > 0 {
					prev := entries[i-1]
					require.True(t, a.slotLess(
						SlotAvailability{Date: prev.Date, TimeLabel: prev.TimeLabel},
						SlotAvailability{Date: e.Date, TimeLabel: e.TimeLabel},
					))
				}
			}
		})
	}
}

func TestGreedyNoCapacityAtAll(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 0, Total: 12},
	}

	require.Empty(t, a.Greedy(3, slots))
}
