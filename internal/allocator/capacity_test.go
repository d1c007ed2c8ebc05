package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

func date(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeAvailability(t *testing.T) {
	a := New(domain.TimeLabels)

	booked := map[SlotKey]int32{
		{Date: date(10), TimeLabel: "08:30 AM"}: 10,
		{Date: date(10), TimeLabel: "09:30 AM"}: 12,
		{Date: date(11), TimeLabel: "01:30 PM"}: 15, // force-filled past capacity
	}

	slots := a.ComputeAvailability(booked, 12, []time.Time{date(10), date(11)})

	require.Len(t, slots, 2*len(domain.TimeLabels))

	byKey := make(map[SlotKey]SlotAvailability)
	for _, slot := range slots {
		require.Equal(t, int32(12), slot.Total)
		require.GreaterOrEqual(t, slot.Available, int32(0))
		byKey[SlotKey{Date: slot.Date, TimeLabel: slot.TimeLabel}] = slot
	}

	require.Equal(t, int32(2), byKey[SlotKey{Date: date(10), TimeLabel: "08:30 AM"}].Available)
	require.Equal(t, int32(0), byKey[SlotKey{Date: date(10), TimeLabel: "09:30 AM"}].Available)
	require.Equal(t, int32(12), byKey[SlotKey{Date: date(10), TimeLabel: "10:30 AM"}].Available)

	// overbooked slots are clamped to zero, never negative
	require.Equal(t, int32(0), byKey[SlotKey{Date: date(11), TimeLabel: "01:30 PM"}].Available)
}

func TestComputeAvailabilityEmptyDates(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := a.ComputeAvailability(nil, 5, nil)
	require.Empty(t, slots)
}
