package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

func TestConstrainedRespectsReferenceSlot(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 5, Total: 5},
		{Date: date(10), TimeLabel: "10:30 AM", Available: 5, Total: 5},
		{Date: date(11), TimeLabel: "08:30 AM", Available: 5, Total: 5},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 3, ConstraintDate: date(10), ConstraintTime: "08:30 AM"},
	}

	entries := a.Constrained(groups, slots, 5)

	require.Equal(t, []Distribution{
		{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 3, Group: 1},
	}, entries)
}

func TestConstrainedLaterDateSatisfiesConstraint(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(11), TimeLabel: "08:30 AM", Available: 2, Total: 5},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 2, ConstraintDate: date(10), ConstraintTime: "03:30 PM"},
	}

	entries := a.Constrained(groups, slots, 5)
	require.Equal(t, int32(2), sumEntries(entries))
}

func TestConstrainedSharedSlotNeverExceedsCapacity(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "09:30 AM", Available: 5, Total: 5},
		{Date: date(10), TimeLabel: "10:30 AM", Available: 5, Total: 5},
	}

	// both groups are unconstrained and compete for the same slots
	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 3},
		{Group: 2, VehicleCount: 4},
	}

	entries := a.Constrained(groups, slots, 5)
	require.Equal(t, int32(7), sumEntries(entries))

	perSlot := make(map[SlotKey]int32)
	for _, e := range entries {
		perSlot[SlotKey{Date: e.Date, TimeLabel: e.TimeLabel}] += e.VehicleCount
	}
	for key, total := range perSlot {
		require.LessOrEqual(t, total, int32(5), "slot %s %s over capacity", key.Date, key.TimeLabel)
	}
}

func TestConstrainedPartiallyBookedSlotCapsAtAvailability(t *testing.T) {
	a := New(domain.TimeLabels)

	// 08:30 already holds 3 committed vehicles; the two groups together
	// may only use its remaining 2, the rest spills to 09:30
	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 2, Total: 5},
		{Date: date(10), TimeLabel: "09:30 AM", Available: 5, Total: 5},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 2},
		{Group: 2, VehicleCount: 2},
	}

	entries := a.Constrained(groups, slots, 5)
	require.Equal(t, int32(4), sumEntries(entries))

	perSlot := make(map[SlotKey]int32)
	for _, e := range entries {
		perSlot[SlotKey{Date: e.Date, TimeLabel: e.TimeLabel}] += e.VehicleCount
	}
	require.LessOrEqual(t, perSlot[SlotKey{Date: date(10), TimeLabel: "08:30 AM"}], int32(2))
	require.LessOrEqual(t, perSlot[SlotKey{Date: date(10), TimeLabel: "09:30 AM"}], int32(5))
}

func TestConstrainedPartiallyBookedSoleSlotIsInfeasible(t *testing.T) {
	a := New(domain.TimeLabels)

	// only 2 vehicles still fit; the second group cannot be placed and
	// the whole allocation is abandoned
	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 2, Total: 5},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 2},
		{Group: 2, VehicleCount: 2},
	}

	require.Nil(t, a.Constrained(groups, slots, 5))
}

func TestConstrainedAllOrNothing(t *testing.T) {
	a := New(domain.TimeLabels)

	// single open slot at 10:30; group2 must be strictly after it and has
	// nowhere to go, so the whole allocation is abandoned even though
	// group1 fit
	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "10:30 AM", Available: 5, Total: 5},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 2},
		{Group: 2, VehicleCount: 3, ConstraintDate: date(10), ConstraintTime: "10:30 AM"},
	}

	require.Nil(t, a.Constrained(groups, slots, 5))
}

func TestConstrainedDeterministic(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(11), TimeLabel: "08:30 AM", Available: 4, Total: 12},
		{Date: date(10), TimeLabel: "03:30 PM", Available: 6, Total: 12},
		{Date: date(10), TimeLabel: "08:30 AM", Available: 2, Total: 12},
	}

	groups := []GroupConstraint{
		{Group: 1, VehicleCount: 5},
		{Group: 2, VehicleCount: 4, ConstraintDate: date(10), ConstraintTime: "08:30 AM"},
	}

	first := a.Constrained(groups, slots, 12)
	second := a.Constrained(groups, slots, 12)
	require.Equal(t, first, second)
	require.Equal(t, int32(9), sumEntries(first))
}

func TestConstrainedZeroConstraintMatchesEverything(t *testing.T) {
	a := New(domain.TimeLabels)

	slots := []SlotAvailability{
		{Date: date(10), TimeLabel: "08:30 AM", Available: 3, Total: 3},
	}

	entries := a.Constrained([]GroupConstraint{{Group: 1, VehicleCount: 3}}, slots, 3)
	require.Equal(t, []Distribution{
		{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 3, Group: 1},
	}, entries)
}
