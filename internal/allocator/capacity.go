package allocator

import "time"

// ComputeAvailability produces the remaining capacity for every
// (date, time label) combination of the requested dates. bookedCounts maps
// a slot to the sum of vehicle counts of committed bookings at that slot;
// slots absent from the map are fully free. When an administrative
// override has force-filled a slot past its capacity, the remaining
// capacity is clamped to zero rather than reported negative.
func (a *Allocator) ComputeAvailability(bookedCounts map[SlotKey]int32, maxCapacity int32, dates []time.Time) []SlotAvailability {
	slots := make([]SlotAvailability, 0, len(dates)*len(a.timeLabels))

	for _, date := range dates {
		for _, label := range a.timeLabels {
			available := maxCapacity - bookedCounts[SlotKey{Date: date, TimeLabel: label}]
			if available < 0 {
				available = 0
			}
			slots = append(slots, SlotAvailability{
				Date:      date,
				TimeLabel: label,
				Available: available,
				Total:     maxCapacity,
			})
		}
	}

	return slots
}
