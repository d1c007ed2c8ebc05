package allocator

// Greedy distributes vehicleCount vehicles across slots with no sequencing
// constraints, preferring earlier slots and using as few slots as possible.
// When the provided slots cannot absorb every vehicle the accumulated
// partial distribution is returned as-is; callers detect insufficiency by
// summing the entries against the requested count.
func (a *Allocator) Greedy(vehicleCount int32, slots []SlotAvailability) []Distribution {
	sorted := a.sortSlots(slots)

	var entries []Distribution
	remaining := vehicleCount

	for _, slot := range sorted {
		if remaining <= 0 {
			break
		}
		if slot.Available <= 0 {
			continue
		}

		assigned := min(remaining, slot.Available)
		entries = append(entries, Distribution{
			Date:         slot.Date,
			TimeLabel:    slot.TimeLabel,
			VehicleCount: assigned,
		})
		remaining -= assigned
	}

	return entries
}
