package allocator

// Constrained allocates the vehicles of a sequence of disjoint groups,
// each restricted to slots strictly later than its reference slot. Groups
// are processed in input order and capacity consumed by an earlier group
// is visible to the ones after it. The allocation is all-or-nothing: if
// any group cannot be fully placed the whole call returns nil and the
// booking flow falls back to manual slot selection.
func (a *Allocator) Constrained(groups []GroupConstraint, slots []SlotAvailability, maxCapacity int32) []Distribution {
	sorted := a.sortSlots(slots)

	var entries []Distribution
	allocated := make(map[SlotKey]int32)

	for _, group := range groups {
		remaining := group.VehicleCount

		for _, slot := range sorted {
			if remaining <= 0 {
				break
			}
			if !a.isAfterConstraint(slot, group) {
				continue
			}

			// remaining headroom is bounded by what the occupancy snapshot
			// says is still free, not by the raw capacity: earlier
			// committed bookings already consumed part of it
			key := SlotKey{Date: slot.Date, TimeLabel: slot.TimeLabel}
			actuallyAvailable := min(slot.Available, maxCapacity) - allocated[key]
			if actuallyAvailable <= 0 {
				continue
			}

			assigned := min(remaining, actuallyAvailable)
			entries = append(entries, Distribution{
				Date:         slot.Date,
				TimeLabel:    slot.TimeLabel,
				VehicleCount: assigned,
				Group:        group.Group,
			})
			allocated[key] += assigned
			remaining -= assigned
		}

		if remaining > 0 {
			return nil
		}
	}

	return entries
}
