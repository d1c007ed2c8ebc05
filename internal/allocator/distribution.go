package allocator

import (
	"fmt"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

// ValidateDistribution checks a caller-edited distribution before it is
// handed to storage: every entry must reference a known slot, the entries
// must sum to exactly vehicleCount, and no slot may receive more vehicles
// than it has capacity left. Entries for the same slot are summed before
// the capacity check.
func (a *Allocator) ValidateDistribution(entries []Distribution, vehicleCount int32, slots []SlotAvailability) error {
	available := make(map[SlotKey]int32, len(slots))
	for _, slot := range slots {
		available[SlotKey{Date: slot.Date, TimeLabel: slot.TimeLabel}] = slot.Available
	}

	requested := make(map[SlotKey]int32)
	var total int32

	for _, entry := range entries {
		if entry.VehicleCount <= 0 {
			return fmt.Errorf("slot %s %s: vehicle count must be positive", entry.Date.Format(domain.DateFormat), entry.TimeLabel)
		}
		key := SlotKey{Date: entry.Date, TimeLabel: entry.TimeLabel}
		if _, ok := available[key]; !ok {
			return fmt.Errorf("slot %s %s is not bookable", entry.Date.Format(domain.DateFormat), entry.TimeLabel)
		}
		requested[key] += entry.VehicleCount
		total += entry.VehicleCount
	}

	if total != vehicleCount {
		return fmt.Errorf("distribution covers %d vehicles, expected %d", total, vehicleCount)
	}

	for key, count := range requested {
		if count > available[key] {
			return fmt.Errorf("slot %s %s cannot take %d vehicles, only %d left", key.Date.Format(domain.DateFormat), key.TimeLabel, count, available[key])
		}
	}

	return nil
}
