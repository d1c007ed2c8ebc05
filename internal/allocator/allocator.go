// Package allocator computes suggested vehicle-to-slot distributions and
// validates service ordering for multi-service appointments. Every call
// works on an in-memory snapshot of slot occupancy supplied by the caller;
// the package holds no state between calls and performs no I/O. The
// authoritative capacity check happens at write time inside the storage
// transaction, so everything returned here is advisory.
package allocator

import (
	"sort"
)

type Allocator struct {
	timeLabels []string
	timeIndex  map[string]int
}

// New builds an allocator over the fixed ordered list of time-of-day
// labels. The position of a label in the list defines its ordering within
// a day.
func New(timeLabels []string) *Allocator {
	idx := make(map[string]int, len(timeLabels))
	for i, label := range timeLabels {
		idx[label] = i
	}
	return &Allocator{
		timeLabels: timeLabels,
		timeIndex:  idx,
	}
}

func (a *Allocator) labelIndex(label string) int {
	if i, ok := a.timeIndex[label]; ok {
		return i
	}
	return -1
}

// slotLess orders slots by (date, time-label position). No two distinct
// slots can tie since the label positions within a day are unique.
func (a *Allocator) slotLess(x, y SlotAvailability) bool {
	if !x.Date.Equal(y.Date) {
		return x.Date.Before(y.Date)
	}
	return a.labelIndex(x.TimeLabel) < a.labelIndex(y.TimeLabel)
}

func (a *Allocator) sortSlots(slots []SlotAvailability) []SlotAvailability {
	sorted := make([]SlotAvailability, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return a.slotLess(sorted[i], sorted[j])
	})
	return sorted
}

// isAfterConstraint reports whether slot lies strictly after the group's
// reference slot. Groups without a reference accept every slot.
func (a *Allocator) isAfterConstraint(slot SlotAvailability, group GroupConstraint) bool {
	if group.ConstraintDate.IsZero() && group.ConstraintTime == "" {
		return true
	}
	if slot.Date.Equal(group.ConstraintDate) {
		return a.labelIndex(slot.TimeLabel) > a.labelIndex(group.ConstraintTime)
	}
	return slot.Date.After(group.ConstraintDate)
}
