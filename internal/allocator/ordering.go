package allocator

import "sort"

// ValidateOrdering checks that a multi-service submission moves through
// services in the fixed precedence order. For every pair of adjacent
// services present in the submission, the j-th earliest slot of the later
// service must be strictly after the j-th earliest slot of the earlier
// one: later time label on the same day, or a later date.
//
// The positional pairing assumes the j-th sorted slot of each service
// carries the same cohort of vehicles through the pipeline, which holds
// when slot counts line up between adjacent services. Pairs beyond the
// shorter list are not checked.
//
// Returns nil when the ordering holds, otherwise the first violation
// found.
func (a *Allocator) ValidateOrdering(bookingsByService map[string][]BookingSlot, serviceOrder []string) *OrderingViolation {
	sorted := make(map[string][]BookingSlot, len(bookingsByService))
	for service, bookings := range bookingsByService {
		s := make([]BookingSlot, len(bookings))
		copy(s, bookings)
		sort.SliceStable(s, func(i, j int) bool {
			if !s[i].Date.Equal(s[j].Date) {
				return s[i].Date.Before(s[j].Date)
			}
			return a.labelIndex(s[i].TimeLabel) < a.labelIndex(s[j].TimeLabel)
		})
		sorted[service] = s
	}

	var present []string
	for _, service := range serviceOrder {
		if len(sorted[service]) > 0 {
			present = append(present, service)
		}
	}

	for i := 1; i < len(present); i++ {
		prev := sorted[present[i-1]]
		curr := sorted[present[i]]

		pairs := min(len(prev), len(curr))
		for j := 0; j < pairs; j++ {
			if curr[j].Date.Equal(prev[j].Date) {
				if a.labelIndex(curr[j].TimeLabel) <= a.labelIndex(prev[j].TimeLabel) {
					return &OrderingViolation{Service: present[i], SlotIndex: j, Reason: ReasonSameDayNotAfter}
				}
			} else if curr[j].Date.Before(prev[j].Date) {
				return &OrderingViolation{Service: present[i], SlotIndex: j, Reason: ReasonEarlierDate}
			}
		}
	}

	return nil
}
