package allocator

import (
	"fmt"
	"time"
)

// SlotKey identifies a bookable slot. A slot is not an entity of its own;
// its identity is derived from the (date, time label) pair.
type SlotKey struct {
	Date      time.Time
	TimeLabel string
}

// SlotAvailability is the remaining capacity at one slot, computed from a
// snapshot of committed bookings.
type SlotAvailability struct {
	Date      time.Time `json:"date"`
	TimeLabel string    `json:"timeLabel"`
	Available int32     `json:"availableCapacity"`
	Total     int32     `json:"totalCapacity"`
}

// GroupConstraint describes a cohort of vehicles that completed a prior
// service at the given reference slot. Every slot assigned to the group
// must be strictly later than that reference. A zero-value reference
// (no date, no time label) matches every slot.
type GroupConstraint struct {
	Group          int32
	VehicleCount   int32
	ConstraintDate time.Time
	ConstraintTime string
}

// Distribution is one entry of a suggested assignment of vehicles to a
// slot. Group is zero for unconstrained allocations.
type Distribution struct {
	Date         time.Time `json:"date"`
	TimeLabel    string    `json:"timeLabel"`
	VehicleCount int32     `json:"vehicleCount"`
	Group        int32     `json:"vehicleGroup,omitempty"`
}

// BookingSlot is a single requested (slot, vehicle count) for one service,
// as submitted by the booking flow.
type BookingSlot struct {
	Date         time.Time
	TimeLabel    string
	VehicleCount int32
}

const (
	ReasonSameDayNotAfter = "same-day not after"
	ReasonEarlierDate     = "earlier date"
)

// OrderingViolation reports a booking whose slot for a service is not
// strictly later than the positionally paired slot of the preceding
// service.
type OrderingViolation struct {
	Service   string
	SlotIndex int
	Reason    string
}

func (v *OrderingViolation) Error() string {
	return fmt.Sprintf("slot %d of %s does not come after the preceding service (%s)", v.SlotIndex+1, v.Service, v.Reason)
}
