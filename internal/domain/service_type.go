package domain

import "time"

type ServiceName string

const (
	ServiceWeighing     ServiceName = "weighing"
	ServiceInspection   ServiceName = "inspection"
	ServiceRegistration ServiceName = "registration"
)

// ServiceOrder is the fixed precedence vehicles move through. A booking's
// inspection slots must come after its weighing slots, and registration
// after inspection.
var ServiceOrder = []ServiceName{ServiceWeighing, ServiceInspection, ServiceRegistration}

type ServiceType struct {
	ID           int64       `json:"id"`
	Name         ServiceName `json:"name"`
	DisplayName  string      `json:"displayName"`
	Sequence     int32       `json:"sequence"`
	SlotCapacity int32       `json:"slotCapacity"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}
