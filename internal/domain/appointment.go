package domain

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ServiceBooking is one committed (service, slot, vehicle count) row of an
// appointment. A multi-vehicle appointment may hold several bookings for
// the same service spread across slots.
type ServiceBooking struct {
	ID            int64     `json:"id"`
	ServiceTypeID int64     `json:"serviceTypeID"`
	Date          time.Time `json:"date"`
	TimeLabel     string    `json:"timeLabel"`
	VehicleCount  int32     `json:"vehicleCount"`
}

type Appointment struct {
	ID               int64             `json:"id"`
	Code             string            `json:"code"`
	ApplicantName    string            `json:"applicantName"`
	OrganizationName string            `json:"organizationName"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	VehicleCount     int32             `json:"vehicleCount"`
	Status           AppointmentStatus `json:"status"`
	Bookings         []ServiceBooking  `json:"bookings"`
	CreatedAt        time.Time         `json:"createdAt"`
	Version          int32             `json:"-"`
}

// ActiveStatuses are the appointment states that consume slot capacity.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted}
