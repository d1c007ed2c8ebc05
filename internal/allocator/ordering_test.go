package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

var serviceOrder = []string{
	string(domain.ServiceWeighing),
	string(domain.ServiceInspection),
	string(domain.ServiceRegistration),
}

func TestValidateOrdering(t *testing.T) {
	a := New(domain.TimeLabels)

	tests := []struct {
		name     string
		bookings map[string][]BookingSlot
		want     *OrderingViolation
	}{
		{
			name: "same slot same day fails",
			bookings: map[string][]BookingSlot{
				"weighing":   {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2}},
				"inspection": {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2}},
			},
			want: &OrderingViolation{Service: "inspection", SlotIndex: 0, Reason: ReasonSameDayNotAfter},
		},
		{
			name: "later same-day slot passes",
			bookings: map[string][]BookingSlot{
				"weighing":   {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2}},
				"inspection": {{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 2}},
			},
			want: nil,
		},
		{
			name: "earlier same-day slot fails",
			bookings: map[string][]BookingSlot{
				"weighing":   {{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 2}},
				"inspection": {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 2}},
			},
			want: &OrderingViolation{Service: "inspection", SlotIndex: 0, Reason: ReasonSameDayNotAfter},
		},
		{
			name: "earlier date fails",
			bookings: map[string][]BookingSlot{
				"weighing":   {{Date: date(11), TimeLabel: "08:30 AM", VehicleCount: 2}},
				"inspection": {{Date: date(10), TimeLabel: "03:30 PM", VehicleCount: 2}},
			},
			want: &OrderingViolation{Service: "inspection", SlotIndex: 0, Reason: ReasonEarlierDate},
		},
		{
			name: "later date passes regardless of time",
			bookings: map[string][]BookingSlot{
				"weighing":   {{Date: date(10), TimeLabel: "03:30 PM", VehicleCount: 2}},
				"inspection": {{Date: date(11), TimeLabel: "08:30 AM", VehicleCount: 2}},
			},
			want: nil,
		},
		{
			name: "absent middle service pairs the remaining two",
			bookings: map[string][]BookingSlot{
				"weighing":     {{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 1}},
				"registration": {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 1}},
			},
			want: &OrderingViolation{Service: "registration", SlotIndex: 0, Reason: ReasonSameDayNotAfter},
		},
		{
			name: "single service is always valid",
			bookings: map[string][]BookingSlot{
				"inspection": {{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 5}},
			},
			want: nil,
		},
		{
			name: "violation at second positional pair",
			bookings: map[string][]BookingSlot{
				"weighing": {
					{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 4},
					{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 4},
				},
				"inspection": {
					{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 4},
					{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 4},
				},
			},
			want: &OrderingViolation{Service: "inspection", SlotIndex: 1, Reason: ReasonSameDayNotAfter},
		},
		{
			name: "unsorted input is sorted before pairing",
			bookings: map[string][]BookingSlot{
				"weighing": {
					{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 1},
					{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 1},
				},
				"inspection": {
					{Date: date(10), TimeLabel: "11:30 AM", VehicleCount: 1},
					{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 1},
				},
			},
			want: nil,
		},
		{
			name: "mismatched counts check only shared positions",
			bookings: map[string][]BookingSlot{
				"weighing": {
					{Date: date(10), TimeLabel: "08:30 AM", VehicleCount: 4},
					{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 4},
					{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 4},
				},
				"inspection": {
					{Date: date(10), TimeLabel: "09:30 AM", VehicleCount: 6},
					{Date: date(10), TimeLabel: "10:30 AM", VehicleCount: 6},
				},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.ValidateOrdering(tt.bookings, serviceOrder)
			require.Equal(t, tt.want, got)
		})
	}
}
