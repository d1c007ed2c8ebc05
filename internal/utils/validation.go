package utils

import (
	"fmt"
	"time"

	"github.com/dotr-dev/vehicle-booking/backend/internal/domain"
)

// ParseBookingDate parses a YYYY-MM-DD date string into a normalized UTC
// calendar date.
func ParseBookingDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return domain.NormalizeDate(date), nil
}

// ValidateTimeLabel checks the label against the fixed bookable set.
func ValidateTimeLabel(label string) error {
	if domain.TimeLabelIndex(label) < 0 {
		return fmt.Errorf("%q is not a bookable time", label)
	}
	return nil
}

// ValidateBookingWindow rejects dates in the past or beyond the published
// schedule horizon.
func ValidateBookingWindow(date time.Time, now time.Time, horizonDays int) error {
	today := domain.NormalizeDate(now)
	if date.Before(today) {
		return fmt.Errorf("date %s is in the past", date.Format(domain.DateFormat))
	}
	if date.After(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("date %s is beyond the %d-day booking window", date.Format(domain.DateFormat), horizonDays)
	}
	return nil
}

// DateRange expands [from, to] into the individual calendar dates,
// inclusive on both ends.
func DateRange(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
