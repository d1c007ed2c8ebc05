package domain

import "time"

const DateFormat = "2006-01-02"

// TimeLabels is the fixed ordered set of bookable time-of-day labels.
// Slots are totally ordered by (date, position in this list); the labels
// themselves are opaque strings as far as ordering is concerned.
var TimeLabels = []string{
	"08:30 AM",
	"09:30 AM",
	"10:30 AM",
	"11:30 AM",
	"01:30 PM",
	"02:30 PM",
	"03:30 PM",
}

var timeLabelIndex = func() map[string]int {
	m := make(map[string]int, len(TimeLabels))
	for i, label := range TimeLabels {
		m[label] = i
	}
	return m
}()

// TimeLabelIndex returns the position of label in TimeLabels, or -1 when
// the label is not a bookable time.
func TimeLabelIndex(label string) int {
	if i, ok := timeLabelIndex[label]; ok {
		return i
	}
	return -1
}

// NormalizeDate truncates t to its calendar date at UTC midnight so dates
// coming from different sources compare equal.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
