package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBookingDate(t *testing.T) {
	date, err := ParseBookingDate("2026-01-10")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseBookingDate("10/01/2026")
	require.Error(t, err)
}

func TestValidateTimeLabel(t *testing.T) {
	require.NoError(t, ValidateTimeLabel("08:30 AM"))
	require.Error(t, ValidateTimeLabel("12:30 PM"))
	require.Error(t, ValidateTimeLabel(""))
}

func TestValidateBookingWindow(t *testing.T) {
	now := time.Date(2026, time.January, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{name: "today", date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{name: "inside horizon", date: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday", date: time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "past horizon", date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingWindow(tt.date, now, 30)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	from := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

	dates := DateRange(from, to)
	require.Len(t, dates, 3)
	require.Equal(t, from, dates[0])
	require.Equal(t, to, dates[2])

	require.Len(t, DateRange(from, from), 1)
	require.Empty(t, DateRange(to, from))
}

func TestGenerateReferenceCode(t *testing.T) {
	code := GenerateReferenceCode()
	require.Len(t, code, 12)
	require.Equal(t, "VB-", code[:3])
	require.Equal(t, byte('-'), code[7])
}
