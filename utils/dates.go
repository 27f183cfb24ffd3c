package utils

import (
	"time"
)

// AddMonths adds n calendar months to t, clamping to the last day of the
// target month. time.AddDate alone normalizes overflow (Jan 31 + 1 month
// becomes Mar 2 or Mar 3), which is wrong for warranty and follow-up
// dates; Jan 31 + 1 month must land in February.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// First day of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(n), 1, hour, min, sec, t.Nanosecond(), t.Location())
	last := daysInMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
