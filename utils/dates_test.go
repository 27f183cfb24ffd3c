package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "Simple add within year",
			start:    time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
			months:   2,
			expected: time.Date(2026, 5, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "Crossing year boundary",
			start:    time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Jan 31 plus one month clamps to Feb 28",
			start:    time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "Jan 31 plus one month in a leap year clamps to Feb 29",
			start:    time.Date(2028, 1, 31, 9, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2028, 2, 29, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "Aug 31 plus six months clamps to Feb 28",
			start:    time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			months:   6,
			expected: time.Date(2027, 2, 28, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "May 31 plus one month clamps to Jun 30",
			start:    time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Twelve months lands on the same day next year",
			start:    time.Date(2026, 4, 20, 8, 15, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2027, 4, 20, 8, 15, 0, 0, time.UTC),
		},
		{
			name:     "Feb 29 plus twelve months clamps to Feb 28",
			start:    time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2029, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Zero months is identity",
			start:    time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			months:   0,
			expected: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Negative months go backwards with clamping",
			start:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			months:   -1,
			expected: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			assert.True(t, got.Equal(tt.expected), "AddMonths(%v, %d) = %v, want %v",
				tt.start, tt.months, got, tt.expected)
		})
	}
}

func TestAddMonths_PreservesClock(t *testing.T) {
	start := time.Date(2026, 1, 31, 23, 59, 58, 123456789, time.UTC)
	got := AddMonths(start, 1)

	hour, min, sec := got.Clock()
	assert.Equal(t, 23, hour)
	assert.Equal(t, 59, min)
	assert.Equal(t, 58, sec)
	assert.Equal(t, 123456789, got.Nanosecond())
}
