package puzzle_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/hippomemory/internal/puzzle"
)

func TestDayNumberForDate_Epoch(t *testing.T) {
	cal := puzzle.MustCalendar(puzzle.DefaultEpoch, time.UTC)

	assert.Equal(t, 1, cal.DayNumberForDate(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, cal.DayNumberForDate(time.Date(2026, 1, 20, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, 2, cal.DayNumberForDate(time.Date(2026, 1, 21, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, 0, cal.DayNumberForDate(time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01-20", cal.DateForDayNumber(1))
	assert.Equal(t, "2026-03-01", cal.DateForDayNumber(41))
}

func TestDayNumber_UsesLocalCalendarDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	cal := puzzle.MustCalendar(puzzle.DefaultEpoch, tokyo)

	// 2026-01-20 16:00 UTC is already the 21st in Tokyo.
	instant := time.Date(2026, 1, 20, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, cal.DayNumberForDate(instant))
	assert.Equal(t, "2026-01-21", cal.CalendarDay(instant))
}

func TestDateForDayNumber_RoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "Europe/Berlin", "Australia/Sydney", "Pacific/Kiritimati"}

	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)
			cal := puzzle.MustCalendar(puzzle.DefaultEpoch, loc)

			start := time.Date(2025, 12, 1, 0, 30, 0, 0, loc)
			for h := 0; h < 24*800; h += 7 {
				d := start.Add(time.Duration(h) * time.Hour)
				n := cal.DayNumberForDate(d)
				assert.Equal(t, cal.CalendarDay(d), cal.DateForDayNumber(n), "instant %s", d)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	gap, err := puzzle.DaysBetween("2026-03-07", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, 2, gap)

	gap, err = puzzle.DaysBetween("2026-03-09", "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, -2, gap)

	_, err = puzzle.DaysBetween("", "2026-03-07")
	assert.Error(t, err)
}

func TestNewCalendar_RejectsBadEpoch(t *testing.T) {
	_, err := puzzle.NewCalendar("20-01-2026", nil)
	assert.Error(t, err)
}
