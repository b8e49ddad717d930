package puzzle

import (
	"fmt"
	"time"
)

// DefaultEpoch is day 1.
const DefaultEpoch = "2026-01-20"

const dateLayout = "2006-01-02"

// Calendar maps local calendar days to day numbers. Only the calendar date of
// an instant (in the calendar's location) matters, never the time of day.
type Calendar struct {
	epoch time.Time // UTC midnight of the epoch's calendar date
	loc   *time.Location
}

// NewCalendar parses epoch as YYYY-MM-DD. A nil location means time.Local.
func NewCalendar(epoch string, loc *time.Location) (*Calendar, error) {
	e, err := time.Parse(dateLayout, epoch)
	if err != nil {
		return nil, fmt.Errorf("parse epoch %q: %w", epoch, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{epoch: e, loc: loc}, nil
}

// MustCalendar is NewCalendar for fixed, known-good epochs.
func MustCalendar(epoch string, loc *time.Location) *Calendar {
	c, err := NewCalendar(epoch, loc)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// civilDay truncates t to its calendar date in the calendar's location and
// re-anchors it at UTC midnight, so day arithmetic ignores DST shifts.
func (c *Calendar) civilDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumberForDate returns the day number of t's local calendar date.
// Dates before the epoch produce numbers below 1.
func (c *Calendar) DayNumberForDate(t time.Time) int {
	diff := c.civilDay(t).Sub(c.epoch)
	return int(diff/(24*time.Hour)) + 1
}

// DateForDayNumber returns the calendar date of day n as YYYY-MM-DD.
func (c *Calendar) DateForDayNumber(n int) string {
	return c.epoch.AddDate(0, 0, n-1).Format(dateLayout)
}

// CalendarDay formats t's local calendar date as YYYY-MM-DD.
func (c *Calendar) CalendarDay(t time.Time) string {
	return c.civilDay(t).Format(dateLayout)
}

// DaysBetween returns the whole number of days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
	from, err := time.Parse(dateLayout, a)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", a, err)
	}
	to, err := time.Parse(dateLayout, b)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", b, err)
	}
	return int(to.Sub(from) / (24 * time.Hour)), nil
}
