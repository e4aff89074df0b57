package domain

import (
	"fmt"
	"time"
)

// WeekKeyLayout is the date format of a week key
const WeekKeyLayout = "2006-01-02"

// WeekStart returns midnight on the Monday of the week containing t
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -DayIndex(day))
}

// WeekKey returns the key of the week containing t
func WeekKey(t time.Time) string {
	return WeekStart(t).Format(WeekKeyLayout)
}

// DayIndex maps a date onto the Monday-first column index (Mon=0..Sun=6)
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ShiftWeek moves a week anchor by deltaDays and re-anchors to Monday
func ShiftWeek(start time.Time, deltaDays int) time.Time {
	return WeekStart(start.AddDate(0, 0, deltaDays))
}

// DayDate returns the calendar date of a column in the week starting at start
func DayDate(start time.Time, day int) time.Time {
	return start.AddDate(0, 0, day)
}

// ParseWeekKey parses a YYYY-MM-DD string.
// The date does not need to be a Monday; callers anchor it with WeekStart.
func ParseWeekKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(WeekKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekKey, s)
	}
	return t, nil
}

// ParseDay validates a weekday column index
func ParseDay(day int) error {
	if day < 0 || day >= DaysPerWeek {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}
