package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/fincalc/num"
)

// DateLayout is the only date format accepted at the engine boundary.
const DateLayout = "2006-01-02"

// ParseDate converts YYYY-MM-DD to a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: %v: %w", err, num.ErrInvalidInput)
	}
	return t, nil
}

// CivilDate drops the clock and zone of t, keeping its calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days from start to end (ACT).
func Days(start, end time.Time) int {
	return int(CivilDate(end).Sub(CivilDate(start)).Hours() / 24)
}

// AddMonth behaves like Excel's EDATE: the day of month is kept when the
// target month has it, otherwise it is clamped to the month's last day.
func AddMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
