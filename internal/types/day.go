package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Day is a calendar-day key. The time of day and the location are dropped,
// a Day is always 00:00 UTC so it can be compared and used as a map key.
type Day time.Time

// NewDay returns the Day for a calendar date.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day on which t occurs in t's location.
func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	return NewDay(year, month, day)
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Day{}, err
	}

	return DayOf(t), nil
}

// Time returns the day as a time.Time at 00:00 UTC.
func (d Day) Time() time.Time {
	return time.Time(d)
}

// String returns the day formatted as YYYY-MM-DD.
func (d Day) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// AddDays returns the day n days after d. n may be negative.
func (d Day) AddDays(n int) Day {
	return Day(time.Time(d).AddDate(0, 0, n))
}

// DaysUntil returns the number of whole days from d to e.
func (d Day) DaysUntil(e Day) int {
	return int(time.Time(e).Sub(time.Time(d)).Hours() / 24)
}

// Before reports whether d is before e.
func (d Day) Before(e Day) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether d is after e.
func (d Day) After(e Day) bool {
	return time.Time(d).After(time.Time(e))
}

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Day) Compare(e Day) int {
	return time.Time(d).Compare(time.Time(e))
}

// IsZero reports if the day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON marshals the day in YYYY-MM-DD format.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD and RFC3339 strings.
func (d *Day) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			*d = DayOf(t)
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as a day", value)
}
