// Package period converts between calendar dates, period keys and the
// half-open date ranges of billing periods.
//
// A billing period is one calendar month long and starts on a configurable
// day of the month, the start day. Every function in this package is pure.
package period

import (
	"time"

	"github.com/pacebudget/backend/internal/types"
)

const (
	MinStartDay = 1
	MaxStartDay = 28

	// Periods starting after this day are labeled with the month they end in.
	labelByEndAfter = 15
)

// Range is the half-open interval [Start, End) of a billing period.
type Range struct {
	Start     types.Day `json:"start" example:"2024-05-25"`
	End       types.Day `json:"end" example:"2024-06-25"` // Exclusive
	TotalDays int       `json:"totalDays" example:"31"`
}

// Contains reports whether the day is in the range.
func (r Range) Contains(d types.Day) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// ClampStartDay forces a start day into [MinStartDay, MaxStartDay].
func ClampStartDay(startDay int) int {
	return max(MinStartDay, min(MaxStartDay, startDay))
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// anchorIn returns the start day of the period in the given month. The day
// is clamped to the month length instead of rolling over into the next month.
func anchorIn(year int, month time.Month, startDay int) types.Day {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	y, m, _ := t.Date()
	return types.NewDay(y, m, min(startDay, daysIn(y, m)))
}

// Bounds returns the period containing the anchor date.
//
// The period starts on the most recent date with the start day as day of
// month that is not after the anchor and ends on the same day one calendar
// month later.
func Bounds(anchor time.Time, startDay int) Range {
	startDay = ClampStartDay(startDay)
	day := types.DayOf(anchor)
	year, month, _ := day.Time().Date()

	start := anchorIn(year, month, startDay)
	if day.Before(start) {
		start = anchorIn(year, month-1, startDay)
	}

	sy, sm, _ := start.Time().Date()
	end := anchorIn(sy, sm+1, startDay)

	return Range{
		Start:     start,
		End:       end,
		TotalDays: start.DaysUntil(end),
	}
}

// MonthKeyFromDate returns the key of the period containing the date.
//
// Periods starting after the 15th are labeled with the year and month of
// their end boundary, all others with the year and month of their start.
// A period from May 25th to June 25th therefore is "2024-06", while a period
// from May 5th to June 5th is "2024-05".
func MonthKeyFromDate(date time.Time, startDay int) types.Month {
	startDay = ClampStartDay(startDay)
	r := Bounds(date, startDay)

	if startDay > labelByEndAfter {
		return types.MonthOf(r.End.Time())
	}
	return types.MonthOf(r.Start.Time())
}

// RepresentativeDate returns a date that is inside the period labeled with key.
func RepresentativeDate(key types.Month, startDay int) time.Time {
	startDay = ClampStartDay(startDay)

	day := 1
	if startDay <= labelByEndAfter {
		day = min(MaxStartDay, startDay+1)
	}

	return time.Date(key.Year(), key.Month(), day, 0, 0, 0, 0, time.UTC)
}

// RangeOf returns the range of the period labeled with key.
func RangeOf(key types.Month, startDay int) Range {
	return Bounds(RepresentativeDate(key, startDay), startDay)
}

// MonthKeyAdd moves the key by delta periods. delta may be negative.
func MonthKeyAdd(key types.Month, startDay int, delta int) types.Month {
	return MonthKeyFromDate(RepresentativeDate(key, startDay).AddDate(0, delta, 0), startDay)
}

// NextMonthKey returns the key of the period following key.
func NextMonthKey(key types.Month, startDay int) types.Month {
	return MonthKeyAdd(key, startDay, 1)
}

// PrevMonthKey returns the key of the period preceding key.
func PrevMonthKey(key types.Month, startDay int) types.Month {
	return MonthKeyAdd(key, startDay, -1)
}
