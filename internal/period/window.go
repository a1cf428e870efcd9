package period

import (
	"time"

	"github.com/pacebudget/backend/internal/types"
)

// Source tells how the bounds of a period are determined.
//
// It is either Frozen, for periods that stored their bounds on creation, or
// Recomputed for legacy periods without stored bounds.
type Source interface {
	startDay() int
	rangeFor(key types.Month) Range
}

// Frozen uses the bounds stored with the period document.
type Frozen struct {
	StartDay int
	Start    types.Day
	End      types.Day
}

func (f Frozen) startDay() int {
	return f.StartDay
}

func (f Frozen) rangeFor(_ types.Month) Range {
	return Range{Start: f.Start, End: f.End, TotalDays: max(0, f.Start.DaysUntil(f.End))}
}

// Recomputed derives the bounds from the start day in the current settings.
//
// Historical periods whose document lacks frozen bounds shift when the user
// changes the start day. The window reports this with Recomputed = true.
type Recomputed struct {
	StartDay int
}

func (r Recomputed) startDay() int {
	return ClampStartDay(r.StartDay)
}

func (r Recomputed) rangeFor(key types.Month) Range {
	return RangeOf(key, r.StartDay)
}

// Window is the position of a point in time relative to a period.
type Window struct {
	Key         types.Month `json:"month" example:"2024-06"`
	Now         time.Time   `json:"now" example:"2024-06-03T10:00:00Z"`
	PeriodStart types.Day   `json:"periodStart" example:"2024-05-25"`
	PeriodEnd   types.Day   `json:"periodEnd" example:"2024-06-25"` // Exclusive
	StartDay    int         `json:"startDay" example:"25"`
	TotalDays   int         `json:"totalDays" example:"31"`
	DaysElapsed int         `json:"daysElapsed" example:"10"`   // Days since the period start, including the current day
	DaysLeft    int         `json:"daysLeft" example:"21"`      // Days after the current day until the period end
	Recomputed  bool        `json:"recomputed" example:"false"` // The bounds were recomputed from the current settings
}

// Today returns the calendar day of Now.
func (w Window) Today() types.Day {
	return types.DayOf(w.Now)
}

// Range returns the range of the window's period.
func (w Window) Range() Range {
	return Range{Start: w.PeriodStart, End: w.PeriodEnd, TotalDays: w.TotalDays}
}

// StartDayOf returns the start day the bounds of a source are based on.
func StartDayOf(source Source) int {
	return source.startDay()
}

// RangeFor returns the range of the period labeled key.
func RangeFor(source Source, key types.Month) Range {
	return source.rangeFor(key)
}

// WindowFor computes the window of the period labeled key at now.
//
// DaysElapsed counts the current day as elapsed. For a period in the future
// it is 0, for a past period it is TotalDays. TotalDays always is the sum of
// DaysElapsed and DaysLeft.
func WindowFor(source Source, key types.Month, now time.Time) Window {
	r := source.rangeFor(key)
	_, recomputed := source.(Recomputed)

	today := types.DayOf(now)
	var elapsed int
	switch {
	case today.Before(r.Start):
		elapsed = 0
	case !today.Before(r.End):
		elapsed = r.TotalDays
	default:
		elapsed = r.Start.DaysUntil(today) + 1
	}

	return Window{
		Key:         key,
		Now:         now,
		PeriodStart: r.Start,
		PeriodEnd:   r.End,
		StartDay:    source.startDay(),
		TotalDays:   r.TotalDays,
		DaysElapsed: elapsed,
		DaysLeft:    r.TotalDays - elapsed,
		Recomputed:  recomputed,
	}
}
