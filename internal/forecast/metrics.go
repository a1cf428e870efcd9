package forecast

import (
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MinElapsedDays is the number of elapsed days before averages are computed.
// Extrapolating from one or two days is too noisy.
const MinElapsedDays = 3

// Metrics are the forward-looking figures of a period.
type Metrics struct {
	AvgDailySpend   PerScope[decimal.NullDecimal]       `json:"avgDailySpend"`
	ProjectedTotal  PerScope[decimal.NullDecimal]       `json:"projectedTotal"`
	Burn            PerScope[decimal.NullDecimal]       `json:"burn"`
	Pace            decimal.NullDecimal                 `json:"pace" example:"0.5"`
	RemainingPerDay PerScope[decimal.NullDecimal]       `json:"remainingPerDay"`
	DaysToZero      PerScope[types.Optional[int]]       `json:"daysToZero"`
	RunOutDate      PerScope[types.Optional[types.Day]] `json:"runOutDate"`
}

// Compute derives the metrics for the totals at the window's point in time.
func Compute(t Totals, w period.Window) Metrics {
	m := Metrics{
		Pace: Pace(w),
	}

	for _, s := range types.Scopes {
		line := t.Get(s)
		avg := avgDaily(line.Spent, w.DaysElapsed)

		m.AvgDailySpend.set(s, round(avg, moneyPlaces))
		m.ProjectedTotal.set(s, projected(line.Spent, w.DaysElapsed, w.TotalDays))
		m.Burn.set(s, Burn(line))
		m.RemainingPerDay.set(s, RemainingPerDay(line.Remaining, w.DaysLeft))

		days := DaysToZero(line.Remaining, line.Spent, w.DaysElapsed)
		m.DaysToZero.set(s, days)
		m.RunOutDate.set(s, RunOutDate(w, days))
	}

	return m
}

// Pace returns the share of the period that has elapsed.
func Pace(w period.Window) decimal.NullDecimal {
	if w.TotalDays <= 0 {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(decimal.NewFromInt(int64(w.DaysElapsed)).DivRound(decimal.NewFromInt(int64(w.TotalDays)), ratioPlaces))
}

// Burn returns the share of the allocation that has been spent.
func Burn(l Line) decimal.NullDecimal {
	if !l.Alloc.IsPositive() {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(l.Spent.DivRound(l.Alloc, ratioPlaces))
}

// RemainingPerDay returns how much can be spent per day for the rest of the
// period. On the last day of the period and for past periods it is unknown.
func RemainingPerDay(remaining decimal.Decimal, daysLeft int) decimal.NullDecimal {
	if daysLeft <= 0 {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(remaining.DivRound(decimal.NewFromInt(int64(daysLeft)), moneyPlaces))
}

// DaysToZero returns the number of days until the remaining amount is used
// up at the average daily spend, rounded up.
//
// The result is the exact ceiling of remaining * daysElapsed / spent, the
// average itself is never divided out.
func DaysToZero(remaining, spent decimal.Decimal, daysElapsed int) types.Optional[int] {
	if !remaining.IsPositive() || !spent.IsPositive() || daysElapsed < MinElapsedDays {
		return types.None[int]()
	}

	q, r := remaining.Mul(decimal.NewFromInt(int64(daysElapsed))).QuoRem(spent, 0)
	days := q.IntPart()
	if r.IsPositive() {
		days++
	}

	return types.Some(int(days))
}

// RunOutDate returns the day the money runs out, no later than the period end.
func RunOutDate(w period.Window, days types.Optional[int]) types.Optional[types.Day] {
	n, ok := days.Get()
	if !ok {
		return types.None[types.Day]()
	}

	d := w.Today().AddDays(n)
	if d.After(w.PeriodEnd) {
		d = w.PeriodEnd
	}

	return types.Some(d)
}

// avgDaily returns the unrounded average daily spend.
func avgDaily(spent decimal.Decimal, daysElapsed int) decimal.NullDecimal {
	if daysElapsed < MinElapsedDays {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(spent.Div(decimal.NewFromInt(int64(daysElapsed))))
}

// projected returns spent * totalDays / daysElapsed in money precision.
func projected(spent decimal.Decimal, daysElapsed, totalDays int) decimal.NullDecimal {
	if daysElapsed < MinElapsedDays {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(spent.Mul(decimal.NewFromInt(int64(totalDays))).DivRound(decimal.NewFromInt(int64(daysElapsed)), moneyPlaces))
}

func round(d decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !d.Valid {
		return d
	}

	return decimal.NewNullDecimal(d.Decimal.Round(places))
}
