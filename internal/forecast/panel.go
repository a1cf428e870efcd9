package forecast

import (
	"time"

	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Panel is the state of one scope as shown on the dashboard.
type Panel struct {
	Scope           types.Scope               `json:"scope" example:"wants"`
	Alloc           decimal.Decimal           `json:"alloc" example:"600"`
	Spent           decimal.Decimal           `json:"spent" example:"212.50"`
	Remaining       decimal.Decimal           `json:"remaining" example:"387.50"`
	Burn            decimal.NullDecimal       `json:"burn" example:"0.3542"`
	AvgDailySpend   decimal.NullDecimal       `json:"avgDailySpend" example:"21.25"`
	ProjectedTotal  decimal.NullDecimal       `json:"projectedTotal" example:"658.75"`
	RemainingPerDay decimal.NullDecimal       `json:"remainingPerDay" example:"18.45"`
	NormalPerDay    decimal.NullDecimal       `json:"normalPerDay" example:"19.35"` // Allocation spread evenly over the period
	DaysToZero      types.Optional[int]       `json:"daysToZero" example:"19"`
	RunOutDate      types.Optional[types.Day] `json:"runOutDate" example:"2024-06-22"`
}

// Panels assembles the panel of every scope.
func Panels(t Totals, m Metrics, w period.Window) PerScope[Panel] {
	var p PerScope[Panel]
	for _, s := range types.Scopes {
		line := t.Get(s)
		p.set(s, Panel{
			Scope:           s,
			Alloc:           line.Alloc,
			Spent:           line.Spent,
			Remaining:       line.Remaining,
			Burn:            m.Burn.Get(s),
			AvgDailySpend:   m.AvgDailySpend.Get(s),
			ProjectedTotal:  m.ProjectedTotal.Get(s),
			RemainingPerDay: m.RemainingPerDay.Get(s),
			NormalPerDay:    NormalPerDay(line.Alloc, w.TotalDays),
			DaysToZero:      m.DaysToZero.Get(s),
			RunOutDate:      m.RunOutDate.Get(s),
		})
	}

	return p
}

// NormalPerDay is the daily spend that uses up the allocation exactly at the
// end of the period.
func NormalPerDay(alloc decimal.Decimal, totalDays int) decimal.NullDecimal {
	if !alloc.IsPositive() || totalDays <= 0 {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(alloc.DivRound(decimal.NewFromInt(int64(totalDays)), moneyPlaces))
}

// Summary is the snapshot of a period that is stored with the period document.
type Summary struct {
	TotalSpent  decimal.Decimal       `json:"totalSpent" example:"1204.17"`
	Spent       types.CategoryAmounts `json:"spent"`
	TotalTxns   int                   `json:"totalTxns" example:"42"`
	Income      decimal.Decimal       `json:"income" example:"2000"`
	Allocations types.CategoryAmounts `json:"allocations"`
	ComputedAt  time.Time             `json:"computedAt" example:"2024-06-03T10:00:00Z"`
}

// Summarize builds the snapshot.
//
// count is the number of transactions in the period. TotalSpent is the sum
// of the per-category totals so that the snapshot is always consistent.
func Summarize(spent types.CategoryAmounts, count int, income decimal.Decimal, split types.CategoryAmounts, now time.Time) Summary {
	return Summary{
		TotalSpent:  spent.Sum(),
		Spent:       spent,
		TotalTxns:   count,
		Income:      income,
		Allocations: Allocate(income, split),
		ComputedAt:  now.UTC(),
	}
}
