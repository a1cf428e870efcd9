package ledger

import (
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DayTotals is the spending on a single day.
type DayTotals struct {
	Total decimal.Decimal `json:"total" example:"42.10"`
	types.CategoryAmounts
}

// DailyIndex holds the spending per day over the full transaction history.
type DailyIndex struct {
	days map[types.Day]DayTotals
}

// BuildDailyIndex builds the index in a single pass over the transactions.
func BuildDailyIndex(txns []Transaction) DailyIndex {
	days := make(map[types.Day]DayTotals)
	for _, t := range txns {
		if !t.Category.Valid() {
			continue
		}

		d := days[t.Day]
		d.Total = d.Total.Add(t.Amount)
		d.CategoryAmounts = d.CategoryAmounts.Add(t.Category, t.Amount)
		days[t.Day] = d
	}

	return DailyIndex{days: days}
}

// At returns the spending on a day. Days without spending are zero.
func (i DailyIndex) At(d types.Day) DayTotals {
	return i.days[d]
}

// AtCategory returns the spending in one category on a day.
func (i DailyIndex) AtCategory(d types.Day, c types.Category) decimal.Decimal {
	return i.days[d].Get(c)
}

// Days returns all days with spending in ascending order.
func (i DailyIndex) Days() []types.Day {
	days := maps.Keys(i.days)
	slices.SortFunc(days, func(a, b types.Day) int {
		return a.Compare(b)
	})

	return days
}

// Len returns the number of days with spending.
func (i DailyIndex) Len() int {
	return len(i.days)
}

// SeriesPoint is one day of the daily spending chart.
type SeriesPoint struct {
	Day        types.Day       `json:"date" example:"2024-06-03"`
	Spent      decimal.Decimal `json:"spent" example:"42.10"`
	Cumulative decimal.Decimal `json:"cumulative" example:"311.45"`
	DayTotals  DayTotals       `json:"byCategory"`
}

// Series returns one point for every day in the range, days without
// spending are zero.
func Series(index DailyIndex, r period.Range) []SeriesPoint {
	out := make([]SeriesPoint, 0, r.TotalDays)
	cumulative := decimal.Zero

	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		totals := index.At(d)
		cumulative = cumulative.Add(totals.Total)
		out = append(out, SeriesPoint{
			Day:        d,
			Spent:      totals.Total,
			Cumulative: cumulative,
			DayTotals:  totals,
		})
	}

	return out
}

// Share is the part of the spending that falls into one category.
type Share struct {
	Category types.Category      `json:"category" example:"wants"`
	Amount   decimal.Decimal     `json:"amount" example:"180"`
	Share    decimal.NullDecimal `json:"share" example:"0.3"` // Unknown when nothing was spent
}

// Distribution returns the share of each category in the total spending.
func Distribution(totals types.CategoryAmounts) []Share {
	sum := totals.Sum()

	out := make([]Share, 0, len(types.Categories))
	for _, c := range types.Categories {
		s := Share{Category: c, Amount: totals.Get(c)}
		if sum.IsPositive() {
			s.Share = decimal.NewNullDecimal(s.Amount.DivRound(sum, 4))
		}
		out = append(out, s)
	}

	return out
}
