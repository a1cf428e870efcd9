// Package forecast derives burn, pace and projections from period totals.
//
// Every ratio is guarded: where a ratio cannot be computed, the result is
// unknown (an invalid decimal.NullDecimal or types.Optional), never NaN or
// infinity. Money is rounded to two decimal places, ratios to four.
package forecast

import (
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2
	ratioPlaces = 4
)

// PerScope holds one value for every category and one for the whole budget.
type PerScope[T any] struct {
	Needs   T `json:"needs"`
	Wants   T `json:"wants"`
	Savings T `json:"savings"`
	Total   T `json:"total"`
}

// Get returns the value for a scope.
func (p PerScope[T]) Get(s types.Scope) T {
	switch s {
	case types.Scope(types.Needs):
		return p.Needs
	case types.Scope(types.Wants):
		return p.Wants
	case types.Scope(types.Savings):
		return p.Savings
	}

	return p.Total
}

func (p *PerScope[T]) set(s types.Scope, v T) {
	switch s {
	case types.Scope(types.Needs):
		p.Needs = v
	case types.Scope(types.Wants):
		p.Wants = v
	case types.Scope(types.Savings):
		p.Savings = v
	default:
		p.Total = v
	}
}

// Line is the budget state of one scope.
type Line struct {
	Alloc     decimal.Decimal `json:"alloc" example:"600"`
	Spent     decimal.Decimal `json:"spent" example:"212.50"`
	Remaining decimal.Decimal `json:"remaining" example:"387.50"` // Never negative
}

func newLine(alloc, spent decimal.Decimal) Line {
	return Line{
		Alloc:     alloc,
		Spent:     spent,
		Remaining: decimal.Max(decimal.Zero, alloc.Sub(spent)),
	}
}

// Totals are the budget lines of all scopes.
type Totals = PerScope[Line]

// NewTotals combines allocations and spending into budget lines.
func NewTotals(alloc, spent types.CategoryAmounts) Totals {
	var t Totals
	for _, c := range types.Categories {
		t.set(c.Scope(), newLine(alloc.Get(c), spent.Get(c)))
	}
	t.Total = newLine(alloc.Sum(), spent.Sum())

	return t
}

// Allocate splits the income by the percent split.
//
// Every category is rounded to two decimal places on its own. The sum of the
// allocations can differ from the income by the rounding error, this is not
// corrected.
func Allocate(income decimal.Decimal, split types.CategoryAmounts) types.CategoryAmounts {
	var a types.CategoryAmounts
	for _, c := range types.Categories {
		a = a.Add(c, income.Mul(split.Get(c)).Round(moneyPlaces))
	}

	return a
}
