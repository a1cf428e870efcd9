package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrCategoryInvalid = errors.New("the category must be one of needs, wants, savings")

// swagger:enum Category
type Category string

const (
	Needs   Category = "needs"
	Wants   Category = "wants"
	Savings Category = "savings"
)

// Categories lists all categories in display order.
var Categories = []Category{Needs, Wants, Savings}

// ParseCategory returns the category for s.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w, got '%s'", ErrCategoryInvalid, s)
	}

	return c, nil
}

// Valid reports if c is one of the known categories.
func (c Category) Valid() bool {
	return c == Needs || c == Wants || c == Savings
}

// Scope returns the scope for the category.
func (c Category) Scope() Scope {
	return Scope(c)
}

// Scope is either a single category or the whole budget.
type Scope string

// ScopeTotal is the scope of the whole budget.
const ScopeTotal Scope = "total"

// Scopes lists the category scopes followed by the total scope.
var Scopes = []Scope{Scope(Needs), Scope(Wants), Scope(Savings), ScopeTotal}

// Category returns the category of a category scope.
// For the total scope, ok is false.
func (s Scope) Category() (c Category, ok bool) {
	c = Category(s)
	return c, c.Valid()
}

// CategoryAmounts holds one amount per category.
//
// It is used for sums of spending, allocations and percent splits.
type CategoryAmounts struct {
	Needs   decimal.Decimal `json:"needs" example:"1000"`
	Wants   decimal.Decimal `json:"wants" example:"600"`
	Savings decimal.Decimal `json:"savings" example:"400"`
}

// Get returns the amount for a category. Unknown categories are zero.
func (a CategoryAmounts) Get(c Category) decimal.Decimal {
	switch c {
	case Needs:
		return a.Needs
	case Wants:
		return a.Wants
	case Savings:
		return a.Savings
	}

	return decimal.Zero
}

// Add returns a copy of a with amount added to the category.
// Unknown categories are ignored.
func (a CategoryAmounts) Add(c Category, amount decimal.Decimal) CategoryAmounts {
	switch c {
	case Needs:
		a.Needs = a.Needs.Add(amount)
	case Wants:
		a.Wants = a.Wants.Add(amount)
	case Savings:
		a.Savings = a.Savings.Add(amount)
	}

	return a
}

// Sum returns the sum over all categories.
func (a CategoryAmounts) Sum() decimal.Decimal {
	return a.Needs.Add(a.Wants).Add(a.Savings)
}

// Equal reports whether all amounts are numerically equal.
func (a CategoryAmounts) Equal(b CategoryAmounts) bool {
	return a.Needs.Equal(b.Needs) && a.Wants.Equal(b.Wants) && a.Savings.Equal(b.Savings)
}

// Key returns a comparable representation of the amounts.
func (a CategoryAmounts) Key() [3]string {
	return [3]string{a.Needs.String(), a.Wants.String(), a.Savings.String()}
}
