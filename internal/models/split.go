package models

import (
	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// splitTolerance is the amount a percent split may exceed 1 by.
var splitTolerance = decimal.RequireFromString("0.001")

// PercentSplit is the share of the income allocated to each category.
//
// The split does not need to sum to 1. The unallocated share is not
// assigned to any category.
type PercentSplit struct {
	Needs   decimal.Decimal `json:"needs" gorm:"type:DECIMAL(20,8)" example:"0.5"`
	Wants   decimal.Decimal `json:"wants" gorm:"type:DECIMAL(20,8)" example:"0.3"`
	Savings decimal.Decimal `json:"savings" gorm:"type:DECIMAL(20,8)" example:"0.2"`
}

// DefaultPercentSplit is the 50/30/20 rule.
func DefaultPercentSplit() PercentSplit {
	return PercentSplit{
		Needs:   decimal.RequireFromString("0.5"),
		Wants:   decimal.RequireFromString("0.3"),
		Savings: decimal.RequireFromString("0.2"),
	}
}

// Amounts returns the split as category amounts.
func (p PercentSplit) Amounts() types.CategoryAmounts {
	return types.CategoryAmounts{
		Needs:   p.Needs,
		Wants:   p.Wants,
		Savings: p.Savings,
	}
}

// Allocate returns the allocations for an income.
func (p PercentSplit) Allocate(income decimal.Decimal) types.CategoryAmounts {
	return forecast.Allocate(income, p.Amounts())
}

// Validate checks that no share is negative and the shares do not
// sum to more than 1.
func (p PercentSplit) Validate() error {
	a := p.Amounts()
	for _, c := range types.Categories {
		if a.Get(c).IsNegative() {
			return ErrPercentSplitInvalid
		}
	}

	if a.Sum().GreaterThan(decimal.NewFromInt(1).Add(splitTolerance)) {
		return ErrPercentSplitInvalid
	}

	return nil
}
