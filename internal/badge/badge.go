// Package badge derives compact status tags from the budget panels.
package badge

import (
	"fmt"

	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Kind is the severity of a badge.
type Kind string

const (
	Danger  Kind = "danger"
	Warn    Kind = "warn"
	Info    Kind = "info"
	Success Kind = "success"
)

// Badge is a threshold-only status tag.
type Badge struct {
	ID    string      `json:"id" example:"wants-over"`
	Kind  Kind        `json:"kind" example:"danger"`
	Scope types.Scope `json:"scope" example:"wants"`
}

// For returns the badges of the categories in display order, followed by
// the badge for the whole budget. The list is capped at t.Limit entries.
func For(panels forecast.PerScope[forecast.Panel], pace decimal.NullDecimal, t tuning.Badge) []Badge {
	badges := make([]Badge, 0, len(types.Scopes))

	for _, c := range types.Categories {
		if b, ok := category(panels.Get(c.Scope()), pace, t); ok {
			badges = append(badges, b)
		}
	}

	if b, ok := total(panels.Total, pace, t); ok {
		badges = append(badges, b)
	}

	if len(badges) > t.Limit {
		badges = badges[:max(0, t.Limit)]
	}

	return badges
}

// category evaluates the badge rules of a single category in priority order.
func category(p forecast.Panel, pace decimal.NullDecimal, t tuning.Badge) (Badge, bool) {
	margin := decimal.NewFromFloat(t.PaceMargin)
	paced := p.Burn.Valid && pace.Valid

	switch {
	case p.Alloc.IsPositive() && p.Spent.GreaterThanOrEqual(p.Alloc),
		p.Alloc.IsZero() && p.Spent.IsPositive(),
		paced && p.Burn.Decimal.GreaterThan(pace.Decimal.Add(margin)):
		return newBadge(p.Scope, "over", Danger), true

	case p.Burn.Valid && p.Burn.Decimal.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(decimal.NewFromFloat(t.NearBurn)),
		p.Alloc.IsPositive() && p.Remaining.Div(p.Alloc).LessThanOrEqual(decimal.NewFromFloat(t.NearRemaining)):
		return newBadge(p.Scope, "near", Warn), true

	case paced && p.Burn.Decimal.LessThan(pace.Decimal.Sub(margin)):
		return newBadge(p.Scope, "under", Success), true
	}

	return Badge{}, false
}

func total(p forecast.Panel, pace decimal.NullDecimal, t tuning.Badge) (Badge, bool) {
	if !p.Burn.Valid || !pace.Valid {
		return Badge{}, false
	}

	margin := decimal.NewFromFloat(t.PaceMargin)
	switch {
	case p.Burn.Decimal.GreaterThan(pace.Decimal.Add(margin)):
		return newBadge(types.ScopeTotal, "high-burn", Danger), true
	case p.Burn.Decimal.LessThan(pace.Decimal.Sub(margin)):
		return newBadge(types.ScopeTotal, "under-pace", Success), true
	}

	return Badge{}, false
}

func newBadge(scope types.Scope, name string, kind Kind) Badge {
	return Badge{
		ID:    fmt.Sprintf("%s-%s", scope, name),
		Kind:  kind,
		Scope: scope,
	}
}
