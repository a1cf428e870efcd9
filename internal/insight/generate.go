package insight

import (
	"fmt"
	"math"

	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Input is everything the generators look at for one scope.
type Input struct {
	Panel  forecast.Panel
	Pace   decimal.NullDecimal
	Window period.Window
}

// Dashboard returns the insights for the whole budget.
func Dashboard(panel forecast.Panel, pace decimal.NullDecimal, w period.Window, t tuning.Insight, limit int) []Insight {
	panel.Scope = types.ScopeTotal
	return Rank(Score(Generate(Input{Panel: panel, Pace: pace, Window: w}, t), t), limit)
}

// ForCategory returns the insights for one category. Every insight carries
// the category in its vars.
func ForCategory(panel forecast.Panel, category types.Category, pace decimal.NullDecimal, w period.Window, t tuning.Insight, limit int) []Insight {
	panel.Scope = category.Scope()

	candidates := Generate(Input{Panel: panel, Pace: pace, Window: w}, t)
	for i := range candidates {
		candidates[i].Vars["category"] = category
	}

	return Rank(Score(candidates, t), limit)
}

// Generate returns the candidates of every concern in a fixed order.
func Generate(in Input, t tuning.Insight) []Candidate {
	p := in.Panel
	w := in.Window
	early := w.DaysElapsed > 0 && w.DaysElapsed < t.EarlyDays

	var candidates []Candidate
	add := func(key Key, tone Tone, group string, hint float64, cta string, vars map[string]any) {
		if vars == nil {
			vars = map[string]any{}
		}
		vars["scope"] = p.Scope

		candidates = append(candidates, Candidate{
			Insight: Insight{
				ID:        fmt.Sprintf("%s-%s", p.Scope, key),
				Tone:      tone,
				Key:       key,
				Vars:      vars,
				CTATarget: cta,
				Group:     group,
			},
			Hint: hint,
		})
	}

	if !p.Alloc.IsPositive() {
		tone := Info
		if p.Scope == types.ScopeTotal {
			tone = Warn
		}
		add(KeyNoBudget, tone, GroupBudget, 0, settingsTarget(w.Key), nil)
	}

	if early {
		add(KeyEarly, Muted, GroupEarly, 0, "", map[string]any{
			"days":      w.DaysElapsed,
			"totalDays": w.TotalDays,
		})
	}

	if p.Alloc.IsPositive() && p.Spent.IsZero() && w.DaysElapsed > 0 {
		add(KeyNoSpend, Info, GroupPace, 0, "/transactions/new", nil)
	}

	// Must precede the pace tiers, ties keep the first candidate
	if p.Alloc.IsPositive() && p.Spent.GreaterThan(p.Alloc) {
		d := 0.0
		if p.Burn.Valid && in.Pace.Valid {
			d = p.Burn.Decimal.Sub(in.Pace.Decimal).InexactFloat64()
		}
		add(KeyOverspent, Danger, GroupPace, d, scopeTarget(p.Scope), map[string]any{
			"amount": p.Spent.Sub(p.Alloc),
		})
	}

	paceVars := func() map[string]any {
		return map[string]any{
			"burn": p.Burn.Decimal,
			"pace": in.Pace.Decimal,
		}
	}

	if p.Burn.Valid && in.Pace.Valid && p.Spent.IsPositive() {
		d := p.Burn.Decimal.Sub(in.Pace.Decimal).InexactFloat64()
		switch {
		case d > t.PaceDanger:
			add(KeyPaceDanger, Danger, GroupPace, d, scopeTarget(p.Scope), paceVars())
		case d > t.PaceWarn && !early:
			add(KeyPaceWarn, Warn, GroupPace, d, scopeTarget(p.Scope), paceVars())
		case d < -t.PaceSuccess && !early:
			add(KeyPaceSuccess, Success, GroupPace, -d, scopeTarget(p.Scope), paceVars())
		}
	}

	if days, ok := p.DaysToZero.Get(); ok && days < w.DaysLeft {
		key, tone := KeyRunOut, Warn
		if days <= t.RunOutUrgentDays {
			key, tone = KeyRunOutSoon, Danger
		}

		vars := map[string]any{"days": days}
		if date, ok := p.RunOutDate.Get(); ok {
			vars["date"] = date
		}
		add(key, tone, GroupRunOut, float64(days), scopeTarget(p.Scope), vars)
	}

	if !early && p.RemainingPerDay.Valid && p.NormalPerDay.Valid && p.Remaining.IsPositive() {
		ratio := p.RemainingPerDay.Decimal.Div(p.NormalPerDay.Decimal).InexactFloat64()
		vars := map[string]any{
			"perDay": p.RemainingPerDay.Decimal,
			"normal": p.NormalPerDay.Decimal,
		}

		switch {
		case ratio < t.PerDayDanger:
			add(KeyPerDayDanger, Danger, GroupPerDay, ratio, scopeTarget(p.Scope), vars)
		case ratio < t.PerDayWarn:
			add(KeyPerDayWarn, Warn, GroupPerDay, ratio, scopeTarget(p.Scope), vars)
		default:
			add(KeyPerDay, Info, GroupPerDay, ratio, scopeTarget(p.Scope), vars)
		}
	}

	return candidates
}

// Score sets the score of every candidate and returns the candidates.
//
// The score is the tone weight plus an urgency term computed from the hint.
// Per-day insights get a flat bonus.
func Score(candidates []Candidate, t tuning.Insight) []Candidate {
	for i := range candidates {
		c := &candidates[i]

		score := toneWeight(c.Tone, t.ToneWeights)
		switch c.Key {
		case KeyRunOut, KeyRunOutSoon:
			score += math.Max(0, t.RunOutBase-c.Hint*t.RunOutPerDay)
		case KeyPaceDanger, KeyPaceWarn, KeyOverspent:
			score += math.Min(t.OverPaceCap, math.Max(0, c.Hint)*t.OverPaceScale)
		case KeyPaceSuccess:
			score += math.Min(t.UnderPaceCap, c.Hint*t.UnderPaceScale)
		case KeyPerDayDanger, KeyPerDayWarn, KeyPerDay:
			score += math.Min(t.PerDayCap, math.Max(0, 1-c.Hint)*t.PerDayScale) + t.PerDayBonus
		}

		c.Score = score
	}

	return candidates
}

func toneWeight(tone Tone, w tuning.ToneWeights) float64 {
	switch tone {
	case Danger:
		return w.Danger
	case Warn:
		return w.Warn
	case Success:
		return w.Success
	case Muted:
		return w.Muted
	}

	return w.Info
}

func settingsTarget(key types.Month) string {
	return fmt.Sprintf("/periods/%s/settings", key)
}

func scopeTarget(s types.Scope) string {
	if c, ok := s.Category(); ok {
		return fmt.Sprintf("/categories/%s", c)
	}

	return "/transactions"
}
