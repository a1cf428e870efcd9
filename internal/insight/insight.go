// Package insight generates ranked, human-facing signals about the budget.
//
// Insights are produced by a pipeline: candidates are generated per concern,
// scored, deduplicated by group, filtered and truncated. The same pipeline
// runs for the whole budget and for every category.
package insight

import (
	"sort"
)

// Tone is the severity of an insight.
type Tone string

const (
	Danger  Tone = "danger"
	Warn    Tone = "warn"
	Success Tone = "success"
	Info    Tone = "info"
	Muted   Tone = "muted"
)

// Key identifies the message of an insight.
type Key string

const (
	KeyNoBudget     Key = "no-budget"
	KeyEarly        Key = "early"
	KeyNoSpend      Key = "no-spend"
	KeyPaceDanger   Key = "pace-danger"
	KeyPaceWarn     Key = "pace-warn"
	KeyPaceSuccess  Key = "pace-success"
	KeyOverspent    Key = "overspent"
	KeyRunOutSoon   Key = "run-out-soon"
	KeyRunOut       Key = "run-out"
	KeyPerDayDanger Key = "per-day-danger"
	KeyPerDayWarn   Key = "per-day-warn"
	KeyPerDay       Key = "per-day"
)

// Groups used for deduplication. Only one insight per group survives.
const (
	GroupBudget = "budget"
	GroupEarly  = "early"
	GroupPace   = "pace"
	GroupRunOut = "runout"
	GroupPerDay = "perday"
)

// Insight is a scored signal.
type Insight struct {
	ID        string         `json:"id" example:"wants-pace-danger"`
	Tone      Tone           `json:"tone" example:"danger"`
	Key       Key            `json:"key" example:"pace-danger"`
	Title     string         `json:"title,omitempty" example:"Spending too fast"`
	Message   string         `json:"message,omitempty" example:"Wants has used 80% of its budget with 40% of the period gone."`
	Vars      map[string]any `json:"vars"`
	CTATarget string         `json:"ctaTarget,omitempty" example:"/categories/wants"`
	Group     string         `json:"group" example:"pace"`
	Score     float64        `json:"score" example:"420"`
}

// Candidate is an insight before ranking. Hint is the raw signal the
// candidate was derived from and feeds the urgency term of the score.
type Candidate struct {
	Insight
	Hint float64
}

// Rank deduplicates, filters, sorts and truncates scored candidates.
//
// Per group, the candidate with the highest score is kept, ties go to the
// candidate generated first. When any danger or warn insight survives,
// muted and early period insights are dropped. The result never has more
// than limit entries and is never nil.
func Rank(candidates []Candidate, limit int) []Insight {
	if limit <= 0 {
		return []Insight{}
	}

	best := make(map[string]int, len(candidates))
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		i, ok := best[c.Group]
		if !ok {
			best[c.Group] = len(kept)
			kept = append(kept, c)
			continue
		}

		if c.Score > kept[i].Score {
			kept[i] = c
		}
	}

	urgent := false
	for _, c := range kept {
		if c.Tone == Danger || c.Tone == Warn {
			urgent = true
			break
		}
	}

	insights := make([]Insight, 0, len(kept))
	for _, c := range kept {
		if urgent && (c.Tone == Muted || c.Group == GroupEarly) {
			continue
		}
		insights = append(insights, c.Insight)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Score > insights[j].Score
	})

	if len(insights) > limit {
		insights = insights[:limit]
	}

	return insights
}
