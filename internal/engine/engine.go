// Package engine wires the period, ledger, forecast, insight and badge
// packages into a memoized computation graph.
//
// Every derived view is recomputed only when one of its declared inputs
// changed. The transaction list participates by identity: callers must
// never modify a list they passed in, and must bump Inputs.Revision when
// they build a new one that could share its backing array.
package engine

import (
	"time"

	"github.com/pacebudget/backend/internal/badge"
	"github.com/pacebudget/backend/internal/cache"
	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/insight"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Inputs are the declared inputs of the graph.
type Inputs struct {
	Transactions []ledger.Transaction // The full history
	Revision     uint64               // Changes whenever Transactions is rebuilt
	Month        types.Month
	Source       period.Source
	Income       decimal.Decimal
	Split        types.CategoryAmounts
	Now          time.Time

	// Zero values use the limits of the tuning table
	InsightLimit  int
	CategoryLimit int
}

// Dashboard are all derived views of a period.
//
// Slices and maps are shared with the memo and must not be modified.
type Dashboard struct {
	Window           period.Window                        `json:"window"`
	Totals           forecast.Totals                      `json:"totals"`
	Pace             decimal.NullDecimal                  `json:"pace" example:"0.5"`
	Panels           forecast.PerScope[forecast.Panel]    `json:"panels"`
	Insights         []insight.Insight                    `json:"insights"`
	CategoryInsights map[types.Category][]insight.Insight `json:"categoryInsights"`
	Badges           []badge.Badge                        `json:"badges"`
	Series           []ledger.SeriesPoint                 `json:"series"`
	Distribution     []ledger.Share                       `json:"distribution"`
	TransactionCount int                                  `json:"transactionCount" example:"42"`
}

// Engine evaluates dashboards. It is safe for concurrent use.
type Engine struct {
	tuning tuning.Table
	graphs *cache.LRU[types.Month, *graph]
	index  *indexNode
}

// New returns an engine that keeps the graphs of up to size periods.
func New(t tuning.Table, size int) *Engine {
	return &Engine{
		tuning: t,
		graphs: cache.NewLRU[types.Month, *graph](size),
		index:  &indexNode{node: node[txRef, ledger.DailyIndex]{name: "daily_index"}},
	}
}

// Tuning returns the tuning table of the engine.
func (e *Engine) Tuning() tuning.Table {
	return e.tuning
}

// Reset drops the graphs of all periods.
func (e *Engine) Reset() {
	e.graphs.Purge()
}

func (e *Engine) graph(month types.Month) *graph {
	return e.graphs.GetOrCreate(month, func() *graph {
		return newGraph(month)
	})
}

// Dashboard evaluates all views of the period in.Month.
func (e *Engine) Dashboard(in Inputs) Dashboard {
	limit := in.InsightLimit
	if limit == 0 {
		limit = e.tuning.Insight.DashboardLimit
	}

	categoryLimit := in.CategoryLimit
	if categoryLimit == 0 {
		categoryLimit = e.tuning.Insight.CategoryLimit
	}

	g := e.graph(in.Month)
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.evalWindow(in)
	txns, txnsVersion := g.evalInPeriod(in, w)
	spent, spentVersion := g.evalSpent(txns, txnsVersion)
	totals, totalsVersion := g.evalTotals(in, spent, spentVersion)
	metrics, metricsVersion := g.evalMetrics(w, totals, totalsVersion)
	panels, panelsVersion := g.evalPanels(w, totals, metrics, metricsVersion)

	insights, _ := g.insights.get(g.scope, insightsKey{panelsVersion, limit, categoryLimit}, func() insightSet {
		set := insightSet{
			dashboard:  insight.Dashboard(panels.Total, metrics.Pace, w, e.tuning.Insight, limit),
			categories: make(map[types.Category][]insight.Insight, len(types.Categories)),
		}
		for _, c := range types.Categories {
			set.categories[c] = insight.ForCategory(panels.Get(c.Scope()), c, metrics.Pace, w, e.tuning.Insight, categoryLimit)
		}
		return set
	})

	badges, _ := g.badges.get(g.scope, panelsVersion, func() []badge.Badge {
		return badge.For(panels, metrics.Pace, e.tuning.Badge)
	})

	index, indexVersion := e.index.eval(in)
	series, _ := g.series.get(g.scope, seriesKey{indexVersion, w.Range()}, func() []ledger.SeriesPoint {
		return ledger.Series(index, w.Range())
	})

	distribution, _ := g.distribution.get(g.scope, spentVersion, func() []ledger.Share {
		return ledger.Distribution(spent)
	})

	return Dashboard{
		Window:           w,
		Totals:           totals,
		Pace:             metrics.Pace,
		Panels:           panels,
		Insights:         insights.dashboard,
		CategoryInsights: insights.categories,
		Badges:           badges,
		Series:           series,
		Distribution:     distribution,
		TransactionCount: len(txns),
	}
}

// Window returns the window of the period in.Month.
func (e *Engine) Window(in Inputs) period.Window {
	g := e.graph(in.Month)
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.evalWindow(in)
}

// Transactions returns the transactions in the period in.Month.
func (e *Engine) Transactions(in Inputs) []ledger.Transaction {
	g := e.graph(in.Month)
	g.mu.Lock()
	defer g.mu.Unlock()

	txns, _ := g.evalInPeriod(in, g.evalWindow(in))
	return txns
}

// Summary returns the snapshot of the period in.Month to be stored with
// its document.
func (e *Engine) Summary(in Inputs) forecast.Summary {
	g := e.graph(in.Month)
	g.mu.Lock()
	defer g.mu.Unlock()

	txns, version := g.evalInPeriod(in, g.evalWindow(in))
	spent, _ := g.evalSpent(txns, version)

	return forecast.Summarize(spent, len(txns), in.Income, in.Split, in.Now)
}

// Rendered returns a copy of the dashboard with titles and messages of all
// insights rendered by p. The memoized dashboard is not modified.
func (d Dashboard) Rendered(p *insight.Printer) Dashboard {
	d.Insights = p.Render(d.Insights)

	categories := make(map[types.Category][]insight.Insight, len(d.CategoryInsights))
	for category, insights := range d.CategoryInsights {
		categories[category] = p.Render(insights)
	}
	d.CategoryInsights = categories

	return d
}
