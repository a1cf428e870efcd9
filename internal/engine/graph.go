package engine

import (
	"sync"
	"time"

	"github.com/pacebudget/backend/internal/badge"
	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/insight"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
)

// txRef identifies a transaction list by its backing array, its length and
// the revision the owner assigned to it.
type txRef struct {
	first    *ledger.Transaction
	len      int
	revision uint64
}

func refOf(in Inputs) txRef {
	r := txRef{len: len(in.Transactions), revision: in.Revision}
	if len(in.Transactions) > 0 {
		r.first = &in.Transactions[0]
	}
	return r
}

type windowKey struct {
	source period.Source
	now    time.Time
}

type inPeriodKey struct {
	txns txRef
	rng  period.Range
}

type totalsKey struct {
	spent  uint64
	income string
	split  [3]string
}

// frame is the part of a window the metrics depend on. Two windows on the
// same day have the same frame.
type frame struct {
	rng         period.Range
	today       types.Day
	daysElapsed int
	daysLeft    int
}

type metricsKey struct {
	totals uint64
	frame  frame
}

type insightsKey struct {
	panels        uint64
	limit         int
	categoryLimit int
}

type seriesKey struct {
	index uint64
	rng   period.Range
}

type insightSet struct {
	dashboard  []insight.Insight
	categories map[types.Category][]insight.Insight
}

// graph holds the memo of one period.
type graph struct {
	mu    sync.Mutex
	scope string

	window       node[windowKey, period.Window]
	inPeriod     node[inPeriodKey, []ledger.Transaction]
	spent        node[uint64, types.CategoryAmounts]
	totals       node[totalsKey, forecast.Totals]
	metrics      node[metricsKey, forecast.Metrics]
	panels       node[uint64, forecast.PerScope[forecast.Panel]]
	insights     node[insightsKey, insightSet]
	badges       node[uint64, []badge.Badge]
	series       node[seriesKey, []ledger.SeriesPoint]
	distribution node[uint64, []ledger.Share]
}

func newGraph(month types.Month) *graph {
	return &graph{
		scope:        month.String(),
		window:       node[windowKey, period.Window]{name: "window"},
		inPeriod:     node[inPeriodKey, []ledger.Transaction]{name: "in_period"},
		spent:        node[uint64, types.CategoryAmounts]{name: "spent"},
		totals:       node[totalsKey, forecast.Totals]{name: "totals"},
		metrics:      node[metricsKey, forecast.Metrics]{name: "metrics"},
		panels:       node[uint64, forecast.PerScope[forecast.Panel]]{name: "panels"},
		insights:     node[insightsKey, insightSet]{name: "insights"},
		badges:       node[uint64, []badge.Badge]{name: "badges"},
		series:       node[seriesKey, []ledger.SeriesPoint]{name: "series"},
		distribution: node[uint64, []ledger.Share]{name: "distribution"},
	}
}

func (g *graph) evalWindow(in Inputs) period.Window {
	source := in.Source
	if source == nil {
		source = period.Recomputed{StartDay: period.MinStartDay}
	}

	w, _ := g.window.get(g.scope, windowKey{source, in.Now}, func() period.Window {
		return period.WindowFor(source, in.Month, in.Now)
	})
	return w
}

func (g *graph) evalInPeriod(in Inputs, w period.Window) ([]ledger.Transaction, uint64) {
	return g.inPeriod.get(g.scope, inPeriodKey{refOf(in), w.Range()}, func() []ledger.Transaction {
		return ledger.InPeriod(in.Transactions, w.Range())
	})
}

func (g *graph) evalSpent(txns []ledger.Transaction, version uint64) (types.CategoryAmounts, uint64) {
	return g.spent.get(g.scope, version, func() types.CategoryAmounts {
		return ledger.TotalsByCategory(txns)
	})
}

func (g *graph) evalTotals(in Inputs, spent types.CategoryAmounts, version uint64) (forecast.Totals, uint64) {
	return g.totals.get(g.scope, totalsKey{version, in.Income.String(), in.Split.Key()}, func() forecast.Totals {
		return forecast.NewTotals(forecast.Allocate(in.Income, in.Split), spent)
	})
}

func (g *graph) evalMetrics(w period.Window, totals forecast.Totals, version uint64) (forecast.Metrics, uint64) {
	f := frame{
		rng:         w.Range(),
		today:       w.Today(),
		daysElapsed: w.DaysElapsed,
		daysLeft:    w.DaysLeft,
	}

	return g.metrics.get(g.scope, metricsKey{version, f}, func() forecast.Metrics {
		return forecast.Compute(totals, w)
	})
}

func (g *graph) evalPanels(w period.Window, totals forecast.Totals, metrics forecast.Metrics, version uint64) (forecast.PerScope[forecast.Panel], uint64) {
	return g.panels.get(g.scope, version, func() forecast.PerScope[forecast.Panel] {
		return forecast.Panels(totals, metrics, w)
	})
}

// indexNode is the daily index over the full history. It is shared by the
// graphs of all periods.
type indexNode struct {
	mu   sync.Mutex
	node node[txRef, ledger.DailyIndex]
}

func (n *indexNode) eval(in Inputs) (ledger.DailyIndex, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.node.get("all", refOf(in), func() ledger.DailyIndex {
		return ledger.BuildDailyIndex(in.Transactions)
	})
}
