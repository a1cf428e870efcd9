package v1

import (
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/engine"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/pacebudget/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// DefaultCacheSize is the number of periods the default engine keeps
// memoized.
const DefaultCacheSize = 32

var (
	engineMu sync.Mutex
	eng      *engine.Engine
)

// SetEngine sets the engine used to evaluate periods.
func SetEngine(e *engine.Engine) {
	engineMu.Lock()
	defer engineMu.Unlock()
	eng = e
}

// getEngine returns the engine, creating one with the default tuning table if
// none has been set.
func getEngine() *engine.Engine {
	engineMu.Lock()
	defer engineMu.Unlock()

	if eng == nil {
		eng = engine.New(tuning.Default(), DefaultCacheSize)
	}
	return eng
}

// transactionCache holds the in-memory transaction list.
//
// The list is replaced, never modified. Every replacement gets a new
// revision so that the engine does not reuse results computed from an
// older list.
type transactionCache struct {
	mu           sync.Mutex
	db           *gorm.DB
	transactions []ledger.Transaction
	revision     uint64
}

var transactions = &transactionCache{}

// get returns the list and its revision, loading it if it was invalidated or
// the database connection changed.
func (tc *transactionCache) get() ([]ledger.Transaction, uint64, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.transactions != nil && tc.db == models.DB {
		return tc.transactions, tc.revision, nil
	}

	list, err := models.AllTransactions()
	if err != nil {
		return nil, 0, err
	}

	// Graphs of another database are never reused
	if tc.db != models.DB {
		getEngine().Reset()
	}

	tc.transactions = list
	tc.db = models.DB
	tc.revision++

	return tc.transactions, tc.revision, nil
}

func (tc *transactionCache) invalidate() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.transactions = nil
}

// inputs returns the engine inputs for a period document.
func inputs(p models.Period, settings models.Settings, now time.Time) (engine.Inputs, error) {
	list, revision, err := transactions.get()
	if err != nil {
		return engine.Inputs{}, err
	}

	return engine.Inputs{
		Transactions: list,
		Revision:     revision,
		Month:        p.Month,
		Source:       p.Source(settings),
		Income:       p.Income,
		Split:        p.PercentSplit.Amounts(),
		Now:          now,
	}, nil
}

// refreshSummary recomputes the summary of a period and overwrites the stored
// snapshot. Failures are logged and do not fail the request.
func refreshSummary(c *gin.Context, p models.Period, settings models.Settings) {
	in, err := inputs(p, settings, time.Now())
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Str("month", p.Month.String()).Err(err).Msg("summary not updated")
		return
	}

	err = models.WriteSummary(p.Month, getEngine().Summary(in))
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Str("month", p.Month.String()).Err(err).Msg("summary not updated")
	}
}

// refreshSummaries invalidates the transaction list and refreshes the
// summaries of the periods containing the days.
//
// Stored bounds win: a day is attributed to every document whose frozen
// bounds contain it. Only days no document covers fall back to the period
// the current start day assigns them to.
func refreshSummaries(c *gin.Context, days ...types.Day) {
	transactions.invalidate()

	settings, err := models.GetSettings()
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("summaries not updated")
		return
	}

	var periods []models.Period
	for _, d := range days {
		covering, err := models.PeriodsContaining(d)
		if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Str("day", d.String()).Err(err).Msg("summary not updated")
			continue
		}

		if len(covering) == 0 {
			month := period.MonthKeyFromDate(d.Time(), settings.StartDay)
			p, err := models.GetOrCreatePeriod(month, settings)
			if err != nil {
				log.Error().Str("request-id", requestid.Get(c)).Str("month", month.String()).Err(err).Msg("summary not updated")
				continue
			}
			covering = append(covering, p)
		}

		for _, p := range covering {
			if !slices.ContainsFunc(periods, func(q models.Period) bool { return q.Month.Equal(p.Month) }) {
				periods = append(periods, p)
			}
		}
	}

	for _, p := range periods {
		refreshSummary(c, p, settings)
	}
}
