package v1

import (
	"fmt"

	"github.com/pacebudget/backend/internal/engine"
	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

type PeriodEditable struct {
	Income       decimal.Decimal     `json:"income" example:"2000" minimum:"0"` // Income of the period
	PercentSplit models.PercentSplit `json:"percentSplit"`                      // Share of the income allocated to each category
	StartDay     int                 `json:"startDay" example:"25"`             // Day of the month the period starts on. Setting it freezes the bounds again
}

type PeriodLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/periods/2024-06"`                    // The period itself
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/periods/2024-06/dashboard"`     // Dashboard of the period
	Subgroups string `json:"subgroups" example:"https://example.com/api/v1/periods/2024-06/subgroups"`     // Subgroup ranking of the period
	Next      string `json:"next" example:"https://example.com/api/v1/periods/2024-06/next"`               // Key of the next period
	Prev      string `json:"prev" example:"https://example.com/api/v1/periods/2024-06/prev"`               // Key of the previous period
	Txns      string `json:"transactions" example:"https://example.com/api/v1/transactions?month=2024-06"` // Transactions in the period
}

func newPeriodLinks(url string, month types.Month) PeriodLinks {
	self := fmt.Sprintf("%s/v1/periods/%s", url, month)

	return PeriodLinks{
		Self:      self,
		Dashboard: self + "/dashboard",
		Subgroups: self + "/subgroups",
		Next:      self + "/next",
		Prev:      self + "/prev",
		Txns:      fmt.Sprintf("%s/v1/transactions?month=%s", url, month),
	}
}

// Period is the representation of a period document in API v1.
type Period struct {
	models.Timestamps
	Month types.Month `json:"month" swaggertype:"string" example:"2024-06"` // Key of the period
	PeriodEditable
	Allocations types.CategoryAmounts `json:"allocations"`           // Income × percent split, rounded to cents
	Frozen      bool                  `json:"frozen" example:"true"` // The bounds are stored with the period. If false, they follow the start day in the settings
	Window      period.Window         `json:"window"`                // Position of the current time in the period
	Summary     *forecast.Summary     `json:"summary"`               // Snapshot written after the last change
	Links       PeriodLinks           `json:"links"`
}

func newPeriod(url string, model models.Period, w period.Window) Period {
	return Period{
		Timestamps: model.Timestamps,
		Month:      model.Month,
		PeriodEditable: PeriodEditable{
			Income:       model.Income,
			PercentSplit: model.PercentSplit,
			StartDay:     w.StartDay,
		},
		Allocations: model.Allocations(),
		Frozen:      model.Frozen(),
		Window:      w,
		Summary:     model.Summary,
		Links:       newPeriodLinks(url, model.Month),
	}
}

type PeriodResponse struct {
	Error *string `json:"error" example:"the month must be in YYYY-MM format"` // The error, if any occurred
	Data  *Period `json:"data"`                                                // The period
}

type PeriodKey struct {
	Month types.Month `json:"month" swaggertype:"string" example:"2024-07"` // Key of the period
	Links PeriodLinks `json:"links"`
}

type PeriodKeyResponse struct {
	Error *string    `json:"error" example:"the month must be in YYYY-MM format"` // The error, if any occurred
	Data  *PeriodKey `json:"data"`                                                // The key of the adjacent period
}

type SubgroupQueryFilter struct {
	Category string `form:"category"` // Only count transactions in this category
	Match    string `form:"match"`    // Glob pattern the subgroup must match, e.g. "groc*". Matching ignores case
	Limit    int    `form:"limit"`    // Maximum number of subgroups. 0 returns all
}

type SubgroupListResponse struct {
	Error *string                `json:"error" example:"the category parameter must be one of needs, wants, savings"` // The error, if any occurred
	Data  []ledger.SubgroupTotal `json:"data"`                                                                        // Subgroups by total, descending
}

type DashboardQuery struct {
	Now           string `form:"now"`           // Point in time to evaluate the period at, RFC3339. Defaults to the current time
	Limit         int    `form:"limit"`         // Maximum number of dashboard insights. Defaults to the tuning table
	CategoryLimit int    `form:"categoryLimit"` // Maximum number of insights per category. Defaults to the tuning table
}

type DashboardResponse struct {
	Error *string           `json:"error" example:"the now parameter must be an RFC3339 timestamp"` // The error, if any occurred
	Data  *engine.Dashboard `json:"data"`                                                           // All views of the period
}
