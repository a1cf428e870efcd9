package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/types"
	"github.com/pacebudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestPeriodGetCreates() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-06?now=2024-06-10T12:00:00Z", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PeriodResponse
	test.DecodeResponse(suite.T(), &r, &response)

	p := response.Data
	suite.Require().NotNil(p)
	suite.Assert().Equal("2024-06", p.Month.String())
	suite.Assert().True(p.Frozen)
	suite.Assert().True(p.Income.IsZero())
	suite.Assert().Equal(1, p.StartDay)
	suite.Assert().Equal("2024-06-01", p.Window.PeriodStart.String())
	suite.Assert().Equal("2024-07-01", p.Window.PeriodEnd.String())
	suite.Assert().Equal(30, p.Window.TotalDays)
	suite.Assert().Equal(10, p.Window.DaysElapsed)
	suite.Assert().Equal(20, p.Window.DaysLeft)
	suite.Assert().Equal("http://example.com/v1/periods/2024-06/dashboard", p.Links.Dashboard)
	suite.Assert().Equal("http://example.com/v1/transactions?month=2024-06", p.Links.Txns)
}

func (suite *TestSuiteStandard) TestPeriodGetFails() {
	tests := []struct {
		name string
		url  string
	}{
		{"Invalid month", "http://example.com/v1/periods/June"},
		{"Invalid now", "http://example.com/v1/periods/2024-06?now=yesterday"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPeriodGetDBFail() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-06", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

// TestPeriodKeepsBounds verifies that changing the start day in the
// settings does not move periods that already exist.
func (suite *TestSuiteStandard) TestPeriodKeepsBounds() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-06", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{"startDay": 25})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PeriodResponse
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-06", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("2024-06-01", response.Data.Window.PeriodStart.String())

	// New periods use the new start day
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-08", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("2024-07-25", response.Data.Window.PeriodStart.String())
	suite.Assert().Equal("2024-08-25", response.Data.Window.PeriodEnd.String())
	suite.Assert().Equal(25, response.Data.StartDay)
}

func (suite *TestSuiteStandard) TestPeriodUpdate() {
	p := suite.patchPeriod(suite.T(), "2024-06", map[string]any{"income": "2000"})

	suite.Require().NotNil(p.Data)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(p.Data.Income))
	suite.Assert().True(decimal.NewFromInt(1000).Equal(p.Data.Allocations.Needs))
	suite.Assert().True(decimal.NewFromInt(600).Equal(p.Data.Allocations.Wants))
	suite.Assert().True(decimal.NewFromInt(400).Equal(p.Data.Allocations.Savings))
	suite.Require().NotNil(p.Data.Summary)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(p.Data.Summary.Income))

	p = suite.patchPeriod(suite.T(), "2024-06", map[string]any{
		"percentSplit": map[string]string{"needs": "0.6", "wants": "0.2", "savings": "0.2"},
	})
	suite.Require().NotNil(p.Data)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(p.Data.Income), "income must be kept")
	suite.Assert().True(decimal.NewFromInt(1200).Equal(p.Data.Allocations.Needs))

	// The settings are not changed
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	var settings v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &settings)
	suite.Assert().True(decimal.NewFromFloat(0.5).Equal(settings.Data.PercentSplit.Needs))
}

func (suite *TestSuiteStandard) TestPeriodUpdateStartDay() {
	p := suite.patchPeriod(suite.T(), "2024-06", map[string]any{"startDay": 25})

	suite.Require().NotNil(p.Data)
	suite.Assert().True(p.Data.Frozen)
	suite.Assert().Equal(25, p.Data.StartDay)
	suite.Assert().Equal("2024-05-25", p.Data.Window.PeriodStart.String())
	suite.Assert().Equal("2024-06-25", p.Data.Window.PeriodEnd.String())

	// Income changes keep the new bounds
	p = suite.patchPeriod(suite.T(), "2024-06", map[string]any{"income": "100"})
	suite.Require().NotNil(p.Data)
	suite.Assert().Equal("2024-05-25", p.Data.Window.PeriodStart.String())
}

func (suite *TestSuiteStandard) TestPeriodUpdateFails() {
	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Negative income", map[string]any{"income": "-1"}, "the amount must not be negative"},
		{"Start day too high", map[string]any{"startDay": 31}, "the start day must be between 1 and 28"},
		{"Invalid split", map[string]any{"percentSplit": map[string]string{"needs": "-0.1", "wants": "0.3", "savings": "0.2"}}, "the percent split must not be negative and must not sum to more than 1"},
		{"Empty body", "", "the request body must not be empty"},
		{"Not an object", `[]`, "the body of your request contains invalid or un-parseable data. Please check and try again"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			p := suite.patchPeriod(t, "2024-06", tt.body, http.StatusBadRequest)
			suite.Require().NotNil(p.Error)
			suite.Assert().Equal(tt.err, *p.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestPeriodAdjacent() {
	tests := []struct {
		name  string
		url   string
		month string
	}{
		{"Next", "http://example.com/v1/periods/2024-06/next", "2024-07"},
		{"Prev", "http://example.com/v1/periods/2024-06/prev", "2024-05"},
		{"Next across years", "http://example.com/v1/periods/2024-12/next", "2025-01"},
		{"Prev across years", "http://example.com/v1/periods/2024-01/prev", "2023-12"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PeriodKeyResponse
			test.DecodeResponse(t, &r, &response)
			suite.Require().NotNil(response.Data)
			suite.Assert().Equal(tt.month, response.Data.Month.String())
			suite.Assert().Equal("http://example.com/v1/periods/"+tt.month, response.Data.Links.Self)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-13/next", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPeriodSubgroups() {
	suite.spend(suite.T(), types.NewDay(2024, 6, 3), "30", types.Needs, "Groceries")
	suite.spend(suite.T(), types.NewDay(2024, 6, 8), "20", types.Needs, "Groceries")
	suite.spend(suite.T(), types.NewDay(2024, 6, 1), "500", types.Needs, "Rent")
	suite.spend(suite.T(), types.NewDay(2024, 6, 5), "40", types.Wants, "Gym")
	suite.spend(suite.T(), types.NewDay(2024, 7, 5), "99", types.Needs, "Groceries")

	subgroups := func(t *testing.T, query string) []ledger.SubgroupTotal {
		r := test.Request(t, http.MethodGet, "http://example.com/v1/periods/2024-06/subgroups?"+query, "")
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.SubgroupListResponse
		test.DecodeResponse(t, &r, &response)
		return response.Data
	}

	suite.T().Run("All", func(t *testing.T) {
		totals := subgroups(t, "")
		suite.Require().Len(totals, 3)
		suite.Assert().Equal("Rent", totals[0].Subgroup)
		suite.Assert().Equal("Groceries", totals[1].Subgroup)
		suite.Assert().True(decimal.NewFromInt(50).Equal(totals[1].Total))
		suite.Assert().Equal(2, totals[1].Count)
	})

	suite.T().Run("Category", func(t *testing.T) {
		totals := subgroups(t, "category=wants")
		suite.Require().Len(totals, 1)
		suite.Assert().Equal("Gym", totals[0].Subgroup)
	})

	suite.T().Run("Match", func(t *testing.T) {
		totals := subgroups(t, "match=GROC*")
		suite.Require().Len(totals, 1)
		suite.Assert().Equal("Groceries", totals[0].Subgroup)
	})

	suite.T().Run("Limit", func(t *testing.T) {
		totals := subgroups(t, "limit=2")
		suite.Require().Len(totals, 2)
		suite.Assert().Equal("Rent", totals[0].Subgroup)
		suite.Assert().Equal("Groceries", totals[1].Subgroup)
	})

	suite.T().Run("Limit above count", func(t *testing.T) {
		suite.Assert().Len(subgroups(t, "limit=10&category=needs"), 2)
	})

	failures := []struct {
		name  string
		query string
		err   string
	}{
		{"Invalid category", "category=luxury", "the category parameter must be one of needs, wants, savings"},
		{"Unparseable limit", "limit=many", httputil.ErrInvalidQueryString.Error()},
		{"Negative limit", "limit=-1", "limits must not be negative"},
	}

	for _, tt := range failures {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/periods/2024-06/subgroups?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			suite.Assert().Equal(tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}
