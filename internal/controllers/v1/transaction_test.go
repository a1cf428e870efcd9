package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/types"
	"github.com/pacebudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:     types.NewDay(2024, 6, 3),
		Amount:   decimal.NewFromFloat(12.4),
		Category: types.Wants,
		Subgroup: " Coffee ",
		Note:     "Espresso",
	})

	suite.Require().NotNil(tr.Data)
	suite.Assert().Equal("2024-06-03", tr.Data.Date.String())
	suite.Assert().Equal("Coffee", tr.Data.Subgroup)
	suite.Assert().Equal("http://example.com/v1/transactions/"+tr.Data.ID.String(), tr.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestTransactionsCreateDefaultsToToday() {
	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount: decimal.NewFromInt(3),
	})

	suite.Require().NotNil(tr.Data)
	suite.Assert().False(tr.Data.Date.IsZero())
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	tests := []struct {
		name     string
		editable v1.TransactionEditable
		err      string
	}{
		{"Negative amount", v1.TransactionEditable{Amount: decimal.NewFromInt(-5), Category: types.Needs}, "the amount must not be negative"},
		{"Invalid category", v1.TransactionEditable{Amount: decimal.NewFromInt(5), Category: "luxury"}, "the category must be one of needs, wants, savings, got 'luxury'"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			tr := suite.createTestTransaction(t, tt.editable, http.StatusBadRequest)
			suite.Assert().Nil(tr.Data)
			suite.Require().NotNil(tr.Error)
			suite.Assert().Equal(tt.err, *tr.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateMixed() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{
		{Date: types.NewDay(2024, 6, 3), Amount: decimal.NewFromInt(5), Category: types.Needs},
		{Date: types.NewDay(2024, 6, 3), Amount: decimal.NewFromInt(-5), Category: types.Needs},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().NotNil(response.Data[0].Data)
	suite.Assert().Nil(response.Data[1].Data)
	suite.Assert().NotNil(response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestTransactionsCreateBrokenBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{ "amount": 5 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionsGet() {
	tr := suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "Groceries")

	r := test.Request(suite.T(), http.MethodGet, tr.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(tr.ID, response.Data.ID)
	suite.Assert().True(decimal.NewFromInt(20).Equal(response.Data.Amount))

	r = test.Request(suite.T(), http.MethodOptions, tr.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestTransactionsGetFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Not a UUID", "not-a-uuid", http.StatusBadRequest},
		{"Does not exist", "d430d7c3-d14c-4712-9336-ee56965a6673", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodOptions, http.MethodPatch, http.MethodDelete} {
				r := test.Request(t, method, "http://example.com/v1/transactions/"+tt.id, "")
				test.AssertHTTPStatus(t, &r, tt.status)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetNotFoundMessage() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no transaction matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestTransactionsList() {
	suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "Groceries")
	suite.spend(suite.T(), types.NewDay(2024, 6, 10), "30", types.Needs, "Groceries")
	suite.spend(suite.T(), types.NewDay(2024, 6, 12), "40", types.Wants, "Gym")
	suite.spend(suite.T(), types.NewDay(2024, 7, 2), "15", types.Wants, "Cinema")

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 4, 4},
		{"Category", "category=needs", 2, 2},
		{"Subgroup", "subgroup=Gym", 1, 1},
		{"Search", "search=roce", 2, 2},
		{"Month", "month=2024-06", 3, 3},
		{"Month and category", "month=2024-07&category=wants", 1, 1},
		{"Limit", "limit=2", 2, 4},
		{"Offset", "offset=3", 1, 4},
		{"Empty month", "month=2023-01", 0, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len)
			suite.Require().NotNil(response.Pagination)
			suite.Assert().Equal(tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListNewestFirst() {
	suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "")
	suite.spend(suite.T(), types.NewDay(2024, 6, 12), "40", types.Needs, "")

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2024-06-12", response.Data[0].Date.String())
	suite.Assert().Equal("2024-06-03", response.Data[1].Date.String())
}

func (suite *TestSuiteStandard) TestTransactionsListFails() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid category", "category=luxury"},
		{"Invalid month", "month=June"},
		{"Invalid offset", "offset=-1"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListDBFail() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	tr := suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "Groceries")

	r := test.Request(suite.T(), http.MethodPatch, tr.Links.Self, map[string]any{
		"amount": "25.5",
		"note":   "Market",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(decimal.NewFromFloat(25.5).Equal(response.Data.Amount))
	suite.Assert().Equal("Market", response.Data.Note)

	// Unchanged
	suite.Assert().Equal("Groceries", response.Data.Subgroup)
	suite.Assert().Equal(types.Needs, response.Data.Category)
	suite.Assert().Equal("2024-06-03", response.Data.Date.String())
	suite.Assert().Equal(tr.CreatedAt.Unix(), response.Data.CreatedAt.Unix())
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	tr := suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "Groceries")

	tests := []struct {
		name string
		body any
	}{
		{"Negative amount", map[string]any{"amount": "-1"}},
		{"Invalid category", map[string]any{"category": "luxury"}},
		{"Empty body", ""},
		{"Broken JSON", `{ "note": 2 `},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tr.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	tr := suite.spend(suite.T(), types.NewDay(2024, 6, 3), "20", types.Needs, "Groceries")

	r := test.Request(suite.T(), http.MethodDelete, tr.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, tr.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionsWriteSummary verifies that every change to a transaction
// updates the stored summary of its period.
func (suite *TestSuiteStandard) TestTransactionsWriteSummary() {
	summary := func(month string) v1.PeriodResponse {
		r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/"+month, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var p v1.PeriodResponse
		test.DecodeResponse(suite.T(), &r, &p)
		suite.Require().NotNil(p.Data)
		suite.Require().NotNil(p.Data.Summary)
		return p
	}

	june := suite.spend(suite.T(), types.NewDay(2024, 6, 3), "12.4", types.Needs, "Groceries")
	suite.spend(suite.T(), types.NewDay(2024, 6, 4), "7.6", types.Wants, "Coffee")

	p := summary("2024-06")
	suite.Assert().True(decimal.NewFromInt(20).Equal(p.Data.Summary.TotalSpent), p.Data.Summary.TotalSpent.String())
	suite.Assert().Equal(2, p.Data.Summary.TotalTxns)

	// Moving a transaction to the next period updates both
	r := test.Request(suite.T(), http.MethodPatch, june.Links.Self, map[string]any{"date": "2024-07-03"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	p = summary("2024-06")
	suite.Assert().True(decimal.NewFromFloat(7.6).Equal(p.Data.Summary.TotalSpent), p.Data.Summary.TotalSpent.String())
	suite.Assert().Equal(1, p.Data.Summary.TotalTxns)

	p = summary("2024-07")
	suite.Assert().True(decimal.NewFromFloat(12.4).Equal(p.Data.Summary.TotalSpent), p.Data.Summary.TotalSpent.String())

	r = test.Request(suite.T(), http.MethodDelete, june.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	p = summary("2024-07")
	suite.Assert().True(p.Data.Summary.TotalSpent.IsZero())
	suite.Assert().Equal(0, p.Data.Summary.TotalTxns)
}

func (suite *TestSuiteStandard) TestTransactionsWriteSummaryFrozenBounds() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/periods/2024-06", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{"startDay": 20})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// With start day 20, the day belongs to 2024-07. The stored June bounds win.
	suite.spend(suite.T(), types.NewDay(2024, 6, 25), "40", types.Needs, "Groceries")

	june, err := models.FindPeriod(types.NewMonth(2024, time.June))
	suite.Require().Nil(err)
	suite.Require().NotNil(june.Summary)
	suite.Assert().True(decimal.NewFromInt(40).Equal(june.Summary.TotalSpent), june.Summary.TotalSpent.String())
	suite.Assert().Equal(1, june.Summary.TotalTxns)

	_, err = models.FindPeriod(types.NewMonth(2024, time.July))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// Days outside every stored period use the current start day
	suite.spend(suite.T(), types.NewDay(2024, 7, 21), "5", types.Wants, "Coffee")

	august, err := models.FindPeriod(types.NewMonth(2024, time.August))
	suite.Require().Nil(err)
	suite.Require().NotNil(august.Summary)
	suite.Assert().True(decimal.NewFromInt(5).Equal(august.Summary.TotalSpent), august.Summary.TotalSpent.String())
	suite.Assert().Equal(20, *august.StartDay)
}
