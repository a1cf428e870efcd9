package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSettingsGet() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(1, response.Data.StartDay)
	suite.Assert().Equal("EUR", response.Data.Currency)
	suite.Assert().Equal("en", response.Data.Language)
	suite.Assert().True(decimal.NewFromFloat(0.5).Equal(response.Data.PercentSplit.Needs))
	suite.Assert().Equal("http://example.com/v1/settings", response.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestSettingsGetDBFail() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/settings", map[string]any{
		"startDay": 25,
		"currency": "usd",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(25, response.Data.StartDay)
	suite.Assert().Equal("USD", response.Data.Currency)

	// Fields not in the body are unchanged
	suite.Assert().Equal("en", response.Data.Language)
	suite.Assert().True(decimal.NewFromFloat(0.3).Equal(response.Data.PercentSplit.Wants))

	// The update is persisted
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/settings", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(25, response.Data.StartDay)
}

func (suite *TestSuiteStandard) TestSettingsUpdateFails() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Start day too high", map[string]any{"startDay": 29}, http.StatusBadRequest, "the start day must be between 1 and 28"},
		{"Start day zero", map[string]any{"startDay": 0}, http.StatusBadRequest, "the start day must be between 1 and 28"},
		{"Invalid currency", map[string]any{"currency": "EURO"}, http.StatusBadRequest, "the currency must be an ISO 4217 currency code, got 'EURO'"},
		{"Split over 1", map[string]any{"percentSplit": map[string]string{"needs": "0.7", "wants": "0.3", "savings": "0.2"}}, http.StatusBadRequest, "the percent split must not be negative and must not sum to more than 1"},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Broken JSON", `{ "startDay": 2`, http.StatusBadRequest, "the body of your request contains invalid or un-parseable data. Please check and try again"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, "http://example.com/v1/settings", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
			suite.Assert().Equal(tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}
