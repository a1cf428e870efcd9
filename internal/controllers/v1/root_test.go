package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/test"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("http://example.com/v1/settings", response.Links.Settings)
	suite.Assert().Equal("http://example.com/v1/transactions", response.Links.Transactions)
	suite.Assert().Equal("http://example.com/v1/periods", response.Links.Periods)
}

func (suite *TestSuiteStandard) TestOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "OPTIONS, GET"},
		{"/v1/settings", "OPTIONS, GET, PATCH"},
		{"/v1/transactions", "OPTIONS, GET, POST"},
		{"/v1/periods/2024-06", "OPTIONS, GET, PATCH"},
		{"/v1/periods/2024-06/next", "OPTIONS, GET"},
		{"/v1/periods/2024-06/dashboard", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}
