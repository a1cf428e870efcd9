package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pacebudget/backend/internal/controllers/v1"
	"github.com/pacebudget/backend/internal/types"
	"github.com/pacebudget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestTransaction(t *testing.T, editable v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if editable.Category == "" {
		editable.Category = types.Needs
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{editable})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var tr v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &tr)
	require.Len(t, tr.Data, 1)

	return tr.Data[0]
}

// spend creates a transaction of the amount on the day.
func (suite *TestSuiteStandard) spend(t *testing.T, day types.Day, amount string, category types.Category, subgroup string) v1.Transaction {
	tr := suite.createTestTransaction(t, v1.TransactionEditable{
		Date:     day,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Subgroup: subgroup,
	})
	require.NotNil(t, tr.Data)

	return *tr.Data
}

func (suite *TestSuiteStandard) patchPeriod(t *testing.T, month string, body any, expectedStatus ...int) v1.PeriodResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodPatch, "http://example.com/v1/periods/"+month, body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var p v1.PeriodResponse
	test.DecodeResponse(t, &r, &p)
	return p
}
