package models_test

import (
	"time"

	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

func mustMonth(s string) types.Month {
	m, err := types.ParseMonth(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (suite *TestSuiteStandard) TestTransactionBeforeSave() {
	cet := time.FixedZone("CET", 3600)
	transaction := models.Transaction{
		Date:     time.Date(2024, time.June, 3, 0, 30, 0, 0, cet),
		Amount:   decimal.NewFromFloat(12.4),
		Category: types.Needs,
		Subgroup: "  Groceries ",
		Note:     " Market\t",
	}

	err := models.DB.Create(&transaction).Error
	suite.Require().Nil(err)

	suite.Assert().Equal("Groceries", transaction.Subgroup)
	suite.Assert().Equal("Market", transaction.Note)
	suite.Assert().Equal(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), transaction.Date, "the calendar date must be kept")
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"Negative amount", models.Transaction{Amount: decimal.NewFromInt(-1), Category: types.Wants}, models.ErrAmountNegative},
		{"Invalid category", models.Transaction{Amount: decimal.NewFromInt(1), Category: "luxury"}, types.ErrCategoryInvalid},
		{"No category", models.Transaction{Amount: decimal.NewFromInt(1)}, types.ErrCategoryInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.transaction).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAllTransactionsOrdered() {
	for _, day := range []int{5, 1, 3} {
		suite.Require().Nil(models.DB.Create(&models.Transaction{
			Date:     time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.NewFromInt(int64(day)),
			Category: types.Needs,
		}).Error)
	}

	transactions, err := models.AllTransactions()
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 3)

	suite.Assert().Equal(types.NewDay(2024, time.June, 1), transactions[0].Day)
	suite.Assert().Equal(types.NewDay(2024, time.June, 3), transactions[1].Day)
	suite.Assert().Equal(types.NewDay(2024, time.June, 5), transactions[2].Day)
	suite.Assert().Equal("5", transactions[2].Amount.String())
}

func (suite *TestSuiteStandard) TestAllTransactionsSkipsDeleted() {
	transaction := models.Transaction{Amount: decimal.NewFromInt(1), Category: types.Savings}
	suite.Require().Nil(models.DB.Create(&transaction).Error)
	suite.Require().Nil(models.DB.Delete(&transaction).Error)

	transactions, err := models.AllTransactions()
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 0)
}
