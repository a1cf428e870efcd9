package models_test

import (
	"testing"
	"time"

	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetOrCreatePeriodFreezesBounds() {
	settings := models.DefaultSettings()
	settings.StartDay = 25

	p, err := models.GetOrCreatePeriod(mustMonth("2024-06"), settings)
	suite.Require().Nil(err)

	suite.Require().True(p.Frozen())
	suite.Assert().Equal(25, *p.StartDay)
	suite.Assert().Equal(time.Date(2024, time.May, 25, 0, 0, 0, 0, time.UTC), *p.PeriodStart)
	suite.Assert().Equal(time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC), *p.PeriodEnd)
	suite.Assert().True(p.Income.IsZero())
	suite.Assert().True(p.PercentSplit.Needs.Equal(decimal.RequireFromString("0.5")))

	// The second call returns the stored document, even with other settings
	settings.StartDay = 1
	again, err := models.GetOrCreatePeriod(mustMonth("2024-06"), settings)
	suite.Require().Nil(err)
	suite.Assert().Equal(25, *again.StartDay)
	suite.Assert().True(p.PeriodStart.Equal(*again.PeriodStart))
}

func (suite *TestSuiteStandard) TestPeriodSource() {
	settings := models.DefaultSettings()
	settings.StartDay = 10

	legacy := models.Period{Month: mustMonth("2024-06")}
	suite.Assert().Equal(period.Recomputed{StartDay: 10}, legacy.Source(settings))

	frozen := models.Period{Month: mustMonth("2024-06")}
	frozen.Freeze(5)
	suite.Assert().Equal(period.Frozen{
		StartDay: 5,
		Start:    types.NewDay(2024, time.June, 5),
		End:      types.NewDay(2024, time.July, 5),
	}, frozen.Source(settings))
}

func (suite *TestSuiteStandard) TestPeriodAllocations() {
	p := models.Period{
		Month:        mustMonth("2024-06"),
		Income:       decimal.NewFromInt(2000),
		PercentSplit: models.DefaultPercentSplit(),
	}

	a := p.Allocations()
	suite.Assert().Equal("1000", a.Needs.String())
	suite.Assert().Equal("600", a.Wants.String())
	suite.Assert().Equal("400", a.Savings.String())
}

func (suite *TestSuiteStandard) TestPeriodValidation() {
	tooLate := 29
	tests := []struct {
		name   string
		period models.Period
		err    error
	}{
		{"Negative income", models.Period{Month: mustMonth("2024-01"), Income: decimal.NewFromInt(-5)}, models.ErrAmountNegative},
		{"Start day", models.Period{Month: mustMonth("2024-02"), StartDay: &tooLate}, models.ErrStartDayOutOfRange},
		{"Split too large", models.Period{Month: mustMonth("2024-03"), PercentSplit: models.PercentSplit{Needs: decimal.NewFromInt(1), Wants: decimal.RequireFromString("0.5")}}, models.ErrPercentSplitInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := models.DB.Create(&tt.period).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestWriteSummary() {
	month := mustMonth("2024-06")
	_, err := models.GetOrCreatePeriod(month, models.DefaultSettings())
	suite.Require().Nil(err)

	spent := types.CategoryAmounts{Needs: decimal.NewFromInt(10), Wants: decimal.RequireFromString("2.5")}
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	summary := forecast.Summarize(spent, 2, decimal.NewFromInt(2000), models.DefaultPercentSplit().Amounts(), now)

	suite.Require().Nil(models.WriteSummary(month, summary))

	p, err := models.FindPeriod(month)
	suite.Require().Nil(err)
	suite.Require().NotNil(p.Summary)
	suite.Assert().Equal("12.5", p.Summary.TotalSpent.String())
	suite.Assert().Equal(2, p.Summary.TotalTxns)
	suite.Assert().True(p.Summary.ComputedAt.Equal(now))
	suite.Assert().Equal("600", p.Summary.Allocations.Wants.String())
}

func (suite *TestSuiteStandard) TestPeriodsContaining() {
	settings := models.DefaultSettings()
	_, err := models.GetOrCreatePeriod(mustMonth("2024-06"), settings)
	suite.Require().Nil(err)

	settings.StartDay = 20
	_, err = models.GetOrCreatePeriod(mustMonth("2024-08"), settings)
	suite.Require().Nil(err)

	// Legacy documents have no bounds and never match
	suite.Require().Nil(models.DB.Create(&models.Period{Month: mustMonth("2024-09"), PercentSplit: models.DefaultPercentSplit()}).Error)

	tests := []struct {
		name string
		day  types.Day
		want []string
	}{
		{"First day", types.NewDay(2024, time.June, 1), []string{"2024-06"}},
		{"Last day", types.NewDay(2024, time.June, 30), []string{"2024-06"}},
		{"End is exclusive", types.NewDay(2024, time.July, 1), nil},
		{"Start day 20", types.NewDay(2024, time.July, 20), []string{"2024-08"}},
		{"Before everything", types.NewDay(2024, time.May, 31), nil},
		{"Legacy period", types.NewDay(2024, time.September, 10), nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			periods, err := models.PeriodsContaining(tt.day)
			assert.Nil(t, err)

			var months []string
			for _, p := range periods {
				months = append(months, p.Month.String())
			}
			assert.Equal(t, tt.want, months)
		})
	}
}
