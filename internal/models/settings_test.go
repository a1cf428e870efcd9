package models_test

import (
	"github.com/pacebudget/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func (suite *TestSuiteStandard) TestGetSettingsCreatesDefaults() {
	s, err := models.GetSettings()
	suite.Require().Nil(err)

	suite.Assert().Equal(1, s.StartDay)
	suite.Assert().Equal("EUR", s.Currency)
	suite.Assert().Equal(currency.EUR, s.Unit())
	suite.Assert().Equal(language.English, s.Tag())

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Settings{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	_, err = models.GetSettings()
	suite.Require().Nil(err)
	suite.Require().Nil(models.DB.Model(&models.Settings{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count, "settings must only be created once")
}

func (suite *TestSuiteStandard) TestSettingsNormalize() {
	s, err := models.GetSettings()
	suite.Require().Nil(err)

	s.Currency = " usd "
	s.Language = "it"
	suite.Require().Nil(models.DB.Save(&s).Error)

	stored, err := models.GetSettings()
	suite.Require().Nil(err)
	suite.Assert().Equal("USD", stored.Currency)
	suite.Assert().Equal(language.Italian, stored.Tag())
}

func (suite *TestSuiteStandard) TestSettingsValidation() {
	tests := []struct {
		name   string
		modify func(*models.Settings)
		err    error
	}{
		{"Start day zero", func(s *models.Settings) { s.StartDay = 0 }, models.ErrStartDayOutOfRange},
		{"Start day 29", func(s *models.Settings) { s.StartDay = 29 }, models.ErrStartDayOutOfRange},
		{"Currency", func(s *models.Settings) { s.Currency = "EURO" }, models.ErrCurrencyInvalid},
		{"Language", func(s *models.Settings) { s.Language = "not a tag" }, models.ErrLanguageInvalid},
		{"Negative split", func(s *models.Settings) { s.PercentSplit.Savings = decimal.NewFromInt(-1) }, models.ErrPercentSplitInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			s := models.DefaultSettings()
			tt.modify(&s)
			suite.Assert().ErrorIs(s.Validate(), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestPercentSplitTolerance() {
	split := models.PercentSplit{
		Needs:   decimal.RequireFromString("0.3334"),
		Wants:   decimal.RequireFromString("0.3334"),
		Savings: decimal.RequireFromString("0.3334"),
	}
	suite.Assert().Nil(split.Validate())

	// An incomplete split is accepted
	suite.Assert().Nil(models.PercentSplit{Needs: decimal.RequireFromString("0.4")}.Validate())
}
