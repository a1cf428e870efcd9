package v1

import (
	"github.com/pacebudget/backend/internal/models"
)

// SettingsEditable are the settings a user can change.
type SettingsEditable struct {
	PercentSplit models.PercentSplit `json:"percentSplit"`           // Default split for new periods
	StartDay     int                 `json:"startDay" example:"25"`  // Day of the month periods start on, 1 to 28
	Currency     string              `json:"currency" example:"EUR"` // ISO 4217 code
	Language     string              `json:"language" example:"it"`  // BCP 47 tag used to render insights
}

func (editable SettingsEditable) apply(s models.Settings) models.Settings {
	s.PercentSplit = editable.PercentSplit
	s.StartDay = editable.StartDay
	s.Currency = editable.Currency
	s.Language = editable.Language
	return s
}

type SettingsLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/settings"` // The settings themselves
}

type Settings struct {
	models.Timestamps
	SettingsEditable
	Links SettingsLinks `json:"links"`
}

func newSettings(url string, model models.Settings) Settings {
	return Settings{
		Timestamps: model.Timestamps,
		SettingsEditable: SettingsEditable{
			PercentSplit: model.PercentSplit,
			StartDay:     model.StartDay,
			Currency:     model.Currency,
			Language:     model.Language,
		},
		Links: SettingsLinks{
			Self: url + "/v1/settings",
		},
	}
}

type SettingsResponse struct {
	Error *string   `json:"error" example:"the start day must be between 1 and 28"` // The error, if any occurred
	Data  *Settings `json:"data"`                                                    // The settings
}
