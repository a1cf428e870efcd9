package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pacebudget/backend/internal/period"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// settingsID is the primary key of the single settings row.
const settingsID = 1

// Settings are the user's defaults. New periods copy the percent split and
// start day on creation.
type Settings struct {
	ID uint `json:"-" gorm:"primaryKey"`
	Timestamps
	PercentSplit PercentSplit `json:"percentSplit" gorm:"embedded;embeddedPrefix:percent_"`
	StartDay     int          `json:"startDay" example:"25"`  // Day of the month periods start on
	Currency     string       `json:"currency" example:"EUR"` // ISO 4217 code
	Language     string       `json:"language" example:"en"`  // BCP 47 tag used to render insights
}

func (Settings) Self() string {
	return "Settings"
}

// DefaultSettings are used until the user changes them.
func DefaultSettings() Settings {
	return Settings{
		ID:           settingsID,
		PercentSplit: DefaultPercentSplit(),
		StartDay:     period.MinStartDay,
		Currency:     "EUR",
		Language:     "en",
	}
}

// BeforeSave normalizes and validates the settings.
func (s *Settings) BeforeSave(_ *gorm.DB) error {
	s.ID = settingsID
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	s.Language = strings.TrimSpace(s.Language)

	return s.Validate()
}

// Validate checks all settings.
func (s Settings) Validate() error {
	if s.StartDay < period.MinStartDay || s.StartDay > period.MaxStartDay {
		return ErrStartDayOutOfRange
	}

	if err := s.PercentSplit.Validate(); err != nil {
		return err
	}

	if _, err := currency.ParseISO(s.Currency); err != nil {
		return fmt.Errorf("%w, got '%s'", ErrCurrencyInvalid, s.Currency)
	}

	if _, err := language.Parse(s.Language); err != nil {
		return fmt.Errorf("%w, got '%s'", ErrLanguageInvalid, s.Language)
	}

	return nil
}

// Unit returns the currency. Invalid codes fall back to EUR.
func (s Settings) Unit() currency.Unit {
	u, err := currency.ParseISO(s.Currency)
	if err != nil {
		return currency.EUR
	}
	return u
}

// Tag returns the language. Invalid tags fall back to English.
func (s Settings) Tag() language.Tag {
	t, err := language.Parse(s.Language)
	if err != nil {
		return language.English
	}
	return t
}

// GetSettings returns the settings, creating them with the defaults if
// they do not exist yet.
func GetSettings() (Settings, error) {
	var s Settings
	err := DB.First(&s, settingsID).Error
	if err == nil {
		return s, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Settings{}, err
	}

	s = DefaultSettings()
	err = DB.Create(&s).Error
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}
