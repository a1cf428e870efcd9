package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrAmountNegative      = errors.New("the amount must not be negative")
	ErrStartDayOutOfRange  = errors.New("the start day must be between 1 and 28")
	ErrPercentSplitInvalid = errors.New("the percent split must not be negative and must not sum to more than 1")
	ErrCurrencyInvalid     = errors.New("the currency must be an ISO 4217 currency code")
	ErrLanguageInvalid     = errors.New("the language must be a BCP 47 language tag")
)
