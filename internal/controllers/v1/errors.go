package v1

import (
	"errors"
	"net/http"

	"github.com/pacebudget/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errNowInvalid      = errors.New("the now parameter must be an RFC3339 timestamp")
	errCategoryInvalid = errors.New("the category parameter must be one of needs, wants, savings")
	errLimitNegative   = errors.New("limits must not be negative")
)
