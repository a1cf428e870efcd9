// Package uuid wraps github.com/google/uuid so that resource IDs can be
// bound from URI and query parameters by gin.
package uuid

import (
	"errors"
	"fmt"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s. The empty string is the Nil UUID.
func Parse(s string) (UUID, error) {
	if s == "" {
		return Nil, nil
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: '%s'", ErrInvalid, s)
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}
