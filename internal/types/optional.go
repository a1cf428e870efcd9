package types

import "encoding/json"

// Optional is a value that may be unknown. Unknown values marshal to null.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a known value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an unknown value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is known.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// MarshalJSON implements the json.Marshaler interface.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = Some(v)
	return nil
}
