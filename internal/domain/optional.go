package domain

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a value that was supplied from one that was not.
// A JSON null decodes to an absent Optional.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// ApplyTo overwrites *dst with a copy of the value when the Optional is present.
func (o Optional[T]) ApplyTo(dst **T) {
	if !o.Present {
		return
	}
	v := o.Value
	*dst = &v
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
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

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
