// README: Maybe carries a value that may be Unknown (distinct from zero).
package types

import "encoding/json"

// Maybe is a value that could not always be determined. An unknown Maybe
// marshals to JSON null and is never silently defaulted to zero.
type Maybe[T any] struct {
	Value T
	Known bool
}

func Known[T any](v T) Maybe[T] {
	return Maybe[T]{Value: v, Known: true}
}

func Unknown[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the value and whether it is known.
func (m Maybe[T]) Get() (T, bool) {
	return m.Value, m.Known
}

func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.Known {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Maybe[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Maybe[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Known(v)
	return nil
}
