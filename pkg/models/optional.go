package models

import "encoding/json"

// Optional is a JSON field that distinguishes an absent key from an explicit
// null. Set is true when the key appeared in the request body; Value is nil
// when the body carried null. A plain pointer cannot make this distinction
// because encoding/json leaves the field nil in both cases.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// NewOptional wraps v as a present, non-null value.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// NullOptional is a present field carrying an explicit null.
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
