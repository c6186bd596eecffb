package conversation

import "encoding/json"

// Opt wraps a JSON field that may be absent, explicitly null, or carry a value.
// A key missing from the payload leaves Set false; "field": null gives
// Set true / Valid false. Plain pointer fields cannot make that distinction,
// which is what makes omit-vs-clear partial updates possible.
type Opt[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true, Valid: true}
}

// Null returns an Opt that was explicitly set to null.
func Null[T any]() Opt[T] {
	return Opt[T]{Set: true}
}

// Ptr returns the value as a pointer, nil when the field was null.
func (o Opt[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set is
// true whenever this runs.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON renders null for absent or cleared values.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
