package models

// Optional holds a value that may be absent from the source row.
// The zero value is absent, which is distinct from a present zero.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Present reports whether a value exists
func (o Optional[T]) Present() bool {
	return o.valid
}

// OrElse returns the value, or def when absent
func (o Optional[T]) OrElse(def T) T {
	if !o.valid {
		return def
	}
	return o.value
}
