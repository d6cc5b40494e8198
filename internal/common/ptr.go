package common

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Clone returns a pointer to a copy of *p, or nil if p is nil. New Records use
// it so they never share pointed-to values with the Old Record they came from.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// Deref returns *p, or the zero value if p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}

	return *p
}
