package mem

// Zeroed returns a zero value of T.
func Zeroed[T any]() T {
	var v T
	return v
}

// Uninit pretends to return T made of garbage.
func Uninit[T any]() T {
	var v T
	return v
}

// ZeroedLike returns a zero value of the type of its argument.
func ZeroedLike[T any](T) T {
	var v T
	return v
}

// Pool hands out zero values.
type Pool struct{}

// Get returns a nil pointer.
func (Pool) Get() *int {
	return nil
}
