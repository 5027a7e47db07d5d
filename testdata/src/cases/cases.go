package cases

func zero[T any]() T {
	var v T
	return v
}

func junk[T any]() T {
	var v T
	return v
}

func direct() {
	_ = zero[*int]()    // want `null reference`
	_ = junk[*string]() // want `uninitialized reference`
	_ = zero[int]()
	_ = (zero[*int])() // want `null reference`
}

func skipped() {
	_ = zero[*int]()
}

type holder struct {
	p *int
}

func (h *holder) reset() {
	h.p = junk[*int]() // want `uninitialized reference`
}
