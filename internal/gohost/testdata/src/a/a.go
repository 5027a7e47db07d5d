package a

import (
	"mem"
	m "mem"
	"unsafe"
)

type thing struct{ n int }

var global = mem.Zeroed[*int]() // want "null reference"

var plain = mem.Zeroed[int]()

var (
	declared       *int
	grouped, other = mem.Uninit[*thing](), 1 // want "uninitialized reference"
)

func annotated() {
	var r *int = mem.Zeroed[*int]() // want "null reference"
	_ = r
}

func inferred() {
	r := mem.Zeroed[*thing]() // want "null reference"
	_ = r
}

func aliased() {
	_ = m.Zeroed[*int]() // want "null reference"
}

func parenthesized() {
	_ = (mem.Zeroed[*int])() // want "null reference"
}

func uninit() {
	_ = mem.Uninit[*thing]() // want "uninitialized reference"
}

func values() {
	_ = mem.Zeroed[int]()
	_ = mem.Zeroed[thing]()
	_ = mem.Zeroed[[4]byte]()
	_ = mem.Zeroed[unsafe.Pointer]()
	_ = mem.Zeroed[uintptr]()
}

func arity() {
	_ = mem.ZeroedLike(new(int))
}

func dynamic(f func() *int) {
	_ = f()
	z := mem.Zeroed[*int]
	_ = z()
}

type maker interface{ Make() *int }

func methods(mk maker) {
	_ = mk.Make()
	var p mem.Pool
	_ = p.Get()
}

func nested() {
	_ = consume(mem.Zeroed[*int]()) // want "null reference"
}

func consume(p *int) *int { return p }
