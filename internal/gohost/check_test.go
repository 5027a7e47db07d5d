package gohost_test

import (
	"testing"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/gohost"
	"github.com/sirkon/refguard/internal/rules"
	"github.com/sirkon/refguard/internal/visit"
)

const snippet = `package snippet

func Zeroed[T any]() T {
	var v T
	return v
}

type Holder struct{}

func (Holder) Zeroed() *int { return nil }

func f() {
	a := Zeroed[*int]()
	b := Zeroed[int]()
	var h Holder
	c := h.Zeroed()
	_, _, _ = a, b, c
}

var global = Zeroed[*int]()
`

func TestCheckSource(t *testing.T) {
	table, err := canon.NewTable(map[string]canon.Tag{
		"snippet::Zeroed":         canon.TagZeroFill,
		"snippet::Holder::Zeroed": canon.TagZeroFill,
	})
	if err != nil {
		t.Fatal(err)
	}
	table.Freeze()

	reg, err := rules.Default(table)
	if err != nil {
		t.Fatal(err)
	}

	ds, err := gohost.CheckSource("snippet.go", []byte(snippet), visit.New(reg, nil))
	if err != nil {
		t.Fatal(err)
	}

	if len(ds) != 2 {
		t.Fatalf("two diagnoses expected, got %v", ds)
	}
	d := ds[0]
	if d.Summary != rules.ZeroRefSummary || d.Unit != "snippet.f" {
		t.Errorf("unexpected diagnosis %+v", d)
	}
	if d.Span.Line != 13 || d.Span.Col != 7 || d.Span.File != "snippet.go" {
		t.Errorf("unexpected position %s", d.Span)
	}

	global := ds[1]
	if global.Summary != rules.ZeroRefSummary || global.Unit != "snippet.var:global" {
		t.Errorf("package variable initializer must be checked, got %+v", global)
	}
	if global.Span.Line != 20 || global.Span.Col != 14 {
		t.Errorf("unexpected position %s", global.Span)
	}
}

func TestCheckSourceRejectsBrokenCode(t *testing.T) {
	reg, err := rules.Default(nil)
	if err != nil {
		t.Fatal(err)
	}
	v := visit.New(reg, nil)

	if _, err := gohost.CheckSource("x.go", []byte("package x\nfunc f() {"), v); err == nil {
		t.Error("syntax error expected")
	}
	if _, err := gohost.CheckSource("x.go", []byte("package x\nfunc f() { g() }\n"), v); err == nil {
		t.Error("type error expected")
	}
}
