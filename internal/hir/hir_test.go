package hir_test

import (
	"bytes"
	_ "embed"
	"errors"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/hir"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/rules"
	"github.com/sirkon/refguard/internal/visit"
)

//go:embed testdata/app.yaml
var appYAML []byte

func loadApp(t *testing.T) *hir.Index {
	t.Helper()

	c, err := hir.Decode(bytes.NewReader(appYAML), hir.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	x, err := c.Index()
	if err != nil {
		t.Fatal(err)
	}

	return x
}

type finding struct {
	Unit    string
	Rule    string
	Summary string
	Start   int
	End     int
}

func TestScenarios(t *testing.T) {
	x := loadApp(t)

	table, err := canon.NewTable(map[string]canon.Tag{
		"app::Thing::zeroed_ref":  canon.TagZeroFill,
		"app::Zeroed::zeroed_ref": canon.TagUninit,
	})
	if err != nil {
		t.Fatal(err)
	}
	table.Freeze()

	reg, err := rules.Default(table)
	if err != nil {
		t.Fatal(err)
	}

	v := visit.New(reg, nil)
	r := diag.NewReporter()
	var failed []string
	for _, u := range x.Units() {
		if err := v.Visit(u, x.Env(), r); err != nil {
			if !errors.Is(err, hir.ErrMalformed) {
				t.Errorf("unit %s: unexpected error kind: %v", u.Name(), err)
			}
			failed = append(failed, u.Name())
		}
	}

	if !reflect.DeepEqual(failed, []string{"app::broken"}) {
		t.Errorf("unexpected failed units %v", failed)
	}

	var got []finding
	for _, d := range r.Reports() {
		got = append(got, finding{
			Unit:    d.Unit,
			Rule:    d.Rule,
			Summary: d.Summary,
			Start:   d.Span.Start,
			End:     d.Span.End,
		})
	}

	const (
		invalidRef      = rules.InvalidRefName
		transmutingNull = rules.TransmutingNullName
	)
	expected := []finding{
		{"app::annotated", invalidRef, rules.ZeroRefSummary, 132, 143},
		{"app::uninit", invalidRef, rules.UninitRefSummary, 197, 210},
		{"app::inferred", invalidRef, rules.ZeroRefSummary, 394, 423},
		{"app::dispatch", invalidRef, rules.ZeroRefSummary, 614, 645},
		{"app::dispatch", invalidRef, rules.UninitRefSummary, 667, 698},
		{"app::transmuted", transmutingNull, rules.TransmutingNullSummary, 789, 817},
		{"app::transmuted", transmutingNull, rules.TransmutingNullSummary, 848, 894},
	}

	if len(got) != len(expected)+1 {
		t.Fatalf("got %d diagnoses, want %d lints and one internal error", len(got), len(expected))
	}
	lints := got[:len(got)-1]
	if !reflect.DeepEqual(expected, lints) {
		deepequal.SideBySide(t, "findings", expected, lints)
	}

	internal := r.Reports()[len(got)-1]
	if internal.Class != diag.ClassInternal || internal.Code != rgrules.InternalError() || internal.Unit != "app::broken" {
		t.Errorf("unexpected internal diagnosis %+v", internal)
	}
}

func TestSpansHaveLines(t *testing.T) {
	x := loadApp(t)

	n, ok := x.Spans().Lookup("src/lib.rs", 135)
	if !ok {
		t.Fatal("no node at offset 135")
	}

	span := n.Span()
	if span.Start != 132 || span.End != 141 {
		t.Errorf("innermost node must be the callee path, got %s", span)
	}
	if span.Line != 5 || span.Col != 30 {
		t.Errorf("got %d:%d, want 5:30", span.Line, span.Col)
	}
	if got := span.String(); got != "src/lib.rs:5:30" {
		t.Errorf("got %q", got)
	}

	if _, ok := x.Spans().Lookup("src/lib.rs", 0); ok {
		t.Error("use declarations belong to no unit")
	}
	if _, ok := x.Spans().Lookup("src/main.rs", 135); ok {
		t.Error("unknown file must have no nodes")
	}
}

func TestCodecsAgree(t *testing.T) {
	c, err := hir.Decode(bytes.NewReader(appYAML), hir.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []hir.Format{hir.FormatJSON, hir.FormatMsgPack, hir.FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := hir.Encode(&buf, c, f); err != nil {
				t.Fatal(err)
			}
			got, err := hir.Decode(&buf, f)
			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(c, got) {
				deepequal.SideBySide(t, "crate", c, got)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want hir.Format
		err  bool
	}{
		{path: "a.json", want: hir.FormatJSON},
		{path: "dir/a.YAML", want: hir.FormatYAML},
		{path: "a.yml", want: hir.FormatYAML},
		{path: "a.msgpack", want: hir.FormatMsgPack},
		{path: "a.txt", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := hir.FormatOf(tt.path)
			if tt.err {
				if !errors.Is(err, hir.ErrUnknownFormat) {
					t.Fatalf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
