package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirkon/refguard/internal/config"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/hir"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/rules"
	"github.com/sirkon/refguard/internal/session"
	"github.com/sirkon/refguard/internal/tree"
	"github.com/sirkon/refguard/internal/tree/treetest"
	"github.com/sirkon/refguard/internal/visit"
)

func newVisitor(t *testing.T) *visit.Visitor {
	t.Helper()

	reg := guard.NewRegistry()
	err := reg.Register(&guard.Rule{
		Name:     "ref",
		Code:     rgrules.InvalidRef(),
		Severity: diag.SevError,
		Kinds:    []tree.Kind{tree.KindCall},
		Chain: []guard.Step{
			guard.DirectCall(),
			guard.ResultShape(guard.ShapeReference),
			guard.Emit("ref"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	return visit.New(reg, nil)
}

// unitJob builds a unit of n reference calls. Every job has its own mock
// environment since mock counters are not synchronized.
func unitJob(name string, n int, broken bool) session.Job {
	b := treetest.Builder{File: name + ".rs"}
	env := treetest.NewEnv()

	var calls []tree.Node
	for i := 0; i < n; i++ {
		c := b.Call(b.Path(fmt.Sprintf("f%d", i)))
		env.Shapes[c.ID()] = guard.ShapeReference
		calls = append(calls, c)
	}
	if broken {
		c := b.Call(b.Path("broken"))
		env.Broken[c.ID()] = true
		calls = append(calls, c)
	}

	return session.Job{
		Unit: &treetest.Unit{UnitName: name, RootNode: b.Block(calls...)},
		Env:  env.Guard(),
	}
}

func TestRunMergesInInputOrder(t *testing.T) {
	var jobs []session.Job
	for i := 0; i < 40; i++ {
		jobs = append(jobs, unitJob(fmt.Sprintf("u%02d", i), i%4, false))
	}

	for _, workers := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprintf("jobs=%d", workers), func(t *testing.T) {
			res, err := session.Run(context.Background(), newVisitor(t), jobs, session.Options{Jobs: workers})
			if err != nil {
				t.Fatal(err)
			}

			var want []string
			for i := 0; i < 40; i++ {
				for j := 0; j < i%4; j++ {
					want = append(want, fmt.Sprintf("u%02d.rs", i))
				}
			}

			if len(res.Diagnoses) != len(want) {
				t.Fatalf("got %d diagnoses, want %d", len(res.Diagnoses), len(want))
			}
			var prev diag.Diagnosis
			for i, d := range res.Diagnoses {
				if d.Span.File != want[i] {
					t.Errorf("diagnosis %d: file %s, want %s", i, d.Span.File, want[i])
				}
				if i > 0 && d.Span.File == prev.Span.File && d.Span.Start <= prev.Span.Start {
					t.Errorf("diagnosis %d: traversal order broken: %s after %s", i, d, prev)
				}
				prev = d
			}
			if !res.HasErrors() {
				t.Error("error severity must be seen")
			}
		})
	}
}

func TestRunKeepsGoingAfterFailure(t *testing.T) {
	jobs := []session.Job{
		unitJob("first", 1, false),
		unitJob("broken", 2, true),
		unitJob("last", 1, false),
	}

	res, err := session.Run(context.Background(), newVisitor(t), jobs, session.Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Failed) != 1 || res.Failed[0] != "broken" {
		t.Errorf("unexpected failed units %v", res.Failed)
	}

	var units, classes []string
	for _, d := range res.Diagnoses {
		units = append(units, d.Unit)
		classes = append(classes, d.Class.String())
	}
	wantUnits := []string{"first", "broken", "last"}
	wantClasses := []string{diag.ClassLint.String(), diag.ClassInternal.String(), diag.ClassLint.String()}
	if fmt.Sprint(units) != fmt.Sprint(wantUnits) || fmt.Sprint(classes) != fmt.Sprint(wantClasses) {
		t.Errorf("got units %v classes %v, want %v %v", units, classes, wantUnits, wantClasses)
	}
}

func TestRunIgnore(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore = []string{"vendor::*"}
	m, err := cfg.Matcher()
	if err != nil {
		t.Fatal(err)
	}

	jobs := []session.Job{
		unitJob("app::main", 1, false),
		unitJob("vendor::dep", 3, false),
		unitJob("vendor::broken", 0, true),
	}

	res, err := session.Run(context.Background(), newVisitor(t), jobs, session.Options{Ignore: m})
	if err != nil {
		t.Fatal(err)
	}

	if res.Skipped != 2 {
		t.Errorf("skipped %d units, want 2", res.Skipped)
	}
	if len(res.Failed) != 0 {
		t.Errorf("ignored units must not fail: %v", res.Failed)
	}
	if len(res.Diagnoses) != 1 || res.Diagnoses[0].Unit != "app::main" {
		t.Errorf("unexpected diagnoses %v", res.Diagnoses)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []session.Job{unitJob("a", 1, false), unitJob("b", 1, false)}
	_, err := session.Run(ctx, newVisitor(t), jobs, session.Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	res, err := session.Run(context.Background(), newVisitor(t), nil, session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnoses) != 0 || res.HasErrors() {
		t.Errorf("unexpected result %+v", res)
	}
}

// twoUnitCrate holds app::f reporting a null reference and a clean app::g.
func twoUnitCrate() *hir.Crate {
	return &hir.Crate{
		Name:  "app",
		Files: []hir.File{{Name: "lib.rs", Text: "fn f() {\n    let r: &usize = zeroed();\n}\nfn g() {\n    g();\n}\n"}},
		Defs: []hir.Def{
			{ID: 1, Kind: hir.DefFn, Path: "core::mem::zeroed"},
			{ID: 2, Kind: hir.DefFn, Path: "app::g"},
		},
		Types: []hir.Type{
			{ID: 1, Kind: hir.TypeUint, Name: "usize"},
			{ID: 2, Kind: hir.TypeRef, Elem: 1},
			{ID: 3, Kind: hir.TypeUnit},
		},
		Units: []hir.Unit{
			{
				Name: "app::f",
				Root: hir.Node{
					ID: 1, Kind: tree.KindOther, Start: 0, End: 41,
					Children: []hir.Node{{
						ID: 2, Kind: tree.KindCall, Start: 29, End: 37, Type: 2,
						Callee: &hir.Node{ID: 3, Kind: tree.KindPath, Start: 29, End: 35, Res: &hir.Res{Def: 1}},
					}},
				},
			},
			{
				Name: "app::g",
				Root: hir.Node{
					ID: 1, Kind: tree.KindOther, Start: 41, End: 61,
					Children: []hir.Node{{
						ID: 2, Kind: tree.KindCall, Start: 54, End: 57, Type: 3,
						Callee: &hir.Node{ID: 3, Kind: tree.KindPath, Start: 54, End: 55, Res: &hir.Res{Def: 2}},
					}},
				},
			},
		},
	}
}

func TestRunIsolatesMalformedUnits(t *testing.T) {
	tests := []struct {
		name   string
		failed string
		spoil  func(u *hir.Unit)
	}{
		{
			name:  "healthy",
			spoil: func(u *hir.Unit) {},
		},
		{
			name:   "range beyond text",
			failed: "app::g",
			spoil:  func(u *hir.Unit) { u.Root.End = 500 },
		},
		{
			name:   "duplicate node id",
			failed: "app::g",
			spoil:  func(u *hir.Unit) { u.Root.Children[0].Callee.ID = 2 },
		},
		{
			name:   "negative node id",
			failed: "app::g",
			spoil:  func(u *hir.Unit) { u.Root.ID = -1 },
		},
		{
			name:   "file out of range",
			failed: "app::g",
			spoil:  func(u *hir.Unit) { u.File = 3 },
		},
		{
			name:   "inverted range",
			failed: "app::g",
			spoil:  func(u *hir.Unit) { u.Root.Children[0].End = 50 },
		},
		{
			name:   "partial overlap",
			failed: "app::g",
			spoil: func(u *hir.Unit) {
				u.Root.Children = append(u.Root.Children, hir.Node{ID: 9, Kind: tree.KindOther, Start: 56, End: 60})
			},
		},
		{
			name:   "empty name",
			failed: "#1",
			spoil:  func(u *hir.Unit) { u.Name = "" },
		},
	}

	reg, err := rules.Default(nil)
	if err != nil {
		t.Fatal(err)
	}
	v := visit.New(reg, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := twoUnitCrate()
			tt.spoil(&c.Units[1])

			x, err := c.Index()
			if err != nil {
				t.Fatalf("a broken unit must not fail the crate: %v", err)
			}

			res, err := session.Run(context.Background(), v, session.FromIndex(x), session.Options{Jobs: 2})
			if err != nil {
				t.Fatal(err)
			}

			if len(res.Diagnoses) == 0 {
				t.Fatal("diagnosis of app::f is lost")
			}
			first := res.Diagnoses[0]
			if first.Unit != "app::f" || first.Rule != rules.InvalidRefName || first.Summary != rules.ZeroRefSummary {
				t.Errorf("unexpected diagnosis %+v", first)
			}
			if first.Span.Start != 29 || first.Span.End != 37 {
				t.Errorf("unexpected span %s", first.Span)
			}

			if tt.failed == "" {
				if len(res.Diagnoses) != 1 || len(res.Failed) != 0 {
					t.Errorf("unexpected result %+v", res)
				}
				return
			}

			if len(res.Diagnoses) != 2 {
				t.Fatalf("want a lint and an internal diagnosis, got %v", res.Diagnoses)
			}
			internal := res.Diagnoses[1]
			if internal.Class != diag.ClassInternal || internal.Code != rgrules.InternalError() || internal.Unit != tt.failed {
				t.Errorf("unexpected internal diagnosis %+v", internal)
			}
			if len(res.Failed) != 1 || res.Failed[0] != tt.failed {
				t.Errorf("unexpected failed units %v", res.Failed)
			}
		})
	}
}
