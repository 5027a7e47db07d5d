package guard_test

import (
	"errors"
	"testing"

	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

func TestRegistry(t *testing.T) {
	r := guard.NewRegistry()

	code := rgrules.InvalidRef()
	a := &guard.Rule{Name: "a", Code: code, Kinds: []tree.Kind{tree.KindCall}, Chain: []guard.Step{guard.Emit("a")}}
	b := &guard.Rule{Name: "b", Code: code, Kinds: []tree.Kind{tree.KindCall, tree.KindMethodCall}, Chain: []guard.Step{guard.Emit("b")}}

	for _, rule := range []*guard.Rule{a, b} {
		if err := r.Register(rule); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.Register(&guard.Rule{Name: "a", Code: code, Kinds: []tree.Kind{tree.KindCall}, Chain: a.Chain}); !errors.Is(err, guard.ErrDuplicateRule) {
		t.Fatalf("expected ErrDuplicateRule, got %v", err)
	}
	if err := r.Register(&guard.Rule{Name: "c", Code: code, Chain: a.Chain}); err == nil {
		t.Fatal("rule without kinds must be rejected")
	}
	if err := r.Register(&guard.Rule{Name: "d", Code: code, Kinds: []tree.Kind{tree.KindCall}}); err == nil {
		t.Fatal("rule without steps must be rejected")
	}
	if err := r.Register(&guard.Rule{Name: "e", Kinds: []tree.Kind{tree.KindCall}, Chain: a.Chain}); err == nil {
		t.Fatal("rule without a code must be rejected")
	}
	if err := r.Register(&guard.Rule{Name: "f", Code: rgrules.InternalError(), Kinds: []tree.Kind{tree.KindCall}, Chain: a.Chain}); err == nil {
		t.Fatal("the internal error code must be reserved")
	}

	if got := r.ForKind(tree.KindCall); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("rules for call kind must keep registration order: %v", got)
	}
	if got := r.ForKind(tree.KindMethodCall); len(got) != 1 || got[0] != b {
		t.Errorf("unexpected rules for method calls: %v", got)
	}
	if r.Wants(tree.KindLiteral) {
		t.Error("nobody wants literals")
	}
	if rule, ok := r.Lookup("b"); !ok || rule != b {
		t.Error("lookup by name failed")
	}
	if len(r.Rules()) != 2 {
		t.Errorf("got %d rules", len(r.Rules()))
	}
}
