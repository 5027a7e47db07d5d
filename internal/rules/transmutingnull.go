package rules

import (
	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

// TransmutingNullSummary is the summary of the transmuting null rule.
const TransmutingNullSummary = "transmuting a known null pointer into a reference"

// TransmutingNullName is the rule name used in configs and diagnoses.
const TransmutingNullName = "transmuting_null"

// TransmutingNull flags transmutation of a literal zero or of a null
// pointer constructor result into a reference:
//
//	let r: &u64 = std::mem::transmute(0usize);
//	let r: &u64 = std::mem::transmute(std::ptr::null::<u64>());
func TransmutingNull(table *canon.Table) *guard.Rule {
	return &guard.Rule{
		Name:     TransmutingNullName,
		Code:     rgrules.TransmutingNull(),
		Category: rgrules.CategoryCorrectness,
		Severity: diag.SevError,
		Doc: "Checks for transmute calls which would receive a null pointer.\n" +
			"Transmuting a null pointer into a reference is undefined behavior.",
		Help:  "A reference must never be null, use a raw pointer or Option<&T> instead.",
		Kinds: []tree.Kind{tree.KindCall},
		Chain: []guard.Step{
			guard.DirectCall(),
			guard.PathCallee(),
			guard.Arity(1),
			guard.ResultShape(guard.ShapeReference),
			guard.ResolveCallee(),
			guard.CalleeTag(table, canon.TagTransmute),
			guard.Arg("null-arg", 0, isNull(table)),
			guard.Emit(TransmutingNullSummary),
		},
	}
}

// isNull accepts a literal zero or a zero-arg call of a null pointer constructor.
func isNull(table *canon.Table) func(m *guard.Match, arg tree.Node) (bool, error) {
	return func(m *guard.Match, arg tree.Node) (bool, error) {
		switch arg.Kind() {
		case tree.KindLiteral:
			lit, ok := arg.(tree.Literal)
			return ok && lit.IsZero(), nil
		case tree.KindCall:
		default:
			return false, nil
		}

		call, ok := arg.(tree.Call)
		if !ok || len(call.Args()) != 0 {
			return false, nil
		}
		callee := call.Callee()
		if callee == nil || callee.Kind() != tree.KindPath {
			return false, nil
		}

		id, ok, err := m.Env.Resolver.Resolve(callee)
		if err != nil || !ok {
			return false, err
		}
		tag, ok := table.Lookup(id)
		return ok && tag == canon.TagNullPtr, nil
	}
}
