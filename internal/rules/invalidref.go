package rules

import (
	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

// Summaries of the invalid reference rule.
const (
	ZeroRefSummary   = "null reference"
	UninitRefSummary = "uninitialized reference"
)

// InvalidRefHelp is attached to every invalid reference diagnosis.
const InvalidRefHelp = "Creation of a null or uninitialized reference is undefined behavior; " +
	"see https://doc.rust-lang.org/reference/behavior-considered-undefined.html"

// InvalidRefName is the rule name used in configs and diagnoses.
const InvalidRefName = "invalid_ref"

// InvalidRef flags creation of references with uninitialized or null value:
//
//	let bad_ref: &usize = std::mem::zeroed();
//	let also_bad_ref: &usize = std::mem::uninitialized();
//
// Creation of such references is undefined behavior even if they are never
// dereferenced.
func InvalidRef(table *canon.Table) *guard.Rule {
	return &guard.Rule{
		Name:     InvalidRefName,
		Code:     rgrules.InvalidRef(),
		Category: rgrules.CategoryCorrectness,
		Severity: diag.SevError,
		Doc: "Checks for creation of references with uninitialized or null value.\n" +
			"Creation of null references and uninitialized references is undefined\n" +
			"behavior, even if they are not dereferenced.",
		Help:  InvalidRefHelp,
		Kinds: []tree.Kind{tree.KindCall},
		Chain: []guard.Step{
			guard.DirectCall(),
			guard.PathCallee(),
			guard.Arity(0),
			guard.ResultShape(guard.ShapeReference),
			guard.ResolveCallee(),
			guard.ClassifyCallee(table, map[canon.Tag]string{
				canon.TagZeroFill: ZeroRefSummary,
				canon.TagUninit:   UninitRefSummary,
			}),
		},
	}
}
