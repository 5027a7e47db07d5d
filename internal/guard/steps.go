package guard

import (
	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/tree"
)

// DirectCall accepts a plain call node, not a method call or a macro.
func DirectCall() Step {
	return Step{
		Name: "direct-call",
		Run: func(m *Match) (bool, error) {
			if m.Node.Kind() != tree.KindCall {
				return false, nil
			}
			call, ok := m.Node.(tree.Call)
			if !ok {
				return false, nil
			}

			m.Call = call
			return true, nil
		},
	}
}

// Steps reading the call decline unless DirectCall has accepted the node
// earlier in the chain.

// PathCallee accepts a call whose callee is a simple path expression.
func PathCallee() Step {
	return Step{
		Name: "path-callee",
		Run: func(m *Match) (bool, error) {
			if m.Call == nil {
				return false, nil
			}
			callee := m.Call.Callee()
			return callee != nil && callee.Kind() == tree.KindPath, nil
		},
	}
}

// Arity accepts a call with exactly n arguments.
func Arity(n int) Step {
	return Step{
		Name: "arity",
		Run: func(m *Match) (bool, error) {
			return m.Call != nil && len(m.Call.Args()) == n, nil
		},
	}
}

// ResultShape accepts a node whose inferred type has the given shape.
func ResultShape(want Shape) Step {
	return Step{
		Name: "result-shape",
		Run: func(m *Match) (bool, error) {
			shape, err := m.Env.Oracle.ShapeOf(m.Node)
			if err != nil {
				return false, err
			}

			m.Shape = shape
			return shape == want, nil
		},
	}
}

// ResolveCallee resolves the callee into its canonical identity and
// declines for statically unresolvable callees.
func ResolveCallee() Step {
	return Step{
		Name: "resolve-callee",
		Run: func(m *Match) (bool, error) {
			if m.Call == nil || m.Call.Callee() == nil {
				return false, nil
			}
			id, ok, err := m.Env.Resolver.Resolve(m.Call.Callee())
			if err != nil || !ok {
				return false, err
			}

			m.Identity = id
			return true, nil
		},
	}
}

// CalleeTag accepts a resolved callee registered in the table under the tag.
func CalleeTag(table *canon.Table, want canon.Tag) Step {
	return Step{
		Name: "callee-tag",
		Run: func(m *Match) (bool, error) {
			tag, ok := table.Lookup(m.Identity)
			if !ok || tag != want {
				return false, nil
			}

			m.Tag = tag
			return true, nil
		},
	}
}

// ClassifyCallee emits the summary chosen by the tag of a resolved callee
// and declines when the callee has no tag from the list.
func ClassifyCallee(table *canon.Table, summaries map[canon.Tag]string) Step {
	return Step{
		Name: "classify-callee",
		Run: func(m *Match) (bool, error) {
			tag, ok := table.Lookup(m.Identity)
			if !ok {
				return false, nil
			}
			summary, ok := summaries[tag]
			if !ok {
				return false, nil
			}

			m.Tag = tag
			m.Emit(summary)
			return true, nil
		},
	}
}

// Arg applies a predicate to the i-th call argument.
func Arg(name string, i int, pred func(m *Match, arg tree.Node) (bool, error)) Step {
	return Step{
		Name: name,
		Run: func(m *Match) (bool, error) {
			if m.Call == nil {
				return false, nil
			}
			args := m.Call.Args()
			if i < 0 || i >= len(args) {
				return false, nil
			}

			return pred(m, args[i])
		},
	}
}

// Emit is a final step emitting a fixed summary.
func Emit(summary string) Step {
	return Step{
		Name: "emit",
		Run: func(m *Match) (bool, error) {
			m.Emit(summary)
			return true, nil
		},
	}
}
