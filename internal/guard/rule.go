package guard

import (
	"fmt"

	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

// Step is a single guard of a chain. Run returns false to decline.
type Step struct {
	Name string
	Run  func(m *Match) (bool, error)
}

// Rule is a named guard chain. Rules are values without mutable state.
type Rule struct {
	Name     string
	Code     rgrules.Rule
	Category rgrules.Category
	Severity diag.Severity

	// Doc is a multi-line rule explanation for listings.
	Doc string

	// Help is attached to every diagnosis of the rule.
	Help string

	// Kinds are node kinds the rule wants to be visited at.
	Kinds []tree.Kind

	Chain []Step
}

// Eval runs the chain over the node. It stops at the first declining step.
func (r *Rule) Eval(node tree.Node, env Env) (Outcome, error) {
	m := &Match{Node: node, Env: env}

	for _, step := range r.Chain {
		ok, err := step.Run(m)
		if err != nil {
			return nil, fmt.Errorf("rule %s step %s: %w", r.Name, step.Name, err)
		}
		if !ok {
			return NotMatched{Step: step.Name}, nil
		}
	}

	if !m.emitted {
		return nil, fmt.Errorf("rule %s: chain completed without a diagnosis", r.Name)
	}

	return Matched{
		Diagnosis: diag.Diagnosis{
			Span:     node.Span(),
			Severity: r.Severity,
			Class:    diag.ClassLint,
			Code:     r.Code,
			Category: r.Category,
			Rule:     r.Name,
			Summary:  m.summary,
			Help:     r.Help,
		},
	}, nil
}

// WithSeverity returns a copy of the rule with another severity.
func (r *Rule) WithSeverity(sev diag.Severity) *Rule {
	cp := *r
	cp.Severity = sev
	return &cp
}
