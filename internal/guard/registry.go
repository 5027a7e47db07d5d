package guard

import (
	"errors"
	"fmt"

	"github.com/sirkon/refguard/internal/rgrules"
	"github.com/sirkon/refguard/internal/tree"
)

// ErrDuplicateRule is returned when a rule name is registered twice.
var ErrDuplicateRule = errors.New("rule is already registered")

// Registry holds rules in registration order.
type Registry struct {
	rules  []*Rule
	byName map[string]*Rule
	byKind map[tree.Kind][]*Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]*Rule{},
		byKind: map[tree.Kind][]*Rule{},
	}
}

// Register adds a rule. It is the only extension point needed to add a
// detection pattern.
func (r *Registry) Register(rule *Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("register rule %s: empty name", rule.Code)
	}
	if _, ok := r.byName[rule.Name]; ok {
		return fmt.Errorf("register rule %s: %w", rule.Name, ErrDuplicateRule)
	}
	if !rule.Code.Known() {
		return fmt.Errorf("register rule %s: unknown code %s", rule.Name, rule.Code.ID())
	}
	if rule.Code == rgrules.InternalError() {
		return fmt.Errorf("register rule %s: code %s is reserved for analysis failures", rule.Name, rule.Code.ID())
	}
	if len(rule.Kinds) == 0 {
		return fmt.Errorf("register rule %s: no node kinds to visit", rule.Name)
	}
	if len(rule.Chain) == 0 {
		return fmt.Errorf("register rule %s: empty guard chain", rule.Name)
	}

	r.rules = append(r.rules, rule)
	r.byName[rule.Name] = rule
	for _, k := range rule.Kinds {
		r.byKind[k] = append(r.byKind[k], rule)
	}

	return nil
}

// Rules returns a copy of all registered rules.
func (r *Registry) Rules() []*Rule {
	result := make([]*Rule, len(r.rules))
	copy(result, r.rules)
	return result
}

// Lookup returns a rule by its name.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// ForKind returns rules interested in the given node kind, in registration order.
func (r *Registry) ForKind(k tree.Kind) []*Rule {
	return r.byKind[k]
}

// Wants reports whether any rule wants the kind.
func (r *Registry) Wants(k tree.Kind) bool {
	return len(r.byKind[k]) > 0
}
