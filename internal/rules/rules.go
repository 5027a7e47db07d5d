package rules

import (
	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/guard"
)

// All returns shipped rules bound to the table, in registration order.
// A nil table stands for the predefined one.
func All(table *canon.Table) []*guard.Rule {
	if table == nil {
		table = canon.Predefined()
	}

	return []*guard.Rule{
		InvalidRef(table),
		TransmutingNull(table),
	}
}

// Default returns a registry with all shipped rules.
func Default(table *canon.Table) (*guard.Registry, error) {
	reg := guard.NewRegistry()
	for _, rule := range All(table) {
		if err := reg.Register(rule); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
