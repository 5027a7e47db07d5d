package hir

import (
	"fmt"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

var _ guard.Resolver = (*Resolver)(nil)

// Resolver turns path nodes into canonical identities of the declarations
// they denote.
type Resolver struct {
	x *Index
}

// Resolve follows aliases and re-exports, maps generic instances to their
// origins and dispatches trait methods called on statically known types to
// the implementing method or to the trait default body.
func (r *Resolver) Resolve(callee tree.Node) (canon.Identity, bool, error) {
	n, ok := callee.(*node)
	if !ok {
		return canon.Identity{}, false, fmt.Errorf("foreign node %T", callee)
	}
	if n.dto.Res == nil || n.dto.Res.Def == 0 {
		return canon.Identity{}, false, nil
	}

	return r.resolve(n.dto.Res.Def, n.dto.Res.Self)
}

func (r *Resolver) resolve(id DefID, self TypeID) (canon.Identity, bool, error) {
	seen := map[DefID]struct{}{}
	for {
		if _, ok := seen[id]; ok {
			return canon.Identity{}, false, fmt.Errorf("declaration %d: alias cycle: %w", id, ErrMalformed)
		}
		seen[id] = struct{}{}

		d, ok := r.x.defs[id]
		if !ok {
			return canon.Identity{}, false, fmt.Errorf("unknown declaration %d: %w", id, ErrMalformed)
		}

		switch d.Kind {
		case DefFn, DefImplMethod:
			return canon.IdentityOf(d.path), true, nil

		case DefAlias, DefInstance:
			id = d.Target

		case DefTraitMethod:
			return r.dispatch(d, self)

		default:
			return canon.Identity{}, false, fmt.Errorf("declaration %d: invalid kind: %w", id, ErrMalformed)
		}
	}
}

// dispatch picks the method a trait method call statically lands on.
func (r *Resolver) dispatch(method *indexedDef, self TypeID) (canon.Identity, bool, error) {
	if self == 0 {
		return canon.Identity{}, false, nil
	}
	t, ok := r.x.types[self]
	if !ok {
		return canon.Identity{}, false, fmt.Errorf("unknown self type %d: %w", self, ErrMalformed)
	}
	if !t.Kind.static() {
		return canon.Identity{}, false, nil
	}

	key, err := r.x.typeKey(self)
	if err != nil {
		return canon.Identity{}, false, err
	}

	trait := method.path[:len(method.path)-1].String()
	name := method.path[len(method.path)-1]
	if im, ok := r.x.impls[implKey{trait: trait, self: key}]; ok {
		for _, m := range im.Methods {
			d := r.x.defs[m]
			if d.path[len(d.path)-1] == name {
				return canon.IdentityOf(d.path), true, nil
			}
		}
	}

	if method.Default {
		return canon.IdentityOf(method.path), true, nil
	}

	// The impl lives outside the dump.
	return canon.Identity{}, false, nil
}
