package gohost

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

// NewEnv creates the resolver and the oracle over type checker results.
func NewEnv(info *types.Info) guard.Env {
	return guard.Env{
		Resolver: &Resolver{info: info},
		Oracle:   &Oracle{info: info},
	}
}

var _ guard.Resolver = (*Resolver)(nil)

// Resolver resolves callees of static calls. Calls of interface methods
// and of function values are not resolvable.
type Resolver struct {
	info *types.Info
}

// Resolve implements guard.Resolver.
func (r *Resolver) Resolve(callee tree.Node) (canon.Identity, bool, error) {
	n, ok := callee.(*node)
	if !ok {
		return canon.Identity{}, false, fmt.Errorf("foreign node %T", callee)
	}
	if n.call == nil {
		return canon.Identity{}, false, nil
	}

	fn := typeutil.StaticCallee(r.info, n.call)
	if fn == nil || fn.Pkg() == nil {
		return canon.Identity{}, false, nil
	}

	return canon.IdentityOf(FuncPath(fn)), true, nil
}

// FuncPath returns the canonical path of the generic origin of a function.
func FuncPath(fn *types.Func) canon.Path {
	fn = fn.Origin()

	path := canon.Path{fn.Pkg().Path()}
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		t := sig.Recv().Type()
		if p, ok := t.(*types.Pointer); ok {
			t = p.Elem()
		}
		if named, ok := types.Unalias(t).(*types.Named); ok {
			path = append(path, named.Obj().Name())
		}
	}

	return append(path, fn.Name())
}

var _ guard.Oracle = (*Oracle)(nil)

// Oracle classifies types computed by the type checker.
type Oracle struct {
	info *types.Info
}

// ShapeOf implements guard.Oracle.
func (o *Oracle) ShapeOf(expr tree.Node) (guard.Shape, error) {
	n, ok := expr.(*node)
	if !ok {
		return guard.ShapeOther, fmt.Errorf("foreign node %T", expr)
	}

	e, ok := n.ast.(ast.Expr)
	if !ok {
		return guard.ShapeOther, nil
	}
	t := o.info.TypeOf(e)
	if t == nil {
		return guard.ShapeOther, nil
	}

	return ShapeOfType(t), nil
}

// ShapeOfType classifies a Go type.
func ShapeOfType(t types.Type) guard.Shape {
	t = types.Unalias(t)
	if _, ok := t.(*types.TypeParam); ok {
		return guard.ShapeOther
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer:
		return guard.ShapeReference
	case *types.Basic:
		switch u.Kind() {
		case types.UnsafePointer, types.Uintptr:
			return guard.ShapeRawPointer
		case types.Invalid, types.UntypedNil:
			return guard.ShapeOther
		default:
			return guard.ShapeValue
		}
	case *types.Struct, *types.Array:
		return guard.ShapeValue
	default:
		return guard.ShapeOther
	}
}
