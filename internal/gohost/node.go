package gohost

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"fortio.org/safecast"

	"github.com/sirkon/refguard/internal/tree"
)

// node adapts a go/ast node to the tree view.
type node struct {
	ast  ast.Node
	kind tree.Kind
	id   tree.NodeID
	span tree.Span
	zero bool

	// call is set for callees: the call they are called by.
	call *ast.CallExpr

	callee   *node
	args     []tree.Node
	children []tree.Node
}

var (
	_ tree.Call    = (*node)(nil)
	_ tree.Literal = (*node)(nil)
)

func (n *node) Kind() tree.Kind       { return n.kind }
func (n *node) ID() tree.NodeID       { return n.id }
func (n *node) Span() tree.Span       { return n.span }
func (n *node) Args() []tree.Node     { return n.args }
func (n *node) Children() []tree.Node { return n.children }
func (n *node) IsZero() bool          { return n.zero }

func (n *node) Callee() tree.Node {
	if n.callee == nil {
		return nil
	}
	return n.callee
}

// unit is a function declaration or a package variable specification.
type unit struct {
	name string
	root *node
}

func (u *unit) Name() string    { return u.name }
func (u *unit) Root() tree.Node { return u.root }

// NewUnit builds a unit of a function declaration with a body.
func NewUnit(fset *token.FileSet, info *types.Info, fn *ast.FuncDecl) (tree.Unit, error) {
	if fn.Body == nil {
		return nil, fmt.Errorf("function %s has no body", fn.Name.Name)
	}

	b := &unitBuilder{fset: fset, info: info}
	root, err := b.build(fn.Body)
	if err != nil {
		return nil, fmt.Errorf("build unit %s: %w", fn.Name.Name, err)
	}

	return &unit{name: funcName(info, fn), root: root}, nil
}

// NewVarUnits builds a unit per specification of a package level var
// declaration having initial values. Other declarations yield no units.
// Units are named pkgpath.var:name after the first declared name.
func NewVarUnits(fset *token.FileSet, info *types.Info, decl *ast.GenDecl) ([]tree.Unit, error) {
	if decl.Tok != token.VAR {
		return nil, nil
	}

	var res []tree.Unit
	for _, s := range decl.Specs {
		vs, ok := s.(*ast.ValueSpec)
		if !ok || len(vs.Values) == 0 {
			continue
		}

		name := varName(info, vs)
		b := &unitBuilder{fset: fset, info: info}
		root, err := b.build(vs)
		if err != nil {
			return nil, fmt.Errorf("build unit %s: %w", name, err)
		}
		res = append(res, &unit{name: name, root: root})
	}

	return res, nil
}

// declUnits builds units of a top level declaration.
func declUnits(fset *token.FileSet, info *types.Info, decl ast.Decl) ([]tree.Unit, error) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Body == nil {
			return nil, nil
		}
		u, err := NewUnit(fset, info, d)
		if err != nil {
			return nil, err
		}
		return []tree.Unit{u}, nil
	case *ast.GenDecl:
		return NewVarUnits(fset, info, d)
	default:
		return nil, nil
	}
}

func varName(info *types.Info, vs *ast.ValueSpec) string {
	name := vs.Names[0].Name
	for _, id := range vs.Names {
		if obj := info.Defs[id]; obj != nil && obj.Pkg() != nil {
			return obj.Pkg().Path() + ".var:" + name
		}
	}

	return "var:" + name
}

func funcName(info *types.Info, fn *ast.FuncDecl) string {
	if obj, ok := info.Defs[fn.Name].(*types.Func); ok {
		return obj.FullName()
	}

	return fn.Name.Name
}

type unitBuilder struct {
	fset  *token.FileSet
	info  *types.Info
	count int
}

func (b *unitBuilder) build(n ast.Node) (*node, error) {
	b.count++
	id, err := safecast.Conv[uint32](b.count)
	if err != nil {
		return nil, fmt.Errorf("number nodes: %w", err)
	}

	res := &node{
		ast:  n,
		kind: b.kindOf(n),
		id:   tree.NodeID(id),
		span: b.spanOf(n),
	}
	if lit, ok := n.(*ast.BasicLit); ok && lit.Kind == token.INT {
		v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
		res.zero = v.Kind() == constant.Int && constant.Sign(v) == 0
	}

	var kids []ast.Node
	ast.Inspect(n, func(c ast.Node) bool {
		if c == n {
			return true
		}
		if c != nil {
			kids = append(kids, c)
		}
		return false
	})
	for _, kid := range kids {
		child, err := b.build(kid)
		if err != nil {
			return nil, err
		}
		res.children = append(res.children, child)
	}

	// Children of a call are its function and then its arguments.
	if call, ok := n.(*ast.CallExpr); ok && len(res.children) == len(call.Args)+1 {
		callee := res.children[0].(*node)
		for {
			if _, ok := callee.ast.(*ast.ParenExpr); !ok || len(callee.children) == 0 {
				break
			}
			callee = callee.children[0].(*node)
		}
		callee.call = call
		res.callee = callee
		res.args = res.children[1:]
	}

	return res, nil
}

func (b *unitBuilder) spanOf(n ast.Node) tree.Span {
	start := b.fset.Position(n.Pos())
	end := b.fset.Position(n.End())
	return tree.Span{
		File:    start.Filename,
		Start:   start.Offset,
		End:     end.Offset,
		Line:    start.Line,
		Col:     start.Column,
		EndLine: end.Line,
		EndCol:  end.Column,
	}
}

func (b *unitBuilder) kindOf(n ast.Node) tree.Kind {
	switch x := n.(type) {
	case *ast.CallExpr:
		if tv, ok := b.info.Types[x.Fun]; ok && tv.IsType() {
			// A conversion.
			return tree.KindOther
		}
		if sel, ok := ast.Unparen(x.Fun).(*ast.SelectorExpr); ok {
			if s, ok := b.info.Selections[sel]; ok && s.Kind() == types.MethodVal {
				return tree.KindMethodCall
			}
		}
		return tree.KindCall

	case *ast.Ident:
		return tree.KindPath

	case *ast.SelectorExpr:
		if _, ok := b.info.Selections[x]; ok {
			// Field or method selection, not a qualified name.
			return tree.KindOther
		}
		return tree.KindPath

	case *ast.IndexExpr:
		return b.instanceKind(x.X)

	case *ast.IndexListExpr:
		return b.instanceKind(x.X)

	case *ast.BasicLit:
		return tree.KindLiteral

	default:
		return tree.KindOther
	}
}

// instanceKind tells explicit instantiations of generic functions from
// indexing.
func (b *unitBuilder) instanceKind(x ast.Expr) tree.Kind {
	var id *ast.Ident
	switch v := x.(type) {
	case *ast.Ident:
		id = v
	case *ast.SelectorExpr:
		id = v.Sel
	default:
		return tree.KindOther
	}

	if _, ok := b.info.Instances[id]; ok {
		return tree.KindPath
	}
	return tree.KindOther
}
