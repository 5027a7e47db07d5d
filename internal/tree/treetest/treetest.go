// Package treetest provides a minimal in-memory typed tree with a mock
// type table and symbol table for testing rules and the visitor without
// any real host.
package treetest

import (
	"errors"
	"fmt"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

// ErrBroken is returned by the mock tables for nodes marked as broken.
var ErrBroken = errors.New("broken upstream data")

// Node is a generic mock node.
type Node struct {
	NodeID   tree.NodeID
	NodeKind tree.Kind
	NodeSpan tree.Span

	// Name is a path text for KindPath nodes.
	Name string

	// Zero marks literal zero for KindLiteral nodes.
	Zero bool

	CalleeNode tree.Node
	ArgNodes   []tree.Node
	Kids       []tree.Node
}

func (n *Node) Kind() tree.Kind   { return n.NodeKind }
func (n *Node) ID() tree.NodeID   { return n.NodeID }
func (n *Node) Span() tree.Span   { return n.NodeSpan }
func (n *Node) Callee() tree.Node { return n.CalleeNode }
func (n *Node) Args() []tree.Node { return n.ArgNodes }
func (n *Node) IsZero() bool      { return n.Zero }

func (n *Node) Children() []tree.Node {
	var res []tree.Node
	if n.CalleeNode != nil {
		res = append(res, n.CalleeNode)
	}
	res = append(res, n.ArgNodes...)
	return append(res, n.Kids...)
}

var (
	_ tree.Call    = (*Node)(nil)
	_ tree.Literal = (*Node)(nil)
)

// Builder hands out sequential ids and spans within a single file.
type Builder struct {
	File string
	next tree.NodeID
}

func (b *Builder) node(kind tree.Kind) *Node {
	b.next++
	start := int(b.next) * 10
	return &Node{
		NodeID:   b.next,
		NodeKind: kind,
		NodeSpan: tree.Span{File: b.File, Start: start, End: start + 5, Line: int(b.next), Col: 1},
	}
}

// Path creates a path node.
func (b *Builder) Path(name string) *Node {
	n := b.node(tree.KindPath)
	n.Name = name
	return n
}

// Lit creates a literal node.
func (b *Builder) Lit(zero bool) *Node {
	n := b.node(tree.KindLiteral)
	n.Zero = zero
	return n
}

// Call creates a direct call node.
func (b *Builder) Call(callee tree.Node, args ...tree.Node) *Node {
	n := b.node(tree.KindCall)
	n.CalleeNode = callee
	n.ArgNodes = args
	return n
}

// MethodCall creates a method call node.
func (b *Builder) MethodCall(callee tree.Node, args ...tree.Node) *Node {
	n := b.node(tree.KindMethodCall)
	n.CalleeNode = callee
	n.ArgNodes = args
	return n
}

// Macro creates a macro call node.
func (b *Builder) Macro(callee tree.Node, args ...tree.Node) *Node {
	n := b.node(tree.KindMacroCall)
	n.CalleeNode = callee
	n.ArgNodes = args
	return n
}

// Block creates a container node.
func (b *Builder) Block(kids ...tree.Node) *Node {
	n := b.node(tree.KindOther)
	n.Kids = kids
	return n
}

// Unit is a mock syntactic unit.
type Unit struct {
	UnitName string
	RootNode tree.Node
}

func (u *Unit) Name() string    { return u.UnitName }
func (u *Unit) Root() tree.Node { return u.RootNode }

// Env is a mock symbol table and type table.
type Env struct {
	// Symbols maps path text seen at call sites to canonical paths.
	// Missing entries are unresolvable.
	Symbols map[string]string

	// Shapes maps node ids to shapes, missing entries are ShapeOther.
	Shapes map[tree.NodeID]guard.Shape

	// Broken node ids make the oracle fail.
	Broken map[tree.NodeID]bool

	// Counters of the calls made.
	Resolves int
	Shapings int
}

// NewEnv creates an empty mock environment.
func NewEnv() *Env {
	return &Env{
		Symbols: map[string]string{},
		Shapes:  map[tree.NodeID]guard.Shape{},
		Broken:  map[tree.NodeID]bool{},
	}
}

// Guard wraps the mock into a guard environment.
func (e *Env) Guard() guard.Env {
	return guard.Env{Resolver: e, Oracle: e}
}

// Resolve implements guard.Resolver.
func (e *Env) Resolve(callee tree.Node) (canon.Identity, bool, error) {
	e.Resolves++
	n, ok := callee.(*Node)
	if !ok {
		return canon.Identity{}, false, fmt.Errorf("unexpected callee %T", callee)
	}

	target, ok := e.Symbols[n.Name]
	if !ok {
		return canon.Identity{}, false, nil
	}
	p, err := canon.ParsePath(target)
	if err != nil {
		return canon.Identity{}, false, err
	}

	return canon.IdentityOf(p), true, nil
}

// ShapeOf implements guard.Oracle.
func (e *Env) ShapeOf(expr tree.Node) (guard.Shape, error) {
	e.Shapings++
	if e.Broken[expr.ID()] {
		return guard.ShapeOther, fmt.Errorf("node %d: %w", expr.ID(), ErrBroken)
	}

	return e.Shapes[expr.ID()], nil
}
