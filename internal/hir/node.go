package hir

import (
	"strconv"
	"strings"

	"github.com/sirkon/refguard/internal/tree"
)

// node adapts a dump node to the tree view.
type node struct {
	dto      *Node
	id       tree.NodeID
	span     tree.Span
	callee   tree.Node
	args     []tree.Node
	children []tree.Node
}

var (
	_ tree.Call    = (*node)(nil)
	_ tree.Literal = (*node)(nil)
)

func (n *node) Kind() tree.Kind   { return n.dto.Kind }
func (n *node) ID() tree.NodeID   { return n.id }
func (n *node) Span() tree.Span   { return n.span }
func (n *node) Callee() tree.Node { return n.callee }
func (n *node) Args() []tree.Node { return n.args }

func (n *node) Children() []tree.Node {
	res := make([]tree.Node, 0, len(n.args)+len(n.children)+1)
	if n.callee != nil {
		res = append(res, n.callee)
	}
	res = append(res, n.args...)
	return append(res, n.children...)
}

// IsZero reports an integer literal of value zero with an optional type
// suffix and digit separators: 0, 0usize, 0x0, 0_u8.
func (n *node) IsZero() bool {
	if n.dto.Kind != tree.KindLiteral {
		return false
	}

	text := strings.ReplaceAll(n.dto.Lit, "_", "")
	for _, suffix := range intSuffixes {
		if rest, ok := strings.CutSuffix(text, suffix); ok && rest != "" {
			text = rest
			break
		}
	}

	v, err := strconv.ParseUint(text, 0, 64)
	return err == nil && v == 0
}

var intSuffixes = []string{
	"usize", "isize",
	"u128", "i128",
	"u64", "i64",
	"u32", "i32",
	"u16", "i16",
	"u8", "i8",
}

// unit adapts a dump unit to the tree view. A unit failed to build has
// err set and no root.
type unit struct {
	name string
	root *node
	err  error
	span tree.Span
}

var _ tree.BrokenUnit = (*unit)(nil)

func (u *unit) Name() string { return u.name }

func (u *unit) Root() tree.Node {
	if u.root == nil {
		return nil
	}
	return u.root
}

func (u *unit) Err() error { return u.err }

func (u *unit) Span() tree.Span {
	if u.root != nil {
		return u.root.Span()
	}
	return u.span
}
