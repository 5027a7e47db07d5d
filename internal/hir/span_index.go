package hir

import (
	"fmt"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/refguard/internal/tree"
)

// SpanIndex finds the innermost node covering a file offset. Every unit
// is kept in a layer of its own.
type SpanIndex struct {
	layers []spanLayer
}

type spanLayer map[string]*rbtree.Tree[*spanNode]

// NewSpanIndex creates an empty index.
func NewSpanIndex() *SpanIndex {
	return &SpanIndex{}
}

// spanNode stores a [start,end) range of a node and a nested tree of
// ranges fully contained in it.
type spanNode struct {
	start int
	end   int

	node     tree.Node
	children *rbtree.Tree[*spanNode]
}

// Cmp orders disjoint ranges and reports 0 for any overlap. Overlapping
// ranges of a well-formed tree always nest.
func (n *spanNode) Cmp(other *spanNode) int {
	if n.end <= other.start {
		return -1
	}
	if n.start >= other.end {
		return 1
	}
	return 0
}

func (n *spanNode) contains(other *spanNode) bool {
	return n.start <= other.start && n.end >= other.end
}

// AddTree registers all nodes of the tree as a new layer. Nothing is
// registered if any two nodes partially overlap. Empty ranges cannot be
// found and are skipped.
func (x *SpanIndex) AddTree(root tree.Node) error {
	layer := spanLayer{}

	var err error
	tree.Preorder(root, func(n tree.Node) bool {
		if err == nil {
			err = layer.add(n)
		}
		return err == nil
	})
	if err != nil {
		return err
	}

	x.layers = append(x.layers, layer)
	return nil
}

// Lookup returns the innermost node covering the offset. The narrowest
// one wins across layers, the first added on a tie.
func (x *SpanIndex) Lookup(file string, offset int) (tree.Node, bool) {
	var best *spanNode
	for _, layer := range x.layers {
		s := layer.lookup(file, offset)
		if s == nil {
			continue
		}
		if best == nil || s.end-s.start < best.end-best.start {
			best = s
		}
	}

	if best == nil {
		return nil, false
	}
	return best.node, true
}

// add registers a node. Parents must be added before their children.
func (l spanLayer) add(n tree.Node) error {
	span := n.Span()
	if span.End <= span.Start {
		return nil
	}

	t, ok := l[span.File]
	if !ok {
		t = rbtree.New[*spanNode]()
		l[span.File] = t
	}

	return attach(t, &spanNode{start: span.Start, end: span.End, node: n})
}

func (l spanLayer) lookup(file string, offset int) *spanNode {
	t, ok := l[file]
	if !ok {
		return nil
	}

	key := &spanNode{start: offset, end: offset + 1}
	res := t.Search(key)
	if res == nil {
		return nil
	}

	for res.children != nil {
		child := res.children.Search(key)
		if child == nil {
			break
		}
		res = child
	}

	return res
}

func attach(t *rbtree.Tree[*spanNode], s *spanNode) error {
	r := t.InsertReturn(s)
	if r == s {
		return nil
	}

	switch {
	case r.contains(s):
		if r.children == nil {
			r.children = rbtree.New[*spanNode]()
		}
		return attach(r.children, s)

	case s.contains(r):
		// The pointer kept by the tree now stands for s, the old
		// content goes below it.
		old := *r
		*r = *s
		r.children = rbtree.New[*spanNode]()
		return attach(r.children, &old)

	default:
		return fmt.Errorf(
			"node %d [%d,%d) partially overlaps node %d [%d,%d): %w",
			s.node.ID(), s.start, s.end, r.node.ID(), r.start, r.end, ErrMalformed,
		)
	}
}
