package tree

import "fmt"

// Kind of a syntax node. Only kinds that rules distinguish are listed,
// everything else is KindOther.
type Kind uint8

const (
	KindOther Kind = iota

	// KindCall is a direct call: callee(args...).
	KindCall

	// KindMethodCall is a receiver call: recv.method(args...).
	KindMethodCall

	// KindMacroCall is a macro invocation.
	KindMacroCall

	// KindPath is a possibly qualified name: a, m::a, pkg.A, a::<T>.
	KindPath

	// KindLiteral is a literal constant.
	KindLiteral
)

var kindValueMap = map[Kind]string{
	KindOther:      "other",
	KindCall:       "call",
	KindMethodCall: "method-call",
	KindMacroCall:  "macro-call",
	KindPath:       "path",
	KindLiteral:    "literal",
}

func (k Kind) String() string {
	v, ok := kindValueMap[k]
	if !ok {
		return fmt.Sprintf("kind-invalid(%d)", k)
	}

	return v
}

// UnmarshalText for reading kinds from typed-tree dumps.
func (k *Kind) UnmarshalText(b []byte) error {
	text := string(b)
	for key, v := range kindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown node kind %q", text)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	v, ok := kindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Kind(%d)", k)
	}

	return []byte(v), nil
}

// NodeID is a stable node identity within its unit, usable as a key into
// the host's type table.
type NodeID uint32

// Node is the base interface implemented by every node of a host tree.
type Node interface {
	Kind() Kind
	ID() NodeID
	Span() Span

	// Children returns direct children in document order.
	Children() []Node
}

// Call is implemented by nodes of KindCall, KindMethodCall and KindMacroCall.
type Call interface {
	Node

	// Callee is the called expression. For method calls it is the method
	// path, the receiver is not a part of Args.
	Callee() Node
	Args() []Node
}

// Literal is implemented by nodes of KindLiteral.
type Literal interface {
	Node

	// IsZero reports an integer literal of value zero.
	IsZero() bool
}

// Unit is the smallest independently analyzable piece of a program,
// a function body usually.
type Unit interface {
	// Name is the unit identity used for ordering and for ignore globs.
	Name() string
	Root() Node
}

// BrokenUnit is implemented by units a host could not build. A unit with
// a non-nil Err has no usable root, Span is its best known location.
type BrokenUnit interface {
	Unit
	Err() error
	Span() Span
}
