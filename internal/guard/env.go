package guard

import (
	"fmt"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/tree"
)

// Shape is a coarse structural classification of a resolved type.
type Shape uint8

const (
	ShapeOther Shape = iota
	ShapeReference
	ShapeRawPointer
	ShapeValue
)

func (s Shape) String() string {
	switch s {
	case ShapeOther:
		return "other"
	case ShapeReference:
		return "reference"
	case ShapeRawPointer:
		return "raw-pointer"
	case ShapeValue:
		return "value"
	default:
		return fmt.Sprintf("shape-invalid(%d)", s)
	}
}

// Resolver produces canonical identities of callees.
type Resolver interface {
	// Resolve returns the identity of the declaration the callee denotes,
	// following re-exports, aliases and static trait dispatch. ok is false
	// when the callee is not statically resolvable, which is not an error.
	Resolve(callee tree.Node) (id canon.Identity, ok bool, err error)
}

// Oracle classifies statically inferred types of expressions.
type Oracle interface {
	// ShapeOf returns the shape of the node's type. For calls this is the
	// result type. An error means the upstream type table is inconsistent.
	ShapeOf(expr tree.Node) (Shape, error)
}

// Env is what steps may consult.
type Env struct {
	Resolver Resolver
	Oracle   Oracle
}
