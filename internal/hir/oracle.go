package hir

import (
	"fmt"

	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/tree"
)

var _ guard.Oracle = (*Oracle)(nil)

// Oracle classifies node types using the crate type table.
type Oracle struct {
	x *Index
}

// ShapeOf returns the shape of the node type. Nodes without a type give
// ShapeOther, a type missing in the table is an error.
func (o *Oracle) ShapeOf(expr tree.Node) (guard.Shape, error) {
	n, ok := expr.(*node)
	if !ok {
		return guard.ShapeOther, fmt.Errorf("foreign node %T", expr)
	}
	if n.dto.Type == 0 {
		return guard.ShapeOther, nil
	}

	t, ok := o.x.types[n.dto.Type]
	if !ok {
		return guard.ShapeOther, fmt.Errorf("node %d: unknown type %d: %w", n.dto.ID, n.dto.Type, ErrMalformed)
	}

	return shapeOf(t.Kind), nil
}

func shapeOf(k TypeKind) guard.Shape {
	switch k {
	case TypeRef:
		return guard.ShapeReference
	case TypePtr:
		return guard.ShapeRawPointer
	case TypeBool, TypeInt, TypeUint, TypeFloat, TypeChar, TypeStr,
		TypeAdt, TypeTuple, TypeArray, TypeSlice, TypeUnit:
		return guard.ShapeValue
	default:
		return guard.ShapeOther
	}
}

// TypeName renders the node type for listings, empty for untyped nodes.
func (o *Oracle) TypeName(expr tree.Node) string {
	n, ok := expr.(*node)
	if !ok || n.dto.Type == 0 {
		return ""
	}

	key, err := o.x.typeKey(n.dto.Type)
	if err != nil {
		return "?"
	}
	return key
}
