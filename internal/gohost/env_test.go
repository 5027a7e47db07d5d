package gohost

import (
	"go/types"
	"testing"

	"github.com/sirkon/refguard/internal/guard"
)

func TestShapeOfType(t *testing.T) {
	named := types.NewNamed(types.NewTypeName(0, nil, "S", nil), types.NewStruct(nil, nil), nil)
	tparam := types.NewTypeParam(types.NewTypeName(0, nil, "T", nil), types.NewInterfaceType(nil, nil))

	tests := []struct {
		name string
		typ  types.Type
		want guard.Shape
	}{
		{"pointer", types.NewPointer(types.Typ[types.Int]), guard.ShapeReference},
		{"pointer to named", types.NewPointer(named), guard.ShapeReference},
		{"unsafe pointer", types.Typ[types.UnsafePointer], guard.ShapeRawPointer},
		{"uintptr", types.Typ[types.Uintptr], guard.ShapeRawPointer},
		{"int", types.Typ[types.Int], guard.ShapeValue},
		{"string", types.Typ[types.String], guard.ShapeValue},
		{"struct", named, guard.ShapeValue},
		{"array", types.NewArray(types.Typ[types.Byte], 4), guard.ShapeValue},
		{"slice", types.NewSlice(types.Typ[types.Byte]), guard.ShapeOther},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), guard.ShapeOther},
		{"nil", types.Typ[types.UntypedNil], guard.ShapeOther},
		{"invalid", types.Typ[types.Invalid], guard.ShapeOther},
		{"type parameter", tparam, guard.ShapeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShapeOfType(tt.typ); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
