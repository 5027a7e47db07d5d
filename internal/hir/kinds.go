package hir

import (
	"encoding"
	"fmt"
)

// DefKind is a kind of declaration.
type DefKind uint8

const (
	DefInvalid DefKind = iota

	// DefFn is a free function.
	DefFn

	// DefAlias is a use declaration or a re-export.
	DefAlias

	// DefInstance is a generic instantiation.
	DefInstance

	// DefTraitMethod is a method declared in a trait.
	DefTraitMethod

	// DefImplMethod is a method defined in an impl block.
	DefImplMethod
)

var defKindValueMap = map[DefKind]string{
	DefFn:          "fn",
	DefAlias:       "alias",
	DefInstance:    "instance",
	DefTraitMethod: "trait-method",
	DefImplMethod:  "impl-method",
}

func (k DefKind) String() string {
	v, ok := defKindValueMap[k]
	if !ok {
		return fmt.Sprintf("def-kind-invalid(%d)", k)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*DefKind)(nil)
	_ encoding.TextMarshaler   = DefKind(0)
)

func (k *DefKind) UnmarshalText(b []byte) error {
	text := string(b)
	for key, v := range defKindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown declaration kind %q", text)
}

func (k DefKind) MarshalText() ([]byte, error) {
	v, ok := defKindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid DefKind(%d)", k)
	}

	return []byte(v), nil
}

// TypeKind is a kind of type table entry.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeRef
	TypePtr
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeChar
	TypeStr
	TypeAdt
	TypeTuple
	TypeArray
	TypeSlice
	TypeUnit
	TypeNever
	TypeFnPtr
	TypeDyn
	TypeParam
	TypeInfer
	TypeError
)

var typeKindValueMap = map[TypeKind]string{
	TypeRef:   "ref",
	TypePtr:   "ptr",
	TypeBool:  "bool",
	TypeInt:   "int",
	TypeUint:  "uint",
	TypeFloat: "float",
	TypeChar:  "char",
	TypeStr:   "str",
	TypeAdt:   "adt",
	TypeTuple: "tuple",
	TypeArray: "array",
	TypeSlice: "slice",
	TypeUnit:  "unit",
	TypeNever: "never",
	TypeFnPtr: "fn-ptr",
	TypeDyn:   "dyn",
	TypeParam: "param",
	TypeInfer: "infer",
	TypeError: "error",
}

func (k TypeKind) String() string {
	v, ok := typeKindValueMap[k]
	if !ok {
		return fmt.Sprintf("type-kind-invalid(%d)", k)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*TypeKind)(nil)
	_ encoding.TextMarshaler   = TypeKind(0)
)

func (k *TypeKind) UnmarshalText(b []byte) error {
	text := string(b)
	for key, v := range typeKindValueMap {
		if v == text {
			*k = key
			return nil
		}
	}

	return fmt.Errorf("unknown type kind %q", text)
}

func (k TypeKind) MarshalText() ([]byte, error) {
	v, ok := typeKindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid TypeKind(%d)", k)
	}

	return []byte(v), nil
}

// static reports whether the type is known exactly at compile time, so
// that a trait method called on it dispatches to a single impl.
func (k TypeKind) static() bool {
	switch k {
	case TypeDyn, TypeParam, TypeInfer, TypeError, TypeInvalid:
		return false
	default:
		return true
	}
}
