package hir

import (
	"github.com/sirkon/refguard/internal/tree"
)

// DefID identifies a declaration within a crate. Zero is no declaration.
type DefID int

// TypeID identifies a type within a crate. Zero is "unknown type".
type TypeID int

// Crate is a typed tree dump.
type Crate struct {
	Name  string `json:"name"            yaml:"name"            msgpack:"name"`
	Files []File `json:"files"           yaml:"files"           msgpack:"files"`
	Defs  []Def  `json:"defs"            yaml:"defs"            msgpack:"defs"`
	Types []Type `json:"types"           yaml:"types"           msgpack:"types"`
	Impls []Impl `json:"impls,omitempty" yaml:"impls,omitempty" msgpack:"impls,omitempty"`
	Units []Unit `json:"units"           yaml:"units"           msgpack:"units"`
}

// File is a source file. Text is optional, without it spans have no
// line and column.
type File struct {
	Name string `json:"name"           yaml:"name"           msgpack:"name"`
	Text string `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
}

// Def is a declaration.
type Def struct {
	ID   DefID   `json:"id"   yaml:"id"   msgpack:"id"`
	Kind DefKind `json:"kind" yaml:"kind" msgpack:"kind"`

	// Path is a canonical path for functions and methods and the path
	// of the alias itself for aliases.
	Path string `json:"path" yaml:"path" msgpack:"path"`

	// Target is the aliased declaration of an alias or the generic
	// origin of an instance.
	Target DefID `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`

	// Default is set for trait methods having a default body.
	Default bool `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// Type is an entry of the type table.
type Type struct {
	ID   TypeID   `json:"id"   yaml:"id"   msgpack:"id"`
	Kind TypeKind `json:"kind" yaml:"kind" msgpack:"kind"`

	// Name of an ADT, a scalar or a type parameter.
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`

	// Elem of references, pointers, arrays and slices.
	Elem TypeID `json:"elem,omitempty" yaml:"elem,omitempty" msgpack:"elem,omitempty"`

	// Mut of references and pointers.
	Mut bool `json:"mut,omitempty" yaml:"mut,omitempty" msgpack:"mut,omitempty"`
}

// Impl is a trait implementation for a type.
type Impl struct {
	// Trait is the canonical path of the trait.
	Trait   string  `json:"trait"   yaml:"trait"   msgpack:"trait"`
	Self    TypeID  `json:"self"    yaml:"self"    msgpack:"self"`
	Methods []DefID `json:"methods" yaml:"methods" msgpack:"methods"`
}

// Unit is an analyzable body.
type Unit struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`

	// File is an index into Crate.Files.
	File int  `json:"file" yaml:"file" msgpack:"file"`
	Root Node `json:"root" yaml:"root" msgpack:"root"`
}

// Node is an expression tree node. Start and End are byte offsets of a
// half-open range within the unit file.
type Node struct {
	ID    int       `json:"id"    yaml:"id"    msgpack:"id"`
	Kind  tree.Kind `json:"kind"  yaml:"kind"  msgpack:"kind"`
	Start int       `json:"start" yaml:"start" msgpack:"start"`
	End   int       `json:"end"   yaml:"end"   msgpack:"end"`

	// Type of the expression, a call result type for calls.
	Type TypeID `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`

	// Res is a resolution of a path node. Nil for unresolvable paths:
	// locals, function pointers, trait objects.
	Res *Res `json:"res,omitempty" yaml:"res,omitempty" msgpack:"res,omitempty"`

	// Lit is a literal text: 0, 0usize, 0x0, "str".
	Lit string `json:"lit,omitempty" yaml:"lit,omitempty" msgpack:"lit,omitempty"`

	Callee   *Node  `json:"callee,omitempty"   yaml:"callee,omitempty"   msgpack:"callee,omitempty"`
	Args     []Node `json:"args,omitempty"     yaml:"args,omitempty"     msgpack:"args,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// Res is what a path denotes.
type Res struct {
	Def DefID `json:"def" yaml:"def" msgpack:"def"`

	// Self is the statically known self type of a trait method path.
	Self TypeID `json:"self,omitempty" yaml:"self,omitempty" msgpack:"self,omitempty"`
}
