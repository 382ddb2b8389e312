// Package ast holds the semantic tree built from an IDL parse tree.
//
// Every entity is immutable once its builder returns. Name and doc-comment
// strings are substrings of the original input buffer except for the
// synthesized vtable target name of an interface reference, which is the one
// allocation the resolver makes.
package ast

// Modifier is a single type qualifier. Only ModifierPointer affects
// rendering today; ModifierConst is carried so a future const-correct
// renderer is a non-breaking change.
type Modifier int

const (
	ModifierPointer Modifier = iota
	ModifierConst
)

// Type is a resolved base type name plus its qualifiers, ordered
// outermost-first after resolution.
type Type struct {
	Base      string
	Modifiers []Modifier
}

// Parameter is one method parameter. Attributes are free-form directionality
// hints ("in", "out", "retval") preserved in source order.
type Parameter struct {
	Attributes []string
	Type       Type
	Name       string
}

// Method is one interface operation. Parameter order is significant and
// preserved in output.
type Method struct {
	DocComment string
	ReturnType Type
	Name       string
	Parameters []Parameter
}

// Variant is one enum member
type Variant struct {
	DocComment string
	Name       string
}

// TypedefEnum is an enum declared inside an interface body but hoisted to
// top level in output
type TypedefEnum struct {
	DocComment string
	Name       string
	Variants   []Variant
}

// Field is one struct member
type Field struct {
	DocComment string
	Name       string
	Type       Type
}

// TypedefStruct is a struct declared inside an interface body but hoisted to
// top level in output
type TypedefStruct struct {
	DocComment string
	Name       string
	Fields     []Field
}

// Interface is one IDL interface: single parent, opaque unique identifier,
// methods and nested typedefs in declaration order.
type Interface struct {
	DocComment string
	Name       string
	Parent     string
	UUID       string
	Attributes []string
	Enums      []TypedefEnum
	Structs    []TypedefStruct
	Methods    []Method
}

// Document is the root entity: interfaces in source declaration order. It
// owns the whole tree for the duration of one run and is discarded after
// rendering.
type Document struct {
	Interfaces []Interface
}
