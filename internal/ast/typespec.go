package ast

import "github.com/lindstrom-oss/puplint/internal/srcrange"

// TypeSpec is the sealed interface implemented by every type-specification
// variant (`String`, `Optional[Integer]`, `Struct[{…}]`, a bare resource
// type reference, and so on).
type TypeSpec interface {
	Node
	typeSpecNode()
}

// SimpleTypeKind enumerates the built-in scalar/container type names that
// carry no parameters of their own meaning beyond an optional argument list
// (Integer[1,10], String[1], Array[String], …).
type SimpleTypeKind int

const (
	TypeAny SimpleTypeKind = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeArray
	TypeHash
	TypeUndef
	TypePattern
	TypeRegex
	TypeEnum
	TypeVariant
	TypeTuple
	TypeDefault
	TypeCallable
	TypeSensitiveType
)

// SimpleType is a named built-in type, optionally parameterized by nested
// TypeSpecs (e.g. `Array[String]`, `Variant[Integer, String]`) and/or
// literal arguments (e.g. `Integer[1, 10]`, `Enum['a', 'b']`).
type SimpleType struct {
	base
	Kind   SimpleTypeKind
	Params []TypeSpec
	Args   []Expr
}

func (*SimpleType) typeSpecNode() {}

// OptionalType is `Optional[T]`.
type OptionalType struct {
	base
	Inner TypeSpec
}

func (*OptionalType) typeSpecNode() {}

// StructKey is one key of a `Struct[{…}]` type.
type StructKey struct {
	Name     string
	Optional bool
	Value    TypeSpec
	Range    srcrange.Range
}

// StructType is `Struct[{ key => T, … }]`.
type StructType struct {
	base
	Keys *List[StructKey]
}

func (*StructType) typeSpecNode() {}

// TypeReference is a bare reference to a user-defined resource type, class,
// or type alias, e.g. `File`, `My::Type`.
type TypeReference struct {
	base
	Identifier *CamelIdentifier
}

func (*TypeReference) typeSpecNode() {}
