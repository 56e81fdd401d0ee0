package ast

import "github.com/shadowplay-lint/shadowplay/internal/location"

// Bound is one end of a min/max pair for the sized type constructors
// (Float, Integer, String). Unset means the bound was omitted; Default
// means the literal word "default" was given, meaning unbounded in that
// direction.
type Bound struct {
	Unset   bool
	Default bool
	Value   float64 // meaningful only when !Unset && !Default
}

// TypeSpecificationVariant is implemented by each named type constructor.
type TypeSpecificationVariant interface {
	isTypeSpecVariant()
}

type FloatType struct{ Min, Max Bound }
type IntegerType struct{ Min, Max Bound }
type StringType struct{ Min, Max Bound }
type NumericType struct{}
type BooleanType struct{}
type UndefType struct{}
type AnyType struct{}

type ArrayType struct {
	Inner    *TypeSpecification // nil if omitted
	Min, Max Bound
}

type HashType struct {
	Key, Value *TypeSpecification // Key is non-nil whenever Value is set
	Min, Max   Bound
}

type PatternType struct{ Regexes []string }
type EnumType struct{ Terms []Term }
type VariantType struct{ Types []*TypeSpecification }
type RegexType struct{ Regex string }

// OptionalType and SensitiveType hold either a Term (InnerTerm) or a
// TypeSpecification (InnerType) — the grammar tries Term first, falling back
// to TypeSpecification; a term that is itself a type is kept in InnerType.
type OptionalType struct {
	InnerTerm Term
	InnerType *TypeSpecification
}

type SensitiveType struct {
	InnerTerm Term
	InnerType *TypeSpecification
}

// StructKey is a Struct[] member key: a string literal, Optional[string], or
// NotUndef[string].
type StructKey struct {
	Literal   string // set when Kind == StructKeyLiteral
	Kind      StructKeyKind
}

type StructKeyKind int

const (
	StructKeyLiteral StructKeyKind = iota
	StructKeyOptional
	StructKeyNotUndef
)

type StructEntry struct {
	Key   StructKey
	Value *TypeSpecification
}

type StructType struct{ Entries []StructEntry }

type TupleType struct {
	Types    []*TypeSpecification
	Min, Max Bound
}

// ExternalType is a CamelCase namespaced custom type, e.g. "A::B::C[x, y]".
type ExternalType struct {
	Name *LowerIdentifier // reused for its namespacing shape; parts are CamelCase segments
	Args []Expr           // nil if no bracketed argument list
}

func (FloatType) isTypeSpecVariant()     {}
func (IntegerType) isTypeSpecVariant()   {}
func (StringType) isTypeSpecVariant()    {}
func (NumericType) isTypeSpecVariant()   {}
func (BooleanType) isTypeSpecVariant()   {}
func (UndefType) isTypeSpecVariant()     {}
func (AnyType) isTypeSpecVariant()       {}
func (ArrayType) isTypeSpecVariant()     {}
func (HashType) isTypeSpecVariant()      {}
func (PatternType) isTypeSpecVariant()   {}
func (EnumType) isTypeSpecVariant()      {}
func (VariantType) isTypeSpecVariant()   {}
func (RegexType) isTypeSpecVariant()     {}
func (OptionalType) isTypeSpecVariant()  {}
func (SensitiveType) isTypeSpecVariant() {}
func (StructType) isTypeSpecVariant()    {}
func (TupleType) isTypeSpecVariant()     {}
func (ExternalType) isTypeSpecVariant()  {}

// TypeSpecification is a parsed type constructor expression, e.g.
// "Optional[String[1, default]]".
type TypeSpecification struct {
	base
	Data TypeSpecificationVariant
}

func (*TypeSpecification) isNode() {}

func NewTypeSpecification(rng location.Range, data TypeSpecificationVariant) *TypeSpecification {
	return &TypeSpecification{base: newBase(rng), Data: data}
}
