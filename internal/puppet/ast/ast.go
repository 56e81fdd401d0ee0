// Package ast defines shadowplay's Puppet abstract syntax tree: terms,
// expressions, type specifications, statements, and toplevel definitions,
// each carrying a location.Range and, where applicable, a leading comment
// block. Every node type embeds base, mirroring how pulumi-yaml's ast.Expr
// hierarchy embeds exprNode.
package ast

import "github.com/shadowplay-lint/shadowplay/internal/location"

// base is embedded by every AST node, giving it a Range and an optional
// leading comment block (the text of any `#`-comments directly preceding
// the node, preserved so the pretty-printer can reproduce them).
type base struct {
	rng      location.Range
	comments []string
}

func (b *base) Range() location.Range { return b.rng }
func (b *base) Comments() []string    { return b.comments }
func (b *base) SetComments(c []string) {
	b.comments = c
}

func newBase(rng location.Range) base {
	return base{rng: rng}
}

// Node is implemented by every AST type.
type Node interface {
	Range() location.Range
	isNode()
}

// ---- Identifiers and variables ----

// LowerIdentifier is a namespaced lowercase name, e.g. "foo::bar".
type LowerIdentifier struct {
	base
	Parts      []string
	IsToplevel bool
}

func (l *LowerIdentifier) isNode() {}

func (l *LowerIdentifier) String() string {
	s := ""
	for i, p := range l.Parts {
		if i > 0 {
			s += "::"
		}
		s += p
	}
	if l.IsToplevel {
		s = "::" + s
	}
	return s
}

func NewLowerIdentifier(rng location.Range, parts []string, toplevel bool) *LowerIdentifier {
	return &LowerIdentifier{base: newBase(rng), Parts: parts, IsToplevel: toplevel}
}

// Variable is a `$name` reference. IsLocalScope is derived from a leading
// underscore in the identifier's first segment.
type Variable struct {
	base
	Identifier   *LowerIdentifier
	IsLocalScope bool
}

func (v *Variable) isNode() {}

func NewVariable(rng location.Range, id *LowerIdentifier) *Variable {
	local := len(id.Parts) > 0 && len(id.Parts[0]) > 0 && id.Parts[0][0] == '_'
	return &Variable{base: newBase(rng), Identifier: id, IsLocalScope: local}
}

// ---- String fragments ----

// StringFragment is one piece of a single-quoted string or the literal
// portion of a double-quoted one.
type StringFragment interface {
	isStringFragment()
}

type LiteralFragment struct{ Text string }

func (LiteralFragment) isStringFragment() {}

type EscapedFragment struct{ Char rune }

func (EscapedFragment) isStringFragment() {}

type EscapedUTFFragment struct{ Codepoint rune }

func (EscapedUTFFragment) isStringFragment() {}

// DoubleQuotedFragment additionally allows an interpolated expression.
type DoubleQuotedFragment interface {
	isDoubleQuotedFragment()
}

func (LiteralFragment) isDoubleQuotedFragment()    {}
func (EscapedFragment) isDoubleQuotedFragment()    {}
func (EscapedUTFFragment) isDoubleQuotedFragment() {}

type InterpolatedExpression struct{ Expr Expr }

func (InterpolatedExpression) isDoubleQuotedFragment() {}

// StringExpr is a parsed string literal, single- or double-quoted.
type StringExpr struct {
	base
	SingleQuoted []StringFragment       // nil unless single-quoted
	DoubleQuoted []DoubleQuotedFragment // nil unless double-quoted
}

func (s *StringExpr) isNode() {}
func (s *StringExpr) isTerm() {}

func NewSingleQuotedString(rng location.Range, fragments []StringFragment) *StringExpr {
	return &StringExpr{base: newBase(rng), SingleQuoted: fragments}
}

func NewDoubleQuotedString(rng location.Range, fragments []DoubleQuotedFragment) *StringExpr {
	return &StringExpr{base: newBase(rng), DoubleQuoted: fragments}
}

// PlainText returns the literal text of the string with all fragments
// concatenated, dropping interpolations (used for contexts, like resource
// titles, that need a best-effort plain string).
func (s *StringExpr) PlainText() string {
	var out []rune
	for _, f := range s.SingleQuoted {
		appendFragment(&out, f)
	}
	for _, f := range s.DoubleQuoted {
		if lit, ok := f.(StringFragment); ok {
			appendFragment(&out, lit)
		}
	}
	return string(out)
}

func appendFragment(out *[]rune, f StringFragment) {
	switch v := f.(type) {
	case LiteralFragment:
		*out = append(*out, []rune(v.Text)...)
	case EscapedFragment:
		*out = append(*out, v.Char)
	case EscapedUTFFragment:
		*out = append(*out, v.Codepoint)
	}
}

// RegexpLiteral is a `/.../ ` regex term.
type RegexpLiteral struct {
	base
	Raw string
}

func (r *RegexpLiteral) isNode() {}
func (r *RegexpLiteral) isTerm() {}

func NewRegexpLiteral(rng location.Range, raw string) *RegexpLiteral {
	return &RegexpLiteral{base: newBase(rng), Raw: raw}
}

// ---- Terms ----

// Term is the subset of expressions that can appear without an operator.
type Term interface {
	Node
	isTerm()
}

type UndefTerm struct{ base }

func (*UndefTerm) isNode() {}
func (*UndefTerm) isTerm() {}

func NewUndefTerm(rng location.Range) *UndefTerm {
	return &UndefTerm{base: newBase(rng)}
}

type BooleanTerm struct {
	base
	Value bool
}

func (*BooleanTerm) isNode() {}
func (*BooleanTerm) isTerm() {}

func NewBooleanTerm(rng location.Range, value bool) *BooleanTerm {
	return &BooleanTerm{base: newBase(rng), Value: value}
}

type IntegerTerm struct {
	base
	Value int64
}

func (*IntegerTerm) isNode() {}
func (*IntegerTerm) isTerm() {}

func NewIntegerTerm(rng location.Range, value int64) *IntegerTerm {
	return &IntegerTerm{base: newBase(rng), Value: value}
}

type FloatTerm struct {
	base
	Value float32
}

func (*FloatTerm) isNode() {}
func (*FloatTerm) isTerm() {}

func NewFloatTerm(rng location.Range, value float32) *FloatTerm {
	return &FloatTerm{base: newBase(rng), Value: value}
}

type ArrayTerm struct {
	base
	Elements []Expr
}

func (*ArrayTerm) isNode() {}
func (*ArrayTerm) isTerm() {}

func NewArrayTerm(rng location.Range, elements []Expr) *ArrayTerm {
	return &ArrayTerm{base: newBase(rng), Elements: elements}
}

type MapEntry struct {
	Key   Expr
	Value Expr
}

type MapTerm struct {
	base
	Entries []MapEntry
}

func (*MapTerm) isNode() {}
func (*MapTerm) isTerm() {}

func NewMapTerm(rng location.Range, entries []MapEntry) *MapTerm {
	return &MapTerm{base: newBase(rng), Entries: entries}
}

func (v *Variable) isTerm() {}

type RegexpGroupIDTerm struct {
	base
	Index uint64
}

func (*RegexpGroupIDTerm) isNode() {}
func (*RegexpGroupIDTerm) isTerm() {}

func NewRegexpGroupIDTerm(rng location.Range, index uint64) *RegexpGroupIDTerm {
	return &RegexpGroupIDTerm{base: newBase(rng), Index: index}
}

type SensitiveTerm struct {
	base
	Inner Term
}

func (*SensitiveTerm) isNode() {}
func (*SensitiveTerm) isTerm() {}

func NewSensitiveTerm(rng location.Range, inner Term) *SensitiveTerm {
	return &SensitiveTerm{base: newBase(rng), Inner: inner}
}

type IdentifierTerm struct {
	base
	Identifier *LowerIdentifier
}

func (*IdentifierTerm) isNode() {}
func (*IdentifierTerm) isTerm() {}

func NewIdentifierTerm(rng location.Range, id *LowerIdentifier) *IdentifierTerm {
	return &IdentifierTerm{base: newBase(rng), Identifier: id}
}

type ParensTerm struct {
	base
	Inner Expr
}

func (*ParensTerm) isNode() {}
func (*ParensTerm) isTerm() {}

func NewParensTerm(rng location.Range, inner Expr) *ParensTerm {
	return &ParensTerm{base: newBase(rng), Inner: inner}
}

// TypeSpecTerm wraps a TypeSpecification so it can appear in term position
// (e.g. as an Optional[] argument or a case/selector arm).
type TypeSpecTerm struct {
	base
	Spec *TypeSpecification
}

func (*TypeSpecTerm) isNode() {}
func (*TypeSpecTerm) isTerm() {}

func NewTypeSpecTerm(rng location.Range, spec *TypeSpecification) *TypeSpecTerm {
	return &TypeSpecTerm{base: newBase(rng), Spec: spec}
}

// FunctionCallTerm is `name(args) |lambda|?` in term position.
type FunctionCallTerm struct {
	base
	Name   *LowerIdentifier
	Args   []Expr
	Lambda *Lambda // nil if none
}

func (*FunctionCallTerm) isNode() {}
func (*FunctionCallTerm) isTerm() {}

func NewFunctionCallTerm(rng location.Range, name *LowerIdentifier, args []Expr, lambda *Lambda) *FunctionCallTerm {
	return &FunctionCallTerm{base: newBase(rng), Name: name, Args: args, Lambda: lambda}
}

// ResourceCollectionTerm is `Name <| search-expr |>` (or, when Exported,
// the double-angle `<<| |>>` exported-collection form).
type ResourceCollectionTerm struct {
	base
	Name     *LowerIdentifier
	Search   Expr // nil for an empty search
	Exported bool
}

func (*ResourceCollectionTerm) isNode()           {}
func (*ResourceCollectionTerm) isTerm()           {}
func (*ResourceCollectionTerm) isRelationTarget() {}

func NewResourceCollectionTerm(rng location.Range, name *LowerIdentifier, search Expr, exported bool) *ResourceCollectionTerm {
	return &ResourceCollectionTerm{base: newBase(rng), Name: name, Search: search, Exported: exported}
}

// Lambda is `|args| { body }`, attached to a function or builtin call.
type Lambda struct {
	base
	Args []*Argument
	Body []*Statement
}

func (l *Lambda) isNode() {}

func NewLambda(rng location.Range, args []*Argument, body []*Statement) *Lambda {
	return &Lambda{base: newBase(rng), Args: args, Body: body}
}

// Argument is a function/lambda/class/define parameter declaration.
type Argument struct {
	base
	Name    string
	Type    *TypeSpecification // nil if untyped
	Default Expr                // nil if no default
}

func (a *Argument) isNode() {}

func NewArgument(rng location.Range, name string, typ *TypeSpecification, def Expr) *Argument {
	return &Argument{base: newBase(rng), Name: name, Type: typ, Default: def}
}
