package ast

import "github.com/shadowplay-lint/shadowplay/internal/location"

// StatementVariant is implemented by each kind of statement.
type StatementVariant interface {
	isStatementVariant()
}

// Statement wraps a StatementVariant with its leading comment block.
type Statement struct {
	base
	Value StatementVariant
}

func (*Statement) isNode() {}

func NewStatement(rng location.Range, v StatementVariant) *Statement {
	return &Statement{base: newBase(rng), Value: v}
}

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct{ Expr Expr }

func (ExpressionStatement) isStatementVariant() {}

// RelationType names one of the four chaining arrows.
type RelationType string

const (
	RelationExecOrderRight RelationType = "->"
	RelationNotifyRight    RelationType = "~>"
	RelationExecOrderLeft  RelationType = "<-"
	RelationNotifyLeft     RelationType = "<~"
)

// RelationTarget is one thing a RelationElt can name: a resource set or a
// resource collection query.
type RelationTarget interface {
	isRelationTarget()
}

func (*ResourceSet) isRelationTarget() {}

// RelationElt is one element of a relation chain: a single resource
// set/collection, or a `[ x, y, … ]` group of them.
type RelationElt struct {
	Targets []RelationTarget
}

// RelationList is `head -> relation_to` (etc.), right-recursive.
type RelationList struct {
	base
	Head         RelationElt
	RelationType RelationType // zero value when there is no tail
	RelationTo   *RelationList
}

func (*RelationList) isNode() {}

func NewRelationList(rng location.Range, head RelationElt, relType RelationType, to *RelationList) *RelationList {
	return &RelationList{base: newBase(rng), Head: head, RelationType: relType, RelationTo: to}
}

type RelationListStatement struct{ List *RelationList }

func (RelationListStatement) isStatementVariant() {}

// IfElseStatement is `if cond { then } elsif cond { ... } else { ... }`.
type IfElseBranch struct {
	Condition Expr // nil for the final `else`
	Body      []*Statement
}

type IfElseStatement struct {
	Branches []IfElseBranch
}

func (IfElseStatement) isStatementVariant() {}

// UnlessStatement is `unless cond { body } else { body }`.
type UnlessStatement struct {
	Condition Expr
	Body      []*Statement
	Else      []*Statement // nil if no else branch
}

func (UnlessStatement) isStatementVariant() {}

// CaseArm is one `value, value: { body }` arm of a case statement; Values
// is empty for the `default` arm.
type CaseArm struct {
	Values []Expr
	Body   []*Statement
}

type CaseStatement struct {
	Condition Expr
	Arms      []CaseArm
}

func (CaseStatement) isStatementVariant() {}

// ToplevelStatement wraps a Toplevel (class/define/plan/type/function
// definition) appearing as a statement.
type ToplevelStatement struct{ Toplevel Toplevel }

func (ToplevelStatement) isStatementVariant() {}

// ResourceDefaultsStatement is `Type { attr => value, ... }`.
type ResourceDefaultsStatement struct {
	Type       *LowerIdentifier
	Attributes []ResourceAttribute
}

func (ResourceDefaultsStatement) isStatementVariant() {}

// ---- Resource sets ----

// ResourceAttribute is one member of a resource body: either a literal
// `name => value` pair, or a `*=> value` splat group.
type ResourceAttribute interface {
	isResourceAttribute()
}

type ResourceAttributeName struct {
	Name  string
	Value Expr
}

func (ResourceAttributeName) isResourceAttribute() {}

type ResourceAttributeGroup struct{ Value Term }

func (ResourceAttributeGroup) isResourceAttribute() {}

// Resource is one `title: attrs` body inside a ResourceSet.
type Resource struct {
	base
	Title      Expr
	Attributes []ResourceAttribute
}

func (*Resource) isNode() {}

func NewResource(rng location.Range, title Expr, attrs []ResourceAttribute) *Resource {
	return &Resource{base: newBase(rng), Title: title, Attributes: attrs}
}

// ResourceSet is `type_name { title: attrs; title2: attrs2 }` (or, when
// IsVirtual, `@type_name { ... }`).
type ResourceSet struct {
	base
	Name      *LowerIdentifier
	List      []*Resource
	IsVirtual bool
}

func (*ResourceSet) isNode() {}

func NewResourceSet(rng location.Range, name *LowerIdentifier, list []*Resource, virtual bool) *ResourceSet {
	return &ResourceSet{base: newBase(rng), Name: name, List: list, IsVirtual: virtual}
}

// ---- Toplevel definitions ----

// ToplevelKind names one of the five definition forms.
type ToplevelKind int

const (
	ToplevelClass ToplevelKind = iota
	ToplevelDefinition
	ToplevelPlan
	ToplevelTypeDef
	ToplevelFunctionDef
)

func (k ToplevelKind) String() string {
	switch k {
	case ToplevelClass:
		return "class"
	case ToplevelDefinition:
		return "define"
	case ToplevelPlan:
		return "plan"
	case ToplevelTypeDef:
		return "type"
	case ToplevelFunctionDef:
		return "function"
	default:
		return "unknown"
	}
}

// Toplevel is a class, defined type, plan, type alias, or function
// definition.
type Toplevel struct {
	base
	Kind       ToplevelKind
	Identifier *LowerIdentifier
	Arguments  []*Argument
	Parent     *LowerIdentifier // class inheritance, "class foo inherits bar"; nil otherwise
	Body       []*Statement

	// TypeAlias is set only when Kind == ToplevelTypeDef: "type Name = <spec>".
	TypeAlias *TypeSpecification
	// ReturnType is set only when Kind == ToplevelFunctionDef and a
	// ">> <type-spec>" return annotation was given.
	ReturnType *TypeSpecification
}

func (*Toplevel) isNode() {}

func NewToplevel(rng location.Range, kind ToplevelKind, id *LowerIdentifier, args []*Argument, parent *LowerIdentifier, body []*Statement) *Toplevel {
	return &Toplevel{base: newBase(rng), Kind: kind, Identifier: id, Arguments: args, Parent: parent, Body: body}
}

func NewTypeAliasToplevel(rng location.Range, id *LowerIdentifier, alias *TypeSpecification) *Toplevel {
	return &Toplevel{base: newBase(rng), Kind: ToplevelTypeDef, Identifier: id, TypeAlias: alias}
}

func (t *Toplevel) WithReturnType(rt *TypeSpecification) *Toplevel {
	t.ReturnType = rt
	return t
}

// FullyQualifiedName returns the toplevel's name with a leading "::"
// stripped, the form used as a key in the block registry (C8).
func (t *Toplevel) FullyQualifiedName() string {
	id := *t.Identifier
	id.IsToplevel = false
	return id.String()
}
