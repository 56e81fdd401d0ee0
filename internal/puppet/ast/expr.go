package ast

import "github.com/shadowplay-lint/shadowplay/internal/location"

// Expr is any expression: a bare Term or a Term combined with operators,
// optionally followed by one or more accessor groups (`[...]`).
type Expr interface {
	Node
	isExpr()

	// Accessor returns the accessor groups attached to this expression, if
	// any — each inner slice is the comma-separated contents of one `[...]`.
	Accessor() [][]Expr
}

// exprBase is embedded by every Expr implementation, carrying the accessor
// chain shared by all of them.
type exprBase struct {
	base
	accessor [][]Expr
}

func (e *exprBase) Accessor() [][]Expr { return e.accessor }

func (e *exprBase) SetAccessor(groups [][]Expr) {
	e.accessor = groups
}

func newExprBase(rng location.Range) exprBase {
	return exprBase{base: newBase(rng)}
}

// TermExpr wraps a bare Term as an Expr.
type TermExpr struct {
	exprBase
	Term Term
}

func (*TermExpr) isNode() {}
func (*TermExpr) isExpr() {}

func NewTermExpr(rng location.Range, t Term) *TermExpr {
	return &TermExpr{exprBase: newExprBase(rng), Term: t}
}

// BinaryOp names one of the binary operators in the precedence table.
type BinaryOp string

const (
	OpAssign         BinaryOp = "="
	OpAnd            BinaryOp = "and"
	OpOr             BinaryOp = "or"
	OpEqual          BinaryOp = "=="
	OpNotEqual       BinaryOp = "!="
	OpGt             BinaryOp = ">"
	OpGtEq           BinaryOp = ">="
	OpLt             BinaryOp = "<"
	OpLtEq           BinaryOp = "<="
	OpShiftLeft      BinaryOp = "<<"
	OpShiftRight     BinaryOp = ">>"
	OpIn             BinaryOp = "in"
	OpPlus           BinaryOp = "+"
	OpMinus          BinaryOp = "-"
	OpMultiply       BinaryOp = "*"
	OpDivide         BinaryOp = "/"
	OpModulo         BinaryOp = "%"
	OpMatchRegex     BinaryOp = "=~"
	OpNotMatchRegex  BinaryOp = "!~"
	OpMatchType      BinaryOp = "=~type"
	OpNotMatchType   BinaryOp = "!~type"
	OpChainCall      BinaryOp = "."
)

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	exprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) isNode() {}
func (*BinaryExpr) isExpr() {}

func NewBinaryExpr(rng location.Range, op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(rng), Op: op, Left: left, Right: right}
}

// NotExpr is unary `!expr`.
type NotExpr struct {
	exprBase
	Inner Expr
}

func (*NotExpr) isNode() {}
func (*NotExpr) isExpr() {}

func NewNotExpr(rng location.Range, inner Expr) *NotExpr {
	return &NotExpr{exprBase: newExprBase(rng), Inner: inner}
}

// SelectorCase is one `case => value` arm of a Selector; Case is nil for the
// `default` arm.
type SelectorCase struct {
	Case  Node // a Term, or nil for `default`
	Value Expr
}

// SelectorExpr is `condition ? { case => value, ... }`.
type SelectorExpr struct {
	exprBase
	Condition Expr
	Cases     []SelectorCase
}

func (*SelectorExpr) isNode() {}
func (*SelectorExpr) isExpr() {}

func NewSelectorExpr(rng location.Range, cond Expr, cases []SelectorCase) *SelectorExpr {
	return &SelectorExpr{exprBase: newExprBase(rng), Condition: cond, Cases: cases}
}

// FunctionCallExpr is `name(args) |lambda|?` in expression position (the
// same shape as FunctionCallTerm, but usable directly where binary operators
// are also legal, per the precedence table's level 4 row).
type FunctionCallExpr struct {
	exprBase
	Name   *LowerIdentifier
	Args   []Expr
	Lambda *Lambda
}

func (*FunctionCallExpr) isNode() {}
func (*FunctionCallExpr) isExpr() {}

func NewFunctionCallExpr(rng location.Range, name *LowerIdentifier, args []Expr, lambda *Lambda) *FunctionCallExpr {
	return &FunctionCallExpr{exprBase: newExprBase(rng), Name: name, Args: args, Lambda: lambda}
}

// ManyArgs is the `{ args, lambda? }` shape shared by most BuiltinVariants.
type ManyArgs struct {
	Args   []Expr
	Lambda *Lambda
}

// BuiltinKind names one of the eight recognized builtin functions.
type BuiltinKind string

const (
	BuiltinUndef           BuiltinKind = "undef"
	BuiltinTag             BuiltinKind = "tag"
	BuiltinRequire         BuiltinKind = "require"
	BuiltinInclude         BuiltinKind = "include"
	BuiltinRealize         BuiltinKind = "realize"
	BuiltinCreateResources BuiltinKind = "create_resources"
	BuiltinReturn          BuiltinKind = "return"
	BuiltinTemplate        BuiltinKind = "template"
)

// BuiltinExpr is a call to one of the fixed builtin functions.
type BuiltinExpr struct {
	exprBase
	Name BuiltinKind
	Call ManyArgs

	// ReturnValue is set only when Name == BuiltinReturn; its argument is
	// optional, unlike the Many1-shaped builtins.
	ReturnValue Expr
}

func (*BuiltinExpr) isNode() {}
func (*BuiltinExpr) isExpr() {}

func NewBuiltinExpr(rng location.Range, name BuiltinKind, call ManyArgs, returnValue Expr) *BuiltinExpr {
	return &BuiltinExpr{exprBase: newExprBase(rng), Name: name, Call: call, ReturnValue: returnValue}
}
