package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// UselessParens flags `(expr)` where expr is already a bare term: the
// parens add nothing over writing the term directly.
type UselessParens struct{}

func (UselessParens) Name() string { return "useless_parens" }

func (p UselessParens) CheckExpression(ctx *lint.Ctx, scope *lint.Scope, expr ast.Expr) diag.Diagnostics {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return nil
	}
	paren, ok := te.Term.(*ast.ParensTerm)
	if !ok {
		return nil
	}
	if _, ok := paren.Inner.(*ast.TermExpr); !ok {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(expr.Range(), p.Name(),
		"parentheses around a bare term are unnecessary", url(p.Name()))}
}

// InvalidVariableAssignment flags `=` whose left side is not a variable (or
// an array/parenthesized destructuring of variables) — anything else isn't
// a legal assignment target.
type InvalidVariableAssignment struct{}

func (InvalidVariableAssignment) Name() string { return "invalid_variable_assignment" }

func (p InvalidVariableAssignment) CheckExpression(ctx *lint.Ctx, scope *lint.Scope, expr ast.Expr) diag.Diagnostics {
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAssign {
		return nil
	}
	if isValidAssignTarget(bin.Left) {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(bin.Left.Range(), p.Name(),
		"left-hand side of an assignment must be a variable or a destructuring of variables", url(p.Name()))}
}

func isValidAssignTarget(expr ast.Expr) bool {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return false
	}
	switch t := te.Term.(type) {
	case *ast.Variable:
		return true
	case *ast.ArrayTerm:
		for _, el := range t.Elements {
			if !isValidAssignTarget(el) {
				return false
			}
		}
		return true
	case *ast.ParensTerm:
		return isValidAssignTarget(t.Inner)
	default:
		return false
	}
}

// DoubleNegation flags `!!expr`: the outer negation just undoes the inner
// one and is almost always a mistake, not an intentional boolean coercion.
type DoubleNegation struct{}

func (DoubleNegation) Name() string { return "double_negation" }

func (p DoubleNegation) CheckExpression(ctx *lint.Ctx, scope *lint.Scope, expr ast.Expr) diag.Diagnostics {
	outer, ok := expr.(*ast.NotExpr)
	if !ok {
		return nil
	}
	if _, ok := outer.Inner.(*ast.NotExpr); !ok {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(expr.Range(), p.Name(),
		"double negation, did you mean a single '!'?", url(p.Name()))}
}

// NegationOfEquation flags `!(a == b)` / `!(a != b)`: write the opposite
// comparison operator directly instead of negating it.
type NegationOfEquation struct{}

func (NegationOfEquation) Name() string { return "negation_of_equation" }

func (p NegationOfEquation) CheckExpression(ctx *lint.Ctx, scope *lint.Scope, expr ast.Expr) diag.Diagnostics {
	outer, ok := expr.(*ast.NotExpr)
	if !ok {
		return nil
	}
	inner := outer.Inner
	if paren, ok := unwrapParens(inner); ok {
		inner = paren
	}
	bin, ok := inner.(*ast.BinaryExpr)
	if !ok || (bin.Op != ast.OpEqual && bin.Op != ast.OpNotEqual) {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(expr.Range(), p.Name(),
		"negating an equality comparison; use the opposite operator instead", url(p.Name()))}
}

func unwrapParens(expr ast.Expr) (ast.Expr, bool) {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return nil, false
	}
	paren, ok := te.Term.(*ast.ParensTerm)
	if !ok {
		return nil, false
	}
	return paren.Inner, true
}

// ConstantExpressionInCondition flags a comparison between two literal
// constants: its result never depends on input and is almost certainly
// leftover debugging code or a typo for a variable reference.
type ConstantExpressionInCondition struct{}

func (ConstantExpressionInCondition) Name() string { return "constant_expression_in_condition" }

func (p ConstantExpressionInCondition) CheckExpression(ctx *lint.Ctx, scope *lint.Scope, expr ast.Expr) diag.Diagnostics {
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		return nil
	}
	switch bin.Op {
	case ast.OpEqual, ast.OpNotEqual, ast.OpGt, ast.OpGtEq, ast.OpLt, ast.OpLtEq, ast.OpAnd, ast.OpOr:
	default:
		return nil
	}
	if !isConstantExpr(bin.Left) || !isConstantExpr(bin.Right) {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(expr.Range(), p.Name(),
		"comparison between two constants always evaluates the same way", url(p.Name()))}
}

func isConstantExpr(expr ast.Expr) bool {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return false
	}
	switch te.Term.(type) {
	case *ast.BooleanTerm, *ast.IntegerTerm, *ast.FloatTerm, *ast.UndefTerm:
		return true
	default:
		return false
	}
}
