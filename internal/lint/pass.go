package lint

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// Pass is implemented by every lint rule. Each pass additionally implements
// whichever of the *Checker interfaces below match the node kinds it
// inspects — spec §4.7's "each pass is polymorphic over a capability set."
// The Walker type-asserts a Pass against these interfaces rather than
// using reflection or a central dispatch tag, Go's idiomatic analog of
// matching a closed tagged-union on the Rust side (spec §9: "the pass set
// is closed and known at build time" — here that's the fixed slice
// passes.All() returns, assembled once at startup).
//
// Passes are stateless: a hook receives everything it needs as arguments
// and returns only the diagnostics it found. The Ctx/Scope they're given
// are read-only from a pass's perspective; only the Walker mutates them.
type Pass interface {
	Name() string
}

// ArgumentChecker covers the "Arguments" pass category: checks over a
// class/define/plan/function's whole argument list (ordering, uniqueness,
// naming, typing, sensitivity).
type ArgumentChecker interface {
	Pass
	CheckArguments(ctx *Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics
}

// UnlessChecker covers the "Unless/If" category.
type UnlessChecker interface {
	Pass
	CheckUnless(ctx *Ctx, stmt *ast.UnlessStatement) diag.Diagnostics
}

// ExpressionChecker covers the "Expressions" category: fires once per
// Expr node visited, parent included (so a pass can inspect
// parens-around-operator shape, negation shape, etc).
type ExpressionChecker interface {
	Pass
	CheckExpression(ctx *Ctx, scope *Scope, expr ast.Expr) diag.Diagnostics
}

// BuiltinChecker covers the "Builtin/Template" category.
type BuiltinChecker interface {
	Pass
	CheckBuiltin(ctx *Ctx, scope *Scope, b *ast.BuiltinExpr) diag.Diagnostics
}

// StringChecker covers the "Strings" category.
type StringChecker interface {
	Pass
	CheckString(ctx *Ctx, s *ast.StringExpr) diag.Diagnostics
}

// TermChecker covers the "Terms" category, notably variable references.
type TermChecker interface {
	Pass
	CheckTerm(ctx *Ctx, scope *Scope, t ast.Term) diag.Diagnostics
}

// ResourceSetChecker covers the "ResourceSet" category.
type ResourceSetChecker interface {
	Pass
	CheckResourceSet(ctx *Ctx, rs *ast.ResourceSet) diag.Diagnostics
}

// ResourceCollectionChecker covers InvalidResourceCollectionInvocation.
type ResourceCollectionChecker interface {
	Pass
	CheckResourceCollection(ctx *Ctx, rc *ast.ResourceCollectionTerm) diag.Diagnostics
}

// ResourceDefaultsChecker covers PerExpressionResourceDefaults.
type ResourceDefaultsChecker interface {
	Pass
	CheckResourceDefaults(ctx *Ctx, rd *ast.ResourceDefaultsStatement) diag.Diagnostics
}

// CaseChecker covers the "Case" category.
type CaseChecker interface {
	Pass
	CheckCase(ctx *Ctx, c *ast.CaseStatement) diag.Diagnostics
}

// StatementChecker covers the "Statements" category.
type StatementChecker interface {
	Pass
	CheckStatement(ctx *Ctx, stmt *ast.Statement) diag.Diagnostics
}

// ScopeExitChecker covers context-level checks that need a scope's full
// usage record after traversal of its body completes (UnusedVariables).
type ScopeExitChecker interface {
	Pass
	CheckScopeExit(ctx *Ctx, scope *Scope) diag.Diagnostics
}
