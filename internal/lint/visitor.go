package lint

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// Walker is the single in-order depth-first AST traversal of spec §4.7/§9:
// at every node it invokes each registered Pass's matching hook, recurses
// into children, and opens/closes a Scope on entering/exiting a scoping node
// or records a definition on witnessing an assignment — mirroring pulumi-yaml's analyser.go walker,
// generalized from a type-checking walk to a diagnostic-collecting one.
type Walker struct {
	Ctx         *Ctx
	Passes      []Pass
	Diagnostics diag.Diagnostics
}

func NewWalker(ctx *Ctx, passes []Pass) *Walker {
	return &Walker{Ctx: ctx, Passes: passes}
}

func (w *Walker) emit(diags diag.Diagnostics) {
	w.Diagnostics.Extend(diags...)
}

// WalkFile runs a full traversal of one file's already-registered (see
// Ctx.RegisterFile) top-level statement list.
func (w *Walker) WalkFile(stmts []*ast.Statement) {
	root := NewScope(nil)
	for _, name := range []string{"facts", "trusted", "server_facts"} {
		root.Define(name, location.Range{}, false, true)
	}
	for _, stmt := range stmts {
		w.walkStatement(root, stmt)
	}
}

func (w *Walker) walkStatement(scope *Scope, stmt *ast.Statement) {
	if stmt == nil {
		return
	}
	for _, p := range w.Passes {
		if c, ok := p.(StatementChecker); ok {
			w.emit(c.CheckStatement(w.Ctx, stmt))
		}
	}

	switch v := stmt.Value.(type) {
	case ast.ExpressionStatement:
		w.walkExpr(scope, v.Expr)

	case ast.RelationListStatement:
		w.walkRelationList(scope, v.List)

	case ast.IfElseStatement:
		for _, branch := range v.Branches {
			if branch.Condition != nil {
				w.walkExpr(scope, branch.Condition)
			}
			for _, s := range branch.Body {
				w.walkStatement(scope, s)
			}
		}

	case ast.UnlessStatement:
		for _, p := range w.Passes {
			if c, ok := p.(UnlessChecker); ok {
				w.emit(c.CheckUnless(w.Ctx, &v))
			}
		}
		w.walkExpr(scope, v.Condition)
		for _, s := range v.Body {
			w.walkStatement(scope, s)
		}
		for _, s := range v.Else {
			w.walkStatement(scope, s)
		}

	case ast.CaseStatement:
		for _, p := range w.Passes {
			if c, ok := p.(CaseChecker); ok {
				w.emit(c.CheckCase(w.Ctx, &v))
			}
		}
		w.walkExpr(scope, v.Condition)
		for _, arm := range v.Arms {
			for _, val := range arm.Values {
				w.walkExpr(scope, val)
			}
			armScope := NewScope(scope)
			for _, s := range arm.Body {
				w.walkStatement(armScope, s)
			}
			w.exitScope(armScope)
		}

	case ast.ToplevelStatement:
		w.walkToplevel(scope, &v.Toplevel)

	case ast.ResourceDefaultsStatement:
		for _, p := range w.Passes {
			if c, ok := p.(ResourceDefaultsChecker); ok {
				w.emit(c.CheckResourceDefaults(w.Ctx, &v))
			}
		}
		for _, attr := range v.Attributes {
			w.walkResourceAttribute(scope, attr)
		}
	}
}

func (w *Walker) walkToplevel(parent *Scope, t *ast.Toplevel) {
	if t.Kind == ast.ToplevelTypeDef {
		// A typedef has no body/scope of its own.
		return
	}

	for _, p := range w.Passes {
		if c, ok := p.(ArgumentChecker); ok {
			w.emit(c.CheckArguments(w.Ctx, t, t.Arguments))
		}
	}

	scope := NewScope(parent)
	if t.Kind == ast.ToplevelClass || t.Kind == ast.ToplevelDefinition {
		scope.Define("title", t.Range(), false, true)
		scope.Define("name", t.Range(), false, true)
	}
	for _, arg := range t.Arguments {
		scope.Define(arg.Name, arg.Range(), true, false)
		if arg.Default != nil {
			w.walkExpr(scope, arg.Default)
		}
	}
	for _, s := range t.Body {
		w.walkStatement(scope, s)
	}
	w.exitScope(scope)
}

func (w *Walker) walkRelationList(scope *Scope, rl *ast.RelationList) {
	if rl == nil {
		return
	}
	for _, target := range rl.Head.Targets {
		switch tt := target.(type) {
		case *ast.ResourceSet:
			w.walkResourceSet(scope, tt)
		case *ast.ResourceCollectionTerm:
			w.walkResourceCollection(scope, tt)
		}
	}
	w.walkRelationList(scope, rl.RelationTo)
}

func (w *Walker) walkResourceSet(scope *Scope, rs *ast.ResourceSet) {
	for _, p := range w.Passes {
		if c, ok := p.(ResourceSetChecker); ok {
			w.emit(c.CheckResourceSet(w.Ctx, rs))
		}
	}
	for _, res := range rs.List {
		w.walkExpr(scope, res.Title)
		body := NewScope(scope)
		body.Define("title", res.Range(), false, true)
		body.Define("name", res.Range(), false, true)
		for _, attr := range res.Attributes {
			w.walkResourceAttribute(body, attr)
		}
		w.exitScope(body)
	}
}

func (w *Walker) walkResourceCollection(scope *Scope, rc *ast.ResourceCollectionTerm) {
	for _, p := range w.Passes {
		if c, ok := p.(ResourceCollectionChecker); ok {
			w.emit(c.CheckResourceCollection(w.Ctx, rc))
		}
	}
	if rc.Search != nil {
		w.walkExpr(scope, rc.Search)
	}
}

func (w *Walker) walkResourceAttribute(scope *Scope, attr ast.ResourceAttribute) {
	switch a := attr.(type) {
	case ast.ResourceAttributeName:
		w.walkExpr(scope, a.Value)
	case ast.ResourceAttributeGroup:
		w.walkTerm(scope, a.Value)
	}
}

func (w *Walker) exitScope(scope *Scope) {
	for _, p := range w.Passes {
		if c, ok := p.(ScopeExitChecker); ok {
			w.emit(c.CheckScopeExit(w.Ctx, scope))
		}
	}
}

func (w *Walker) walkExpr(scope *Scope, expr ast.Expr) {
	if expr == nil {
		return
	}
	for _, p := range w.Passes {
		if c, ok := p.(ExpressionChecker); ok {
			w.emit(c.CheckExpression(w.Ctx, scope, expr))
		}
	}

	switch e := expr.(type) {
	case *ast.TermExpr:
		w.walkTerm(scope, e.Term)

	case *ast.BinaryExpr:
		if e.Op == ast.OpAssign {
			w.registerAssignTargets(scope, e.Left)
		} else {
			w.walkExpr(scope, e.Left)
		}
		w.walkExpr(scope, e.Right)

	case *ast.NotExpr:
		w.walkExpr(scope, e.Inner)

	case *ast.SelectorExpr:
		w.walkExpr(scope, e.Condition)
		for _, c := range e.Cases {
			if t, ok := c.Case.(ast.Term); ok {
				w.walkTerm(scope, t)
			}
			w.walkExpr(scope, c.Value)
		}

	case *ast.FunctionCallExpr:
		for _, a := range e.Args {
			w.walkExpr(scope, a)
		}
		w.walkLambda(scope, e.Lambda)

	case *ast.BuiltinExpr:
		for _, p := range w.Passes {
			if c, ok := p.(BuiltinChecker); ok {
				w.emit(c.CheckBuiltin(w.Ctx, scope, e))
			}
		}
		for _, a := range e.Call.Args {
			w.walkExpr(scope, a)
		}
		w.walkLambda(scope, e.Call.Lambda)
		if e.ReturnValue != nil {
			w.walkExpr(scope, e.ReturnValue)
		}
	}

	for _, group := range expr.Accessor() {
		for _, idx := range group {
			w.walkExpr(scope, idx)
		}
	}
}

func (w *Walker) walkLambda(scope *Scope, l *ast.Lambda) {
	if l == nil {
		return
	}
	body := NewScope(scope)
	for _, arg := range l.Args {
		body.Define(arg.Name, arg.Range(), true, false)
	}
	for _, s := range l.Body {
		w.walkStatement(body, s)
	}
	w.exitScope(body)
}

// registerAssignTargets honors array destructuring (spec §4.7 rule 4):
// arrays and parenthesized terms are walked, variables within are
// registered as definitions in scope.
func (w *Walker) registerAssignTargets(scope *Scope, target ast.Expr) {
	te, ok := target.(*ast.TermExpr)
	if !ok {
		w.walkExpr(scope, target)
		return
	}
	switch t := te.Term.(type) {
	case *ast.Variable:
		scope.Define(t.Identifier.String(), t.Range(), false, false)
	case *ast.ArrayTerm:
		for _, el := range t.Elements {
			w.registerAssignTargets(scope, el)
		}
	case *ast.ParensTerm:
		w.registerAssignTargets(scope, t.Inner)
	default:
		w.walkTerm(scope, te.Term)
	}
}

func (w *Walker) walkTerm(scope *Scope, t ast.Term) {
	if t == nil {
		return
	}
	for _, p := range w.Passes {
		if c, ok := p.(TermChecker); ok {
			w.emit(c.CheckTerm(w.Ctx, scope, t))
		}
	}

	switch v := t.(type) {
	case *ast.Variable:
		// Usage tracking only; ReferenceToUndefinedValue (a TermChecker
		// pass) is responsible for reporting an unresolved name.
		scope.Use(v.Identifier.String())

	case *ast.StringExpr:
		for _, p := range w.Passes {
			if c, ok := p.(StringChecker); ok {
				w.emit(c.CheckString(w.Ctx, v))
			}
		}
		for _, f := range v.DoubleQuoted {
			if interp, ok := f.(ast.InterpolatedExpression); ok {
				w.walkExpr(scope, interp.Expr)
			}
		}

	case *ast.ArrayTerm:
		for _, el := range v.Elements {
			w.walkExpr(scope, el)
		}

	case *ast.MapTerm:
		for _, entry := range v.Entries {
			w.walkExpr(scope, entry.Key)
			w.walkExpr(scope, entry.Value)
		}

	case *ast.SensitiveTerm:
		w.walkTerm(scope, v.Inner)

	case *ast.ParensTerm:
		w.walkExpr(scope, v.Inner)

	case *ast.FunctionCallTerm:
		for _, a := range v.Args {
			w.walkExpr(scope, a)
		}
		w.walkLambda(scope, v.Lambda)

	case *ast.ResourceCollectionTerm:
		w.walkResourceCollection(scope, v)
	}
}
