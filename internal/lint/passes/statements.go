package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// StatementWithNoEffect flags a bare expression statement that can't do
// anything: a variable reference, a literal, or a parenthesized one, used
// on its own line rather than as part of an assignment or a call.
type StatementWithNoEffect struct{}

func (StatementWithNoEffect) Name() string { return "statement_with_no_effect" }

func (p StatementWithNoEffect) CheckStatement(ctx *lint.Ctx, stmt *ast.Statement) diag.Diagnostics {
	es, ok := stmt.Value.(ast.ExpressionStatement)
	if !ok || !isEffectless(es.Expr) {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(stmt.Range(), p.Name(),
		"statement has no effect", url(p.Name()))}
}

func isEffectless(expr ast.Expr) bool {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return false
	}
	switch t := te.Term.(type) {
	case *ast.Variable, *ast.BooleanTerm, *ast.IntegerTerm, *ast.FloatTerm, *ast.UndefTerm, *ast.StringExpr:
		return true
	case *ast.ParensTerm:
		return isEffectless(t.Inner)
	default:
		return false
	}
}

// RelationToTheLeft flags a `<-` or `<~` relationship arrow: spec §4.7's
// style guide prefers the left-to-right `->`/`~>` chains for readability,
// since a reversed arrow makes the dependency order harder to scan.
type RelationToTheLeft struct{}

func (RelationToTheLeft) Name() string { return "relation_to_the_left" }

func (p RelationToTheLeft) CheckStatement(ctx *lint.Ctx, stmt *ast.Statement) diag.Diagnostics {
	rl, ok := stmt.Value.(ast.RelationListStatement)
	if !ok {
		return nil
	}
	var out diag.Diagnostics
	for cur := rl.List; cur != nil; cur = cur.RelationTo {
		if cur.RelationType == ast.RelationExecOrderLeft || cur.RelationType == ast.RelationNotifyLeft {
			out.Extend(diag.ManifestLint(cur.Range(), p.Name(),
				"relationship arrow points left; prefer '->' or '~>'", url(p.Name())))
		}
	}
	return out
}
