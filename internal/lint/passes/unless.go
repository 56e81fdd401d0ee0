package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// DoNotUseUnless flags every `unless` statement: a negated condition reads
// worse than the equivalent positive `if !cond`, per spec §4.7's category
// comment.
type DoNotUseUnless struct{}

func (DoNotUseUnless) Name() string { return "do_not_use_unless" }

func (p DoNotUseUnless) CheckUnless(ctx *lint.Ctx, stmt *ast.UnlessStatement) diag.Diagnostics {
	if stmt.Condition == nil {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(stmt.Condition.Range(), p.Name(),
		"prefer 'if' with a negated condition over 'unless'", url(p.Name()))}
}
