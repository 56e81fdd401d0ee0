package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
)

// UnusedVariables flags a variable defined in a scope (an assignment or a
// class/define/function/lambda argument) and never read before that scope
// closes.
type UnusedVariables struct{}

func (UnusedVariables) Name() string { return "unused_variables" }

func (p UnusedVariables) CheckScopeExit(ctx *lint.Ctx, scope *lint.Scope) diag.Diagnostics {
	var out diag.Diagnostics
	for name, usage := range scope.Own() {
		if usage.IsPhantom || usage.UseCount > 0 {
			continue
		}
		kind := "variable"
		if usage.IsArgument {
			kind = "argument"
		}
		out.Extend(diag.ManifestLint(usage.DefinedAt, p.Name(),
			kind+" $"+name+" is never used", url(p.Name())))
	}
	return out
}
