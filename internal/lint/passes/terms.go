package passes

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// LowerCaseVariable flags a variable reference whose name isn't
// lower_snake_case, per-segment for a namespaced reference like
// $module::some_var.
type LowerCaseVariable struct{}

func (LowerCaseVariable) Name() string { return "lower_case_variable" }

func (p LowerCaseVariable) CheckTerm(ctx *lint.Ctx, scope *lint.Scope, t ast.Term) diag.Diagnostics {
	v, ok := t.(*ast.Variable)
	if !ok {
		return nil
	}
	for _, part := range v.Identifier.Parts {
		part = strings.TrimPrefix(part, "_")
		if part != "" && !isSnakeCase(part) {
			return diag.Diagnostics{diag.ManifestLint(v.Range(), p.Name(),
				"variable name $"+v.Identifier.String()+" should be lower_snake_case", url(p.Name()))}
		}
	}
	return nil
}

// ReferenceToUndefinedValue flags a bare (unqualified) variable reference
// that resolves to nothing in the current scope chain and isn't one of the
// always-defined meta variables (spec §8's testable property).
//
// A namespaced reference ($other_class::var) names a parameter of another
// class/define; validating it would require cross-file parameter resolution
// against Ctx.Blocks, which this pass leaves alone — it only reports on
// unqualified names local to the current scope.
type ReferenceToUndefinedValue struct{}

func (ReferenceToUndefinedValue) Name() string { return "reference_to_undefined_value" }

func (p ReferenceToUndefinedValue) CheckTerm(ctx *lint.Ctx, scope *lint.Scope, t ast.Term) diag.Diagnostics {
	v, ok := t.(*ast.Variable)
	if !ok || len(v.Identifier.Parts) != 1 {
		return nil
	}
	name := v.Identifier.Parts[0]
	if lint.IsMetaScopeVariable(name) {
		return nil
	}
	if _, usage := scope.Lookup(name); usage != nil {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(v.Range(), p.Name(),
		"reference to undefined variable $"+name, url(p.Name()))}
}
