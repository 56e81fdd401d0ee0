package passes

import (
	"regexp"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

var erbVariableRef = regexp.MustCompile(`<%[=\-]?\s*@(\w+)`)

// ErbReferencesToUnknownVariable flags an inline ERB template() call that
// references @variable but no matching variable is in scope at the call
// site — ERB's @name lookup resolves against the calling scope at render
// time, so a typo here only surfaces when the template is actually
// rendered, which this pass catches statically instead.
type ErbReferencesToUnknownVariable struct{}

func (ErbReferencesToUnknownVariable) Name() string { return "erb_references_to_unknown_variable" }

func (p ErbReferencesToUnknownVariable) CheckBuiltin(ctx *lint.Ctx, scope *lint.Scope, b *ast.BuiltinExpr) diag.Diagnostics {
	if b.Name != ast.BuiltinTemplate {
		return nil
	}
	var out diag.Diagnostics
	for _, arg := range b.Call.Args {
		te, ok := arg.(*ast.TermExpr)
		if !ok {
			continue
		}
		s, ok := te.Term.(*ast.StringExpr)
		if !ok {
			continue
		}
		out.Extend(p.checkFragments(scope, s, s.SingleQuoted)...)
		out.Extend(p.checkFragments(scope, s, s.DoubleQuoted)...)
	}
	return out
}

func (p ErbReferencesToUnknownVariable) checkFragments(scope *lint.Scope, s *ast.StringExpr, fragments interface{}) diag.Diagnostics {
	var text string
	switch fs := fragments.(type) {
	case []ast.StringFragment:
		for _, f := range fs {
			if lit, ok := f.(ast.LiteralFragment); ok {
				text += lit.Text
			}
		}
	case []ast.DoubleQuotedFragment:
		for _, f := range fs {
			if lit, ok := f.(ast.LiteralFragment); ok {
				text += lit.Text
			}
		}
	}
	var out diag.Diagnostics
	for _, m := range erbVariableRef.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if lint.IsMetaScopeVariable(name) {
			continue
		}
		if _, usage := scope.Lookup(name); usage != nil {
			continue
		}
		out.Extend(diag.ManifestLint(s.Range(), p.Name(),
			"ERB template references @"+name+", which is not defined in scope", url(p.Name())))
	}
	return out
}
