package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// UselessDoubleQuotes flags a double-quoted string with no interpolation and
// no escape sequences: it could be single-quoted with identical meaning, and
// single quotes read as "this is a literal" to the next reader.
type UselessDoubleQuotes struct{}

func (UselessDoubleQuotes) Name() string { return "useless_double_quotes" }

func (p UselessDoubleQuotes) CheckString(ctx *lint.Ctx, s *ast.StringExpr) diag.Diagnostics {
	if s.DoubleQuoted == nil {
		return nil
	}
	for _, f := range s.DoubleQuoted {
		switch f.(type) {
		case ast.LiteralFragment:
			continue
		default:
			// Any escape or interpolation fragment means double quotes are
			// doing real work.
			return nil
		}
	}
	return diag.Diagnostics{diag.ManifestLint(s.Range(), p.Name(),
		"double-quoted string has no interpolation or escapes; use single quotes", url(p.Name()))}
}

// ExpressionInSingleQuotes flags a single-quoted string whose literal text
// contains what looks like an interpolation marker (${...} or a bare
// $variable): both are inert inside single quotes and usually mean the
// author meant double quotes.
type ExpressionInSingleQuotes struct{}

func (ExpressionInSingleQuotes) Name() string { return "expression_in_single_quotes" }

func (p ExpressionInSingleQuotes) CheckString(ctx *lint.Ctx, s *ast.StringExpr) diag.Diagnostics {
	if s.SingleQuoted == nil {
		return nil
	}
	for _, f := range s.SingleQuoted {
		lit, ok := f.(ast.LiteralFragment)
		if !ok {
			continue
		}
		if containsInterpolationMarker(lit.Text) {
			return diag.Diagnostics{diag.ManifestLint(s.Range(), p.Name(),
				"single-quoted string looks like it contains an interpolated expression, which will not be evaluated", url(p.Name()))}
		}
	}
	return nil
}

func containsInterpolationMarker(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '$' {
			continue
		}
		rest := text[i+1:]
		if len(rest) == 0 {
			continue
		}
		if rest[0] == '{' {
			return true
		}
		if rest[0] == '_' || (rest[0] >= 'a' && rest[0] <= 'z') || (rest[0] >= 'A' && rest[0] <= 'Z') {
			return true
		}
	}
	return false
}

// InvalidStringEscape flags any escape sequence the parser could not
// recognize as one of Puppet's simple escapes (grounded on
// internal/puppet/parser/string.go's simpleEscapes table): such a sequence
// surfaces as an ast.EscapedFragment carrying the literal character after
// the backslash, which is exactly the signal this pass reports.
type InvalidStringEscape struct{}

func (InvalidStringEscape) Name() string { return "invalid_string_escape" }

func (p InvalidStringEscape) CheckString(ctx *lint.Ctx, s *ast.StringExpr) diag.Diagnostics {
	var out diag.Diagnostics
	for _, f := range s.SingleQuoted {
		if e, ok := f.(ast.EscapedFragment); ok {
			out.Extend(p.diagnosticFor(s, e.Char))
		}
	}
	for _, f := range s.DoubleQuoted {
		if e, ok := f.(ast.EscapedFragment); ok {
			out.Extend(p.diagnosticFor(s, e.Char))
		}
	}
	return out
}

func (p InvalidStringEscape) diagnosticFor(s *ast.StringExpr, ch rune) *diag.Diagnostic {
	return diag.ManifestLint(s.Range(), p.Name(),
		"unrecognized escape sequence '\\"+string(ch)+"'", url(p.Name()))
}
