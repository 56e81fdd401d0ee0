// Package printer renders a parsed Puppet AST back to source text.
//
// The original implementation this analyzer is modeled after builds the
// layout with a Wadler-style document algebra (the `pretty` crate's
// RcDoc: group/nest/softline). Nothing in the retrieved Go corpus offers
// an equivalent combinator library, so this package renders each node
// with a simpler two-shot strategy instead: build the single-line form,
// and if it doesn't fit within Width, fall back to a construct-specific
// multi-line form. That mirrors what `group()` does in the original
// (try flat, else break) without needing the combinator machinery.
package printer

import (
	"strconv"
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// Printer renders an AST to canonical source text at a target line width.
type Printer struct {
	Width int
}

// New returns a Printer with the given target width. width <= 0 falls
// back to 80, puppet-lint's own default.
func New(width int) *Printer {
	if width <= 0 {
		width = 80
	}
	return &Printer{Width: width}
}

// PrintStatements renders a top-level statement list (a whole manifest).
func (p *Printer) PrintStatements(stmts []*ast.Statement) string {
	return p.statementList(stmts, 0)
}

func indent(level int) string { return strings.Repeat("  ", level) }

func fitsOneLine(s string, width int) bool {
	return !strings.Contains(s, "\n") && len(s) <= width
}

func (p *Printer) leadingComments(comments []string, level int) string {
	if len(comments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range comments {
		b.WriteString(indent(level))
		if !strings.HasPrefix(c, "#") {
			b.WriteString("#")
		}
		b.WriteString(c)
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Printer) statementList(stmts []*ast.Statement, level int) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		lines = append(lines, p.statement(s, level))
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) term(t ast.Term, level int) string {
	switch v := t.(type) {
	case *ast.UndefTerm:
		return "undef"
	case *ast.BooleanTerm:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.IntegerTerm:
		return strconv.FormatInt(v.Value, 10)
	case *ast.FloatTerm:
		return strconv.FormatFloat(float64(v.Value), 'f', -1, 32)
	case *ast.StringExpr:
		return p.stringExpr(v, level)
	case *ast.RegexpLiteral:
		return "/" + v.Raw + "/"
	case *ast.ArrayTerm:
		return p.arrayTerm(v, level)
	case *ast.MapTerm:
		return p.mapTerm(v, level)
	case *ast.Variable:
		return "$" + v.Identifier.String()
	case *ast.RegexpGroupIDTerm:
		return "$" + strconv.FormatUint(v.Index, 10)
	case *ast.SensitiveTerm:
		return "Sensitive(" + p.term(v.Inner, level) + ")"
	case *ast.IdentifierTerm:
		return v.Identifier.String()
	case *ast.ParensTerm:
		inner := p.expr(v.Inner, level)
		if fitsOneLine("("+inner+")", p.Width) {
			return "(" + inner + ")"
		}
		return "(\n" + indent(level+1) + p.expr(v.Inner, level+1) + "\n" + indent(level) + ")"
	case *ast.TypeSpecTerm:
		return p.typeSpec(v.Spec)
	case *ast.FunctionCallTerm:
		return p.functionCall(v.Name, v.Args, v.Lambda, level)
	case *ast.ResourceCollectionTerm:
		return p.resourceCollectionTerm(v, level)
	default:
		return ""
	}
}

func (p *Printer) stringExpr(s *ast.StringExpr, level int) string {
	var b strings.Builder
	if s.SingleQuoted != nil {
		b.WriteByte('\'')
		for _, f := range s.SingleQuoted {
			writeStringFragment(&b, f)
		}
		b.WriteByte('\'')
		return b.String()
	}
	b.WriteByte('"')
	for _, f := range s.DoubleQuoted {
		switch v := f.(type) {
		case ast.InterpolatedExpression:
			b.WriteString("${")
			b.WriteString(p.expr(v.Expr, level))
			b.WriteString("}")
		case ast.StringFragment:
			writeStringFragment(&b, v)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeStringFragment(b *strings.Builder, f ast.StringFragment) {
	switch v := f.(type) {
	case ast.LiteralFragment:
		b.WriteString(v.Text)
	case ast.EscapedFragment:
		b.WriteByte('\\')
		b.WriteRune(v.Char)
	case ast.EscapedUTFFragment:
		b.WriteString("\\u{")
		b.WriteString(strconv.FormatInt(int64(v.Codepoint), 16))
		b.WriteString("}")
	}
}

func (p *Printer) arrayTerm(a *ast.ArrayTerm, level int) string {
	if len(a.Elements) == 0 {
		return "[]"
	}
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = p.expr(e, level)
	}
	flat := "[" + strings.Join(elems, ", ") + "]"
	if fitsOneLine(flat, p.Width-len(indent(level))) {
		return flat
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, e := range a.Elements {
		b.WriteString(indent(level + 1))
		b.WriteString(p.expr(e, level+1))
		b.WriteString(",\n")
	}
	b.WriteString(indent(level))
	b.WriteString("]")
	return b.String()
}

func (p *Printer) mapTerm(m *ast.MapTerm, level int) string {
	if len(m.Entries) == 0 {
		return "{}"
	}
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = p.expr(e.Key, level) + " => " + p.expr(e.Value, level)
	}
	flat := "{ " + strings.Join(parts, ", ") + " }"
	if fitsOneLine(flat, p.Width-len(indent(level))) {
		return flat
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, e := range m.Entries {
		b.WriteString(indent(level + 1))
		b.WriteString(p.expr(e.Key, level+1))
		b.WriteString(" => ")
		b.WriteString(p.expr(e.Value, level+1))
		b.WriteString(",\n")
	}
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

func (p *Printer) functionCall(name *ast.LowerIdentifier, args []ast.Expr, lambda *ast.Lambda, level int) string {
	var b strings.Builder
	b.WriteString(name.String())
	if len(args) == 0 {
		b.WriteString("()")
	} else {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = p.expr(a, level)
		}
		flat := "(" + strings.Join(parts, ", ") + ")"
		if fitsOneLine(flat, p.Width-len(indent(level))-b.Len()) {
			b.WriteString(flat)
		} else {
			b.WriteString("(\n")
			for _, a := range args {
				b.WriteString(indent(level + 1))
				b.WriteString(p.expr(a, level+1))
				b.WriteString(",\n")
			}
			b.WriteString(indent(level))
			b.WriteString(")")
		}
	}
	if lambda != nil {
		b.WriteString(" ")
		b.WriteString(p.lambda(lambda, level))
	}
	return b.String()
}

func (p *Printer) lambda(l *ast.Lambda, level int) string {
	var b strings.Builder
	b.WriteString("|")
	parts := make([]string, len(l.Args))
	for i, a := range l.Args {
		parts[i] = p.argument(a)
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("| ")
	b.WriteString(p.statementBlock(l.Body, level))
	return b.String()
}

func (p *Printer) argument(a *ast.Argument) string {
	var b strings.Builder
	if a.Type != nil {
		b.WriteString(p.typeSpec(a.Type))
		b.WriteString(" ")
	}
	b.WriteString("$")
	b.WriteString(a.Name)
	if a.Default != nil {
		b.WriteString(" = ")
		b.WriteString(p.expr(a.Default, 0))
	}
	return b.String()
}

func (p *Printer) statementBlock(stmts []*ast.Statement, level int) string {
	if len(stmts) == 0 {
		return "{\n" + indent(level) + "}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString(p.statementList(stmts, level+1))
	b.WriteString("\n")
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

func (p *Printer) resourceCollectionTerm(v *ast.ResourceCollectionTerm, level int) string {
	open, close := "<|", "|>"
	if v.Exported {
		open, close = "<<|", "|>>"
	}
	s := v.Name.String() + " " + open
	if v.Search != nil {
		s += " " + p.expr(v.Search, level) + " "
	} else {
		s += " "
	}
	return s + close
}
