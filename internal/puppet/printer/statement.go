package printer

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

func (p *Printer) statement(s *ast.Statement, level int) string {
	body := p.statementVariant(s.Value, level)
	return p.leadingComments(s.Comments(), level) + indent(level) + body
}

func (p *Printer) statementVariant(v ast.StatementVariant, level int) string {
	switch sv := v.(type) {
	case ast.ExpressionStatement:
		return p.expr(sv.Expr, level)
	case ast.RelationListStatement:
		return p.relationList(sv.List, level)
	case ast.IfElseStatement:
		return p.ifElse(sv, level)
	case ast.UnlessStatement:
		return p.unless(sv, level)
	case ast.CaseStatement:
		return p.caseStatement(sv, level)
	case ast.ToplevelStatement:
		return p.toplevel(&sv.Toplevel, level)
	case ast.ResourceDefaultsStatement:
		return p.resourceDefaults(sv, level)
	default:
		return ""
	}
}

func (p *Printer) ifElse(s ast.IfElseStatement, level int) string {
	var b strings.Builder
	for i, branch := range s.Branches {
		keyword := "if"
		switch {
		case i > 0 && branch.Condition != nil:
			keyword = "elsif"
		case branch.Condition == nil:
			keyword = ""
		}
		if i > 0 {
			b.WriteString(" ")
		}
		if keyword != "" {
			b.WriteString(keyword)
			b.WriteString(" ")
			b.WriteString(p.expr(branch.Condition, level))
			b.WriteString(" ")
		} else {
			b.WriteString("else ")
		}
		b.WriteString(p.statementBlock(branch.Body, level))
	}
	return b.String()
}

func (p *Printer) unless(s ast.UnlessStatement, level int) string {
	var b strings.Builder
	b.WriteString("unless ")
	b.WriteString(p.expr(s.Condition, level))
	b.WriteString(" ")
	b.WriteString(p.statementBlock(s.Body, level))
	if s.Else != nil {
		b.WriteString(" else ")
		b.WriteString(p.statementBlock(s.Else, level))
	}
	return b.String()
}

func (p *Printer) caseStatement(s ast.CaseStatement, level int) string {
	var b strings.Builder
	b.WriteString("case ")
	b.WriteString(p.expr(s.Condition, level))
	b.WriteString(" {\n")
	for _, arm := range s.Arms {
		b.WriteString(indent(level + 1))
		if len(arm.Values) == 0 {
			b.WriteString("default")
		} else {
			parts := make([]string, len(arm.Values))
			for i, v := range arm.Values {
				parts[i] = p.expr(v, level+1)
			}
			b.WriteString(joinComma(parts))
		}
		b.WriteString(": ")
		b.WriteString(p.statementBlock(arm.Body, level+1))
		b.WriteString("\n")
	}
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

func (p *Printer) toplevel(t *ast.Toplevel, level int) string {
	var b strings.Builder
	if t.Kind == ast.ToplevelTypeDef {
		b.WriteString("type ")
		b.WriteString(t.Identifier.String())
		b.WriteString(" = ")
		b.WriteString(p.typeSpec(t.TypeAlias))
		return b.String()
	}

	b.WriteString(t.Kind.String())
	b.WriteString(" ")
	b.WriteString(t.Identifier.String())

	if len(t.Arguments) > 0 {
		parts := make([]string, len(t.Arguments))
		for i, a := range t.Arguments {
			parts[i] = p.argument(a)
		}
		flat := "(" + joinComma(parts) + ")"
		if fitsOneLine(flat, p.Width-len(indent(level))-b.Len()) {
			b.WriteString(flat)
		} else {
			b.WriteString("(\n")
			for _, a := range t.Arguments {
				b.WriteString(indent(level + 1))
				b.WriteString(p.argument(a))
				b.WriteString(",\n")
			}
			b.WriteString(indent(level))
			b.WriteString(")")
		}
	}

	if t.Kind == ast.ToplevelFunctionDef && t.ReturnType != nil {
		b.WriteString(" >> ")
		b.WriteString(p.typeSpec(t.ReturnType))
	}

	if t.Parent != nil {
		b.WriteString(" inherits ")
		b.WriteString(t.Parent.String())
	}

	b.WriteString(" ")
	b.WriteString(p.statementBlock(t.Body, level))
	return b.String()
}

func (p *Printer) resourceDefaults(s ast.ResourceDefaultsStatement, level int) string {
	var b strings.Builder
	b.WriteString(s.Type.String())
	b.WriteString(" {\n")
	b.WriteString(p.resourceAttributes(s.Attributes, level+1, true))
	b.WriteString("\n")
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

// resourceAttributes renders one attribute per line. trailingComma matches
// the original printer's asymmetry: a resource defaults block (`Type { ... }`)
// puts a comma after every entry including the last; a resource body
// (`title: attrs`) only separates entries with commas, leaving the last bare.
func (p *Printer) resourceAttributes(attrs []ast.ResourceAttribute, level int, trailingComma bool) string {
	lines := make([]string, len(attrs))
	for i, a := range attrs {
		lines[i] = indent(level) + p.resourceAttribute(a, level)
	}
	sep := ",\n"
	joined := strings.Join(lines, sep)
	if trailingComma && len(lines) > 0 {
		joined += ","
	}
	return joined
}

func (p *Printer) resourceAttribute(a ast.ResourceAttribute, level int) string {
	switch v := a.(type) {
	case ast.ResourceAttributeName:
		return v.Name + " => " + p.expr(v.Value, level)
	case ast.ResourceAttributeGroup:
		return "* => " + p.term(v.Value, level)
	default:
		return ""
	}
}

func (p *Printer) relationList(l *ast.RelationList, level int) string {
	var b strings.Builder
	b.WriteString(p.relationElt(l.Head, level))
	if l.RelationTo != nil {
		b.WriteString(" ")
		b.WriteString(string(l.RelationType))
		b.WriteString(" ")
		b.WriteString(p.relationList(l.RelationTo, level))
	}
	return b.String()
}

func (p *Printer) relationElt(elt ast.RelationElt, level int) string {
	if len(elt.Targets) == 1 {
		return p.relationTarget(elt.Targets[0], level)
	}
	parts := make([]string, len(elt.Targets))
	for i, t := range elt.Targets {
		parts[i] = p.relationTarget(t, level)
	}
	return "[" + joinComma(parts) + "]"
}

func (p *Printer) relationTarget(t ast.RelationTarget, level int) string {
	switch v := t.(type) {
	case *ast.ResourceSet:
		return p.resourceSet(v, level)
	case *ast.ResourceCollectionTerm:
		return p.resourceCollectionTerm(v, level)
	default:
		return ""
	}
}
