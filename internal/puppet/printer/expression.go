package printer

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// binaryOpText maps each BinaryOp to its infix spelling. Equal to the
// BinaryOp string value for every operator except the two type-match
// variants, which share the "=~"/"!~" spelling of their regex cousins and
// are disambiguated only by what's on the right-hand side.
func binaryOpText(op ast.BinaryOp) string {
	switch op {
	case ast.OpMatchType:
		return "=~"
	case ast.OpNotMatchType:
		return "!~"
	default:
		return string(op)
	}
}

func (p *Printer) expr(e ast.Expr, level int) string {
	if e == nil {
		return ""
	}
	body := p.exprBody(e, level)
	for _, group := range e.Accessor() {
		parts := make([]string, len(group))
		for i, g := range group {
			parts[i] = p.expr(g, level)
		}
		body += "[" + joinComma(parts) + "]"
	}
	return p.leadingComments(e.Comments(), level) + body
}

func (p *Printer) exprBody(e ast.Expr, level int) string {
	switch v := e.(type) {
	case *ast.TermExpr:
		return p.term(v.Term, level)
	case *ast.BinaryExpr:
		return p.binaryExpr(v, level)
	case *ast.NotExpr:
		return "!" + p.expr(v.Inner, level)
	case *ast.SelectorExpr:
		return p.selector(v, level)
	case *ast.FunctionCallExpr:
		return p.functionCall(v.Name, v.Args, v.Lambda, level)
	case *ast.BuiltinExpr:
		return p.builtin(v, level)
	default:
		return ""
	}
}

func (p *Printer) binaryExpr(v *ast.BinaryExpr, level int) string {
	left := p.expr(v.Left, level)
	right := p.expr(v.Right, level)
	op := binaryOpText(v.Op)

	if v.Op == ast.OpAssign {
		flat := left + " " + op + " " + right
		if fitsOneLine(flat, p.Width-len(indent(level))) {
			return flat
		}
		return left + "\n" + indent(level+1) + op + " " + p.expr(v.Right, level+1)
	}

	flat := left + " " + op + " " + right
	if fitsOneLine(flat, p.Width-len(indent(level))) {
		return flat
	}
	return left + "\n" + indent(level+1) + op + " " + p.expr(v.Right, level+1)
}

func (p *Printer) selector(v *ast.SelectorExpr, level int) string {
	cond := p.expr(v.Condition, level)
	parts := make([]string, len(v.Cases))
	for i, c := range v.Cases {
		var caseText string
		if c.Case == nil {
			caseText = "default"
		} else if t, ok := c.Case.(ast.Term); ok {
			caseText = p.term(t, level+1)
		}
		parts[i] = indent(level+1) + caseText + " => " + p.expr(c.Value, level+1) + ","
	}
	var b strings.Builder
	b.WriteString(cond)
	b.WriteString(" ? {\n")
	for _, ln := range parts {
		b.WriteString(ln)
		b.WriteString("\n")
	}
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

func (p *Printer) builtin(v *ast.BuiltinExpr, level int) string {
	switch v.Name {
	case ast.BuiltinUndef:
		return "undef"
	case ast.BuiltinReturn:
		if v.ReturnValue == nil {
			return "return"
		}
		return "return(" + p.expr(v.ReturnValue, level) + ")"
	case ast.BuiltinTemplate:
		return p.builtinCall("template", v.Call, level, true)
	case ast.BuiltinRealize, ast.BuiltinCreateResources:
		return p.builtinCall(string(v.Name), v.Call, level, true)
	default:
		return p.builtinCall(string(v.Name), v.Call, level, false)
	}
}

func (p *Printer) builtinCall(name string, call ast.ManyArgs, level int, withParens bool) string {
	parts := make([]string, len(call.Args))
	for i, a := range call.Args {
		parts[i] = p.expr(a, level)
	}
	args := joinComma(parts)
	var body string
	switch {
	case len(call.Args) == 0:
		body = "()"
	case withParens:
		body = "(" + args + ")"
	default:
		body = " " + args
	}
	s := name + body
	if call.Lambda != nil {
		s += " " + p.lambda(call.Lambda, level)
	}
	return s
}

func joinComma(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
