package printer

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

func (p *Printer) resourceSet(r *ast.ResourceSet, level int) string {
	var b strings.Builder
	b.WriteString(p.leadingComments(r.Comments(), level))
	if r.IsVirtual {
		b.WriteString("@")
	}
	b.WriteString(r.Name.String())
	b.WriteString(" {\n")

	bodies := make([]string, len(r.List))
	for i, res := range r.List {
		bodies[i] = p.resource(res, level+1)
	}
	b.WriteString(strings.Join(bodies, ";\n"))

	b.WriteString("\n")
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

func (p *Printer) resource(r *ast.Resource, level int) string {
	var b strings.Builder
	b.WriteString(indent(level))
	b.WriteString(p.expr(r.Title, level))
	b.WriteString(":")
	if len(r.Attributes) > 0 {
		b.WriteString("\n")
		b.WriteString(p.resourceAttributes(r.Attributes, level+1, false))
	}
	return b.String()
}
