package passes

import (
	"strconv"
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

// attributeNames returns the literal (non-splat) attribute names set on a
// resource body, in declaration order, skipping ResourceAttributeGroup
// splats which don't name anything statically.
func attributeNames(attrs []ast.ResourceAttribute) []string {
	var out []string
	for _, a := range attrs {
		if named, ok := a.(ast.ResourceAttributeName); ok {
			out = append(out, named.Name)
		}
	}
	return out
}

func findAttribute(attrs []ast.ResourceAttribute, name string) (ast.ResourceAttributeName, bool) {
	for _, a := range attrs {
		if named, ok := a.(ast.ResourceAttributeName); ok && named.Name == name {
			return named, true
		}
	}
	return ast.ResourceAttributeName{}, false
}

// UpperCaseName flags a resource type name that isn't entirely lowercase.
// The parser only builds a ResourceSet name from a lowercase identifier (a
// capitalised `FILE { ... }` parses as resource defaults instead), so this
// pass does not fire on parsed input.
type UpperCaseName struct{}

func (UpperCaseName) Name() string { return "upper_case_name" }

func (p UpperCaseName) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	name := rs.Name.String()
	if name == strings.ToLower(name) {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(rs.Range(), p.Name(),
		"resource type name '"+name+"' should be lowercase", url(p.Name()))}
}

// UniqueAttributeName flags a resource body that sets the same attribute
// name more than once.
type UniqueAttributeName struct{}

func (UniqueAttributeName) Name() string { return "unique_attribute_name" }

func (p UniqueAttributeName) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	var out diag.Diagnostics
	for _, res := range rs.List {
		seen := map[string]bool{}
		for _, name := range attributeNames(res.Attributes) {
			if seen[name] {
				out.Extend(diag.ManifestLint(res.Range(), p.Name(),
					"attribute '"+name+"' is set more than once", url(p.Name())))
			}
			seen[name] = true
		}
	}
	return out
}

// FileModeAttributeIsString flags a file resource's `mode` attribute given
// as a bare integer literal instead of a quoted string: Puppet's file type
// requires mode as a string (leading zeros in an integer literal are
// ambiguous/lossy), per the file type's documented convention.
type FileModeAttributeIsString struct{}

func (FileModeAttributeIsString) Name() string { return "file_mode_attribute_is_string" }

func (p FileModeAttributeIsString) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	if !strings.EqualFold(rs.Name.String(), "file") {
		return nil
	}
	var out diag.Diagnostics
	for _, res := range rs.List {
		mode, ok := findAttribute(res.Attributes, "mode")
		if !ok {
			continue
		}
		te, ok := mode.Value.(*ast.TermExpr)
		if !ok {
			continue
		}
		if _, ok := te.Term.(*ast.IntegerTerm); ok {
			out.Extend(diag.ManifestLint(mode.Value.Range(), p.Name(),
				"file mode should be given as a string (e.g. '0644'), not an integer", url(p.Name())))
		}
	}
	return out
}

// EnsureAttributeIsNotTheFirst flags a resource body that sets `ensure` but
// doesn't set it first — Puppet style convention lists `ensure` before any
// other attribute so a reader sees the resource's target state immediately.
type EnsureAttributeIsNotTheFirst struct{}

func (EnsureAttributeIsNotTheFirst) Name() string { return "ensure_attribute_is_not_the_first" }

func (p EnsureAttributeIsNotTheFirst) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	var out diag.Diagnostics
	for _, res := range rs.List {
		names := attributeNames(res.Attributes)
		for i, name := range names {
			if name == "ensure" && i != 0 {
				out.Extend(diag.ManifestLint(res.Range(), p.Name(),
					"'ensure' should be the first attribute", url(p.Name())))
			}
		}
	}
	return out
}

// MultipleResourcesWithoutDefault flags a resource set declaring more than
// one title where every title repeats an identical attribute value: that
// shared value belongs in a resource defaults declaration instead of being
// copy-pasted across titles.
type MultipleResourcesWithoutDefault struct{}

func (MultipleResourcesWithoutDefault) Name() string { return "multiple_resources_without_default" }

func (p MultipleResourcesWithoutDefault) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	if len(rs.List) < 2 {
		return nil
	}
	counts := map[string]int{}
	for _, res := range rs.List {
		seen := map[string]bool{}
		for _, a := range res.Attributes {
			named, ok := a.(ast.ResourceAttributeName)
			if !ok || seen[named.Name] {
				continue
			}
			seen[named.Name] = true
			if lit := literalAttrText(named.Value); lit != "" {
				counts[named.Name+"="+lit]++
			}
		}
	}
	var out diag.Diagnostics
	for key, n := range counts {
		if n == len(rs.List) {
			attr := strings.SplitN(key, "=", 2)[0]
			out.Extend(diag.ManifestLint(rs.Range(), p.Name(),
				"attribute '"+attr+"' is identical across all resources in this set; move it to a resource default", url(p.Name())))
		}
	}
	return out
}

func literalAttrText(expr ast.Expr) string {
	te, ok := expr.(*ast.TermExpr)
	if !ok {
		return ""
	}
	switch t := te.Term.(type) {
	case *ast.BooleanTerm:
		if t.Value {
			return "true"
		}
		return "false"
	case *ast.IntegerTerm:
		return "int:" + strconv.FormatInt(t.Value, 10)
	case *ast.StringExpr:
		return "str:" + t.PlainText()
	default:
		return ""
	}
}

// PerExpressionResourceDefaults flags a resource defaults declaration
// (`Type { attr => value }`) whose value is a selector expression: defaults
// apply uniformly to every un-overridden resource of that type, so a
// per-invocation ternary there is almost always a sign the value should
// instead be set per-resource.
type PerExpressionResourceDefaults struct{}

func (PerExpressionResourceDefaults) Name() string { return "per_expression_resource_defaults" }

func (p PerExpressionResourceDefaults) CheckResourceDefaults(ctx *lint.Ctx, rd *ast.ResourceDefaultsStatement) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range rd.Attributes {
		named, ok := a.(ast.ResourceAttributeName)
		if !ok {
			continue
		}
		if _, ok := named.Value.(*ast.SelectorExpr); ok {
			out.Extend(diag.ManifestLint(named.Value.Range(), p.Name(),
				"resource default for '"+named.Name+"' uses a selector expression", url(p.Name())))
		}
	}
	return out
}

// SelectorInAttributeValue flags a resource attribute set directly to a
// selector expression (`attr => $x ? { ... }`); assigning the selector to a
// local variable first reads more clearly than inlining it.
type SelectorInAttributeValue struct{}

func (SelectorInAttributeValue) Name() string { return "selector_in_attribute_value" }

func (p SelectorInAttributeValue) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	var out diag.Diagnostics
	for _, res := range rs.List {
		for _, a := range res.Attributes {
			named, ok := a.(ast.ResourceAttributeName)
			if !ok {
				continue
			}
			if _, ok := named.Value.(*ast.SelectorExpr); ok {
				out.Extend(diag.ManifestLint(named.Value.Range(), p.Name(),
					"attribute '"+named.Name+"' is set to an inline selector expression", url(p.Name())))
			}
		}
	}
	return out
}

// execGuardAttributes names the attributes that make an exec resource's
// execution conditional; an exec with none of these always runs at every
// catalog apply.
var execGuardAttributes = []string{"unless", "onlyif", "creates", "refreshonly"}

func hasExecGuard(attrs []ast.ResourceAttribute) bool {
	for _, name := range execGuardAttributes {
		if _, ok := findAttribute(attrs, name); ok {
			return true
		}
	}
	return false
}

// ExecAttributes covers the exec resource's three-part attribute contract
// (spec §8's testable scenario): no guard attribute at all, an implicit
// command (missing `command`, falling back to the resource title), and a
// relative `command` given without an explicit `path` under a provider
// other than `shell`.
type ExecAttributes struct{}

func (ExecAttributes) Name() string { return "exec_attributes" }

func (p ExecAttributes) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	if !strings.EqualFold(rs.Name.String(), "exec") {
		return nil
	}
	var out diag.Diagnostics
	for _, res := range rs.List {
		if !hasExecGuard(res.Attributes) {
			out.Extend(diag.ManifestLint(res.Range(), p.Name(),
				"exec resource has none of unless/onlyif/creates/refreshonly and will always run", url(p.Name())))
		}

		command, hasCommand := findAttribute(res.Attributes, "command")
		if !hasCommand {
			out.Extend(diag.ManifestLint(res.Range(), p.Name(),
				"exec resource has no explicit 'command'; the title is used implicitly", url(p.Name())))
			continue
		}

		_, hasPath := findAttribute(res.Attributes, "path")
		provider, hasProvider := findAttribute(res.Attributes, "provider")
		isShell := false
		if pte, ok := provider.Value.(*ast.TermExpr); hasProvider && ok {
			switch pt := pte.Term.(type) {
			case *ast.StringExpr:
				isShell = pt.PlainText() == "shell"
			case *ast.IdentifierTerm:
				isShell = pt.Identifier.String() == "shell"
			}
		}
		if hasPath || isShell {
			continue
		}
		if te, ok := command.Value.(*ast.TermExpr); ok {
			if s, ok := te.Term.(*ast.StringExpr); ok {
				text := s.PlainText()
				if text != "" && !strings.HasPrefix(text, "/") {
					out.Extend(diag.ManifestLint(command.Value.Range(), p.Name(),
						"exec command is not an absolute path and no 'path' attribute is set", url(p.Name())))
				}
			}
		}
	}
	return out
}

// UnconditionalExec flags an exec resource with no guard attribute and no
// `subscribe` attribute — an independently named rule overlapping
// ExecAttributes' first diagnostic, matching puppet-lint's convention of
// one rule name per distinct style guide entry even when two rules can fire
// on the same resource.
type UnconditionalExec struct{}

func (UnconditionalExec) Name() string { return "unconditional_exec" }

func (p UnconditionalExec) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	if !strings.EqualFold(rs.Name.String(), "exec") {
		return nil
	}
	var out diag.Diagnostics
	for _, res := range rs.List {
		if hasExecGuard(res.Attributes) {
			continue
		}
		if _, ok := findAttribute(res.Attributes, "subscribe"); ok {
			continue
		}
		out.Extend(diag.ManifestLint(res.Range(), p.Name(),
			"exec resource executes unconditionally on every run", url(p.Name())))
	}
	return out
}

// InvalidResourceSetInvocation flags a resource set naming a type that
// resolves to neither a builtin resource schema nor a known define, or that
// sets an attribute absent from the resolved schema/meta-parameter set
// (spec §3's Ctx-backed name resolution).
type InvalidResourceSetInvocation struct{}

func (InvalidResourceSetInvocation) Name() string { return "invalid_resource_set_invocation" }

func (p InvalidResourceSetInvocation) CheckResourceSet(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	typeName := rs.Name.String()
	if strings.EqualFold(typeName, "class") {
		return p.checkClassLike(ctx, rs)
	}

	schema, isBuiltin := ctx.LookupResourceSchema(typeName)
	block, isDefine := ctx.LookupBlock(typeName)
	if !isBuiltin && !isDefine {
		return diag.Diagnostics{diag.ManifestLint(rs.Range(), p.Name(),
			"unknown resource type '"+typeName+"'", url(p.Name()))}
	}

	var out diag.Diagnostics
	for _, res := range rs.List {
		for _, name := range attributeNames(res.Attributes) {
			if lint.MetaParameters[name] {
				continue
			}
			if isBuiltin && schema[name] {
				continue
			}
			if isDefine && definedTypeHasArgument(block, name) {
				continue
			}
			out.Extend(diag.ManifestLint(res.Range(), p.Name(),
				"'"+typeName+"' has no attribute '"+name+"'", url(p.Name())))
		}
	}
	return out
}

func (p InvalidResourceSetInvocation) checkClassLike(ctx *lint.Ctx, rs *ast.ResourceSet) diag.Diagnostics {
	var out diag.Diagnostics
	for _, res := range rs.List {
		className := res.Title.Range().String()
		if te, ok := res.Title.(*ast.TermExpr); ok {
			if s, ok := te.Term.(*ast.StringExpr); ok {
				className = s.PlainText()
			}
		}
		block, ok := ctx.LookupBlock(className)
		if !ok {
			out.Extend(diag.ManifestLint(res.Range(), p.Name(),
				"class '"+className+"' is not defined anywhere in this module path", url(p.Name())))
			continue
		}
		for _, name := range attributeNames(res.Attributes) {
			if lint.MetaParameters[name] || definedTypeHasArgument(block, name) {
				continue
			}
			out.Extend(diag.ManifestLint(res.Range(), p.Name(),
				"class '"+className+"' has no parameter '"+name+"'", url(p.Name())))
		}
	}
	return out
}

func definedTypeHasArgument(t *ast.Toplevel, name string) bool {
	for _, a := range t.Arguments {
		if a.Name == name {
			return true
		}
	}
	return false
}

// InvalidResourceCollectionInvocation flags a resource collection query
// (`Type <| ... |>`) naming a type that resolves to neither a builtin
// resource schema nor a known define.
type InvalidResourceCollectionInvocation struct{}

func (InvalidResourceCollectionInvocation) Name() string {
	return "invalid_resource_collection_invocation"
}

func (p InvalidResourceCollectionInvocation) CheckResourceCollection(ctx *lint.Ctx, rc *ast.ResourceCollectionTerm) diag.Diagnostics {
	typeName := rc.Name.String()
	_, isBuiltin := ctx.LookupResourceSchema(typeName)
	_, isDefine := ctx.LookupBlock(typeName)
	if isBuiltin || isDefine || strings.EqualFold(typeName, "class") {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(rc.Range(), p.Name(),
		"resource collection queries unknown type '"+typeName+"'", url(p.Name()))}
}
