// Package passes implements shadowplay's 37-rule lint pass set (spec §4.7,
// "40+ rules") grounded on pkg/pulumiyaml/analyser.go's walker-driven check
// style, generalized from Pulumi-YAML's type/resource checks to Puppet's
// argument/expression/resource/case/string/term grammar. Each pass is a
// small stateless struct implementing one or more of internal/lint's
// *Checker hook interfaces; passes.All() is the fixed, compile-time-known
// pass set the Walker dispatches against (spec §9's closed tagged-variant
// requirement, expressed in Go via optional-interface assertions rather
// than a central enum).
package passes

import (
	"fmt"
	"strings"

	"github.com/ettle/strcase"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

const docsBase = "https://github.com/shadowplay-lint/shadowplay/wiki/lints"

func url(rule string) string {
	return docsBase + "#" + rule
}

// isSnakeCase reports whether name is already in lower_snake_case, using
// ettle/strcase — the teacher pack's casing library — as the normalizer:
// any name strcase.ToSnake would rewrite is, by construction, not already
// in that style.
func isSnakeCase(name string) bool {
	return strcase.ToSnake(name) == name
}

// OptionalArgumentsGoesFirst flags a required (no-default) argument that
// follows an optional (has-default) one, since Puppet resolves positional
// call sites left to right.
type OptionalArgumentsGoesFirst struct{}

func (OptionalArgumentsGoesFirst) Name() string { return "optional_arguments_goes_first" }

func (p OptionalArgumentsGoesFirst) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	seenOptional := false
	for _, a := range args {
		if a.Default != nil {
			seenOptional = true
			continue
		}
		if seenOptional {
			out.Extend(diag.ManifestLint(a.Range(), p.Name(),
				fmt.Sprintf("required argument $%s follows an optional argument", a.Name), url(p.Name())))
		}
	}
	return out
}

// UniqueArgumentsNames flags a parameter name reused within one arg list.
type UniqueArgumentsNames struct{}

func (UniqueArgumentsNames) Name() string { return "unique_arguments_names" }

func (p UniqueArgumentsNames) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	seen := map[string]bool{}
	for _, a := range args {
		if seen[a.Name] {
			out.Extend(diag.ManifestLint(a.Range(), p.Name(),
				fmt.Sprintf("duplicate argument name $%s", a.Name), url(p.Name())))
		}
		seen[a.Name] = true
	}
	return out
}

// sensitiveNameHints is the substring list used to flag an argument whose
// name suggests it carries a secret.
var sensitiveNameHints = []string{"password", "secret", "token", "api_key", "apikey", "private_key", "credential"}

func looksSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range sensitiveNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// ArgumentLooksSensitive flags an argument whose name suggests a secret but
// isn't wrapped in Sensitive[...].
type ArgumentLooksSensitive struct{}

func (ArgumentLooksSensitive) Name() string { return "argument_looks_sensitive" }

func (p ArgumentLooksSensitive) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range args {
		if !looksSensitive(a.Name) {
			continue
		}
		if a.Type != nil {
			if _, ok := a.Type.Data.(ast.SensitiveType); ok {
				continue
			}
		}
		out.Extend(diag.ManifestLint(a.Range(), p.Name(),
			fmt.Sprintf("argument $%s looks sensitive but is not typed Sensitive[...]", a.Name), url(p.Name())))
	}
	return out
}

// SensitiveArgumentWithDefault flags a Sensitive[...] argument that carries
// a literal default value (a secret baked into source).
type SensitiveArgumentWithDefault struct{}

func (SensitiveArgumentWithDefault) Name() string { return "sensitive_argument_with_default" }

func (p SensitiveArgumentWithDefault) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range args {
		if a.Type == nil || a.Default == nil {
			continue
		}
		if _, ok := a.Type.Data.(ast.SensitiveType); !ok {
			continue
		}
		out.Extend(diag.ManifestLint(a.Range(), p.Name(),
			fmt.Sprintf("sensitive argument $%s has a literal default", a.Name), url(p.Name())))
	}
	return out
}

// ArgumentTyped flags an argument with no type specification at all.
type ArgumentTyped struct{}

func (ArgumentTyped) Name() string { return "argument_typed" }

func (p ArgumentTyped) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range args {
		if a.Type == nil {
			out.Extend(diag.ManifestLint(a.Range(), p.Name(),
				fmt.Sprintf("argument $%s has no type specification", a.Name), url(p.Name())))
		}
	}
	return out
}

// ReadableArgumentsName flags an argument name of at most one character.
type ReadableArgumentsName struct{}

func (ReadableArgumentsName) Name() string { return "readable_arguments_name" }

func (p ReadableArgumentsName) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range args {
		if len(a.Name) <= 1 {
			out.Extend(diag.ManifestLint(a.Range(), p.Name(),
				fmt.Sprintf("argument name $%s is not descriptive", a.Name), url(p.Name())))
		}
	}
	return out
}

// LowerCaseArgumentName flags an argument name not in lower_snake_case.
type LowerCaseArgumentName struct{}

func (LowerCaseArgumentName) Name() string { return "lower_case_argument_name" }

func (p LowerCaseArgumentName) CheckArguments(ctx *lint.Ctx, owner *ast.Toplevel, args []*ast.Argument) diag.Diagnostics {
	var out diag.Diagnostics
	for _, a := range args {
		if !isSnakeCase(a.Name) {
			out.Extend(diag.ManifestLint(a.Range(), p.Name(),
				fmt.Sprintf("argument name $%s should be lower_snake_case", a.Name), url(p.Name())))
		}
	}
	return out
}
