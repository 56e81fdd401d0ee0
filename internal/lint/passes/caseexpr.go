package passes

import (
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
)

func isDefaultArm(arm ast.CaseArm) bool { return len(arm.Values) == 0 }

// EmptyCasesList flags a case statement with no arms at all.
type EmptyCasesList struct{}

func (EmptyCasesList) Name() string { return "empty_cases_list" }

func (p EmptyCasesList) CheckCase(ctx *lint.Ctx, c *ast.CaseStatement) diag.Diagnostics {
	if len(c.Arms) > 0 {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(c.Condition.Range(), p.Name(),
		"case statement has no arms", url(p.Name()))}
}

// DefaultCaseIsNotLast flags a `default` arm that appears before the final
// arm: Puppet evaluates arms in order, so a default anywhere but last
// shadows every arm written after it.
type DefaultCaseIsNotLast struct{}

func (DefaultCaseIsNotLast) Name() string { return "default_case_is_not_last" }

func (p DefaultCaseIsNotLast) CheckCase(ctx *lint.Ctx, c *ast.CaseStatement) diag.Diagnostics {
	var out diag.Diagnostics
	for i, arm := range c.Arms {
		if isDefaultArm(arm) && i != len(c.Arms)-1 {
			out.Extend(diag.ManifestLint(c.Condition.Range(), p.Name(),
				"'default' arm is not the last arm and shadows arms after it", url(p.Name())))
		}
	}
	return out
}

// MultipleDefaultCase flags more than one `default` arm in the same case
// statement; only the first can ever match.
type MultipleDefaultCase struct{}

func (MultipleDefaultCase) Name() string { return "multiple_default_case" }

func (p MultipleDefaultCase) CheckCase(ctx *lint.Ctx, c *ast.CaseStatement) diag.Diagnostics {
	count := 0
	for _, arm := range c.Arms {
		if isDefaultArm(arm) {
			count++
		}
	}
	if count <= 1 {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(c.Condition.Range(), p.Name(),
		"case statement has more than one 'default' arm", url(p.Name()))}
}

// NoDefaultCase flags a case statement with no `default` arm at all: an
// input matching no listed value falls through silently.
type NoDefaultCase struct{}

func (NoDefaultCase) Name() string { return "no_default_case" }

func (p NoDefaultCase) CheckCase(ctx *lint.Ctx, c *ast.CaseStatement) diag.Diagnostics {
	for _, arm := range c.Arms {
		if isDefaultArm(arm) {
			return nil
		}
	}
	if len(c.Arms) == 0 {
		return nil
	}
	return diag.Diagnostics{diag.ManifestLint(c.Condition.Range(), p.Name(),
		"case statement has no 'default' arm", url(p.Name()))}
}
