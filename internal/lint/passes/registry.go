package passes

import "github.com/shadowplay-lint/shadowplay/internal/lint"

// All returns the fixed, compile-time-known set of every lint pass — the
// set the Walker dispatches against (see internal/lint/pass.go's doc
// comment on why this is a plain slice rather than a registration hook).
func All() []lint.Pass {
	return []lint.Pass{
		// Arguments
		OptionalArgumentsGoesFirst{},
		UniqueArgumentsNames{},
		ArgumentLooksSensitive{},
		SensitiveArgumentWithDefault{},
		ArgumentTyped{},
		ReadableArgumentsName{},
		LowerCaseArgumentName{},

		// Unless/If
		DoNotUseUnless{},

		// Expressions
		UselessParens{},
		InvalidVariableAssignment{},
		DoubleNegation{},
		NegationOfEquation{},
		ConstantExpressionInCondition{},

		// Builtin/Template
		ErbReferencesToUnknownVariable{},

		// Strings
		UselessDoubleQuotes{},
		ExpressionInSingleQuotes{},
		InvalidStringEscape{},

		// Terms
		LowerCaseVariable{},
		ReferenceToUndefinedValue{},

		// ResourceSet
		UpperCaseName{},
		UniqueAttributeName{},
		FileModeAttributeIsString{},
		EnsureAttributeIsNotTheFirst{},
		MultipleResourcesWithoutDefault{},
		PerExpressionResourceDefaults{},
		SelectorInAttributeValue{},
		ExecAttributes{},
		UnconditionalExec{},
		InvalidResourceSetInvocation{},
		InvalidResourceCollectionInvocation{},

		// Case
		EmptyCasesList{},
		DefaultCaseIsNotLast{},
		MultipleDefaultCase{},
		NoDefaultCase{},

		// Statements
		StatementWithNoEffect{},
		RelationToTheLeft{},

		// Context
		UnusedVariables{},
	}
}
