package parser

import (
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/lexer"
)

var builtinNames = map[string]ast.BuiltinKind{
	"undef":            ast.BuiltinUndef,
	"tag":              ast.BuiltinTag,
	"require":          ast.BuiltinRequire,
	"include":          ast.BuiltinInclude,
	"realize":          ast.BuiltinRealize,
	"create_resources": ast.BuiltinCreateResources,
	"return":           ast.BuiltinReturn,
	"template":         ast.BuiltinTemplate,
}

// ParseTerm is the ordered alternative over every term form, per spec §4.4.
// Order matters: float must be tried before integer, and Sensitive/type
// specification/function-call must be tried before a bare identifier would
// otherwise absorb their keyword.
func ParseTerm(s location.Span) (ast.Term, location.Span, *Error) {
	if next, err := lexer.Literal(s, "undef"); err == nil && !followedByIdentChar(next) {
		return ast.NewUndefTerm(location.RangeFromSpans(s, next)), next, nil
	}
	if next, err := lexer.Literal(s, "true"); err == nil && !followedByIdentChar(next) {
		return ast.NewBooleanTerm(location.RangeFromSpans(s, next), true), next, nil
	}
	if next, err := lexer.Literal(s, "false"); err == nil && !followedByIdentChar(next) {
		return ast.NewBooleanTerm(location.RangeFromSpans(s, next), false), next, nil
	}
	if t, next, err := ParseSensitive(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseFloat(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseInteger(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseFunctionCallTerm(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseTypeSpecification(s); err == nil {
		return ast.NewTypeSpecTerm(t.Range(), t), next, nil
	}
	if t, next, err := ParseDoubleQuoted(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseSingleQuoted(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseArray(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseParens(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseMap(s); err == nil {
		return t, next, nil
	}
	if name, toplevel, next, err := lexer.NamespacedIdentifier(s, lexer.LowercaseIdentifier); err == nil {
		parts := splitNamespaced(name)
		rng := location.RangeFromSpans(s, next)
		id := ast.NewLowerIdentifier(rng, parts, toplevel)
		return ast.NewIdentifierTerm(rng, id), next, nil
	}
	if afterDollar, err := lexer.Literal(s, "$"); err == nil {
		if name, toplevel, next, ierr := lexer.NamespacedIdentifier(afterDollar, lexer.LowercaseIdentifier); ierr == nil {
			parts := splitNamespaced(name)
			rng := location.RangeFromSpans(s, next)
			id := ast.NewLowerIdentifier(rng, parts, toplevel)
			return ast.NewVariable(rng, id), next, nil
		}
	}
	if t, next, err := ParseRegexpGroupID(s); err == nil {
		return t, next, nil
	}
	if t, next, err := ParseRegexLiteral(s); err == nil {
		return t, next, nil
	}
	return nil, s, &Error{Range: location.RangeAt(s), Message: "term expected"}
}

func followedByIdentChar(s location.Span) bool {
	r, ok := s.Peek()
	if !ok {
		return false
	}
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func splitNamespaced(name string) []string {
	trimmed := name
	if len(trimmed) >= 2 && trimmed[:2] == "::" {
		trimmed = trimmed[2:]
	}
	var parts []string
	start := 0
	for i := 0; i+1 < len(trimmed); i++ {
		if trimmed[i] == ':' && trimmed[i+1] == ':' {
			parts = append(parts, trimmed[start:i])
			start = i + 2
			i++
		}
	}
	parts = append(parts, trimmed[start:])
	return parts
}

// parseTermAsExpr wraps ParseTerm's result as an Expr, absorbing any
// trailing accessor groups.
func parseTermAsExpr(s location.Span) (ast.Expr, location.Span, *Error) {
	start := s
	if v, next, err := ParseVariable(s); err == nil {
		return v, next, nil
	}
	term, next, err := ParseTerm(s)
	if err != nil {
		return nil, start, err
	}
	groups, afterAccessor, aerr := parseAccessorGroups(next)
	if aerr != nil {
		return nil, start, aerr
	}
	rng := location.RangeFromSpans(start, afterAccessor)
	expr := ast.NewTermExpr(rng, term)
	expr.SetAccessor(groups)
	return expr, afterAccessor, nil
}

// level2..level4 implement the binary levels from spec §4.4's table
// (level 1, assignment, is handled by ParseExpr directly since
// it's right-associative and sits above everything else).
var level2Ops = []string{"and", "or"}
var level3Ops = []string{"==", "!=", ">=", "<=", ">", "<"}
var level4Ops = []string{"<<", ">>", "in", "+", "-", "=~", "!~", "."}
var multiplicativeOps = []string{"*", "/", "%"}

// ParseExpr parses a full expression: assignment, then the and/or level,
// then comparison, then the arithmetic/match level (inside which `*`, `/`
// and `%` bind tighter than the other operators), with precedence
// climbing folding each level left-associatively (spec §4.4).
func ParseExpr(s location.Span) (ast.Expr, location.Span, *Error) {
	left, next, err := parseLevel2(s)
	if err != nil {
		return nil, s, err
	}
	afterSep := lexer.Sep0(next)
	if afterEq, eerr := lexer.Literal(afterSep, "="); eerr == nil {
		if r, ok := afterEq.Peek(); !ok || r != '=' {
			right, afterRight, rerr := ParseExpr(lexer.Sep0(afterEq))
			if rerr != nil {
				return nil, s, &Error{Range: location.RangeAt(afterEq), Message: "Second argument of operator is expected", Fatal: true}
			}
			rng := location.RangeFromSpans(s, afterRight)
			return ast.NewBinaryExpr(rng, ast.OpAssign, left, right), afterRight, nil
		}
	}
	return left, next, nil
}

func matchOp(s location.Span, candidates []string) (ast.BinaryOp, location.Span, bool) {
	for _, op := range candidates {
		if next, err := lexer.Literal(s, op); err == nil {
			// Guard against matching a word-operator ("and"/"or"/"in") as a
			// prefix of a longer identifier.
			if isWordOp(op) && followedByIdentChar(next) {
				continue
			}
			return ast.BinaryOp(op), next, true
		}
	}
	return "", s, false
}

func isWordOp(op string) bool {
	return op == "and" || op == "or" || op == "in"
}

func foldLevel(s location.Span, ops []string, next func(location.Span) (ast.Expr, location.Span, *Error)) (ast.Expr, location.Span, *Error) {
	left, cur, err := next(s)
	if err != nil {
		return nil, s, err
	}
	for {
		afterSep := lexer.Sep0(cur)
		op, afterOp, ok := matchOp(afterSep, ops)
		if !ok {
			return left, cur, nil
		}
		right, afterRight, rerr := next(lexer.Sep0(afterOp))
		if rerr != nil {
			return nil, s, &Error{Range: location.RangeAt(afterOp), Message: "Second argument of operator is expected", Fatal: true}
		}
		rng := location.RangeFromSpans(s, afterRight)
		left = ast.NewBinaryExpr(rng, op, left, right)
		cur = afterRight
	}
}

func parseLevel2(s location.Span) (ast.Expr, location.Span, *Error) {
	return foldLevel(s, level2Ops, parseLevel3)
}

func parseLevel3(s location.Span) (ast.Expr, location.Span, *Error) {
	return foldLevel(s, level3Ops, parseLevel4)
}

func parseLevel4(s location.Span) (ast.Expr, location.Span, *Error) {
	return foldLevel(s, level4Ops, parseMultiplicative)
}

func parseMultiplicative(s location.Span) (ast.Expr, location.Span, *Error) {
	return foldLevel(s, multiplicativeOps, parseUnaryOrSelector)
}

func parseUnaryOrSelector(s location.Span) (ast.Expr, location.Span, *Error) {
	start := s
	if next, err := lexer.Literal(s, "!"); err == nil {
		inner, after, ierr := parseUnaryOrSelector(next)
		if ierr != nil {
			return nil, start, &Error{Range: location.RangeAt(next), Message: "Second argument of operator is expected", Fatal: true}
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewNotExpr(rng, inner), after, nil
	}

	cond, next, err := parseBuiltinOrTerm(s)
	if err != nil {
		return nil, start, err
	}

	afterSep := lexer.Sep0(next)
	if afterQ, qerr := lexer.Literal(afterSep, "?"); qerr == nil {
		cases, after, cerr := lexer.CurlyDelimited(afterQ, parseSelectorCases)
		if cerr != nil {
			return nil, start, cerr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewSelectorExpr(rng, cond, cases), after, nil
	}
	return cond, next, nil
}

func parseBuiltinOrTerm(s location.Span) (ast.Expr, location.Span, *Error) {
	start := s
	if name, next, err := lexer.LowercaseIdentifier(s); err == nil {
		if kind, ok := builtinNames[name]; ok && !followedByColonColon(next) {
			if v, after, berr := parseBuiltinBody(start, next, kind); berr == nil || berr.Fatal {
				return v, after, berr
			}
		}
	}
	return parseTermAsExpr(s)
}

func followedByColonColon(s location.Span) bool {
	_, err := lexer.Literal(s, "::")
	return err == nil
}

func parseBuiltinBody(start, afterName location.Span, kind ast.BuiltinKind) (ast.Expr, location.Span, *Error) {
	if kind == ast.BuiltinReturn {
		var value ast.Expr
		next := afterName
		if hasParen, perr := lexer.Literal(lexer.Sep0(afterName), "("); perr == nil {
			inner, afterArg, ierr := lexer.SpaceDelimited(hasParen, ParseExpr)
			if ierr == nil {
				value = inner
			}
			closed, cerr := lexer.Protect("Closing ')' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
				n, e := lexer.Literal(lexer.Sep0(sp), ")")
				return n, n, e
			})(afterArg)
			if cerr != nil {
				return nil, start, cerr
			}
			next = closed
		} else if v, afterV, verr := ParseExpr(lexer.Sep0(afterName)); verr == nil {
			value = v
			next = afterV
		}
		rng := location.RangeFromSpans(start, next)
		return ast.NewBuiltinExpr(rng, kind, ast.ManyArgs{}, value), next, nil
	}

	call, next, err := parseManyArgs(afterName)
	if err != nil {
		return nil, start, err
	}
	rng := location.RangeFromSpans(start, next)
	return ast.NewBuiltinExpr(rng, kind, call, nil), next, nil
}

// parseManyArgs parses a builtin's argument list: a parenthesized
// comma-separated list, or (when no lambda follows) a bare comma-separated
// list with no parens, per spec §4.4.
func parseManyArgs(s location.Span) (ast.ManyArgs, location.Span, *Error) {
	if afterParen, perr := lexer.Literal(lexer.Sep0(s), "("); perr == nil {
		args, afterArgs, aerr := lexer.CommaSeparated0(lexer.Sep0(afterParen), ParseExpr)
		if aerr != nil {
			return ast.ManyArgs{}, s, aerr
		}
		closed, cerr := lexer.Protect("Closing ')' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
			n, e := lexer.Literal(lexer.Sep0(sp), ")")
			return n, n, e
		})(afterArgs)
		if cerr != nil {
			return ast.ManyArgs{}, s, cerr
		}
		lambda, afterLambda, lerr := parseOptionalLambda(closed)
		if lerr != nil {
			return ast.ManyArgs{}, s, lerr
		}
		return ast.ManyArgs{Args: args, Lambda: lambda}, afterLambda, nil
	}
	afterSep, serr := lexer.Sep1(s)
	if serr != nil {
		return ast.ManyArgs{}, s, serr
	}
	args, after, err := lexer.CommaSeparated1(afterSep, ParseExpr)
	if err != nil {
		return ast.ManyArgs{}, s, err
	}
	return ast.ManyArgs{Args: args}, after, nil
}

func parseSelectorCases(s location.Span) ([]ast.SelectorCase, location.Span, *Error) {
	return lexer.CommaSeparated1(s, parseSelectorCase)
}

func parseSelectorCase(s location.Span) (ast.SelectorCase, location.Span, *Error) {
	var zero ast.SelectorCase
	var caseNode ast.Node
	var next location.Span
	if afterDefault, err := lexer.Literal(s, "default"); err == nil {
		next = afterDefault
		caseNode = nil
	} else {
		term, afterTerm, terr := ParseTerm(s)
		if terr != nil {
			return zero, s, terr
		}
		caseNode = term
		next = afterTerm
	}
	next = lexer.Sep0(next)
	afterArrow, aerr := lexer.Literal(next, "=>")
	if aerr != nil {
		return zero, s, aerr
	}
	value, after, verr := lexer.SpaceDelimited(afterArrow, ParseExpr)
	if verr != nil {
		return zero, s, verr
	}
	return ast.SelectorCase{Case: caseNode, Value: value}, after, nil
}
