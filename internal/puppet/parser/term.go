package parser

import (
	"strconv"
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/lexer"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func digitRun(s location.Span) (string, location.Span) {
	rest := s.Rest()
	n := 0
	for n < len(rest) && isDigit(rune(rest[n])) {
		n++
	}
	return rest[:n], s.Advance(n)
}

// ParseFloat scans a float literal: an optional leading '-', a digit run,
// then one of 'e'/'E'/'.' followed by another digit run. It must be tried
// before ParseInteger (an integer prefix is also a valid float prefix).
func ParseFloat(s location.Span) (*ast.FloatTerm, location.Span, *Error) {
	start := s
	cur := s
	if next, err := lexer.Literal(cur, "-"); err == nil {
		cur = next
	}
	intPart, afterInt := digitRun(cur)
	if intPart == "" {
		return nil, start, &Error{Range: location.RangeAt(cur), Message: "float expected"}
	}
	rest := afterInt.Rest()
	if len(rest) == 0 || (rest[0] != 'e' && rest[0] != 'E' && rest[0] != '.') {
		return nil, start, &Error{Range: location.RangeAt(afterInt), Message: "float expected"}
	}
	afterMarker := afterInt.Advance(1)
	fracPart, afterFrac := digitRun(afterMarker)
	if fracPart == "" {
		return nil, start, &Error{Range: location.RangeAt(afterMarker), Message: "float expected"}
	}
	text := start.Source[start.Offset:afterFrac.Offset]
	v, perr := strconv.ParseFloat(text, 32)
	if perr != nil {
		return nil, start, &Error{Range: location.RangeFromSpans(start, afterFrac), Message: perr.Error(), Fatal: true}
	}
	rng := location.RangeFromSpans(start, afterFrac)
	return ast.NewFloatTerm(rng, float32(v)), afterFrac, nil
}

// ParseInteger scans an optionally negative decimal integer literal.
func ParseInteger(s location.Span) (*ast.IntegerTerm, location.Span, *Error) {
	start := s
	cur := s
	if next, err := lexer.Literal(cur, "-"); err == nil {
		cur = next
	}
	digits, after := digitRun(cur)
	if digits == "" {
		return nil, start, &Error{Range: location.RangeAt(cur), Message: "integer expected"}
	}
	text := start.Source[start.Offset:after.Offset]
	v, perr := strconv.ParseInt(text, 10, 64)
	if perr != nil {
		return nil, start, &Error{Range: location.RangeFromSpans(start, after), Message: perr.Error(), Fatal: true}
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewIntegerTerm(rng, v), after, nil
}

// ParseVariable scans `$` followed by a namespaced lowercase identifier and
// zero or more `[...]` accessor groups.
func ParseVariable(s location.Span) (ast.Expr, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "$")
	if err != nil {
		return nil, start, err
	}
	name, toplevel, after, ierr := lexer.NamespacedIdentifier(next, lexer.LowercaseIdentifier)
	if ierr != nil {
		return nil, start, ierr
	}
	parts := strings.Split(strings.TrimPrefix(name, "::"), "::")
	idRng := location.RangeFromSpans(next, after)
	id := ast.NewLowerIdentifier(idRng, parts, toplevel)
	v := ast.NewVariable(idRng, id)

	groups, afterAccessor, aerr := parseAccessorGroups(after)
	if aerr != nil {
		return nil, start, aerr
	}
	rng := location.RangeFromSpans(start, afterAccessor)
	expr := ast.NewTermExpr(rng, v)
	expr.SetAccessor(groups)
	return expr, afterAccessor, nil
}

// ParseRegexpGroupID scans `$<digits>`, a back-reference to a regex match
// group.
func ParseRegexpGroupID(s location.Span) (*ast.RegexpGroupIDTerm, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "$")
	if err != nil {
		return nil, start, err
	}
	digits, after := digitRun(next)
	if digits == "" {
		return nil, start, &Error{Range: location.RangeAt(next), Message: "regex group id expected"}
	}
	v, perr := strconv.ParseUint(digits, 10, 64)
	if perr != nil {
		return nil, start, &Error{Range: location.RangeFromSpans(start, after), Message: perr.Error(), Fatal: true}
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewRegexpGroupIDTerm(rng, v), after, nil
}

// parseAccessorGroups absorbs zero or more `[ expr, expr, ... ]` groups,
// each non-empty.
func parseAccessorGroups(s location.Span) ([][]ast.Expr, location.Span, *Error) {
	var groups [][]ast.Expr
	cur := s
	for {
		afterSep := lexer.Sep0(cur)
		if _, err := lexer.Literal(afterSep, "["); err != nil {
			return groups, cur, nil
		}
		items, next, err := lexer.SquareCommaSeparated1(afterSep, ParseExpr)
		if err != nil {
			return nil, s, err
		}
		groups = append(groups, items)
		cur = next
	}
}

// ParseSensitive scans `Sensitive(term)`.
func ParseSensitive(s location.Span) (*ast.SensitiveTerm, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "Sensitive")
	if err != nil {
		return nil, start, err
	}
	inner, after, terr := lexer.RoundDelimited(next, ParseTerm)
	if terr != nil {
		return nil, start, terr
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewSensitiveTerm(rng, inner), after, nil
}

// ParseArray scans `[ expr, expr, ... ]`.
func ParseArray(s location.Span) (*ast.ArrayTerm, location.Span, *Error) {
	start := s
	items, after, err := lexer.SquareCommaSeparated0(s, ParseExpr)
	if err != nil {
		return nil, start, err
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewArrayTerm(rng, items), after, nil
}

func parseMapEntry(s location.Span) (ast.MapEntry, location.Span, *Error) {
	var zero ast.MapEntry
	key, next, err := ParseExpr(s)
	if err != nil {
		return zero, s, err
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
	return ast.MapEntry{Key: key, Value: value}, after, nil
}

// ParseMap scans `{ expr => expr, ... }`.
func ParseMap(s location.Span) (*ast.MapTerm, location.Span, *Error) {
	start := s
	entries, after, err := lexer.CurlyCommaSeparated0(s, parseMapEntry)
	if err != nil {
		return nil, start, err
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewMapTerm(rng, entries), after, nil
}

// ParseParens scans `( expr )`.
func ParseParens(s location.Span) (*ast.ParensTerm, location.Span, *Error) {
	start := s
	inner, after, err := lexer.RoundDelimited(s, ParseExpr)
	if err != nil {
		return nil, start, err
	}
	rng := location.RangeFromSpans(start, after)
	return ast.NewParensTerm(rng, inner), after, nil
}

// ParseFunctionCallTerm scans `name(args) |lambda|?`.
func ParseFunctionCallTerm(s location.Span) (*ast.FunctionCallTerm, location.Span, *Error) {
	start := s
	name, toplevel, next, err := lexer.NamespacedIdentifier(s, lexer.LowercaseIdentifier)
	if err != nil {
		return nil, start, err
	}
	if _, lerr := lexer.Literal(next, "("); lerr != nil {
		return nil, start, &Error{Range: location.RangeAt(next), Message: "function call expected"}
	}
	parts := strings.Split(strings.TrimPrefix(name, "::"), "::")
	idRng := location.RangeFromSpans(start, next)
	id := ast.NewLowerIdentifier(idRng, parts, toplevel)

	args, afterArgs, aerr := lexer.RoundCommaSeparated0(next, ParseExpr)
	if aerr != nil {
		return nil, start, aerr
	}
	lambda, afterLambda, lerr := parseOptionalLambda(afterArgs)
	if lerr != nil {
		return nil, start, lerr
	}
	rng := location.RangeFromSpans(start, afterLambda)
	return ast.NewFunctionCallTerm(rng, id, args, lambda), afterLambda, nil
}

func parseOptionalLambda(s location.Span) (*ast.Lambda, location.Span, *Error) {
	start := lexer.Sep0(s)
	after, err := lexer.Literal(start, "|")
	if err != nil {
		return nil, s, nil
	}
	args, afterArgs, aerr := lexer.CommaSeparated0(lexer.Sep0(after), parseArgument)
	if aerr != nil {
		return nil, s, aerr
	}
	closed, cerr := lexer.Protect("closing '|' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
		n, e := lexer.Literal(lexer.Sep0(sp), "|")
		return n, n, e
	})(afterArgs)
	if cerr != nil {
		return nil, s, cerr
	}
	body, afterBody, berr := lexer.CurlyDelimited(closed, ParseStatements)
	if berr != nil {
		return nil, s, berr
	}
	rng := location.RangeFromSpans(start, afterBody)
	return ast.NewLambda(rng, args, body), afterBody, nil
}

func parseArgument(s location.Span) (*ast.Argument, location.Span, *Error) {
	start := s
	var typ *ast.TypeSpecification
	afterType := s
	if spec, next, err := ParseTypeSpecification(s); err == nil {
		typ = spec
		afterType = lexer.Sep0(next)
	}
	afterDollar, err := lexer.Literal(afterType, "$")
	if err != nil {
		return nil, start, err
	}
	name, after, nerr := lexer.LowercaseIdentifier(afterDollar)
	if nerr != nil {
		return nil, start, nerr
	}
	var def ast.Expr
	afterDefault := after
	if eqNext, eerr := lexer.Literal(lexer.Sep0(after), "="); eerr == nil {
		value, n, verr := lexer.SpaceDelimited(eqNext, ParseExpr)
		if verr != nil {
			return nil, start, verr
		}
		def = value
		afterDefault = n
	}
	rng := location.RangeFromSpans(start, afterDefault)
	return ast.NewArgument(rng, name, typ, def), afterDefault, nil
}
