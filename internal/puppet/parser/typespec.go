package parser

import (
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/lexer"
)

func parseBound(s location.Span) (ast.Bound, location.Span, *Error) {
	s2 := lexer.Sep0(s)
	if next, err := lexer.Literal(s2, "default"); err == nil {
		return ast.Bound{Default: true}, next, nil
	}
	if floatTerm, next, err := ParseFloat(s2); err == nil {
		return ast.Bound{Value: float64(floatTerm.Value)}, next, nil
	}
	if intTerm, next, err := ParseInteger(s2); err == nil {
		return ast.Bound{Value: float64(intTerm.Value)}, next, nil
	}
	return ast.Bound{Unset: true}, s, nil
}

func parseBoundPair(s location.Span) (min, max ast.Bound, next location.Span, err *Error) {
	min, next, err = parseBound(s)
	if err != nil {
		return
	}
	if min.Unset {
		return
	}
	next2 := lexer.Sep0(next)
	if afterComma, cerr := lexer.CommaSeparator(next2); cerr == nil {
		max, next, err = parseBound(afterComma)
		return
	}
	return min, ast.Bound{Unset: true}, next, nil
}

func parseSizedType(s location.Span, keyword string) (min, max ast.Bound, next location.Span, ok bool, err *Error) {
	afterKw, kerr := lexer.Literal(s, keyword)
	if kerr != nil {
		return ast.Bound{}, ast.Bound{}, s, false, nil
	}
	if afterBr, berr := lexer.Literal(lexer.Sep0(afterKw), "["); berr != nil {
		return ast.Bound{Unset: true}, ast.Bound{Unset: true}, afterKw, true, nil
	} else {
		min, max, next, err = parseBoundPair(lexer.Sep0(afterBr))
		if err != nil {
			return ast.Bound{}, ast.Bound{}, s, true, err
		}
		closed, cerr := lexer.Protect("Closing ']' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
			n, e := lexer.Literal(lexer.Sep0(sp), "]")
			return n, n, e
		})(next)
		if cerr != nil {
			return ast.Bound{}, ast.Bound{}, s, true, cerr
		}
		return min, max, closed, true, nil
	}
}

func noArgType(s location.Span, keyword string) (location.Span, bool) {
	next, err := lexer.Literal(s, keyword)
	if err != nil {
		return s, false
	}
	return next, true
}

// ParseTypeSpecification parses a named type constructor, per spec §4.5.
func ParseTypeSpecification(s location.Span) (*ast.TypeSpecification, location.Span, *Error) {
	start := s

	for _, kw := range []string{"Float", "Integer", "String"} {
		min, max, next, ok, err := parseSizedType(s, kw)
		if err != nil {
			return nil, start, err
		}
		if ok {
			var variant ast.TypeSpecificationVariant
			switch kw {
			case "Float":
				variant = ast.FloatType{Min: min, Max: max}
			case "Integer":
				variant = ast.IntegerType{Min: min, Max: max}
			case "String":
				variant = ast.StringType{Min: min, Max: max}
			}
			return ast.NewTypeSpecification(location.RangeFromSpans(start, next), variant), next, nil
		}
	}

	for kw, variant := range map[string]ast.TypeSpecificationVariant{
		"Numeric": ast.NumericType{},
		"Boolean": ast.BooleanType{},
		"Undef":   ast.UndefType{},
		"Any":     ast.AnyType{},
	} {
		if next, ok := noArgType(s, kw); ok {
			return ast.NewTypeSpecification(location.RangeFromSpans(start, next), variant), next, nil
		}
	}

	if next, ok := noArgType(s, "Array"); ok {
		inner, min, max, after, perr := parseArrayBody(next)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.ArrayType{Inner: inner, Min: min, Max: max}), after, nil
	}

	if next, ok := noArgType(s, "Hash"); ok {
		key, value, min, max, after, perr := parseHashBody(next)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.HashType{Key: key, Value: value, Min: min, Max: max}), after, nil
	}

	if next, ok := noArgType(s, "Pattern"); ok {
		regexes, after, perr := lexer.SquareCommaSeparated1(next, parseRegexBody)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.PatternType{Regexes: regexes}), after, nil
	}

	if next, ok := noArgType(s, "Regex"); ok {
		regex, after, serr := lexer.SquareDelimited(next, parseRegexBody)
		if serr != nil {
			return nil, start, serr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.RegexType{Regex: regex}), after, nil
	}

	if next, ok := noArgType(s, "Enum"); ok {
		terms, after, perr := lexer.SquareCommaSeparated1(next, ParseTerm)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.EnumType{Terms: terms}), after, nil
	}

	if next, ok := noArgType(s, "Variant"); ok {
		types, after, perr := lexer.SquareCommaSeparated1(next, ParseTypeSpecification)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.VariantType{Types: types}), after, nil
	}

	if next, ok := noArgType(s, "Optional"); ok {
		variant, after, perr := parseOptionalOrSensitiveBody(next, func(v interface{}) ast.TypeSpecificationVariant {
			term, isTerm := v.(ast.Term)
			if isTerm {
				return ast.OptionalType{InnerTerm: term}
			}
			return ast.OptionalType{InnerType: v.(*ast.TypeSpecification)}
		})
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, variant), after, nil
	}

	if next, ok := noArgType(s, "Sensitive"); ok {
		variant, after, perr := parseOptionalOrSensitiveBody(next, func(v interface{}) ast.TypeSpecificationVariant {
			term, isTerm := v.(ast.Term)
			if isTerm {
				return ast.SensitiveType{InnerTerm: term}
			}
			return ast.SensitiveType{InnerType: v.(*ast.TypeSpecification)}
		})
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, variant), after, nil
	}

	if next, ok := noArgType(s, "Struct"); ok {
		entries, after, perr := lexer.SquareDelimited(next, func(sp location.Span) ([]ast.StructEntry, location.Span, *Error) {
			return lexer.CurlyDelimited(sp, parseStructEntries)
		})
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.StructType{Entries: entries}), after, nil
	}

	if next, ok := noArgType(s, "Tuple"); ok {
		types, min, max, after, perr := parseTupleBody(next)
		if perr != nil {
			return nil, start, perr
		}
		rng := location.RangeFromSpans(start, after)
		return ast.NewTypeSpecification(rng, ast.TupleType{Types: types, Min: min, Max: max}), after, nil
	}

	// External/custom: CamelCase namespaced identifier with an optional
	// bracketed argument list.
	if first, next, ferr := lexer.CamelCaseIdentifier(s); ferr == nil {
		segments := []string{first}
		cur := next
		for {
			afterSep, serr := lexer.Literal(cur, "::")
			if serr != nil {
				break
			}
			seg, n, cerr := lexer.CamelCaseIdentifier(afterSep)
			if cerr != nil {
				break
			}
			segments = append(segments, seg)
			cur = n
		}
		var args []ast.Expr
		if afterBr, berr := lexer.Literal(lexer.Sep0(cur), "["); berr == nil {
			items, n, aerr := lexer.CommaSeparated0(lexer.Sep0(afterBr), ParseExpr)
			if aerr != nil {
				return nil, start, aerr
			}
			closed, cerr := lexer.Protect("Closing ']' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
				m, e := lexer.Literal(lexer.Sep0(sp), "]")
				return m, m, e
			})(n)
			if cerr != nil {
				return nil, start, cerr
			}
			args = items
			cur = closed
		}
		idRng := location.RangeFromSpans(s, cur)
		id := ast.NewLowerIdentifier(idRng, segments, false)
		rng := location.RangeFromSpans(start, cur)
		return ast.NewTypeSpecification(rng, ast.ExternalType{Name: id, Args: args}), cur, nil
	}

	return nil, start, &Error{Range: location.RangeAt(s), Message: "type specification expected"}
}

func parseArrayBody(s location.Span) (*ast.TypeSpecification, ast.Bound, ast.Bound, location.Span, *Error) {
	if afterBr, ok := noArgType(s, "["); !ok {
		return nil, ast.Bound{Unset: true}, ast.Bound{Unset: true}, s, nil
	} else {
		s = lexer.Sep0(afterBr)
	}
	var inner *ast.TypeSpecification
	if spec, next, err := ParseTypeSpecification(s); err == nil {
		inner = spec
		s = next
	}
	min, max := ast.Bound{Unset: true}, ast.Bound{Unset: true}
	if afterComma, cerr := lexer.CommaSeparator(lexer.Sep0(s)); cerr == nil {
		m1, m2, next, err := parseBoundPair(afterComma)
		if err != nil {
			return nil, min, max, s, err
		}
		min, max, s = m1, m2, next
	}
	closed, cerr := lexer.Protect("Closing ']' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
		n, e := lexer.Literal(lexer.Sep0(sp), "]")
		return n, n, e
	})(s)
	if cerr != nil {
		return nil, min, max, s, cerr
	}
	return inner, min, max, closed, nil
}

func parseHashBody(s location.Span) (key, value *ast.TypeSpecification, min, max ast.Bound, next location.Span, err *Error) {
	min, max = ast.Bound{Unset: true}, ast.Bound{Unset: true}
	if afterBr, ok := noArgType(s, "["); !ok {
		return nil, nil, min, max, s, nil
	} else {
		s = lexer.Sep0(afterBr)
	}
	k, afterKey, kerr := ParseTypeSpecification(s)
	if kerr != nil {
		return nil, nil, min, max, s, kerr
	}
	key = k
	cur := afterKey
	if afterComma, cerr := lexer.CommaSeparator(lexer.Sep0(cur)); cerr == nil {
		v, afterValue, verr := ParseTypeSpecification(afterComma)
		if verr != nil {
			return nil, nil, min, max, s, verr
		}
		value = v
		cur = afterValue
		if afterComma2, cerr2 := lexer.CommaSeparator(lexer.Sep0(cur)); cerr2 == nil {
			m1, m2, n, berr := parseBoundPair(afterComma2)
			if berr != nil {
				return nil, nil, min, max, s, berr
			}
			min, max, cur = m1, m2, n
		}
	}
	closed, cerr := lexer.Protect("Closing ']' expected", func(sp location.Span) (location.Span, location.Span, *Error) {
		n, e := lexer.Literal(lexer.Sep0(sp), "]")
		return n, n, e
	})(cur)
	if cerr != nil {
		return nil, nil, min, max, s, cerr
	}
	return key, value, min, max, closed, nil
}

func parseRegexBody(s location.Span) (string, location.Span, *Error) {
	lit, next, err := ParseRegexLiteral(s)
	if err != nil {
		return "", s, err
	}
	return lit.Raw, next, nil
}

// parseOptionalOrSensitiveBody parses "[ term-or-type ]", trying a Term
// first and falling back to a TypeSpecification, per spec §4.5's
// "alternative inner: term first fails over type" rule. A term that is
// itself a type specification is passed on as the type.
func parseOptionalOrSensitiveBody(s location.Span, build func(interface{}) ast.TypeSpecificationVariant) (ast.TypeSpecificationVariant, location.Span, *Error) {
	return lexer.SquareDelimited(s, func(s location.Span) (ast.TypeSpecificationVariant, location.Span, *Error) {
		if term, next, err := ParseTerm(s); err == nil {
			if ts, ok := term.(*ast.TypeSpecTerm); ok {
				return build(ts.Spec), next, nil
			}
			return build(term), next, nil
		}
		spec, next, err := ParseTypeSpecification(s)
		if err != nil {
			return nil, s, err
		}
		return build(spec), next, nil
	})
}

func parseStructKey(s location.Span) (ast.StructKey, location.Span, *Error) {
	if next, ok := noArgType(s, "Optional"); ok {
		str, after, err := lexer.SquareDelimited(next, parseQuotedStringLiteral)
		if err != nil {
			return ast.StructKey{}, s, err
		}
		return ast.StructKey{Kind: ast.StructKeyOptional, Literal: str}, after, nil
	}
	if next, ok := noArgType(s, "NotUndef"); ok {
		str, after, err := lexer.SquareDelimited(next, parseQuotedStringLiteral)
		if err != nil {
			return ast.StructKey{}, s, err
		}
		return ast.StructKey{Kind: ast.StructKeyNotUndef, Literal: str}, after, nil
	}
	str, after, err := parseQuotedStringLiteral(s)
	if err != nil {
		return ast.StructKey{}, s, err
	}
	return ast.StructKey{Kind: ast.StructKeyLiteral, Literal: str}, after, nil
}

func parseQuotedStringLiteral(s location.Span) (string, location.Span, *Error) {
	str, next, err := ParseSingleQuoted(s)
	if err != nil {
		str, next, err = ParseDoubleQuoted(s)
		if err != nil {
			return "", s, err
		}
	}
	return str.PlainText(), next, nil
}

func parseStructEntry(s location.Span) (ast.StructEntry, location.Span, *Error) {
	var zero ast.StructEntry
	key, next, err := parseStructKey(s)
	if err != nil {
		return zero, s, err
	}
	next = lexer.Sep0(next)
	afterArrow, aerr := lexer.Literal(next, "=>")
	if aerr != nil {
		return zero, s, aerr
	}
	value, after, verr := lexer.SpaceDelimited(afterArrow, ParseTypeSpecification)
	if verr != nil {
		return zero, s, verr
	}
	return ast.StructEntry{Key: key, Value: value}, after, nil
}

func parseStructEntries(s location.Span) ([]ast.StructEntry, location.Span, *Error) {
	return lexer.CommaSeparated0(s, parseStructEntry)
}

func parseTupleBody(s location.Span) ([]*ast.TypeSpecification, ast.Bound, ast.Bound, location.Span, *Error) {
	min, max := ast.Bound{Unset: true}, ast.Bound{Unset: true}
	types, next, err := lexer.SquareCommaSeparated1(s, ParseTypeSpecification)
	if err != nil {
		return nil, min, max, s, err
	}
	return types, min, max, next, nil
}

