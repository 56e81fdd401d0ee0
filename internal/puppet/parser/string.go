// Package parser implements shadowplay's term, expression, type
// specification, and statement parsers: a hand-written recursive-descent
// parser built directly on package lexer's scanning primitives, in the
// style of original_source's nom-based puppet_parser but expressed with
// Go's explicit (value, Span, error) return convention.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/lexer"
)

// Error is a parser-level error: a recoverable failure (the caller should
// try the next alternative) or a fatal one (the file is aborted).
type Error = lexer.Error

// ParseSingleQuoted scans a `'...'` string literal. Inside, "\\" is a
// literal backslash and "\'" is a literal quote; any other "\X" is kept as
// an Escaped fragment for the lint layer to flag.
func ParseSingleQuoted(s location.Span) (*ast.StringExpr, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "'")
	if err != nil {
		return nil, s, err
	}

	var fragments []ast.StringFragment
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			fragments = append(fragments, ast.LiteralFragment{Text: literal.String()})
			literal.Reset()
		}
	}

	for {
		r, ok := next.Peek()
		if !ok {
			return nil, start, &Error{Range: location.RangeAt(next), Message: "closing \"'\" expected", Fatal: true}
		}
		if r == '\'' {
			next = next.Advance(1)
			break
		}
		if r == '\\' {
			escSpan := next.Advance(1)
			escRune, escOk := escSpan.Peek()
			if !escOk {
				return nil, start, &Error{Range: location.RangeAt(escSpan), Message: "closing \"'\" expected", Fatal: true}
			}
			switch escRune {
			case '\\':
				literal.WriteByte('\\')
			case '\'':
				literal.WriteByte('\'')
			default:
				flushLiteral()
				fragments = append(fragments, ast.EscapedFragment{Char: escRune})
			}
			next = escSpan.Advance(utf8.RuneLen(escRune))
			continue
		}
		literal.WriteRune(r)
		next = next.Advance(utf8.RuneLen(r))
	}
	flushLiteral()

	rng := location.RangeFromSpans(start, next)
	return ast.NewSingleQuotedString(rng, fragments), next, nil
}

// ParseDoubleQuoted scans a `"..."` string literal, interleaving literal
// runs, escape sequences, and interpolated expressions (`${...}` or a bare
// `$name`). `${...}` bodies are parsed with ParseExpr, which lives in this
// same package.
func ParseDoubleQuoted(s location.Span) (*ast.StringExpr, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "\"")
	if err != nil {
		return nil, s, err
	}

	var fragments []ast.DoubleQuotedFragment
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			fragments = append(fragments, ast.LiteralFragment{Text: literal.String()})
			literal.Reset()
		}
	}

	for {
		r, ok := next.Peek()
		if !ok {
			return nil, start, &Error{Range: location.RangeAt(next), Message: "closing '\"' expected", Fatal: true}
		}
		switch {
		case r == '"':
			next = next.Advance(1)
			flushLiteral()
			rng := location.RangeFromSpans(start, next)
			return ast.NewDoubleQuotedString(rng, fragments), next, nil
		case r == '\\':
			escSpan := next.Advance(1)
			escRune, escOk := escSpan.Peek()
			if !escOk {
				return nil, start, &Error{Range: location.RangeAt(escSpan), Message: "closing '\"' expected", Fatal: true}
			}
			if escRune == 'u' {
				codepoint, after, uerr := parseUnicodeEscape(escSpan.Advance(1))
				if uerr != nil {
					return nil, start, uerr
				}
				flushLiteral()
				fragments = append(fragments, ast.EscapedUTFFragment{Codepoint: codepoint})
				next = after
				continue
			}
			if replacement, known := simpleEscapes[escRune]; known {
				literal.WriteRune(replacement)
			} else {
				flushLiteral()
				fragments = append(fragments, ast.EscapedFragment{Char: escRune})
			}
			next = escSpan.Advance(utf8.RuneLen(escRune))
		case r == '$':
			dollar := next.Advance(1)
			if brace, ok2 := dollar.Peek(); ok2 && brace == '{' {
				flushLiteral()
				expr, after, eerr := parseInterpolatedBlock(dollar.Advance(1))
				if eerr != nil {
					return nil, start, eerr
				}
				fragments = append(fragments, ast.InterpolatedExpression{Expr: expr})
				next = after
				continue
			}
			if isBareVariableStart(dollar) {
				flushLiteral()
				expr, after := parseBareVariable(dollar)
				fragments = append(fragments, ast.InterpolatedExpression{Expr: expr})
				next = after
				continue
			}
			literal.WriteRune('$')
			next = dollar
		default:
			literal.WriteRune(r)
			next = next.Advance(utf8.RuneLen(r))
		}
	}
}

var simpleEscapes = map[rune]rune{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	's':  ' ',
	'$':  '$',
	'b':  '\b',
	'f':  '\f',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

func parseUnicodeEscape(s location.Span) (rune, location.Span, *Error) {
	next, err := lexer.Literal(s, "{")
	if err != nil {
		return 0, s, err
	}
	rest := next.Rest()
	end := strings.IndexByte(rest, '}')
	if end == -1 {
		return 0, s, &Error{Range: location.RangeAt(next), Message: "closing '}' expected in unicode escape", Fatal: true}
	}
	hex := rest[:end]
	v, err2 := strconv.ParseUint(hex, 16, 32)
	if err2 != nil {
		return 0, s, &Error{Range: location.RangeAt(next), Message: fmt.Sprintf("invalid unicode escape: %s", err2), Fatal: true}
	}
	return rune(v), next.Advance(end + 1), nil
}

// parseInterpolatedBlock parses the body of `${...}` up to the matching
// `}`, deferring to ParseExpr for the contents.
func parseInterpolatedBlock(s location.Span) (ast.Expr, location.Span, *Error) {
	expr, next, err := ParseExpr(s)
	if err != nil {
		return nil, s, err
	}
	after := lexer.Sep0(next)
	closed, cerr := lexer.Literal(after, "}")
	if cerr != nil {
		return nil, s, &Error{Range: location.RangeAt(after), Message: "closing '}' expected", Fatal: true}
	}
	return expr, closed, nil
}

func isBareVariableStart(s location.Span) bool {
	r, ok := s.Peek()
	if !ok {
		return false
	}
	return r == '_' || (r >= 'a' && r <= 'z')
}

// parseBareVariable parses the namespaced identifier of a bare `$name`,
// stopping at the first character that is not part of it; a following
// `[...]` is not parsed as an accessor and stays literal text.
func parseBareVariable(s location.Span) (ast.Expr, location.Span) {
	start := s
	name, next, err := lexer.NamespacedIdentifier(s, lexer.LowercaseIdentifier)
	if err != nil {
		// Not a valid identifier after all: return a nil expression. This
		// path is unreachable given isBareVariableStart's guard.
		return nil, start
	}
	rng := location.RangeFromSpans(start, next)
	parts := strings.Split(strings.TrimPrefix(name, "::"), "::")
	id := ast.NewLowerIdentifier(rng, parts, strings.HasPrefix(name, "::"))
	v := ast.NewVariable(rng, id)
	return ast.NewTermExpr(rng, v), next
}

// ParseRegexLiteral scans a `/.../ ` regex literal; `\/` is the only escape
// recognized inside, and the body is captured verbatim (opaque to the
// parser).
func ParseRegexLiteral(s location.Span) (*ast.RegexpLiteral, location.Span, *Error) {
	start := s
	next, err := lexer.Literal(s, "/")
	if err != nil {
		return nil, s, err
	}
	var raw strings.Builder
	for {
		r, ok := next.Peek()
		if !ok {
			return nil, start, &Error{Range: location.RangeAt(next), Message: "closing '/' expected", Fatal: true}
		}
		if r == '/' {
			next = next.Advance(1)
			break
		}
		if r == '\\' {
			after := next.Advance(1)
			if escaped, ok2 := after.Peek(); ok2 && escaped == '/' {
				raw.WriteByte('/')
				next = after.Advance(1)
				continue
			}
			raw.WriteByte('\\')
			next = after
			continue
		}
		raw.WriteRune(r)
		next = next.Advance(utf8.RuneLen(r))
	}
	rng := location.RangeFromSpans(start, next)
	return ast.NewRegexpLiteral(rng, raw.String()), next, nil
}
