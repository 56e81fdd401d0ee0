// Package lexer implements shadowplay's low-level scanning primitives:
// whitespace/comment skipping, bracket-delimited and comma-separated list
// helpers, identifier classes, and the hard-failure "protect" wrapper that
// the term and expression parser (package parser) builds on.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/shadowplay-lint/shadowplay/internal/location"
)

// Error is what a scanning primitive returns on failure. Fatal marks a hard
// failure: the caller must abort rather than try the next alternative in an
// `alt`-style choice.
type Error struct {
	Range   location.Range
	Message string
	Fatal   bool
}

func (e *Error) Error() string {
	return e.Message
}

func recoverable(s location.Span, msg string) *Error {
	return &Error{Range: location.RangeAt(s), Message: msg, Fatal: false}
}

func fatal(s location.Span, msg string) *Error {
	return &Error{Range: location.RangeAt(s), Message: msg, Fatal: true}
}

// Protect wraps a parsing primitive so that any recoverable error it returns
// becomes a fatal one carrying msg instead. Used after a required token has
// already been matched (e.g. an open bracket) so that a missing counterpart
// aborts the file rather than letting an outer `alt` swallow it.
func Protect[T any](msg string, p func(location.Span) (T, location.Span, *Error)) func(location.Span) (T, location.Span, *Error) {
	return func(s location.Span) (T, location.Span, *Error) {
		v, next, err := p(s)
		if err != nil {
			return v, next, fatal(s, msg)
		}
		return v, next, nil
	}
}

// Literal matches the exact string tag at s's current position.
func Literal(s location.Span, tag string) (location.Span, *Error) {
	if strings.HasPrefix(s.Rest(), tag) {
		return s.Advance(len(tag)), nil
	}
	return s, recoverable(s, "'"+tag+"' expected")
}

// Comment matches a '#' run to the next newline, consuming the trailing
// newline if present.
func Comment(s location.Span) (location.Span, *Error) {
	if _, ok := s.Peek(); !ok {
		return s, recoverable(s, "comment expected")
	}
	rest := s.Rest()
	if rest[0] != '#' {
		return s, recoverable(s, "comment expected")
	}
	idx := strings.IndexAny(rest, "\n\r")
	if idx == -1 {
		return s.Advance(len(rest)), nil
	}
	next := s.Advance(idx)
	if rest[idx] == '\n' {
		next = next.Advance(1)
	}
	return next, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func whitespaceRun(s location.Span) (location.Span, bool) {
	rest := s.Rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !isSpace(r) {
			break
		}
		n += size
	}
	if n == 0 {
		return s, false
	}
	return s.Advance(n), true
}

// Sep0 skips zero or more whitespace runs and comments.
func Sep0(s location.Span) location.Span {
	for {
		if next, ok := whitespaceRun(s); ok {
			s = next
			continue
		}
		if next, err := Comment(s); err == nil {
			s = next
			continue
		}
		return s
	}
}

// Sep1 skips one or more whitespace runs and comments; it fails if none are
// present.
func Sep1(s location.Span) (location.Span, *Error) {
	next := Sep0(s)
	if next.Offset == s.Offset {
		return s, recoverable(s, "whitespace or comment expected")
	}
	return next, nil
}

// SpaceDelimited runs p with Sep0 skipped on either side.
func SpaceDelimited[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) (T, location.Span, *Error) {
	s = Sep0(s)
	v, next, err := p(s)
	if err != nil {
		var zero T
		return zero, s, err
	}
	return v, Sep0(next), nil
}

// CommaSeparator matches a comma with optional surrounding whitespace.
func CommaSeparator(s location.Span) (location.Span, *Error) {
	s = Sep0(s)
	next, err := Literal(s, ",")
	if err != nil {
		return s, err
	}
	return Sep0(next), nil
}

type bracketKind struct {
	open, close string
}

var (
	roundBrackets = bracketKind{"(", ")"}
	squareBracket = bracketKind{"[", "]"}
	curlyBrackets = bracketKind{"{", "}"}
)

func bracketDelimited[T any](s location.Span, b bracketKind, p func(location.Span) (T, location.Span, *Error)) (T, location.Span, *Error) {
	var zero T
	s = Sep0(s)
	next, err := Literal(s, b.open)
	if err != nil {
		return zero, s, err
	}
	next = Sep0(next)
	v, next, err := p(next)
	if err != nil {
		return zero, s, err
	}
	next = Sep0(next)
	closed, err := Protect("Closing '"+b.close+"' expected", func(s location.Span) (location.Span, location.Span, *Error) {
		n, e := Literal(s, b.close)
		return n, n, e
	})(next)
	if err != nil {
		return zero, s, err
	}
	return v, closed, nil
}

// RoundDelimited parses "( p )", converting a missing close paren into a
// fatal "Closing ')' expected" error.
func RoundDelimited[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) (T, location.Span, *Error) {
	return bracketDelimited(s, roundBrackets, p)
}

// SquareDelimited parses "[ p ]".
func SquareDelimited[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) (T, location.Span, *Error) {
	return bracketDelimited(s, squareBracket, p)
}

// CurlyDelimited parses "{ p }".
func CurlyDelimited[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) (T, location.Span, *Error) {
	return bracketDelimited(s, curlyBrackets, p)
}

func commaSeparated[T any](s location.Span, p func(location.Span) (T, location.Span, *Error), min int) ([]T, location.Span, *Error) {
	var items []T
	first, next, err := p(s)
	if err != nil {
		if min == 0 {
			return items, s, nil
		}
		return nil, s, err
	}
	items = append(items, first)
	cur := next
	for {
		afterComma, cerr := CommaSeparator(cur)
		if cerr != nil {
			break
		}
		v, n, perr := p(afterComma)
		if perr != nil {
			// Optional trailing comma: the comma we just consumed had no
			// following item, which is fine.
			cur = afterComma
			break
		}
		items = append(items, v)
		cur = n
	}
	return items, cur, nil
}

// CommaSeparated0 parses zero or more p separated by commas, with an
// optional trailing comma.
func CommaSeparated0[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return commaSeparated(s, p, 0)
}

// CommaSeparated1 parses one or more p separated by commas, with an
// optional trailing comma.
func CommaSeparated1[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return commaSeparated(s, p, 1)
}

// RoundCommaSeparated0 parses "( p, p, ... )" with zero or more items.
func RoundCommaSeparated0[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return RoundDelimited(s, func(s location.Span) ([]T, location.Span, *Error) {
		return CommaSeparated0(s, p)
	})
}

// RoundCommaSeparated1 parses "( p, p, ... )" with one or more items.
func RoundCommaSeparated1[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return RoundDelimited(s, func(s location.Span) ([]T, location.Span, *Error) {
		return CommaSeparated1(s, p)
	})
}

// SquareCommaSeparated0 parses "[ p, p, ... ]" with zero or more items.
func SquareCommaSeparated0[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return SquareDelimited(s, func(s location.Span) ([]T, location.Span, *Error) {
		return CommaSeparated0(s, p)
	})
}

// SquareCommaSeparated1 parses "[ p, p, ... ]" with one or more items.
func SquareCommaSeparated1[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return SquareDelimited(s, func(s location.Span) ([]T, location.Span, *Error) {
		return CommaSeparated1(s, p)
	})
}

// CurlyCommaSeparated0 parses "{ p, p, ... }" with zero or more items.
func CurlyCommaSeparated0[T any](s location.Span, p func(location.Span) (T, location.Span, *Error)) ([]T, location.Span, *Error) {
	return CurlyDelimited(s, func(s location.Span) ([]T, location.Span, *Error) {
		return CommaSeparated0(s, p)
	})
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

// LowercaseIdentifier matches [a-z_][a-z0-9_]*.
func LowercaseIdentifier(s location.Span) (string, location.Span, *Error) {
	rest := s.Rest()
	if len(rest) == 0 {
		return "", s, recoverable(s, "identifier expected")
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !isIdentStart(r) {
		return "", s, recoverable(s, "identifier expected")
	}
	n := size
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !isIdentCont(r) {
			break
		}
		n += size
	}
	return rest[:n], s.Advance(n), nil
}

// CamelCaseIdentifier matches [A-Z][A-Za-z0-9_]*.
func CamelCaseIdentifier(s location.Span) (string, location.Span, *Error) {
	rest := s.Rest()
	if len(rest) == 0 {
		return "", s, recoverable(s, "CamelCase identifier expected")
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !('A' <= r && r <= 'Z') {
		return "", s, recoverable(s, "CamelCase identifier expected")
	}
	n := size
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !(('A' <= r && r <= 'Z') || isIdentCont(r)) {
			break
		}
		n += size
	}
	return rest[:n], s.Advance(n), nil
}

// NamespacedIdentifier matches one or more segments (each recognized by seg)
// joined by "::"; a leading "::" marks the identifier as toplevel-rooted.
// It returns the full matched text including separators and the toplevel
// flag.
func NamespacedIdentifier(s location.Span, seg func(location.Span) (string, location.Span, *Error)) (name string, toplevel bool, next location.Span, err *Error) {
	start := s
	if afterRoot, e := Literal(s, "::"); e == nil {
		toplevel = true
		s = afterRoot
	}
	first, afterFirst, segErr := seg(s)
	if segErr != nil {
		return "", false, start, segErr
	}
	segments := []string{first}
	cur := afterFirst
	for {
		afterSep, sepErr := Literal(cur, "::")
		if sepErr != nil {
			break
		}
		v, n, e := seg(afterSep)
		if e != nil {
			break
		}
		segments = append(segments, v)
		cur = n
	}
	joined := strings.Join(segments, "::")
	if toplevel {
		joined = "::" + joined
	}
	return joined, toplevel, cur, nil
}
