// Package location implements the byte-offset, line, and column tracking
// used by every node in the Puppet AST and by the located YAML loader.
package location

import (
	"fmt"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

// Location is a single position in a source file: a byte offset plus its
// 1-based line and 1-based, Unicode-scalar-counted column.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Pos converts a Location into an hcl.Pos, the representation the rest of
// the diagnostics surface (C12) is built on.
func (l Location) Pos() hcl.Pos {
	return hcl.Pos{Line: l.Line, Column: l.Column, Byte: l.Offset}
}

func fromHCLPos(p hcl.Pos) Location {
	return Location{Offset: p.Byte, Line: p.Line, Column: p.Column}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range is a start/end pair of Locations within a named source file.
// Invariant: Start.Offset <= End.Offset, and both index into the same
// source text.
type Range struct {
	Filename string
	Start    Location
	End      Location
}

// HCL returns the hcl.Range backing this Range, for use with hcl's
// diagnostic writer and other hcl-aware tooling.
func (r Range) HCL() *hcl.Range {
	return &hcl.Range{Filename: r.Filename, Start: r.Start.Pos(), End: r.End.Pos()}
}

// FromHCL builds a Range from an hcl.Range, e.g. one produced by the YAML
// tree decoder.
func FromHCL(r *hcl.Range) Range {
	if r == nil {
		return Range{}
	}
	return Range{Filename: r.Filename, Start: fromHCLPos(r.Start), End: fromHCLPos(r.End)}
}

func (r Range) String() string {
	return fmt.Sprintf("%s:%s-%s", r.Filename, r.Start, r.End)
}

// Span is a borrowed view into a source file: the text from Offset to the
// end of Source, plus the line/column of its first byte. Scanners advance a
// Span as they consume input; Ranges are constructed from pairs of Spans.
type Span struct {
	Filename string
	Source   string // the full original source text
	Offset   int
	Line     int
	Column   int
}

// NewSpan creates a Span at the beginning of source.
func NewSpan(filename, source string) Span {
	return Span{Filename: filename, Source: source, Offset: 0, Line: 1, Column: 1}
}

// Rest returns the unconsumed remainder of the source from this Span's
// offset onward.
func (s Span) Rest() string {
	return s.Source[s.Offset:]
}

// Len returns the number of bytes remaining in the span.
func (s Span) Len() int {
	return len(s.Source) - s.Offset
}

// Location returns the start position of this span as a Location.
func (s Span) Location() Location {
	return Location{Offset: s.Offset, Line: s.Line, Column: s.Column}
}

// Advance consumes n bytes of the span's remaining text, updating line and
// column counts. Every '\n' increments Line and resets Column to 1; Column
// otherwise counts Unicode scalar values, not bytes.
func (s Span) Advance(n int) Span {
	rest := s.Rest()
	if n > len(rest) {
		n = len(rest)
	}
	consumed := rest[:n]
	line, col := s.Line, s.Column
	for _, r := range consumed {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Span{Filename: s.Filename, Source: s.Source, Offset: s.Offset + n, Line: line, Column: col}
}

// Peek returns the first rune of the span's remaining text, if any.
func (s Span) Peek() (rune, bool) {
	rest := s.Rest()
	if rest == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return r, true
}

// RangeFromSpans constructs a Range spanning from the first byte of start to
// the last Unicode scalar of end, inclusive, per spec §4.1: "start =
// begin(a), end = last-char-of(b)". end must be a Span sharing start's
// Source and positioned at or after start (i.e. the parser state right
// after consuming the token(s) that should be covered). A zero-width end
// (end.Offset == start.Offset) yields a single-character range at start.
func RangeFromSpans(start, end Span) Range {
	if end.Offset <= start.Offset {
		return Range{Filename: start.Filename, Start: start.Location(), End: start.Location()}
	}
	consumed := start.Source[start.Offset:end.Offset]
	_, size := utf8.DecodeLastRuneInString(consumed)
	lastCharStart := start.Advance(len(consumed) - size)
	return Range{Filename: start.Filename, Start: start.Location(), End: lastCharStart.Location()}
}

// RangeAt constructs a single-character range at s's current position.
func RangeAt(s Span) Range {
	return RangeFromSpans(s, s)
}

// Cover constructs a Range spanning from the start of a to the end of b,
// where a and b are already-computed Ranges over the same file.
func Cover(a, b Range) Range {
	return Range{Filename: a.Filename, Start: a.Start, End: b.End}
}
