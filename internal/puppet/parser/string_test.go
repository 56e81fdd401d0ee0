package parser

import (
	"testing"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(src string) location.Span {
	return location.NewSpan("test.pp", src)
}

func TestParseSingleQuotedLiteral(t *testing.T) {
	t.Parallel()
	str, next, err := ParseSingleQuoted(span(`'hello world'`))
	require.Nil(t, err)
	assert.Equal(t, "hello world", str.PlainText())
	_, ok := next.Peek()
	assert.False(t, ok)
}

func TestParseSingleQuotedEscapes(t *testing.T) {
	t.Parallel()
	str, _, err := ParseSingleQuoted(span(`'it\'s a \\test'`))
	require.Nil(t, err)
	assert.Equal(t, `it's a \test`, str.PlainText())
}

func TestParseSingleQuotedUnterminatedIsFatal(t *testing.T) {
	t.Parallel()
	_, _, err := ParseSingleQuoted(span(`'no closing quote`))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
}

func TestParseDoubleQuotedEscapes(t *testing.T) {
	t.Parallel()
	str, _, err := ParseDoubleQuoted(span(`"a\nb\tc"`))
	require.Nil(t, err)
	assert.Equal(t, "a\nb\tc", str.PlainText())
}

func TestParseDoubleQuotedBareVariableInterpolation(t *testing.T) {
	t.Parallel()
	str, next, err := ParseDoubleQuoted(span(`"hello $name!"`))
	require.Nil(t, err)
	require.Len(t, str.DoubleQuoted, 3)
	frag, ok := str.DoubleQuoted[1].(ast.InterpolatedExpression)
	require.True(t, ok)
	termExpr, ok := frag.Expr.(*ast.TermExpr)
	require.True(t, ok)
	v, ok := termExpr.Term.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "name", v.Identifier.String())
	r, ok := next.Peek()
	assert.False(t, ok, "expected EOF, got %q", r)
}

func TestParseDoubleQuotedBracedInterpolation(t *testing.T) {
	t.Parallel()
	str, _, err := ParseDoubleQuoted(span(`"count: ${1 + 2}"`))
	require.Nil(t, err)
	require.Len(t, str.DoubleQuoted, 2)
	frag, ok := str.DoubleQuoted[1].(ast.InterpolatedExpression)
	require.True(t, ok)
	bin, ok := frag.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, bin.Op)
}

func TestParseDoubleQuotedUnicodeEscape(t *testing.T) {
	t.Parallel()
	str, _, err := ParseDoubleQuoted(span(`"\u{48}i"`))
	require.Nil(t, err)
	assert.Equal(t, "Hi", str.PlainText())
}

func TestParseRegexLiteral(t *testing.T) {
	t.Parallel()
	lit, _, err := ParseRegexLiteral(span(`/foo\/bar/`))
	require.Nil(t, err)
	assert.Equal(t, "foo/bar", lit.Raw)
}
