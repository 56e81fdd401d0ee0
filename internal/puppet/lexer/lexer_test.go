package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowplay-lint/shadowplay/internal/location"
)

func span(src string) location.Span {
	return location.NewSpan("test.pp", src)
}

func TestComment(t *testing.T) {
	t.Parallel()

	next, err := Comment(span("# hello world\nrest"))
	require.Nil(t, err)
	assert.Equal(t, "rest", next.Rest())
}

func TestSep0SkipsWhitespaceAndComments(t *testing.T) {
	t.Parallel()

	s := span("  #a\n  #b\naaa")
	next := Sep0(s)
	assert.Equal(t, "aaa", next.Rest())
}

func TestSep1RequiresAtLeastOne(t *testing.T) {
	t.Parallel()

	_, err := Sep1(span("aaa"))
	require.NotNil(t, err)
	assert.False(t, err.Fatal)
}

func TestLowercaseIdentifier(t *testing.T) {
	t.Parallel()

	name, next, err := LowercaseIdentifier(span("foo_bar123 rest"))
	require.Nil(t, err)
	assert.Equal(t, "foo_bar123", name)
	assert.Equal(t, " rest", next.Rest())
}

func TestCamelCaseIdentifier(t *testing.T) {
	t.Parallel()

	name, _, err := CamelCaseIdentifier(span("String[1,2]"))
	require.Nil(t, err)
	assert.Equal(t, "String", name)
}

func TestNamespacedIdentifierToplevel(t *testing.T) {
	t.Parallel()

	name, toplevel, _, err := NamespacedIdentifier(span("::foo::bar rest"), LowercaseIdentifier)
	require.Nil(t, err)
	assert.True(t, toplevel)
	assert.Equal(t, "::foo::bar", name)
}

func TestNamespacedIdentifier(t *testing.T) {
	t.Parallel()

	name, toplevel, next, err := NamespacedIdentifier(span("foo::bar::baz(x)"), LowercaseIdentifier)
	require.Nil(t, err)
	assert.False(t, toplevel)
	assert.Equal(t, "foo::bar::baz", name)
	assert.Equal(t, "(x)", next.Rest())
}

func stringLit(s location.Span) (string, location.Span, *Error) {
	return LowercaseIdentifier(s)
}

func TestRoundDelimitedMissingCloseIsFatal(t *testing.T) {
	t.Parallel()

	_, _, err := RoundDelimited(span("(foo"), stringLit)
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
	assert.Equal(t, "Closing ')' expected", err.Message)
}

func TestRoundDelimitedOk(t *testing.T) {
	t.Parallel()

	v, next, err := RoundDelimited(span("( foo )rest"), stringLit)
	require.Nil(t, err)
	assert.Equal(t, "foo", v)
	assert.Equal(t, "rest", next.Rest())
}

func TestCommaSeparated0TrailingComma(t *testing.T) {
	t.Parallel()

	items, next, err := SquareCommaSeparated0(span("[foo, bar, baz,]rest"), stringLit)
	require.Nil(t, err)
	assert.Equal(t, []string{"foo", "bar", "baz"}, items)
	assert.Equal(t, "rest", next.Rest())
}

func TestCommaSeparated0Empty(t *testing.T) {
	t.Parallel()

	items, next, err := SquareCommaSeparated0(span("[]rest"), stringLit)
	require.Nil(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "rest", next.Rest())
}

func TestCommaSeparated1RequiresOne(t *testing.T) {
	t.Parallel()

	_, _, err := SquareCommaSeparated1(span("[]"), stringLit)
	require.NotNil(t, err)
}

func TestProtectConvertsRecoverableToFatal(t *testing.T) {
	t.Parallel()

	p := Protect("X expected", stringLit)
	_, _, err := p(span("123"))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
	assert.Equal(t, "X expected", err.Message)
}
