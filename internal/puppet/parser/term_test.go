package parser

import (
	"testing"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatBeforeInteger(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		src  string
		want float32
	}{
		{"simple", "1.5", 1.5},
		{"negative", "-2.25", -2.25},
		{"exponent", "1e3", 1000},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			term, _, err := ParseFloat(span(c.src))
			require.Nil(t, err)
			assert.Equal(t, c.want, term.Value)
		})
	}
}

func TestParseTermPlainInteger(t *testing.T) {
	t.Parallel()
	term, next, err := ParseTerm(span("42"))
	require.Nil(t, err)
	i, ok := term.(*ast.IntegerTerm)
	require.True(t, ok)
	assert.EqualValues(t, 42, i.Value)
	_, ok = next.Peek()
	assert.False(t, ok)
}

func TestParseTermChoosesFloatOverInteger(t *testing.T) {
	t.Parallel()
	term, _, err := ParseTerm(span("3.14"))
	require.Nil(t, err)
	f, ok := term.(*ast.FloatTerm)
	require.True(t, ok)
	assert.InDelta(t, 3.14, f.Value, 0.001)
}

func TestParseVariableWithAccessor(t *testing.T) {
	t.Parallel()
	expr, next, err := ParseVariable(span("$foo::bar[0][1]"))
	require.Nil(t, err)
	termExpr, ok := expr.(*ast.TermExpr)
	require.True(t, ok)
	v, ok := termExpr.Term.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, v.Identifier.Parts)
	assert.False(t, v.IsLocalScope)
	require.Len(t, termExpr.Accessor(), 2)
	_, ok = next.Peek()
	assert.False(t, ok)
}

func TestParseVariableLocalScope(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseVariable(span("$_private"))
	require.Nil(t, err)
	termExpr := expr.(*ast.TermExpr)
	v := termExpr.Term.(*ast.Variable)
	assert.True(t, v.IsLocalScope)
}

func TestParseSensitiveTerm(t *testing.T) {
	t.Parallel()
	term, _, err := ParseSensitive(span(`Sensitive('secret')`))
	require.Nil(t, err)
	str, ok := term.Inner.(*ast.StringExpr)
	require.True(t, ok)
	assert.Equal(t, "secret", str.PlainText())
}

func TestParseArrayTerm(t *testing.T) {
	t.Parallel()
	arr, _, err := ParseArray(span("[1, 2, 3]"))
	require.Nil(t, err)
	require.Len(t, arr.Elements, 3)
}

func TestParseMapTerm(t *testing.T) {
	t.Parallel()
	m, _, err := ParseMap(span(`{ 'a' => 1, 'b' => 2 }`))
	require.Nil(t, err)
	require.Len(t, m.Entries, 2)
}

func TestParseParensTerm(t *testing.T) {
	t.Parallel()
	p, _, err := ParseParens(span("(1 + 2)"))
	require.Nil(t, err)
	bin, ok := p.Inner.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, bin.Op)
}

func TestParseFunctionCallTermWithLambda(t *testing.T) {
	t.Parallel()
	call, next, err := ParseFunctionCallTerm(span(`each($list) |$x| { notice($x) }`))
	require.Nil(t, err)
	assert.Equal(t, "each", call.Name.String())
	require.Len(t, call.Args, 1)
	require.NotNil(t, call.Lambda)
	require.Len(t, call.Lambda.Args, 1)
	assert.Equal(t, "x", call.Lambda.Args[0].Name)
	_, ok := next.Peek()
	assert.False(t, ok)
}

func TestParseFunctionCallTermNoArgs(t *testing.T) {
	t.Parallel()
	call, _, err := ParseFunctionCallTerm(span("fail()"))
	require.Nil(t, err)
	assert.Equal(t, "fail", call.Name.String())
	assert.Empty(t, call.Args)
	assert.Nil(t, call.Lambda)
}

func TestParseRegexpGroupID(t *testing.T) {
	t.Parallel()
	term, _, err := ParseRegexpGroupID(span("$1"))
	require.Nil(t, err)
	assert.EqualValues(t, 1, term.Index)
}

func TestParseTermUndefTrueFalse(t *testing.T) {
	t.Parallel()
	undef, _, err := ParseTerm(span("undef"))
	require.Nil(t, err)
	_, ok := undef.(*ast.UndefTerm)
	assert.True(t, ok)

	tru, _, err := ParseTerm(span("true"))
	require.Nil(t, err)
	b, ok := tru.(*ast.BooleanTerm)
	require.True(t, ok)
	assert.True(t, b.Value)

	fls, _, err := ParseTerm(span("false"))
	require.Nil(t, err)
	b2, ok := fls.(*ast.BooleanTerm)
	require.True(t, ok)
	assert.False(t, b2.Value)
}

func TestParseTermUndefPrefixIsIdentifier(t *testing.T) {
	t.Parallel()
	term, _, err := ParseTerm(span("undefined_var"))
	require.Nil(t, err)
	id, ok := term.(*ast.IdentifierTerm)
	require.True(t, ok)
	assert.Equal(t, "undefined_var", id.Identifier.String())
}

func TestParseArgumentWithTypeAndDefault(t *testing.T) {
	t.Parallel()
	arg, _, err := parseArgument(span("String $name = 'bob'"))
	require.Nil(t, err)
	assert.Equal(t, "name", arg.Name)
	require.NotNil(t, arg.Type)
	require.NotNil(t, arg.Default)
}
