package parser

import (
	"testing"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExprPrecedenceArithmeticOverComparison(t *testing.T) {
	t.Parallel()
	// 1 + 2 == 3  should parse as (1 + 2) == 3
	expr, _, err := ParseExpr(span("1 + 2 == 3"))
	require.Nil(t, err)
	top, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, top.Op)
	left, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, left.Op)
}

func TestParseExprLeftAssociativity(t *testing.T) {
	t.Parallel()
	// 1 - 2 - 3 should parse as (1 - 2) - 3
	expr, _, err := ParseExpr(span("1 - 2 - 3"))
	require.Nil(t, err)
	top := expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpMinus, top.Op)
	left, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMinus, left.Op)
}

func TestParseExprAndOrLowestPrecedence(t *testing.T) {
	t.Parallel()
	// true and 1 == 1 should parse as true and (1 == 1)
	expr, _, err := ParseExpr(span("true and 1 == 1"))
	require.Nil(t, err)
	top := expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAnd, top.Op)
	_, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
}

func TestParseExprAssignment(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span("$x = 1 + 2"))
	require.Nil(t, err)
	top, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAssign, top.Op)
}

func TestParseExprUnaryNot(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span("!$enabled"))
	require.Nil(t, err)
	not, ok := expr.(*ast.NotExpr)
	require.True(t, ok)
	require.NotNil(t, not.Inner)
}

func TestParseExprSelector(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span(`$os ? { 'linux' => 1, default => 0 }`))
	require.Nil(t, err)
	sel, ok := expr.(*ast.SelectorExpr)
	require.True(t, ok)
	require.Len(t, sel.Cases, 2)
	assert.Nil(t, sel.Cases[1].Case)
}

func TestParseExprBuiltinInclude(t *testing.T) {
	t.Parallel()
	expr, next, err := ParseExpr(span("include foo::bar"))
	require.Nil(t, err)
	b, ok := expr.(*ast.BuiltinExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BuiltinInclude, b.Name)
	require.Len(t, b.Call.Args, 1)
	_, ok = next.Peek()
	assert.False(t, ok)
}

func TestParseExprBuiltinReturnBare(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span("return 42"))
	require.Nil(t, err)
	b, ok := expr.(*ast.BuiltinExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BuiltinReturn, b.Name)
	require.NotNil(t, b.ReturnValue)
}

func TestParseExprBuiltinReturnNoValue(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span("return"))
	require.Nil(t, err)
	b, ok := expr.(*ast.BuiltinExpr)
	require.True(t, ok)
	assert.Nil(t, b.ReturnValue)
}

func TestParseExprMatchRegex(t *testing.T) {
	t.Parallel()
	expr, _, err := ParseExpr(span(`$x =~ /foo/`))
	require.Nil(t, err)
	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMatchRegex, bin.Op)
}

func TestParseExprSecondArgMissingIsFatal(t *testing.T) {
	t.Parallel()
	_, _, err := ParseExpr(span("1 +"))
	require.NotNil(t, err)
	assert.True(t, err.Fatal)
}
