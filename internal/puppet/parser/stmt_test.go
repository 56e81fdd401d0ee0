package parser

import (
	"testing"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementsBareExpression(t *testing.T) {
	t.Parallel()
	stmts, _, err := ParseStatements(span(`$x = 1`))
	require.Nil(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].Value.(ast.ExpressionStatement)
	assert.True(t, ok)
}

func TestParseStatementsMultipleWithSemicolons(t *testing.T) {
	t.Parallel()
	stmts, _, err := ParseStatements(span("$x = 1;\n$y = 2"))
	require.Nil(t, err)
	require.Len(t, stmts, 2)
}

func TestParseIfElsifElse(t *testing.T) {
	t.Parallel()
	src := `if $a {
		notice('a')
	} elsif $b {
		notice('b')
	} else {
		notice('c')
	}`
	stmt, _, err := ParseStatement(span(src))
	require.Nil(t, err)
	ifElse, ok := stmt.Value.(ast.IfElseStatement)
	require.True(t, ok)
	require.Len(t, ifElse.Branches, 3)
	require.NotNil(t, ifElse.Branches[0].Condition)
	require.NotNil(t, ifElse.Branches[1].Condition)
	assert.Nil(t, ifElse.Branches[2].Condition)
}

func TestParseUnlessWithElse(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`unless $ok { fail('no') } else { notice('ok') }`))
	require.Nil(t, err)
	u, ok := stmt.Value.(ast.UnlessStatement)
	require.True(t, ok)
	require.NotNil(t, u.Condition)
	require.NotEmpty(t, u.Body)
	require.NotEmpty(t, u.Else)
}

func TestParseCaseStatement(t *testing.T) {
	t.Parallel()
	src := `case $os {
		'linux', 'bsd': { notice('unix-like') }
		default: { notice('other') }
	}`
	stmt, _, err := ParseStatement(span(src))
	require.Nil(t, err)
	c, ok := stmt.Value.(ast.CaseStatement)
	require.True(t, ok)
	require.Len(t, c.Arms, 2)
	require.Len(t, c.Arms[0].Values, 2)
	assert.Empty(t, c.Arms[1].Values)
}

func TestParseClassWithInherits(t *testing.T) {
	t.Parallel()
	src := `class foo::bar (
		String $name,
		Integer $count = 1,
	) inherits foo::base {
		notice($name)
	}`
	stmt, next, err := ParseStatement(span(src))
	require.Nil(t, err)
	ts, ok := stmt.Value.(ast.ToplevelStatement)
	require.True(t, ok)
	assert.Equal(t, ast.ToplevelClass, ts.Toplevel.Kind)
	assert.Equal(t, "foo::bar", ts.Toplevel.Identifier.String())
	require.Len(t, ts.Toplevel.Arguments, 2)
	require.NotNil(t, ts.Toplevel.Parent)
	assert.Equal(t, "foo::base", ts.Toplevel.Parent.String())
	_, ok = next.Peek()
	assert.False(t, ok)
}

func TestParseDefine(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`define foo::bar(String $x) { notice($x) }`))
	require.Nil(t, err)
	ts := stmt.Value.(ast.ToplevelStatement)
	assert.Equal(t, ast.ToplevelDefinition, ts.Toplevel.Kind)
	assert.Nil(t, ts.Toplevel.Parent)
}

func TestParseTypeAlias(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`type MyType = Variant[String, Integer]`))
	require.Nil(t, err)
	ts := stmt.Value.(ast.ToplevelStatement)
	assert.Equal(t, ast.ToplevelTypeDef, ts.Toplevel.Kind)
	require.NotNil(t, ts.Toplevel.TypeAlias)
}

func TestParseFunctionWithReturnType(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`function foo::bar(String $x) >> String { return $x }`))
	require.Nil(t, err)
	ts := stmt.Value.(ast.ToplevelStatement)
	assert.Equal(t, ast.ToplevelFunctionDef, ts.Toplevel.Kind)
	require.NotNil(t, ts.Toplevel.ReturnType)
}

func TestParseResourceSetVirtualAndMultiTitle(t *testing.T) {
	t.Parallel()
	src := `@file { 'foo':
		ensure => present;
	'bar':
		ensure => absent
	}`
	stmt, _, err := ParseStatement(span(src))
	require.Nil(t, err)
	rls, ok := stmt.Value.(ast.RelationListStatement)
	require.True(t, ok)
	require.Len(t, rls.List.Head.Targets, 1)
	set, ok := rls.List.Head.Targets[0].(*ast.ResourceSet)
	require.True(t, ok)
	assert.True(t, set.IsVirtual)
	require.Len(t, set.List, 2)
}

func TestParseResourceDefaults(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`File { mode => '0644', owner => 'root' }`))
	require.Nil(t, err)
	rd, ok := stmt.Value.(ast.ResourceDefaultsStatement)
	require.True(t, ok)
	assert.Equal(t, "file", rd.Type.String())
	require.Len(t, rd.Attributes, 2)
}

func TestParseResourceCollection(t *testing.T) {
	t.Parallel()
	stmt, _, err := ParseStatement(span(`File <| tag == 'foo' |>`))
	require.Nil(t, err)
	rls := stmt.Value.(ast.RelationListStatement)
	coll, ok := rls.List.Head.Targets[0].(*ast.ResourceCollectionTerm)
	require.True(t, ok)
	assert.False(t, coll.Exported)
	require.NotNil(t, coll.Search)
}

func TestParseRelationChain(t *testing.T) {
	t.Parallel()
	src := `File <| tag == 'a' |> -> Service <| tag == 'b' |> ~> Package <| tag == 'c' |>`
	stmt, _, err := ParseStatement(span(src))
	require.Nil(t, err)
	rls := stmt.Value.(ast.RelationListStatement)
	assert.Equal(t, ast.RelationExecOrderRight, rls.List.RelationType)
	require.NotNil(t, rls.List.RelationTo)
	assert.Equal(t, ast.RelationNotifyRight, rls.List.RelationTo.RelationType)
	require.NotNil(t, rls.List.RelationTo.RelationTo)
	assert.Equal(t, ast.RelationType(""), rls.List.RelationTo.RelationTo.RelationType)
}

func TestParseRelationGroupTarget(t *testing.T) {
	t.Parallel()
	src := `[File <| tag == 'a' |>, Service <| tag == 'b' |>] -> Package <| tag == 'c' |>`
	stmt, _, err := ParseStatement(span(src))
	require.Nil(t, err)
	rls := stmt.Value.(ast.RelationListStatement)
	require.Len(t, rls.List.Head.Targets, 2)
}
