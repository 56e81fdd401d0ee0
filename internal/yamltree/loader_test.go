package yamltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateKeyAtRoot(t *testing.T) {
	t.Parallel()
	l, err := Load("test.yaml", "\na: 1\na: 1\n")
	require.NoError(t, err)
	require.Len(t, l.Errors, 1)
	dup, ok := l.Errors[0].(*DuplicateKey)
	require.True(t, ok)
	assert.Equal(t, KindString, dup.Key.Kind)
	assert.Equal(t, "a", dup.Key.Str)
	assert.Equal(t, 2, dup.FirstMark.Line)
	assert.Equal(t, 3, dup.SecondMark.Line)
	assert.Equal(t, KindInteger, dup.FirstValue.Kind)
	assert.EqualValues(t, 1, dup.FirstValue.Integer)
	assert.Equal(t, KindInteger, dup.SecondValue.Kind)
	assert.EqualValues(t, 1, dup.SecondValue.Integer)
}

func TestMergeKeyFirstWins(t *testing.T) {
	t.Parallel()
	src := "- &O { x: 1, y: 2000 }\n" +
		"- &O2 { x: 1, y: 2 }\n" +
		"- x: 1000\n" +
		"  <<: *O\n" +
		"  <<: *O2\n"
	l, err := Load("test.yaml", src)
	require.NoError(t, err)
	require.Len(t, l.Docs, 1)
	root := l.Docs[0]
	require.Equal(t, KindArray, root.Kind)
	require.Len(t, root.Array, 3)
	third := root.Array[2]
	require.Equal(t, KindHash, third.Kind)

	x := third.GetStringKey("x")
	require.NotNil(t, x)
	assert.EqualValues(t, 1000, x.Integer)

	y := third.GetStringKey("y")
	require.NotNil(t, y)
	assert.EqualValues(t, 2000, y.Integer)
}

func TestMergeValueMustBeHash(t *testing.T) {
	t.Parallel()
	l, err := Load("test.yaml", "a: 1\n<<: [1, 2]\n")
	require.NoError(t, err)
	require.Len(t, l.Errors, 1)
	_, ok := l.Errors[0].(*InvalidAliasMergeValue)
	assert.True(t, ok)
}

func TestScalarInference(t *testing.T) {
	t.Parallel()
	src := "a: 0x10\nb: +5\nc: ~\nd: true\ne: 3.5\nf: hello\ng: \"123\"\n"
	l, err := Load("test.yaml", src)
	require.NoError(t, err)
	root := l.Docs[0]

	a := root.GetStringKey("a")
	require.Equal(t, KindInteger, a.Kind)
	assert.EqualValues(t, 16, a.Integer)

	b := root.GetStringKey("b")
	require.Equal(t, KindInteger, b.Kind)
	assert.EqualValues(t, 5, b.Integer)

	c := root.GetStringKey("c")
	assert.Equal(t, KindNull, c.Kind)

	d := root.GetStringKey("d")
	require.Equal(t, KindBoolean, d.Kind)
	assert.True(t, d.Bool)

	e := root.GetStringKey("e")
	assert.Equal(t, KindReal, e.Kind)

	f := root.GetStringKey("f")
	require.Equal(t, KindString, f.Kind)
	assert.Equal(t, "hello", f.Str)

	g := root.GetStringKey("g")
	require.Equal(t, KindString, g.Kind)
	assert.Equal(t, "123", g.Str)
}

func TestNoDocuments(t *testing.T) {
	t.Parallel()
	l, err := Load("test.yaml", "")
	require.NoError(t, err)
	assert.Empty(t, l.Docs)
}
