package parser

import (
	"testing"

	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeSpecSized(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Integer[1, default]"))
	require.Nil(t, err)
	it, ok := spec.Data.(ast.IntegerType)
	require.True(t, ok)
	assert.Equal(t, 1.0, it.Min.Value)
	assert.True(t, it.Max.Default)
}

func TestParseTypeSpecSizedNoBounds(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("String"))
	require.Nil(t, err)
	st, ok := spec.Data.(ast.StringType)
	require.True(t, ok)
	assert.True(t, st.Min.Unset)
	assert.True(t, st.Max.Unset)
}

func TestParseTypeSpecNoArgKeywords(t *testing.T) {
	t.Parallel()
	for kw, check := range map[string]func(ast.TypeSpecificationVariant) bool{
		"Numeric": func(v ast.TypeSpecificationVariant) bool { _, ok := v.(ast.NumericType); return ok },
		"Boolean": func(v ast.TypeSpecificationVariant) bool { _, ok := v.(ast.BooleanType); return ok },
		"Undef":   func(v ast.TypeSpecificationVariant) bool { _, ok := v.(ast.UndefType); return ok },
		"Any":     func(v ast.TypeSpecificationVariant) bool { _, ok := v.(ast.AnyType); return ok },
	} {
		kw, check := kw, check
		t.Run(kw, func(t *testing.T) {
			t.Parallel()
			spec, _, err := ParseTypeSpecification(span(kw))
			require.Nil(t, err)
			assert.True(t, check(spec.Data))
		})
	}
}

func TestParseTypeSpecArray(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Array[String, 1, 5]"))
	require.Nil(t, err)
	at, ok := spec.Data.(ast.ArrayType)
	require.True(t, ok)
	require.NotNil(t, at.Inner)
	_, ok = at.Inner.Data.(ast.StringType)
	assert.True(t, ok)
	assert.Equal(t, 1.0, at.Min.Value)
	assert.Equal(t, 5.0, at.Max.Value)
}

func TestParseTypeSpecHash(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Hash[String, Integer]"))
	require.Nil(t, err)
	ht, ok := spec.Data.(ast.HashType)
	require.True(t, ok)
	require.NotNil(t, ht.Key)
	require.NotNil(t, ht.Value)
}

func TestParseTypeSpecPattern(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span(`Pattern[/foo/, /bar/]`))
	require.Nil(t, err)
	pt, ok := spec.Data.(ast.PatternType)
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, pt.Regexes)
}

func TestParseTypeSpecEnum(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span(`Enum['a', 'b']`))
	require.Nil(t, err)
	et, ok := spec.Data.(ast.EnumType)
	require.True(t, ok)
	require.Len(t, et.Terms, 2)
}

func TestParseTypeSpecVariant(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Variant[String, Integer]"))
	require.Nil(t, err)
	vt, ok := spec.Data.(ast.VariantType)
	require.True(t, ok)
	require.Len(t, vt.Types, 2)
}

func TestParseTypeSpecOptionalWithType(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Optional[String]"))
	require.Nil(t, err)
	ot, ok := spec.Data.(ast.OptionalType)
	require.True(t, ok)
	require.NotNil(t, ot.InnerType)
	assert.Nil(t, ot.InnerTerm)
}

func TestParseTypeSpecOptionalWithTerm(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Optional['literal']"))
	require.Nil(t, err)
	ot, ok := spec.Data.(ast.OptionalType)
	require.True(t, ok)
	require.NotNil(t, ot.InnerTerm)
}

func TestParseTypeSpecSensitive(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Sensitive[String]"))
	require.Nil(t, err)
	st, ok := spec.Data.(ast.SensitiveType)
	require.True(t, ok)
	require.NotNil(t, st.InnerType)
}

func TestParseTypeSpecStruct(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span(`Struct[{ 'name' => String, Optional['age'] => Integer }]`))
	require.Nil(t, err)
	strct, ok := spec.Data.(ast.StructType)
	require.True(t, ok)
	require.Len(t, strct.Entries, 2)
	assert.Equal(t, ast.StructKeyLiteral, strct.Entries[0].Key.Kind)
	assert.Equal(t, ast.StructKeyOptional, strct.Entries[1].Key.Kind)
}

func TestParseTypeSpecTuple(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Tuple[String, Integer]"))
	require.Nil(t, err)
	tt, ok := spec.Data.(ast.TupleType)
	require.True(t, ok)
	require.Len(t, tt.Types, 2)
}

func TestParseTypeSpecExternal(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("My::Custom::Type[1, 2]"))
	require.Nil(t, err)
	et, ok := spec.Data.(ast.ExternalType)
	require.True(t, ok)
	assert.Equal(t, []string{"My", "Custom", "Type"}, et.Name.Parts)
	require.Len(t, et.Args, 2)
}

func TestParseTypeSpecExternalNoArgs(t *testing.T) {
	t.Parallel()
	spec, _, err := ParseTypeSpecification(span("Stdlib::Absolutepath"))
	require.Nil(t, err)
	et, ok := spec.Data.(ast.ExternalType)
	require.True(t, ok)
	assert.Nil(t, et.Args)
}
