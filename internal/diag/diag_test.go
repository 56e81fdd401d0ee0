package diag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowplay-lint/shadowplay/internal/location"
)

func rng(path string, line, col int) location.Range {
	loc := location.Location{Line: line, Column: col}
	return location.Range{Filename: path, Start: loc, End: loc}
}

func TestOneLineFormat(t *testing.T) {
	t.Parallel()

	d := ManifestSyntax(rng("manifests/init.pp", 4, 7), "closing ')' expected")
	assert.Equal(t, `ManifestSyntax error in manifests/init.pp at line 4 column 7: closing ')' expected`, d.OneLine())
}

func TestOneLineFormatWithURL(t *testing.T) {
	t.Parallel()

	d := ManifestLint(rng("init.pp", 1, 1), "variable_contains_dash", "variable name contains a dash", "https://example.com/rules/variable-contains-dash")
	assert.Equal(t, `ManifestLint error in init.pp at line 1 column 1: variable name contains a dash // See https://example.com/rules/variable-contains-dash`, d.OneLine())
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	var d Diagnostics
	assert.False(t, d.HasErrors())
	d.Extend(nil, Hiera(rng("hiera.yaml", 1, 1), "unresolved key"), nil)
	require.Len(t, d, 1)
	assert.True(t, d.HasErrors())
}

func TestSortByLocation(t *testing.T) {
	t.Parallel()

	d := Diagnostics{
		Yaml(rng("b.yaml", 2, 1), "second file"),
		Yaml(rng("a.yaml", 5, 1), "first file, later line"),
		Yaml(rng("a.yaml", 1, 1), "first file, first line"),
	}
	d.SortByLocation()
	require.Len(t, d, 3)
	assert.Equal(t, "first file, first line", d[0].Message)
	assert.Equal(t, "first file, later line", d[1].Message)
	assert.Equal(t, "second file", d[2].Message)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := Diagnostics{FileError("modules/foo/manifests/init.pp", assertErr{"permission denied"})}
	data, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "FileError", decoded[0]["kind"])
	assert.Equal(t, "permission denied", decoded[0]["message"])
	assert.NotContains(t, decoded[0], "subtype")
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
