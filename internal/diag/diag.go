// Package diag implements shadowplay's normalized diagnostics surface: the
// single representation that parser errors, lint findings, YAML loader
// errors, and Hiera cross-reference errors are all reduced to before being
// shown to a user or serialized as JSON.
package diag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/location"
)

// Kind categorizes a Diagnostic by which subsystem produced it.
type Kind string

const (
	KindFileError      Kind = "FileError"
	KindYaml           Kind = "Yaml"
	KindManifestSyntax Kind = "ManifestSyntax"
	KindManifestLint   Kind = "ManifestLint"
	KindHiera          Kind = "Hiera"
)

// A Diagnostic is a single warning or error to present to the user.
type Diagnostic struct {
	Kind    Kind
	Subtype string // e.g. a lint pass name for KindManifestLint; empty otherwise
	Message string
	URL     string // optional documentation link
	Range   location.Range

	// Shown marks whether this diagnostic has already been rendered, for a
	// caller that prints incrementally; the renderers in this package
	// neither set nor read it.
	Shown bool
}

func (d *Diagnostic) Error() string {
	return d.OneLine()
}

// OneLine renders the diagnostic in the CLI's default one-line format:
// "{kind} error in {path} at line L column C: {message}", with an optional
// trailing "// See {url}".
func (d *Diagnostic) OneLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s error in %s at line %d column %d: %s",
		d.Kind, d.Range.Filename, d.Range.Start.Line, d.Range.Start.Column, d.Message)
	if d.URL != "" {
		fmt.Fprintf(&sb, " // See %s", d.URL)
	}
	return sb.String()
}

// jsonDiagnostic is the wire shape for JSON-mode output; field names follow
// spec's `{kind, subtype?, message?, url?, range}` normalization.
type jsonDiagnostic struct {
	Kind    Kind      `json:"kind"`
	Subtype string    `json:"subtype,omitempty"`
	Message string    `json:"message,omitempty"`
	URL     string    `json:"url,omitempty"`
	Range   jsonRange `json:"range"`
}

type jsonRange struct {
	Path  string        `json:"path"`
	Start jsonLocation  `json:"start"`
	End   *jsonLocation `json:"end,omitempty"`
}

type jsonLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (d *Diagnostic) toJSON() jsonDiagnostic {
	end := jsonLocation{Line: d.Range.End.Line, Column: d.Range.End.Column}
	return jsonDiagnostic{
		Kind:    d.Kind,
		Subtype: d.Subtype,
		Message: d.Message,
		URL:     d.URL,
		Range: jsonRange{
			Path:  d.Range.Filename,
			Start: jsonLocation{Line: d.Range.Start.Line, Column: d.Range.Start.Column},
			End:   &end,
		},
	}
}

// MarshalJSON implements json.Marshaler directly on Diagnostic so a single
// diagnostic can be serialized on its own, not just as part of a slice.
func (d *Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toJSON())
}

// FileError builds a diagnostic for an I/O failure reading or walking a
// file; per spec, this aborts only the file it names.
func FileError(path string, err error) *Diagnostic {
	return &Diagnostic{
		Kind:    KindFileError,
		Message: err.Error(),
		Range:   location.Range{Filename: path},
	}
}

// Yaml builds a diagnostic for a fatal YAML scan/parse error.
func Yaml(rng location.Range, message string) *Diagnostic {
	return &Diagnostic{Kind: KindYaml, Message: message, Range: rng}
}

// ManifestSyntax builds a diagnostic for a fatal (protected) parser failure.
func ManifestSyntax(rng location.Range, message string) *Diagnostic {
	return &Diagnostic{Kind: KindManifestSyntax, Message: message, Range: rng}
}

// ManifestLint builds a diagnostic for a lint pass finding. subtype is the
// lint pass's name (e.g. "lower_case_variable").
func ManifestLint(rng location.Range, subtype, message, url string) *Diagnostic {
	return &Diagnostic{Kind: KindManifestLint, Subtype: subtype, Message: message, URL: url, Range: rng}
}

// Hiera builds a diagnostic for a non-fatal Hiera cross-reference failure.
func Hiera(rng location.Range, message string) *Diagnostic {
	return &Diagnostic{Kind: KindHiera, Message: message, Range: rng}
}

// Diagnostics is an ordered collection of diagnostics produced by one or
// more files.
type Diagnostics []*Diagnostic

// HasErrors reports whether the collection is non-empty. Unlike hcl, every
// shadowplay diagnostic is reported as an "error" line in one-line mode;
// there is no separate warning severity in the normalized surface (spec
// §7's kind enum carries no severity field), so presence of any diagnostic
// is what gates the CLI's exit code.
func (d Diagnostics) HasErrors() bool {
	return len(d) > 0
}

// Extend appends zero or more diagnostics, skipping nils so call sites can
// pass the possibly-nil result of a constructor directly.
func (d *Diagnostics) Extend(diags ...*Diagnostic) {
	for _, diag := range diags {
		if diag != nil {
			*d = append(*d, diag)
		}
	}
}

// SortByLocation orders diagnostics by file, then line, then column, for
// stable output across a multi-file run.
func (d Diagnostics) SortByLocation() {
	sort.SliceStable(d, func(i, j int) bool {
		a, b := d[i].Range, d[j].Range
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		return a.Start.Column < b.Start.Column
	})
}

// Error implements the error interface so Diagnostics can interoperate with
// ordinary Go error-returning code.
func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].OneLine()
	default:
		var sb strings.Builder
		for _, diagnostic := range d {
			sb.WriteString("\n")
			sb.WriteString(diagnostic.OneLine())
		}
		return sb.String()
	}
}

// RenderOneLine writes every diagnostic in one-line format, one per line.
func (d Diagnostics) RenderOneLine(w *strings.Builder) {
	for i, diagnostic := range d {
		if i > 0 {
			w.WriteByte('\n')
		}
		w.WriteString(diagnostic.OneLine())
	}
}

// MarshalJSON renders the collection as a JSON array, the shape used by
// `--format=json`.
func (d Diagnostics) MarshalJSON() ([]byte, error) {
	out := make([]jsonDiagnostic, len(d))
	for i, diagnostic := range d {
		out[i] = diagnostic.toJSON()
	}
	return json.Marshal(out)
}
