package main

import (
	"fmt"
	"os"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/modulepath"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/parser"
)

// parsedFile is one successfully-or-partially parsed manifest.
type parsedFile struct {
	path  string
	stmts []*ast.Statement
}

// parseManifests parses every file in paths, returning the ones that parsed
// (even partially) alongside any syntax diagnostics collected along the way.
func parseManifests(paths []string) ([]parsedFile, diag.Diagnostics) {
	var out []parsedFile
	var diags diag.Diagnostics

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			diags.Extend(diag.FileError(path, err))
			continue
		}
		stmts, _, perr := parser.ParseStatements(location.NewSpan(path, string(data)))
		if perr != nil {
			diags.Extend(diag.ManifestSyntax(perr.Range, perr.Message))
		}
		if stmts != nil {
			out = append(out, parsedFile{path: path, stmts: stmts})
		}
	}
	return out, diags
}

// resolveManifestPaths expands explicit file arguments, or (when none are
// given) walks every configured module-path root via modulepath.WalkManifests.
func resolveManifestPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var out []string
	for _, root := range modulePathFlag {
		found, err := modulepath.WalkManifests(root)
		if err != nil {
			return nil, fmt.Errorf("walking module path %s: %w", root, err)
		}
		out = append(out, found...)
	}
	return out, nil
}

// buildCtx registers every parsed file's toplevel blocks into a fresh Ctx,
// the shared prerequisite for both `check pp` (cross-file resource/class
// resolution) and `check hiera` (class/parameter existence lookups).
func buildCtx(files []parsedFile) *lint.Ctx {
	ctx := lint.NewCtx()
	for _, f := range files {
		ctx.RegisterFile(f.stmts)
	}
	return ctx
}
