package hiera

import (
	"strings"

	"github.com/shadowplay-lint/shadowplay/internal/config"
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/yamltree"
)

// CheckDataFile validates every top-level key of a loaded Hiera data
// document against the class/parameter registry built while linting the
// module path (spec §6: "validate that every top-level Hiera key of the
// form module::klass::param refers to an existing class module::klass
// ... and that the named parameter is declared on that class, or
// whitelisted"). filename is used only to anchor diagnostics, since
// yamltree.Value's Location carries no filename of its own.
func CheckDataFile(ctx *lint.Ctx, filename string, doc *yamltree.Value, modules, values *config.Whitelist) diag.Diagnostics {
	var out diag.Diagnostics
	if doc == nil || doc.Kind != yamltree.KindHash {
		return out
	}
	doc.Hash.Each(func(key, value *yamltree.Value) {
		name, ok := key.GetString()
		if !ok {
			return
		}
		out.Extend(checkKey(ctx, filename, name, key, modules, values)...)
	})
	return out
}

func checkKey(ctx *lint.Ctx, filename, key string, loc *yamltree.Value, modules, values *config.Whitelist) diag.Diagnostics {
	parts := strings.Split(key, "::")
	if len(parts) < 2 {
		// Not a qualified module::klass::param key; nothing to validate.
		return nil
	}
	module := parts[0]
	if modules.Matches(module) {
		return nil
	}

	rng := location.Range{Filename: filename, Start: loc.Location, End: loc.Location}
	className := strings.Join(parts[:len(parts)-1], "::")
	param := parts[len(parts)-1]

	block, ok := ctx.LookupBlock(className)
	if !ok {
		return diag.Diagnostics{diag.Hiera(rng,
			"Hiera key '"+key+"' refers to class '"+className+"', which is not defined anywhere in this module path")}
	}

	if values.Matches(key) {
		return nil
	}
	for _, arg := range block.Arguments {
		if arg.Name == param {
			return nil
		}
	}
	return diag.Diagnostics{diag.Hiera(rng,
		"Hiera key '"+key+"' names parameter '"+param+"', which class '"+className+"' does not declare")}
}
