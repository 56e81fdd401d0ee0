package modulepath

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/location"
)

// metadata.json carries no line/column information, so dependency
// diagnostics anchor to a zero-value range (line 0, column 0) rather than an
// invented position.
func rootRange() location.Range {
	return location.Range{}
}

// Metadata is the subset of a Puppet Forge metadata.json this resolver
// cares about: the module's own version and its declared dependencies.
type Metadata struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Dependencies []Dependency `json:"dependencies"`
}

type Dependency struct {
	Name               string `json:"name"`
	VersionRequirement string `json:"version_requirement"`
}

// LoadMetadata reads metadata.json from a module directory. metadata.json's
// schema is small and fixed (name/version/dependencies), so this decodes it
// with encoding/json directly rather than reaching for a schema-validation
// library — nothing in the retrieved pack validates JSON beyond struct
// tags, and a handful of known fields doesn't warrant one here either.
func LoadMetadata(moduleDir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(moduleDir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Join(moduleDir, "metadata.json"), err)
	}
	return &m, nil
}

// CheckDependencyConstraints validates each of meta's declared dependency
// version requirements against the version actually installed (as reported
// by the resolver's own metadata.json lookups), using
// github.com/Masterminds/semver/v3's constraint syntax (">=1.0.0 <3.0.0"),
// which is the de facto standard Puppet Forge itself uses for
// version_requirement strings. Diagnostics are non-fatal (diag.Hiera kind):
// an unresolvable or unsatisfied constraint is a data-quality warning, not
// a reason to stop analyzing the rest of the module path.
func CheckDependencyConstraints(meta *Metadata, installed map[string]string) diag.Diagnostics {
	var out diag.Diagnostics
	for _, dep := range meta.Dependencies {
		if dep.VersionRequirement == "" {
			continue
		}
		constraint, err := semver.NewConstraint(dep.VersionRequirement)
		if err != nil {
			out.Extend(diag.Hiera(rootRange(),
				fmt.Sprintf("module %s: dependency %s has an unparsable version requirement %q: %v",
					meta.Name, dep.Name, dep.VersionRequirement, err)))
			continue
		}
		installedVersion, ok := installed[dep.Name]
		if !ok {
			out.Extend(diag.Hiera(rootRange(),
				fmt.Sprintf("module %s depends on %s, which is not present on the module path", meta.Name, dep.Name)))
			continue
		}
		v, err := semver.NewVersion(installedVersion)
		if err != nil {
			out.Extend(diag.Hiera(rootRange(),
				fmt.Sprintf("module %s: installed %s has an unparsable version %q", meta.Name, dep.Name, installedVersion)))
			continue
		}
		if !constraint.Check(v) {
			out.Extend(diag.Hiera(rootRange(),
				fmt.Sprintf("module %s requires %s %s, but %s is installed", meta.Name, dep.Name, dep.VersionRequirement, installedVersion)))
		}
	}
	return out
}
