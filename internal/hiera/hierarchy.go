// Package hiera implements Hiera hierarchy parsing, %{key} path
// substitution, and the module::klass::param cross-reference check that
// `check hiera` runs against the lint engine's class/parameter registry
// (spec §6, §10's lookup_key dispatch supplement).
package hiera

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Hierarchy is the decoded shape of hiera.yaml.
type Hierarchy struct {
	Version  int             `yaml:"version"`
	Defaults Defaults        `yaml:"defaults"`
	Entries  []HierarchyItem `yaml:"hierarchy"`
}

type Defaults struct {
	DataHash string `yaml:"data_hash"`
	Datadir  string `yaml:"datadir"`
}

// HierarchyItem is one level of the hierarchy. LookupKey is recorded but
// not evaluated (spec §10: "it doesn't evaluate them, but it does use the
// datadir/paths substitution rule uniformly regardless of lookup_key") —
// yaml_data/json_data/eyaml all go through the same %{key} substitution.
type HierarchyItem struct {
	Name      string                 `yaml:"name"`
	Paths     []string               `yaml:"paths"`
	LookupKey string                 `yaml:"lookup_key"`
	Options   map[string]interface{} `yaml:"options"`
}

func Load(path string) (*Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var h Hierarchy
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// ResolvePaths substitutes every `%{key}` placeholder in each of item's
// paths against facts, joined with defaults.Datadir. A path is skipped
// entirely if any of its placeholders has no matching fact, per spec §6:
// "paths where any substitution is missing are skipped."
func ResolvePaths(item HierarchyItem, datadir string, facts map[string]string) []string {
	var out []string
	for _, p := range item.Paths {
		resolved, ok := substitute(p, facts)
		if !ok {
			continue
		}
		if datadir != "" {
			resolved = datadir + "/" + resolved
		}
		out = append(out, resolved)
	}
	return out
}

func substitute(path string, facts map[string]string) (string, bool) {
	missing := false
	result := placeholder.ReplaceAllStringFunc(path, func(match string) string {
		key := placeholder.FindStringSubmatch(match)[1]
		v, ok := facts[key]
		if !ok {
			missing = true
			return match
		}
		return v
	})
	if missing {
		return "", false
	}
	return result, true
}
