// Package config loads shadowplay's process-wide YAML configuration: the
// Hiera whitelist entries that exempt specific modules or values from the
// "must exist" checks `check hiera` otherwise enforces (spec §6).
package config

import (
	"os"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config is the decoded process configuration. Absent config (no file, or
// an empty one) yields a Config with empty whitelists, not an error — spec
// §6: "Absent config → empty whitelists."
type Config struct {
	Checks ChecksConfig `yaml:"checks"`
}

type ChecksConfig struct {
	HieraYaml HieraYamlChecks `yaml:"hiera_yaml"`
}

type HieraYamlChecks struct {
	ForcedModulesExists []string `yaml:"forced_modules_exists"`
	ForcedValuesExists  []string `yaml:"forced_values_exists"`
}

// Load reads and decodes the config file at path. A missing file is not an
// error: it returns the zero Config (empty whitelists).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Whitelist compiles a list of possibly-glob patterns (gobwas/glob — the
// same matcher holomush-holomush uses for its capability/access-policy
// pattern checks) into a single matcher, so a config entry like
// "profiles::*" matches every class under the profiles module without the
// whitelist author enumerating each one.
type Whitelist struct {
	globs []glob.Glob
}

func CompileWhitelist(patterns []string) (*Whitelist, error) {
	w := &Whitelist{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p, ':', ':') // "::"-namespaced names use "::" as the segment separator
		if err != nil {
			return nil, err
		}
		w.globs = append(w.globs, g)
	}
	return w, nil
}

// Matches reports whether name satisfies any pattern in the whitelist.
func (w *Whitelist) Matches(name string) bool {
	if w == nil {
		return false
	}
	for _, g := range w.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
