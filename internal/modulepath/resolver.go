// Package modulepath resolves a namespaced Puppet name (`foo::bar`) to the
// manifest file that declares it, per spec §6's "On-disk layout": a module
// `foo::bar` lives at `modules/foo/manifests/bar.pp`, and the bare module
// itself (`foo`) lives at `modules/foo/manifests/init.pp`.
package modulepath

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver resolves names against one or more module-path roots, mirroring
// Puppet's own search order: the first root that contains a matching file
// wins.
type Resolver struct {
	Roots []string
}

func NewResolver(roots ...string) *Resolver {
	return &Resolver{Roots: roots}
}

// Resolve returns the manifest path for a fully-qualified name, and whether
// it was found under any configured root.
func (r *Resolver) Resolve(name string) (string, bool) {
	parts := strings.Split(name, "::")
	if len(parts) == 0 || parts[0] == "" {
		return "", false
	}
	module := parts[0]
	rest := parts[1:]

	for _, root := range r.Roots {
		manifestsDir := filepath.Join(root, "modules", module, "manifests")
		var candidate string
		if len(rest) == 0 {
			candidate = filepath.Join(manifestsDir, "init.pp")
		} else {
			candidate = filepath.Join(manifestsDir, filepath.Join(rest...)+".pp")
		}
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// ModuleDir returns the on-disk directory of the named module (the first
// root under which `modules/<name>` exists), used to locate its
// metadata.json.
func (r *Resolver) ModuleDir(moduleName string) (string, bool) {
	for _, root := range r.Roots {
		dir := filepath.Join(root, "modules", moduleName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WalkManifests returns every *.pp file anywhere under root's modules
// directory (not only modules/*/manifests), sorted, for the CLI's "lint everything on this module path"
// entry point. A root that isn't itself laid out as modules/<name>/manifests
// (e.g. a bare manifest directory passed directly) is walked as-is instead.
func WalkManifests(root string) ([]string, error) {
	modulesDir := filepath.Join(root, "modules")
	walkRoot := root
	if info, err := os.Stat(modulesDir); err == nil && info.IsDir() {
		walkRoot = modulesDir
	}

	var out []string
	err := filepath.WalkDir(walkRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".pp") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
