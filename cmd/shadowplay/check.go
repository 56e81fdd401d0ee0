package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shadowplay-lint/shadowplay/internal/config"
	"github.com/shadowplay-lint/shadowplay/internal/diag"
	"github.com/shadowplay-lint/shadowplay/internal/hiera"
	"github.com/shadowplay-lint/shadowplay/internal/lint"
	"github.com/shadowplay-lint/shadowplay/internal/lint/passes"
	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/yamltree"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "run a static check",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newCheckPPCommand(), newCheckYamlCommand(), newCheckHieraCommand())
	return cmd
}

func newCheckPPCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "pp [files...]",
		Short:         "lint Puppet manifests (spec §4.7's full pass set)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolveManifestPaths(args)
			if err != nil {
				return err
			}
			files, diags := parseManifests(paths)

			ctx := buildCtx(files)
			walker := lint.NewWalker(ctx, passes.All())
			for _, f := range files {
				walker.WalkFile(f.stmts)
			}
			diags.Extend(walker.Diagnostics...)

			return reportAndExit(diags)
		},
	}
}

func newCheckYamlCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "yaml [files...]",
		Short:         "validate YAML syntax via the located loader (spec §1.3)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var diags diag.Diagnostics
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					diags.Extend(diag.FileError(path, err))
					continue
				}
				loader, err := yamltree.Load(path, string(data))
				if err != nil {
					diags.Extend(diag.Yaml(location.Range{Filename: path}, err.Error()))
					continue
				}
				for _, e := range loader.Errors {
					diags.Extend(yamltree.ToDiagnostic(path, e))
				}
			}
			return reportAndExit(diags)
		},
	}
}

func newCheckHieraCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "hiera <hiera.yaml> [data-files...]",
		Short:         "cross-reference Hiera data keys against the module path's class registry (spec §6)",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			modules, err := config.CompileWhitelist(cfg.Checks.HieraYaml.ForcedModulesExists)
			if err != nil {
				return err
			}
			values, err := config.CompileWhitelist(cfg.Checks.HieraYaml.ForcedValuesExists)
			if err != nil {
				return err
			}

			h, err := hiera.Load(args[0])
			if err != nil {
				return err
			}

			manifestPaths, err := resolveManifestPaths(nil)
			if err != nil {
				return err
			}
			files, diags := parseManifests(manifestPaths)
			ctx := buildCtx(files)

			dataFiles := args[1:]
			if len(dataFiles) == 0 {
				dataFiles = defaultDataFiles(h)
			}

			for _, path := range dataFiles {
				data, err := os.ReadFile(path)
				if err != nil {
					diags.Extend(diag.FileError(path, err))
					continue
				}
				loader, err := yamltree.Load(path, string(data))
				if err != nil {
					diags.Extend(diag.Yaml(location.Range{Filename: path}, err.Error()))
					continue
				}
				for _, doc := range loader.Docs {
					diags.Extend(hiera.CheckDataFile(ctx, path, doc, modules, values)...)
				}
			}

			return reportAndExit(diags)
		},
	}
}

// defaultDataFiles resolves every data file actually present under each
// hierarchy level's %{...}-substituted paths, skipping levels whose facts
// can't be resolved from an empty fact set (spec §6's "paths where any
// substitution is missing are skipped" applied with no fact overrides).
func defaultDataFiles(h *hiera.Hierarchy) []string {
	var out []string
	for _, item := range h.Entries {
		for _, p := range hiera.ResolvePaths(item, h.Defaults.Datadir, map[string]string{}) {
			if !strings.HasSuffix(p, ".yaml") && !strings.HasSuffix(p, ".yml") {
				continue
			}
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				out = append(out, p)
			}
		}
	}
	return out
}
