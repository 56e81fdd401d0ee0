// Command shadowplay is the CLI entry point: a static analyzer, linter, and
// pretty-printer for Puppet manifests, plus a Hiera data cross-reference
// checker. Its subcommand layout and error-reporting convention
// (SilenceUsage/SilenceErrors, a RunE per leaf command, a single non-zero
// exit path in main) follow yaml2pulumi's cobra wiring.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadowplay-lint/shadowplay/internal/config"
)

var (
	formatFlag     string
	configFlag     string
	modulePathFlag []string
)

func loadConfig() (*config.Config, error) {
	return config.Load(configFlag)
}

func main() {
	root := &cobra.Command{
		Use:           "shadowplay",
		Short:         "static analysis and pretty-printing for Puppet manifests and Hiera data",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&formatFlag, "format", "one-line", "diagnostic output format: one-line or json")
	root.PersistentFlags().StringVar(&configFlag, "config", "shadowplay.yaml", "path to the whitelist config file")
	root.PersistentFlags().StringSliceVar(&modulePathFlag, "module-path", []string{"."}, "module path root (repeatable)")

	root.AddCommand(
		newCheckCommand(),
		newPrettyPrintCommand(),
		newDumpCommand(),
		newSelftestCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
