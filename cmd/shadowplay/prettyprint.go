package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/parser"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/printer"
)

func newPrettyPrintCommand() *cobra.Command {
	var width int
	var passArgs string

	cmd := &cobra.Command{
		Use:           "pretty-print-pp [file]",
		Short:         "re-render a Puppet manifest in canonical form (spec §9)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// passArgs carries flag overrides (currently just --width) as a
			// single string, the way a shell alias or editor integration
			// would forward `$EDITOR`-style extra arguments; split it the
			// same way a shell would rather than hand-rolling a parser.
			if passArgs != "" {
				extra, err := shlex.Split(passArgs)
				if err != nil {
					return fmt.Errorf("parsing --pass-args: %w", err)
				}
				fs := pflag.NewFlagSet("pass-args", pflag.ContinueOnError)
				fs.IntVar(&width, "width", width, "")
				if err := fs.Parse(extra); err != nil {
					return fmt.Errorf("parsing --pass-args: %w", err)
				}
			}

			var (
				data []byte
				name string
				err  error
			)
			if len(args) == 1 {
				name = args[0]
				data, err = os.ReadFile(name)
			} else {
				name = "<stdin>"
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}

			stmts, _, perr := parser.ParseStatements(location.NewSpan(name, string(data)))
			if perr != nil {
				return fmt.Errorf("%s:%d:%d: %s", name, perr.Range.Start.Line, perr.Range.Start.Column, perr.Message)
			}

			p := printer.New(width)
			fmt.Println(p.PrintStatements(stmts))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "target line width")
	cmd.Flags().StringVar(&passArgs, "pass-args", "", "additional flags as a single shell-quoted string, e.g. \"--width 100\"")
	return cmd
}
