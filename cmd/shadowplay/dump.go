package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadowplay-lint/shadowplay/internal/location"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/ast"
	"github.com/shadowplay-lint/shadowplay/internal/puppet/parser"
)

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "dump <file>",
		Short:         "print a one-line-per-statement structural summary, for debugging the parser",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stmts, _, perr := parser.ParseStatements(location.NewSpan(args[0], string(data)))
			if perr != nil {
				fmt.Printf("parse error at line %d column %d: %s\n", perr.Range.Start.Line, perr.Range.Start.Column, perr.Message)
			}
			for _, s := range stmts {
				fmt.Println(dumpStatement(s))
			}
			return nil
		},
	}
}

func dumpStatement(s *ast.Statement) string {
	rng := s.Range()
	return fmt.Sprintf("%d:%d %s", rng.Start.Line, rng.Start.Column, dumpVariant(s.Value))
}

func dumpVariant(v ast.StatementVariant) string {
	switch sv := v.(type) {
	case ast.ExpressionStatement:
		return "expression"
	case ast.RelationListStatement:
		return "relation-list"
	case ast.IfElseStatement:
		return fmt.Sprintf("if-else (%d branches)", len(sv.Branches))
	case ast.UnlessStatement:
		return "unless"
	case ast.CaseStatement:
		return fmt.Sprintf("case (%d arms)", len(sv.Arms))
	case ast.ToplevelStatement:
		return fmt.Sprintf("%s %s", sv.Toplevel.Kind, sv.Toplevel.Identifier.String())
	case ast.ResourceDefaultsStatement:
		return fmt.Sprintf("resource-defaults %s", sv.Type.String())
	default:
		return "unknown"
	}
}
