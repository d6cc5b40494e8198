package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"projimport/internal/diagnostic"
	"projimport/internal/mapping"
)

func newMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect mapping files",
	}

	cmd.AddCommand(newMappingCheckCmd())

	return cmd
}

func newMappingCheckCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Load and validate a mapping file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(out, f)
			}

			res := mapping.Validate(f)
			printDiagnostics(out, res)

			if res.HasErrors() {
				return fmt.Errorf("mapping %s is invalid: %d error(s)", args[0], len(res.Errors))
			}

			fmt.Fprintf(out, "mapping %s is valid (%d warning(s))\n", args[0], len(res.Warnings))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the parsed mapping file")

	return cmd
}

func printDiagnostics(out io.Writer, d *diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		fmt.Fprintf(out, "%-5s %s\n", diag.Severity, diag)
	}
}
