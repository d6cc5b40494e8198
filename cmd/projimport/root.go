package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"projimport/internal/entity"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "projimport",
		Short:        "Re-key an exported project into a destination system",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (YAML)")

	root.AddCommand(newOrderCmd(), newMappingCmd(), newRunCmd())

	return root
}

func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the entity import order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			for i, kind := range entity.ImportOrder() {
				deps := make([]string, 0, len(entity.Dependencies[kind]))
				for _, d := range entity.Dependencies[kind] {
					deps = append(deps, d.String())
				}

				if len(deps) == 0 {
					fmt.Fprintf(out, "%2d. %s\n", i+1, kind)
					continue
				}

				fmt.Fprintf(out, "%2d. %s (after %s)\n", i+1, kind, strings.Join(deps, ", "))
			}

			return nil
		},
	}
}
