package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lindstrom-oss/puplint/internal/rules"
)

func newRulesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the registered lint rules",
	}
	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every registered rule and its description",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range rules.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", r.Name(), r.Description())
			}
			return nil
		},
	})
	return root
}
