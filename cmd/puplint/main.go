// puplint statically analyzes Puppet-family manifest files: parsing them
// into an AST and running a configurable set of lint rules over the
// result.
//
// Usage:
//
//	puplint lint <file.pp>...       Lint one or more manifest files
//	puplint rules list              List every registered rule
//	puplint version                 Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "puplint: building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "puplint",
		Short:         "Static analysis for Puppet-family manifests",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newLintCmd(logger))
	root.AddCommand(newRulesCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the puplint version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "puplint v%s\n", version)
			return nil
		},
	})
	return root
}
