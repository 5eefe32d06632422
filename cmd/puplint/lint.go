package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lindstrom-oss/puplint/internal/config"
	"github.com/lindstrom-oss/puplint/internal/parser"
	"github.com/lindstrom-oss/puplint/internal/report"
	"github.com/lindstrom-oss/puplint/internal/rules"
	"github.com/lindstrom-oss/puplint/internal/semantic"
)

func newLintCmd(logger *zap.Logger) *cobra.Command {
	var (
		configPath string
		format     string
		repoPath   string
	)

	cmd := &cobra.Command{
		Use:   "lint <file.pp>...",
		Short: "Parse and lint one or more manifest files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}

			enabled := enabledRules(cfg)

			var resolver *semantic.Resolver
			var templates *semantic.TemplateResolver
			if repoPath != "" {
				fsys := os.DirFS(repoPath)
				resolver = semantic.NewResolver(fsys)
				templates = semantic.NewTemplateResolver(fsys)
			}
			driver := rules.NewDriver(enabled, resolver, templates)

			var findingCount int
			for _, path := range args {
				findings, err := lintFile(driver, path)
				if err != nil {
					logger.Warn("failed to lint file", zap.String("path", path), zap.Error(err))
					continue
				}
				findingCount += len(findings)
				if err := writeFindings(cmd, format, findings); err != nil {
					return err
				}
			}

			if findingCount > 0 {
				return fmt.Errorf("%d finding(s)", findingCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a puplint.yaml configuration file")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&repoPath, "repo", "", "module repo root, for cross-file resolution and ERB scanning")
	return cmd
}

func lintFile(driver *rules.Driver, path string) ([]report.Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	manifest, err := parser.ParseManifest(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	diags := driver.Run(manifest)
	return report.FromDiagnostics(filepath.Clean(path), diags), nil
}

func writeFindings(cmd *cobra.Command, format string, findings []report.Finding) error {
	switch format {
	case "json":
		return report.WriteJSON(cmd.OutOrStdout(), findings)
	default:
		return report.WriteText(cmd.OutOrStdout(), findings)
	}
}

func enabledRules(cfg config.Config) []rules.Rule {
	var enabled []rules.Rule
	for _, r := range rules.All() {
		if cfg.RuleEnabled(r.Name()) {
			enabled = append(enabled, r)
		}
	}
	return enabled
}
