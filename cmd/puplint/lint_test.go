package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lindstrom-oss/puplint/internal/config"
	"github.com/lindstrom-oss/puplint/internal/rules"
)

func TestEnabledRulesDefaultsToEveryRule(t *testing.T) {
	enabled := enabledRules(config.Default())
	if len(enabled) != len(rules.All()) {
		t.Fatalf("enabledRules = %d rules, want %d (every registered rule)", len(enabled), len(rules.All()))
	}
}

func TestEnabledRulesHonorsOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Checks.PP = []config.RuleConfig{{Name: "MagicNumber", Enabled: false}}
	enabled := enabledRules(cfg)
	for _, r := range enabled {
		if r.Name() == "MagicNumber" {
			t.Fatalf("expected MagicNumber to be disabled")
		}
	}
	if len(enabled) != len(rules.All())-1 {
		t.Fatalf("enabledRules = %d rules, want %d (all but MagicNumber)", len(enabled), len(rules.All())-1)
	}
}

func TestLintFileParsesAndRunsDriver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.pp")
	src := `class norisk::demo {
  file { '/etc/norisk.conf':
    ensure => present,
    mode   => 42,
  }
}`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	driver := rules.NewDriver(rules.All(), nil, nil)
	findings, err := lintFile(driver, path)
	if err != nil {
		t.Fatalf("lintFile failed: %v", err)
	}

	var sawMagicNumber bool
	for _, f := range findings {
		if f.Rule == "MagicNumber" {
			sawMagicNumber = true
		}
		if f.Path != filepath.Clean(path) {
			t.Errorf("finding Path = %q, want %q", f.Path, filepath.Clean(path))
		}
	}
	if !sawMagicNumber {
		t.Errorf("expected a MagicNumber finding for mode => 42, got %+v", findings)
	}
}

func TestLintFileReportsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pp")
	if err := os.WriteFile(path, []byte("not a valid toplevel at all &&&"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	driver := rules.NewDriver(rules.All(), nil, nil)
	if _, err := lintFile(driver, path); err == nil {
		t.Fatalf("expected a parse error for malformed source")
	}
}

func TestLintFileReportsMissingFile(t *testing.T) {
	driver := rules.NewDriver(rules.All(), nil, nil)
	if _, err := lintFile(driver, filepath.Join(t.TempDir(), "missing.pp")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
