package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindstrom-oss/puplint/internal/config"
)

func TestDefaultEnablesEveryRule(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.RuleEnabled("MagicNumber"), "expected an unconfigured rule to default to enabled")
	_, ok := cfg.RulePattern("MagicNumber")
	assert.False(t, ok, "expected no pattern for an unconfigured rule")
}

func TestRuleEnabledHonorsExplicitOverride(t *testing.T) {
	cfg := config.Config{Checks: config.Checks{PP: []config.RuleConfig{
		{Name: "DoNotUseUnless", Enabled: false},
		{Name: "MagicNumber", Enabled: true, Pattern: "^_"},
	}}}
	assert.False(t, cfg.RuleEnabled("DoNotUseUnless"))
	assert.True(t, cfg.RuleEnabled("MagicNumber"))
	assert.True(t, cfg.RuleEnabled("SomeOtherRule"), "expected a rule with no entry to default to enabled")
	pattern, ok := cfg.RulePattern("MagicNumber")
	assert.True(t, ok)
	assert.Equal(t, "^_", pattern)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "puplint.yaml")
	contents := `
checks:
  hiera_yaml:
    forced_modules_exists:
      - norisk
    forced_values_exists:
      - norisk::client::version
  pp:
    - name: DoNotUseUnless
      enabled: false
    - name: MagicNumber
      enabled: true
      pattern: "^_"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Checks.HieraYaml.ForcedModulesExist, 1)
	assert.Equal(t, "norisk", cfg.Checks.HieraYaml.ForcedModulesExist[0])
	require.Len(t, cfg.Checks.HieraYaml.ForcedValuesExist, 1)
	assert.Equal(t, "norisk::client::version", cfg.Checks.HieraYaml.ForcedValuesExist[0])
	assert.False(t, cfg.RuleEnabled("DoNotUseUnless"), "expected DoNotUseUnless disabled after Load")
	pattern, ok := cfg.RulePattern("MagicNumber")
	assert.True(t, ok)
	assert.Equal(t, "^_", pattern)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "expected an error for a missing config file")
}
