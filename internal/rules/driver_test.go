package rules_test

import (
	"testing"

	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/parser"
	"github.com/lindstrom-oss/puplint/internal/rules"
)

func lintSource(t *testing.T, src string) []lint.Diagnostic {
	t.Helper()
	m, err := parser.ParseManifest(src)
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	d := rules.NewDriver(rules.All(), nil, nil)
	return d.Run(m)
}

func byRule(diags []lint.Diagnostic, rule string) []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func TestDriverArgumentRules(t *testing.T) {
	src := `class norisk::client (
  $password,
  Sensitive $token = 'leaked',
  String $p,
  $ensure = 'present',
  $name,
) {
}`
	diags := lintSource(t, src)

	if got := byRule(diags, "ArgumentLooksSensitive"); len(got) != 1 {
		t.Errorf("ArgumentLooksSensitive = %d diagnostics, want 1 (for $password)", len(got))
	}
	if got := byRule(diags, "SensitiveArgumentWithDefault"); len(got) != 1 {
		t.Errorf("SensitiveArgumentWithDefault = %d diagnostics, want 1 (for $token)", len(got))
	}
	if got := byRule(diags, "ArgumentTyped"); len(got) != 3 {
		t.Errorf("ArgumentTyped = %d diagnostics, want 3 ($password, $ensure, $name untyped)", len(got))
	}
	if got := byRule(diags, "ReadableArgumentsName"); len(got) != 1 {
		t.Errorf("ReadableArgumentsName = %d diagnostics, want 1 (for $p)", len(got))
	}
	if got := byRule(diags, "OptionalArgumentsGoesFirst"); len(got) != 2 {
		t.Errorf("OptionalArgumentsGoesFirst = %d diagnostics, want 2 (for $p and $name, each declared after an optional argument)", len(got))
	}
}

func TestDriverUniqueArgumentsNames(t *testing.T) {
	src := `define norisk::install ($ensure = 'present', $ensure = 'absent') {
}`
	diags := lintSource(t, src)
	got := byRule(diags, "UniqueArgumentsNames")
	if len(got) != 1 {
		t.Fatalf("UniqueArgumentsNames = %d diagnostics, want 1", len(got))
	}
}

func TestDriverMagicNumberInsideResourceAttribute(t *testing.T) {
	src := `class norisk::demo (
  Integer $count = 3,
) {
  file { '/etc/norisk.conf':
    ensure => present,
    mode   => 42,
  }
}`
	diags := lintSource(t, src)
	got := byRule(diags, "MagicNumber")
	if len(got) != 1 {
		t.Fatalf("MagicNumber = %d diagnostics, want 1 (for mode => 42), got %+v", len(got), got)
	}
}

func TestDriverMagicNumberExemptsAssignAndArgumentDefault(t *testing.T) {
	src := `class norisk::demo (
  Integer $timeout = 9999,
) {
  $retries = 42
  file { '/etc/norisk.conf': ensure => present }
}`
	diags := lintSource(t, src)
	got := byRule(diags, "MagicNumber")
	if len(got) != 0 {
		t.Errorf("MagicNumber = %d diagnostics, want 0 (assign-right and argument-default are exempt), got %+v", len(got), got)
	}
}

func TestDriverUnlessAndLowerCaseVariableAndUnusedVariables(t *testing.T) {
	src := `class norisk::demo (
  Integer $count,
) {
  $Unused = 'never read'
  unless $count == 0 {
    notify { 'not zero': }
  }
}`
	diags := lintSource(t, src)

	if got := byRule(diags, "DoNotUseUnless"); len(got) != 1 {
		t.Errorf("DoNotUseUnless = %d diagnostics, want 1", len(got))
	}
	if got := byRule(diags, "LowerCaseVariable"); len(got) != 1 {
		t.Errorf("LowerCaseVariable = %d diagnostics, want 1 (for $Unused)", len(got))
	}
	unused := byRule(diags, "UnusedVariables")
	if len(unused) != 1 {
		t.Fatalf("UnusedVariables = %d diagnostics, want 1, got %+v", len(unused), unused)
	}
	if unused[0].Message == "" {
		t.Errorf("expected a non-empty message naming the unused variable")
	}
}

func TestDriverReferenceToUndefinedValue(t *testing.T) {
	src := `class norisk::demo {
  notify { "using ${missing}": }
}`
	diags := lintSource(t, src)
	got := byRule(diags, "ReferenceToUndefinedValue")
	if len(got) != 1 {
		t.Fatalf("ReferenceToUndefinedValue = %d diagnostics, want 1 (for $missing), got %+v", len(got), diags)
	}
}

func TestDriverCaseStatementRules(t *testing.T) {
	src := `class norisk::demo (
  String $env,
) {
  case $env {
    'prod': { notify { 'prod': } }
    default: { notify { 'other': } }
    default: { notify { 'dup': } }
  }

  case $env {
    default: { notify { 'first': } }
    'dev': { notify { 'dev': } }
  }

  case $env {
    'a', 'b': {
    }
  }

  case $env {
    'only': { notify { 'x': } }
  }
}`
	diags := lintSource(t, src)
	if got := byRule(diags, "MultipleDefaultCase"); len(got) != 1 {
		t.Errorf("MultipleDefaultCase = %d diagnostics, want 1", len(got))
	}
	if got := byRule(diags, "DefaultCaseIsNotLast"); len(got) != 1 {
		t.Errorf("DefaultCaseIsNotLast = %d diagnostics, want 1", len(got))
	}
	if got := byRule(diags, "EmptyCasesList"); len(got) != 0 {
		t.Errorf("EmptyCasesList = %d diagnostics, want 0 (every arm has a non-empty match list)", len(got))
	}
	if got := byRule(diags, "NoDefaultCase"); len(got) != 2 {
		t.Errorf("NoDefaultCase = %d diagnostics, want 2 (the empty-body case and the no-default case)", len(got))
	}
}

func TestDriverStatementWithNoEffectAndRelationToTheLeft(t *testing.T) {
	src := `class norisk::demo {
  $x = 1
  $x == 1
  package { 'norisk': ensure => present } <- file { '/etc/norisk.conf': ensure => present }
}`
	diags := lintSource(t, src)
	if got := byRule(diags, "StatementWithNoEffect"); len(got) != 1 {
		t.Errorf("StatementWithNoEffect = %d diagnostics, want 1 (the bare comparison)", len(got))
	}
	if got := byRule(diags, "RelationToTheLeft"); len(got) != 1 {
		t.Errorf("RelationToTheLeft = %d diagnostics, want 1 (the '<-' relation)", len(got))
	}
}
