package lint_test

import (
	"testing"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/parser"
)

func TestWalkVisitsEveryStatement(t *testing.T) {
	src := `
class norisk::client (
  String $name,
  Integer $port = 8080,
) {
  file { '/etc/norisk.conf':
    ensure  => present,
    content => $name,
  }

  if $port > 1024 {
    notify { 'high port': }
  }
}
`
	m, err := parser.ParseManifest(src)
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	var statements, resourceSets, ifs int
	lint.Walk(m, func(node ast.Node) bool {
		switch node.(type) {
		case *ast.ResourceSetStatement:
			resourceSets++
		case *ast.IfElseStatement:
			ifs++
		}
		if _, ok := node.(ast.Statement); ok {
			statements++
		}
		return true
	})

	if statements != 3 {
		t.Errorf("statements visited = %d, want 3 (file, if, notify)", statements)
	}
	if resourceSets != 2 {
		t.Errorf("resourceSets visited = %d, want 2", resourceSets)
	}
	if ifs != 1 {
		t.Errorf("ifs visited = %d, want 1", ifs)
	}
}

func TestWalkStopsDescendingWhenVisitorReturnsFalse(t *testing.T) {
	src := `class norisk::client {
  if true {
    notify { 'inside': }
  }
}`
	m, err := parser.ParseManifest(src)
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	var sawNotify bool
	lint.Walk(m, func(node ast.Node) bool {
		if _, ok := node.(*ast.IfElseStatement); ok {
			return false
		}
		if _, ok := node.(*ast.ResourceSetStatement); ok {
			sawNotify = true
		}
		return true
	})

	if sawNotify {
		t.Errorf("expected Walk to skip the if-statement's body when visitor returns false")
	}
}
