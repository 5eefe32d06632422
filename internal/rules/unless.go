package rules

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

// DoNotUseUnless warns on every `unless` statement, preferring the
// clearer `if !EXPR`.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_unless.rs's DoNotUseUnless.
type DoNotUseUnless struct{}

func (*DoNotUseUnless) Name() string { return "DoNotUseUnless" }
func (*DoNotUseUnless) Description() string {
	return "Warns if 'unless' conditional statement is used"
}

func (r *DoNotUseUnless) CheckUnless(u *ast.UnlessStatement) []lint.Diagnostic {
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: "Use 'if !EXPR { ... }' instead of 'unless EXPR { ... }'",
		Range:   u.SrcRange(),
	}}
}
