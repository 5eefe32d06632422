package rules

import (
	"fmt"

	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/semantic"
)

// UnusedVariables warns about every variable or argument the current scope
// defined but never read.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_ctx.rs's UnusedVariables.
type UnusedVariables struct{}

func (*UnusedVariables) Name() string        { return "UnusedVariables" }
func (*UnusedVariables) Description() string { return "Checks for unused variables" }

func (r *UnusedVariables) CheckCtx(ctx *Context) []lint.Diagnostic {
	if ctx.Variables == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, e := range ctx.Variables.Unused() {
		var msg string
		switch e.Origin {
		case semantic.VariableArgument:
			msg = fmt.Sprintf("Argument '%s' is never used [EXPERIMENTAL]", e.Name)
		default:
			msg = fmt.Sprintf("Variable '%s' is never used [EXPERIMENTAL]", e.Name)
		}
		diags = append(diags, lint.Diagnostic{Rule: r.Name(), Message: msg, Range: e.Range})
	}
	return diags
}
