package rules

import (
	"fmt"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

// constantStringValue returns se's literal text, if it contains no `${…}`
// or bare-`$var` interpolation.
//
// Grounded on
// original_source/src/puppet_tool/string.rs's constant_value.
func constantStringValue(se *ast.StringExpr) (string, bool) {
	var sb strings.Builder
	switch se.Kind {
	case ast.StringSingleQuoted:
		for _, f := range se.Single {
			writeFragment(&sb, f)
		}
	case ast.StringDoubleQuoted:
		for _, f := range se.Double {
			if f.Expression != nil {
				return "", false
			}
			if f.Literal != nil {
				writeFragment(&sb, *f.Literal)
			}
		}
	}
	return sb.String(), true
}

func writeFragment(sb *strings.Builder, f ast.StringFragment) {
	switch f.Kind {
	case ast.FragmentLiteral:
		sb.WriteString(f.Literal)
	default:
		sb.WriteRune(f.Char)
	}
}

// ErbReferencesToUnknownVariable warns when a `template(...)` call names
// an ERB file referencing a `@variable` this scope never defines.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_builtin.rs's
// ErbReferencesToUnknownVariable.
type ErbReferencesToUnknownVariable struct{}

func (*ErbReferencesToUnknownVariable) Name() string { return "ErbReferencesToUnknownVariable" }
func (*ErbReferencesToUnknownVariable) Description() string {
	return "Checks ERB templates specified in template() for undefined variables"
}

func (r *ErbReferencesToUnknownVariable) CheckExpression(ctx *Context, isToplevel bool, e ast.Expr) []lint.Diagnostic {
	call, ok := e.(*ast.BuiltinCall)
	if !ok || call.Kind != ast.BuiltinTemplate || call.Many == nil || ctx.Templates == nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, arg := range call.Many.Args {
		term, ok := arg.(*ast.Term)
		if !ok || term.Kind != ast.TermString || term.StringValue == nil {
			continue
		}
		path, ok := constantStringValue(term.StringValue)
		if !ok {
			continue
		}

		result, found, err := ctx.Templates.Resolve(path)
		if err != nil || !found {
			diags = append(diags, lint.Diagnostic{
				Rule:    r.Name(),
				Message: fmt.Sprintf("ERB template %q does not exists for failed to parse", path),
				Range:   e.SrcRange(),
			})
			continue
		}

		for _, v := range result.Variables {
			if ctx.Variables != nil && ctx.Variables.IsKnown(v) {
				ctx.Variables.Use(v)
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Rule:    r.Name(),
				Message: fmt.Sprintf("ERB template references to undefined in this context variable %q", v),
				Range:   e.SrcRange(),
			})
		}
	}
	return diags
}
