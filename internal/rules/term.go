package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

// PathFrameAssignRight and PathFrameArgumentDefault name the two PathStack
// frames MagicNumber exempts: a literal being assigned to a named
// variable, or used as an argument's default value, already carries its
// own name as documentation.
const (
	PathFrameAssignRight     = "assign-right"
	PathFrameArgumentDefault = "argument-default"
)

func hasUpper(parts []string) bool {
	for _, p := range parts {
		for _, c := range p {
			if c >= 'A' && c <= 'Z' {
				return true
			}
		}
	}
	return false
}

// LowerCaseVariable warns when a variable reference's name contains
// upper-case letters, per Puppet's style guide.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_term.rs's LowerCaseVariable.
type LowerCaseVariable struct{}

func (*LowerCaseVariable) Name() string        { return "LowerCaseVariable" }
func (*LowerCaseVariable) Description() string { return "Warns if variable name is not lowercase" }

func (r *LowerCaseVariable) CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	if t.Kind != ast.TermVariable || t.Variable == nil || t.Variable.Identifier == nil {
		return nil
	}
	if !hasUpper(t.Variable.Identifier.Name) {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: "Variable name with upper case letters.",
		Range:   t.SrcRange(),
		URL:     "https://puppet.com/docs/puppet/7/style_guide.html#style_guide_variables-variable-format",
	}}
}

// ReferenceToUndefinedValue warns when a single-segment variable is read
// before it was ever defined (as an assignment or a parameter) in the
// current scope.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_term.rs's ReferenceToUndefinedValue.
type ReferenceToUndefinedValue struct{}

func (*ReferenceToUndefinedValue) Name() string { return "ReferenceToUndefinedValue" }
func (*ReferenceToUndefinedValue) Description() string {
	return "Warns if variable is not defined in current context"
}

func (r *ReferenceToUndefinedValue) CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	if t.Kind != ast.TermVariable || t.Variable == nil || t.Variable.Identifier == nil {
		return nil
	}
	if isAssignment || len(t.Variable.Identifier.Name) != 1 {
		return nil
	}
	name := t.Variable.Identifier.Name[0]
	if ctx.Variables == nil || !ctx.Variables.IsKnown(name) {
		return []lint.Diagnostic{{
			Rule:    r.Name(),
			Message: fmt.Sprintf("Reference to undefined value %q", name),
			Range:   t.SrcRange(),
		}}
	}
	ctx.Variables.Use(name)
	return nil
}

// MagicNumber warns on a bare integer or float literal outside the range
// [-10, 10] (or, for floats, whose rendered form is longer than two
// characters) that is not already named by an assignment or argument
// default.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_term.rs's MagicNumber.
type MagicNumber struct{}

func (*MagicNumber) Name() string { return "MagicNumber" }
func (*MagicNumber) Description() string {
	return "Assign it as named constant"
}

func (r *MagicNumber) CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	if ctx.Path == nil {
		return nil
	}
	if ctx.Path.Contains(PathFrameAssignRight) || ctx.Path.Contains(PathFrameArgumentDefault) {
		return nil
	}

	switch t.Kind {
	case ast.TermInteger:
		if t.IntegerValue > 10 || t.IntegerValue < -10 {
			return r.diag(t, t.IntegerValue)
		}
	case ast.TermFloat:
		rendered := strconv.FormatFloat(t.FloatValue, 'g', -1, 64)
		if t.FloatValue > 10.0 || t.FloatValue < -10.0 || len(strings.TrimPrefix(rendered, "-")) > 2 {
			return r.diag(t, t.FloatValue)
		}
	}
	return nil
}

func (r *MagicNumber) diag(t *ast.Term, value any) []lint.Diagnostic {
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: fmt.Sprintf("Magic number %v. Assign it as named constant.", value),
		Range:   t.SrcRange(),
	}}
}

// UselessParens warns when parentheses wrap a bare term, a chain call, or
// a negation — forms that never need grouping. Parens around an operator
// expression (arithmetic, comparison, selector, …) are left alone, since
// those can genuinely clarify precedence.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_term.rs's
// UselessParens: its match is exhaustive over the Rust expression enum,
// with every operator arm a no-op "TODO"; only Not, ChainCall and bare
// Term trigger here, the same split.
type UselessParens struct{}

func (*UselessParens) Name() string { return "UselessParens" }
func (*UselessParens) Description() string {
	return "Useless parens around term, chain call or negation"
}

func (r *UselessParens) CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	if t.Kind != ast.TermParens || t.ParensValue == nil {
		return nil
	}
	switch t.ParensValue.(type) {
	case *ast.NotExpr, *ast.ChainCallExpr, *ast.Term:
		return []lint.Diagnostic{{
			Rule:    r.Name(),
			Message: r.Description(),
			Range:   t.SrcRange(),
		}}
	}
	return nil
}

// UselessDoubleQuotes warns on a double-quoted string with no
// interpolation, no escape sequence, and no embedded single quote — none
// of which justify double quotes over single.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_term.rs's
// UselessDoubleQuotes, adapted from its raw-text `data.contains(...)`
// scan to this AST's fragment list (StringExpr.Double), since the parser
// keeps decoded fragments rather than the original unescaped text.
type UselessDoubleQuotes struct{}

func (*UselessDoubleQuotes) Name() string { return "UselessDoubleQuotes" }
func (*UselessDoubleQuotes) Description() string {
	return "Double quotes of string with no interpolated values and no escaped chars [EXPERIMENTAL]"
}

func (r *UselessDoubleQuotes) CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	if t.Kind != ast.TermString || t.StringValue == nil || t.StringValue.Kind != ast.StringDoubleQuoted {
		return nil
	}
	for _, frag := range t.StringValue.Double {
		if frag.Expression != nil {
			return nil
		}
		if frag.Literal == nil {
			continue
		}
		if frag.Literal.Kind != ast.FragmentLiteral {
			return nil
		}
		if strings.ContainsRune(frag.Literal.Literal, '\'') {
			return nil
		}
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: r.Description(),
		Range:   t.SrcRange(),
	}}
}
