package rules

import (
	"fmt"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

func hasDefaultCase(elt ast.CaseElement) bool {
	for _, m := range elt.Matches {
		if m.Kind == ast.CaseVariantDefault {
			return true
		}
	}
	return false
}

// EmptyCasesList warns when a `case` arm's match list is empty.
//
// Grounded on
// original_source/puppet_pp_lint/src/lint_case_statement.rs's EmptyCasesList.
type EmptyCasesList struct{}

func (*EmptyCasesList) Name() string        { return "EmptyCasesList" }
func (*EmptyCasesList) Description() string { return "Warns if case arm's match list is empty" }

func (r *EmptyCasesList) CheckCaseStatement(cs *ast.CaseStatement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, elt := range cs.Elements {
		if len(elt.Matches) == 0 {
			diags = append(diags, lint.Diagnostic{Rule: r.Name(), Message: "Cases list is empty", Range: elt.Range})
		}
	}
	return diags
}

// DefaultCaseIsNotLast warns when a `case` arm follows the `default` arm.
//
// Grounded on
// original_source/puppet_pp_lint/src/lint_case_statement.rs's DefaultCaseIsNotLast.
type DefaultCaseIsNotLast struct{}

func (*DefaultCaseIsNotLast) Name() string        { return "DefaultCaseIsNotLast" }
func (*DefaultCaseIsNotLast) Description() string { return "Warns if 'default' case is not the last" }

func (r *DefaultCaseIsNotLast) CheckCaseStatement(cs *ast.CaseStatement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	var seenDefault *ast.CaseElement
	for i := range cs.Elements {
		elt := &cs.Elements[i]
		if hasDefaultCase(*elt) {
			seenDefault = elt
			continue
		}
		if seenDefault != nil {
			diags = append(diags, lint.Diagnostic{
				Rule: r.Name(),
				Message: fmt.Sprintf("Match case after default match which is defined earlier at line %d",
					seenDefault.Range.Start.Line),
				Range: elt.Range,
			})
		}
	}
	return diags
}

// MultipleDefaultCase warns when a `case` statement declares `default`
// more than once.
//
// Grounded on
// original_source/puppet_pp_lint/src/lint_case_statement.rs's MultipleDefaultCase.
type MultipleDefaultCase struct{}

func (*MultipleDefaultCase) Name() string { return "MultipleDefaultCase" }
func (*MultipleDefaultCase) Description() string {
	return "Warns if case statement has multiple 'default' cases"
}

func (r *MultipleDefaultCase) CheckCaseStatement(cs *ast.CaseStatement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	var seenDefault *ast.CaseElement
	for i := range cs.Elements {
		elt := &cs.Elements[i]
		if !hasDefaultCase(*elt) {
			continue
		}
		if seenDefault != nil {
			diags = append(diags, lint.Diagnostic{
				Rule: r.Name(),
				Message: fmt.Sprintf("Default match case is already defined at line %d",
					seenDefault.Range.Start.Line),
				Range: elt.Range,
			})
		}
		seenDefault = elt
	}
	return diags
}

// NoDefaultCase warns when a `case` statement declares no `default` arm.
//
// Grounded on
// original_source/puppet_pp_lint/src/lint_case_statement.rs's NoDefaultCase.
type NoDefaultCase struct{}

func (*NoDefaultCase) Name() string        { return "NoDefaultCase" }
func (*NoDefaultCase) Description() string { return "Warns if case statement has no default case" }

func (r *NoDefaultCase) CheckCaseStatement(cs *ast.CaseStatement) []lint.Diagnostic {
	for _, elt := range cs.Elements {
		if hasDefaultCase(elt) {
			return nil
		}
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: "Case with no default",
		Range:   cs.Range,
		URL:     "https://puppet.com/docs/puppet/7/style_guide.html#style_guide_conditionals-case-selector-defaults",
	}}
}
