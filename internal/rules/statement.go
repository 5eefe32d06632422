package rules

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

// hasSideEffect reports whether executing stmt can change anything outside
// its own evaluation — a resource declaration, a relation, an assignment,
// a function call, or a branch containing one of those.
//
// Grounded on
// original_source/src/puppet_pp_lint/tool/statement.rs's has_side_effect;
// the expression half of that helper (tool/expression.rs) was not among
// the files retrieved into original_source/, so exprHasSideEffect below
// makes the same call/assignment-vs-pure-expression distinction its
// statement-level counterpart implies rather than a byte-for-byte port.
func hasSideEffect(stmt ast.Statement) bool {
	switch v := stmt.(type) {
	case *ast.ExpressionStatement:
		return exprHasSideEffect(v.Expr)
	case *ast.RelationListStatement:
		return true
	case *ast.IfElseStatement:
		if exprHasSideEffect(v.Condition) || anyHasSideEffect(v.Body) {
			return true
		}
		for _, ei := range v.ElseIfs {
			if exprHasSideEffect(ei.Condition) || anyHasSideEffect(ei.Body) {
				return true
			}
		}
		return anyHasSideEffect(v.Else)
	case *ast.UnlessStatement:
		return exprHasSideEffect(v.Condition) || anyHasSideEffect(v.Body) || anyHasSideEffect(v.Else)
	case *ast.CaseStatement:
		if exprHasSideEffect(v.Condition) {
			return true
		}
		for _, elt := range v.Elements {
			if anyHasSideEffect(elt.Body) {
				return true
			}
		}
		return false
	case *ast.ResourceSetStatement:
		return true
	case *ast.ResourceDefaultsStatement:
		if v.Attributes == nil {
			return false
		}
		for _, a := range v.Attributes.Values {
			if exprHasSideEffect(a.Value) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func anyHasSideEffect(list *ast.List[ast.Statement]) bool {
	if list == nil {
		return false
	}
	for _, s := range list.Values {
		if hasSideEffect(s) {
			return true
		}
	}
	return false
}

func exprHasSideEffect(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.BinaryExpr:
		return v.Op == ast.OpAssign
	case *ast.FunctionCall, *ast.BuiltinCall, *ast.ChainCallExpr:
		return true
	default:
		return false
	}
}

// StatementWithNoEffect warns about a statement whose evaluation changes
// nothing and whose value is discarded (every statement in a block but the
// last).
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_statement.rs's StatementWithNoEffect.
type StatementWithNoEffect struct{}

func (*StatementWithNoEffect) Name() string { return "StatementWithNoEffect" }
func (*StatementWithNoEffect) Description() string {
	return "Checks for statements without side effects"
}

func (r *StatementWithNoEffect) CheckStatementList(list *ast.List[ast.Statement]) []lint.Diagnostic {
	if list == nil {
		return nil
	}
	var diags []lint.Diagnostic
	n := len(list.Values)
	for i, elt := range list.Values {
		if i == n-1 {
			continue
		}
		if !hasSideEffect(elt) {
			diags = append(diags, lint.Diagnostic{
				Rule:    r.Name(),
				Message: "Statement without effect which is not a return value. Can be safely removed.",
				Range:   elt.SrcRange(),
			})
		}
	}
	return diags
}

// RelationToTheLeft warns on `<-`/`<~` relations, which read right-to-left
// and are easy to misread against the much more common `->`/`~>` forms.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_statement.rs's RelationToTheLeft.
type RelationToTheLeft struct{}

func (*RelationToTheLeft) Name() string        { return "RelationToTheLeft" }
func (*RelationToTheLeft) Description() string { return "Checks for left-directed relations" }

func (r *RelationToTheLeft) CheckRelation(left ast.RelationElt, kind ast.RelationKind, right ast.RelationElt) []lint.Diagnostic {
	switch kind {
	case ast.RelationRequire, ast.RelationSubscribe:
		return []lint.Diagnostic{{
			Rule:    r.Name(),
			Message: "Avoid relations directed to the left.",
			Range:   right.Range,
		}}
	default:
		return nil
	}
}
