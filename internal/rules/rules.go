// Package rules implements the lint rule catalogue: each exported type is
// one independently togglable check, grounded one-for-one on a LintPass
// from original_source/puppet_pp_lint (and its src/puppet_pp_lint
// duplicate tree).
//
// Go has no trait objects, so the Rust EarlyLintPass hooks
// (check_argument, check_term, check_case_statement, …) become a set of
// small optional interfaces a Rule may implement — the same pattern
// go/ast.Walk's Visitor and encoding/json's Marshaler use: the driver
// (driver.go) type-asserts each registered Rule against the matching hook
// interface at each node it visits, rather than forcing every rule to
// implement every hook with an empty body.
package rules

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/semantic"
)

// Rule is the minimum every lint rule implements: a stable name (used by
// Config.RuleEnabled/RulePattern to toggle it) and a one-line description
// surfaced by `puplint rules list`.
type Rule interface {
	Name() string
	Description() string
}

// Context carries the semantic state a rule hook may consult: the
// variable table for the scope currently being walked, the module/class
// resolver, the ERB template resolver, and the path stack of enclosing
// node kinds.
type Context struct {
	Variables *semantic.VariableTable
	Resolver  *semantic.Resolver
	Templates *semantic.TemplateResolver
	Path      *semantic.PathStack
}

// ArgumentChecker rules inspect one Argument at a time, independent of its
// position in the parameter list.
type ArgumentChecker interface {
	CheckArgument(arg ast.Argument) []lint.Diagnostic
}

// ArgumentListChecker rules need the whole parameter list at once (order,
// duplicate names).
type ArgumentListChecker interface {
	CheckArgumentList(args *ast.List[ast.Argument]) []lint.Diagnostic
}

// StatementListChecker rules need an entire statement block at once (e.g.
// "is this the last statement in the block").
type StatementListChecker interface {
	CheckStatementList(list *ast.List[ast.Statement]) []lint.Diagnostic
}

// ResourceSetChecker rules inspect a whole resource-set statement at
// once: its type name and every title's attribute list together, since
// some checks (duplicate/ordering) need to see the full attribute list
// rather than one attribute at a time.
type ResourceSetChecker interface {
	CheckResourceSet(rs *ast.ResourceSetStatement) []lint.Diagnostic
}

// CaseStatementChecker rules inspect a whole `case` statement's arms.
type CaseStatementChecker interface {
	CheckCaseStatement(cs *ast.CaseStatement) []lint.Diagnostic
}

// UnlessChecker rules inspect an `unless` statement.
type UnlessChecker interface {
	CheckUnless(u *ast.UnlessStatement) []lint.Diagnostic
}

// RelationChecker rules inspect one arrow of a relation chain, given the
// element to its left.
type RelationChecker interface {
	CheckRelation(left ast.RelationElt, kind ast.RelationKind, right ast.RelationElt) []lint.Diagnostic
}

// TermChecker rules inspect one Term as the traversal reaches it.
// isAssignment is true when the term is the left-hand side of an
// assignment expression (`$x = …`), so a rule can tell a binding site from
// a read site.
type TermChecker interface {
	CheckTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic
}

// ExpressionChecker rules inspect one expression as the traversal reaches
// it. isToplevel is true when the expression is a bare ExpressionStatement
// rather than a sub-expression.
type ExpressionChecker interface {
	CheckExpression(ctx *Context, isToplevel bool, e ast.Expr) []lint.Diagnostic
}

// CtxChecker rules run once per scope after that scope's body has been
// fully walked, inspecting accumulated state (e.g. which variables were
// never read).
type CtxChecker interface {
	CheckCtx(ctx *Context) []lint.Diagnostic
}

// All returns every rule this package ships, in the order the original
// Rust lint registered them.
func All() []Rule {
	return []Rule{
		&ArgumentLooksSensitive{},
		&SensitiveArgumentWithDefault{},
		&ArgumentTyped{},
		&ReadableArgumentsName{},
		&LowerCaseArgumentName{},
		&OptionalArgumentsGoesFirst{},
		&UniqueArgumentsNames{},
		&EmptyCasesList{},
		&DefaultCaseIsNotLast{},
		&MultipleDefaultCase{},
		&NoDefaultCase{},
		&StatementWithNoEffect{},
		&RelationToTheLeft{},
		&DoNotUseUnless{},
		&UpperCaseName{},
		&UniqueAttributeName{},
		&EnsureAttributeIsNotTheFirst{},
		&FileModeAttributeIsString{},
		&UselessParens{},
		&UselessDoubleQuotes{},
		&LowerCaseVariable{},
		&ReferenceToUndefinedValue{},
		&MagicNumber{},
		&UnusedVariables{},
		&ErbReferencesToUnknownVariable{},
	}
}
