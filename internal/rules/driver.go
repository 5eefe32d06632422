package rules

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/semantic"
)

// PathFrame names for scopes a driver pushes while descending, beyond the
// two MagicNumber consults directly (term.go's PathFrameAssignRight /
// PathFrameArgumentDefault).
const (
	pathFrameIf       = "if"
	pathFrameUnless   = "unless"
	pathFrameCase     = "case"
	pathFrameLambda   = "lambda"
	pathFrameResource = "resource"
)

// Driver runs a fixed set of rules over a parsed Manifest, threading one
// semantic.VariableTable/PathStack pair per class/definition/plan/function
// scope — mirroring original_source's Ctx, which is rebuilt fresh for each
// top-level declaration's body (§4.8's "each check operates against one
// parsed file's worth of context").
type Driver struct {
	rules     []Rule
	resolver  *semantic.Resolver
	templates *semantic.TemplateResolver
}

// NewDriver builds a Driver running rules, with resolver/templates wired
// in for the rules (module resolution, ERB scanning) that need them. Both
// may be nil when the caller has no filesystem access (e.g. linting a
// single in-memory snippet) — the rules that need them simply no-op.
func NewDriver(rules []Rule, resolver *semantic.Resolver, templates *semantic.TemplateResolver) *Driver {
	return &Driver{rules: rules, resolver: resolver, templates: templates}
}

// Run lints every top-level declaration in m, returning every rule's
// diagnostics in traversal order.
func (d *Driver) Run(m *ast.Manifest) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, tl := range m.Toplevels {
		diags = append(diags, d.runToplevel(tl)...)
	}
	return diags
}

func (d *Driver) runToplevel(tl ast.TopLevel) []lint.Diagnostic {
	ctx := &Context{
		Variables: semantic.NewVariableTable(),
		Resolver:  d.resolver,
		Templates: d.templates,
		Path:      &semantic.PathStack{},
	}

	var diags []lint.Diagnostic
	var args *ast.List[ast.Argument]
	var body *ast.List[ast.Statement]

	switch v := tl.(type) {
	case *ast.ClassDef:
		args, body = v.Arguments, v.Body
	case *ast.DefinitionDef:
		args, body = v.Arguments, v.Body
	case *ast.PlanDef:
		args, body = v.Arguments, v.Body
	case *ast.FunctionDef:
		args, body = v.Arguments, v.Body
		if v.ReturnType != nil {
			diags = append(diags, d.checkTypeSpec(v.ReturnType)...)
		}
	case *ast.TypeDef:
		diags = append(diags, d.checkTypeSpec(v.Value)...)
		return diags
	}

	diags = append(diags, d.checkArguments(ctx, args)...)
	diags = append(diags, d.checkStatements(ctx, body)...)
	for _, rule := range d.rules {
		if c, ok := rule.(CtxChecker); ok {
			diags = append(diags, c.CheckCtx(ctx)...)
		}
	}
	return diags
}

func (d *Driver) checkArguments(ctx *Context, args *ast.List[ast.Argument]) []lint.Diagnostic {
	if args == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, rule := range d.rules {
		if c, ok := rule.(ArgumentListChecker); ok {
			diags = append(diags, c.CheckArgumentList(args)...)
		}
	}
	for _, a := range args.Values {
		ctx.Variables.Define(a.Name, semantic.VariableArgument, a.Range)
		for _, rule := range d.rules {
			if c, ok := rule.(ArgumentChecker); ok {
				diags = append(diags, c.CheckArgument(a)...)
			}
		}
		if a.TypeSpec != nil {
			diags = append(diags, d.checkTypeSpec(a.TypeSpec)...)
		}
		if a.Default != nil {
			ctx.Path.Push(PathFrameArgumentDefault)
			diags = append(diags, d.checkExpr(ctx, false, a.Default)...)
			ctx.Path.Pop()
		}
	}
	return diags
}

func (d *Driver) checkTypeSpec(ts ast.TypeSpec) []lint.Diagnostic {
	if ts == nil {
		return nil
	}
	var diags []lint.Diagnostic
	switch v := ts.(type) {
	case *ast.SimpleType:
		for _, p := range v.Params {
			diags = append(diags, d.checkTypeSpec(p)...)
		}
	case *ast.OptionalType:
		diags = append(diags, d.checkTypeSpec(v.Inner)...)
	case *ast.StructType:
		if v.Keys != nil {
			for _, k := range v.Keys.Values {
				diags = append(diags, d.checkTypeSpec(k.Value)...)
			}
		}
	}
	return diags
}

func (d *Driver) checkStatements(ctx *Context, list *ast.List[ast.Statement]) []lint.Diagnostic {
	if list == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, rule := range d.rules {
		if c, ok := rule.(StatementListChecker); ok {
			diags = append(diags, c.CheckStatementList(list)...)
		}
	}
	for _, s := range list.Values {
		diags = append(diags, d.checkStatement(ctx, s)...)
	}
	return diags
}

func (d *Driver) checkStatement(ctx *Context, s ast.Statement) []lint.Diagnostic {
	var diags []lint.Diagnostic
	switch v := s.(type) {
	case *ast.ExpressionStatement:
		diags = append(diags, d.checkExpr(ctx, true, v.Expr)...)
	case *ast.IfElseStatement:
		diags = append(diags, d.checkExpr(ctx, false, v.Condition)...)
		ctx.Path.Push(pathFrameIf)
		diags = append(diags, d.checkStatements(ctx, v.Body)...)
		for _, ei := range v.ElseIfs {
			diags = append(diags, d.checkExpr(ctx, false, ei.Condition)...)
			diags = append(diags, d.checkStatements(ctx, ei.Body)...)
		}
		diags = append(diags, d.checkStatements(ctx, v.Else)...)
		ctx.Path.Pop()
	case *ast.UnlessStatement:
		for _, rule := range d.rules {
			if c, ok := rule.(UnlessChecker); ok {
				diags = append(diags, c.CheckUnless(v)...)
			}
		}
		diags = append(diags, d.checkExpr(ctx, false, v.Condition)...)
		ctx.Path.Push(pathFrameUnless)
		diags = append(diags, d.checkStatements(ctx, v.Body)...)
		diags = append(diags, d.checkStatements(ctx, v.Else)...)
		ctx.Path.Pop()
	case *ast.CaseStatement:
		for _, rule := range d.rules {
			if c, ok := rule.(CaseStatementChecker); ok {
				diags = append(diags, c.CheckCaseStatement(v)...)
			}
		}
		diags = append(diags, d.checkExpr(ctx, false, v.Condition)...)
		ctx.Path.Push(pathFrameCase)
		for _, elt := range v.Elements {
			diags = append(diags, d.checkStatements(ctx, elt.Body)...)
		}
		ctx.Path.Pop()
	case *ast.ResourceSetStatement:
		for _, rule := range d.rules {
			if c, ok := rule.(ResourceSetChecker); ok {
				diags = append(diags, c.CheckResourceSet(v)...)
			}
		}
		ctx.Path.Push(pathFrameResource)
		diags = append(diags, d.checkExpr(ctx, false, v.Type)...)
		if v.Resources != nil {
			for _, res := range v.Resources.Values {
				diags = append(diags, d.checkExpr(ctx, false, res.Title)...)
				diags = append(diags, d.checkResourceAttributes(ctx, res.Attributes)...)
			}
		}
		ctx.Path.Pop()
	case *ast.ResourceDefaultsStatement:
		diags = append(diags, d.checkResourceAttributes(ctx, v.Attributes)...)
	case *ast.RelationListStatement:
		diags = append(diags, d.checkRelationElt(ctx, v.Head)...)
		left := v.Head
		for _, tail := range v.Tail {
			for _, rule := range d.rules {
				if c, ok := rule.(RelationChecker); ok {
					diags = append(diags, c.CheckRelation(left, tail.Kind, tail.Elt)...)
				}
			}
			diags = append(diags, d.checkRelationElt(ctx, tail.Elt)...)
			left = tail.Elt
		}
	}
	return diags
}

func (d *Driver) checkRelationElt(ctx *Context, e ast.RelationElt) []lint.Diagnostic {
	var diags []lint.Diagnostic
	if e.ResourceSet != nil {
		diags = append(diags, d.checkStatement(ctx, e.ResourceSet)...)
	}
	for _, a := range e.Array {
		diags = append(diags, d.checkExpr(ctx, false, a)...)
	}
	return diags
}

func (d *Driver) checkResourceAttributes(ctx *Context, attrs *ast.List[ast.ResourceAttribute]) []lint.Diagnostic {
	if attrs == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, a := range attrs.Values {
		if a.Key != nil {
			diags = append(diags, d.checkExpr(ctx, false, a.Key)...)
		}
		diags = append(diags, d.checkExpr(ctx, false, a.Value)...)
	}
	return diags
}

// checkExpr walks e, calling every ExpressionChecker rule on e itself and
// descending into its children. isToplevel is true when e is the whole
// expression of an ExpressionStatement and is passed on to the
// ExpressionChecker rules; assignment targets go through checkAssignTarget.
func (d *Driver) checkExpr(ctx *Context, isToplevel bool, e ast.Expr) []lint.Diagnostic {
	if e == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, rule := range d.rules {
		if c, ok := rule.(ExpressionChecker); ok {
			diags = append(diags, c.CheckExpression(ctx, isToplevel, e)...)
		}
	}

	switch v := e.(type) {
	case *ast.BinaryExpr:
		if v.Op == ast.OpAssign {
			diags = append(diags, d.checkAssignTarget(ctx, v.Left)...)
			ctx.Path.Push(PathFrameAssignRight)
			diags = append(diags, d.checkExpr(ctx, false, v.Right)...)
			ctx.Path.Pop()
		} else {
			diags = append(diags, d.checkExpr(ctx, false, v.Left)...)
			diags = append(diags, d.checkExpr(ctx, false, v.Right)...)
		}
	case *ast.NotExpr:
		diags = append(diags, d.checkExpr(ctx, false, v.Operand)...)
	case *ast.RegexMatchExpr:
		diags = append(diags, d.checkExpr(ctx, false, v.Left)...)
	case *ast.TypeMatchExpr:
		diags = append(diags, d.checkExpr(ctx, false, v.Left)...)
		diags = append(diags, d.checkTypeSpec(v.TypeSpec)...)
	case *ast.ChainCallExpr:
		diags = append(diags, d.checkExpr(ctx, false, v.Left)...)
		diags = append(diags, d.checkFunctionCall(ctx, v.Call)...)
	case *ast.SelectorExpr:
		diags = append(diags, d.checkExpr(ctx, false, v.Condition)...)
		if v.Cases != nil {
			for _, cs := range v.Cases.Values {
				diags = append(diags, d.checkExpr(ctx, false, cs.Body)...)
			}
		}
	case *ast.FunctionCall:
		diags = append(diags, d.checkFunctionCall(ctx, v)...)
	case *ast.BuiltinCall:
		if v.ReturnValue != nil {
			diags = append(diags, d.checkExpr(ctx, false, v.ReturnValue)...)
		}
		if v.Many != nil {
			diags = append(diags, d.checkLambda(ctx, v.Many.Lambda)...)
			for _, a := range v.Many.Args {
				diags = append(diags, d.checkExpr(ctx, false, a)...)
			}
		}
	case *ast.Term:
		diags = append(diags, d.checkTerm(ctx, false, v)...)
	}
	return diags
}

// checkAssignTarget handles the left-hand side of `$x = …`: a bare
// variable term is a binding site, not a read, so it is defined in the
// scope's VariableTable rather than checked for "reference to undefined".
func (d *Driver) checkAssignTarget(ctx *Context, e ast.Expr) []lint.Diagnostic {
	t, ok := e.(*ast.Term)
	if !ok || t.Kind != ast.TermVariable || t.Variable == nil || t.Variable.Identifier == nil {
		return d.checkExpr(ctx, false, e)
	}
	if len(t.Variable.Identifier.Name) == 1 {
		ctx.Variables.Define(t.Variable.Identifier.Name[0], semantic.VariableDefined, t.SrcRange())
	}
	return d.checkTerm(ctx, true, t)
}

func (d *Driver) checkTerm(ctx *Context, isAssignment bool, t *ast.Term) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, rule := range d.rules {
		if c, ok := rule.(TermChecker); ok {
			diags = append(diags, c.CheckTerm(ctx, isAssignment, t)...)
		}
	}
	switch t.Kind {
	case ast.TermString:
		if t.StringValue != nil {
			for _, frag := range t.StringValue.Double {
				if frag.Expression != nil {
					diags = append(diags, d.checkExpr(ctx, false, frag.Expression)...)
				}
			}
		}
	case ast.TermArray:
		if t.ArrayValue != nil {
			for _, e := range t.ArrayValue.Values {
				diags = append(diags, d.checkExpr(ctx, false, e)...)
			}
		}
	case ast.TermMap:
		if t.MapValue != nil {
			for _, entry := range t.MapValue.Values {
				diags = append(diags, d.checkExpr(ctx, false, entry.Key)...)
				diags = append(diags, d.checkExpr(ctx, false, entry.Value)...)
			}
		}
	case ast.TermParens:
		diags = append(diags, d.checkExpr(ctx, false, t.ParensValue)...)
	case ast.TermSensitive:
		if t.Sensitive != nil {
			diags = append(diags, d.checkTerm(ctx, false, t.Sensitive)...)
		}
	case ast.TermTypeSpecification:
		diags = append(diags, d.checkTypeSpec(t.TypeSpec)...)
	}
	return diags
}

func (d *Driver) checkFunctionCall(ctx *Context, call *ast.FunctionCall) []lint.Diagnostic {
	if call == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, a := range call.Args {
		diags = append(diags, d.checkExpr(ctx, false, a)...)
	}
	diags = append(diags, d.checkLambda(ctx, call.Lambda)...)
	return diags
}

func (d *Driver) checkLambda(ctx *Context, l *ast.Lambda) []lint.Diagnostic {
	if l == nil {
		return nil
	}
	ctx.Path.Push(pathFrameLambda)
	diags := d.checkArguments(ctx, l.Args)
	diags = append(diags, d.checkStatements(ctx, l.Body)...)
	ctx.Path.Pop()
	return diags
}
