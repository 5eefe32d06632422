package lint

import "github.com/lindstrom-oss/puplint/internal/ast"

// Visitor is invoked once per AST node Walk descends into. Returning false
// stops Walk from descending into that node's children (it still visits
// the node's siblings).
type Visitor func(node ast.Node) bool

// Walk traverses a parsed Manifest depth-first, in source order, calling
// visit on every node reachable from its top-level declarations: each
// TopLevel, every Statement in its body, and every Expr/TypeSpec/Argument
// those statements contain.
func Walk(m *ast.Manifest, visit Visitor) {
	for _, tl := range m.Toplevels {
		walkTopLevel(tl, visit)
	}
}

func walkTopLevel(tl ast.TopLevel, visit Visitor) {
	if !visit(tl) {
		return
	}
	switch v := tl.(type) {
	case *ast.ClassDef:
		walkArguments(v.Arguments, visit)
		walkStatements(v.Body, visit)
	case *ast.DefinitionDef:
		walkArguments(v.Arguments, visit)
		walkStatements(v.Body, visit)
	case *ast.PlanDef:
		walkArguments(v.Arguments, visit)
		walkStatements(v.Body, visit)
	case *ast.FunctionDef:
		walkArguments(v.Arguments, visit)
		if v.ReturnType != nil {
			walkTypeSpec(v.ReturnType, visit)
		}
		walkStatements(v.Body, visit)
	case *ast.TypeDef:
		walkTypeSpec(v.Value, visit)
	}
}

func walkArguments(args *ast.List[ast.Argument], visit Visitor) {
	if args == nil {
		return
	}
	for _, a := range args.Values {
		if !visit(a) {
			continue
		}
		if a.TypeSpec != nil {
			walkTypeSpec(a.TypeSpec, visit)
		}
		if a.Default != nil {
			walkExpr(a.Default, visit)
		}
	}
}

func walkStatements(body *ast.List[ast.Statement], visit Visitor) {
	if body == nil {
		return
	}
	for _, s := range body.Values {
		walkStatement(s, visit)
	}
}

func walkStatement(s ast.Statement, visit Visitor) {
	if !visit(s) {
		return
	}
	switch v := s.(type) {
	case *ast.ExpressionStatement:
		walkExpr(v.Expr, visit)
	case *ast.IfElseStatement:
		walkExpr(v.Condition, visit)
		walkStatements(v.Body, visit)
		for _, ei := range v.ElseIfs {
			walkExpr(ei.Condition, visit)
			walkStatements(ei.Body, visit)
		}
		walkStatements(v.Else, visit)
	case *ast.UnlessStatement:
		walkExpr(v.Condition, visit)
		walkStatements(v.Body, visit)
		walkStatements(v.Else, visit)
	case *ast.CaseStatement:
		walkExpr(v.Condition, visit)
		for _, elt := range v.Elements {
			walkStatements(elt.Body, visit)
		}
	case *ast.ResourceSetStatement:
		walkExpr(v.Type, visit)
		if v.Resources != nil {
			for _, r := range v.Resources.Values {
				walkExpr(r.Title, visit)
				walkResourceAttributes(r.Attributes, visit)
			}
		}
	case *ast.ResourceDefaultsStatement:
		walkResourceAttributes(v.Attributes, visit)
	case *ast.RelationListStatement:
		walkRelationElt(v.Head, visit)
		for _, t := range v.Tail {
			walkRelationElt(t.Elt, visit)
		}
	}
}

func walkRelationElt(e ast.RelationElt, visit Visitor) {
	if e.ResourceSet != nil {
		walkStatement(e.ResourceSet, visit)
	}
	for _, a := range e.Array {
		walkExpr(a, visit)
	}
}

func walkResourceAttributes(attrs *ast.List[ast.ResourceAttribute], visit Visitor) {
	if attrs == nil {
		return
	}
	for _, a := range attrs.Values {
		if a.Key != nil {
			walkExpr(a.Key, visit)
		}
		walkExpr(a.Value, visit)
	}
}

func walkExpr(e ast.Expr, visit Visitor) {
	if e == nil || !visit(e) {
		return
	}
	switch v := e.(type) {
	case *ast.BinaryExpr:
		walkExpr(v.Left, visit)
		walkExpr(v.Right, visit)
	case *ast.NotExpr:
		walkExpr(v.Operand, visit)
	case *ast.RegexMatchExpr:
		walkExpr(v.Left, visit)
	case *ast.TypeMatchExpr:
		walkExpr(v.Left, visit)
		walkTypeSpec(v.TypeSpec, visit)
	case *ast.ChainCallExpr:
		walkExpr(v.Left, visit)
		walkFunctionCall(v.Call, visit)
	case *ast.SelectorExpr:
		walkExpr(v.Condition, visit)
		if v.Cases != nil {
			for _, cs := range v.Cases.Values {
				walkExpr(cs.Body, visit)
			}
		}
	case *ast.FunctionCall:
		walkFunctionCall(v, visit)
	case *ast.BuiltinCall:
		if v.ReturnValue != nil {
			walkExpr(v.ReturnValue, visit)
		}
		if v.Many != nil {
			walkLambda(v.Many.Lambda, visit)
			for _, a := range v.Many.Args {
				walkExpr(a, visit)
			}
		}
	case *ast.Term:
		walkTerm(v, visit)
	}
}

func walkFunctionCall(call *ast.FunctionCall, visit Visitor) {
	if call == nil {
		return
	}
	for _, a := range call.Args {
		walkExpr(a, visit)
	}
	walkLambda(call.Lambda, visit)
}

func walkLambda(l *ast.Lambda, visit Visitor) {
	if l == nil {
		return
	}
	walkArguments(l.Args, visit)
	walkStatements(l.Body, visit)
}

func walkTerm(t *ast.Term, visit Visitor) {
	switch t.Kind {
	case ast.TermString:
		if t.StringValue != nil {
			for _, frag := range t.StringValue.Double {
				if frag.Expression != nil {
					walkExpr(frag.Expression, visit)
				}
			}
		}
	case ast.TermArray:
		if t.ArrayValue != nil {
			for _, e := range t.ArrayValue.Values {
				walkExpr(e, visit)
			}
		}
	case ast.TermMap:
		if t.MapValue != nil {
			for _, entry := range t.MapValue.Values {
				walkExpr(entry.Key, visit)
				walkExpr(entry.Value, visit)
			}
		}
	case ast.TermParens:
		walkExpr(t.ParensValue, visit)
	case ast.TermSensitive:
		if t.Sensitive != nil {
			walkTerm(t.Sensitive, visit)
		}
	case ast.TermTypeSpecification:
		walkTypeSpec(t.TypeSpec, visit)
	}
}

func walkTypeSpec(ts ast.TypeSpec, visit Visitor) {
	if ts == nil || !visit(ts) {
		return
	}
	switch v := ts.(type) {
	case *ast.SimpleType:
		for _, p := range v.Params {
			walkTypeSpec(p, visit)
		}
		for _, a := range v.Args {
			walkExpr(a, visit)
		}
	case *ast.OptionalType:
		walkTypeSpec(v.Inner, visit)
	case *ast.StructType:
		if v.Keys != nil {
			for _, k := range v.Keys.Values {
				walkTypeSpec(k.Value, visit)
			}
		}
	}
}
