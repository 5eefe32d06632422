package parser

import (
	"strconv"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
	"github.com/lindstrom-oss/puplint/internal/strlit"
	"github.com/lindstrom-oss/puplint/internal/typespec"
)

// ParseExpr parses one expression at the cursor's current position,
// starting at the lowest-precedence level (assignment).
//
// Precedence, lowest to highest (original_source/puppet_parser's
// expression.rs table, carried over unchanged):
//
//	= (right-assoc)
//	or
//	and
//	== != > >= < <=
//	in
//	<< >>
//	+ -
//	* / %
//	=~ !~ (regex/type match)
//	! (unary, prefix)
//	. accessor / chain call / postfix
func ParseExpr(c *lexer.Cursor) (ast.Expr, error) {
	return parseAssign(c)
}

type binOp struct {
	text string
	kind ast.ExprKind
}

func parseAssign(c *lexer.Cursor) (ast.Expr, error) {
	start := c.Location()
	left, err := parseOr(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	m := c.Mark()
	if c.ConsumeLiteral("=") && !c.HasPrefix("=") && !c.HasPrefix("~") && !c.HasPrefix(">") {
		lexer.SkipSpace(c)
		right, err := parseAssign(c)
		if err != nil {
			return nil, Protect(err)
		}
		return newBinary(ast.OpAssign, left, right, start, c), nil
	}
	c.Reset(m)
	return left, nil
}

func leftAssoc(c *lexer.Cursor, next func(*lexer.Cursor) (ast.Expr, error), ops []binOp) (ast.Expr, error) {
	start := c.Location()
	left, err := next(c)
	if err != nil {
		return nil, err
	}
	for {
		lexer.SkipSpace(c)
		m := c.Mark()
		matched := false
		for _, op := range ops {
			if c.ConsumeLiteral(op.text) {
				lexer.SkipSpace(c)
				right, err := next(c)
				if err != nil {
					return nil, Protect(err)
				}
				left = newBinary(op.kind, left, right, start, c)
				matched = true
				break
			}
		}
		if !matched {
			c.Reset(m)
			break
		}
	}
	return left, nil
}

func parseOr(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseAnd, []binOp{{"or", ast.OpOr}})
}

func parseAnd(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseEquality, []binOp{{"and", ast.OpAnd}})
}

func parseEquality(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseIn, []binOp{
		{"==", ast.OpEqual}, {"!=", ast.OpNotEqual},
		{">=", ast.OpGtEq}, {"<=", ast.OpLtEq},
		{">", ast.OpGt}, {"<", ast.OpLt},
	})
}

func parseIn(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseShift, []binOp{{"in", ast.OpIn}})
}

func parseShift(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseAdditive, []binOp{{"<<", ast.OpShiftLeft}, {">>", ast.OpShiftRight}})
}

func parseAdditive(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseMultiplicative, []binOp{{"+", ast.OpPlus}, {"-", ast.OpMinus}})
}

func parseMultiplicative(c *lexer.Cursor) (ast.Expr, error) {
	return leftAssoc(c, parseMatch, []binOp{{"*", ast.OpMultiply}, {"/", ast.OpDivide}, {"%", ast.OpModulo}})
}

func parseMatch(c *lexer.Cursor) (ast.Expr, error) {
	start := c.Location()
	left, err := parseUnary(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	m := c.Mark()
	negated := false
	if c.ConsumeLiteral("=~") {
		negated = false
	} else if c.ConsumeLiteral("!~") {
		negated = true
	} else {
		return left, nil
	}
	lexer.SkipSpace(c)
	if re, ok := strlit.Regex(c); ok {
		e := &ast.RegexMatchExpr{Negated: negated, Left: left, Regexp: re}
		e.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return e, nil
	}
	ts, err := typespec.Parse(c, ParseExpr)
	if err != nil {
		c.Reset(m)
		return left, nil
	}
	e := &ast.TypeMatchExpr{Negated: negated, Left: left, TypeSpec: ts}
	e.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return e, nil
}

func parseUnary(c *lexer.Cursor) (ast.Expr, error) {
	lexer.SkipSpace(c)
	start := c.Location()
	m := c.Mark()
	if c.ConsumeLiteral("!") {
		lexer.SkipSpace(c)
		operand, err := parseUnary(c)
		if err != nil {
			return nil, Protect(err)
		}
		e := &ast.NotExpr{Operand: operand}
		e.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return e, nil
	}
	c.Reset(m)
	return parsePostfix(c)
}

func parsePostfix(c *lexer.Cursor) (ast.Expr, error) {
	start := c.Location()
	left, err := parsePrimary(c)
	if err != nil {
		return nil, err
	}
	for {
		m := c.Mark()
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(".") {
			lexer.SkipSpace(c)
			name, ok := lexer.Ident(c)
			if !ok {
				c.Reset(m)
				break
			}
			call, err := parseCallArgsAndLambda(c, name, start)
			if err != nil {
				return nil, Protect(err)
			}
			ce := &ast.ChainCallExpr{Left: left, Call: call}
			ce.SetRange(srcrange.Range{Start: start, End: c.Location()})
			left = ce
			continue
		}
		if c.ConsumeLiteral("[") {
			idxList, err := parseAccessorList(c)
			if err != nil {
				return nil, Protect(err)
			}
			left = attachAccessor(left, idxList, srcrange.Range{Start: start, End: c.Location()})
			continue
		}
		if c.ConsumeLiteral("?") {
			lexer.SkipSpace(c)
			cases, err := parseSelectorCases(c)
			if err != nil {
				return nil, Protect(err)
			}
			se := &ast.SelectorExpr{Condition: left, Cases: cases}
			se.SetRange(srcrange.Range{Start: start, End: c.Location()})
			left = se
			continue
		}
		c.Reset(m)
		break
	}
	return left, nil
}

func parseAccessorList(c *lexer.Cursor) ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("]") {
			break
		}
		e, err := ParseExpr(c)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		if c.ConsumeLiteral("]") {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or ']' in accessor")
	}
	return items, nil
}

func attachAccessor(e ast.Expr, list []ast.Expr, r srcrange.Range) ast.Expr {
	acc := func(existing *ast.Accessor) *ast.Accessor {
		if existing == nil {
			return &ast.Accessor{Lists: [][]ast.Expr{list}, Range: r}
		}
		existing.Lists = append(existing.Lists, list)
		existing.Range = r
		return existing
	}
	switch v := e.(type) {
	case *ast.Term:
		v.Accessor = acc(v.Accessor)
		return v
	case *ast.BinaryExpr:
		v.Accessor = acc(v.Accessor)
		return v
	case *ast.NotExpr:
		v.Accessor = acc(v.Accessor)
		return v
	case *ast.ChainCallExpr:
		v.Accessor = acc(v.Accessor)
		return v
	case *ast.SelectorExpr:
		v.Accessor = acc(v.Accessor)
		return v
	default:
		return e
	}
}

func parseSelectorCases(c *lexer.Cursor) (*ast.List[ast.SelectorCase], error) {
	if !c.ConsumeLiteral("{") {
		return nil, recoverableAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening a selector")
	}
	out := &ast.List[ast.SelectorCase]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			out.LastComment = leading
			break
		}
		caseStart := c.Location()
		matches, err := parseCaseVariant(c)
		if err != nil {
			return nil, Protect(err)
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("=>") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=>' in selector case")
		}
		lexer.SkipSpace(c)
		body, err := ParseExpr(c)
		if err != nil {
			return nil, Protect(err)
		}
		out.Values = append(out.Values, ast.SelectorCase{
			Matches: matches, Body: body, Comment: leading,
			Range: srcrange.Range{Start: caseStart, End: c.Location()},
		})
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or '}' closing selector")
	}
	return out, nil
}

func parseCaseVariant(c *lexer.Cursor) (ast.CaseVariant, error) {
	start := c.Location()
	if lexer.SpacedWord(c, "default") {
		return ast.CaseVariant{Kind: ast.CaseVariantDefault, Range: srcrange.Range{Start: start, End: c.Location()}}, nil
	}
	e, err := parseUnary(c)
	if err != nil {
		return ast.CaseVariant{}, err
	}
	term, ok := e.(*ast.Term)
	if !ok {
		return ast.CaseVariant{}, failureAt(srcrange.Range{Start: start, End: c.Location()}, "expected a literal term or 'default' as a case match")
	}
	return ast.CaseVariant{Kind: ast.CaseVariantTerm, Term: term, Range: srcrange.Range{Start: start, End: c.Location()}}, nil
}

func newBinary(kind ast.ExprKind, left, right ast.Expr, start srcrange.Location, c *lexer.Cursor) ast.Expr {
	e := &ast.BinaryExpr{Op: kind, Left: left, Right: right}
	e.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return e
}

// --- primary expressions -------------------------------------------------

var builtinNames = map[string]ast.BuiltinKind{
	"undef":            ast.BuiltinUndef,
	"return":           ast.BuiltinReturn,
	"template":         ast.BuiltinTemplate,
	"tag":              ast.BuiltinTag,
	"require":          ast.BuiltinRequire,
	"include":          ast.BuiltinInclude,
	"realize":          ast.BuiltinRealize,
	"create_resources": ast.BuiltinCreateResources,
}

func parsePrimary(c *lexer.Cursor) (ast.Expr, error) {
	lexer.SkipSpace(c)
	start := c.Location()

	if c.ConsumeLiteral("(") {
		lexer.SkipSpace(c)
		inner, err := ParseExpr(c)
		if err != nil {
			return nil, Protect(err)
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral(")") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ')' closing parenthesized expression")
		}
		t := &ast.Term{Kind: ast.TermParens, ParensValue: inner}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}

	if se, ok := strlit.SingleQuoted(c); ok {
		t := &ast.Term{Kind: ast.TermString, StringValue: se}
		t.SetRange(se.SrcRange())
		return maybeAccessor(c, t), nil
	}
	if se, ok, err := strlit.DoubleQuoted(c, ParseExpr); err != nil {
		return nil, Protect(err)
	} else if ok {
		t := &ast.Term{Kind: ast.TermString, StringValue: se}
		t.SetRange(se.SrcRange())
		return maybeAccessor(c, t), nil
	}
	if re, ok := strlit.Regex(c); ok {
		t := &ast.Term{Kind: ast.TermRegexp, Regexp: re}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if f, ok := lexer.Float(c); ok {
		v, _ := strconv.ParseFloat(f, 64)
		t := &ast.Term{Kind: ast.TermFloat, FloatValue: v}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if i, ok := lexer.Integer(c); ok {
		v, _ := strconv.ParseInt(i, 10, 64)
		t := &ast.Term{Kind: ast.TermInteger, IntegerValue: v}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if c.ConsumeLiteral("[") {
		list, err := parseExprList(c, "]")
		if err != nil {
			return nil, Protect(err)
		}
		t := &ast.Term{Kind: ast.TermArray, ArrayValue: list}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if c.ConsumeLiteral("{") {
		entries, err := parseMapEntries(c)
		if err != nil {
			return nil, Protect(err)
		}
		t := &ast.Term{Kind: ast.TermMap, MapValue: entries}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if c.ConsumeLiteral("$") {
		name, ok := lexer.Ident(c)
		if !ok {
			return nil, failureAt(srcrange.Range{Start: start, End: c.Location()}, "expected a variable name after '$'")
		}
		ident := &ast.LowerIdentifier{Name: []string{name}}
		t := &ast.Term{Kind: ast.TermVariable, Variable: &ast.Variable{Identifier: ident}}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return maybeAccessor(c, t), nil
	}

	if lexer.IsUpperStart(peekWord(c)) {
		ts, err := typespec.Parse(c, ParseExpr)
		if err == nil {
			t := &ast.Term{Kind: ast.TermTypeSpecification, TypeSpec: ts}
			t.SetRange(srcrange.Range{Start: start, End: c.Location()})
			return t, nil
		}
	}

	name, ok := lexer.Ident(c)
	if !ok {
		return nil, recoverableAt(srcrange.Range{Start: start, End: c.Location()}, "no expression at this position")
	}
	if bk, isBuiltin := builtinNames[name]; isBuiltin {
		return parseBuiltinCall(c, bk, start)
	}
	if name == "true" || name == "false" {
		t := &ast.Term{Kind: ast.TermBoolean, BooleanValue: name == "true"}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}

	segments := []string{name}
	for {
		mm := c.Mark()
		if !c.ConsumeLiteral("::") {
			break
		}
		seg, ok := lexer.Ident(c)
		if !ok {
			c.Reset(mm)
			break
		}
		segments = append(segments, seg)
	}
	ident := &ast.LowerIdentifier{Name: segments}

	m := c.Mark()
	lexer.SkipSpace(c)
	if c.ConsumeLiteral("(") {
		call, err := parseCallArgsAndLambda(c, segments[len(segments)-1], start)
		if err != nil {
			return nil, Protect(err)
		}
		call.Identifier = ident
		return call, nil
	}
	c.Reset(m)
	t := &ast.Term{Kind: ast.TermIdentifier, Identifier: ident}
	t.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return t, nil
}

func maybeAccessor(c *lexer.Cursor, e ast.Expr) ast.Expr {
	for {
		m := c.Mark()
		if !c.ConsumeLiteral("[") {
			c.Reset(m)
			return e
		}
		list, err := parseAccessorList(c)
		if err != nil {
			c.Reset(m)
			return e
		}
		e = attachAccessor(e, list, srcrange.Range{Start: m.Location(), End: c.Location()})
	}
}

func peekWord(c *lexer.Cursor) string {
	rest := c.Rest()
	i := 0
	for i < len(rest) && ((rest[i] >= 'a' && rest[i] <= 'z') || (rest[i] >= 'A' && rest[i] <= 'Z') || rest[i] == '_' || (rest[i] >= '0' && rest[i] <= '9')) {
		i++
	}
	return rest[:i]
}

func parseExprList(c *lexer.Cursor, closing string) (*ast.List[ast.Expr], error) {
	out := &ast.List[ast.Expr]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral(closing) {
			out.LastComment = leading
			break
		}
		e, err := ParseExpr(c)
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, e)
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(closing) {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or %q", closing)
	}
	return out, nil
}

func parseMapEntries(c *lexer.Cursor) (*ast.List[ast.MapEntry], error) {
	out := &ast.List[ast.MapEntry]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			out.LastComment = leading
			break
		}
		key, err := ParseExpr(c)
		if err != nil {
			return nil, err
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("=>") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=>' in map entry")
		}
		lexer.SkipSpace(c)
		value, err := ParseExpr(c)
		if err != nil {
			return nil, Protect(err)
		}
		out.Values = append(out.Values, ast.MapEntry{Key: key, Value: value, Comment: leading})
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or '}' closing map")
	}
	return out, nil
}

func parseCallArgsAndLambda(c *lexer.Cursor, name string, start srcrange.Location) (*ast.FunctionCall, error) {
	args, err := parseExprList(c, ")")
	if err != nil {
		return nil, err
	}
	lambda, err := parseOptionalLambda(c)
	if err != nil {
		return nil, err
	}
	call := &ast.FunctionCall{
		Identifier: &ast.LowerIdentifier{Name: []string{name}},
		Args:       args.Values,
		Lambda:     lambda,
	}
	call.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return call, nil
}

func parseOptionalLambda(c *lexer.Cursor) (*ast.Lambda, error) {
	lexer.SkipSpace(c)
	m := c.Mark()
	start := c.Location()
	if !c.ConsumeLiteral("|") {
		c.Reset(m)
		return nil, nil
	}
	params := &ast.List[ast.Argument]{}
	for {
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("|") {
			break
		}
		arg, err := ParseArgument(c)
		if err != nil {
			return nil, Protect(err)
		}
		params.Values = append(params.Values, arg)
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening a lambda body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	lambda := &ast.Lambda{Args: params, Body: body}
	lambda.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return lambda, nil
}

func parseBuiltinCall(c *lexer.Cursor, kind ast.BuiltinKind, start srcrange.Location) (ast.Expr, error) {
	if kind == ast.BuiltinUndef {
		t := &ast.BuiltinCall{Kind: kind}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	if kind == ast.BuiltinReturn {
		m := c.Mark()
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("(") {
			val, err := ParseExpr(c)
			if err != nil {
				c.Reset(m)
			} else {
				lexer.SkipSpace(c)
				if c.ConsumeLiteral(")") {
					t := &ast.BuiltinCall{Kind: kind, ReturnValue: val}
					t.SetRange(srcrange.Range{Start: start, End: c.Location()})
					return t, nil
				}
				c.Reset(m)
			}
		} else {
			c.Reset(m)
		}
		t := &ast.BuiltinCall{Kind: kind}
		t.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return t, nil
	}
	many, err := parseMany1(c)
	if err != nil {
		return nil, err
	}
	t := &ast.BuiltinCall{Kind: kind, Many: many}
	t.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return t, nil
}

func parseMany1(c *lexer.Cursor) (*ast.Many1, error) {
	lambda, err := parseOptionalLambda(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	var args []ast.Expr
	if c.ConsumeLiteral("(") {
		list, err := parseExprList(c, ")")
		if err != nil {
			return nil, err
		}
		args = list.Values
	} else {
		for {
			e, err := ParseExpr(c)
			if err != nil {
				if len(args) == 0 {
					return nil, err
				}
				break
			}
			args = append(args, e)
			m := c.Mark()
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral(",") {
				c.Reset(m)
				break
			}
			lexer.SkipSpace(c)
		}
	}
	return &ast.Many1{Lambda: lambda, Args: args}, nil
}
