package parser

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

// ParseStatementsUntil parses statements until the closing delimiter
// (typically "}") is reached, returning the sequence plus any comments
// trailing the last statement.
func ParseStatementsUntil(c *lexer.Cursor, closing string) (*ast.List[ast.Statement], error) {
	out := &ast.List[ast.Statement]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral(closing) {
			out.LastComment = leading
			break
		}
		if c.EOF() {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "unexpected end of input, expected %q", closing)
		}
		stmt, err := ParseStatement(c, leading)
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, stmt)
	}
	return out, nil
}

// ParseStatement parses exactly one statement. leadingComments were
// already consumed by the caller's whitespace skip and are attached to
// whichever statement variant is produced.
func ParseStatement(c *lexer.Cursor, leadingComments []ast.Comment) (ast.Statement, error) {
	start := c.Location()

	if lexer.SpacedWord(c, "if") {
		return parseIfElse(c, start, leadingComments)
	}
	if lexer.SpacedWord(c, "unless") {
		return parseUnless(c, start, leadingComments)
	}
	if lexer.SpacedWord(c, "case") {
		return parseCase(c, start, leadingComments)
	}

	if stmt, ok, err := tryParseResourceLike(c, start, leadingComments); err != nil {
		return nil, err
	} else if ok {
		return stmt, nil
	}

	expr, err := ParseExpr(c)
	if err != nil {
		return nil, err
	}
	s := &ast.ExpressionStatement{Expr: expr, LeadingComments: leadingComments}
	s.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return s, nil
}

func parseIfElse(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.Statement, error) {
	lexer.SkipSpace(c)
	cond, err := ParseExpr(c)
	if err != nil {
		return nil, Protect(err)
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening if body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}

	stmt := &ast.IfElseStatement{Condition: cond, Body: body, LeadingComments: leading}

	for {
		m := c.Mark()
		lexer.SkipSpace(c)
		if lexer.SpacedWord(c, "elsif") {
			elStart := c.Location()
			lexer.SkipSpace(c)
			econd, err := ParseExpr(c)
			if err != nil {
				return nil, Protect(err)
			}
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("{") {
				return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening elsif body")
			}
			ebody, err := ParseStatementsUntil(c, "}")
			if err != nil {
				return nil, Protect(err)
			}
			stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{
				Condition: econd, Body: ebody,
				Range: srcrange.Range{Start: elStart, End: c.Location()},
			})
			continue
		}
		if lexer.SpacedWord(c, "else") {
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("{") {
				return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening else body")
			}
			ebody, err := ParseStatementsUntil(c, "}")
			if err != nil {
				return nil, Protect(err)
			}
			stmt.Else = ebody
			break
		}
		c.Reset(m)
		break
	}
	stmt.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return stmt, nil
}

func parseUnless(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.Statement, error) {
	lexer.SkipSpace(c)
	cond, err := ParseExpr(c)
	if err != nil {
		return nil, Protect(err)
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening unless body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	stmt := &ast.UnlessStatement{Condition: cond, Body: body, LeadingComments: leading}

	m := c.Mark()
	lexer.SkipSpace(c)
	if lexer.SpacedWord(c, "else") {
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("{") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening unless-else body")
		}
		ebody, err := ParseStatementsUntil(c, "}")
		if err != nil {
			return nil, Protect(err)
		}
		stmt.Else = ebody
	} else {
		c.Reset(m)
	}
	stmt.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return stmt, nil
}

func parseCase(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.Statement, error) {
	lexer.SkipSpace(c)
	cond, err := ParseExpr(c)
	if err != nil {
		return nil, Protect(err)
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening case body")
	}
	var elements []ast.CaseElement
	for {
		leadingElt := lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			break
		}
		eltStart := c.Location()
		matches, err := parseCaseVariantList(c)
		if err != nil {
			return nil, Protect(err)
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral(":") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ':' after case match list")
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("{") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening case-element body")
		}
		body, err := ParseStatementsUntil(c, "}")
		if err != nil {
			return nil, Protect(err)
		}
		elements = append(elements, ast.CaseElement{
			Matches: matches, Body: body, Comment: leadingElt,
			Range: srcrange.Range{Start: eltStart, End: c.Location()},
		})
	}
	stmt := &ast.CaseStatement{Condition: cond, Elements: elements, LeadingComments: leading}
	stmt.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return stmt, nil
}

func parseCaseVariantList(c *lexer.Cursor) ([]ast.CaseVariant, error) {
	var out []ast.CaseVariant
	for {
		v, err := parseCaseVariant(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		m := c.Mark()
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			lexer.SkipSpace(c)
			continue
		}
		c.Reset(m)
		break
	}
	return out, nil
}

// --- resources & relations ----------------------------------------------

// tryParseResourceLike attempts ResourceSet, ResourceDefaults, and
// RelationList; returning ok=false (with the cursor reset) lets the caller
// fall back to treating the input as a bare expression statement.
func tryParseResourceLike(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.Statement, bool, error) {
	m := c.Mark()

	virtual, exported := false, false
	if c.ConsumeLiteral("@@") {
		exported = true
	} else if c.ConsumeLiteral("@") {
		virtual = true
	}

	typeExpr, err := ParseExpr(c)
	if err != nil {
		c.Reset(m)
		return nil, false, nil
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		c.Reset(m)
		return nil, false, nil
	}

	rs, isDefaults, err := parseResourceBody(c, typeExpr, virtual, exported, start, leading)
	if err != nil {
		return nil, true, Protect(err)
	}
	if isDefaults {
		return rs, true, nil
	}
	resourceSet := rs.(*ast.ResourceSetStatement)

	head := ast.RelationElt{ResourceSet: resourceSet, Range: resourceSet.SrcRange()}
	if relKind, ok := peekRelationArrow(c); ok {
		return parseRelationTail(c, start, leading, head, relKind)
	}
	return resourceSet, true, nil
}

func peekRelationArrow(c *lexer.Cursor) (ast.RelationKind, bool) {
	m := c.Mark()
	lexer.SkipSpace(c)
	defer c.Reset(m)
	switch {
	case c.HasPrefix("->"):
		return ast.RelationBefore, true
	case c.HasPrefix("~>"):
		return ast.RelationNotify, true
	case c.HasPrefix("<-"):
		return ast.RelationRequire, true
	case c.HasPrefix("<~"):
		return ast.RelationSubscribe, true
	}
	return 0, false
}

var arrowText = map[ast.RelationKind]string{
	ast.RelationBefore:    "->",
	ast.RelationNotify:    "~>",
	ast.RelationRequire:   "<-",
	ast.RelationSubscribe: "<~",
}

func parseRelationTail(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment, head ast.RelationElt, firstKind ast.RelationKind) (ast.Statement, bool, error) {
	stmt := &ast.RelationListStatement{Head: head, LeadingComments: leading}
	kind := firstKind
	for {
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral(arrowText[kind]) {
			break
		}
		lexer.SkipSpace(c)
		elt, err := parseRelationElt(c)
		if err != nil {
			return nil, true, Protect(err)
		}
		stmt.Tail = append(stmt.Tail, ast.RelationTail{Kind: kind, Elt: elt})
		nextKind, ok := peekRelationArrow(c)
		if !ok {
			break
		}
		kind = nextKind
	}
	stmt.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return stmt, true, nil
}

func parseRelationElt(c *lexer.Cursor) (ast.RelationElt, error) {
	start := c.Location()
	if c.ConsumeLiteral("[") {
		list, err := parseAccessorList(c)
		if err != nil {
			return ast.RelationElt{}, err
		}
		return ast.RelationElt{Array: list, Range: srcrange.Range{Start: start, End: c.Location()}}, nil
	}
	typeExpr, err := ParseExpr(c)
	if err != nil {
		return ast.RelationElt{}, err
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return ast.RelationElt{}, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening a resource reference")
	}
	rs, isDefaults, err := parseResourceBody(c, typeExpr, false, false, start, nil)
	if err != nil {
		return ast.RelationElt{}, err
	}
	if isDefaults {
		return ast.RelationElt{}, failureAt(srcrange.Range{Start: start, End: c.Location()}, "resource defaults cannot appear in a relation chain")
	}
	return ast.RelationElt{ResourceSet: rs.(*ast.ResourceSetStatement), Range: srcrange.Range{Start: start, End: c.Location()}}, nil
}

// parseResourceBody parses the `{ … }` body following a Type, distinguishing
// `title: attr => value, …; title2: …` (a ResourceSetStatement) from bare
// `attr => value` pairs (a ResourceDefaultsStatement) by whether the first
// entry is followed by ':' or '=>'.
func parseResourceBody(c *lexer.Cursor, typeExpr ast.Expr, virtual, exported bool, start srcrange.Location, leading []ast.Comment) (ast.Statement, bool, error) {
	firstLeading := lexer.SkipSpace(c)
	if c.ConsumeLiteral("}") {
		rs := &ast.ResourceSetStatement{
			IsVirtual: virtual, IsExported: exported, Type: typeExpr,
			Resources:       &ast.List[ast.Resource]{LastComment: firstLeading},
			LeadingComments: leading,
		}
		rs.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return rs, false, nil
	}

	firstKeyStart := c.Location()
	firstKey, err := ParseExpr(c)
	if err != nil {
		return nil, false, err
	}
	lexer.SkipSpace(c)

	if c.ConsumeLiteral(":") {
		resources := &ast.List[ast.Resource]{}
		title := firstKey
		for {
			attrs, terminator, err := parseResourceAttributesUntil(c)
			if err != nil {
				return nil, false, err
			}
			resources.Values = append(resources.Values, ast.Resource{
				Title: title, Attributes: attrs, Comment: firstLeading,
				Range: srcrange.Range{Start: firstKeyStart, End: c.Location()},
			})
			firstLeading = nil
			if terminator == "}" {
				break
			}
			lexer.SkipSpace(c)
			if c.ConsumeLiteral("}") {
				break
			}
			titleStart := c.Location()
			t, err := ParseExpr(c)
			if err != nil {
				return nil, false, err
			}
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral(":") {
				return nil, false, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ':' after resource title")
			}
			title = t
			firstKeyStart = titleStart
		}
		rs := &ast.ResourceSetStatement{
			IsVirtual: virtual, IsExported: exported, Type: typeExpr,
			Resources: resources, LeadingComments: leading,
		}
		rs.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return rs, false, nil
	}

	if !c.ConsumeLiteral("=>") {
		return nil, false, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ':' (resource title) or '=>' (default attribute)")
	}
	lexer.SkipSpace(c)
	firstValue, err := ParseExpr(c)
	if err != nil {
		return nil, false, Protect(err)
	}
	attrs := &ast.List[ast.ResourceAttribute]{}
	attrs.Values = append(attrs.Values, ast.ResourceAttribute{
		Kind: ast.ResourceAttributeNormal, Key: firstKey, Value: firstValue, Comment: firstLeading,
		Range: srcrange.Range{Start: firstKeyStart, End: c.Location()},
	})
	lexer.SkipSpace(c)
	if c.ConsumeLiteral(",") {
		rest, err := parseResourceAttributesRest(c)
		if err != nil {
			return nil, false, err
		}
		attrs.Values = append(attrs.Values, rest.Values...)
		attrs.LastComment = rest.LastComment
	} else {
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("}") {
			return nil, false, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or '}' closing resource defaults")
		}
	}
	var camel *ast.CamelIdentifier
	if ident, ok := typeExpr.(*ast.Term); ok && ident.Kind == ast.TermIdentifier {
		camel = &ast.CamelIdentifier{Name: ident.Identifier.Name}
	} else if ok && ident.Kind == ast.TermTypeSpecification {
		if ref, isRef := ident.TypeSpec.(*ast.TypeReference); isRef {
			camel = ref.Identifier
		}
	}
	if camel == nil {
		return nil, false, failureAt(srcrange.Range{Start: start, End: c.Location()}, "resource defaults require a bare type name")
	}
	rd := &ast.ResourceDefaultsStatement{Type: camel, Attributes: attrs, LeadingComments: leading}
	rd.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return rd, true, nil
}

// parseResourceAttributesUntil parses comma-separated key => value pairs for
// one resource title, stopping at the ';' that introduces the next title or
// the '}' that closes the whole resource-set body. The consumed terminator
// is returned so the caller knows whether more titles follow.
func parseResourceAttributesUntil(c *lexer.Cursor) (*ast.List[ast.ResourceAttribute], string, error) {
	out := &ast.List[ast.ResourceAttribute]{}
	leading := lexer.SkipSpace(c)
	if c.ConsumeLiteral("}") {
		out.LastComment = leading
		return out, "}", nil
	}
	if c.ConsumeLiteral(";") {
		out.LastComment = leading
		return out, ";", nil
	}
	for {
		attrStart := c.Location()
		if c.ConsumeLiteral("*") {
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("=>") {
				return nil, "", failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=>' after '*' spread attribute")
			}
			lexer.SkipSpace(c)
			val, err := ParseExpr(c)
			if err != nil {
				return nil, "", Protect(err)
			}
			out.Values = append(out.Values, ast.ResourceAttribute{
				Kind: ast.ResourceAttributeSpread, Value: val, Comment: leading,
				Range: srcrange.Range{Start: attrStart, End: c.Location()},
			})
		} else {
			key, err := ParseExpr(c)
			if err != nil {
				return nil, "", err
			}
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("=>") {
				return nil, "", failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=>' in resource attribute")
			}
			lexer.SkipSpace(c)
			val, err := ParseExpr(c)
			if err != nil {
				return nil, "", Protect(err)
			}
			out.Values = append(out.Values, ast.ResourceAttribute{
				Kind: ast.ResourceAttributeNormal, Key: key, Value: val, Comment: leading,
				Range: srcrange.Range{Start: attrStart, End: c.Location()},
			})
		}
		leading = nil
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			leading = lexer.SkipSpace(c)
			if c.ConsumeLiteral("}") {
				out.LastComment = leading
				return out, "}", nil
			}
			if c.ConsumeLiteral(";") {
				out.LastComment = leading
				return out, ";", nil
			}
			continue
		}
		if c.ConsumeLiteral("}") {
			return out, "}", nil
		}
		if c.ConsumeLiteral(";") {
			return out, ";", nil
		}
		return nil, "", failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',', ';' or '}' closing resource attributes")
	}
}

func parseResourceAttributesRest(c *lexer.Cursor) (*ast.List[ast.ResourceAttribute], error) {
	out := &ast.List[ast.ResourceAttribute]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			out.LastComment = leading
			break
		}
		attrStart := c.Location()
		key, err := ParseExpr(c)
		if err != nil {
			return nil, err
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("=>") {
			return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=>' in resource attribute")
		}
		lexer.SkipSpace(c)
		val, err := ParseExpr(c)
		if err != nil {
			return nil, Protect(err)
		}
		out.Values = append(out.Values, ast.ResourceAttribute{
			Kind: ast.ResourceAttributeNormal, Key: key, Value: val, Comment: leading,
			Range: srcrange.Range{Start: attrStart, End: c.Location()},
		})
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or '}' closing resource attributes")
	}
	return out, nil
}
