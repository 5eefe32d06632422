package parser

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
	"github.com/lindstrom-oss/puplint/internal/typespec"
)

// ParseManifest parses a whole `.pp` file into its top-level declarations.
func ParseManifest(src string) (*ast.Manifest, error) {
	c := lexer.New(src)
	m := &ast.Manifest{}
	for {
		leading := lexer.SkipSpace(c)
		if c.EOF() {
			m.Trailing = leading
			break
		}
		tl, err := parseToplevel(c, leading)
		if err != nil {
			return nil, err
		}
		m.Toplevels = append(m.Toplevels, tl)
	}
	return m, nil
}

func parseToplevel(c *lexer.Cursor, leading []ast.Comment) (ast.TopLevel, error) {
	start := c.Location()

	if lexer.SpacedWord(c, "class") {
		return parseClass(c, start, leading)
	}
	if lexer.SpacedWord(c, "define") {
		return parseDefinition(c, start, leading)
	}
	if lexer.SpacedWord(c, "plan") {
		return parsePlan(c, start, leading)
	}
	if lexer.SpacedWord(c, "function") {
		return parseFunction(c, start, leading)
	}
	if lexer.SpacedWord(c, "type") {
		return parseTypeDef(c, start, leading)
	}

	return nil, recoverableAt(srcrange.Range{Start: start, End: c.Location()},
		"expected a top-level declaration (class, define, plan, function, or type)")
}

func parseHeaderNameAndArgs(c *lexer.Cursor) (*ast.LowerIdentifier, *ast.List[ast.Argument], *ast.LowerIdentifier, error) {
	lexer.SkipSpace(c)
	segs, toplevel, ok := lexer.NamespacedIdent(c)
	if !ok || !lexer.IsLowerStart(segs[0]) {
		return nil, nil, nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected a lowercase name")
	}
	ident := &ast.LowerIdentifier{Name: segs, IsToplevel: toplevel}

	var args *ast.List[ast.Argument]
	m := c.Mark()
	lexer.SkipSpace(c)
	if c.ConsumeLiteral("(") {
		a, err := ParseArgumentList(c)
		if err != nil {
			return nil, nil, nil, Protect(err)
		}
		args = a
	} else {
		c.Reset(m)
	}

	var inherits *ast.LowerIdentifier
	m2 := c.Mark()
	lexer.SkipSpace(c)
	if lexer.SpacedWord(c, "inherits") {
		lexer.SkipSpace(c)
		pSegs, pToplevel, ok := lexer.NamespacedIdent(c)
		if !ok {
			return nil, nil, nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected a parent class name after 'inherits'")
		}
		inherits = &ast.LowerIdentifier{Name: pSegs, IsToplevel: pToplevel}
	} else {
		c.Reset(m2)
	}

	return ident, args, inherits, nil
}

func parseClass(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.TopLevel, error) {
	ident, args, inherits, err := parseHeaderNameAndArgs(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening class body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	cd := &ast.ClassDef{Identifier: ident, Arguments: args, Inherits: inherits, Body: body, LeadingComments: leading}
	cd.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return cd, nil
}

func parseDefinition(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.TopLevel, error) {
	ident, args, _, err := parseHeaderNameAndArgs(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening definition body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	dd := &ast.DefinitionDef{Identifier: ident, Arguments: args, Body: body, LeadingComments: leading}
	dd.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return dd, nil
}

func parsePlan(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.TopLevel, error) {
	ident, args, _, err := parseHeaderNameAndArgs(c)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening plan body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	pd := &ast.PlanDef{Identifier: ident, Arguments: args, Body: body, LeadingComments: leading}
	pd.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return pd, nil
}

func parseFunction(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.TopLevel, error) {
	ident, args, _, err := parseHeaderNameAndArgs(c)
	if err != nil {
		return nil, err
	}
	var ret ast.TypeSpec
	m := c.Mark()
	lexer.SkipSpace(c)
	if c.ConsumeLiteral(">>") {
		lexer.SkipSpace(c)
		rt, err := typespec.Parse(c, ParseExpr)
		if err != nil {
			return nil, Protect(err)
		}
		ret = rt
	} else {
		c.Reset(m)
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '{' opening function body")
	}
	body, err := ParseStatementsUntil(c, "}")
	if err != nil {
		return nil, Protect(err)
	}
	fd := &ast.FunctionDef{Identifier: ident, Arguments: args, ReturnType: ret, Body: body, LeadingComments: leading}
	fd.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return fd, nil
}

func parseTypeDef(c *lexer.Cursor, start srcrange.Location, leading []ast.Comment) (ast.TopLevel, error) {
	lexer.SkipSpace(c)
	segs, _, ok := lexer.NamespacedIdent(c)
	if !ok || !lexer.IsUpperStart(segs[0]) {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected a capitalized type name after 'type'")
	}
	ident := &ast.CamelIdentifier{Name: segs}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("=") {
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected '=' in type alias")
	}
	lexer.SkipSpace(c)
	value, err := typespec.Parse(c, ParseExpr)
	if err != nil {
		return nil, Protect(err)
	}
	td := &ast.TypeDef{Identifier: ident, Value: value, LeadingComments: leading}
	td.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return td, nil
}
