package parser

import (
	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
	"github.com/lindstrom-oss/puplint/internal/typespec"
)

// ParseArgument parses one `[Type] $name [= default]` parameter, used by
// class/definition/plan/function headers and by lambda parameter lists.
func ParseArgument(c *lexer.Cursor) (ast.Argument, error) {
	leading := lexer.SkipSpace(c)
	start := c.Location()

	var ts ast.TypeSpec
	m := c.Mark()
	if lexer.IsUpperStart(peekWord(c)) {
		t, err := typespec.Parse(c, ParseExpr)
		if err == nil {
			ts = t
			lexer.SkipSpace(c)
		} else {
			c.Reset(m)
		}
	}

	if !c.ConsumeLiteral("$") {
		return ast.Argument{}, recoverableAt(srcrange.Range{Start: start, End: c.Location()}, "expected '$' introducing an argument name")
	}
	name, ok := lexer.Ident(c)
	if !ok {
		return ast.Argument{}, failureAt(srcrange.Range{Start: start, End: c.Location()}, "expected an argument name after '$'")
	}

	var def ast.Expr
	mm := c.Mark()
	lexer.SkipSpace(c)
	if c.ConsumeLiteral("=") && !c.HasPrefix("=") {
		lexer.SkipSpace(c)
		d, err := ParseExpr(c)
		if err != nil {
			return ast.Argument{}, Protect(err)
		}
		def = d
	} else {
		c.Reset(mm)
	}

	return ast.Argument{
		TypeSpec:        ts,
		Name:            name,
		Default:         def,
		LeadingComments: leading,
		Range:           srcrange.Range{Start: start, End: c.Location()},
	}, nil
}

// ParseArgumentList parses a parenthesized `(…)` argument list; the
// opening `(` must already be consumed by the caller.
func ParseArgumentList(c *lexer.Cursor) (*ast.List[ast.Argument], error) {
	out := &ast.List[ast.Argument]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral(")") {
			out.LastComment = leading
			break
		}
		arg, err := ParseArgument(c)
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, arg)
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(")") {
			break
		}
		return nil, failureAt(srcrange.Range{Start: c.Location(), End: c.Location()}, "expected ',' or ')' closing argument list")
	}
	return out, nil
}
