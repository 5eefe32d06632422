// Package strlit parses string, regex, and bareword literals: single- and
// double-quoted strings (with `\n`/`\t`/`\'`/`\"`/`\\`/`\$`/`\uXXXX`
// escapes and, for double-quoted strings, `${…}`/`$var` interpolation),
// `/…/` regular expressions, and unquoted bareword strings.
//
// Grounded on original_source/puppet_parser's string-literal combinators
// (single_quoted/double_quoted) and adapted to the Cursor/Mark/Reset
// backtracking model used throughout internal/lexer.
package strlit

import (
	"strconv"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

// ExprParser lets strlit call back into the expression grammar for
// `${…}` interpolation without creating an import cycle; internal/parser
// supplies the real implementation.
type ExprParser func(c *lexer.Cursor) (ast.Expr, error)

// SingleQuoted parses a `'…'` literal. Only `\'` and `\\` are recognized
// escapes; every other backslash is literal, matching the manifest
// language's narrower single-quote escaping rule.
func SingleQuoted(c *lexer.Cursor) (*ast.StringExpr, bool) {
	m := c.Mark()
	start := c.Location()
	if !c.ConsumeLiteral("'") {
		return nil, false
	}
	var frags []ast.StringFragment
	for {
		b, ok := c.PeekByte()
		if !ok {
			c.Reset(m)
			return nil, false
		}
		if b == '\'' {
			c.Advance(1)
			break
		}
		if b == '\\' {
			next, ok := peekAt(c, 1)
			if ok && (next == '\'' || next == '\\') {
				fs := c.Location()
				c.Advance(2)
				frags = append(frags, ast.StringFragment{
					Kind: ast.FragmentEscaped, Char: rune(next),
					Range: srcrange.Range{Start: fs, End: c.Location()},
				})
				continue
			}
		}
		fs := c.Location()
		r, _ := c.AdvanceRune()
		frags = append(frags, ast.StringFragment{
			Kind: ast.FragmentLiteral, Literal: string(r),
			Range: srcrange.Range{Start: fs, End: c.Location()},
		})
	}
	se := &ast.StringExpr{
		Kind:   ast.StringSingleQuoted,
		Single: mergeLiterals(frags),
	}
	se.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return se, true
}

// DoubleQuoted parses a `"…"` literal, delegating `${…}` interpolation to
// parseExpr and treating a bare `$name` as sugar for `${name}`.
func DoubleQuoted(c *lexer.Cursor, parseExpr ExprParser) (*ast.StringExpr, bool, error) {
	m := c.Mark()
	start := c.Location()
	if !c.ConsumeLiteral("\"") {
		return nil, false, nil
	}
	var frags []ast.DoubleQuotedFragment
	for {
		b, ok := c.PeekByte()
		if !ok {
			c.Reset(m)
			return nil, false, nil
		}
		if b == '"' {
			c.Advance(1)
			break
		}
		if b == '\\' {
			next, ok := peekAt(c, 1)
			if ok {
				fs := c.Location()
				c.Advance(2)
				ch, err := decodeEscape(c, next)
				if err != nil {
					return nil, true, err
				}
				frags = append(frags, ast.DoubleQuotedFragment{Literal: &ast.StringFragment{
					Kind: ast.FragmentEscaped, Char: ch,
					Range: srcrange.Range{Start: fs, End: c.Location()},
				}})
				continue
			}
		}
		if b == '$' {
			expr, consumed, err := parseInterpolation(c, parseExpr)
			if err != nil {
				return nil, true, err
			}
			if consumed {
				frags = append(frags, ast.DoubleQuotedFragment{Expression: expr})
				continue
			}
		}
		fs := c.Location()
		r, _ := c.AdvanceRune()
		if n := len(frags); n > 0 && frags[n-1].Literal != nil && frags[n-1].Literal.Kind == ast.FragmentLiteral {
			frags[n-1].Literal.Literal += string(r)
			frags[n-1].Literal.Range.End = c.Location()
			continue
		}
		frags = append(frags, ast.DoubleQuotedFragment{Literal: &ast.StringFragment{
			Kind: ast.FragmentLiteral, Literal: string(r),
			Range: srcrange.Range{Start: fs, End: c.Location()},
		}})
	}
	de := &ast.StringExpr{
		Kind:   ast.StringDoubleQuoted,
		Double: frags,
	}
	de.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return de, true, nil
}

func parseInterpolation(c *lexer.Cursor, parseExpr ExprParser) (ast.Expr, bool, error) {
	m := c.Mark()
	c.Advance(1) // '$'
	if c.ConsumeLiteral("{") {
		expr, err := parseExpr(c)
		if err != nil {
			c.Reset(m)
			return nil, false, err
		}
		if !c.ConsumeLiteral("}") {
			c.Reset(m)
			return nil, false, nil
		}
		if t, isTerm := expr.(*ast.Term); isTerm && t.Kind == ast.TermIdentifier {
			t.Kind, t.Variable, t.Identifier = ast.TermVariable, &ast.Variable{Identifier: t.Identifier}, nil
		}
		return expr, true, nil
	}
	name, ok := lexer.Ident(c)
	if !ok {
		c.Reset(m)
		return nil, false, nil
	}
	start := m.Location()
	term := &ast.Term{
		Kind: ast.TermVariable,
		Variable: &ast.Variable{
			Identifier: &ast.LowerIdentifier{Name: []string{name}},
		},
	}
	term.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return term, true, nil
}

func decodeEscape(c *lexer.Cursor, first byte) (rune, error) {
	switch first {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '$':
		return '$', nil
	case 's':
		return ' ', nil
	case 'u':
		digits := c.Rest()
		if len(digits) >= 4 {
			v, err := strconv.ParseInt(digits[:4], 16, 32)
			if err == nil {
				c.Advance(4)
				return rune(v), nil
			}
		}
		return 'u', nil
	default:
		return rune(first), nil
	}
}

func peekAt(c *lexer.Cursor, offset int) (byte, bool) {
	if c.Offset+offset >= len(c.Src) {
		return 0, false
	}
	return c.Src[c.Offset+offset], true
}

func mergeLiterals(frags []ast.StringFragment) []ast.StringFragment {
	var out []ast.StringFragment
	for _, f := range frags {
		if f.Kind == ast.FragmentLiteral && len(out) > 0 && out[len(out)-1].Kind == ast.FragmentLiteral {
			last := &out[len(out)-1]
			last.Literal += f.Literal
			last.Range.End = f.Range.End
			continue
		}
		out = append(out, f)
	}
	return out
}

// Bareword parses an unquoted identifier-shaped string used as a resource
// title, map key, or attribute name in contexts where quoting is optional.
func Bareword(c *lexer.Cursor) (string, bool) {
	name, ok := lexer.Ident(c)
	if !ok {
		return "", false
	}
	return name, true
}

// Regex parses a `/…/` literal; `\/` escapes a literal slash and is stored
// in Data as a plain `/`, while every other backslash sequence is kept as
// written for the regexp compiler.
func Regex(c *lexer.Cursor) (*ast.Regexp, bool) {
	m := c.Mark()
	start := c.Location()
	if !c.ConsumeLiteral("/") {
		return nil, false
	}
	var sb strings.Builder
	for {
		b, ok := c.PeekByte()
		if !ok {
			c.Reset(m)
			return nil, false
		}
		if b == '/' {
			c.Advance(1)
			break
		}
		if b == '\\' {
			next, ok := peekAt(c, 1)
			if ok && next == '/' {
				sb.WriteByte('/')
				c.Advance(2)
				continue
			}
		}
		r, _ := c.AdvanceRune()
		sb.WriteRune(r)
	}
	re := &ast.Regexp{
		Data: sb.String(),
	}
	re.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return re, true
}
