// Package typespec parses type-specification syntax: bare type names
// (`String`, `Integer`), parameterized types (`Array[String]`,
// `Integer[1, 10]`), `Optional[T]`, `Struct[{ key => T }]`, and references
// to user-defined types/resources (`My::Type`).
//
// Grounded on original_source/src/puppet_lang/typing.rs for the variant
// list and original_source/puppet_parser's typing combinators for
// precedence (a bare name first, then an optional bracketed parameter
// list).
package typespec

import (
	"fmt"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

// ExprParser lets Parse call back into the expression grammar for a type's
// literal argument list (e.g. `Integer[1, 10]`), mirroring strlit.ExprParser.
type ExprParser func(c *lexer.Cursor) (ast.Expr, error)

var simpleNames = map[string]ast.SimpleTypeKind{
	"Any":      ast.TypeAny,
	"String":   ast.TypeString,
	"Integer":  ast.TypeInteger,
	"Float":    ast.TypeFloat,
	"Numeric":  ast.TypeFloat,
	"Boolean":  ast.TypeBoolean,
	"Array":    ast.TypeArray,
	"Hash":     ast.TypeHash,
	"Undef":    ast.TypeUndef,
	"Pattern":  ast.TypePattern,
	"Regexp":   ast.TypeRegex,
	"Enum":     ast.TypeEnum,
	"Variant":  ast.TypeVariant,
	"Tuple":    ast.TypeTuple,
	"Default":  ast.TypeDefault,
	"Callable": ast.TypeCallable,
	"Sensitive": ast.TypeSensitiveType,
}

// Parse parses one type specification at the cursor.
func Parse(c *lexer.Cursor, parseExpr ExprParser) (ast.TypeSpec, error) {
	m := c.Mark()
	start := c.Location()
	name, ok := lexer.Ident(c)
	if !ok || !lexer.IsUpperStart(name) {
		c.Reset(m)
		return nil, fmt.Errorf("typespec: expected a capitalized type name at %s", start)
	}

	if name == "Optional" {
		return parseOptional(c, start, parseExpr)
	}
	if name == "Struct" {
		return parseStruct(c, start, parseExpr)
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

	kind, isSimple := simpleNames[segments[0]]
	if !isSimple || len(segments) > 1 {
		ref := &ast.TypeReference{Identifier: &ast.CamelIdentifier{Name: segments}}
		ref.SetRange(srcrange.Range{Start: start, End: c.Location()})
		return ref, nil
	}

	st := &ast.SimpleType{Kind: kind}
	lexer.SkipSpace(c)
	if c.ConsumeLiteral("[") {
		params, args, err := parseBracket(c, parseExpr)
		if err != nil {
			return nil, err
		}
		st.Params = params
		st.Args = args
	}
	st.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return st, nil
}

func parseOptional(c *lexer.Cursor, start srcrange.Location, parseExpr ExprParser) (ast.TypeSpec, error) {
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("[") {
		return nil, fmt.Errorf("typespec: Optional requires a bracketed inner type at %s", c.Location())
	}
	lexer.SkipSpace(c)
	inner, err := Parse(c, parseExpr)
	if err != nil {
		return nil, err
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("]") {
		return nil, fmt.Errorf("typespec: expected ']' closing Optional at %s", c.Location())
	}
	opt := &ast.OptionalType{Inner: inner}
	opt.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return opt, nil
}

func parseStruct(c *lexer.Cursor, start srcrange.Location, parseExpr ExprParser) (ast.TypeSpec, error) {
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("[") {
		return nil, fmt.Errorf("typespec: Struct requires a bracketed '{…}' body at %s", c.Location())
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("{") {
		return nil, fmt.Errorf("typespec: expected '{' opening Struct body at %s", c.Location())
	}
	keys := &ast.List[ast.StructKey]{}
	for {
		leading := lexer.SkipSpace(c)
		if c.ConsumeLiteral("}") {
			keys.LastComment = leading
			break
		}
		keyStart := c.Location()
		optional := false
		if c.ConsumeLiteral("Optional[") {
			optional = true
		}
		name, err := parseStructKeyName(c)
		if err != nil {
			return nil, err
		}
		if optional {
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("]") {
				return nil, fmt.Errorf("typespec: expected ']' closing Optional struct key at %s", c.Location())
			}
		}
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral("=>") {
			return nil, fmt.Errorf("typespec: expected '=>' after Struct key at %s", c.Location())
		}
		lexer.SkipSpace(c)
		valueType, err := Parse(c, parseExpr)
		if err != nil {
			return nil, err
		}
		keys.Values = append(keys.Values, ast.StructKey{
			Name: name, Optional: optional, Value: valueType,
			Range: srcrange.Range{Start: keyStart, End: c.Location()},
		})
		lexer.SkipSpace(c)
		if !c.ConsumeLiteral(",") {
			lexer.SkipSpace(c)
			if !c.ConsumeLiteral("}") {
				return nil, fmt.Errorf("typespec: expected ',' or '}' in Struct body at %s", c.Location())
			}
			break
		}
	}
	lexer.SkipSpace(c)
	if !c.ConsumeLiteral("]") {
		return nil, fmt.Errorf("typespec: expected ']' closing Struct at %s", c.Location())
	}
	st := &ast.StructType{Keys: keys}
	st.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return st, nil
}

func parseStructKeyName(c *lexer.Cursor) (string, error) {
	if c.ConsumeLiteral("'") {
		start := c.Offset
		for {
			b, ok := c.PeekByte()
			if !ok {
				return "", fmt.Errorf("typespec: unterminated Struct key string at %s", c.Location())
			}
			if b == '\'' {
				name := c.Src[start:c.Offset]
				c.Advance(1)
				return name, nil
			}
			c.Advance(1)
		}
	}
	name, ok := lexer.Ident(c)
	if !ok {
		return "", fmt.Errorf("typespec: expected a Struct key at %s", c.Location())
	}
	return name, nil
}

func parseBracket(c *lexer.Cursor, parseExpr ExprParser) ([]ast.TypeSpec, []ast.Expr, error) {
	var params []ast.TypeSpec
	var args []ast.Expr
	for {
		lexer.SkipSpace(c)
		m := c.Mark()
		if t, err := Parse(c, parseExpr); err == nil && lexer.IsUpperStart(firstIdentAt(c.Src, m.Offset)) {
			params = append(params, t)
		} else {
			c.Reset(m)
			e, err := parseExpr(c)
			if err != nil {
				return nil, nil, fmt.Errorf("typespec: expected a type or literal argument at %s: %w", c.Location(), err)
			}
			args = append(args, e)
		}
		lexer.SkipSpace(c)
		if c.ConsumeLiteral(",") {
			continue
		}
		if c.ConsumeLiteral("]") {
			break
		}
		return nil, nil, fmt.Errorf("typespec: expected ',' or ']' at %s", c.Location())
	}
	return params, args, nil
}

func firstIdentAt(src string, offset int) string {
	i := offset
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	start := i
	for i < len(src) && ((src[i] >= 'a' && src[i] <= 'z') || (src[i] >= 'A' && src[i] <= 'Z') || src[i] == '_' || (src[i] >= '0' && src[i] <= '9')) {
		i++
	}
	return src[start:i]
}
