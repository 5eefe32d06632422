package typespec_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
	"github.com/lindstrom-oss/puplint/internal/typespec"
)

// literalIntExpr is a minimal ExprParser stub good enough for the integer
// literal arguments type specs like Integer[1, 10] carry; it does not need
// the full expression grammar from internal/parser.
func literalIntExpr(c *lexer.Cursor) (ast.Expr, error) {
	lexer.SkipSpace(c)
	start := c.Location()
	s, ok := lexer.Integer(c)
	if !ok {
		return nil, fmt.Errorf("test parseExpr: expected an integer at %s", c.Location())
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	t := &ast.Term{Kind: ast.TermInteger, IntegerValue: v}
	t.SetRange(srcrange.Range{Start: start, End: c.Location()})
	return t, nil
}

func TestParseBareSimpleType(t *testing.T) {
	c := lexer.New("String")
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	st, ok := ts.(*ast.SimpleType)
	if !ok || st.Kind != ast.TypeString {
		t.Fatalf("expected SimpleType String, got %#v", ts)
	}
	if len(st.Params) != 0 || len(st.Args) != 0 {
		t.Errorf("expected no params/args, got %+v", st)
	}
}

func TestParseParameterizedArrayType(t *testing.T) {
	c := lexer.New("Array[String]")
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	st, ok := ts.(*ast.SimpleType)
	if !ok || st.Kind != ast.TypeArray {
		t.Fatalf("expected SimpleType Array, got %#v", ts)
	}
	if len(st.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(st.Params))
	}
	inner, ok := st.Params[0].(*ast.SimpleType)
	if !ok || inner.Kind != ast.TypeString {
		t.Errorf("param = %#v", st.Params[0])
	}
}

func TestParseIntegerRangeArgs(t *testing.T) {
	c := lexer.New("Integer[1, 10]")
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	st, ok := ts.(*ast.SimpleType)
	if !ok || st.Kind != ast.TypeInteger {
		t.Fatalf("expected SimpleType Integer, got %#v", ts)
	}
	if len(st.Args) != 2 {
		t.Fatalf("expected 2 literal args, got %d", len(st.Args))
	}
	lo := st.Args[0].(*ast.Term)
	hi := st.Args[1].(*ast.Term)
	if lo.IntegerValue != 1 || hi.IntegerValue != 10 {
		t.Errorf("args = %d, %d, want 1, 10", lo.IntegerValue, hi.IntegerValue)
	}
}

func TestParseOptionalType(t *testing.T) {
	c := lexer.New("Optional[String]")
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	opt, ok := ts.(*ast.OptionalType)
	if !ok {
		t.Fatalf("expected OptionalType, got %#v", ts)
	}
	inner, ok := opt.Inner.(*ast.SimpleType)
	if !ok || inner.Kind != ast.TypeString {
		t.Errorf("Inner = %#v", opt.Inner)
	}
}

func TestParseTypeReference(t *testing.T) {
	c := lexer.New("Norisk::Client")
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ref, ok := ts.(*ast.TypeReference)
	if !ok {
		t.Fatalf("expected TypeReference, got %#v", ts)
	}
	want := []string{"Norisk", "Client"}
	if len(ref.Identifier.Name) != 2 || ref.Identifier.Name[0] != want[0] || ref.Identifier.Name[1] != want[1] {
		t.Errorf("Identifier.Name = %v, want %v", ref.Identifier.Name, want)
	}
}

func TestParseStructType(t *testing.T) {
	c := lexer.New(`Struct[{ name => String, Optional['age'] => Integer }]`)
	ts, err := typespec.Parse(c, literalIntExpr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	st, ok := ts.(*ast.StructType)
	if !ok {
		t.Fatalf("expected StructType, got %#v", ts)
	}
	if st.Keys == nil || len(st.Keys.Values) != 2 {
		t.Fatalf("expected 2 struct keys, got %#v", st.Keys)
	}
	if st.Keys.Values[0].Name != "name" || st.Keys.Values[0].Optional {
		t.Errorf("key 0 = %+v", st.Keys.Values[0])
	}
	if st.Keys.Values[1].Name != "age" || !st.Keys.Values[1].Optional {
		t.Errorf("key 1 = %+v", st.Keys.Values[1])
	}
}

func TestParseRejectsLowercaseName(t *testing.T) {
	c := lexer.New("string")
	if _, err := typespec.Parse(c, literalIntExpr); err == nil {
		t.Fatalf("expected an error for a lowercase type name")
	}
}
