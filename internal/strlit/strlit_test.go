package strlit_test

import (
	"testing"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lexer"
	"github.com/lindstrom-oss/puplint/internal/strlit"
)

func singleLiteral(t *testing.T, se *ast.StringExpr) string {
	t.Helper()
	if len(se.Single) != 1 || se.Single[0].Kind != ast.FragmentLiteral {
		t.Fatalf("expected a single merged literal fragment, got %+v", se.Single)
	}
	return se.Single[0].Literal
}

func TestSingleQuotedMergesLiteralsAndEscapes(t *testing.T) {
	c := lexer.New(`'it\'s a \\test' rest`)
	se, ok := strlit.SingleQuoted(c)
	if !ok {
		t.Fatalf("expected SingleQuoted to succeed")
	}
	if se.Kind != ast.StringSingleQuoted {
		t.Errorf("Kind = %v", se.Kind)
	}
	var got string
	for _, f := range se.Single {
		switch f.Kind {
		case ast.FragmentLiteral:
			got += f.Literal
		case ast.FragmentEscaped:
			got += string(f.Char)
		}
	}
	if want := "it's a \\test"; got != want {
		t.Errorf("decoded = %q, want %q", got, want)
	}
	if !c.HasPrefix(" rest") {
		t.Errorf("expected cursor left at ' rest', got %q", c.Rest())
	}
}

func TestSingleQuotedLeavesOtherBackslashesLiteral(t *testing.T) {
	c := lexer.New(`'C:\no_escape'`)
	se, ok := strlit.SingleQuoted(c)
	if !ok {
		t.Fatalf("expected SingleQuoted to succeed")
	}
	got := singleLiteral(t, se)
	if want := `C:\no_escape`; got != want {
		t.Errorf("decoded = %q, want %q", got, want)
	}
}

func TestDoubleQuotedWithBareVariableInterpolation(t *testing.T) {
	c := lexer.New(`"hello $name!"`)
	de, ok, err := strlit.DoubleQuoted(c, nil)
	if err != nil {
		t.Fatalf("DoubleQuoted failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected DoubleQuoted to succeed")
	}
	if de.Kind != ast.StringDoubleQuoted {
		t.Errorf("Kind = %v", de.Kind)
	}
	if len(de.Double) != 3 {
		t.Fatalf("expected 3 fragments (literal, variable, literal), got %d: %+v", len(de.Double), de.Double)
	}
	if de.Double[0].Literal == nil || de.Double[0].Literal.Literal != "hello " {
		t.Errorf("fragment 0 = %+v", de.Double[0])
	}
	if de.Double[1].Expression == nil {
		t.Fatalf("fragment 1 should be an interpolated expression")
	}
	term, ok := de.Double[1].Expression.(*ast.Term)
	if !ok || term.Kind != ast.TermVariable || term.Variable == nil {
		t.Fatalf("expected fragment 1 to be a variable Term, got %#v", de.Double[1].Expression)
	}
	if len(term.Variable.Identifier.Name) != 1 || term.Variable.Identifier.Name[0] != "name" {
		t.Errorf("variable name = %v", term.Variable.Identifier.Name)
	}
	if de.Double[2].Literal == nil || de.Double[2].Literal.Literal != "!" {
		t.Errorf("fragment 2 = %+v", de.Double[2])
	}
}

func TestDoubleQuotedDecodesEscapes(t *testing.T) {
	c := lexer.New(`"a\tb\nc"`)
	de, ok, err := strlit.DoubleQuoted(c, nil)
	if err != nil || !ok {
		t.Fatalf("DoubleQuoted failed: ok=%v err=%v", ok, err)
	}
	var got string
	for _, f := range de.Double {
		if f.Literal != nil {
			switch f.Literal.Kind {
			case ast.FragmentLiteral:
				got += f.Literal.Literal
			case ast.FragmentEscaped:
				got += string(f.Literal.Char)
			}
		}
	}
	if want := "a\tb\nc"; got != want {
		t.Errorf("decoded = %q, want %q", got, want)
	}
}

func TestBareword(t *testing.T) {
	c := lexer.New("present, more")
	name, ok := strlit.Bareword(c)
	if !ok || name != "present" {
		t.Fatalf("Bareword = %q, %v, want \"present\", true", name, ok)
	}
}

func TestRegexEscapedSlash(t *testing.T) {
	c := lexer.New(`/a\/b/ rest`)
	re, ok := strlit.Regex(c)
	if !ok {
		t.Fatalf("expected Regex to succeed")
	}
	if re.Data != "a/b" {
		t.Errorf("Data = %q, want %q", re.Data, "a/b")
	}
	if !c.HasPrefix(" rest") {
		t.Errorf("expected cursor left at ' rest', got %q", c.Rest())
	}
}
