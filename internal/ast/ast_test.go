package ast_test

import (
	"testing"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

func TestTermSrcRangeRoundTrips(t *testing.T) {
	var term ast.Term
	r := srcrange.Range{
		Start: srcrange.Location{Line: 1, Column: 1},
		End:   srcrange.Location{Line: 1, Column: 5},
	}
	term.SetRange(r)
	if got := term.SrcRange(); got != r {
		t.Errorf("SrcRange() = %+v, want %+v", got, r)
	}
}

func TestSealedInterfacesAreSatisfiedByConcreteNodes(t *testing.T) {
	var _ ast.Expr = &ast.Term{}
	var _ ast.Expr = &ast.BinaryExpr{}
	var _ ast.Statement = &ast.ResourceSetStatement{}
	var _ ast.Statement = &ast.IfElseStatement{}
	var _ ast.TopLevel = &ast.ClassDef{}
	var _ ast.TypeSpec = &ast.SimpleType{}

	var stmt ast.Statement = &ast.ResourceSetStatement{}
	if _, ok := stmt.(ast.Node); !ok {
		t.Errorf("expected a Statement to also satisfy Node")
	}
}
