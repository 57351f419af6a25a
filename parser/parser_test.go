package parser_test

import (
	"testing"

	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
)

func mustParse(t *testing.T, s string) *formula.Node {
	t.Helper()
	l := lexer.New(s, nil)
	n, err := parser.FromLexer(l)
	if err != nil {
		t.Fatalf("parse(%q): unexpected error: %v", s, err)
	}
	return n
}

func TestPrecedence(t *testing.T) {
	// AND binds tighter than OR: p || q && r == p || (q && r)
	n := mustParse(t, "p || q && r")
	if n.Tag != formula.Or {
		t.Fatalf("root should be OR, got %v", n.Tag)
	}
	if n.Rgt.Tag != formula.And {
		t.Fatalf("right child should be AND, got %v", n.Rgt.Tag)
	}
}

func TestUntilBindsTighterThanAnd(t *testing.T) {
	n := mustParse(t, "p && q U r")
	if n.Tag != formula.And {
		t.Fatalf("root should be AND, got %v", n.Tag)
	}
	if n.Rgt.Tag != formula.Until {
		t.Fatalf("right child should be U, got %v", n.Rgt.Tag)
	}
}

func TestImpliesRightAssociative(t *testing.T) {
	n := mustParse(t, "p -> q -> r")
	if n.Tag != formula.Implies {
		t.Fatalf("root should be IMPLIES, got %v", n.Tag)
	}
	if n.Rgt.Tag != formula.Implies {
		t.Fatalf("p -> q -> r should associate as p -> (q -> r)")
	}
}

func TestChainedEquivIsError(t *testing.T) {
	l := lexer.New("p <-> q <-> r", nil)
	_, err := parser.FromLexer(l)
	if err == nil {
		t.Fatalf("expected a syntax error for chained <->")
	}
}

func TestMissingParenIsError(t *testing.T) {
	l := lexer.New("(p && q", nil)
	_, err := parser.FromLexer(l)
	if err == nil {
		t.Fatalf("expected a syntax error for missing ')'")
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	n := mustParse(t, "!p && q")
	if n.Tag != formula.And {
		t.Fatalf("root should be AND, got %v", n.Tag)
	}
	if n.Lft.Tag != formula.Not {
		t.Fatalf("left child should be NOT, got %v", n.Lft.Tag)
	}
}

func TestEmptyFormulaIsError(t *testing.T) {
	l := lexer.New("", nil)
	_, err := parser.FromLexer(l)
	if err == nil {
		t.Fatalf("expected a semantic error for empty formula")
	}
}
