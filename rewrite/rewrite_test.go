package rewrite

import (
	"testing"

	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
)

func parseStr(t *testing.T, s string) *formula.Node {
	t.Helper()
	l := lexer.New(s, nil)
	n, err := parser.FromLexer(l)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func normalize(t *testing.T, s string, logic bool) (*formula.Node, *Cache) {
	t.Helper()
	root := parseStr(t, s)
	n, c, err := Normalize(root, logic)
	if err != nil {
		t.Fatalf("normalize %q: %v", s, err)
	}
	return n, c
}

func noForbiddenTags(t *testing.T, n *formula.Node) {
	t.Helper()
	if n == nil {
		return
	}
	switch n.Tag {
	case formula.Implies, formula.Equiv, formula.Always, formula.Eventually:
		t.Fatalf("normalized tree still has forbidden tag %v", n.Tag)
	case formula.Not:
		if n.Lft == nil || n.Lft.Tag != formula.Pred {
			t.Fatalf("NOT node not immediately above PRED: child tag %v", n.Lft.Tag)
		}
	}
	noForbiddenTags(t, n.Lft)
	noForbiddenTags(t, n.Rgt)
}

func TestInvariantNoForbiddenTags(t *testing.T) {
	for _, f := range []string{
		"p -> q", "p <-> q", "[]p", "<>p", "!(p -> q)", "!(p <-> q)",
		"p U (q V (r -> s))",
	} {
		n, _ := normalize(t, f, true)
		noForbiddenTags(t, n)
	}
}

func TestDoubleNegation(t *testing.T) {
	a, cacheA := normalize(t, "p", true)
	b, cacheB := normalize(t, "!!p", true)
	if canonicalKey(a) != canonicalKey(b) {
		t.Fatalf("p and !!p should normalize identically: %q vs %q", canonicalKey(a), canonicalKey(b))
	}
	_ = cacheA
	_ = cacheB
}

func TestDeMorgan(t *testing.T) {
	a, _ := normalize(t, "!(p && q)", true)
	b, _ := normalize(t, "!p || !q", true)
	if canonicalKey(a) != canonicalKey(b) {
		t.Fatalf("!(p&&q) and !p||!q should normalize identically: %q vs %q", canonicalKey(a), canonicalKey(b))
	}
}

func TestCanonicalizationIdempotent(t *testing.T) {
	root := parseStr(t, "p && q && r")
	n1, c1, err := Normalize(root, true)
	if err != nil {
		t.Fatal(err)
	}
	n2, _, err := Normalize(n1, true)
	if err != nil {
		t.Fatal(err)
	}
	if canonicalKey(n1) != canonicalKey(n2) {
		t.Fatalf("re-normalizing an already-normal tree should be a no-op: %q vs %q", canonicalKey(n1), canonicalKey(n2))
	}
	_ = c1
}

func TestImpliesReflexiveAndConstants(t *testing.T) {
	p := formula.NewPred(0, "p")
	if !implies(p, p) {
		t.Fatalf("p should imply itself")
	}
	if !implies(p, tru()) {
		t.Fatalf("anything implies true")
	}
	if !implies(fls(), p) {
		t.Fatalf("false implies anything")
	}
}

func TestUntilTrueCollapses(t *testing.T) {
	n, _ := normalize(t, "p U true", true)
	if n.Tag != formula.True {
		t.Fatalf("p U true should collapse to true, got %v", n.Tag)
	}
}

func TestFalseUntilCollapses(t *testing.T) {
	n, _ := normalize(t, "false U q", true)
	if canonicalKey(n) != "q" {
		t.Fatalf("false U q should collapse to q, got key %q", canonicalKey(n))
	}
}

func TestAndIdempotent(t *testing.T) {
	n, _ := normalize(t, "p && p", true)
	if n.Tag != formula.Pred {
		t.Fatalf("p && p should collapse to p, got %v", n.Tag)
	}
}
