package serialize

import (
	"strings"
	"testing"

	"github.com/ltl2go/ltl2ba/buchi"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
	"github.com/ltl2go/ltl2ba/rewrite"
	"github.com/ltl2go/ltl2ba/tgba"
	"github.com/ltl2go/ltl2ba/translator"
	"github.com/ltl2go/ltl2ba/vwaa"
)

func build(t *testing.T, formulaStr string) (*buchi.Automaton, *lexer.SymbolTable) {
	t.Helper()
	ctx := translator.Default()
	l := lexer.New(formulaStr, nil)
	root, err := parser.FromLexer(l)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, cache, err := rewrite.Normalize(root, ctx.SimpLog)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	vw, err := vwaa.Build(n, cache, l.SymbolTable().Len(), ctx)
	if err != nil {
		t.Fatalf("vwaa build: %v", err)
	}
	tg, err := tgba.Build(vw, ctx)
	if err != nil {
		t.Fatalf("tgba build: %v", err)
	}
	a, err := buchi.Build(tg, ctx)
	if err != nil {
		t.Fatalf("buchi build: %v", err)
	}
	return a, l.SymbolTable()
}

func TestWriteSpinProducesNeverBlock(t *testing.T) {
	a, names := build(t, "p")
	var sb strings.Builder
	if err := WriteSpin(&sb, a, names); err != nil {
		t.Fatalf("WriteSpin: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "never {") {
		t.Fatalf("expected a never-claim block, got %q", out)
	}
	if !strings.Contains(out, "p") {
		t.Fatalf("expected predicate name p to appear in the output, got %q", out)
	}
}

func TestWriteSpinFalseHasEmptyBody(t *testing.T) {
	a, names := build(t, "false")
	var sb strings.Builder
	if err := WriteSpin(&sb, a, names); err != nil {
		t.Fatalf("WriteSpin: %v", err)
	}
	if !strings.Contains(sb.String(), "T0_init:") {
		t.Fatalf("expected an init label even for an empty automaton")
	}
	if strings.Contains(sb.String(), "::") {
		t.Fatalf("expected no transitions for false, got %q", sb.String())
	}
}

func TestWriteCProducesStateTable(t *testing.T) {
	a, _ := build(t, "p U q")
	var sb strings.Builder
	if err := WriteC(&sb, a, "myltl"); err != nil {
		t.Fatalf("WriteC: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "myltl_state") {
		t.Fatalf("expected the configured prefix to appear, got %q", out)
	}
	if !strings.Contains(out, "myltl_states[]") {
		t.Fatalf("expected a states array, got %q", out)
	}
}

func TestWriteCDefaultsPrefix(t *testing.T) {
	a, _ := build(t, "p")
	var sb strings.Builder
	if err := WriteC(&sb, a, ""); err != nil {
		t.Fatalf("WriteC: %v", err)
	}
	if !strings.Contains(sb.String(), "ltl2ba_state") {
		t.Fatalf("expected the default prefix ltl2ba, got %q", sb.String())
	}
}

func TestWriteDotProducesDigraph(t *testing.T) {
	a, names := build(t, "[]p")
	var sb strings.Builder
	if err := WriteDot(&sb, a, names); err != nil {
		t.Fatalf("WriteDot: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "digraph ltl2ba {") {
		t.Fatalf("expected a digraph header, got %q", out)
	}
	if !strings.Contains(out, "doublecircle") {
		t.Fatalf("expected at least one accepting (doublecircle) state for []p, got %q", out)
	}
}
