package tgba

import (
	"testing"

	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
	"github.com/ltl2go/ltl2ba/rewrite"
	"github.com/ltl2go/ltl2ba/translator"
	"github.com/ltl2go/ltl2ba/vwaa"
)

func build(t *testing.T, formulaStr string, ctx translator.Context) *Automaton {
	t.Helper()
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
	a, err := Build(vw, ctx)
	if err != nil {
		t.Fatalf("tgba build: %v", err)
	}
	return a
}

func TestTrueHasInitialTransition(t *testing.T) {
	a := build(t, "true", translator.Default())
	if len(a.Init) == 0 {
		t.Fatalf("true should have at least one initial state")
	}
}

func TestFalseHasNoInitialTransitions(t *testing.T) {
	a := build(t, "false", translator.Default())
	if len(a.Init) != 0 {
		t.Fatalf("false should have no initial transitions, got %d", len(a.Init))
	}
}

// TestTransitionsRespectDisjointness checks spec.md §8 invariant 3: every
// TGBA transition's pos/neg letter is internally consistent.
func TestTransitionsRespectDisjointness(t *testing.T) {
	for _, f := range []string{"p U q", "p V q", "p && q", "p || q", "X(p && !q)", "[]p", "<>p"} {
		a := build(t, f, translator.Default())
		for _, st := range a.States {
			for _, tr := range st.Trans {
				for _, b := range tr.Pos.Enumerate() {
					if tr.Neg.In(b) {
						t.Fatalf("formula %q state %d: pos/neg overlap on symbol %d", f, st.ID, b)
					}
				}
			}
		}
	}
}

func TestSCCAssignsNonZeroComponents(t *testing.T) {
	a := build(t, "[]p", translator.Default())
	for _, st := range a.States {
		if st.Incoming == 0 {
			t.Fatalf("state %d left unvisited by SCC analysis", st.ID)
		}
	}
}

func TestBadSCCsExcludesFullyAcceptingLoop(t *testing.T) {
	// "true" loops forever through a single accepting self-loop state: its
	// SCC (if any) must not be reported bad, since the lone mark (if any)
	// is trivially satisfied every step.
	a := build(t, "true", translator.Default())
	bad := badSCCs(a)
	for _, st := range a.States {
		if bad[st.Incoming] && a.FinalSetSize == 0 {
			t.Fatalf("an automaton with no acceptance marks should have no bad SCCs")
		}
	}
}

func TestSimplificationNeverRemovesInitialState(t *testing.T) {
	ctx := translator.Default()
	a := build(t, "p U q", ctx)
	for _, id := range a.Init {
		if a.States[id].Removed {
			t.Fatalf("simplification removed a state referenced by Init")
		}
	}
}

func TestDisablingDiffSimplificationStillBuilds(t *testing.T) {
	ctx := translator.Default()
	ctx.SimpDiff = false
	a := build(t, "p U q", ctx)
	if len(a.States) == 0 {
		t.Fatalf("expected at least one state")
	}
}

func TestResolveStateFollowsRedirect(t *testing.T) {
	a := &Automaton{States: []*State{
		{ID: 0, RedirectTo: 1, Removed: true},
		{ID: 1, RedirectTo: -1},
	}}
	if got := resolveState(a, 0); got != 1 {
		t.Fatalf("resolveState should follow RedirectTo, got %d", got)
	}
}
