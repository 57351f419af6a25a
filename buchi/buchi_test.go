package buchi

import (
	"testing"

	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
	"github.com/ltl2go/ltl2ba/rewrite"
	"github.com/ltl2go/ltl2ba/tgba"
	"github.com/ltl2go/ltl2ba/translator"
	"github.com/ltl2go/ltl2ba/vwaa"
)

func fullSet(n int) bitset.Set {
	s := bitset.New(n)
	for i := 0; i < n; i++ {
		s.Add(i)
	}
	return s
}

func build(t *testing.T, formulaStr string, ctx translator.Context) *Automaton {
	t.Helper()
	a, _ := buildWithSymbols(t, formulaStr, ctx)
	return a
}

func buildWithSymbols(t *testing.T, formulaStr string, ctx translator.Context) (*Automaton, *lexer.SymbolTable) {
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
	tg, err := tgba.Build(vw, ctx)
	if err != nil {
		t.Fatalf("tgba build: %v", err)
	}
	a, err := Build(tg, ctx)
	if err != nil {
		t.Fatalf("buchi build: %v", err)
	}
	return a, l.SymbolTable()
}

// TestTrueSingleAcceptingSelfLoop checks spec.md §8 scenario 1.
func TestTrueSingleAcceptingSelfLoop(t *testing.T) {
	a := build(t, "true", translator.Default())
	if len(a.States) != 1 {
		t.Fatalf("expected exactly one state, got %d", len(a.States))
	}
	st := a.States[0]
	if !st.Accept {
		t.Fatalf("true's sole state should be accepting")
	}
	if len(st.Trans) != 1 || st.Trans[0].To != st.ID {
		t.Fatalf("expected a single self-loop, got %+v", st.Trans)
	}
}

// TestFalseEmptyLanguage checks spec.md §8 scenario 2.
func TestFalseEmptyLanguage(t *testing.T) {
	a := build(t, "false", translator.Default())
	if len(a.States) > 1 {
		t.Fatalf("false should produce at most one state, got %d", len(a.States))
	}
	if len(a.Init) != 0 {
		t.Fatalf("false should have no initial states")
	}
}

// TestSinglePredicateTwoStates checks spec.md §8 scenario 3's shape: an
// initial non-accepting-until-satisfied state that settles into a trap.
// The initial state is the virtual entry point (one InitTrans edge
// labelled p); the trap is the single BA state in a.States.
func TestSinglePredicateTwoStates(t *testing.T) {
	a := build(t, "p", translator.Default())
	if len(a.States) != 1 {
		t.Fatalf("expected exactly one state besides the entry point, got %d", len(a.States))
	}
	if len(a.Init) == 0 {
		t.Fatalf("expected at least one initial state")
	}
	if len(a.InitTrans) != 1 || a.InitTrans[0].Pos.Count() != 1 {
		t.Fatalf("expected a single entry edge labelled p, got %+v", a.InitTrans)
	}
}

// TestAlwaysPAcceptingSelfLoop checks spec.md §8 scenario 4: []p collapses
// to one accepting state self-looping on p.
func TestAlwaysPAcceptingSelfLoop(t *testing.T) {
	a := build(t, "[]p", translator.Default())
	foundAcceptingSelfLoop := false
	for _, st := range a.States {
		if !st.Accept {
			continue
		}
		for _, tr := range st.Trans {
			if tr.To == st.ID {
				foundAcceptingSelfLoop = true
			}
		}
	}
	if !foundAcceptingSelfLoop {
		t.Fatalf("[]p should have an accepting state with a self-loop")
	}
}

// TestEventuallyPTwoStates checks spec.md §8 scenario 5's shape.
func TestEventuallyPTwoStates(t *testing.T) {
	a := build(t, "<>p", translator.Default())
	if len(a.States) < 1 {
		t.Fatalf("expected at least one state for <>p")
	}
	accepting := false
	for _, st := range a.States {
		if st.Accept {
			accepting = true
		}
	}
	if !accepting {
		t.Fatalf("<>p should have at least one accepting state")
	}
}

// TestUntilThreeStates checks spec.md §8 scenario 6's rough shape.
func TestUntilThreeStates(t *testing.T) {
	a := build(t, "p U q", translator.Default())
	if len(a.States) != 3 {
		t.Fatalf("expected three states for p U q, got %d", len(a.States))
	}
}

// TestUntilNeverAcceptsWithoutQ follows the p && !q letter from the entry
// point of p U q (an InitTrans edge, then state transitions) for as long as
// a transition enabled by that letter exists and checks no
// state visited along that path is accepting. Without q ever holding, the
// until's eventuality is never discharged, so a run reading (p && !q)^ω
// must never pass through an accepting state — catching the degenerate
// case where an until's own looping transition vacuously witnesses its own
// acceptance mark (rem_set's job in the reference generalized.c).
func TestUntilNeverAcceptsWithoutQ(t *testing.T) {
	a, names := buildWithSymbols(t, "p U q", translator.Default())
	if len(a.Init) == 0 {
		t.Fatalf("expected at least one initial state for p U q")
	}
	pBit := names.Intern("p")
	qBit := names.Intern("q")

	// A transition fires on p && !q unless its label requires q or !p.
	enabled := func(pos, neg bitset.Set) bool {
		return !pos.In(qBit) && !neg.In(pBit)
	}
	id := int32(-1)
	for _, it := range a.InitTrans {
		if enabled(it.Pos, it.Neg) {
			id = it.To
			break
		}
	}
	if id < 0 {
		t.Fatalf("expected an initial transition enabled by p && !q")
	}
	visited := make(map[int32]bool)
	for steps := 0; steps <= len(a.States); steps++ {
		if visited[id] {
			break
		}
		visited[id] = true
		st := a.States[id]
		if st.Accept {
			t.Fatalf("state %d accepts after only ever reading p && !q; q never holds, so the until should never be satisfied", id)
		}
		next := int32(-1)
		for _, tr := range st.Trans {
			if enabled(tr.Pos, tr.Neg) {
				next = tr.To
				break
			}
		}
		if next < 0 {
			break
		}
		id = next
	}
}

// TestNegatedEventuallyAlwaysBuildsSuccessfully is a smoke test for
// spec.md §8 scenario 7's isomorphism law (!(<>[]p) and []<>!p accept the
// same language): full language-equivalence is outside what a unit test
// can assert without a model-checking oracle, so this checks both build
// to a non-trivial, well-formed automaton.
func TestNegatedEventuallyAlwaysBuildsSuccessfully(t *testing.T) {
	for _, f := range []string{"!(<>([]p))", "[]<>!p"} {
		a := build(t, f, translator.Default())
		if len(a.States) == 0 {
			t.Fatalf("formula %q: expected at least one state", f)
		}
		for _, st := range a.States {
			if st.Layer < 0 || st.Layer > a.F {
				t.Fatalf("formula %q: state %d layer out of bounds", f, st.ID)
			}
		}
	}
}

// TestDoubleNegationSameStateCount checks the double-negation law at the BA
// level (spec.md §8 Laws).
func TestDoubleNegationSameStateCount(t *testing.T) {
	a := build(t, "p", translator.Default())
	b := build(t, "!!p", translator.Default())
	if len(a.States) != len(b.States) {
		t.Fatalf("p and !!p should produce the same state count, got %d vs %d", len(a.States), len(b.States))
	}
}

// TestInvariantLayerBounds checks spec.md §8 invariant 4.
func TestInvariantLayerBounds(t *testing.T) {
	for _, f := range []string{"p U q", "[]p", "<>p", "p && q", "p || q"} {
		a := build(t, f, translator.Default())
		for _, st := range a.States {
			if st.Layer < 0 || st.Layer > a.F {
				t.Fatalf("formula %q: state %d layer %d out of [0,%d]", f, st.ID, st.Layer, a.F)
			}
		}
	}
}

func TestSimplificationOptOutStillReachable(t *testing.T) {
	ctx := translator.Default()
	ctx.SimpDiff = false
	a := build(t, "p U q", ctx)
	if len(a.States) == 0 {
		t.Fatalf("expected at least one state")
	}
}

func TestAdvanceStopsAtF(t *testing.T) {
	fin := fullSet(2)
	if got := advance(0, 2, fin); got != 2 {
		t.Fatalf("advance should reach F when every mark present, got %d", got)
	}
}

func TestAdvanceStopsAtFirstMissingMark(t *testing.T) {
	// final_set has two marks; only mark 1 present, mark 0 missing.
	fin := fullSet(2)
	fin.Remove(0)
	if got := advance(0, 2, fin); got != 0 {
		t.Fatalf("advance should not move past a missing mark at the current layer, got %d", got)
	}
}
