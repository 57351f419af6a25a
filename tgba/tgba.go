// Package tgba builds the transition-based generalized Büchi automaton of
// spec.md §3, §4.3: mk_generalized(VWAA) → TGBA, by an explicit
// powerset/product construction over the VWAA's alternating transitions.
//
// Grounded on the lazy-DFA determinization style of dfa/lazy.Builder in
// the teacher package: a work stack of not-yet-solved state sets, a cache
// keyed by the state's identity (there, an NFA state set; here, a VWAA
// node-index bitset) resolving repeat discoveries to the same state index,
// and states built incrementally as they're popped off the stack.
package tgba

import (
	"sort"

	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/translator"
	"github.com/ltl2go/ltl2ba/vwaa"
)

// Transition is a TGBA transition (pos, neg, final, to) from spec.md §3.
type Transition struct {
	Pos, Neg bitset.Set
	Final    bitset.Set // bits over the VWAA's final_set positions
	To       int32      // target state index
}

// State is a TGBA state: a set of VWAA node indices (spec.md §3) plus the
// bookkeeping spec.md §3/§9 calls for: a display id, an Incoming counter
// reused to hold the SCC id once SCC analysis has run (spec.md §5), and a
// RedirectTo field used instead of reference-reusing a "prv" pointer
// (spec.md §9's language-neutral suggestion) to record the survivor of a
// state-simplification merge.
type State struct {
	ID       int32
	Set      bitset.Set
	Trans    []Transition
	Incoming int32 // in-degree until SCC analysis runs, then SCC id
	Removed  bool
	RedirectTo int32 // -1 unless Removed
}

// Automaton is the TGBA produced by Build.
type Automaton struct {
	States       []*State
	Init         []int32 // indices of initial states
	InitTrans    []Transition // entry transitions from the (implicit) pre-initial point, one per initial state
	FinalSetSize int          // |final_set|: number of distinct acceptance marks
	finalOrder   []int        // VWAA subformula indices, in the fixed order final_set bits are numbered
	vw           *vwaa.Automaton
}

func (a *Automaton) finalBit(vwaaSubformulaIdx int) int {
	for i, idx := range a.finalOrder {
		if idx == vwaaSubformulaIdx {
			return i
		}
	}
	return -1
}

// key returns the canonical lookup key for a VWAA-node-index bitset,
// standing in for the "stack, solved, removed" lookup lists of spec.md
// §4.3: one map covers all three, since a not-yet-removed state found in
// it is either still being built (conceptually "on the stack") or fully
// solved, and a Removed entry is followed through RedirectTo.
type key string

func setKey(s bitset.Set) key {
	bits := s.Enumerate()
	out := make([]byte, 0, len(bits)*4)
	for _, b := range bits {
		out = append(out, byte(b), byte(b>>8), byte(b>>16), byte(b>>24))
	}
	return key(out)
}

type builder struct {
	a      *Automaton
	byKey  map[key]int32
	stack  []int32
}

func (b *builder) resolve(s bitset.Set) int32 {
	k := setKey(s)
	if id, ok := b.byKey[k]; ok {
		st := b.a.States[id]
		if st.Removed {
			return st.RedirectTo
		}
		return id
	}
	id := int32(len(b.a.States))
	st := &State{ID: id, Set: s, RedirectTo: -1}
	b.a.States = append(b.a.States, st)
	b.byKey[k] = id
	b.stack = append(b.stack, id)
	return id
}

// Build runs mk_generalized over vw.
func Build(vw *vwaa.Automaton, ctx translator.Context) (*Automaton, error) {
	a := &Automaton{vw: vw, finalOrder: vw.FinalSet.Enumerate()}
	a.FinalSetSize = len(a.finalOrder)

	b := &builder{a: a, byKey: make(map[key]int32)}

	for _, t := range vw.Trans[vw.Root] {
		target := b.resolve(t.To)
		a.Init = append(a.Init, target)
		a.InitTrans = append(a.InitTrans, Transition{
			Pos:   t.Pos.Dup(),
			Neg:   t.Neg.Dup(),
			Final: a.acceptance(bitset.New(vw.NodeCount), t.To, t.Pos, t.Neg, t.To, ctx),
			To:    target,
		})
	}

	for len(b.stack) > 0 {
		n := len(b.stack) - 1
		id := b.stack[n]
		b.stack = b.stack[:n]
		st := a.States[id]
		if st.Trans != nil {
			continue // already solved
		}
		raw, err := a.buildTransitions(st.Set, vw, ctx)
		if err != nil {
			return nil, err
		}
		trans := make([]Transition, 0, len(raw))
		for _, r := range raw {
			target := b.resolve(r.ToSet)
			a.States[target].Incoming++
			trans = append(trans, Transition{Pos: r.Pos, Neg: r.Neg, Final: r.Final, To: target})
		}
		if trans == nil {
			trans = []Transition{}
		}
		st.Trans = trans
	}

	if ctx.SimpSCC {
		computeSCC(a)
	} else {
		for _, st := range a.States {
			st.Incoming = 0
		}
	}

	if ctx.SimpDiff {
		simplifyFixedPoint(a, ctx)
	}

	return a, nil
}

// rawTransition is a transition product before its target set has been
// resolved to a state index.
type rawTransition struct {
	Pos, Neg, Final bitset.Set
	ToSet           bitset.Set
}

// buildTransitions enumerates the Cartesian product of the alternating
// transitions of every VWAA state in S (spec.md §4.3, "Transition
// product"), in the lexicographic order of S's member states (ties broken
// by keeping the older transition, i.e. stable iteration).
func (a *Automaton) buildTransitions(S bitset.Set, vw *vwaa.Automaton, ctx translator.Context) ([]rawTransition, error) {
	members := S.Enumerate()
	if len(members) == 0 {
		// The empty conjunction: every obligation is already discharged, so
		// this state loops on itself unconditionally and every acceptance
		// mark is vacuously satisfied (spec.md §8 scenario 1, "true").
		fin := bitset.New(a.FinalSetSize)
		for i := 0; i < a.FinalSetSize; i++ {
			fin.Add(i)
		}
		return []rawTransition{{
			Pos: bitset.New(vw.SymCount), Neg: bitset.New(vw.SymCount),
			Final: fin, ToSet: bitset.New(vw.NodeCount),
		}}, nil
	}
	choices := make([][]vwaa.Transition, len(members))
	for i, m := range members {
		choices[i] = vw.Trans[m]
		if len(choices[i]) == 0 {
			return nil, nil // one branch is `false`-like (no transitions): whole product is empty
		}
	}

	var out []rawTransition
	idx := make([]int, len(members))
	for {
		pos := bitset.New(vw.SymCount)
		neg := bitset.New(vw.SymCount)
		to := bitset.New(vw.NodeCount)
		ok := true
		for i, c := range idx {
			t := choices[i][c]
			newPos := bitset.UnionOf(pos, t.Pos)
			newNeg := bitset.UnionOf(neg, t.Neg)
			if !bitset.Disjoint(newPos, newNeg) {
				ok = false
				break
			}
			pos, neg = newPos, newNeg
			bitset.Union(to, t.To)
		}
		if ok {
			final := a.acceptance(S, to, pos, neg, to, ctx)
			out = append(out, rawTransition{Pos: pos, Neg: neg, Final: final, ToSet: to})
		}

		// advance mixed-radix counter
		i := len(idx) - 1
		for i >= 0 {
			idx[i]++
			if idx[i] < len(choices[i]) {
				break
			}
			idx[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}

	if ctx.SimpFly {
		out = dominanceFilter(out)
	}
	return out, nil
}

// acceptance computes the fin bitset (over final_set positions) satisfied
// by a transition out of source state S with combined letter (pos, neg)
// and target node-set `to`, per spec.md §4.3: for each i in final_set,
// i is marked iff i is not "still obligated" under the configured policy,
// or some alternative transition from VWAA state i is already covered
// (componentwise dominated) by this product — i.e. an existing witness for
// i's eventuality is subsumed by what this transition already offers.
//
// Before that subset test, i itself is removed from the candidate target
// set (original_source/generalized.c:332, rem_set(at->to, i)): otherwise an
// eventuality's own looping transition into itself would vacuously witness
// its own acceptance mark, letting e.g. `p U q`'s `p && !q` self-loop mark
// itself accepting and accept p^ω without q ever holding.
func (a *Automaton) acceptance(from bitset.Set, to bitset.Set, pos, neg bitset.Set, productTo bitset.Set, ctx translator.Context) bitset.Set {
	fin := bitset.New(a.FinalSetSize)
	for bit, i := range a.finalOrder {
		obligated := from.In(i)
		if ctx.TargetAccept {
			obligated = to.In(i)
		}
		if !obligated {
			fin.Add(bit)
			continue
		}
		reduced := productTo.Dup()
		reduced.Remove(i)
		for _, wt := range a.vw.Trans[i] {
			if bitset.Subset(wt.Pos, pos) && bitset.Subset(wt.Neg, neg) && bitset.Subset(wt.To, reduced) {
				fin.Add(bit)
				break
			}
		}
	}
	return fin
}

// tgbaDominates mirrors vwaa.Dominates, generalized with an acceptance-mark
// equality requirement: d dominates v iff fin(d) == fin(v) and d's letter
// and target-set are componentwise subsets of v's (spec.md §4.3's
// on-the-fly test).
func tgbaDominates(d, v rawTransition) bool {
	return bitset.Same(d.Final, v.Final) &&
		bitset.Subset(d.Pos, v.Pos) && bitset.Subset(d.Neg, v.Neg) && bitset.Subset(d.ToSet, v.ToSet)
}

func dominanceFilter(trans []rawTransition) []rawTransition {
	kept := make([]bool, len(trans))
	for i := range trans {
		kept[i] = true
	}
	for i := range trans {
		if !kept[i] {
			continue
		}
		for j := range trans {
			if i == j || !kept[j] {
				continue
			}
			if tgbaDominates(trans[i], trans[j]) {
				kept[j] = false
			}
		}
	}
	out := make([]rawTransition, 0, len(trans))
	for i, k := range kept {
		if k {
			out = append(out, trans[i])
		}
	}
	return out
}

// sortedIndices returns the indices 0..n-1 ordered by less, giving a
// deterministic iteration order over a state's transitions.
func sortedIndices(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
	return idx
}
