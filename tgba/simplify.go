package tgba

import (
	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/translator"
)

// maxSimplifyPasses bounds the a-posteriori simplification loop. spec.md
// §4.3 says the loop runs "until no state or transition is removed in a
// complete pass"; each pass strictly removes at least one transition or
// state when it makes progress, and the automaton is finite, so a bound
// comfortably above any real automaton's size is enough to reach the true
// fixed point while keeping this a total function.
const maxSimplifyPasses = 64

// simplifyFixedPoint repeats transition simplification (spec.md §4.3 step
// 2) and state simplification (step 3) until neither removes anything, or
// until maxSimplifyPasses is reached.
func simplifyFixedPoint(a *Automaton, ctx translator.Context) {
	for pass := 0; pass < maxSimplifyPasses; pass++ {
		changedT := simplifyTransitions(a, ctx)
		changedS := simplifyStates(a, ctx)
		if ctx.SimpSCC && (changedT || changedS) {
			computeSCC(a)
		}
		if !changedT && !changedS {
			return
		}
	}
}

func resolveState(a *Automaton, id int32) int32 {
	st := a.States[id]
	for st.Removed {
		id = st.RedirectTo
		st = a.States[id]
	}
	return id
}

// relaxed reports whether the acceptance-mark comparison between a
// transition's source SCC and its target may be ignored, per spec.md
// §4.3 step 2: "relaxed to true if t crosses SCC boundaries or originates
// in a bad SCC."
func relaxed(a *Automaton, bad map[int32]bool, from *State, t Transition) bool {
	to := a.States[resolveState(a, t.To)]
	if from.Incoming != to.Incoming {
		return true
	}
	return bad[from.Incoming]
}

// simplifyTransitions drops a transition t if another transition t' of the
// same state, to the same (resolved) target, has a letter that's a subset
// of t's and an acceptance mark set that's a superset of t's — or the
// acceptance comparison is relaxed (spec.md §4.3 step 2).
func simplifyTransitions(a *Automaton, ctx translator.Context) bool {
	var bad map[int32]bool
	if ctx.SimpSCC {
		bad = badSCCs(a)
	} else {
		bad = map[int32]bool{}
	}

	changed := false
	for _, st := range a.States {
		if st.Removed {
			continue
		}
		kept := make([]bool, len(st.Trans))
		for i := range kept {
			kept[i] = true
		}
		for i, ti := range st.Trans {
			if !kept[i] {
				continue
			}
			for j, tj := range st.Trans {
				if i == j || !kept[j] {
					continue
				}
				if resolveState(a, ti.To) != resolveState(a, tj.To) {
					continue
				}
				// Does tj dominate ti (drop ti)?
				if subsetLetter(tj, ti) && (acceptOK(tj, ti) || relaxed(a, bad, st, ti)) {
					kept[i] = false
					break
				}
			}
		}
		out := st.Trans[:0:0]
		for i, k := range kept {
			if k {
				out = append(out, st.Trans[i])
			} else {
				changed = true
			}
		}
		st.Trans = out
	}
	return changed
}

// subsetLetter reports t'.pos ⊆ t.pos && t'.neg ⊆ t.neg (t' fires under a
// subset of the conditions t requires, i.e. t' is at least as general).
func subsetLetter(tPrime, t Transition) bool {
	return bitset.Subset(tPrime.Pos, t.Pos) && bitset.Subset(tPrime.Neg, t.Neg)
}

// acceptOK reports t.final ⊆ t'.final.
func acceptOK(tPrime, t Transition) bool {
	return bitset.Subset(t.Final, tPrime.Final)
}

// simplifyStates merges states with matching outgoing-transition
// multisets (spec.md §4.3 step 3): same target (after redirect
// resolution), letter, and — subject to the same SCC-based relaxation —
// same final marks.
func simplifyStates(a *Automaton, ctx translator.Context) bool {
	var bad map[int32]bool
	if ctx.SimpSCC {
		bad = badSCCs(a)
	} else {
		bad = map[int32]bool{}
	}

	changed := false
	live := make([]int32, 0, len(a.States))
	for _, st := range a.States {
		if !st.Removed {
			live = append(live, st.ID)
		}
	}

	for i := 0; i < len(live); i++ {
		si := a.States[live[i]]
		if si == nil || si.Removed {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			sj := a.States[live[j]]
			if sj.Removed {
				continue
			}
			if statesEquivalent(a, bad, si, sj) {
				mergeInto(a, sj, si)
				changed = true
			}
		}
	}
	return changed
}

func statesEquivalent(a *Automaton, bad map[int32]bool, si, sj *State) bool {
	if len(si.Trans) != len(sj.Trans) {
		return false
	}
	used := make([]bool, len(sj.Trans))
	for _, ti := range si.Trans {
		found := false
		for j, tj := range sj.Trans {
			if used[j] {
				continue
			}
			if resolveState(a, ti.To) != resolveState(a, tj.To) {
				continue
			}
			if !bitset.Same(ti.Pos, tj.Pos) || !bitset.Same(ti.Neg, tj.Neg) {
				continue
			}
			sameFinal := bitset.Same(ti.Final, tj.Final)
			if !sameFinal && !(relaxed(a, bad, si, ti) && relaxed(a, bad, sj, tj)) {
				continue
			}
			used[j] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// mergeInto removes victim, redirecting its inbound references to
// survivor (spec.md §9's RedirectTo in place of pointer-reusing "prv").
func mergeInto(a *Automaton, victim, survivor *State) {
	victim.Removed = true
	victim.RedirectTo = survivor.ID
	victim.Trans = nil

	for i, id := range a.Init {
		if id == victim.ID {
			a.Init[i] = survivor.ID
		}
	}
	for i := range a.InitTrans {
		if a.InitTrans[i].To == victim.ID {
			a.InitTrans[i].To = survivor.ID
		}
	}
	for _, st := range a.States {
		for i := range st.Trans {
			if st.Trans[i].To == victim.ID {
				st.Trans[i].To = survivor.ID
			}
		}
	}
}
