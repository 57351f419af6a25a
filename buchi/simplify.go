package buchi

import (
	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/translator"
)

const maxSimplifyPasses = 64

func resolveState(a *Automaton, id int32) int32 {
	st := a.States[id]
	for st.Removed {
		id = st.RedirectTo
		st = a.States[id]
	}
	return id
}

// simplifyBAFixedPoint collapses states with identical outgoing transition
// multisets (spec.md §4.4's "repeated pass analogous to §4.3"). Unlike the
// TGBA's transition/state simplification, BA acceptance lives on the state
// (Accept), not on a per-transition final bitset, so there is no
// letter-dominance test to relax by SCC: two states merge only when they
// agree on Accept and on their full transition set (same letter, same
// resolved target), and the merge is iterated to a fixed point since a
// merge can make previously-distinct states' transition sets collapse too.
func simplifyBAFixedPoint(a *Automaton, ctx translator.Context) {
	for pass := 0; pass < maxSimplifyPasses; pass++ {
		if !mergeEquivalentStates(a) {
			return
		}
		retargetRemoved(a)
		pruneUnreachable(a)
	}
}

// retargetRemoved rewrites every transition pointing at a merged-away
// state to its surviving representative, so pruneUnreachable's traversal
// never has to special-case a Removed target.
func retargetRemoved(a *Automaton) {
	for _, st := range a.States {
		if st.Removed {
			continue
		}
		for i := range st.Trans {
			st.Trans[i].To = resolveState(a, st.Trans[i].To)
		}
	}
	for i, id := range a.Init {
		a.Init[i] = resolveState(a, id)
	}
	for i := range a.InitTrans {
		a.InitTrans[i].To = resolveState(a, a.InitTrans[i].To)
	}
}

func mergeEquivalentStates(a *Automaton) bool {
	changed := false
	live := make([]int32, 0, len(a.States))
	for _, st := range a.States {
		if !st.Removed {
			live = append(live, st.ID)
		}
	}
	for i := 0; i < len(live); i++ {
		si := a.States[live[i]]
		if si.Removed {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			sj := a.States[live[j]]
			if sj.Removed {
				continue
			}
			if statesEquivalent(a, si, sj) {
				sj.Removed = true
				sj.RedirectTo = si.ID
				sj.Trans = nil
				for k, id := range a.Init {
					if id == sj.ID {
						a.Init[k] = si.ID
					}
				}
				changed = true
			}
		}
	}
	return changed
}

func statesEquivalent(a *Automaton, si, sj *State) bool {
	if si.Accept != sj.Accept || len(si.Trans) != len(sj.Trans) {
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
			if !sameLetter(ti, tj) {
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

func sameLetter(a, b Transition) bool {
	return bitset.Same(a.Pos, b.Pos) && bitset.Same(a.Neg, b.Neg)
}
