// Package buchi builds the final, degeneralized Büchi automaton of spec.md
// §3, §4.4: mk_buchi(TGBA) → BA. A BA state is a (TGBA state, layer) pair;
// acceptance is state-based (layer == F) instead of transition-based,
// trading state count for a simpler acceptance test downstream in the
// serializers.
//
// Grounded on the same lazy, worklist-driven builder shape as tgba.Build
// and the teacher's dfa.lazy.Builder: states are discovered on demand from
// a work stack and deduplicated by a composite key, here (TGBA state id,
// layer) instead of a node-index bitset.
package buchi

import (
	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/tgba"
	"github.com/ltl2go/ltl2ba/translator"
)

// Transition is a BA transition (pos, neg, to) from spec.md §3.
type Transition struct {
	Pos, Neg bitset.Set
	To       int32
}

// State is a BA state: the TGBA state it layers over, its layer, and
// whether it's accepting (layer == F).
type State struct {
	ID       int32
	TGBA     int32 // source TGBA state id, spec.md §8 invariant 4
	Layer    int   // 0 <= Layer <= F
	Accept   bool
	Trans    []Transition
	Incoming int32 // not assigned by this package; stays 0
	Removed  bool
	RedirectTo int32
}

// Automaton is the BA produced by Build, ready for serialization.
type Automaton struct {
	States []*State
	// Init holds the BA states reachable as the target of an initial
	// transition; pruneUnreachable starts its traversal here.
	Init []int32
	// InitTrans mirrors tgba.Automaton's InitTrans: the labelled entry
	// edges from the (virtual, state-less) starting point into Init,
	// carried through degeneralization so serializers that render an
	// explicit "init" state (as the model-checker never-claim format
	// does) have the label the automaton actually requires on its first
	// step, rather than losing it to Init's bare state-id list.
	InitTrans []Transition
	F         int // |final_set|
}

type pairKey struct {
	tgbaState int32
	layer     int
}

type builder struct {
	a      *Automaton
	t      *tgba.Automaton
	byKey  map[pairKey]int32
	stack  []int32
}

func (b *builder) resolve(tgbaState int32, layer int) int32 {
	k := pairKey{tgbaState, layer}
	if id, ok := b.byKey[k]; ok {
		return id
	}
	id := int32(len(b.a.States))
	st := &State{
		ID:         id,
		TGBA:       tgbaState,
		Layer:      layer,
		Accept:     layer == b.a.F,
		RedirectTo: -1,
	}
	b.a.States = append(b.a.States, st)
	b.byKey[k] = id
	b.stack = append(b.stack, id)
	return id
}

// advance repeatedly increments layer while the layer-th acceptance mark
// (in final_set's fixed index order) is present in final, per spec.md
// §4.4. It never advances past F.
func advance(layer, f int, final bitset.Set) int {
	for layer < f && final.In(layer) {
		layer++
	}
	return layer
}

// Build runs mk_buchi over t.
func Build(t *tgba.Automaton, ctx translator.Context) (*Automaton, error) {
	a := &Automaton{F: t.FinalSetSize}
	b := &builder{a: a, t: t, byKey: make(map[pairKey]int32)}

	// spec.md §4.4: "the initial layer for each initial S is 0" — the
	// InitTrans label is carried through for serializers but does not
	// itself advance a layer.
	for i, initState := range t.Init {
		to := b.resolve(initState, 0)
		a.Init = append(a.Init, to)
		it := t.InitTrans[i]
		a.InitTrans = append(a.InitTrans, Transition{Pos: it.Pos.Dup(), Neg: it.Neg.Dup(), To: to})
	}

	for len(b.stack) > 0 {
		n := len(b.stack) - 1
		id := b.stack[n]
		b.stack = b.stack[:n]
		st := a.States[id]
		if st.Trans != nil {
			continue
		}
		tgSt := t.States[st.TGBA]
		trans := make([]Transition, 0, len(tgSt.Trans))
		for _, tt := range tgSt.Trans {
			layer := st.Layer
			if layer == a.F {
				layer = 0 // a final BA transition resets the layer on the next step
			}
			newLayer := advance(layer, a.F, tt.Final)
			to := b.resolve(tt.To, newLayer)
			trans = append(trans, Transition{Pos: tt.Pos.Dup(), Neg: tt.Neg.Dup(), To: to})
		}
		st.Trans = trans
	}

	pruneUnreachable(a)
	if ctx.SimpDiff {
		simplifyBAFixedPoint(a, ctx)
	}
	return a, nil
}
