// Package vwaa builds the very-weak alternating automaton of spec.md §3,
// §4.2: mk_alternating(normalized_root) → VWAA. States are subformula
// indices; each state's outgoing transitions are built bottom-up by the
// tableau recursion in spec.md's §4.2 table, combining children's
// transition sets with the ⊗ product (union of letters, union of target
// sets, discarding incompatible (pos ∩ neg ≠ ∅) combinations).
//
// Grounded on the incremental, index-returning builder style of
// nfa.Builder in the teacher package (each AddX call appends one state and
// returns its id); here the "states" are already identified by the
// rewrite.Cache's hash-cons indices, so the builder fills in Trans[id] for
// every id instead of allocating new ones.
package vwaa

import (
	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/internal/bitset"
	"github.com/ltl2go/ltl2ba/rewrite"
	"github.com/ltl2go/ltl2ba/translator"
)

// Transition is an alternating transition (pos, neg, to) from spec.md §3:
// pos/neg are letter bitsets over the symbolic alphabet, to is a bitset
// over subformula indices denoting universal branching (conjunction of
// target states). An empty To denotes one-step acceptance.
type Transition struct {
	Pos, Neg bitset.Set
	To       bitset.Set
}

// Automaton is the VWAA produced by Build.
type Automaton struct {
	SymCount  int
	NodeCount int
	Root      int // subformula index of the normalized formula's root
	// Trans[i] holds state i's outgoing alternating transitions.
	Trans [][]Transition
	// FinalSet marks the eventuality (U-headed) subformulas, spec.md §3.
	FinalSet bitset.Set
}

// Build runs mk_alternating over a formula already processed by
// rewrite.Normalize. cache.byID is already a bottom-up topological order
// (a node is interned only after both its children), so states are filled
// in index order without a separate recursion.
func Build(root *formula.Node, cache *rewrite.Cache, symCount int, ctx translator.Context) (*Automaton, error) {
	n := cache.Len()
	a := &Automaton{
		SymCount:  symCount,
		NodeCount: n,
		Root:      root.Id,
		Trans:     make([][]Transition, n),
		FinalSet:  bitset.New(n),
	}

	for id := 0; id < n; id++ {
		node := cache.Node(id)
		trans, err := a.buildState(id, node)
		if err != nil {
			return nil, err
		}
		if ctx.SimpFly {
			trans = dominance(trans)
		}
		a.Trans[id] = trans
		if node.Tag == formula.Until {
			a.FinalSet.Add(id)
		}
	}
	return a, nil
}

func (a *Automaton) buildState(id int, n *formula.Node) ([]Transition, error) {
	switch n.Tag {
	case formula.True:
		return []Transition{{Pos: bitset.New(a.SymCount), Neg: bitset.New(a.SymCount), To: bitset.New(a.NodeCount)}}, nil
	case formula.False:
		return nil, nil
	case formula.Pred:
		pos := bitset.New(a.SymCount)
		pos.Add(n.Sym)
		return []Transition{{Pos: pos, Neg: bitset.New(a.SymCount), To: bitset.New(a.NodeCount)}}, nil
	case formula.Not:
		if n.Lft == nil || n.Lft.Tag != formula.Pred {
			return nil, translator.Internalf("vwaa", "NOT node %d not immediately over PRED", id)
		}
		neg := bitset.New(a.SymCount)
		neg.Add(n.Lft.Sym)
		return []Transition{{Pos: bitset.New(a.SymCount), Neg: neg, To: bitset.New(a.NodeCount)}}, nil
	case formula.Next:
		to := bitset.New(a.NodeCount)
		to.Add(n.Lft.Id)
		return []Transition{{Pos: bitset.New(a.SymCount), Neg: bitset.New(a.SymCount), To: to}}, nil
	case formula.And:
		return product(a.Trans[n.Lft.Id], a.Trans[n.Rgt.Id], a.SymCount, a.NodeCount), nil
	case formula.Or:
		return union(a.Trans[n.Lft.Id], a.Trans[n.Rgt.Id]), nil
	case formula.Until:
		// trans(q) ∪ { (α, β, γ ∪ {p U q}) : (α,β,γ) ∈ trans(p) }
		out := append([]Transition{}, a.Trans[n.Rgt.Id]...)
		for _, t := range a.Trans[n.Lft.Id] {
			to := t.To.Dup()
			to.Add(id)
			out = append(out, Transition{Pos: t.Pos.Dup(), Neg: t.Neg.Dup(), To: to})
		}
		return out, nil
	case formula.Release:
		// { (α∪α', β∪β', γ∪γ'∪{pVq}) : p×q } ∪ { (α,β,γ∪{pVq}) : trans(q) }
		var out []Transition
		for _, tp := range a.Trans[n.Lft.Id] {
			for _, tq := range a.Trans[n.Rgt.Id] {
				pos := bitset.UnionOf(tp.Pos, tq.Pos)
				neg := bitset.UnionOf(tp.Neg, tq.Neg)
				if !bitset.Disjoint(pos, neg) {
					continue
				}
				to := bitset.UnionOf(tp.To, tq.To)
				to.Add(id)
				out = append(out, Transition{Pos: pos, Neg: neg, To: to})
			}
		}
		for _, tq := range a.Trans[n.Rgt.Id] {
			to := tq.To.Dup()
			to.Add(id)
			out = append(out, Transition{Pos: tq.Pos.Dup(), Neg: tq.Neg.Dup(), To: to})
		}
		return out, nil
	default:
		return nil, translator.Internalf("vwaa", "unexpected normalized tag %v at state %d", n.Tag, id)
	}
}

// product computes trans(p) ⊗ trans(q): the union of every pair's pos,
// neg, and to, discarding any combination whose pos and neg overlap
// (spec.md §4.2).
func product(ps, qs []Transition, symCount, nodeCount int) []Transition {
	if len(ps) == 0 || len(qs) == 0 {
		return nil
	}
	out := make([]Transition, 0, len(ps)*len(qs))
	for _, p := range ps {
		for _, q := range qs {
			pos := bitset.UnionOf(p.Pos, q.Pos)
			neg := bitset.UnionOf(p.Neg, q.Neg)
			if !bitset.Disjoint(pos, neg) {
				continue
			}
			to := bitset.UnionOf(p.To, q.To)
			out = append(out, Transition{Pos: pos, Neg: neg, To: to})
		}
	}
	return out
}

func union(ps, qs []Transition) []Transition {
	out := make([]Transition, 0, len(ps)+len(qs))
	for _, p := range ps {
		out = append(out, Transition{Pos: p.Pos.Dup(), Neg: p.Neg.Dup(), To: p.To.Dup()})
	}
	for _, q := range qs {
		out = append(out, Transition{Pos: q.Pos.Dup(), Neg: q.Neg.Dup(), To: q.To.Dup()})
	}
	return out
}

// Dominates reports whether d dominates v under spec.md §4.2's order:
// d.Pos ⊆ v.Pos, d.Neg ⊆ v.Neg, d.To ⊆ v.To.
func Dominates(d, v Transition) bool {
	return bitset.Subset(d.Pos, v.Pos) && bitset.Subset(d.Neg, v.Neg) && bitset.Subset(d.To, v.To)
}

// dominance drops every transition dominated by a distinct other
// transition in the same set (spec.md §4.2's on-the-fly simplification).
func dominance(trans []Transition) []Transition {
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
			if Dominates(trans[i], trans[j]) {
				kept[j] = false
			}
		}
	}
	out := make([]Transition, 0, len(trans))
	for i, k := range kept {
		if k {
			out = append(out, trans[i])
		}
	}
	return out
}
