package rewrite

import (
	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/translator"
)

// desugar removes IMPLIES and EQUIV everywhere, bottom-up, per spec.md
// §4.1: "IMPLIES → OR NOT; EQUIV → (lft ∧ rgt) ∨ (¬lft ∧ ¬rgt); result is
// re-rewritten."
func desugar(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	n.Lft = desugar(n.Lft)
	n.Rgt = desugar(n.Rgt)

	switch n.Tag {
	case formula.Implies:
		return formula.NewBinary(formula.Or, formula.NewUnary(formula.Not, n.Lft), n.Rgt)
	case formula.Equiv:
		l, r := n.Lft, n.Rgt
		posConj := formula.NewBinary(formula.And, l, r)
		negConj := formula.NewBinary(formula.And,
			formula.NewUnary(formula.Not, cloneForNegation(l)),
			formula.NewUnary(formula.Not, cloneForNegation(r)))
		return formula.NewBinary(formula.Or, posConj, negConj)
	default:
		return n
	}
}

// cloneForNegation makes a shallow structural copy so the same subtree
// isn't shared between the positive and negated conjuncts of an unfolded
// EQUIV; push_negation mutates in place in the reference implementation,
// which this avoids by never aliasing a node under two parents.
func cloneForNegation(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	c := &formula.Node{Tag: n.Tag, Sym: n.Sym, SymName: n.SymName, Id: -1}
	c.Lft = cloneForNegation(n.Lft)
	c.Rgt = cloneForNegation(n.Rgt)
	return c
}

// pushNegation rewrites NOT downward using the dualities in spec.md §4.1,
// grounded on rewrt.c's push_negation: NOT TRUE ↔ FALSE, NOT NOT p ↔ p,
// NOT(p U q) ↔ (NOT p) V (NOT q), NOT(p V q) ↔ (NOT p) U (NOT q),
// NOT X p ↔ X NOT p, De Morgan for AND/OR. At its fixed point NOT is
// adjacent only to PRED.
func pushNegation(n *formula.Node) (*formula.Node, error) {
	if n == nil {
		return nil, nil
	}
	var err error
	if n.Tag != formula.Not {
		n.Lft, err = pushNegation(n.Lft)
		if err != nil {
			return nil, err
		}
		n.Rgt, err = pushNegation(n.Rgt)
		return n, err
	}

	child := n.Lft
	if child == nil {
		return nil, translator.Internalf("rewrite", "push-negation called on NOT with no child")
	}

	switch child.Tag {
	case formula.True:
		return formula.NewLeaf(formula.False), nil
	case formula.False:
		return formula.NewLeaf(formula.True), nil
	case formula.Pred:
		return n, nil
	case formula.Not:
		return pushNegation(child.Lft)
	case formula.Next:
		inner := formula.NewUnary(formula.Not, child.Lft)
		pushed, err := pushNegation(inner)
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.Next, pushed), nil
	case formula.Until, formula.Release:
		dual := formula.Release
		if child.Tag == formula.Release {
			dual = formula.Until
		}
		lft, err := pushNegation(formula.NewUnary(formula.Not, child.Lft))
		if err != nil {
			return nil, err
		}
		rgt, err := pushNegation(formula.NewUnary(formula.Not, child.Rgt))
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(dual, lft, rgt), nil
	case formula.And, formula.Or:
		dual := formula.Or
		if child.Tag == formula.Or {
			dual = formula.And
		}
		lft, err := pushNegation(formula.NewUnary(formula.Not, child.Lft))
		if err != nil {
			return nil, err
		}
		rgt, err := pushNegation(formula.NewUnary(formula.Not, child.Rgt))
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(dual, lft, rgt), nil
	default:
		return nil, translator.Internalf("rewrite", "push-negation: unexpected child tag %v", child.Tag)
	}
}

// expandDerived rewrites ALWAYS and EVENTUALLY into their U/V definitions
// (spec.md §4.1's F p ≡ true U p, G p ≡ false V p) so no ALWAYS/EVENTUALLY
// node survives normalization, per the invariant in spec.md §3/§8.
func expandDerived(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	n.Lft = expandDerived(n.Lft)
	n.Rgt = expandDerived(n.Rgt)
	switch n.Tag {
	case formula.Always:
		return formula.NewBinary(formula.Release, formula.NewLeaf(formula.False), n.Lft)
	case formula.Eventually:
		return formula.NewBinary(formula.Until, formula.NewLeaf(formula.True), n.Lft)
	default:
		return n
	}
}
