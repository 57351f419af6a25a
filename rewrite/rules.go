package rewrite

import "github.com/ltl2go/ltl2ba/formula"

// rewriteOnce applies the bottom-up rewrite rules of spec.md §4.1 to a
// single node, assuming its children are already in fixed-point form.
// Normalize calls this repeatedly (via rewriteFixedPoint) until no rule
// fires, matching "applied bottom-up, to fixed point" in the spec.
//
// tru/fls helpers keep the identity/annihilation rules terse;
// every rule below is named after its clause in spec.md §4.1.
func rewriteOnce(n *formula.Node) (*formula.Node, bool) {
	switch n.Tag {
	case formula.Until:
		return rewriteUntil(n)
	case formula.Release:
		return rewriteRelease(n)
	case formula.Next:
		return rewriteNext(n)
	case formula.And:
		return rewriteAnd(n)
	case formula.Or:
		return rewriteOr(n)
	default:
		return n, false
	}
}

func isTrue(n *formula.Node) bool  { return n != nil && n.Tag == formula.True }
func isFalse(n *formula.Node) bool { return n != nil && n.Tag == formula.False }
func tru() *formula.Node           { return formula.NewLeaf(formula.True) }
func fls() *formula.Node           { return formula.NewLeaf(formula.False) }

// isEventually reports p U q where p == true (F q).
func isEventually(n *formula.Node) bool {
	return n.Tag == formula.Until && isTrue(n.Lft)
}

// isAlways reports false V q (G q).
func isAlways(n *formula.Node) bool {
	return n.Tag == formula.Release && isFalse(n.Lft)
}

func rewriteUntil(n *formula.Node) (*formula.Node, bool) {
	p, q := n.Lft, n.Rgt
	switch {
	case isTrue(q):
		return tru(), true
	case isFalse(q):
		return fls(), true
	case isFalse(p):
		return q, true
	case implies(p, q):
		return q, true
	}
	// (p U q) U p -> q U p
	if p.Tag == formula.Until && isEqual(p.Lft, q) {
		return formula.NewBinary(formula.Until, p.Rgt, q), true
	}
	// p U (q U r) -> q U r, when p => q
	if q.Tag == formula.Until && implies(p, q.Lft) {
		return q, true
	}
	// X p U X q -> X(p U q)
	if p.Tag == formula.Next && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.Until, p.Lft, q.Lft)), true
	}
	// true U X p -> X(true U p)
	if isTrue(p) && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.Until, tru(), q.Lft)), true
	}
	// true U (false V (true U p)) -> false V (true U p)
	if isTrue(p) && isAlways(q) && isEventually(q.Rgt) {
		return q, true
	}
	// if NOT q => p then p U q -> true U q
	negQ := formula.NewUnary(formula.Not, q)
	pushed, err := pushNegation(negQ)
	if err == nil && implies(pushed, p) && !isTrue(p) {
		return formula.NewBinary(formula.Until, tru(), q), true
	}
	return n, false
}

func rewriteRelease(n *formula.Node) (*formula.Node, bool) {
	p, q := n.Lft, n.Rgt
	switch {
	case isFalse(q):
		return fls(), true
	case isTrue(q):
		return tru(), true
	case isTrue(p):
		return q, true
	case implies(q, p):
		return q, true
	}
	// (p V q) V p -> q V p  (dual of U rule)
	if p.Tag == formula.Release && isEqual(p.Lft, q) {
		return formula.NewBinary(formula.Release, p.Rgt, q), true
	}
	// p V (q V r) -> q V r, when q => p
	if q.Tag == formula.Release && implies(q.Lft, p) {
		return q, true
	}
	// X p V X q -> X(p V q)
	if p.Tag == formula.Next && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.Release, p.Lft, q.Lft)), true
	}
	// false V X p -> X(false V p)
	if isFalse(p) && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.Release, fls(), q.Lft)), true
	}
	// false V (true U (false V p)) -> true U (false V p)
	if isFalse(p) && isEventually(q) && isAlways(q.Rgt) {
		return q, true
	}
	// if p => NOT q then p V q -> false V q
	negQ := formula.NewUnary(formula.Not, q)
	pushed, err := pushNegation(negQ)
	if err == nil && implies(p, pushed) && !isFalse(p) {
		return formula.NewBinary(formula.Release, fls(), q), true
	}
	return n, false
}

func rewriteNext(n *formula.Node) (*formula.Node, bool) {
	child := n.Lft
	// X(false V (true U p)) -> false V (true U p)
	if isAlways(child) && isEventually(child.Rgt) {
		return child, true
	}
	// X(true U (false V p)) -> true U (false V p)
	if isEventually(child) && isAlways(child.Rgt) {
		return child, true
	}
	return n, false
}

func rewriteAnd(n *formula.Node) (*formula.Node, bool) {
	p, q := n.Lft, n.Rgt
	switch {
	case isTrue(p):
		return q, true
	case isTrue(q):
		return p, true
	case isFalse(p), isFalse(q):
		return fls(), true
	case isEqual(p, q):
		return p, true
	case implies(p, q):
		return p, true
	case implies(q, p):
		return q, true
	}
	// contradiction: p && q -> false when p => !q
	negQ, err := pushNegation(formula.NewUnary(formula.Not, q))
	if err == nil && implies(p, negQ) {
		return fls(), true
	}
	// GF p && GF q -> GF(p && q); G p ≡ false V p, F p ≡ true U p
	if isAlways(p) && isEventually(p.Rgt) && isAlways(q) && isEventually(q.Rgt) {
		inner := formula.NewBinary(formula.And, p.Rgt.Rgt, q.Rgt.Rgt)
		return formula.NewBinary(formula.Release, fls(), formula.NewBinary(formula.Until, tru(), inner)), true
	}
	// X p && X q -> X(p && q)
	if p.Tag == formula.Next && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.And, p.Lft, q.Lft)), true
	}
	return n, false
}

func rewriteOr(n *formula.Node) (*formula.Node, bool) {
	p, q := n.Lft, n.Rgt
	switch {
	case isFalse(p):
		return q, true
	case isFalse(q):
		return p, true
	case isTrue(p), isTrue(q):
		return tru(), true
	case isEqual(p, q):
		return p, true
	case implies(p, q):
		return q, true
	case implies(q, p):
		return p, true
	}
	// tautology: p || q -> true when !p => q
	negP, err := pushNegation(formula.NewUnary(formula.Not, p))
	if err == nil && implies(negP, q) {
		return tru(), true
	}
	// FG p || FG q -> FG(p || q); F p ≡ true U p, G p ≡ false V p
	if isEventually(p) && isAlways(p.Rgt) && isEventually(q) && isAlways(q.Rgt) {
		inner := formula.NewBinary(formula.Or, p.Rgt.Rgt, q.Rgt.Rgt)
		return formula.NewBinary(formula.Until, tru(), formula.NewBinary(formula.Release, fls(), inner)), true
	}
	// X p || X q -> X(p || q)
	if p.Tag == formula.Next && q.Tag == formula.Next {
		return formula.NewUnary(formula.Next, formula.NewBinary(formula.Or, p.Lft, q.Lft)), true
	}
	return n, false
}

// rewriteFixedPoint applies rewriteOnce bottom-up, re-descending whenever
// a rule fires, until no rule applies anywhere in the tree. Enumeration
// order does not affect the fixed point reached (spec.md §8,
// "logic-simplification confluence") because every rule strictly shrinks
// or reshapes the tree toward one of a finite set of normal forms.
func rewriteFixedPoint(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	for {
		n.Lft = rewriteFixedPoint(n.Lft)
		n.Rgt = rewriteFixedPoint(n.Rgt)
		next, changed := rewriteOnce(n)
		if !changed {
			return n
		}
		n = next
	}
}
