package rewrite

import "github.com/ltl2go/ltl2ba/formula"

// implies is the syntactic ("structural") entailment test p ⇒ q from
// spec.md §4.1, reproduced from the reference implementation's
// parse.c:37-52 (eleven clauses, reflexivity included):
//
//  1. isequal(a, b)
//  2. b == true
//  3. a == false
//  4. b is AND(b1,b2) and a ⇒ b1 and a ⇒ b2
//  5. a is OR(a1,a2) and a1 ⇒ b and a2 ⇒ b
//  6. a is AND(a1,a2) and (a1 ⇒ b or a2 ⇒ b)
//  7. b is OR(b1,b2) and (a ⇒ b1 or a ⇒ b2)
//  8. b is U(b1,b2) and a ⇒ b2
//  9. a is V(a1,a2) and a2 ⇒ b
// 10. a is U(a1,a2) and a1 ⇒ b and a2 ⇒ b
// 11. b is V(b1,b2) and a ⇒ b1 and a ⇒ b2
//
// plus the generic structural case restricted to matching U/V operators:
// a and b are both U (or both V) and their children pairwise imply.
func implies(a, b *formula.Node) bool {
	if a == nil || b == nil {
		return false
	}
	if isEqual(a, b) {
		return true
	}
	if b.Tag == formula.True || a.Tag == formula.False {
		return true
	}
	if b.Tag == formula.And && implies(a, b.Lft) && implies(a, b.Rgt) {
		return true
	}
	if a.Tag == formula.Or && implies(a.Lft, b) && implies(a.Rgt, b) {
		return true
	}
	if a.Tag == formula.And && (implies(a.Lft, b) || implies(a.Rgt, b)) {
		return true
	}
	if b.Tag == formula.Or && (implies(a, b.Lft) || implies(a, b.Rgt)) {
		return true
	}
	if b.Tag == formula.Until && implies(a, b.Rgt) {
		return true
	}
	if a.Tag == formula.Release && implies(a.Rgt, b) {
		return true
	}
	if a.Tag == formula.Until && implies(a.Lft, b) && implies(a.Rgt, b) {
		return true
	}
	if b.Tag == formula.Release && implies(a, b.Lft) && implies(a, b.Rgt) {
		return true
	}
	if a.Tag == b.Tag && isTemporalBinary(a.Tag) {
		return implies(a.Lft, b.Lft) && implies(a.Rgt, b.Rgt)
	}
	return false
}

// isTemporalBinary restricts the generic structural case (the one after
// clause 11) to U/V, matching parse.c:51-52
// exactly: AND/OR entailment is already covered by clauses 4-7 above, and
// Implies/Equiv never reach this function since they are desugared before
// normalization runs.
func isTemporalBinary(t formula.Tag) bool {
	switch t {
	case formula.Until, formula.Release:
		return true
	default:
		return false
	}
}

// isEqual is structural equality over (possibly not-yet-canonicalized)
// trees.
func isEqual(a, b *formula.Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	if a.Tag == formula.Pred {
		return a.Sym == b.Sym
	}
	return isEqual(a.Lft, b.Lft) && isEqual(a.Rgt, b.Rgt)
}
