package rewrite

import (
	"sort"
	"strings"

	"github.com/ltl2go/ltl2ba/formula"
)

// canonicalKey builds the pre-order traversal key used both to sort a
// commutative chain's children and as the hash-cons cache key, grounded on
// rewrt.c's sdump/DoDump: one character per operator, emitted before its
// operands, recursing right child before left for the binary/commutative operators (matching the
// reference's traversal order exactly keeps two structurally-equal trees
// producing the same key regardless of how they were built).
func canonicalKey(n *formula.Node) string {
	var b strings.Builder
	dumpKey(n, &b)
	return b.String()
}

func dumpKey(n *formula.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Tag {
	case formula.Pred:
		b.WriteString(n.SymName)
	case formula.Until:
		b.WriteByte('U')
		dumpKey(n.Rgt, b)
		dumpKey(n.Lft, b)
	case formula.Release:
		b.WriteByte('V')
		dumpKey(n.Rgt, b)
		dumpKey(n.Lft, b)
	case formula.Or:
		b.WriteByte('|')
		dumpKey(n.Rgt, b)
		dumpKey(n.Lft, b)
	case formula.And:
		b.WriteByte('&')
		dumpKey(n.Rgt, b)
		dumpKey(n.Lft, b)
	case formula.Next:
		b.WriteByte('X')
		dumpKey(n.Lft, b)
	case formula.Not:
		b.WriteByte('!')
		dumpKey(n.Lft, b)
	case formula.True:
		b.WriteByte('T')
	case formula.False:
		b.WriteByte('F')
	default:
		b.WriteByte('?')
	}
}

// rightLink re-associates every AND/OR spine to be right-linked, per
// spec.md §4.1 ("A canonical chain is a right-associated spine...").
// Grounded on rewrt.c's right_linked.
func rightLink(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	if n.Tag == formula.And || n.Tag == formula.Or {
		for n.Lft != nil && n.Lft.Tag == n.Tag {
			tmp := n.Lft
			n.Lft = tmp.Rgt
			tmp.Rgt = n
			n = tmp
		}
	}
	n.Lft = rightLink(n.Lft)
	n.Rgt = rightLink(n.Rgt)
	return n
}

// flattenChain collects every leaf operand of a right-linked AND/OR chain
// headed by tag.
func flattenChain(n *formula.Node, tag formula.Tag, out *[]*formula.Node) {
	if n == nil {
		return
	}
	if n.Tag == tag {
		flattenChain(n.Rgt, tag, out)
		flattenChain(n.Lft, tag, out)
		return
	}
	*out = append(*out, n)
}

// rebuildChain rebuilds a right-linked chain from a sorted, deduplicated
// operand slice.
func rebuildChain(tag formula.Tag, operands []*formula.Node) *formula.Node {
	if len(operands) == 0 {
		if tag == formula.And {
			return tru()
		}
		return fls()
	}
	n := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		n = formula.NewBinary(tag, operands[i], n)
	}
	return n
}

// canonicalizeChain implements the sorting/absorption half of rewrt.c's
// Canonical(): flatten the chain, drop the identity element, short-circuit
// on the annihilating element, sort operands by canonicalKey, and drop
// duplicates and operands subsumed by another (p && q -> p when p ⇒ q,
// dually p || q -> q when p ⇒ q — "implication-based subsumption" in
// spec.md §4.1).
func canonicalizeChain(n *formula.Node) *formula.Node {
	tag := n.Tag
	var flat []*formula.Node
	flattenChain(n, tag, &flat)

	identity, annihilator := formula.True, formula.False
	if tag == formula.Or {
		identity, annihilator = formula.False, formula.True
	}

	kept := make([]*formula.Node, 0, len(flat))
	for _, f := range flat {
		if f.Tag == identity {
			continue
		}
		if f.Tag == annihilator {
			return formula.NewLeaf(annihilator)
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return formula.NewLeaf(identity)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return canonicalKey(kept[i]) < canonicalKey(kept[j])
	})

	final := kept[:0:0]
	for _, f := range kept {
		subsumed := false
		for _, g := range final {
			if isEqual(f, g) {
				subsumed = true
				break
			}
			// p && q -> p when p => q (q is redundant); dually for ||.
			if tag == formula.And && implies(g, f) {
				subsumed = true
				break
			}
			if tag == formula.Or && implies(f, g) {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		// Also drop any earlier kept operand this one subsumes.
		remaining := final[:0:0]
		for _, g := range final {
			if tag == formula.And && implies(f, g) {
				continue
			}
			if tag == formula.Or && implies(g, f) {
				continue
			}
			remaining = append(remaining, g)
		}
		final = append(remaining, f)
	}

	if len(final) == 1 {
		return final[0]
	}
	return rebuildChain(tag, final)
}
