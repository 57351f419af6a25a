// Package rewrite implements spec.md §4.1: parse → normalize → canonicalize.
// Normalize desugars IMPLIES/EQUIV/ALWAYS/EVENTUALLY, pushes NOT to the
// leaves, applies the bottom-up rewrite rules to a fixed point (when
// enabled), then canonicalizes: right-links every AND/OR spine, sorts and
// dedups each chain by its canonicalKey, and hash-conses the result so that
// after canonicalization structural equality of subtrees is index equality
// (spec.md §4.1, "Canonicalization").
package rewrite

import (
	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/translator"
)

// Cache is the hash-cons table keyed by canonicalKey, assigning each
// distinct normalized subformula the dense index spec.md §3 calls
// "subformula identity."
type Cache struct {
	index map[string]*formula.Node
	byID  []*formula.Node
}

// NewCache returns an empty hash-cons table.
func NewCache() *Cache {
	return &Cache{index: make(map[string]*formula.Node)}
}

// Len returns node_id + 1: the number of distinct subformulas interned.
func (c *Cache) Len() int { return len(c.byID) }

// Node returns the interned node for a subformula index.
func (c *Cache) Node(id int) *formula.Node { return c.byID[id] }

// intern returns the canonical (possibly shared) node for n, assigning a
// fresh index on first sight.
func (c *Cache) intern(n *formula.Node) *formula.Node {
	key := canonicalKey(n)
	if existing, ok := c.index[key]; ok {
		return existing
	}
	n.Id = len(c.byID)
	c.index[key] = n
	c.byID = append(c.byID, n)
	return n
}

// canonicalize right-links AND/OR spines, recursively canonicalizes
// children first (bottom-up, matching rewrt.c's canonical()), applies the
// chain-level sort/dedup/absorption pass at every AND/OR node, and hash
// conses every distinct result.
func (c *Cache) canonicalize(n *formula.Node) *formula.Node {
	if n == nil {
		return nil
	}
	n = rightLink(n)
	n.Lft = c.canonicalize(n.Lft)
	n.Rgt = c.canonicalize(n.Rgt)

	if n.Tag == formula.And || n.Tag == formula.Or {
		n = canonicalizeChain(n)
		if n.Tag == formula.And || n.Tag == formula.Or {
			n.Lft = c.canonicalize(n.Lft)
			n.Rgt = c.canonicalize(n.Rgt)
		}
	}
	return c.intern(n)
}

// Normalize runs parse → normalize → canonicalize for a freshly-parsed
// root, per spec.md §4.1. logicSimplify gates the rewrite-rule pass
// (CLI's -l disables it); push-negation and the IMPLIES/EQUIV/ALWAYS/
// EVENTUALLY desugaring always run, since they establish the invariant
// every later stage depends on (spec.md §3, §8 invariant 1).
func Normalize(root *formula.Node, logicSimplify bool) (*formula.Node, *Cache, error) {
	if root == nil {
		return nil, nil, translator.Newf(translator.Semantic, "rewrite", "empty formula", -1, "")
	}

	n := desugar(root)
	n = expandDerived(n)
	n, err := pushNegationTop(n)
	if err != nil {
		return nil, nil, err
	}

	if logicSimplify {
		n = rewriteFixedPoint(n)
		n, err = pushNegationTop(n)
		if err != nil {
			return nil, nil, err
		}
	}

	cache := NewCache()
	n = cache.canonicalize(n)
	return n, cache, nil
}

// pushNegationTop walks the whole tree, pushing negation at every NOT node
// found (pushNegation itself only handles the node it's called on, mirroring
// rewrt.c's Assert that push_negation is only ever invoked on a NOT node).
func pushNegationTop(n *formula.Node) (*formula.Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Tag == formula.Not {
		return pushNegation(n)
	}
	var err error
	n.Lft, err = pushNegationTop(n.Lft)
	if err != nil {
		return nil, err
	}
	n.Rgt, err = pushNegationTop(n.Rgt)
	return n, err
}
