// Package serialize renders a buchi.Automaton in the three textual forms
// named by spec.md §6: model-checker never-claim syntax, a C state table,
// and a graph-description form. Bit-exact syntax is left to each writer;
// only the semantics (labels, accepting states, transitions) are shared.
package serialize

import (
	"strings"

	"github.com/ltl2go/ltl2ba/internal/bitset"
)

// SymbolNames resolves a predicate symbol index to its source name. The
// lexer's SymbolTable satisfies this directly.
type SymbolNames interface {
	Name(id int) string
}

// letterExpr renders a (pos, neg) literal conjunction as a boolean
// expression: true is "1", a positive literal is its predicate name, a
// negative literal is "!name", and multiple literals join with "&&"
// (spec.md §6's description of the never-claim format, generalized to the
// other two writers as well since none of them specify a different
// convention).
func letterExpr(pos, neg bitset.Set, names SymbolNames) string {
	var terms []string
	for _, i := range pos.Enumerate() {
		terms = append(terms, names.Name(i))
	}
	for _, i := range neg.Enumerate() {
		terms = append(terms, "!"+names.Name(i))
	}
	if len(terms) == 0 {
		return "1"
	}
	return strings.Join(terms, " && ")
}
