package serialize

import (
	"io"

	"github.com/ltl2go/ltl2ba/buchi"
)

// WriteDot renders a as a Graphviz directed-graph description: accepting
// states get a double circle, the synthetic entry point is a filled dot
// with edges labelled from a.InitTrans, per spec.md §6.
func WriteDot(w io.Writer, a *buchi.Automaton, names SymbolNames) error {
	bw := &errWriter{w: w}
	bw.printf("digraph ltl2ba {\n\trankdir=LR;\n")
	bw.printf("\t__start [shape=point];\n")

	for _, st := range a.States {
		shape := "circle"
		if st.Accept {
			shape = "doublecircle"
		}
		bw.printf("\t%s [shape=%s,label=%q];\n", stateLabel(a, st.ID), shape, stateLabel(a, st.ID))
	}

	for _, tr := range a.InitTrans {
		bw.printf("\t__start -> %s [label=%q];\n", stateLabel(a, tr.To), letterExpr(tr.Pos, tr.Neg, names))
	}
	for _, st := range a.States {
		for _, tr := range st.Trans {
			bw.printf("\t%s -> %s [label=%q];\n", stateLabel(a, st.ID), stateLabel(a, tr.To), letterExpr(tr.Pos, tr.Neg, names))
		}
	}

	bw.printf("}\n")
	return bw.err
}
