package serialize

import (
	"io"

	"github.com/ltl2go/ltl2ba/buchi"
)

// WriteC renders a as a C state table: one array of transitions per state,
// keyed by the configured symbol prefix, per spec.md §6. Letters are
// encoded as a positive/negative bitmask pair rather than symbol names,
// since C has no direct equivalent of the predicate-name expression the
// other two writers use; this assumes sym_size fits in 64 bits, which
// holds for any formula with at most 64 distinct predicates.
func WriteC(w io.Writer, a *buchi.Automaton, prefix string) error {
	if prefix == "" {
		prefix = "ltl2ba"
	}
	bw := &errWriter{w: w}

	bw.printf("/* generated Büchi automaton */\n\n")
	bw.printf("typedef struct {\n\tint dst;\n\tunsigned long pos_mask;\n\tunsigned long neg_mask;\n} %s_transition;\n\n", prefix)
	bw.printf("typedef struct {\n\tint id;\n\tint accepting;\n\tint ntrans;\n\tconst %s_transition *trans;\n} %s_state;\n\n", prefix, prefix)

	for _, st := range a.States {
		bw.printf("static const %s_transition %s_trans_%d[] = {\n", prefix, prefix, st.ID)
		for _, tr := range st.Trans {
			bw.printf("\t{ %d, 0x%xUL, 0x%xUL },\n", tr.To, mask(tr.Pos), mask(tr.Neg))
		}
		if len(st.Trans) == 0 {
			bw.printf("\t{ 0, 0, 0 }, /* unreachable placeholder, ntrans below is 0 */\n")
		}
		bw.printf("};\n\n")
	}

	bw.printf("static const %s_state %s_states[] = {\n", prefix, prefix)
	for _, st := range a.States {
		accepting := 0
		if st.Accept {
			accepting = 1
		}
		bw.printf("\t{ %d, %d, %d, %s_trans_%d },\n", st.ID, accepting, len(st.Trans), prefix, st.ID)
	}
	bw.printf("};\n\n")

	bw.printf("static const int %s_ninit = %d;\n", prefix, len(a.Init))
	bw.printf("static const int %s_init[] = {", prefix)
	for i, id := range a.Init {
		if i > 0 {
			bw.printf(", ")
		}
		bw.printf("%d", id)
	}
	bw.printf("};\n")

	return bw.err
}

func mask(s interface{ Enumerate() []int }) uint64 {
	var m uint64
	for _, bit := range s.Enumerate() {
		if bit < 64 {
			m |= uint64(1) << uint(bit)
		}
	}
	return m
}
