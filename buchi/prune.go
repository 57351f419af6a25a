package buchi

// pruneUnreachable drops every (S, layer) pair not reachable from an
// initial state (spec.md §4.4's simplification step 1), compacting the
// surviving states into a dense, renumbered slice.
func pruneUnreachable(a *Automaton) {
	reachable := make([]bool, len(a.States))
	var stack []int32
	for _, id := range a.Init {
		if !reachable[id] {
			reachable[id] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		id := stack[n]
		stack = stack[:n]
		for _, tr := range a.States[id].Trans {
			if !reachable[tr.To] {
				reachable[tr.To] = true
				stack = append(stack, tr.To)
			}
		}
	}

	remap := make([]int32, len(a.States))
	out := make([]*State, 0, len(a.States))
	for old, st := range a.States {
		if !reachable[old] {
			remap[old] = -1
			continue
		}
		remap[old] = int32(len(out))
		out = append(out, st)
	}
	for _, st := range out {
		st.ID = remap[st.ID]
		kept := st.Trans[:0:0]
		for _, tr := range st.Trans {
			if remap[tr.To] >= 0 {
				tr.To = remap[tr.To]
				kept = append(kept, tr)
			}
		}
		st.Trans = kept
	}
	for i, id := range a.Init {
		a.Init[i] = remap[id]
	}
	for i := range a.InitTrans {
		a.InitTrans[i].To = remap[a.InitTrans[i].To]
	}
	a.States = out
}
