package tgba

// computeSCC runs Tarjan's algorithm (spec.md §4.3 step 1, §9: "node
// colour 'white' is encoded as incoming == 0") over the TGBA's states and
// stores each state's component id in Incoming, reusing the in-degree
// field per spec.md §5's lifecycle note. The per-SCC union of Final marks
// over internal edges is computed separately, by badSCCs, for the
// transition/state simplification passes.
//
// Implemented iteratively (an explicit stack of frames) since formulas —
// and therefore TGBA state counts — are not bounded in the way a plain
// recursive walk could rely on, even though spec.md §9 notes recursion
// depth is in practice bounded by formula size.
func computeSCC(a *Automaton) {
	n := len(a.States)
	index := make([]int32, n)
	low := make([]int32, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var tstack []int32
	nextIndex := int32(0)
	nextSCC := int32(1) // SCC ids start at 1 so "incoming == 0" still means white/unvisited

	type frame struct {
		v       int32
		edgeIdx int
	}
	var callStack []frame

	for start := int32(0); start < int32(n); start++ {
		if index[start] != -1 {
			continue
		}
		callStack = append(callStack, frame{v: start})
		index[start] = nextIndex
		low[start] = nextIndex
		nextIndex++
		tstack = append(tstack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.v
			if top.edgeIdx < len(a.States[v].Trans) {
				w := a.States[v].Trans[top.edgeIdx].To
				top.edgeIdx++
				if index[w] == -1 {
					index[w] = nextIndex
					low[w] = nextIndex
					nextIndex++
					tstack = append(tstack, w)
					onStack[w] = true
					callStack = append(callStack, frame{v: w})
				} else if onStack[w] {
					if index[w] < low[v] {
						low[v] = index[w]
					}
				}
				continue
			}
			// done with v: pop, propagate low-link to parent, close SCC if root
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}
			if low[v] == index[v] {
				sccID := nextSCC
				nextSCC++
				for {
					w := tstack[len(tstack)-1]
					tstack = tstack[:len(tstack)-1]
					onStack[w] = false
					a.States[w].Incoming = sccID
					if w == v {
						break
					}
				}
			}
		}
	}
}

// badSCCs returns the set of SCC ids that cannot, by themselves, satisfy
// every acceptance mark: the union of Final over edges internal to the SCC
// does not cover all of final_set (spec.md §4.3 step 1).
func badSCCs(a *Automaton) map[int32]bool {
	coverage := make(map[int32]map[int]bool)
	for _, st := range a.States {
		for _, t := range st.Trans {
			target := a.States[t.To]
			if target.Incoming != st.Incoming {
				continue // not an internal edge
			}
			set := coverage[st.Incoming]
			if set == nil {
				set = make(map[int]bool)
				coverage[st.Incoming] = set
			}
			for _, bit := range t.Final.Enumerate() {
				set[bit] = true
			}
		}
	}
	bad := make(map[int32]bool)
	seen := make(map[int32]bool)
	for _, st := range a.States {
		seen[st.Incoming] = true
	}
	for scc := range seen {
		covered := coverage[scc]
		for i := 0; i < a.FinalSetSize; i++ {
			if covered == nil || !covered[i] {
				bad[scc] = true
				break
			}
		}
	}
	return bad
}
