// Package translator carries the flags threaded through every pipeline
// stage. spec.md §9 calls out the reference implementation's global mutable
// state (flags, counters, output file, allocator) and asks for it to be
// threaded explicitly instead; Context is that value, analogous to how
// meta.Config is threaded into meta.NewEngine in the teacher package.
package translator

// OutputFormat selects one of the three serializers named in spec.md §6.
type OutputFormat int

const (
	// OutputSpin renders the model-checker "never-claim" syntax.
	OutputSpin OutputFormat = iota
	// OutputC renders the C-language state table.
	OutputC
	// OutputDot renders the graph-description form.
	OutputDot
)

// Context is the translator-wide configuration threaded through parsing,
// VWAA construction, TGBA construction, and degeneralization.
type Context struct {
	// SimpLog enables logic-level rewrite simplification (spec.md §4.1).
	// Disabled by the CLI's -l flag.
	SimpLog bool

	// SimpFly enables on-the-fly dominance simplification during VWAA and
	// TGBA construction (spec.md §4.2, §4.3). Disabled by -o.
	SimpFly bool

	// SimpSCC enables the SCC-based bad-SCC analysis and its relaxation of
	// acceptance-mark comparisons (spec.md §4.3 step 1). Disabled by -c.
	SimpSCC bool

	// SimpDiff enables the a-posteriori post-build simplification loop
	// (spec.md §4.3 steps 2-3 and the degeneralizer's analogous pass).
	// Disabled by -p.
	SimpDiff bool

	// TargetAccept selects the target-state acceptance evaluation policy in
	// spec.md §4.3 ("fjtofj" in the reference sources); false evaluates
	// eventuality satisfaction against the source state (the default).
	// Toggled by -a.
	TargetAccept bool

	// Verbose enables -d: the size of each intermediate result (subformula
	// count, VWAA/TGBA/BA state counts) is logged to stderr; the automata
	// themselves are not printed.
	Verbose bool

	// Stats enables -s: per-stage and total timing is logged; no size or
	// memory statistics are collected.
	Stats bool

	// Negate implements -i: negate the parsed formula before normalizing.
	Negate bool

	// Output selects the serializer the CLI will use.
	Output OutputFormat

	// Prefix is the C-output symbol prefix (-P).
	Prefix string
}

// Default returns a Context with every simplification enabled and the
// default (source-state) acceptance policy, matching the reference
// translator's defaults before any command-line flag is applied.
func Default() Context {
	return Context{
		SimpLog:  true,
		SimpFly:  true,
		SimpSCC:  true,
		SimpDiff: true,
		Output:   OutputSpin,
	}
}
