// Package runner parses the command-line options of spec.md §6 and turns
// them into a translator.Context plus the one-shot translation request the
// CLI's main package executes.
//
// Grounded on runner.ParseFlags in the teacher pack's alterx command:
// goflags groups ("input", "simplification", "output"), gologger for the
// verbosity switch, and a flagSet.Parse() error returned to the caller as a
// Config-kind translator.Error.
package runner

import (
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/ltl2go/ltl2ba/translator"
)

// Options holds every flag named in spec.md §6.
type Options struct {
	Formula string // -f
	File    string // -F

	Negate  bool // -i
	Verbose bool // -d
	Stats   bool // -s

	NoLogicSimplify bool // -l
	NoAPosteriori   bool // -p
	NoOnTheFly      bool // -o
	NoSCC           bool // -c
	TargetAccept    bool // -a

	OutputFormat string // -O
	Prefix       string // -P
}

// ParseFlags parses os.Args into Options, matching spec.md §6's flag set.
// A goflags parse failure is itself a Config-kind translator.Error, not a
// gologger.Fatal call, so the caller controls how the process exits.
func ParseFlags() (*Options, error) {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Translates an LTL formula into a Büchi automaton.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Formula, "formula", "f", "", "LTL formula to translate"),
		flagSet.StringVarP(&opts.File, "file", "F", "", "read the LTL formula from a file"),
		flagSet.BoolVarP(&opts.Negate, "negate", "i", false, "negate the parsed formula before translating"),
	)

	flagSet.CreateGroup("simplification", "Simplification",
		flagSet.BoolVarP(&opts.NoLogicSimplify, "no-logic-simplify", "l", false, "disable logic-level rewrite simplification"),
		flagSet.BoolVarP(&opts.NoAPosteriori, "no-post-simplify", "p", false, "disable a-posteriori (post-build) simplification"),
		flagSet.BoolVarP(&opts.NoOnTheFly, "no-fly-simplify", "o", false, "disable on-the-fly dominance simplification"),
		flagSet.BoolVarP(&opts.NoSCC, "no-scc-simplify", "c", false, "disable SCC-based simplification relaxation"),
		flagSet.BoolVarP(&opts.TargetAccept, "target-accept", "a", false, "evaluate acceptance against the target state instead of the source state"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.OutputFormat, "output-format", "O", "spin", "output format: spin, c, or dot"),
		flagSet.StringVarP(&opts.Prefix, "prefix", "P", "", "symbol prefix for the C output"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "d", false, "print intermediate automaton sizes (not the automata) to standard error"),
		flagSet.BoolVarP(&opts.Stats, "stats", "s", false, "print per-stage timing statistics (no memory statistics)"),
	)

	if err := flagSet.Parse(); err != nil {
		return nil, translator.Newf(translator.Config, "cli", "flag parsing", -1, "%v", err)
	}

	if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Formula != "" && opts.File != "" {
		return nil, translator.Newf(translator.Config, "cli", "-f and -F are mutually exclusive", -1, "")
	}
	if opts.Formula == "" && opts.File == "" {
		return nil, translator.Newf(translator.Config, "cli", "one of -f or -F is required", -1, "")
	}

	switch opts.OutputFormat {
	case "spin", "c", "dot":
	default:
		return nil, translator.Newf(translator.Config, "cli", "unknown -O format: "+opts.OutputFormat, -1, "")
	}

	return opts, nil
}

// ReadFormula returns the raw formula text, collapsing surrounding
// whitespace and quotes the way spec.md §6 describes for -F.
func (o *Options) ReadFormula() (string, error) {
	if o.Formula != "" {
		return o.Formula, nil
	}
	data, err := os.ReadFile(o.File)
	if err != nil {
		return "", translator.Newf(translator.IO, "cli", o.File, -1, "cannot open file: %v", errorutil.NewWithTag("ltl2ba", err.Error()))
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"'`), nil
}

// Context builds the translator.Context the pipeline threads through every
// stage, applying each disable flag's negation (spec.md §9's six booleans).
func (o *Options) Context() translator.Context {
	return translator.Context{
		SimpLog:      !o.NoLogicSimplify,
		SimpFly:      !o.NoOnTheFly,
		SimpSCC:      !o.NoSCC,
		SimpDiff:     !o.NoAPosteriori,
		TargetAccept: o.TargetAccept,
		Verbose:      o.Verbose,
		Stats:        o.Stats,
		Negate:       o.Negate,
		Output:       outputFormat(o.OutputFormat),
		Prefix:       o.Prefix,
	}
}

func outputFormat(s string) translator.OutputFormat {
	switch s {
	case "c":
		return translator.OutputC
	case "dot":
		return translator.OutputDot
	default:
		return translator.OutputSpin
	}
}
