// Command ltl2ba translates an LTL formula into a Büchi automaton and
// renders it in one of three textual forms (spec.md §6).
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ltl2go/ltl2ba/buchi"
	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/internal/runner"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/parser"
	"github.com/ltl2go/ltl2ba/rewrite"
	"github.com/ltl2go/ltl2ba/serialize"
	"github.com/ltl2go/ltl2ba/tgba"
	"github.com/ltl2go/ltl2ba/translator"
	"github.com/ltl2go/ltl2ba/vwaa"

	"github.com/projectdiscovery/gologger"
)

func main() {
	opts, err := runner.ParseFlags()
	if err != nil {
		fail(err, "")
	}

	formulaText, err := opts.ReadFormula()
	if err != nil {
		fail(err, "")
	}

	ctx := opts.Context()
	if err := translate(os.Stdout, formulaText, ctx); err != nil {
		fail(err, formulaText)
	}
}

// translate runs the full pipeline and writes the chosen serialization to
// w, logging per-stage timing through gologger when ctx.Stats is set
// (spec.md §6's -s), and the size of each intermediate result at -d's
// verbose level; the intermediate automata themselves are not printed.
func translate(w *os.File, formulaText string, ctx translator.Context) error {
	start := time.Now()

	l := lexer.New(formulaText, nil)
	root, err := parser.FromLexer(l)
	if err != nil {
		return err
	}
	logStage(ctx, "parse", start)

	if ctx.Negate {
		root = formula.NewUnary(formula.Not, root)
	}

	t1 := time.Now()
	norm, cache, err := rewrite.Normalize(root, ctx.SimpLog)
	if err != nil {
		return err
	}
	logStage(ctx, "normalize", t1)
	if ctx.Verbose {
		gologger.Verbose().Msgf("normalized formula has %d distinct subformulas", cache.Len())
	}

	t2 := time.Now()
	vw, err := vwaa.Build(norm, cache, l.SymbolTable().Len(), ctx)
	if err != nil {
		return err
	}
	logStage(ctx, "vwaa", t2)
	if ctx.Verbose {
		gologger.Verbose().Msgf("VWAA has %d states", vw.NodeCount)
	}

	t3 := time.Now()
	tg, err := tgba.Build(vw, ctx)
	if err != nil {
		return err
	}
	logStage(ctx, "tgba", t3)
	if ctx.Verbose {
		gologger.Verbose().Msgf("TGBA has %d states, %d acceptance marks", len(tg.States), tg.FinalSetSize)
	}

	t4 := time.Now()
	ba, err := buchi.Build(tg, ctx)
	if err != nil {
		return err
	}
	logStage(ctx, "buchi", t4)
	if ctx.Verbose {
		gologger.Verbose().Msgf("BA has %d states", len(ba.States))
	}

	if ctx.Stats {
		gologger.Info().Msgf("total translation time: %s", time.Since(start))
	}

	switch ctx.Output {
	case translator.OutputC:
		return serialize.WriteC(w, ba, ctx.Prefix)
	case translator.OutputDot:
		return serialize.WriteDot(w, ba, l.SymbolTable())
	default:
		return serialize.WriteSpin(w, ba, l.SymbolTable())
	}
}

func logStage(ctx translator.Context, stage string, since time.Time) {
	if ctx.Stats {
		gologger.Info().Msgf("%s: %s", stage, time.Since(since))
	}
}

// fail prints the one-line diagnostic spec.md §7 requires — naming the
// subprogram and offending construct, with a caret under the input
// position for syntax errors — and exits 1.
func fail(err error, formulaText string) {
	te, ok := err.(*translator.Error)
	if !ok {
		gologger.Error().Msgf("%v", err)
		os.Exit(1)
	}
	gologger.Error().Msgf("%s", te.Error())
	if te.Kind == translator.Syntax && te.Pos >= 0 && te.Pos <= len(formulaText) {
		fmt.Fprintln(os.Stderr, formulaText)
		fmt.Fprintln(os.Stderr, strings.Repeat(" ", te.Pos)+"^")
	}
	os.Exit(1)
}
