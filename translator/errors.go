package translator

import (
	"fmt"

	errorutil "github.com/projectdiscovery/utils/errors"
)

// Kind names one of the fatal error categories from spec.md §7. Every
// translator error is fatal: there is no recovery path, and the CLI maps
// any non-nil error to exit code 1.
type Kind int

const (
	// Lexical names an unknown-character error from the scanner.
	Lexical Kind = iota
	// Syntax names an unexpected token, missing delimiter, or chained
	// non-associative operator.
	Syntax
	// Semantic names a semantically empty or ill-formed formula.
	Semantic
	// IO names a file that could not be opened or read.
	IO
	// Config names a bad flag combination (e.g. both -f and -F).
	Config
	// Resource names an allocation failure.
	Resource
	// Internal names a violated domain invariant ("cannot happen").
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case IO:
		return "I/O"
	case Config:
		return "configuration"
	case Resource:
		return "resource"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the translator's single fatal-error type. Subprogram names the
// stage that raised it ("parser", "rewrite", "vwaa", "tgba", "buchi", "cli")
// so the one-line diagnostic spec.md §7 requires can name it; Pos is the
// byte offset of the offending construct when the input position is known
// (parser and lexer errors), -1 otherwise.
type Error struct {
	Kind       Kind
	Subprogram string
	Construct  string
	Pos        int
	Err        error
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s error: %s (at byte %d)", e.Subprogram, e.Kind, e.Construct, e.Pos)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Subprogram, e.Kind, e.Construct)
}

func (e *Error) Unwrap() error { return e.Err }

// Newf builds an Error, wrapping it through errorutil so it carries the
// same tagged-error shape alterx uses for its own fatal paths.
func Newf(kind Kind, subprogram, construct string, pos int, format string, args ...any) *Error {
	detail := construct
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	if construct == "" {
		construct = detail
	}
	return &Error{
		Kind:       kind,
		Subprogram: subprogram,
		Construct:  construct,
		Pos:        pos,
		Err:        errorutil.NewWithTag("ltl2ba", detail),
	}
}

// Internalf raises an Internal-kind error for a violated "cannot happen"
// invariant (spec.md §7, §9).
func Internalf(subprogram, format string, args ...any) *Error {
	return Newf(Internal, subprogram, fmt.Sprintf(format, args...), -1, "")
}
