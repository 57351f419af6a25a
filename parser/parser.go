// Package parser builds a formula.Node syntax tree from a token.Kind
// stream, implementing the five precedence levels of spec.md §4.1:
//
//	{U, V}      right-associative   (highest precedence)
//	AND         left-associative
//	OR          left-associative
//	EQUIV       non-associative (chained use is a syntax error)
//	IMPLIES     right-associative   (lowest precedence)
//
// Unary operators (NOT, ALWAYS, NEXT, EVENTUALLY) bind tighter than any
// binary operator; parentheses override everything.
package parser

import (
	"github.com/ltl2go/ltl2ba/formula"
	"github.com/ltl2go/ltl2ba/lexer"
	"github.com/ltl2go/ltl2ba/token"
	"github.com/ltl2go/ltl2ba/translator"
)

// TokenSource is the minimal pull interface the parser consumes, matching
// spec.md §6's "lexer interface (consumed)". *lexer.Lexer implements it.
type TokenSource interface {
	Next() token.Token
}

// Parser consumes a TokenSource and produces a formula.Node tree.
type Parser struct {
	src TokenSource
	cur token.Token
}

// New returns a Parser positioned before the first token of src.
func New(src TokenSource) *Parser {
	p := &Parser{src: src}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.src.Next()
}

// Parse consumes a full formula terminated by ';' or EOF and returns its
// root. A missing terminating ';' is tolerated only at end of input,
// matching the CLI's single-formula-per-invocation usage; an explicit ';'
// followed by trailing tokens is a syntax error.
func (p *Parser) Parse() (*formula.Node, error) {
	if p.cur.Kind == token.EOF {
		return nil, translator.Newf(translator.Semantic, "parser", "empty formula", p.cur.Pos, "")
	}
	root, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Semi {
		p.advance()
	}
	if p.cur.Kind != token.EOF {
		return nil, p.unexpected("expected ';' or end of input")
	}
	return root, nil
}

func (p *Parser) unexpected(what string) error {
	if p.cur.Kind == token.Illegal {
		return translator.Newf(translator.Lexical, "lexer", "unknown character", p.cur.Pos, "")
	}
	return translator.Newf(translator.Syntax, "parser", "", p.cur.Pos,
		"unexpected token %s: %s", p.cur.Kind, what)
}

// parseImplies: right-associative, lowest precedence.
func (p *Parser) parseImplies() (*formula.Node, error) {
	lft, err := p.parseEquiv()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Implies {
		p.advance()
		rgt, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(formula.Implies, lft, rgt), nil
	}
	return lft, nil
}

// parseEquiv: non-associative; a second <-> at the same level is an error.
func (p *Parser) parseEquiv() (*formula.Node, error) {
	lft, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Equiv {
		p.advance()
		rgt, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind == token.Equiv {
			return nil, translator.Newf(translator.Syntax, "parser", "chained non-associative <-> operator", p.cur.Pos, "")
		}
		return formula.NewBinary(formula.Equiv, lft, rgt), nil
	}
	return lft, nil
}

// parseOr: left-associative.
func (p *Parser) parseOr() (*formula.Node, error) {
	lft, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Or {
		p.advance()
		rgt, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lft = formula.NewBinary(formula.Or, lft, rgt)
	}
	return lft, nil
}

// parseAnd: left-associative.
func (p *Parser) parseAnd() (*formula.Node, error) {
	lft, err := p.parseUntilRelease()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.And {
		p.advance()
		rgt, err := p.parseUntilRelease()
		if err != nil {
			return nil, err
		}
		lft = formula.NewBinary(formula.And, lft, rgt)
	}
	return lft, nil
}

// parseUntilRelease: {U, V}, right-associative, highest binary precedence.
func (p *Parser) parseUntilRelease() (*formula.Node, error) {
	lft, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case token.Until:
		p.advance()
		rgt, err := p.parseUntilRelease()
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(formula.Until, lft, rgt), nil
	case token.Release:
		p.advance()
		rgt, err := p.parseUntilRelease()
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(formula.Release, lft, rgt), nil
	default:
		return lft, nil
	}
}

// parseUnary binds NOT, ALWAYS, NEXT, EVENTUALLY tighter than any binary
// operator.
func (p *Parser) parseUnary() (*formula.Node, error) {
	switch p.cur.Kind {
	case token.Not:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.Not, child), nil
	case token.Always:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.Always, child), nil
	case token.Eventually:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.Eventually, child), nil
	case token.Next:
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.Next, child), nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (*formula.Node, error) {
	switch p.cur.Kind {
	case token.True:
		p.advance()
		return formula.NewLeaf(formula.True), nil
	case token.False:
		p.advance()
		return formula.NewLeaf(formula.False), nil
	case token.Pred:
		n := formula.NewPred(0, p.cur.Name)
		p.advance()
		return n, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.RParen {
			return nil, p.unexpected("missing closing parenthesis")
		}
		p.advance()
		return inner, nil
	default:
		return nil, p.unexpected("expected a formula")
	}
}

// FromLexer is a convenience constructor: it wraps a *lexer.Lexer as a
// TokenSource and resolves each Pred node's Sym against the lexer's
// SymbolTable once the whole tree has been parsed (predicate names may be
// seen in any order relative to their first occurrence in the tree).
func FromLexer(l *lexer.Lexer) (*formula.Node, error) {
	p := New(l)
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}
	resolveSymbols(root, l.SymbolTable())
	return root, nil
}

func resolveSymbols(n *formula.Node, st *lexer.SymbolTable) {
	if n == nil {
		return
	}
	if n.Tag == formula.Pred {
		n.Sym = st.Intern(n.SymName)
	}
	resolveSymbols(n.Lft, st)
	resolveSymbols(n.Rgt, st)
}
