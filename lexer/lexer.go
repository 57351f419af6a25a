// Package lexer implements the pull-API scanner spec.md §1 treats as an
// external collaborator: it delivers one token.Token at a time and owns the
// SymbolTable that canonicalizes predicate names to stable indices.
//
// Grounded on the cursor/offset-tracking pull lexer style used by
// tooling/lexer.Lexer in the teacher pack's cow-lang-go example: a byte
// cursor into the source string, longest-match scanning of multi-character
// operators, and explicit Offset/Pos reporting for diagnostics.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/ltl2go/ltl2ba/token"
)

// Lexer is a pull scanner over an LTL formula string.
type Lexer struct {
	src    string
	pos    int
	symtab *SymbolTable
}

// New returns a Lexer over src, sharing symtab (created fresh if nil) so
// several lexes in the same run can intern into one table.
func New(src string, symtab *SymbolTable) *Lexer {
	if symtab == nil {
		symtab = NewSymbolTable()
	}
	return &Lexer{src: src, symtab: symtab}
}

// SymbolTable returns the table predicates are interned into.
func (l *Lexer) SymbolTable() *SymbolTable { return l.symtab }

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// Next returns the next token, or an Illegal token on an unrecognized
// character (the caller maps that to a Lexical translator.Error).
func (l *Lexer) Next() token.Token {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Pos: start}
	}

	c := l.peekByte()
	switch {
	case c == '(':
		l.pos++
		return token.Token{Kind: token.LParen, Pos: start}
	case c == ')':
		l.pos++
		return token.Token{Kind: token.RParen, Pos: start}
	case c == ';':
		l.pos++
		return token.Token{Kind: token.Semi, Pos: start}
	case c == '!':
		l.pos++
		return token.Token{Kind: token.Not, Pos: start}
	case c == '&' && l.peekByteAt(1) == '&':
		l.pos += 2
		return token.Token{Kind: token.And, Pos: start}
	case c == '|' && l.peekByteAt(1) == '|':
		l.pos += 2
		return token.Token{Kind: token.Or, Pos: start}
	case c == '-' && l.peekByteAt(1) == '>':
		l.pos += 2
		return token.Token{Kind: token.Implies, Pos: start}
	case c == '<' && l.peekByteAt(1) == '-' && l.peekByteAt(2) == '>':
		l.pos += 3
		return token.Token{Kind: token.Equiv, Pos: start}
	case c == '<' && l.peekByteAt(1) == '>':
		l.pos += 2
		return token.Token{Kind: token.Eventually, Pos: start}
	case c == '[' && l.peekByteAt(1) == ']':
		l.pos += 2
		return token.Token{Kind: token.Always, Pos: start}
	case c == 'X' && !isIdentByte(l.peekByteAt(1)):
		l.pos++
		return token.Token{Kind: token.Next, Pos: start}
	case c == 'U' && !isIdentByte(l.peekByteAt(1)):
		l.pos++
		return token.Token{Kind: token.Until, Pos: start}
	case c == 'V' && !isIdentByte(l.peekByteAt(1)):
		l.pos++
		return token.Token{Kind: token.Release, Pos: start}
	case isIdentStart(c):
		return l.scanIdent(start)
	default:
		l.pos++
		return token.Token{Kind: token.Illegal, Pos: start}
	}
}

func (l *Lexer) scanIdent(start int) token.Token {
	for l.pos < len(l.src) && isIdentByte(l.peekByte()) {
		l.pos++
	}
	name := l.src[start:l.pos]
	switch name {
	case "true":
		return token.Token{Kind: token.True, Pos: start}
	case "false":
		return token.Token{Kind: token.False, Pos: start}
	default:
		l.symtab.Intern(name)
		return token.Token{Kind: token.Pred, Name: name, Pos: start}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
