// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes the preprocessed binary-template source stream
// for the parser.
package scanner

import (
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/mna/bintmpl/lang/token"
)

// Error and ErrorList follow the shape of the stdlib go/scanner types of
// the same name, giving the template scanner the same position-aware
// multi-error aggregation the Go compiler's own scanner uses -- reimplemented
// here, rather than aliased, because they are keyed on this package's own
// token.Position rather than go/token.Position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Filename != "" || e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is a list of *Error, sortable by source position.
type ErrorList []*Error

// Add appends an error with the given position and message.
func (l *ErrorList) Add(pos token.Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

// Reset empties the list.
func (l *ErrorList) Reset() { *l = (*l)[0:0] }

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	pi, pj := l[i].Pos, l[j].Pos
	if pi.Filename != pj.Filename {
		return pi.Filename < pj.Filename
	}
	if pi.Line != pj.Line {
		return pi.Line < pj.Line
	}
	return pi.Column < pj.Column
}

// Sort orders the list by source position.
func (l ErrorList) Sort() { sort.Sort(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
	}
}

// Err returns nil if the list is empty, itself otherwise (as an error),
// exactly like go/scanner.ErrorList.Err.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// PrintError prints err, which may be a single Error or an ErrorList, one
// per line, to w -- following go/scanner.PrintError's own behavior.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
	} else if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}

// Value holds the decoded payload of a scanned token, alongside its
// starting position and raw source text.
type Value struct {
	Pos    token.Pos
	Raw    string
	Int    int64
	String string
}

// TokenAndValue combines a Token with its Value, as returned by ScanAll.
type TokenAndValue struct {
	Token token.Token
	Value Value
}

// ScanAll tokenizes the full content of a preprocessed stream and returns
// every token (including the trailing EOF) along with any scanning errors
// encountered. The returned error, if non-nil, is a scanner.ErrorList.
func ScanAll(fset *token.FileSet, filename string, src []byte) ([]TokenAndValue, error) {
	var (
		s   Scanner
		el  ErrorList
		val Value
	)
	f := fset.AddFile(filename, -1, len(src))
	s.Init(f, src, el.Add)

	var toks []TokenAndValue
	for {
		tok := s.Scan(&val)
		toks = append(toks, TokenAndValue{Token: tok, Value: val})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return toks, el.Err()
}

// Scanner tokenizes a single preprocessed source stream for the parser.
type Scanner struct {
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	cur   rune // current character, -1 at EOF
	off   int  // byte offset of cur
	roff  int  // reading offset, byte position right after cur
	atBOL bool // true if cur is the first character on its line (column 0)
}

// Init prepares the scanner to tokenize src, which must be the content of
// file (file.Size() must equal len(src)).
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
	s.atBOL = true
}

func (s *Scanner) advance() {
	wasNewline := s.cur == '\n'
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if wasNewline {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		s.atBOL = wasNewline
		return
	}
	s.off = s.roff
	if wasNewline {
		s.file.AddLine(s.off)
	}
	s.atBOL = wasNewline

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token, filling val with its position and decoded
// payload.
func (s *Scanner) Scan(val *Value) token.Token {
	s.skipIgnored()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok := token.LookupIdent(lit)
		*val = Value{Raw: lit, Pos: pos}
		return tok

	case isDigit(cur):
		tok, lit, n := s.number()
		*val = Value{Raw: lit, Pos: pos, Int: n}
		return tok

	case cur == '"':
		lit, decoded := s.stringLit()
		*val = Value{Raw: lit, Pos: pos, String: decoded}
		return token.STRING


	case cur == -1:
		*val = Value{Raw: "", Pos: pos}
		return token.EOF

	default:
		s.advance()
		tok := token.ILLEGAL
		switch cur {
		case '+':
			tok = token.PLUS
		case '-':
			tok = token.MINUS
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '%':
			tok = token.PERCENT
		case '~':
			tok = token.TILDE
		case '.':
			tok = token.DOT
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMI
		case ':':
			tok = token.COLON
		case '?':
			tok = token.QUESTION
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case '^':
			tok = token.CIRCUMFLEX
		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.NEQ
			}
		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQL
			}
		case '<':
			tok = token.LT
			if s.advanceIf('<') {
				tok = token.LTLT
			} else if s.advanceIf('=') {
				tok = token.LE
			}
		case '>':
			tok = token.GT
			if s.advanceIf('>') {
				tok = token.GTGT
			} else if s.advanceIf('=') {
				tok = token.GE
			}
		case '&':
			tok = token.AMPERSAND
			if s.advanceIf('&') {
				tok = token.ANDAND
			}
		case '|':
			tok = token.PIPE
			if s.advanceIf('|') {
				tok = token.OROR
			}
		default:
			s.errorf(start, "illegal character %#U", cur)
		}
		*val = Value{Raw: string(s.src[start:s.off]), Pos: pos}
		return tok
	}
}

// skipIgnored consumes whitespace, line and block comments, and any
// "#file PATH LINE" preprocessor marker lines, which are recognized only
// at column 0 (the same column-0 sensitivity the preprocessor uses to emit
// them) so that a literal '#' appearing elsewhere is a lexical error rather
// than a silently-swallowed directive.
func (s *Scanner) skipIgnored() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '#' && s.atBOL:
			s.lineComment()
		case s.cur == '/' && s.peek() == '/':
			s.lineComment()
		case s.cur == '/' && s.peek() == '*':
			s.blockComment()
		default:
			return
		}
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}
