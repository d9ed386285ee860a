// Package parser implements the recursive-descent parser that transforms
// preprocessed template source into an abstract syntax tree (AST).
package parser

import (
	"errors"
	"os"
	"strings"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/scanner"
	"github.com/mna/bintmpl/lang/token"
)

// ParseFiles parses each of files independently as a top-level chunk and
// returns the fileset used for position reporting, along with the parsed
// chunks and any error encountered. The error, if non-nil, is guaranteed to
// be a scanner.ErrorList.
func ParseFiles(fset *token.FileSet, files ...string) ([]*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var p parser
	res := make([]*ast.Chunk, 0, len(files))

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		p.init(fset, file, b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	p.errors.Sort()
	return res, p.errors.Err()
}

// ParseChunk parses a single chunk from src and returns the AST and any
// error encountered. The chunk is added to fset for position reporting
// under filename. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList.
func ParseChunk(fset *token.FileSet, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(fset, filename, src)
	ch := p.parseChunk()
	ch.Name = filename
	return ch, p.errors.Err()
}

// parser parses a single source file and generates an AST. The zero value
// is not ready to use; call init first.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	// current token
	tok token.Token
	val token.Value

	// ahead holds tokens scanned in advance of the current one, for the rare
	// productions that need more than one token of lookahead (telling apart
	// a cast "(TYPE) EXPR" from a parenthesized expression "(EXPR)").
	ahead []tokVal
}

type tokVal struct {
	tok token.Token
	val token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	if len(p.ahead) > 0 {
		tv := p.ahead[0]
		p.ahead = p.ahead[1:]
		p.tok, p.val = tv.tok, tv.val
		return
	}
	p.tok = p.scanner.Scan(&p.val)
}

// peekAt returns the token n positions beyond the current one (n=1 is the
// token that advance would produce next), without consuming anything.
func (p *parser) peekAt(n int) token.Token {
	for len(p.ahead) < n {
		var v token.Value
		t := p.scanner.Scan(&v)
		p.ahead = append(p.ahead, tokVal{tok: t, val: v})
	}
	return p.ahead[n-1].tok
}

var errPanicMode = errors.New("panic")

// expect returns the position of the current token and consumes it if it
// is one of the expected tokens, otherwise it reports an error and panics
// with errPanicMode, which is recovered at the statement level, resulting
// in a BadStmt.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(pos, lbl)
		panic(errPanicMode)
	}

	p.advance()
	return pos
}

// accept consumes and returns true if the current token is tok, otherwise
// it leaves the parser state untouched and returns false.
func (p *parser) accept(tok token.Token) (token.Pos, bool) {
	if p.tok != tok {
		return token.NoPos, false
	}
	pos := p.val.Pos
	p.advance()
	return pos, true
}

func (p *parser) error(pos token.Pos, msg string) {
	lpos := p.file.Position(pos)
	p.errors.Add(lpos, msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		switch {
		case p.val.Raw != "":
			msg += ", found " + p.val.Raw
		default:
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(pos, msg)
}
