package parser

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

// parseChunk parses an entire top-level template file: a sequence of
// statements with no enclosing braces, through EOF.
func (p *parser) parseChunk() *ast.Chunk {
	block := p.parseStmtsUntil(token.EOF)
	return &ast.Chunk{Block: block, EOF: p.val.Pos}
}

// parseStmtsUntil parses statements, recovering from errors at statement
// boundaries, until the current token is end (not consumed) or EOF.
func (p *parser) parseStmtsUntil(end token.Token) *ast.Block {
	start := p.val.Pos
	var stmts []ast.Stmt
	for p.tok != end && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmtRecover())
	}
	return &ast.Block{Start: start, End: p.val.Pos, Stmts: stmts}
}

// parseBlock parses a brace-delimited block: "{ STATEMENT* }".
func (p *parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmtRecover())
	}
	end := p.expect(token.RBRACE)
	return &ast.Block{Start: start, End: end, Stmts: stmts}
}

// parseBlockOrSingleStmt parses a brace-delimited block, or if the current
// token is not '{', a single statement wrapped in a synthetic Block, as
// allowed by "if"/"for"/"while" bodies.
func (p *parser) parseBlockOrSingleStmt() *ast.Block {
	if p.tok == token.LBRACE {
		return p.parseBlock()
	}
	stmt := p.parseStmtRecover()
	start, end := stmt.Span()
	return &ast.Block{Start: start, End: end, Stmts: []ast.Stmt{stmt}}
}

// parseStmtRecover parses a single statement, recovering from a parse
// error by skipping to the next statement boundary (';' or '}') and
// producing a BadStmt in its place so parsing of the surrounding block can
// continue.
func (p *parser) parseStmtRecover() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			start := p.val.Pos
			p.syncToStmtBoundary()
			stmt = &ast.BadStmt{Start: start, End: p.val.Pos}
		}
	}()
	return p.parseStmt()
}

func (p *parser) syncToStmtBoundary() {
	for p.tok != token.SEMI && p.tok != token.RBRACE && p.tok != token.EOF {
		p.advance()
	}
	if p.tok == token.SEMI {
		p.advance()
	}
}
