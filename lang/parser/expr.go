package parser

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

// parseExpr parses a full expression: an assignment, which is the
// loosest-binding, right-associative production.
func (p *parser) parseExpr() ast.Expr {
	left := p.parseTernary()
	if pos, ok := p.accept(token.ASSIGN); ok {
		left = ast.Unwrap(left)
		if !ast.IsAssignable(left) {
			start, _ := left.Span()
			p.error(start, "left-hand side of assignment must be a variable, member or index expression")
		}
		right := p.parseExpr()
		return &ast.AssignExpr{Left: left, OpPos: pos, Right: right}
	}
	return left
}

// parseTernary parses the supplemented "COND ? THEN : ELSE" conditional,
// binding looser than every binary operator but tighter than assignment.
func (p *parser) parseTernary() ast.Expr {
	cond := p.parseBinaryChain()
	if qpos, ok := p.accept(token.QUESTION); ok {
		then := p.parseExpr()
		cpos := p.expect(token.COLON)
		els := p.parseTernary()
		return &ast.CondExpr{Cond: cond, Question: qpos, Then: then, Colon: cpos, Else: els}
	}
	return cond
}

// opItem is one binary operator captured between two operands of a flat
// expression token list.
type opItem struct {
	tok token.Token
	pos token.Pos
}

// parseBinaryChain captures the flat operand/operator token list for tiers
// 2 through 11 of the precedence table, then folds it into a tree, one
// pass per precedence tier from tightest to loosest (left-associative).
// Unary operators (tier 1) are handled directly by parseUnary since they
// are prefix and right-associative, so they fold naturally during operand
// capture rather than needing a separate list pass.
func (p *parser) parseBinaryChain() ast.Expr {
	operands := []ast.Expr{p.parseUnary()}
	var ops []opItem

	for {
		prec, ok := token.BinaryPrecedence(p.tok)
		if !ok {
			break
		}
		ops = append(ops, opItem{tok: p.tok, pos: p.val.Pos})
		p.advance()
		operands = append(operands, p.parseUnary())
	}

	for tier := 1; tier <= token.MaxPrecedence; tier++ {
		i := 0
		for i < len(ops) {
			prec, _ := token.BinaryPrecedence(ops[i].tok)
			if prec != tier {
				i++
				continue
			}
			merged := &ast.BinaryExpr{
				Left:  operands[i],
				Op:    ops[i].tok,
				OpPos: ops[i].pos,
				Right: operands[i+1],
			}
			operands[i] = merged
			operands = append(operands[:i+1], operands[i+2:]...)
			ops = append(ops[:i], ops[i+1:]...)
		}
	}
	return operands[0]
}

// parseUnary parses a prefix unary expression ('!', '~', or '-'), folding
// right-associatively via direct recursion, or falls through to a primary
// expression with its postfix chain.
func (p *parser) parseUnary() ast.Expr {
	if token.IsUnaryOp(p.tok) {
		op, pos := p.tok, p.val.Pos
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: op, OpPos: pos, X: x}
	}
	return p.parsePrimary()
}

// parsePrimary parses an operand: an identifier path, a literal, a call, a
// cast, or a parenthesized expression.
func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.IDENT:
		pos, name := p.val.Pos, p.val.Raw
		p.advance()
		return p.parsePostfix(&ast.IdentExpr{Name: name, Pos: pos})

	case token.NUMBER:
		pos, raw, n := p.val.Pos, p.val.Raw, p.val.Int
		p.advance()
		return &ast.NumberExpr{Value: n, Raw: raw, Pos: pos}

	case token.STRING:
		pos, raw, s := p.val.Pos, p.val.Raw, p.val.String
		p.advance()
		return &ast.StringExpr{Value: s, Raw: raw, Pos: pos}

	case token.LPAREN:
		return p.parseParenOrCast()

	default:
		pos := p.val.Pos
		p.errorExpected(pos, "expression")
		end := pos
		if p.tok != token.EOF {
			end = p.val.Pos
			p.advance()
		}
		return &ast.BadExpr{Start: pos, End: end}
	}
}

// parseParenOrCast parses either a cast "(TYPE) EXPR" or a parenthesized
// expression "(EXPR)". The two are only ambiguous when the parenthesized
// content is a bare identifier (it could be a type name or a variable); in
// that case a one-token lookahead past the closing ')' decides: a token
// that can start a primary expression means a cast, anything else means a
// grouped identifier expression. Keyword-prefixed types ("struct"/"enum"/
// "unsigned") are unambiguous and always a cast.
func (p *parser) parseParenOrCast() ast.Expr {
	lparen := p.val.Pos
	p.advance()

	switch {
	case p.tok == token.STRUCT || p.tok == token.ENUM || p.tok == token.UNSIGNED:
		return p.finishCast(lparen)

	case p.tok == token.IDENT && p.peekAt(1) == token.RPAREN && startsPrimary(p.peekAt(2)):
		return p.finishCast(lparen)
	}

	x := p.parseExpr()
	rparen := p.expect(token.RPAREN)
	return p.parsePostfix(&ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen})
}

func (p *parser) finishCast(lparen token.Pos) ast.Expr {
	typ := p.parseType()
	rparen := p.expect(token.RPAREN)
	x := p.parseUnary()
	return &ast.CastExpr{Lparen: lparen, Type: typ, Rparen: rparen, X: x}
}

// startsPrimary reports whether tok can begin a primary expression,
// used to disambiguate a cast from a parenthesized identifier.
func startsPrimary(tok token.Token) bool {
	switch tok {
	case token.IDENT, token.NUMBER, token.STRING, token.LPAREN:
		return true
	default:
		return token.IsUnaryOp(tok)
	}
}

// parsePostfix consumes a chain of '.'NAME, '['EXPR']' and '('ARGS')'
// suffixes following a primary expression.
func (p *parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch p.tok {
		case token.DOT:
			dot := p.val.Pos
			p.advance()
			pos := p.val.Pos
			name := p.expectIdent()
			e = &ast.DotExpr{Left: e, Dot: dot, Name: name, Pos: pos}

		case token.LBRACK:
			lb := p.val.Pos
			p.advance()
			idx := p.parseExpr()
			rb := p.expect(token.RBRACK)
			e = &ast.IndexExpr{Left: e, Lbrack: lb, Index: idx, Rbrack: rb}

		case token.LPAREN:
			lp := p.val.Pos
			p.advance()
			args := p.parseExprListUntil(token.RPAREN)
			rp := p.expect(token.RPAREN)
			e = &ast.CallExpr{Fn: e, Lparen: lp, Args: args, Rparen: rp}

		default:
			return e
		}
	}
}

// parseExprListUntil parses a comma-separated list of expressions up to
// (but not consuming) end.
func (p *parser) parseExprListUntil(end token.Token) []ast.Expr {
	if p.tok == end {
		return nil
	}
	exprs := []ast.Expr{p.parseExpr()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

// expectIdent consumes and returns the literal of an IDENT token, or
// records an error and returns "" if the current token is not an
// identifier.
func (p *parser) expectIdent() string {
	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "identifier")
		panic(errPanicMode)
	}
	name := p.val.Raw
	p.advance()
	return name
}

// parseType parses a TYPE production: a plain identifier, or an identifier
// prefixed by "struct", "enum" or "unsigned".
func (p *parser) parseType() *ast.TypeExpr {
	start := p.val.Pos
	var kw token.Token
	switch p.tok {
	case token.STRUCT, token.ENUM, token.UNSIGNED:
		kw = p.tok
		p.advance()
	}
	pos := p.val.Pos
	name := p.expectIdent()
	end := pos + token.Pos(len(name))
	return &ast.TypeExpr{Start: start, Keyword: kw, Name: name, End: end}
}
