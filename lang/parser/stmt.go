package parser

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

// parseStmt dispatches on the current token to parse exactly one
// statement production of the grammar.
func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.TYPEDEF:
		return p.parseTypedefOrDefn()
	case token.STRUCT:
		return p.parseStructStmt(p.val.Pos, false)
	case token.ENUM:
		return p.parseEnumStmt(p.val.Pos, false)
	case token.LOCAL:
		return p.parseLocalVarDefn()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		start := p.val.Pos
		p.advance()
		end := p.expect(token.SEMI)
		return &ast.BreakStmt{Start: start, End: end}
	case token.CONTINUE:
		start := p.val.Pos
		p.advance()
		end := p.expect(token.SEMI)
		return &ast.ContinueStmt{Start: start, End: end}
	case token.SEMI:
		pos := p.val.Pos
		p.advance()
		return &ast.EmptyStmt{Pos: pos}
	case token.UNSIGNED:
		typ := p.parseType()
		return p.parseDeclTail(typ)
	case token.IDENT:
		if p.peekAt(1) == token.IDENT {
			typ := p.parseType()
			return p.parseDeclTail(typ)
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseIf() *ast.IfStmt {
	ifPos := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseBlockOrSingleStmt()

	var elseStmt ast.Stmt
	if _, ok := p.accept(token.ELSE); ok {
		if p.tok == token.IF {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseBlockOrSingleStmt()
		}
	}
	return &ast.IfStmt{If: ifPos, Cond: cond, Then: then, Else: elseStmt}
}

func (p *parser) parseFor() ast.Stmt {
	forPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	if p.tok != token.SEMI {
		if p.tok == token.LOCAL {
			init = p.parseLocalVarDefnCore()
		} else {
			init = p.parseExprStmtCore()
		}
	}
	p.expect(token.SEMI)

	var cond ast.Expr
	if p.tok != token.SEMI {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)

	var post ast.Stmt
	if p.tok != token.RPAREN {
		post = p.parseExprStmtCore()
	}
	p.expect(token.RPAREN)

	body := p.parseBlockOrSingleStmt()
	return &ast.ForStmt{For: forPos, Init: init, Cond: cond, Post: post, Body: body}
}

// parseWhile lowers "while (COND) BODY" to a ForStmt with only a
// condition, per the grammar's explicit lowering.
func (p *parser) parseWhile() ast.Stmt {
	whilePos := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlockOrSingleStmt()
	return &ast.ForStmt{For: whilePos, Cond: cond, Body: body}
}

func (p *parser) parseSwitch() ast.Stmt {
	switchPos := p.expect(token.SWITCH)
	p.expect(token.LPAREN)
	tag := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	var cases []*ast.CaseClause
	for p.tok == token.CASE || p.tok == token.DEFAULT {
		cases = append(cases, p.parseCaseClause())
	}
	end := p.expect(token.RBRACE)
	return &ast.SwitchStmt{Switch: switchPos, Tag: tag, Cases: cases, End: end}
}

func (p *parser) parseCaseClause() *ast.CaseClause {
	start := p.val.Pos
	var values []ast.Expr
	if _, ok := p.accept(token.CASE); ok {
		values = append(values, p.parseExpr())
	} else {
		p.expect(token.DEFAULT)
	}
	colon := p.expect(token.COLON)

	var stmts []ast.Stmt
	for p.tok != token.CASE && p.tok != token.DEFAULT && p.tok != token.RBRACE && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmtRecover())
	}

	end := colon
	if len(stmts) > 0 {
		_, end = stmts[len(stmts)-1].Span()
	}
	return &ast.CaseClause{Start: start, Values: values, Colon: colon, Stmts: stmts, End: end}
}

func (p *parser) parseReturn() ast.Stmt {
	retPos := p.expect(token.RETURN)
	var val ast.Expr
	if p.tok != token.SEMI {
		val = p.parseExpr()
	}
	end := p.expect(token.SEMI)
	return &ast.ReturnStmt{Return: retPos, Value: val, End: end}
}

func (p *parser) parseTypedefOrDefn() ast.Stmt {
	typedefPos := p.expect(token.TYPEDEF)
	switch p.tok {
	case token.STRUCT:
		return p.parseStructStmt(typedefPos, true)
	case token.ENUM:
		return p.parseEnumStmt(typedefPos, true)
	default:
		typ := p.parseType()
		pos := p.val.Pos
		name := p.expectIdent()
		end := p.expect(token.SEMI)
		return &ast.TypedefStmt{Typedef: typedefPos, Type: typ, Name: name, Pos: pos, End: end}
	}
}

// parseStructStmt parses every variant of the struct production: an
// anonymous or tagged struct definition, optionally typedef'd, optionally
// directly instantiated, or (when no '{' follows a tag) a plain variable
// declaration using a previously declared struct type.
func (p *parser) parseStructStmt(start token.Pos, hasTypedef bool) ast.Stmt {
	p.expect(token.STRUCT)

	var tag string
	if p.tok == token.IDENT {
		tag = p.val.Raw
		p.advance()
	}

	var params []*ast.Param
	if _, ok := p.accept(token.LPAREN); ok {
		params = p.parseParamList()
		p.expect(token.RPAREN)
	}

	if p.tok != token.LBRACE {
		if tag == "" {
			p.errorExpected(p.val.Pos, "'{' or a struct tag")
		}
		typ := &ast.TypeExpr{Start: start, Keyword: token.STRUCT, Name: tag, End: start + token.Pos(len("struct ")+len(tag))}
		return p.parseDeclTail(typ)
	}

	body := p.parseBlock()

	var instName, typedefName string
	var instArgs []ast.Expr
	var arrayLen ast.Expr
	if p.tok == token.IDENT {
		name := p.val.Raw
		p.advance()
		if hasTypedef {
			typedefName = name
		} else {
			instName = name
			if _, ok := p.accept(token.LPAREN); ok {
				instArgs = p.parseExprListUntil(token.RPAREN)
				p.expect(token.RPAREN)
			}
			if _, ok := p.accept(token.LBRACK); ok {
				arrayLen = p.parseExpr()
				p.expect(token.RBRACK)
			}
		}
	}

	end := p.expect(token.SEMI)
	return &ast.StructDefnStmt{
		Struct: start, Tag: tag, Params: params, Body: body,
		Typedef: hasTypedef, TypedefName: typedefName,
		InstName: instName, InstArgs: instArgs, ArrayLen: arrayLen, End: end,
	}
}

func (p *parser) parseEnumStmt(start token.Pos, hasTypedef bool) ast.Stmt {
	p.expect(token.ENUM)

	var underlying *ast.TypeExpr
	if _, ok := p.accept(token.LT); ok {
		underlying = p.parseType()
		p.expect(token.GT)
	}

	var tag string
	if p.tok == token.IDENT {
		tag = p.val.Raw
		p.advance()
	}

	if p.tok != token.LBRACE {
		if tag == "" {
			p.errorExpected(p.val.Pos, "'{' or an enum tag")
		}
		typ := &ast.TypeExpr{Start: start, Keyword: token.ENUM, Name: tag, End: start + token.Pos(len("enum ")+len(tag))}
		return p.parseDeclTail(typ)
	}

	p.expect(token.LBRACE)
	var members []*ast.EnumMember
	for p.tok != token.RBRACE {
		pos := p.val.Pos
		name := p.expectIdent()
		var val ast.Expr
		if _, ok := p.accept(token.ASSIGN); ok {
			val = p.parseExpr()
		}
		members = append(members, &ast.EnumMember{Name: name, Pos: pos, Value: val})
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RBRACE)

	var typedefName string
	if hasTypedef && p.tok == token.IDENT {
		typedefName = p.val.Raw
		p.advance()
	}

	end := p.expect(token.SEMI)
	return &ast.EnumDefnStmt{
		Enum: start, Underlying: underlying, Tag: tag, Members: members,
		Typedef: hasTypedef, TypedefName: typedefName, End: end,
	}
}

func (p *parser) parseLocalVarDefnCore() *ast.LocalVarDefnStmt {
	localPos := p.expect(token.LOCAL)
	typ := p.parseType()
	namePos := p.val.Pos
	name := p.expectIdent()

	var args []ast.Expr
	if _, ok := p.accept(token.LPAREN); ok {
		args = p.parseExprListUntil(token.RPAREN)
		p.expect(token.RPAREN)
	}
	var arrayLen ast.Expr
	if _, ok := p.accept(token.LBRACK); ok {
		arrayLen = p.parseExpr()
		p.expect(token.RBRACK)
	}
	var init ast.Expr
	if _, ok := p.accept(token.ASSIGN); ok {
		init = p.parseExpr()
	}
	return &ast.LocalVarDefnStmt{Local: localPos, Type: typ, Name: name, Pos: namePos, Args: args, ArrayLen: arrayLen, Init: init}
}

func (p *parser) parseLocalVarDefn() ast.Stmt {
	s := p.parseLocalVarDefnCore()
	s.End = p.expect(token.SEMI)
	return s
}

func (p *parser) parseExprStmtCore() *ast.ExprStmt {
	return &ast.ExprStmt{X: p.parseExpr()}
}

func (p *parser) parseExprStmt() ast.Stmt {
	s := p.parseExprStmtCore()
	s.End = p.expect(token.SEMI)
	return s
}

// parseDeclTail parses the remainder of a variable or function declaration
// once its TYPE has already been parsed: "NAME (ARGS|PARAMS)? ([LEN])?
// (;|{BODY})".
func (p *parser) parseDeclTail(typ *ast.TypeExpr) ast.Stmt {
	namePos := p.val.Pos
	name := p.expectIdent()

	if p.tok == token.LPAREN {
		if p.peekAt(1) == token.RPAREN {
			p.advance()
			p.expect(token.RPAREN)
			if p.tok == token.LBRACE {
				body := p.parseBlock()
				start, _ := typ.Span()
				return &ast.FuncDefnStmt{Start: start, ReturnType: typ, Name: name, Pos: namePos, Body: body}
			}
			end := p.expect(token.SEMI)
			return &ast.VarDefnStmt{Type: typ, Name: name, Pos: namePos, Args: []ast.Expr{}, End: end}
		}

		if p.aheadLooksLikeParam() {
			p.advance()
			params := p.parseParamList()
			p.expect(token.RPAREN)
			body := p.parseBlock()
			start, _ := typ.Span()
			return &ast.FuncDefnStmt{Start: start, ReturnType: typ, Name: name, Pos: namePos, Params: params, Body: body}
		}

		p.advance()
		args := p.parseExprListUntil(token.RPAREN)
		p.expect(token.RPAREN)
		var arrayLen ast.Expr
		if _, ok := p.accept(token.LBRACK); ok {
			arrayLen = p.parseExpr()
			p.expect(token.RBRACK)
		}
		end := p.expect(token.SEMI)
		return &ast.VarDefnStmt{Type: typ, Name: name, Pos: namePos, Args: args, ArrayLen: arrayLen, End: end}
	}

	if _, ok := p.accept(token.LBRACK); ok {
		arrayLen := p.parseExpr()
		p.expect(token.RBRACK)
		end := p.expect(token.SEMI)
		return &ast.VarDefnStmt{Type: typ, Name: name, Pos: namePos, ArrayLen: arrayLen, End: end}
	}

	end := p.expect(token.SEMI)
	return &ast.VarDefnStmt{Type: typ, Name: name, Pos: namePos, End: end}
}

// aheadLooksLikeParam reports whether the tokens following the current '('
// spell a typed parameter ("TYPE NAME") rather than a plain expression,
// used to tell a function's parameter list apart from a struct-
// instantiation argument list without backtracking. It is called while
// p.tok is still the unconsumed '(', so it inspects the lookahead queue
// one position further in than aheadLooksLikeParam's callee-local
// equivalent would if called on an already-consumed first token.
func (p *parser) aheadLooksLikeParam() bool {
	switch p.peekAt(1) {
	case token.IDENT:
		return p.peekAt(2) == token.IDENT
	case token.STRUCT, token.ENUM, token.UNSIGNED:
		return p.peekAt(2) == token.IDENT && p.peekAt(3) == token.IDENT
	default:
		return false
	}
}

func (p *parser) parseParamList() []*ast.Param {
	if p.tok == token.RPAREN {
		return nil
	}
	params := []*ast.Param{p.parseParam()}
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		params = append(params, p.parseParam())
	}
	return params
}

func (p *parser) parseParam() *ast.Param {
	typ := p.parseType()
	pos := p.val.Pos
	name := p.expectIdent()
	return &ast.Param{Type: typ, Name: name, Pos: pos}
}
