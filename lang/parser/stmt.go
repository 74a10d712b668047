package parser

import (
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/token"
)

// parseDeclOrStmt parses one top-level or block-level statement, recovering
// via synchronize on error so a single mistake does not abort the whole
// parse.
func (p *parser) parseDeclOrStmt() (s ast.Stmt) {
	before := len(p.errors)
	switch p.tok {
	case token.VAR:
		s = p.parseVarDecl()
	case token.FN:
		s = p.parseFuncDecl(false, "")
	case token.STRUCT:
		s = p.parseStructDecl()
	case token.LBRACE:
		s = p.parseBlock()
	case token.IF:
		s = p.parseIf()
	case token.WHILE:
		s = p.parseWhile()
	case token.FOR:
		s = p.parseFor()
	case token.BREAK:
		pos := p.pos()
		p.advance()
		p.expect(token.SEMI)
		s = &ast.Break{Pos: pos}
	case token.CONTINUE:
		pos := p.pos()
		p.advance()
		p.expect(token.SEMI)
		s = &ast.Continue{Pos: pos}
	case token.RETURN:
		s = p.parseReturn()
	case token.PR:
		s = p.parsePrint()
	default:
		s = p.parseExprStmt()
	}
	if len(p.errors) > before {
		p.synchronize()
	}
	return s
}

func (p *parser) parseVarDecl() ast.Stmt {
	pos := p.pos()
	p.advance() // VAR
	name := p.expect(token.IDENT).Str
	var typ ast.Type
	if p.match(token.COLON) {
		typ = p.parseType()
	}
	p.expect(token.EQ)
	init := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.VarDecl{Pos: pos, Name: name, Type: typ, Init: init}
}

func (p *parser) parseBlock() *ast.Block {
	pos := p.pos()
	p.expect(token.LBRACE)
	b := &ast.Block{Pos: pos}
	for p.tok != token.RBRACE && p.tok != token.EOF {
		b.Stmts = append(b.Stmts, p.parseDeclOrStmt())
	}
	p.expect(token.RBRACE)
	return b
}

func (p *parser) parseIf() ast.Stmt {
	pos := p.pos()
	p.advance() // IF
	cond := p.parseExpr()
	then := p.parseBlock()
	n := &ast.If{Pos: pos, Cond: cond, Then: then}
	if p.match(token.ELSE) {
		if p.at(token.IF) {
			n.ElseStmt = p.parseIf()
		} else {
			n.ElseStmt = p.parseBlock()
		}
	}
	return n
}

func (p *parser) parseWhile() ast.Stmt {
	pos := p.pos()
	p.advance() // WHILE
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Pos: pos, Cond: cond, Body: body}
}

func (p *parser) parseFor() ast.Stmt {
	pos := p.pos()
	p.advance() // FOR
	name := p.expect(token.IDENT).Str
	p.expect(token.IN)
	lo := p.parseExpr()
	p.expect(token.TO)
	hi := p.parseExpr()
	body := p.parseBlock()
	return &ast.For{Pos: pos, Name: name, Lo: lo, Hi: hi, Body: body}
}

func (p *parser) parseReturn() ast.Stmt {
	pos := p.pos()
	p.advance() // RETURN
	var val ast.Expr
	if p.tok != token.SEMI {
		val = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.Return{Pos: pos, Value: val}
}

func (p *parser) parsePrint() ast.Stmt {
	pos := p.pos()
	p.advance() // PR
	val := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.Print{Pos: pos, Value: val}
}

func (p *parser) parseExprStmt() ast.Stmt {
	pos := p.pos()
	x := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.ExprStmt{Pos: pos, X: x}
}

// parseParams parses a parenthesized parameter list: ( self? , name: Type, ... ).
// A bare leading `self` marks the enclosing FuncDecl as an instance method.
func (p *parser) parseParams() (params []ast.Param, hasSelf bool) {
	p.expect(token.LPAREN)
	if p.tok == token.RPAREN {
		p.advance()
		return nil, false
	}
	if p.at(token.SELF) {
		pos := p.pos()
		p.advance()
		params = append(params, ast.Param{Name: "self", Pos: pos})
		hasSelf = true
		if !p.match(token.COMMA) {
			p.expect(token.RPAREN)
			return params, hasSelf
		}
	}
	for {
		pos := p.pos()
		name := p.expect(token.IDENT).Str
		p.expect(token.COLON)
		typ := p.parseType()
		params = append(params, ast.Param{Name: name, Type: typ, Pos: pos})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params, hasSelf
}

func (p *parser) parseFuncDecl(isMethod bool, structName string) *ast.FuncDecl {
	pos := p.pos()
	p.expect(token.FN)
	name := p.expect(token.IDENT).Str
	params, hasSelf := p.parseParams()
	var ret ast.Type
	if p.match(token.COLON) {
		ret = p.parseType()
	}
	body := p.parseBlock()
	return &ast.FuncDecl{
		Pos:        pos,
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		IsMethod:   isMethod || hasSelf,
		StructName: structName,
	}
}

func (p *parser) parseStructDecl() ast.Stmt {
	pos := p.pos()
	p.advance() // STRUCT
	name := p.expect(token.IDENT).Str
	p.expect(token.LBRACE)
	decl := &ast.StructDecl{Pos: pos, Name: name}
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if p.at(token.FN) {
			decl.Methods = append(decl.Methods, p.parseFuncDecl(true, name))
			continue
		}
		fpos := p.pos()
		fname := p.expect(token.IDENT).Str
		p.expect(token.COLON)
		ftyp := p.parseType()
		p.expect(token.SEMI)
		decl.Fields = append(decl.Fields, ast.Param{Name: fname, Type: ftyp, Pos: fpos})
	}
	p.expect(token.RBRACE)
	return decl
}
