package parser

import (
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/token"
)

// parseExpr parses a full expression, starting at the lowest precedence
// level (assignment).
func (p *parser) parseExpr() ast.Expr { return p.parseAssignment() }

// parseAssignment implements the top of the precedence ladder: Assignment <
// Or. An assignment target is parsed first as an ordinary expression, then
// reclassified into Assign/CompoundAssign/IndexAssign/FieldAssign once the
// `=` or compound operator is seen, following the same technique the
// teacher's own expr.go parser uses to avoid a separate lvalue grammar.
func (p *parser) parseAssignment() ast.Expr {
	expr := p.parseOr()
	if p.tok == token.EQ || p.tok.IsAssignOp() {
		op := p.tok
		pos := p.pos()
		p.advance()
		value := p.parseAssignment()
		switch e := expr.(type) {
		case *ast.Ident:
			if op == token.EQ {
				return &ast.Assign{Pos: pos, Name: e.Name, Value: value}
			}
			return &ast.CompoundAssign{Pos: pos, Name: e.Name, Op: compoundBaseOp(op), Value: value}
		case *ast.Index:
			if op != token.EQ {
				p.errorf("compound assignment to an index expression is not supported")
				return expr
			}
			return &ast.IndexAssign{Pos: pos, Recv: e.Recv, Idx: e.Idx, Value: value}
		case *ast.Field:
			if op != token.EQ {
				p.errorf("compound assignment to a field expression is not supported")
				return expr
			}
			return &ast.FieldAssign{Pos: pos, Recv: e.Recv, Name: e.Name, Value: value}
		default:
			p.errorf("invalid assignment target")
			return expr
		}
	}
	return expr
}

func compoundBaseOp(op token.Token) token.Token {
	switch op {
	case token.PLUSEQ:
		return token.PLUS
	case token.MINUSEQ:
		return token.MINUS
	case token.STAREQ:
		return token.STAR
	case token.SLASHEQ:
		return token.SLASH
	default:
		return op
	}
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OR) {
		pos := p.pos()
		p.advance()
		right := p.parseAnd()
		left = &ast.Logical{Pos: pos, Op: token.OR, X: left, Y: right}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND) {
		pos := p.pos()
		p.advance()
		right := p.parseEquality()
		left = &ast.Logical{Pos: pos, Op: token.AND, X: left, Y: right}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.tok == token.EQEQ || p.tok == token.BANGEQ {
		op, pos := p.tok, p.pos()
		p.advance()
		right := p.parseComparison()
		left = &ast.Binary{Pos: pos, Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for p.tok == token.LT || p.tok == token.LE || p.tok == token.GT || p.tok == token.GE {
		op, pos := p.tok, p.pos()
		p.advance()
		right := p.parseTerm()
		left = &ast.Binary{Pos: pos, Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op, pos := p.tok, p.pos()
		p.advance()
		right := p.parseFactor()
		left = &ast.Binary{Pos: pos, Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for p.tok == token.STAR || p.tok == token.SLASH || p.tok == token.PERCENT {
		op, pos := p.tok, p.pos()
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Pos: pos, Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok == token.MINUS || p.tok == token.BANG {
		op, pos := p.tok, p.pos()
		p.advance()
		x := p.parseUnary()
		return &ast.Unary{Pos: pos, Op: op, X: x}
	}
	return p.parseCall()
}

// parseCall parses a primary expression followed by any number of call,
// index, and field-access postfixes, then an optional trailing `as Type`
// cast.
func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
loop:
	for {
		switch p.tok {
		case token.LPAREN:
			id, ok := expr.(*ast.Ident)
			if !ok {
				p.errorf("only a plain name may be called")
				p.parseArgs()
				break loop
			}
			args := p.parseArgs()
			expr = &ast.Call{Pos: id.Pos, Callee: id.Name, Args: args}
		case token.DOT:
			pos := p.pos()
			p.advance()
			name := p.expect(token.IDENT).Str
			if p.at(token.LPAREN) {
				args := p.parseArgs()
				expr = &ast.MethodCall{Pos: pos, Recv: expr, Method: name, Args: args}
			} else {
				expr = &ast.Field{Pos: pos, Recv: expr, Name: name}
			}
		case token.LBRACK:
			pos := p.pos()
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			expr = &ast.Index{Pos: pos, Recv: expr, Idx: idx}
		default:
			break loop
		}
	}
	if p.match(token.AS) {
		typ := p.parseType()
		expr = &ast.Cast{Pos: expr.Span(), X: expr, To: typ}
	}
	return expr
}

func (p *parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if p.tok != token.RPAREN {
		for {
			args = append(args, p.parseExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.tok {
	case token.INT:
		v := p.val.Int
		p.advance()
		return &ast.IntLit{Pos: pos, Value: v}
	case token.UINT:
		v := p.val.Uint
		p.advance()
		return &ast.UintLit{Pos: pos, Value: v}
	case token.FLOAT:
		v := p.val.Float
		p.advance()
		return &ast.FloatLit{Pos: pos, Value: v}
	case token.STRING:
		v := p.val.Str
		p.advance()
		return &ast.StringLit{Pos: pos, Value: v}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Pos: pos, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Pos: pos, Value: false}
	case token.NULL:
		p.advance()
		return &ast.NullLit{Pos: pos}
	case token.SELF:
		p.advance()
		return &ast.Self{Pos: pos}
	case token.IDENT:
		name := p.val.Str
		p.advance()
		return &ast.Ident{Pos: pos, Name: name}
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.LBRACK:
		p.advance()
		var elems []ast.Expr
		if p.tok != token.RBRACK {
			for {
				elems = append(elems, p.parseExpr())
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.expect(token.RBRACK)
		return &ast.ArrayLit{Pos: pos, Elems: elems}
	default:
		p.errorf("expected expression, got %s", p.tok.GoString())
		p.advance()
		return &ast.NullLit{Pos: pos}
	}
}
