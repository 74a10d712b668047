// Package parser implements the Pratt/recursive-descent parser that turns
// ilex source code into an *ast.Chunk, following the precedence ladder
// documented in the language's external interface: Assignment < Or < And <
// Equality < Comparison < Term < Factor < Unary < Call < Primary.
//
// The parser's shape (an advance-driven token/value pair, panic-mode error
// recovery collected into a single error list rather than aborting on the
// first mistake) follows the teacher project's own lang/parser package.
package parser

import (
	"fmt"
	"os"

	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/scanner"
	"github.com/mna/ilex/lang/token"
)

// ParseFile parses a single source file and returns its Chunk and any
// parse errors found. The error, if non-nil, is a scanner.ErrorList.
func ParseFile(path string) (*ast.Chunk, error) {
	src, err := os.ReadFile(path)
	file := token.NewFile(path)
	if err != nil {
		var el scanner.ErrorList
		el.Add(token.Position{Filename: path}, err.Error())
		return nil, el.Err()
	}
	return ParseSource(file, src)
}

// ParseSource parses src (attributed to file for error messages) and
// returns its Chunk and any parse errors found.
func ParseSource(file *token.File, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(file, src)
	ch := p.parseChunk()
	return ch, p.errors.Err()
}

// parser holds the mutable state of a single parse.
type parser struct {
	file    *token.File
	scanner scanner.Scanner
	errors  scanner.ErrorList

	tok token.Token
	val token.Value
}

func (p *parser) init(file *token.File, src []byte) {
	p.file = file
	p.scanner.Init(file, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

func (p *parser) pos() token.Pos { return p.val.Pos }

func (p *parser) at(tok token.Token) bool { return p.tok == tok }

// expect consumes the current token if it matches tok, else records a parse
// error and does not advance (so the caller's synchronization point sees the
// same unexpected token).
func (p *parser) expect(tok token.Token) token.Value {
	val := p.val
	if p.tok != tok {
		p.errorf("expected %s, got %s", tok.GoString(), p.tok.GoString())
		return val
	}
	p.advance()
	return val
}

func (p *parser) match(tok token.Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...any) {
	line, col := p.val.Pos.LineCol()
	name := ""
	if p.file != nil {
		name = p.file.Name
	}
	p.errors.Add(token.Position{Filename: name, Line: line, Col: col}, fmt.Sprintf(format, args...))
}

// synchronize skips tokens until it finds a plausible statement boundary,
// implementing the panic-mode recovery spec.md requires of the parser.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		switch p.tok {
		case token.VAR, token.FN, token.STRUCT, token.IF, token.WHILE, token.FOR,
			token.RETURN, token.PR, token.BREAK, token.CONTINUE, token.RBRACE:
			return
		}
		p.advance()
	}
}

func (p *parser) parseChunk() *ast.Chunk {
	ch := &ast.Chunk{Name: p.file.Name}
	for p.tok != token.EOF {
		s := p.parseDeclOrStmt()
		if s != nil {
			ch.Stmts = append(ch.Stmts, s)
		}
	}
	ch.EOF = p.pos()
	return ch
}

// parseType parses a Type production: IDENT followed by zero or more "[]"
// suffixes.
func (p *parser) parseType() ast.Type {
	name := p.expect(token.IDENT).Str
	dims := 0
	for p.at(token.LBRACK) {
		p.advance()
		p.expect(token.RBRACK)
		dims++
	}
	return ast.Type{Name: name, Dims: dims}
}
