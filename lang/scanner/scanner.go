// Package scanner tokenizes ilex source code, in the style of a hand-written
// recursive scanner (adapted from the teacher project's own lang/scanner,
// itself inspired by the Go standard library's go/scanner): an Init/Scan
// pair of methods feeding an error-handler callback, collecting multiple
// errors into a single ErrorList (modelled on go/scanner.ErrorList) rather
// than aborting on the first one.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/mna/ilex/lang/token"
)

// Error is a single scan/parse error with a resolved position, in
// the shape of the standard library's go/scanner.Error.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// ErrorList collects zero or more Error values, following the go/scanner.ErrorList
// pattern used by the scanner and the parser to report every
// error found in a single pass instead of aborting on the first one.
type ErrorList []*Error

// Add appends an error at pos to the list. It is a method value so it can be
// passed directly as an error-handler callback.
func (l *ErrorList) Add(pos token.Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	a, b := l[i].Pos, l[j].Pos
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

// Sort sorts the list by source position.
func (l ErrorList) Sort() { sort.Sort(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil if l is empty, else l itself as an error.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// PrintError prints err to w, one line per error when err is an ErrorList,
// or a single line otherwise. It is a no-op for a nil err.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(w, e)
		}
		return
	}
	fmt.Fprintln(w, err)
}

// TokenAndValue combines a token kind with its scanned literal payload.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFile tokenizes a single source file and returns every token scanned
// (including the trailing EOF) along with any lexical errors found. The
// error, if non-nil, is a scanner.ErrorList.
func ScanFile(path string) (*token.File, []TokenAndValue, error) {
	src, err := os.ReadFile(path)
	file := token.NewFile(path)
	if err != nil {
		var el ErrorList
		el.Add(token.Position{Filename: path}, err.Error())
		return file, nil, el.Err()
	}
	toks, err := ScanSource(file, src)
	return file, toks, err
}

// ScanSource tokenizes src (attributed to file for error messages) and
// returns every token scanned, including the trailing EOF.
func ScanSource(file *token.File, src []byte) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)
	s.Init(file, src, el.Add)
	var out []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		out = append(out, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return out, el.Err()
}

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(token.Position, string)

	// mutable scanning state
	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset following cur
	line int  // 1-based line of cur
	col  int  // 1-based column of cur
}

// Init prepares s to scan src, attributed to file for position reporting.
// errHandler is invoked (possibly more than once) for every lexical error
// encountered.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	s.file = file
	s.src = src
	s.err = errHandler
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0
	s.cur = ' '
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next rune into s.cur, tracking line/column as it goes.
// s.cur == -1 means end of file.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.line, s.col+1, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) error(line, col int, msg string) {
	if s.err != nil {
		name := ""
		if s.file != nil {
			name = s.file.Name
		}
		s.err(token.Position{Filename: name, Line: line, Col: col}, msg)
	}
}

func (s *Scanner) errorf(line, col int, format string, args ...any) {
	s.error(line, col, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source, filling tokVal with its
// position and (if applicable) decoded literal value.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	line, col := s.line, s.col
	pos := token.MakePos(line, col)

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupIdent(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos, Str: lit}

	case isDecimal(cur) || (cur == '.' && isDecimal(rune(s.peek()))):
		var lit string
		tok, lit = s.number()
		*tokVal = token.Value{Raw: lit, Pos: pos}
		switch tok {
		case token.INT:
			v, err := strconv.ParseInt(lit, 10, 64)
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(line, col, "int literal value out of range")
			}
			tokVal.Int = v
		case token.UINT:
			v, err := strconv.ParseUint(lit[:len(lit)-1], 10, 64)
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(line, col, "uint literal value out of range")
			}
			tokVal.Uint = v
		case token.FLOAT:
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(line, col, "double literal value out of range")
			}
			tokVal.Float = v
		}

	default:
		s.advance() // always make progress
		switch cur {
		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.BANGEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '+':
			tok = token.PLUS
			if s.advanceIf('=') {
				tok = token.PLUSEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '-':
			tok = token.MINUS
			if s.advanceIf('=') {
				tok = token.MINUSEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '*':
			tok = token.STAR
			if s.advanceIf('=') {
				tok = token.STAREQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '/':
			tok = token.SLASH
			if s.advanceIf('=') {
				tok = token.SLASHEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '%':
			tok = token.PERCENT
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '.':
			tok = token.DOT
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ',':
			tok = token.COMMA
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ':':
			tok = token.COLON
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ';':
			tok = token.SEMI
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '(':
			tok = token.LPAREN
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ')':
			tok = token.RPAREN
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '[':
			tok = token.LBRACK
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ']':
			tok = token.RBRACK
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '{':
			tok = token.LBRACE
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '}':
			tok = token.RBRACE
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '"':
			tok = token.STRING
			lit, val := s.stringLit()
			*tokVal = token.Value{Raw: lit, Pos: pos, Str: val}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			s.errorf(line, col, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return isDecimal(rn) || rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }
