package scanner

import "github.com/mna/ilex/lang/token"

// number scans an int, uint or double literal starting at s.cur (already
// known to be a decimal digit, or a '.' followed by one). It returns the
// token kind and the raw literal text; for UINT the trailing 'u' suffix is
// included in the raw text.
func (s *Scanner) number() (token.Token, string) {
	start := s.off
	tok := token.INT

	for isDecimal(s.cur) {
		s.advance()
	}

	if s.cur == '.' {
		tok = token.FLOAT
		s.advance()
		for isDecimal(s.cur) {
			s.advance()
		}
	}

	if s.cur == 'e' || s.cur == 'E' {
		tok = token.FLOAT
		s.advance()
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		for isDecimal(s.cur) {
			s.advance()
		}
	}

	if tok == token.INT && s.cur == 'u' {
		tok = token.UINT
		s.advance()
	}

	return tok, string(s.src[start:s.off])
}
