package token

// Value carries the literal payload scanned alongside a Token: its source
// position plus, depending on the token kind, its decoded literal value.
// Only one of Int, Uint, Float, Str is meaningful, per the Token that
// accompanies this Value.
type Value struct {
	Pos   Pos
	Raw   string // the literal source text, used in error messages
	Int   int64
	Uint  uint64
	Float float64
	Str   string // decoded string literal (escapes resolved) or identifier text
}
