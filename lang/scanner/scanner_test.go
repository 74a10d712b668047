package scanner_test

import (
	"testing"

	"github.com/mna/ilex/lang/scanner"
	"github.com/mna/ilex/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()
	toks, err := scanner.ScanSource(token.NewFile("test.ilex"), []byte(src))
	require.NoError(t, err)
	return toks
}

func tokKinds(toks []scanner.TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "fn main self foo_bar")
	require.Equal(t, []token.Token{token.FN, token.IDENT, token.SELF, token.IDENT, token.EOF}, tokKinds(toks))
	require.Equal(t, "main", toks[1].Value.Str)
	require.Equal(t, "foo_bar", toks[3].Value.Str)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "42 10u 3.14 2e3")
	require.Equal(t, []token.Token{token.INT, token.UINT, token.FLOAT, token.FLOAT, token.EOF}, tokKinds(toks))
	require.Equal(t, int64(42), toks[0].Value.Int)
	require.Equal(t, uint64(10), toks[1].Value.Uint)
	require.InDelta(t, 3.14, toks[2].Value.Float, 1e-9)
	require.InDelta(t, 2000.0, toks[3].Value.Float, 1e-9)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hoi\n"`)
	require.Equal(t, []token.Token{token.STRING, token.EOF}, tokKinds(toks))
	require.Equal(t, "hoi\n", toks[0].Value.Str)
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "+= -= *= /= == != <= >= ( ) [ ] { } . , : ;")
	want := []token.Token{
		token.PLUSEQ, token.MINUSEQ, token.STAREQ, token.SLASHEQ,
		token.EQEQ, token.BANGEQ, token.LE, token.GE,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.LBRACE, token.RBRACE, token.DOT, token.COMMA, token.COLON, token.SEMI,
		token.EOF,
	}
	require.Equal(t, want, tokKinds(toks))
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll(t, "1 // a comment\n2")
	require.Equal(t, []token.Token{token.INT, token.INT, token.EOF}, tokKinds(toks))
}

func TestScanTracksLines(t *testing.T) {
	toks := scanAll(t, "1\n2\n3")
	for i, want := range []int{1, 2, 3} {
		line, _ := toks[i].Value.Pos.LineCol()
		require.Equal(t, want, line)
	}
}

func TestScanIllegalCharacter(t *testing.T) {
	_, err := scanner.ScanSource(token.NewFile("test.ilex"), []byte("1 $ 2"))
	require.Error(t, err)
}
