package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d is missing a string representation", tok)
	}
}

func TestLookupIdent(t *testing.T) {
	for tok := AND; tok < maxToken; tok++ {
		require.Equal(t, tok, LookupIdent(tok.String()))
	}
	require.Equal(t, IDENT, LookupIdent("fibonacci"))
	require.Equal(t, IDENT, LookupIdent("Struct"))
}

func TestIsAssignOp(t *testing.T) {
	for _, tok := range []Token{PLUSEQ, MINUSEQ, STAREQ, SLASHEQ} {
		require.True(t, tok.IsAssignOp())
	}
	for _, tok := range []Token{EQ, PLUS, IDENT, EOF} {
		require.False(t, tok.IsAssignOp())
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}
