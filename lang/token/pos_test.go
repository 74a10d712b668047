package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	cases := []struct{ line, col int }{
		{1, 1},
		{42, 7},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		gotLine, gotCol := p.LineCol()
		require.Equal(t, c.line, gotLine)
		require.Equal(t, c.col, gotCol)
		require.Equal(t, c.line, p.Line())
	}
}

func TestPosUnknown(t *testing.T) {
	require.True(t, NoPos.Unknown())
	require.True(t, MakePos(0, 1).Unknown())
	require.True(t, MakePos(1, 0).Unknown())
	require.False(t, MakePos(1, 1).Unknown())
}

func TestFormatPos(t *testing.T) {
	f := NewFile("main.ilex")
	p := MakePos(12, 3)
	require.Equal(t, "[line 12]", FormatPos(PosShort, f, p))
	require.Equal(t, "main.ilex:12:3", FormatPos(PosLong, f, p))
}
