package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// ilex has a single grammar, unlike the teacher project's two dialects
// (its own plus a Lua-compatible one), so there is only one file to check.
func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Chunk"); err != nil {
		t.Fatal(err)
	}
}
