package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/ilex/lang/scanner"
	"github.com/mna/ilex/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFile(stdio, token.PosLong, args[0])
}

func TokenizeFile(stdio mainer.Stdio, posMode token.PosMode, path string) error {
	file, toks, err := scanner.ScanFile(path)
	for _, tok := range toks {
		fmt.Fprintf(stdio.Stdout, "%s: %s", token.FormatPos(posMode, file, tok.Value.Pos), tok.Token)
		if tok.Value.Raw != "" {
			fmt.Fprintf(stdio.Stdout, " %s", tok.Value.Raw)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
