package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/scanner"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFile(stdio, args[0])
}

func ParseFile(stdio mainer.Stdio, path string) error {
	ch, err := parser.ParseFile(path)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}
	printer := ast.Printer{Output: stdio.Stdout}
	return printer.Print(ch)
}
