package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/natives"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/scanner"
)

func (c *Cmd) Analyse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return AnalyseFile(stdio, args[0])
}

func AnalyseFile(stdio mainer.Stdio, path string) error {
	ch, perr := parser.ParseFile(path)
	if perr != nil {
		// cannot analyse a tree that failed to parse
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	res, aerr := analyser.Analyse(ch, natives.Table())
	if aerr != nil {
		if list, ok := aerr.(analyser.ErrorList); ok {
			for _, e := range list {
				fmt.Fprintln(stdio.Stderr, e)
			}
		} else {
			fmt.Fprintln(stdio.Stderr, aerr)
		}
		return aerr
	}

	printer := ast.Printer{Output: stdio.Stdout}
	return printer.Print(res.Chunk)
}
