package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/ilex/internal/config"
	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/compiler"
	"github.com/mna/ilex/lang/machine"
	"github.com/mna/ilex/lang/natives"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/scanner"
	"github.com/mna/ilex/lang/value"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(stdio, args[0])
}

// RunFile drives the full pipeline (scan, parse, analyse, emit, interpret)
// over the source file at path, printing whatever the program prints to
// stdio.Stdout and reporting the first error found, at whichever phase it
// occurred, to stdio.Stderr.
func RunFile(stdio mainer.Stdio, path string) error {
	ch, perr := parser.ParseFile(path)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	res, aerr := analyser.Analyse(ch, natives.Table())
	if aerr != nil {
		fmt.Fprintln(stdio.Stderr, aerr)
		return aerr
	}

	limits, lerr := config.LoadLimits()
	if lerr != nil {
		fmt.Fprintln(stdio.Stderr, lerr)
		return lerr
	}

	impls := make(map[string]value.NativeFn, len(res.Natives))
	for _, d := range natives.All() {
		impls[d.Name] = d.Fn
	}

	fn, h, cerr := compiler.Compile(res, impls, limits)
	if cerr != nil {
		fmt.Fprintln(stdio.Stderr, cerr)
		return cerr
	}

	vm := machine.New(h, limits, stdio.Stdout)
	if rerr := vm.Interpret(fn); rerr != nil {
		fmt.Fprintln(stdio.Stderr, rerr)
		return rerr
	}
	return nil
}
