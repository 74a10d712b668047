package machine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/internal/config"
	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/compiler"
	"github.com/mna/ilex/lang/machine"
	"github.com/mna/ilex/lang/natives"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/token"
	"github.com/mna/ilex/lang/value"
)

// runSource drives the full pipeline (scan -> parse -> analyse -> emit ->
// interpret) over src and returns everything printed by `pr` statements.
func runSource(t *testing.T, src string) string {
	t.Helper()

	file := token.NewFile("test.ilex")
	ch, err := parser.ParseSource(file, []byte(src))
	require.NoError(t, err)

	res, err := analyser.Analyse(ch, natives.Table())
	require.NoError(t, err)

	impls := make(map[string]value.NativeFn)
	for _, d := range natives.All() {
		impls[d.Name] = d.Fn
	}

	limits := config.Default()
	fn, h, err := compiler.Compile(res, impls, limits)
	require.NoError(t, err)

	var buf bytes.Buffer
	vm := machine.New(h, limits, &buf)
	require.NoError(t, vm.Interpret(fn))
	return buf.String()
}

func TestFibonacci(t *testing.T) {
	src := `
fn fib(n: int): int {
	if n < 2 {
		return n;
	}
	return fib(n-1)+fib(n-2);
}
pr fib(20);
`
	require.Equal(t, "6765", runSource(t, src))
}

func TestArrayReassignment(t *testing.T) {
	src := `
var a: int[] = [1, 2, 3];
pr a[0];
pr a[1];
pr a[2];
a[1] = 2;
a[2] = 4;
pr a[1];
pr a[2];
var b: int = 8;
pr b;
`
	require.Equal(t, "123248", runSource(t, src))
}

func TestContinueSkips6And7(t *testing.T) {
	src := `
for i in 1 to 11 {
	if i == 6 {
		continue;
	}
	if i == 7 {
		continue;
	}
	pr i;
}
`
	require.Equal(t, "123458910", runSource(t, src))
}

func TestBreak(t *testing.T) {
	src := `
for i in 0 to 10 {
	if i == 4 {
		break;
	}
	pr i;
}
`
	require.Equal(t, "0123", runSource(t, src))
}

func TestTwoDimensionalArray(t *testing.T) {
	src := `
var a: int[][] = [[1, 2], [3, 4]];
for i in 0 to 2 {
	for j in 0 to 2 {
		pr a[i][j];
	}
}
`
	require.Equal(t, "1234", runSource(t, src))
}

func TestStructMethodsAndFields(t *testing.T) {
	src := `
struct Point {
	x: int;
	y: int;

	fn sum(self): int {
		return self.x + self.y;
	}
}

var p: Point = Point(2, 4);
pr p.sum();
pr p.y;
var s: str = "hoi";
pr s;
`
	require.Equal(t, "64hoi", runSource(t, src))
}

func TestWhileLoopContinueTargetsLoopStart(t *testing.T) {
	src := `
var i: int = 0;
while i < 5 {
	i = i + 1;
	if i == 3 {
		continue;
	}
	pr i;
}
`
	require.Equal(t, "1245", runSource(t, src))
}

func TestCasts(t *testing.T) {
	src := `
var f: double = 3.9;
pr f as int;
var n: int = 7;
pr n as double;
`
	require.Equal(t, "37", runSource(t, src))
}
