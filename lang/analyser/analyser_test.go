package analyser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/token"
)

func check(t *testing.T, src string, natives analyser.NativeTable) (*analyser.Result, error) {
	t.Helper()
	file := token.NewFile("test.ilx")
	ch, err := parser.ParseSource(file, []byte(src))
	require.NoError(t, err)
	return analyser.Analyse(ch, natives)
}

func TestAnalyseFibonacci(t *testing.T) {
	res, err := check(t, `
fn fib(n: int): int {
	if n < 2 {
		return n;
	}
	return fib(n-1) + fib(n-2);
}
`, nil)
	require.NoError(t, err)
	require.Contains(t, res.Funcs, "fib")

	fib := res.Funcs["fib"].Decl
	ret := fib.Body.Stmts[1].(*ast.Return)
	bin := ret.Value.(*ast.Binary)
	lhs := bin.X.(*ast.Call)
	require.Equal(t, ast.IdentFunc, lhs.Kind)
}

func TestAnalyseUndefinedName(t *testing.T) {
	_, err := check(t, `var x: int = y;`, nil)
	require.Error(t, err)
}

func TestAnalyseArityMismatch(t *testing.T) {
	_, err := check(t, `
fn add(a: int, b: int): int { return a + b; }
fn main() { var x: int = add(1); }
`, nil)
	require.Error(t, err)
}

func TestAnalyseStructFieldsAndMethods(t *testing.T) {
	res, err := check(t, `
struct Point {
	x: int;
	y: int;

	fn sum(self): int {
		return self.x + self.y;
	}
}
`, nil)
	require.NoError(t, err)
	pt := res.Structs["Point"]
	require.Len(t, pt.Fields, 2)
	require.Len(t, pt.Methods, 1)

	ret := pt.Methods[0].Body.Stmts[0].(*ast.Return)
	bin := ret.Value.(*ast.Binary)
	lhs := bin.X.(*ast.Field)
	require.Equal(t, 0, lhs.FieldIndex)
}

func TestAnalyseBreakOutsideLoop(t *testing.T) {
	_, err := check(t, `
fn f() {
	break;
}
`, nil)
	require.Error(t, err)
}

func TestAnalyseSelfOutsideMethod(t *testing.T) {
	_, err := check(t, `
fn f(): int {
	return self;
}
`, nil)
	require.Error(t, err)
}

func TestAnalyseNativeCall(t *testing.T) {
	natives := analyser.NativeTable{
		"len": {Name: "len", ParamTypes: []ast.Type{{Name: "int", Dims: 1}}, ReturnType: ast.Type{Name: "int"}},
	}
	res, err := check(t, `
fn f(xs: int[]): int {
	return len(xs);
}
`, natives)
	require.NoError(t, err)
	fn := res.Funcs["f"].Decl
	ret := fn.Body.Stmts[0].(*ast.Return)
	call := ret.Value.(*ast.Call)
	require.Equal(t, ast.IdentNative, call.Kind)
}
