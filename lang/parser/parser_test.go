package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/token"
)

func parse(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	file := token.NewFile("test.ilx")
	ch, err := parser.ParseSource(file, []byte(src))
	require.NoError(t, err)
	return ch
}

func TestParseVarDecl(t *testing.T) {
	ch := parse(t, `var x: int = 1;`)
	require.Len(t, ch.Stmts, 1)
	vd, ok := ch.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", vd.Name)
	require.Equal(t, "int", vd.Type.Name)
	lit, ok := vd.Init.(*ast.IntLit)
	require.True(t, ok)
	require.EqualValues(t, 1, lit.Value)
}

func TestParseArrayType(t *testing.T) {
	ch := parse(t, `var xs: int[] = [1, 2, 3];`)
	vd := ch.Stmts[0].(*ast.VarDecl)
	require.Equal(t, "int", vd.Type.Name)
	require.Equal(t, 1, vd.Type.Dims)
	arr, ok := vd.Init.(*ast.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Elems, 3)
}

func TestParseIfElse(t *testing.T) {
	ch := parse(t, `
if x < 2 {
	return x;
} else if x == 2 {
	return 0;
} else {
	return 1;
}
`)
	ifs, ok := ch.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.IsType(t, &ast.Binary{}, ifs.Cond)
	elseIf, ok := ifs.ElseStmt.(*ast.If)
	require.True(t, ok)
	require.IsType(t, &ast.Block{}, elseIf.ElseStmt)
}

func TestParseWhileBreakContinue(t *testing.T) {
	ch := parse(t, `
while true {
	if x == 1 {
		break;
	}
	continue;
}
`)
	w, ok := ch.Stmts[0].(*ast.While)
	require.True(t, ok)
	require.Len(t, w.Body.Stmts, 2)
	require.IsType(t, &ast.Continue{}, w.Body.Stmts[1])
}

func TestParseFor(t *testing.T) {
	ch := parse(t, `
for i in 0 to 10 {
	pr i;
}
`)
	f, ok := ch.Stmts[0].(*ast.For)
	require.True(t, ok)
	require.Equal(t, "i", f.Name)
	require.IsType(t, &ast.IntLit{}, f.Lo)
	require.IsType(t, &ast.IntLit{}, f.Hi)
}

func TestParseFuncDecl(t *testing.T) {
	ch := parse(t, `
fn add(a: int, b: int): int {
	return a + b;
}
`)
	fd, ok := ch.Stmts[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fd.Name)
	require.Len(t, fd.Params, 2)
	require.Equal(t, "int", fd.ReturnType.Name)
	require.False(t, fd.IsMethod)
}

func TestParseStructDeclWithMethod(t *testing.T) {
	ch := parse(t, `
struct Point {
	x: int;
	y: int;

	fn sum(self): int {
		return self.x + self.y;
	}
}
`)
	sd, ok := ch.Stmts[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "Point", sd.Name)
	require.Len(t, sd.Fields, 2)
	require.Len(t, sd.Methods, 1)
	require.True(t, sd.Methods[0].IsMethod)
	require.Equal(t, "Point", sd.Methods[0].StructName)
	ret, ok := sd.Methods[0].Body.Stmts[0].(*ast.Return)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
	lhs, ok := bin.X.(*ast.Field)
	require.True(t, ok)
	require.IsType(t, &ast.Self{}, lhs.Recv)
}

func TestParseAssignForms(t *testing.T) {
	ch := parse(t, `
x = 1;
x += 1;
arr[0] = 2;
p.x = 3;
`)
	require.Len(t, ch.Stmts, 4)

	es0 := ch.Stmts[0].(*ast.ExprStmt)
	require.IsType(t, &ast.Assign{}, es0.X)

	es1 := ch.Stmts[1].(*ast.ExprStmt)
	ca, ok := es1.X.(*ast.CompoundAssign)
	require.True(t, ok)
	require.Equal(t, token.PLUS, ca.Op)

	es2 := ch.Stmts[2].(*ast.ExprStmt)
	require.IsType(t, &ast.IndexAssign{}, es2.X)

	es3 := ch.Stmts[3].(*ast.ExprStmt)
	require.IsType(t, &ast.FieldAssign{}, es3.X)
}

func TestParseCallAndMethodCall(t *testing.T) {
	ch := parse(t, `
len(xs);
p.sum();
`)
	es0 := ch.Stmts[0].(*ast.ExprStmt)
	call, ok := es0.X.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "len", call.Callee)

	es1 := ch.Stmts[1].(*ast.ExprStmt)
	mc, ok := es1.X.(*ast.MethodCall)
	require.True(t, ok)
	require.Equal(t, "sum", mc.Method)
}

func TestParseCast(t *testing.T) {
	ch := parse(t, `var x: double = 1 as double;`)
	vd := ch.Stmts[0].(*ast.VarDecl)
	cast, ok := vd.Init.(*ast.Cast)
	require.True(t, ok)
	require.Equal(t, "double", cast.To.Name)
}

func TestParsePrecedence(t *testing.T) {
	ch := parse(t, `var x: int = 1 + 2 * 3;`)
	vd := ch.Stmts[0].(*ast.VarDecl)
	bin, ok := vd.Init.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
	require.IsType(t, &ast.IntLit{}, bin.X)
	rhs, ok := bin.Y.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, token.STAR, rhs.Op)
}

func TestParseErrorRecoversAndReports(t *testing.T) {
	file := token.NewFile("bad.ilx")
	_, err := parser.ParseSource(file, []byte(`var x int = 1; var y: int = 2;`))
	require.Error(t, err)
}
