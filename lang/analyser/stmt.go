package analyser

import (
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/token"
)

func (a *analyser) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		a.checkVarDecl(n)
	case *ast.Block:
		a.beginScope()
		for _, s := range n.Stmts {
			a.checkStmt(s)
		}
		a.endScope(n)
	case *ast.If:
		a.checkCondType(n.Cond, n.Pos)
		a.checkStmt(n.Then)
		if n.ElseStmt != nil {
			a.checkStmt(n.ElseStmt)
		}
	case *ast.While:
		a.checkCondType(n.Cond, n.Pos)
		a.fn.inLoop++
		a.checkStmt(n.Body)
		a.fn.inLoop--
	case *ast.For:
		lo := a.checkExpr(n.Lo)
		hi := a.checkExpr(n.Hi)
		if lo.Name != "int" || hi.Name != "int" {
			a.errorf(n.Pos, "for range bounds must be int")
		}
		a.beginScope()
		n.Slot = a.declareLocal(n.Name, ast.Type{Name: "int"}, n.Pos)
		a.fn.inLoop++
		for _, s := range n.Body.Stmts {
			a.checkStmt(s)
		}
		a.fn.inLoop--
		a.endScope(nil)
	case *ast.Break:
		if a.fn.inLoop == 0 {
			a.errorf(n.Pos, "break outside of a loop")
		}
	case *ast.Continue:
		if a.fn.inLoop == 0 {
			a.errorf(n.Pos, "continue outside of a loop")
		}
	case *ast.Return:
		a.checkReturn(n)
	case *ast.Print:
		a.checkExpr(n.Value)
	case *ast.ExprStmt:
		a.checkExpr(n.X)
	case *ast.FuncDecl, *ast.StructDecl:
		a.errorf(s.Span(), "nested function/struct declarations are not supported")
	}
}

func (a *analyser) checkVarDecl(n *ast.VarDecl) {
	initType := a.checkExpr(n.Init)
	if n.Type.Name == "" {
		n.Type = initType
	} else if !typesMatch(initType, n.Type) {
		a.errorf(n.Pos, "cannot assign %s to variable %q of type %s", initType, n.Name, n.Type)
	}
	n.Slot = a.declareLocal(n.Name, n.Type, n.Pos)
}

func (a *analyser) checkCondType(cond ast.Expr, pos token.Pos) {
	t := a.checkExpr(cond)
	if t.Name != "bool" {
		a.errorf(pos, "condition must be bool, got %s", t)
	}
}

func (a *analyser) checkReturn(n *ast.Return) {
	want := a.fn.returnType
	if n.Value == nil {
		if want.Name != "" {
			a.errorf(n.Pos, "missing return value, expected %s", want)
		}
		return
	}
	got := a.checkExpr(n.Value)
	if want.Name == "" {
		a.errorf(n.Pos, "function has no declared return type but a value was returned")
		return
	}
	if !typesMatch(got, want) {
		a.errorf(n.Pos, "return type mismatch: expected %s, got %s", want, got)
	}
}
