package analyser

import (
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/token"
)

var (
	typeInt    = ast.Type{Name: "int"}
	typeUint   = ast.Type{Name: "uint"}
	typeDouble = ast.Type{Name: "double"}
	typeBool   = ast.Type{Name: "bool"}
	typeStr    = ast.Type{Name: "str"}
	typeNull   = ast.Type{Name: "null"}
)

func isNumeric(t ast.Type) bool {
	return !t.IsArray() && (t.Name == "int" || t.Name == "uint" || t.Name == "double")
}

// typesMatch reports whether got satisfies want, treating "any" (the
// native-function escape hatch, see lang/natives.Table) as matching
// anything and an empty Name as "unknown, already reported elsewhere".
func typesMatch(got, want ast.Type) bool {
	if got.Name == "" || want.Name == "" || got.Name == "any" || want.Name == "any" {
		return true
	}
	return got.Equal(want)
}

// checkExpr resolves and type-checks e, annotating the node in place, and
// returns its static type (the zero Type{} when the type could not be
// determined, e.g. after an error was already reported for it).
func (a *analyser) checkExpr(e ast.Expr) ast.Type {
	switch x := e.(type) {
	case *ast.IntLit:
		return typeInt
	case *ast.UintLit:
		return typeUint
	case *ast.FloatLit:
		return typeDouble
	case *ast.StringLit:
		return typeStr
	case *ast.BoolLit:
		return typeBool
	case *ast.NullLit:
		return typeNull
	case *ast.Self:
		if !a.fn.isMethod {
			a.errorf(x.Pos, "self used outside of a method")
			return ast.Type{}
		}
		x.Type = a.fn.selfType
		if loc, ok := a.resolveLocal("self"); ok {
			x.Slot = loc.slot
		}
		return a.fn.selfType
	case *ast.Ident:
		return a.checkIdent(x)
	case *ast.Assign:
		return a.checkAssign(x)
	case *ast.CompoundAssign:
		return a.checkCompoundAssign(x)
	case *ast.Unary:
		return a.checkUnary(x)
	case *ast.Binary:
		return a.checkBinary(x)
	case *ast.Logical:
		a.expectType(x.X, typeBool, "operand to a logical operator")
		a.expectType(x.Y, typeBool, "operand to a logical operator")
		return typeBool
	case *ast.Call:
		return a.checkCall(x)
	case *ast.MethodCall:
		return a.checkMethodCall(x)
	case *ast.ArrayLit:
		return a.checkArrayLit(x)
	case *ast.Index:
		return a.checkIndex(x)
	case *ast.IndexAssign:
		return a.checkIndexAssign(x)
	case *ast.Field:
		return a.checkField(x)
	case *ast.FieldAssign:
		return a.checkFieldAssign(x)
	case *ast.Cast:
		from := a.checkExpr(x.X)
		if from.Name != "" && !isNumeric(x.To) && !typesMatch(from, x.To) {
			a.errorf(x.Pos, "cannot cast %s to %s", from, x.To)
		}
		return x.To
	default:
		return ast.Type{}
	}
}

func (a *analyser) expectType(e ast.Expr, want ast.Type, what string) ast.Type {
	got := a.checkExpr(e)
	if got.Name != "" && !got.Equal(want) {
		a.errorf(e.Span(), "%s must be %s, got %s", what, want, got)
	}
	return got
}

func (a *analyser) checkIdent(x *ast.Ident) ast.Type {
	if loc, ok := a.resolveLocal(x.Name); ok {
		x.Kind = ast.IdentLocal
		x.Slot = loc.slot
		x.Type = loc.typ
		return loc.typ
	}
	if _, ok := a.funcs[x.Name]; ok {
		x.Kind = ast.IdentFunc
		return ast.Type{}
	}
	if _, ok := a.natives[x.Name]; ok {
		x.Kind = ast.IdentNative
		return ast.Type{}
	}
	if _, ok := a.structs[x.Name]; ok {
		x.Kind = ast.IdentStruct
		return ast.Type{}
	}
	a.errorf(x.Pos, "undefined name %q", x.Name)
	return ast.Type{}
}

func (a *analyser) checkAssign(x *ast.Assign) ast.Type {
	loc, ok := a.resolveLocal(x.Name)
	if !ok {
		a.errorf(x.Pos, "undefined name %q", x.Name)
	} else {
		x.Slot = loc.slot
	}
	vt := a.checkExpr(x.Value)
	if ok && !typesMatch(vt, loc.typ) {
		a.errorf(x.Pos, "cannot assign %s to %q of type %s", vt, x.Name, loc.typ)
	}
	return loc.typ
}

func (a *analyser) checkCompoundAssign(x *ast.CompoundAssign) ast.Type {
	loc, ok := a.resolveLocal(x.Name)
	if !ok {
		a.errorf(x.Pos, "undefined name %q", x.Name)
	} else if !isNumeric(loc.typ) && !(loc.typ.Equal(typeStr) && x.Op == token.PLUS) {
		a.errorf(x.Pos, "compound assignment requires a numeric (or, for +=, string) variable, got %s", loc.typ)
	} else {
		x.Slot = loc.slot
	}
	a.checkExpr(x.Value)
	return loc.typ
}

func (a *analyser) checkUnary(x *ast.Unary) ast.Type {
	t := a.checkExpr(x.X)
	switch x.Op {
	case token.MINUS:
		if t.Name != "" && !isNumeric(t) {
			a.errorf(x.Pos, "operand to unary - must be numeric, got %s", t)
		}
		return t
	case token.BANG:
		if t.Name != "" && !t.Equal(typeBool) {
			a.errorf(x.Pos, "operand to ! must be bool, got %s", t)
		}
		return typeBool
	default:
		return t
	}
}

func (a *analyser) checkBinary(x *ast.Binary) ast.Type {
	lt := a.checkExpr(x.X)
	rt := a.checkExpr(x.Y)

	switch x.Op {
	case token.EQEQ, token.BANGEQ:
		if lt.Name != "" && rt.Name != "" && !lt.Equal(rt) {
			a.errorf(x.Pos, "cannot compare %s and %s", lt, rt)
		}
		return typeBool
	case token.LT, token.LE, token.GT, token.GE:
		if lt.Name != "" && rt.Name != "" && (!isNumeric(lt) || !lt.Equal(rt)) {
			a.errorf(x.Pos, "comparison requires matching numeric operands, got %s and %s", lt, rt)
		}
		return typeBool
	case token.PLUS:
		if lt.Equal(typeStr) && rt.Equal(typeStr) {
			return typeStr
		}
		fallthrough
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if lt.Name != "" && rt.Name != "" && (!isNumeric(lt) || !lt.Equal(rt)) {
			a.errorf(x.Pos, "arithmetic requires matching numeric operands, got %s and %s", lt, rt)
		}
		return lt
	default:
		return lt
	}
}

func (a *analyser) checkCall(x *ast.Call) ast.Type {
	if info, ok := a.funcs[x.Callee]; ok {
		x.Kind = ast.IdentFunc
		a.checkArgs(x.Pos, x.Callee, x.Args, paramTypes(info.Params))
		return info.ReturnType
	}
	if info, ok := a.natives[x.Callee]; ok {
		x.Kind = ast.IdentNative
		a.checkArgs(x.Pos, x.Callee, x.Args, info.ParamTypes)
		return info.ReturnType
	}
	if info, ok := a.structs[x.Callee]; ok {
		x.Kind = ast.IdentStruct
		a.checkArgs(x.Pos, x.Callee, x.Args, paramTypes(info.Fields))
		return ast.Type{Name: info.Name}
	}
	a.errorf(x.Pos, "undefined function or struct %q", x.Callee)
	return ast.Type{}
}

func paramTypes(params []ast.Param) []ast.Type {
	out := make([]ast.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func (a *analyser) checkArgs(pos token.Pos, name string, args []ast.Expr, want []ast.Type) {
	if len(args) != len(want) {
		a.errorf(pos, "%q expects %d argument(s), got %d", name, len(want), len(args))
	}
	n := len(args)
	if len(want) < n {
		n = len(want)
	}
	for i := 0; i < n; i++ {
		got := a.checkExpr(args[i])
		if !typesMatch(got, want[i]) {
			a.errorf(args[i].Span(), "argument %d to %q: expected %s, got %s", i+1, name, want[i], got)
		}
	}
	for i := n; i < len(args); i++ {
		a.checkExpr(args[i])
	}
}

func (a *analyser) checkMethodCall(x *ast.MethodCall) ast.Type {
	rt := a.checkExpr(x.Recv)
	if rt.Name == "" {
		return ast.Type{}
	}
	info, ok := a.structs[rt.Name]
	if !ok || rt.IsArray() {
		a.errorf(x.Pos, "%s is not a struct", rt)
		return ast.Type{}
	}
	idx, ok := info.methodIndex(x.Method)
	if !ok {
		a.errorf(x.Pos, "struct %q has no method %q", rt.Name, x.Method)
		return ast.Type{}
	}
	x.StructName = rt.Name
	x.MethodIndex = idx
	method := info.Methods[idx]
	a.checkArgs(x.Pos, x.Method, x.Args, paramTypes(method.Params[1:]))
	return method.ReturnType
}

func (a *analyser) checkArrayLit(x *ast.ArrayLit) ast.Type {
	var elemType ast.Type
	for i, el := range x.Elems {
		t := a.checkExpr(el)
		if i == 0 {
			elemType = t
		} else if !typesMatch(t, elemType) {
			a.errorf(el.Span(), "array elements must share a single type, got %s and %s", elemType, t)
		}
	}
	x.ElemType = elemType
	return ast.Type{Name: elemType.Name, Dims: elemType.Dims + 1}
}

func (a *analyser) checkIndex(x *ast.Index) ast.Type {
	rt := a.checkExpr(x.Recv)
	it := a.checkExpr(x.Idx)
	if rt.Name != "" && !rt.IsArray() {
		a.errorf(x.Pos, "cannot index non-array type %s", rt)
		return ast.Type{}
	}
	if it.Name != "" && it.Name != "int" && it.Name != "uint" {
		a.errorf(x.Pos, "array index must be int or uint, got %s", it)
	}
	if rt.Name == "" {
		return ast.Type{}
	}
	return rt.Elem()
}

func (a *analyser) checkIndexAssign(x *ast.IndexAssign) ast.Type {
	rt := a.checkExpr(x.Recv)
	a.checkExpr(x.Idx)
	vt := a.checkExpr(x.Value)
	if rt.Name != "" && !rt.IsArray() {
		a.errorf(x.Pos, "cannot index non-array type %s", rt)
		return ast.Type{}
	}
	if rt.Name == "" {
		return ast.Type{}
	}
	elem := rt.Elem()
	if !typesMatch(vt, elem) {
		a.errorf(x.Pos, "cannot assign %s into array of %s", vt, elem)
	}
	return elem
}

func (a *analyser) checkField(x *ast.Field) ast.Type {
	rt := a.checkExpr(x.Recv)
	if rt.Name == "" {
		return ast.Type{}
	}
	info, ok := a.structs[rt.Name]
	if !ok || rt.IsArray() {
		a.errorf(x.Pos, "%s is not a struct", rt)
		return ast.Type{}
	}
	idx, ok := info.fieldIndex(x.Name)
	if !ok {
		a.errorf(x.Pos, "struct %q has no field %q", rt.Name, x.Name)
		return ast.Type{}
	}
	x.FieldIndex = idx
	x.Type = info.Fields[idx].Type
	return x.Type
}

func (a *analyser) checkFieldAssign(x *ast.FieldAssign) ast.Type {
	rt := a.checkExpr(x.Recv)
	vt := a.checkExpr(x.Value)
	if rt.Name == "" {
		return ast.Type{}
	}
	info, ok := a.structs[rt.Name]
	if !ok || rt.IsArray() {
		a.errorf(x.Pos, "%s is not a struct", rt)
		return ast.Type{}
	}
	idx, ok := info.fieldIndex(x.Name)
	if !ok {
		a.errorf(x.Pos, "struct %q has no field %q", rt.Name, x.Name)
		return ast.Type{}
	}
	x.FieldIndex = idx
	if !typesMatch(vt, info.Fields[idx].Type) {
		a.errorf(x.Pos, "cannot assign %s to field %q of type %s", vt, x.Name, info.Fields[idx].Type)
	}
	return vt
}
