// Package analyser performs the semantic analysis spec.md assigns to an
// external collaborator: resolving every identifier to a local slot, a
// user/native function, or a struct name; type-checking expressions; and
// annotating the tree in place so the emitter can consume it directly
// without re-deriving any of this information.
//
// It is grounded in the teacher project's own lang/resolver, simplified:
// ilex has no closures, so there is no Cell/Free binding: a name resolves
// to a local, a user function, a native function or a struct (see
// scopeKind), and it additionally performs static type checking, which the
// teacher's resolver does not.
package analyser

import (
	"fmt"

	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/token"
)

// FuncInfo describes one user-defined top-level function.
type FuncInfo struct {
	Name       string
	Params     []ast.Param
	ReturnType ast.Type
	Decl       *ast.FuncDecl
}

// NativeInfo describes one host-registered native function.
type NativeInfo struct {
	Name       string
	ParamTypes []ast.Type
	ReturnType ast.Type
}

// StructInfo describes one struct declaration: its fields (in declaration
// order, giving each its index) and its methods (in declaration order,
// giving each a method index for static dispatch).
type StructInfo struct {
	Name    string
	Fields  []ast.Param
	Methods []*ast.FuncDecl
	Decl    *ast.StructDecl
}

func (s *StructInfo) fieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (s *StructInfo) methodIndex(name string) (int, bool) {
	for i, m := range s.Methods {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}

type (
	FuncTable   map[string]*FuncInfo
	NativeTable map[string]*NativeInfo
	StructTable map[string]*StructInfo
)

// Error is a single semantic error with a resolved source line.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message) }

// ErrorList collects every semantic error found in a single analysis pass.
type ErrorList []*Error

func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Result is everything the emitter needs to lower a checked tree.
type Result struct {
	Chunk   *ast.Chunk
	Funcs   FuncTable
	Structs StructTable
	Natives NativeTable
}

// Analyse runs the declaration and check passes over ch, given the set of
// native functions the host has registered, and returns the checked tree
// plus its function/struct tables, or every semantic error found.
func Analyse(ch *ast.Chunk, natives NativeTable) (*Result, error) {
	a := &analyser{
		funcs:   make(FuncTable),
		structs: make(StructTable),
		natives: natives,
	}
	if a.natives == nil {
		a.natives = make(NativeTable)
	}
	a.declarePass(ch)
	if len(a.errs) == 0 {
		a.checkPass(ch)
	}
	if err := a.errs.Err(); err != nil {
		return nil, err
	}
	return &Result{Chunk: ch, Funcs: a.funcs, Structs: a.structs, Natives: a.natives}, nil
}

type scopeKind uint8

const (
	scopeUndefined scopeKind = iota
	scopeLocal
	scopeFunc
	scopeNative
	scopeStruct
)

// local tracks one declared local variable's name, type, and scope depth,
// following the teacher resolver's local-stack design.
type local struct {
	name  string
	typ   ast.Type
	depth int
	slot  int
}

// funcScope holds the in-progress local-resolution state for the function
// body currently being checked.
type funcScope struct {
	locals     []local
	depth      int
	returnType ast.Type
	inLoop     int
	selfType   ast.Type
	isMethod   bool
}

type analyser struct {
	funcs   FuncTable
	structs StructTable
	natives NativeTable
	errs    ErrorList

	fn *funcScope
}

func (a *analyser) errorf(pos token.Pos, format string, args ...any) {
	a.errs = append(a.errs, &Error{Line: pos.Line(), Message: fmt.Sprintf(format, args...)})
}

// declarePass registers every top-level fn/struct name before any body is
// checked, enabling forward and mutually recursive references.
func (a *analyser) declarePass(ch *ast.Chunk) {
	for _, s := range ch.Stmts {
		switch d := s.(type) {
		case *ast.FuncDecl:
			a.declareFunc(d)
		case *ast.StructDecl:
			a.declareStruct(d)
		}
	}
}

func (a *analyser) declareFunc(d *ast.FuncDecl) {
	if _, ok := a.funcs[d.Name]; ok {
		a.errorf(d.Pos, "function %q already declared", d.Name)
		return
	}
	if _, ok := a.natives[d.Name]; ok {
		a.errorf(d.Pos, "function %q conflicts with a native function of the same name", d.Name)
		return
	}
	a.funcs[d.Name] = &FuncInfo{Name: d.Name, Params: d.Params, ReturnType: d.ReturnType, Decl: d}
}

func (a *analyser) declareStruct(d *ast.StructDecl) {
	if _, ok := a.structs[d.Name]; ok {
		a.errorf(d.Pos, "struct %q already declared", d.Name)
		return
	}
	info := &StructInfo{Name: d.Name, Fields: d.Fields, Decl: d}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if seen[f.Name] {
			a.errorf(f.Pos, "struct %q has a duplicate field %q", d.Name, f.Name)
		}
		seen[f.Name] = true
	}
	for _, m := range d.Methods {
		if _, ok := info.methodIndex(m.Name); ok {
			a.errorf(m.Pos, "struct %q has a duplicate method %q", d.Name, m.Name)
			continue
		}
		m.MethodIndex = len(info.Methods)
		info.Methods = append(info.Methods, m)
	}
	a.structs[d.Name] = info
}

// checkPass walks every function body (and the top-level statements as an
// implicit anonymous function) resolving names and checking types.
func (a *analyser) checkPass(ch *ast.Chunk) {
	top := &funcScope{returnType: ast.Type{}}
	a.fn = top
	a.beginScope()
	top.locals = append(top.locals, local{name: "<callee>", depth: top.depth, slot: 0})
	for _, s := range ch.Stmts {
		switch s.(type) {
		case *ast.FuncDecl, *ast.StructDecl:
			// handled below, in declaration order independent of position
		default:
			a.checkStmt(s)
		}
	}
	a.endScope(nil)

	for _, info := range a.funcs {
		a.checkFuncBody(info.Decl, ast.Type{})
	}
	for _, info := range a.structs {
		for _, m := range info.Methods {
			a.checkFuncBody(m, ast.Type{Name: info.Name})
		}
	}
}

func (a *analyser) checkFuncBody(d *ast.FuncDecl, selfType ast.Type) {
	fn := &funcScope{returnType: d.ReturnType, isMethod: d.IsMethod, selfType: selfType}
	a.fn = fn
	a.beginScope()
	// Slot 0 is the callee itself, reserved implicitly. A plain call's
	// lowering pushes the function value then its arguments in reverse
	// source order (see lang/compiler's Call lowering), so plain-function
	// params are declared in matching reverse order (last param gets the
	// lowest new slot) to keep each resolved slot aligned with the stack
	// position its argument lands on. A method call instead pushes the
	// receiver first and its explicit arguments in forward order (`self`
	// occupies slot 1, per spec.md §4.9's `self` parameter rule), so method
	// params (self included, always params[0]) are declared forward.
	fn.locals = append(fn.locals, local{name: "<callee>", depth: fn.depth, slot: 0})
	if d.IsMethod {
		for _, p := range d.Params {
			a.declareLocal(p.Name, p.Type, p.Pos)
		}
	} else {
		for i := len(d.Params) - 1; i >= 0; i-- {
			p := d.Params[i]
			a.declareLocal(p.Name, p.Type, p.Pos)
		}
	}
	for _, s := range d.Body.Stmts {
		a.checkStmt(s)
	}
	a.endScope(nil)
}

func (a *analyser) beginScope() { a.fn.depth++ }

// endScope pops every local declared at the current depth, optionally
// annotating out ast nodes that need the popped count is not tracked here
// since the emitter recomputes Pop counts from its own scope stack; the
// analyser's scope stack exists purely for name resolution.
func (a *analyser) endScope(_ *ast.Block) {
	d := a.fn.depth
	n := len(a.fn.locals)
	for n > 0 && a.fn.locals[n-1].depth == d {
		n--
	}
	a.fn.locals = a.fn.locals[:n]
	a.fn.depth--
}

func (a *analyser) declareLocal(name string, typ ast.Type, pos token.Pos) int {
	for _, l := range a.fn.locals {
		if l.depth == a.fn.depth && l.name == name {
			a.errorf(pos, "%q already declared in this scope", name)
		}
	}
	slot := len(a.fn.locals)
	a.fn.locals = append(a.fn.locals, local{name: name, typ: typ, depth: a.fn.depth, slot: slot})
	return slot
}

func (a *analyser) resolveLocal(name string) (local, bool) {
	for i := len(a.fn.locals) - 1; i >= 0; i-- {
		if a.fn.locals[i].name == name {
			return a.fn.locals[i], true
		}
	}
	return local{}, false
}
