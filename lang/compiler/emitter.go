package compiler

import (
	"fmt"

	"github.com/mna/ilex/internal/config"
	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/heap"
	"github.com/mna/ilex/lang/token"
	"github.com/mna/ilex/lang/value"
)

// Error is a fatal compilation error: a resource bound exceeded, or an
// internal inconsistency the analyser should already have ruled out.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message) }

// emitter holds the state shared across every function body compiled from a
// single checked tree: the heap every Value is allocated from, the resource
// bounds to enforce, and the name -> Value maps built during pre-
// registration so any reference (forward, recursive, or mutually
// recursive) resolves to a stable handle regardless of compile order.
type emitter struct {
	h      *heap.Heap
	limits config.Limits
	res    *analyser.Result

	funcVals map[string]value.Value
	funcObjs map[string]*value.Function

	methodVals map[string][]value.Value
	methodObjs map[string][]*value.Function
}

// Compile lowers a checked tree into a runnable top-level function and the
// heap it was allocated from, implementing spec.md §4.4's compile contract.
// nativeImpls supplies the runtime implementation for every native function
// name res.Natives declares; a missing entry is a fatal error.
func Compile(res *analyser.Result, nativeImpls map[string]value.NativeFn, limits config.Limits) (*value.Function, *heap.Heap, error) {
	h := heap.New()
	e := &emitter{
		h:          h,
		limits:     limits,
		res:        res,
		funcVals:   make(map[string]value.Value, len(res.Funcs)),
		funcObjs:   make(map[string]*value.Function, len(res.Funcs)),
		methodVals: make(map[string][]value.Value, len(res.Structs)),
		methodObjs: make(map[string][]*value.Function, len(res.Structs)),
	}

	for name, info := range res.Natives {
		impl, ok := nativeImpls[name]
		if !ok {
			return nil, nil, &Error{Message: fmt.Sprintf("no implementation registered for native function %q", name)}
		}
		h.AllocNative(&value.NativeFunction{Name: name, Arity: len(info.ParamTypes), Fn: impl})
	}

	// Pre-allocate a dummy function object per user function and method
	// before compiling any body, so a call to a forward or recursive (or
	// mutually recursive) reference resolves to a stable handle; the
	// chunk is back-patched once the body is actually compiled below.
	for name, info := range res.Funcs {
		fn := &value.Function{Name: name, Arity: len(info.Params)}
		v, obj := h.AllocFunction(fn)
		e.funcVals[name] = v
		e.funcObjs[name] = obj
	}
	for name, info := range res.Structs {
		vals := make([]value.Value, len(info.Methods))
		objs := make([]*value.Function, len(info.Methods))
		for i, m := range info.Methods {
			fn := &value.Function{Name: m.Name, Arity: len(m.Params), StructName: name, IsMethod: true}
			v, obj := h.AllocFunction(fn)
			vals[i] = v
			objs[i] = obj
		}
		e.methodVals[name] = vals
		e.methodObjs[name] = objs
	}

	for name, info := range res.Funcs {
		if err := e.compileFunc(e.funcObjs[name], info.Decl, ast.Type{}); err != nil {
			return nil, nil, err
		}
	}
	for name, info := range res.Structs {
		objs := e.methodObjs[name]
		for i, m := range info.Methods {
			if err := e.compileFunc(objs[i], m, ast.Type{Name: name}); err != nil {
				return nil, nil, err
			}
		}
	}

	root := &value.Function{Name: "<script>"}
	rc := &fcomp{e: e, chunk: &root.Chunk, locals: 1, peak: 1}
	for _, s := range res.Chunk.Stmts {
		switch s.(type) {
		case *ast.FuncDecl, *ast.StructDecl:
			continue
		default:
			if err := rc.emitStmt(s); err != nil {
				return nil, nil, err
			}
		}
	}
	eof := res.Chunk.EOF.Line()
	rc.chunk.Write(byte(OpNull), eof)
	rc.chunk.Write(byte(OpReturn), eof)
	root.NumLocals = rc.peak
	return root, h, nil
}

// compileFunc emits d's body into fn's (already heap-resident) chunk,
// declaring slot 0 for the callee and one slot per already-analysed
// parameter, per the reverse/forward convention lang/analyser's
// checkFuncBody establishes for plain functions and methods respectively.
func (e *emitter) compileFunc(fn *value.Function, d *ast.FuncDecl, selfType ast.Type) error {
	c := &fcomp{e: e, chunk: &fn.Chunk, locals: 1 + len(d.Params), peak: 1 + len(d.Params)}
	if c.locals > e.limits.MaxLocals {
		return &Error{Line: d.Pos.Line(), Message: fmt.Sprintf("function %q has too many parameters", d.Name)}
	}
	for _, s := range d.Body.Stmts {
		if err := c.emitStmt(s); err != nil {
			return err
		}
	}
	line := d.Pos.Line()
	c.chunk.Write(byte(OpNull), line)
	c.chunk.Write(byte(OpReturn), line)
	fn.NumLocals = c.peak
	return nil
}

// fcomp is the per-function compilation context: the chunk being filled
// in, the emitter's own running count of live local slots (used only to
// know how many Pop instructions a scope exit needs — slot numbers
// themselves were already resolved by the analyser and are read directly
// off the annotated tree), and the stack of in-flight loops for break and
// continue patch-site bookkeeping.
type fcomp struct {
	e      *emitter
	chunk  *value.Chunk
	locals int
	peak   int
	loops  []*loopCtx
}

// loopCtx collects the patch sites of every break and continue inside one
// loop: breaks are forward Jump placeholders patched to the loop's exit.
// continue's target depends on the loop kind: while's continue target is
// loop_start, which lies behind every continue site, so it is a backward
// Loop placeholder; a range for's continue target is the increment step,
// which lies ahead of every continue site in the loop body, so it is a
// forward Jump placeholder instead. continueBackward records which one
// this loop's continues were emitted as, so they are patched the same way.
type loopCtx struct {
	breaks           []int
	continues        []int
	continueBackward bool
}

func (c *fcomp) pushLocal(pos token.Pos) error {
	c.locals++
	if c.locals > c.peak {
		c.peak = c.locals
	}
	if c.locals > c.e.limits.MaxLocals {
		return &Error{Line: pos.Line(), Message: "too many locals in one function"}
	}
	return nil
}

func (c *fcomp) popLocal() { c.locals-- }

func (c *fcomp) emitOp(op Opcode, line int) { c.chunk.Write(byte(op), line) }
func (c *fcomp) emitByte(b byte, line int)  { c.chunk.Write(b, line) }

func (c *fcomp) emitConstant(v value.Value, line int, pos token.Pos) error {
	k, ok := c.chunk.AddConstant(v, c.e.limits.MaxConstants)
	if !ok {
		return &Error{Line: pos.Line(), Message: "too many constants in one function"}
	}
	c.emitOp(OpConstant, line)
	c.emitByte(byte(k), line)
	return nil
}

// emitJumpPlaceholder writes op followed by two 0xFF placeholder bytes and
// returns the position of the first placeholder byte (spec.md §4.4's
// "a placeholder jump writes two 0xFF bytes").
func (c *fcomp) emitJumpPlaceholder(op Opcode, line int) int {
	c.emitOp(op, line)
	p := len(c.chunk.Code)
	c.emitByte(0xFF, line)
	c.emitByte(0xFF, line)
	return p
}

// patchJump patches a forward Jump/JumpIfFalse placeholder at p to target
// the current end of the chunk.
func (c *fcomp) patchJump(p int, pos token.Pos) error {
	distance := len(c.chunk.Code) - p - 2
	if distance > c.e.limits.MaxJump {
		return &Error{Line: pos.Line(), Message: "jump distance too large"}
	}
	c.chunk.Code[p] = byte(distance >> 8)
	c.chunk.Code[p+1] = byte(distance)
	return nil
}

// emitLoop writes an unconditional backward Loop instruction to loopStart,
// whose target offset is already known at emission time.
func (c *fcomp) emitLoop(loopStart, line int, pos token.Pos) error {
	c.emitOp(OpLoop, line)
	p := len(c.chunk.Code)
	distance := p - loopStart + 2
	if distance > c.e.limits.MaxJump {
		return &Error{Line: pos.Line(), Message: "loop body too large"}
	}
	c.emitByte(byte(distance>>8), line)
	c.emitByte(byte(distance), line)
	return nil
}

// patchLoopTo patches a Loop placeholder emitted at a continue site (p is
// the position of its first placeholder byte) to target, per spec.md's
// "distance = p - (target - 2)".
func (c *fcomp) patchLoopTo(p, target int, pos token.Pos) error {
	distance := p - (target - 2)
	if distance < 0 || distance > c.e.limits.MaxJump {
		return &Error{Line: pos.Line(), Message: "continue jump distance invalid"}
	}
	c.chunk.Code[p] = byte(distance >> 8)
	c.chunk.Code[p+1] = byte(distance)
	return nil
}

func (c *fcomp) emitStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.VarDecl:
		if err := c.emitExpr(n.Init); err != nil {
			return err
		}
		return c.pushLocal(n.Pos)

	case *ast.Block:
		base := c.locals
		for _, st := range n.Stmts {
			if err := c.emitStmt(st); err != nil {
				return err
			}
		}
		line := n.Pos.Line()
		for c.locals > base {
			c.emitOp(OpPop, line)
			c.popLocal()
		}
		return nil

	case *ast.If:
		return c.emitIf(n)

	case *ast.While:
		return c.emitWhile(n)

	case *ast.For:
		return c.emitFor(n)

	case *ast.Break:
		if len(c.loops) == 0 {
			return &Error{Line: n.Pos.Line(), Message: "break outside of a loop"}
		}
		p := c.emitJumpPlaceholder(OpJump, n.Pos.Line())
		lc := c.loops[len(c.loops)-1]
		lc.breaks = append(lc.breaks, p)
		return nil

	case *ast.Continue:
		if len(c.loops) == 0 {
			return &Error{Line: n.Pos.Line(), Message: "continue outside of a loop"}
		}
		lc := c.loops[len(c.loops)-1]
		op := OpJump
		if lc.continueBackward {
			op = OpLoop
		}
		p := c.emitJumpPlaceholder(op, n.Pos.Line())
		lc.continues = append(lc.continues, p)
		return nil

	case *ast.Return:
		line := n.Pos.Line()
		if n.Value != nil {
			if err := c.emitExpr(n.Value); err != nil {
				return err
			}
		} else {
			c.emitOp(OpNull, line)
		}
		c.emitOp(OpReturn, line)
		return nil

	case *ast.Print:
		if err := c.emitExpr(n.Value); err != nil {
			return err
		}
		c.emitOp(OpPrint, n.Pos.Line())
		return nil

	case *ast.ExprStmt:
		if err := c.emitExpr(n.X); err != nil {
			return err
		}
		c.emitOp(OpPop, n.Pos.Line())
		return nil

	case *ast.FuncDecl, *ast.StructDecl:
		return nil

	default:
		return &Error{Line: s.Span().Line(), Message: fmt.Sprintf("unsupported statement node %T", s)}
	}
}

func (c *fcomp) emitIf(n *ast.If) error {
	line := n.Pos.Line()
	if err := c.emitExpr(n.Cond); err != nil {
		return err
	}
	elseJump := c.emitJumpPlaceholder(OpJumpIfFalse, line)
	c.emitOp(OpPop, line)
	if err := c.emitStmt(n.Then); err != nil {
		return err
	}
	endJump := c.emitJumpPlaceholder(OpJump, line)
	if err := c.patchJump(elseJump, n.Pos); err != nil {
		return err
	}
	c.emitOp(OpPop, line)
	if n.ElseStmt != nil {
		if err := c.emitStmt(n.ElseStmt); err != nil {
			return err
		}
	}
	return c.patchJump(endJump, n.Pos)
}

func (c *fcomp) emitWhile(n *ast.While) error {
	line := n.Pos.Line()
	loopStart := len(c.chunk.Code)
	if err := c.emitExpr(n.Cond); err != nil {
		return err
	}
	exitJump := c.emitJumpPlaceholder(OpJumpIfFalse, line)
	c.emitOp(OpPop, line)

	c.loops = append(c.loops, &loopCtx{continueBackward: true})
	if err := c.emitStmt(n.Body); err != nil {
		return err
	}
	lc := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]

	for _, p := range lc.continues {
		if err := c.patchLoopTo(p, loopStart, n.Pos); err != nil {
			return err
		}
	}
	if err := c.emitLoop(loopStart, line, n.Pos); err != nil {
		return err
	}
	if err := c.patchJump(exitJump, n.Pos); err != nil {
		return err
	}
	c.emitOp(OpPop, line)
	for _, p := range lc.breaks {
		if err := c.patchJump(p, n.Pos); err != nil {
			return err
		}
	}
	return nil
}

// emitFor lowers `for name in lo to hi { body }`. The loop variable's own
// scope spans the whole loop (popped once, after it exits); the body's
// scope is handled by emitStmt's *ast.Block case and is popped on every
// iteration before the increment runs, matching the teacher's per-
// iteration stack discipline. continue's target is the increment step
// rather than loop_start: spec.md's lowering table states this explicitly
// for while but is silent for range for, so this follows the same
// re-check-then-increment semantics a C-style for loop has.
func (c *fcomp) emitFor(n *ast.For) error {
	line := n.Pos.Line()
	if err := c.emitExpr(n.Lo); err != nil {
		return err
	}
	if err := c.pushLocal(n.Pos); err != nil {
		return err
	}

	loopStart := len(c.chunk.Code)
	c.emitOp(OpGetLocal, line)
	c.emitByte(byte(n.Slot), line)
	if err := c.emitExpr(n.Hi); err != nil {
		return err
	}
	c.emitOp(OpLess, line)
	exitJump := c.emitJumpPlaceholder(OpJumpIfFalse, line)
	c.emitOp(OpPop, line)

	c.loops = append(c.loops, &loopCtx{})
	if err := c.emitStmt(n.Body); err != nil {
		return err
	}
	lc := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]

	// incrStart lies ahead of every continue site in the body, so unlike
	// while's continues these are forward Jump placeholders, patched to
	// the current end of the chunk exactly like a break's exit jump.
	for _, p := range lc.continues {
		if err := c.patchJump(p, n.Pos); err != nil {
			return err
		}
	}
	c.emitOp(OpGetLocal, line)
	c.emitByte(byte(n.Slot), line)
	if err := c.emitConstant(value.Int(1), line, n.Pos); err != nil {
		return err
	}
	c.emitOp(OpAdd, line)
	c.emitOp(OpSetLocal, line)
	c.emitByte(byte(n.Slot), line)
	c.emitOp(OpPop, line)
	if err := c.emitLoop(loopStart, line, n.Pos); err != nil {
		return err
	}
	if err := c.patchJump(exitJump, n.Pos); err != nil {
		return err
	}
	c.emitOp(OpPop, line)
	c.emitOp(OpPop, line) // drop the loop variable
	c.popLocal()
	for _, p := range lc.breaks {
		if err := c.patchJump(p, n.Pos); err != nil {
			return err
		}
	}
	return nil
}

func (c *fcomp) emitExpr(x ast.Expr) error {
	line := x.Span().Line()
	switch n := x.(type) {
	case *ast.IntLit:
		return c.emitConstant(value.Int(n.Value), line, n.Pos)
	case *ast.UintLit:
		return c.emitConstant(value.Uint(n.Value), line, n.Pos)
	case *ast.FloatLit:
		return c.emitConstant(value.Float(n.Value), line, n.Pos)
	case *ast.StringLit:
		return c.emitConstant(c.e.h.AllocString(n.Value), line, n.Pos)
	case *ast.BoolLit:
		if n.Value {
			c.emitOp(OpTrue, line)
		} else {
			c.emitOp(OpFalse, line)
		}
		return nil
	case *ast.NullLit:
		c.emitOp(OpNull, line)
		return nil
	case *ast.Ident:
		return c.emitIdent(n, line)
	case *ast.Self:
		c.emitOp(OpGetLocal, line)
		c.emitByte(byte(n.Slot), line)
		return nil
	case *ast.Assign:
		if err := c.emitExpr(n.Value); err != nil {
			return err
		}
		c.emitOp(OpSetLocal, line)
		c.emitByte(byte(n.Slot), line)
		return nil
	case *ast.CompoundAssign:
		return c.emitCompoundAssign(n, line)
	case *ast.Unary:
		if err := c.emitExpr(n.X); err != nil {
			return err
		}
		switch n.Op {
		case token.MINUS:
			c.emitOp(OpNegate, line)
		case token.BANG:
			c.emitOp(OpNot, line)
		default:
			return &Error{Line: line, Message: fmt.Sprintf("unsupported unary operator %s", n.Op)}
		}
		return nil
	case *ast.Binary:
		return c.emitBinary(n, line)
	case *ast.Logical:
		return c.emitLogical(n, line)
	case *ast.Call:
		return c.emitCall(n, line)
	case *ast.MethodCall:
		return c.emitMethodCall(n, line)
	case *ast.ArrayLit:
		return c.emitArrayLit(n, line)
	case *ast.Index:
		if err := c.emitExpr(n.Recv); err != nil {
			return err
		}
		if err := c.emitExpr(n.Idx); err != nil {
			return err
		}
		c.emitOp(OpIndexArr, line)
		return nil
	case *ast.IndexAssign:
		if err := c.emitExpr(n.Recv); err != nil {
			return err
		}
		if err := c.emitExpr(n.Idx); err != nil {
			return err
		}
		if err := c.emitExpr(n.Value); err != nil {
			return err
		}
		c.emitOp(OpAssignIndex, line)
		return nil
	case *ast.Field:
		if err := c.emitExpr(n.Recv); err != nil {
			return err
		}
		c.emitOp(OpGetProperty, line)
		c.emitByte(byte(n.FieldIndex), line)
		return nil
	case *ast.FieldAssign:
		if err := c.emitExpr(n.Recv); err != nil {
			return err
		}
		if err := c.emitExpr(n.Value); err != nil {
			return err
		}
		c.emitOp(OpSetProperty, line)
		c.emitByte(byte(n.FieldIndex), line)
		return nil
	case *ast.Cast:
		return c.emitCast(n, line)
	default:
		return &Error{Line: line, Message: fmt.Sprintf("unsupported expression node %T", x)}
	}
}

func (c *fcomp) emitIdent(n *ast.Ident, line int) error {
	switch n.Kind {
	case ast.IdentLocal:
		c.emitOp(OpGetLocal, line)
		c.emitByte(byte(n.Slot), line)
		return nil
	case ast.IdentFunc:
		return c.emitConstant(c.e.funcVals[n.Name], line, n.Pos)
	case ast.IdentNative:
		v, _ := c.e.h.Natives.Get(n.Name)
		return c.emitConstant(v, line, n.Pos)
	default:
		return &Error{Line: line, Message: fmt.Sprintf("cannot reference %q as a value", n.Name)}
	}
}

func (c *fcomp) emitCompoundAssign(n *ast.CompoundAssign, line int) error {
	c.emitOp(OpGetLocal, line)
	c.emitByte(byte(n.Slot), line)
	if err := c.emitExpr(n.Value); err != nil {
		return err
	}
	switch n.Op {
	case token.PLUS:
		c.emitOp(OpAdd, line)
	case token.MINUS:
		c.emitOp(OpSub, line)
	case token.STAR:
		c.emitOp(OpMul, line)
	case token.SLASH:
		c.emitOp(OpDiv, line)
	default:
		return &Error{Line: line, Message: fmt.Sprintf("unsupported compound assignment operator %s", n.Op)}
	}
	c.emitOp(OpSetLocal, line)
	c.emitByte(byte(n.Slot), line)
	return nil
}

func (c *fcomp) emitBinary(n *ast.Binary, line int) error {
	if err := c.emitExpr(n.X); err != nil {
		return err
	}
	if err := c.emitExpr(n.Y); err != nil {
		return err
	}
	switch n.Op {
	case token.PLUS:
		c.emitOp(OpAdd, line)
	case token.MINUS:
		c.emitOp(OpSub, line)
	case token.STAR:
		c.emitOp(OpMul, line)
	case token.SLASH:
		c.emitOp(OpDiv, line)
	case token.EQEQ:
		c.emitOp(OpEqual, line)
	case token.BANGEQ:
		c.emitOp(OpNotEqual, line)
	case token.LT:
		c.emitOp(OpLess, line)
	case token.LE:
		c.emitOp(OpLessEqual, line)
	case token.GT:
		c.emitOp(OpGreater, line)
	case token.GE:
		c.emitOp(OpGreaterEqual, line)
	default:
		return &Error{Line: line, Message: fmt.Sprintf("unsupported binary operator %s", n.Op)}
	}
	return nil
}

// emitLogical lowers `and`/`or` with short-circuiting control flow rather
// than a single opcode: the right operand must not execute (and its side
// effects must not happen) when the left operand already decides the
// result.
func (c *fcomp) emitLogical(n *ast.Logical, line int) error {
	if err := c.emitExpr(n.X); err != nil {
		return err
	}
	switch n.Op {
	case token.AND:
		endJump := c.emitJumpPlaceholder(OpJumpIfFalse, line)
		c.emitOp(OpPop, line)
		if err := c.emitExpr(n.Y); err != nil {
			return err
		}
		return c.patchJump(endJump, n.Pos)
	case token.OR:
		elseJump := c.emitJumpPlaceholder(OpJumpIfFalse, line)
		endJump := c.emitJumpPlaceholder(OpJump, line)
		if err := c.patchJump(elseJump, n.Pos); err != nil {
			return err
		}
		c.emitOp(OpPop, line)
		if err := c.emitExpr(n.Y); err != nil {
			return err
		}
		return c.patchJump(endJump, n.Pos)
	default:
		return &Error{Line: line, Message: fmt.Sprintf("unsupported logical operator %s", n.Op)}
	}
}

// emitCall lowers a direct call: an instance allocation when the callee
// names a struct, otherwise a plain function/native call. Plain-call
// arguments are pushed in reverse source order to match lang/analyser's
// reverse parameter declaration for non-method functions.
func (c *fcomp) emitCall(n *ast.Call, line int) error {
	switch n.Kind {
	case ast.IdentStruct:
		for i := len(n.Args) - 1; i >= 0; i-- {
			if err := c.emitExpr(n.Args[i]); err != nil {
				return err
			}
		}
		// The struct name rides along as an ordinary string constant, pushed
		// last (closest to the opcode) exactly like AllocArr's length: the
		// VM pops it off before popping the n field values.
		if err := c.emitConstant(c.e.h.AllocString(n.Callee), line, n.Pos); err != nil {
			return err
		}
		c.emitOp(OpAllocInstance, line)
		c.emitByte(byte(len(n.Args)), line)
		return nil
	case ast.IdentFunc:
		if err := c.emitConstant(c.e.funcVals[n.Callee], line, n.Pos); err != nil {
			return err
		}
	case ast.IdentNative:
		v, _ := c.e.h.Natives.Get(n.Callee)
		if err := c.emitConstant(v, line, n.Pos); err != nil {
			return err
		}
	default:
		return &Error{Line: line, Message: fmt.Sprintf("cannot call %q", n.Callee)}
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		if err := c.emitExpr(n.Args[i]); err != nil {
			return err
		}
	}
	c.emitOp(OpFuncCall, line)
	c.emitByte(byte(len(n.Args)+1), line)
	return nil
}

// emitMethodCall lowers `recv.method(args...)`, statically dispatched by
// the analyser to (struct name, method index). Per spec.md §9's `self`
// parameter design note, the receiver is pushed first and the explicit
// arguments follow in forward source order (no reversal), matching
// lang/analyser's forward parameter declaration for methods.
func (c *fcomp) emitMethodCall(n *ast.MethodCall, line int) error {
	v := c.e.methodVals[n.StructName][n.MethodIndex]
	if err := c.emitConstant(v, line, n.Pos); err != nil {
		return err
	}
	if err := c.emitExpr(n.Recv); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := c.emitExpr(a); err != nil {
			return err
		}
	}
	c.emitOp(OpFuncCall, line)
	c.emitByte(byte(len(n.Args)+2), line)
	return nil
}

// emitArrayLit lowers `[e1, e2, ...]`: elements in reverse order, then the
// element count as an ordinary Int constant (spec.md's own reference
// represents the count as an untyped float; ilex has a genuine int type,
// so that's what the emitted constant carries — see DESIGN.md), then
// AllocArr.
func (c *fcomp) emitArrayLit(n *ast.ArrayLit, line int) error {
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if err := c.emitExpr(n.Elems[i]); err != nil {
			return err
		}
	}
	if err := c.emitConstant(value.Int(int64(len(n.Elems))), line, n.Pos); err != nil {
		return err
	}
	c.emitOp(OpAllocArr, line)
	return nil
}

// emitCast lowers `x as T`. An int/uint/double target always emits its
// conversion opcode, even when the operand already has that type; any other
// target emits nothing, the analyser having accepted it only as an identity
// cast.
func (c *fcomp) emitCast(n *ast.Cast, line int) error {
	if err := c.emitExpr(n.X); err != nil {
		return err
	}
	switch n.To.Name {
	case "int":
		c.emitOp(OpCastToInt, line)
	case "uint":
		c.emitOp(OpCastToUint, line)
	case "double":
		c.emitOp(OpCastToDouble, line)
	}
	return nil
}
